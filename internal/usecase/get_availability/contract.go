package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/integrations/calcom"
)

// CalcomClient интерфейс клиента Cal.com
type CalcomClient interface {
	GetAvailability(ctx context.Context, req *calcom.AvailabilityRequest) (*calcom.Availability, error)
}

// ScheduleConfigRepository интерфейс репозитория настроек расписания
type ScheduleConfigRepository interface {
	GetConfigWithHierarchy(ctx context.Context, username string, eventTypeID *int64) (*domain.ScheduleConfig, error)
}

// AvailabilityCache интерфейс кэша ответов Cal.com
type AvailabilityCache interface {
	Get(ctx context.Context, req *calcom.AvailabilityRequest) (*calcom.Availability, error)
	Set(ctx context.Context, req *calcom.AvailabilityRequest, availability *calcom.Availability) error
}

// CacheObserver получает результат обращения к кэшу (hit, miss, error)
type CacheObserver interface {
	ObserveCache(result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

type nopCacheObserver struct{}

func (nopCacheObserver) ObserveCache(string) {}
