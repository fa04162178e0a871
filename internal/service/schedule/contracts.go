package schedule

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// ScheduleRepository интерфейс репозитория настроек расписания
type ScheduleRepository interface {
	Create(ctx context.Context, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error)
	GetByUserAndEventType(ctx context.Context, username string, eventTypeID *int64) (*domain.ScheduleConfig, error)
	GetConfigWithHierarchy(ctx context.Context, username string, eventTypeID *int64) (*domain.ScheduleConfig, error)
	Update(ctx context.Context, id int64, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error)
	DeleteByUserAndEventType(ctx context.Context, username string, eventTypeID *int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
