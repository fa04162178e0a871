package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	cacheRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/cache/availability"
	scheduleRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-AvailabilityService/internal/integrations/calcom"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

// UseCase use case получения свободного времени пользователя Cal.com
type UseCase struct {
	calcomClient   CalcomClient
	configRepo     ScheduleConfigRepository
	cache          AvailabilityCache
	cacheObserver  CacheObserver
	timeProvider   TimeProvider
	requestDefault RequestDefaults
	schedule       domain.ScheduleDefaults
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	calcomClient CalcomClient,
	configRepo ScheduleConfigRepository,
	cache AvailabilityCache,
	requestDefaults RequestDefaults,
	schedule domain.ScheduleDefaults,
	logger Logger,
) *UseCase {
	return &UseCase{
		calcomClient:   calcomClient,
		configRepo:     configRepo,
		cache:          cache,
		cacheObserver:  nopCacheObserver{},
		timeProvider:   &RealTimeProvider{},
		requestDefault: requestDefaults,
		schedule:       schedule,
		logger:         logger,
	}
}

// SetCacheObserver подключает метрики кэша
func (uc *UseCase) SetCacheObserver(o CacheObserver) {
	if o != nil {
		uc.cacheObserver = o
	}
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Подставляем значения по умолчанию и валидируем
	req = uc.withDefaults(req)
	uc.logger.Info("GetAvailability: username=%s, event_type=%d, from=%s, to=%s",
		req.Username, req.EventTypeID, req.DateFrom.Format(time.RFC3339), req.DateTo.Format(time.RFC3339))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем настройки расписания с учетом иерархии
	config, err := uc.resolveSchedule(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := validateSchedule(config.WorkingWindow(), config.SlotDurationMinutes); err != nil {
		uc.logger.Error("GetAvailability: invalid schedule for username=%s: %v", req.Username, err)
		return nil, err
	}

	// 3. Получаем занятые интервалы (кэш, затем Cal.com)
	upstreamReq := &calcom.AvailabilityRequest{
		APIKey:      req.APIKey,
		Username:    req.Username,
		EventTypeID: req.EventTypeID,
		DateFrom:    req.DateFrom,
		DateTo:      req.DateTo,
	}

	availability, err := uc.fetchAvailability(ctx, upstreamReq)
	if err != nil {
		return nil, err
	}

	// 4. Определяем часовой пояс
	tzName := uc.resolveTimeZone(req, config, availability)
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		uc.logger.Error("GetAvailability: unknown timezone %q for username=%s", tzName, req.Username)
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimezone, tzName)
	}

	// 5. Разбираем занятые интервалы, ошибка в любом из них прерывает расчет
	busy, err := availability.BusyIntervals()
	if err != nil {
		uc.logger.Error("GetAvailability: malformed busy data for username=%s: %v", req.Username, err)
		return nil, fmt.Errorf("%w: %v", ErrMalformedTimestamp, err)
	}
	for i := range busy {
		busy[i] = busy[i].In(loc)
	}

	// 6. Рассчитываем свободные слоты
	days := reduceAvailability(reduceInput{
		From:        req.DateFrom,
		To:          req.DateTo,
		Location:    loc,
		Window:      config.WorkingWindow(),
		Granularity: config.Granularity(),
		Busy:        busy,
	})

	uc.logger.Info("GetAvailability: computed %d days for username=%s (timezone=%s, busy=%d)",
		len(days), req.Username, tzName, len(busy))

	return &Response{
		Username:    req.Username,
		EventTypeID: req.EventTypeID,
		TimeZone:    tzName,
		DateFrom:    req.DateFrom,
		DateTo:      req.DateTo,
		Window:      config.WorkingWindow(),
		Granularity: config.Granularity(),
		Days:        days,
	}, nil
}

func (uc *UseCase) withDefaults(req *Request) *Request {
	out := *req

	if out.Username == "" {
		out.Username = uc.requestDefault.Username
	}
	if out.EventTypeID == 0 {
		out.EventTypeID = uc.requestDefault.EventTypeID
	}
	if out.APIKey == "" {
		out.APIKey = uc.requestDefault.APIKey
	}
	if out.DateFrom.IsZero() {
		out.DateFrom = uc.timeProvider.Now().UTC()
	}
	if out.DateTo.IsZero() {
		rangeDays := uc.schedule.RangeDays
		if rangeDays <= 0 {
			rangeDays = domain.DefaultRangeDays
		}
		out.DateTo = out.DateFrom.AddDate(0, 0, rangeDays)
	}

	return &out
}

// resolveSchedule возвращает сохраненную конфигурацию или значения по умолчанию
func (uc *UseCase) resolveSchedule(ctx context.Context, req *Request) (*domain.ScheduleConfig, error) {
	config, err := uc.configRepo.GetConfigWithHierarchy(ctx, req.Username, ptr.Ptr(req.EventTypeID))
	if err == nil {
		uc.logger.Info("GetAvailability: using schedule config id=%d", config.ID)
		return config, nil
	}
	if !errors.Is(err, scheduleRepo.ErrConfigNotFound) {
		uc.logger.Error("GetAvailability: failed to get schedule config: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailability: using default schedule for username=%s", req.Username)
	return &domain.ScheduleConfig{
		Username:            req.Username,
		DayStart:            uc.schedule.Window.DayStart,
		DayEnd:              uc.schedule.Window.DayEnd,
		SlotDurationMinutes: uc.schedule.SlotDurationMinutes,
	}, nil
}

// fetchAvailability читает ответ Cal.com из кэша, при промахе обращается к API
// Ошибки кэша не прерывают запрос
func (uc *UseCase) fetchAvailability(ctx context.Context, req *calcom.AvailabilityRequest) (*calcom.Availability, error) {
	cached, err := uc.cache.Get(ctx, req)
	switch {
	case err == nil:
		uc.cacheObserver.ObserveCache("hit")
		uc.logger.Info("GetAvailability: cache hit for username=%s", req.Username)
		return cached, nil
	case errors.Is(err, cacheRepo.ErrCacheMiss):
		uc.cacheObserver.ObserveCache("miss")
	default:
		uc.cacheObserver.ObserveCache("error")
		uc.logger.Warn("GetAvailability: cache read failed: %v", err)
	}

	availability, err := uc.calcomClient.GetAvailability(ctx, req)
	if err != nil {
		var statusErr *calcom.StatusError
		if errors.As(err, &statusErr) {
			uc.logger.Warn("GetAvailability: Cal.com responded with status %d for username=%s",
				statusErr.StatusCode, req.Username)
			return nil, fmt.Errorf("%w: %w", ErrUpstreamFetch, err)
		}
		uc.logger.Error("GetAvailability: failed to fetch availability for username=%s: %v", req.Username, err)
		return nil, fmt.Errorf("%w: %w", ErrUpstreamFetch, err)
	}

	if err := uc.cache.Set(ctx, req, availability); err != nil {
		uc.logger.Warn("GetAvailability: cache write failed: %v", err)
	}

	return availability, nil
}

// resolveTimeZone приоритет: запрос > настройки пользователя > ответ Cal.com > значение по умолчанию
func (uc *UseCase) resolveTimeZone(req *Request, config *domain.ScheduleConfig, availability *calcom.Availability) string {
	if req.TimeZone != "" {
		return req.TimeZone
	}
	if tz := ptr.Deref(config.TimeZone, ""); tz != "" {
		return tz
	}
	if availability.TimeZone != "" {
		return availability.TimeZone
	}
	if uc.schedule.TimeZone != "" {
		return uc.schedule.TimeZone
	}
	return domain.DefaultTimeZone
}
