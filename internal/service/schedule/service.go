package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedule/models"
)

// Service сервис для работы с настройками расписания пользователей
type Service struct {
	repo     ScheduleRepository
	defaults domain.ScheduleDefaults
	logger   Logger
}

// NewService создает новый экземпляр сервиса
func NewService(repo ScheduleRepository, defaults domain.ScheduleDefaults, logger Logger) *Service {
	return &Service{
		repo:     repo,
		defaults: defaults,
		logger:   logger,
	}
}

// Get получает действующую конфигурацию с учетом иерархии: event type > user
func (s *Service) Get(ctx context.Context, username string, eventTypeID *int64) (*models.ConfigResponse, error) {
	s.logger.Info("Get: fetching schedule config for username=%s, event_type=%v", username, eventTypeID)

	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}

	config, err := s.repo.GetConfigWithHierarchy(ctx, username, eventTypeID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			s.logger.Warn("Get: no schedule config for username=%s", username)
			return nil, ErrConfigNotFound
		}
		s.logger.Error("Get: repository error: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Get: found config id=%d for username=%s", config.ID, username)
	return models.FromDomainConfig(config), nil
}

// Upsert создает конфигурацию указанного уровня или обновляет существующую
// Возвращает флаг created, чтобы обработчик мог ответить 201 или 200
func (s *Service) Upsert(ctx context.Context, req *models.UpsertConfigRequest) (*models.ConfigResponse, bool, error) {
	s.logger.Info("Upsert: username=%s, event_type=%v", req.Username, req.EventTypeID)

	if req.Username == "" || len(req.Username) > domain.MaxUsernameLength {
		return nil, false, fmt.Errorf("%w: username is required and must be at most %d characters",
			ErrInvalidInput, domain.MaxUsernameLength)
	}
	if req.EventTypeID != nil && *req.EventTypeID <= 0 {
		return nil, false, fmt.Errorf("%w: eventTypeId must be positive", ErrInvalidInput)
	}

	// 1. Ищем существующую конфигурацию ровно этого уровня
	existing, err := s.repo.GetByUserAndEventType(ctx, req.Username, req.EventTypeID)
	if err != nil && !errors.Is(err, scheduleRepo.ErrConfigNotFound) {
		s.logger.Error("Upsert: failed to check existing config: %v", err)
		return nil, false, fmt.Errorf("%w: failed to check existing config: %v", ErrInternal, err)
	}

	created := existing == nil
	config := existing
	if created {
		config = &domain.ScheduleConfig{
			Username:            req.Username,
			EventTypeID:         req.EventTypeID,
			DayStart:            s.defaults.Window.DayStart,
			DayEnd:              s.defaults.Window.DayEnd,
			SlotDurationMinutes: s.defaults.SlotDurationMinutes,
		}
	}

	// 2. Применяем изменения к копии и валидируем
	updated := *config
	if err := req.ApplyToConfig(&updated); err != nil {
		s.logger.Warn("Upsert: invalid time value: %v", err)
		return nil, false, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := validateConfig(&updated); err != nil {
		s.logger.Warn("Upsert: validation failed: %v", err)
		return nil, false, err
	}

	// 3. Сохраняем
	var saved *domain.ScheduleConfig
	if created {
		saved, err = s.repo.Create(ctx, &updated)
	} else {
		saved, err = s.repo.Update(ctx, updated.ID, &updated)
	}
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			s.logger.Warn("Upsert: config id=%d disappeared during update", updated.ID)
			return nil, false, ErrConfigNotFound
		}
		s.logger.Error("Upsert: repository error: %v", err)
		return nil, false, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: saved config id=%d (created=%t)", saved.ID, created)
	return models.FromDomainConfig(saved), created, nil
}

// Delete удаляет конфигурацию указанного уровня
func (s *Service) Delete(ctx context.Context, username string, eventTypeID *int64) error {
	s.logger.Info("Delete: username=%s, event_type=%v", username, eventTypeID)

	if err := s.repo.DeleteByUserAndEventType(ctx, username, eventTypeID); err != nil {
		if errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			s.logger.Warn("Delete: config not found for username=%s, event_type=%v", username, eventTypeID)
			return ErrConfigNotFound
		}
		s.logger.Error("Delete: repository error: %v", err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: removed config for username=%s, event_type=%v", username, eventTypeID)
	return nil
}

// validateConfig валидирует параметры расписания
func validateConfig(config *domain.ScheduleConfig) error {
	if !config.WorkingWindow().IsValid() {
		return fmt.Errorf("%w: dayStart must be before dayEnd", ErrInvalidInput)
	}

	if config.SlotDurationMinutes < domain.MinSlotDurationMinutes || config.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slotDurationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	if config.WorkingWindow().Duration() < config.Granularity() {
		return fmt.Errorf("%w: working window is shorter than one slot", ErrInvalidInput)
	}

	if config.TimeZone != nil {
		if _, err := time.LoadLocation(*config.TimeZone); err != nil {
			return fmt.Errorf("%w: unknown timeZone %q", ErrInvalidInput, *config.TimeZone)
		}
	}

	return nil
}
