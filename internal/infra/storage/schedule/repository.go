package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

const table = "user_schedule_config"

var columns = []string{
	"id",
	"username",
	"event_type_id",
	"day_start",
	"day_end",
	"slot_duration_minutes",
	"time_zone",
	"created_at",
	"updated_at",
}

// Repository репозиторий настроек расписания пользователей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую конфигурацию
func (r *Repository) Create(ctx context.Context, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"username",
			"event_type_id",
			"day_start",
			"day_end",
			"slot_duration_minutes",
			"time_zone",
		).
		Values(
			config.Username,
			config.EventTypeID,
			config.DayStart.String(),
			config.DayEnd.String(),
			config.SlotDurationMinutes,
			config.TimeZone,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&config.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

// GetByUserAndEventType получает конфигурацию ровно указанного уровня
// eventTypeID == nil ищет конфигурацию для всех типов событий пользователя
func (r *Repository) GetByUserAndEventType(ctx context.Context, username string, eventTypeID *int64) (*domain.ScheduleConfig, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(keyCondition(username, eventTypeID)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserAndEventType - build select query: %v", ErrBuildQuery, err)
	}

	config, err := scanConfig(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("GetByUserAndEventType: %w", err)
	}
	return config, nil
}

// GetConfigWithHierarchy получает конфигурацию с учетом приоритетов:
// 1. Конфигурация для конкретного типа события (username, eventTypeID)
// 2. Конфигурация пользователя для всех типов событий (username, NULL)
//
// Если конфигурация не найдена ни на одном уровне, возвращает ErrConfigNotFound
func (r *Repository) GetConfigWithHierarchy(ctx context.Context, username string, eventTypeID *int64) (*domain.ScheduleConfig, error) {
	if eventTypeID != nil {
		config, err := r.GetByUserAndEventType(ctx, username, eventTypeID)
		if err == nil {
			return config, nil
		}
		if !errors.Is(err, ErrConfigNotFound) {
			return nil, fmt.Errorf("GetConfigWithHierarchy - level 1 (event type): %w", err)
		}
	}

	config, err := r.GetByUserAndEventType(ctx, username, nil)
	if err == nil {
		return config, nil
	}
	if !errors.Is(err, ErrConfigNotFound) {
		return nil, fmt.Errorf("GetConfigWithHierarchy - level 2 (user): %w", err)
	}

	return nil, ErrConfigNotFound
}

// Update обновляет параметры расписания
func (r *Repository) Update(ctx context.Context, id int64, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	query, args, err := psqlbuilder.Update(table).
		Set("day_start", config.DayStart.String()).
		Set("day_end", config.DayEnd.String()).
		Set("slot_duration_minutes", config.SlotDurationMinutes).
		Set("time_zone", config.TimeZone).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	config.ID = id
	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

// DeleteByUserAndEventType удаляет конфигурацию ровно указанного уровня
func (r *Repository) DeleteByUserAndEventType(ctx context.Context, username string, eventTypeID *int64) error {
	query, args, err := psqlbuilder.Delete(table).
		Where(keyCondition(username, eventTypeID)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteByUserAndEventType - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteByUserAndEventType - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteByUserAndEventType - rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrConfigNotFound
	}

	return nil
}

// keyCondition условие выборки по ключу (username, event_type_id), NULL сравнивается через IS NULL
func keyCondition(username string, eventTypeID *int64) squirrel.And {
	if eventTypeID == nil {
		return squirrel.And{squirrel.Eq{"username": username}, squirrel.Eq{"event_type_id": nil}}
	}
	return squirrel.And{squirrel.Eq{"username": username}, squirrel.Eq{"event_type_id": *eventTypeID}}
}

func scanConfig(row *sql.Row) (*domain.ScheduleConfig, error) {
	var (
		config               domain.ScheduleConfig
		dayStart, dayEnd     string
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&config.ID,
		&config.Username,
		&config.EventTypeID,
		&dayStart,
		&dayEnd,
		&config.SlotDurationMinutes,
		&config.TimeZone,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScanRow, err)
	}

	config.DayStart = types.TimeString(dayStart)
	config.DayEnd = types.TimeString(dayEnd)
	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return &config, nil
}
