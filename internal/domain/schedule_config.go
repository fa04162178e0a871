package domain

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// ScheduleConfig настройки расписания пользователя Cal.com
// Поддерживает иерархию:
// 1. Пользователь + тип события (username, event_type_id)
// 2. Все типы событий пользователя (username, NULL)
type ScheduleConfig struct {
	ID                  int64
	Username            string
	EventTypeID         *int64 // NULL = для всех типов событий
	DayStart            types.TimeString
	DayEnd              types.TimeString
	SlotDurationMinutes int
	TimeZone            *string // NULL = часовой пояс из ответа Cal.com
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsUserWide возвращает true, если конфигурация действует для всех типов событий
func (c *ScheduleConfig) IsUserWide() bool {
	return c.EventTypeID == nil
}

// WorkingWindow рабочее окно из конфигурации
func (c *ScheduleConfig) WorkingWindow() WorkingWindow {
	return WorkingWindow{DayStart: c.DayStart, DayEnd: c.DayEnd}
}

// Granularity длительность слота
func (c *ScheduleConfig) Granularity() time.Duration {
	return time.Duration(c.SlotDurationMinutes) * time.Minute
}

// ScheduleDefaults значения расписания, применяемые при отсутствии сохраненной конфигурации
type ScheduleDefaults struct {
	Window              WorkingWindow
	SlotDurationMinutes int
	RangeDays           int
	TimeZone            string
}

// DefaultScheduleDefaults значения по умолчанию (10:00-20:00, 30 минут, 7 дней, UTC)
func DefaultScheduleDefaults() ScheduleDefaults {
	return ScheduleDefaults{
		Window: WorkingWindow{
			DayStart: DefaultDayStart,
			DayEnd:   DefaultDayEnd,
		},
		SlotDurationMinutes: DefaultSlotDurationMinutes,
		RangeDays:           DefaultRangeDays,
		TimeZone:            DefaultTimeZone,
	}
}
