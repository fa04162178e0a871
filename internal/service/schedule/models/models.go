package models

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// UpsertConfigRequest запрос на создание или обновление настроек расписания
// Незаполненные поля при создании берутся из значений по умолчанию, при обновлении не меняются
type UpsertConfigRequest struct {
	Username            string  `json:"username"`
	EventTypeID         *int64  `json:"eventTypeId,omitempty"` // NULL = для всех типов событий
	DayStart            *string `json:"dayStart,omitempty"`    // HH:MM
	DayEnd              *string `json:"dayEnd,omitempty"`      // HH:MM
	SlotDurationMinutes *int    `json:"slotDurationMinutes,omitempty"`
	TimeZone            *string `json:"timeZone,omitempty"` // "" сбрасывает переопределение
}

// ConfigResponse ответ с настройками расписания
type ConfigResponse struct {
	ID                  int64     `json:"id"`
	Username            string    `json:"username"`
	EventTypeID         *int64    `json:"eventTypeId,omitempty"`
	DayStart            string    `json:"dayStart"`
	DayEnd              string    `json:"dayEnd"`
	SlotDurationMinutes int       `json:"slotDurationMinutes"`
	TimeZone            *string   `json:"timeZone,omitempty"`
	Level               string    `json:"level"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.ScheduleConfig) *ConfigResponse {
	if c == nil {
		return nil
	}

	level := "event_type"
	if c.IsUserWide() {
		level = "user"
	}

	return &ConfigResponse{
		ID:                  c.ID,
		Username:            c.Username,
		EventTypeID:         c.EventTypeID,
		DayStart:            c.DayStart.String(),
		DayEnd:              c.DayEnd.String(),
		SlotDurationMinutes: c.SlotDurationMinutes,
		TimeZone:            c.TimeZone,
		Level:               level,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}

// ApplyToConfig применяет переданные поля к конфигурации
// Время нормализуется к HH:MM, некорректное значение возвращает ошибку разбора
func (r *UpsertConfigRequest) ApplyToConfig(config *domain.ScheduleConfig) error {
	if r.DayStart != nil {
		ts, err := types.NewTimeStringFromString(*r.DayStart)
		if err != nil {
			return err
		}
		config.DayStart = ts
	}
	if r.DayEnd != nil {
		ts, err := types.NewTimeStringFromString(*r.DayEnd)
		if err != nil {
			return err
		}
		config.DayEnd = ts
	}
	if r.SlotDurationMinutes != nil {
		config.SlotDurationMinutes = *r.SlotDurationMinutes
	}
	if r.TimeZone != nil {
		if *r.TimeZone == "" {
			config.TimeZone = nil
		} else {
			tz := *r.TimeZone
			config.TimeZone = &tz
		}
	}
	return nil
}
