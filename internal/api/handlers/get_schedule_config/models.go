package get_schedule_config

import (
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedule/models"
)

// LevelDefault уровень ответа, когда сохраненной конфигурации нет
const LevelDefault = "default"

// GetDefaultConfigResponse возвращает настройки по умолчанию из конфигурации сервиса
func GetDefaultConfigResponse(username string, eventTypeID *int64, defaults domain.ScheduleDefaults) *models.ConfigResponse {
	tz := defaults.TimeZone
	return &models.ConfigResponse{
		ID:                  0, // 0 означает, что конфигурация не сохранена
		Username:            username,
		EventTypeID:         eventTypeID,
		DayStart:            defaults.Window.DayStart.String(),
		DayEnd:              defaults.Window.DayEnd.String(),
		SlotDurationMinutes: defaults.SlotDurationMinutes,
		TimeZone:            &tz,
		Level:               LevelDefault,
	}
}
