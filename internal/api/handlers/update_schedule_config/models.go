package update_schedule_config

import (
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedule/models"
)

// UpdateConfigRequest тело PUT запроса, username берется из URL
type UpdateConfigRequest struct {
	EventTypeID         *int64  `json:"eventTypeId,omitempty"`
	DayStart            *string `json:"dayStart,omitempty"`
	DayEnd              *string `json:"dayEnd,omitempty"`
	SlotDurationMinutes *int    `json:"slotDurationMinutes,omitempty"`
	TimeZone            *string `json:"timeZone,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в запрос сервиса
func (r *UpdateConfigRequest) ToServiceRequest(username string) *models.UpsertConfigRequest {
	return &models.UpsertConfigRequest{
		Username:            username,
		EventTypeID:         r.EventTypeID,
		DayStart:            r.DayStart,
		DayEnd:              r.DayEnd,
		SlotDurationMinutes: r.SlotDurationMinutes,
		TimeZone:            r.TimeZone,
	}
}
