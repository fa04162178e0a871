package get_availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// validateRequest валидирует запрос после подстановки значений по умолчанию
func validateRequest(req *Request) error {
	if req.Username == "" {
		return fmt.Errorf("%w: username is required", ErrInvalidInput)
	}

	if len(req.Username) > domain.MaxUsernameLength {
		return fmt.Errorf("%w: username is too long", ErrInvalidInput)
	}

	if req.EventTypeID <= 0 {
		return fmt.Errorf("%w: eventTypeID must be positive", ErrInvalidInput)
	}

	if !req.DateTo.After(req.DateFrom) {
		return fmt.Errorf("%w: dateTo must be after dateFrom", ErrInvalidInput)
	}

	if req.DateTo.Sub(req.DateFrom) > domain.MaxRangeDays*24*time.Hour {
		return fmt.Errorf("%w: range must not exceed %d days", ErrInvalidInput, domain.MaxRangeDays)
	}

	if req.TimeZone != "" {
		if _, err := time.LoadLocation(req.TimeZone); err != nil {
			return fmt.Errorf("%w: unknown timeZone %q", ErrInvalidInput, req.TimeZone)
		}
	}

	return nil
}

// validateSchedule проверяет параметры расписания перед расчетом
func validateSchedule(window domain.WorkingWindow, slotDurationMinutes int) error {
	if !window.IsValid() {
		return fmt.Errorf("%w: working window %s-%s is empty", ErrInternal, window.DayStart, window.DayEnd)
	}

	if slotDurationMinutes < domain.MinSlotDurationMinutes || slotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slot duration %d is out of range", ErrInternal, slotDurationMinutes)
	}

	return nil
}
