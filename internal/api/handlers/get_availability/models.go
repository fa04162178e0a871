package get_availability

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	getAvailability "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Username            string            `json:"username"`
	EventTypeID         int64             `json:"eventTypeId"`
	TimeZone            string            `json:"timeZone"`
	DateFrom            string            `json:"dateFrom"`
	DateTo              string            `json:"dateTo"`
	DayStart            string            `json:"dayStart"`
	DayEnd              string            `json:"dayEnd"`
	SlotDurationMinutes int               `json:"slotDurationMinutes"`
	Days                []DayAvailability `json:"days"`
}

// DayAvailability свободное время одного дня
// NoSlots = true означает, что свободных слотов нет (Ranges пустой)
type DayAvailability struct {
	Date    string      `json:"date"`
	Weekday string      `json:"weekday"`
	NoSlots bool        `json:"noSlots"`
	Ranges  []FreeRange `json:"ranges"`
	Summary string      `json:"summary"`
}

// FreeRange объединенный диапазон свободных слотов
type FreeRange struct {
	Label string `json:"label"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	days := make([]DayAvailability, len(resp.Days))
	for i, day := range resp.Days {
		ranges := make([]FreeRange, len(day.Ranges))
		for j, r := range day.Ranges {
			ranges[j] = FreeRange{
				Label: r.Label(),
				Start: r.Start.Format(time.RFC3339),
				End:   r.End.Format(time.RFC3339),
			}
		}

		days[i] = DayAvailability{
			Date:    day.Date.Format(domain.DateFormat),
			Weekday: day.Date.Weekday().String(),
			NoSlots: day.NoSlots(),
			Ranges:  ranges,
			Summary: day.Summary(),
		}
	}

	return &AvailabilityResponse{
		Username:            resp.Username,
		EventTypeID:         resp.EventTypeID,
		TimeZone:            resp.TimeZone,
		DateFrom:            resp.DateFrom.Format(time.RFC3339),
		DateTo:              resp.DateTo.Format(time.RFC3339),
		DayStart:            resp.Window.DayStart.String(),
		DayEnd:              resp.Window.DayEnd.String(),
		SlotDurationMinutes: int(resp.Granularity / time.Minute),
		Days:                days,
	}
}

// RenderText текстовое представление: заголовок и по строке на день
func RenderText(resp *getAvailability.Response) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Your availability for the next %d days (Timezone: %s):\n", len(resp.Days), resp.TimeZone)
	for _, day := range resp.Days {
		b.WriteString(day.Summary())
		b.WriteByte('\n')
	}
	return b.String()
}
