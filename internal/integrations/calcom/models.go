package calcom

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// AvailabilityRequest параметры запроса GET /availability
type AvailabilityRequest struct {
	APIKey      string
	Username    string
	EventTypeID int64
	DateFrom    time.Time
	DateTo      time.Time
}

// Availability ответ Cal.com /availability
// Используются только занятые интервалы и часовой пояс пользователя
type Availability struct {
	Busy     []BusyPeriod `json:"busy"`
	TimeZone string       `json:"timeZone"`
}

// BusyPeriod занятый интервал в формате ISO-8601
type BusyPeriod struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// BusyIntervals разбирает занятые интервалы
// Любая ошибка разбора прерывает обработку целиком: частичные данные не возвращаются
func (a *Availability) BusyIntervals() ([]domain.TimeInterval, error) {
	if a == nil || len(a.Busy) == 0 {
		return []domain.TimeInterval{}, nil
	}

	intervals := make([]domain.TimeInterval, 0, len(a.Busy))
	for i, period := range a.Busy {
		start, err := parseTimestamp(period.Start)
		if err != nil {
			return nil, fmt.Errorf("%w: busy[%d].start=%q", ErrMalformedTimestamp, i, period.Start)
		}

		end, err := parseTimestamp(period.End)
		if err != nil {
			return nil, fmt.Errorf("%w: busy[%d].end=%q", ErrMalformedTimestamp, i, period.End)
		}

		interval := domain.TimeInterval{Start: start, End: end}
		if !interval.IsValid() {
			return nil, fmt.Errorf("%w: busy[%d] ends before it starts (%s - %s)",
				ErrMalformedTimestamp, i, period.Start, period.End)
		}

		intervals = append(intervals, interval)
	}

	return intervals, nil
}

// timestampLayouts форматы ISO-8601, которые встречаются в ответах Cal.com
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05", // без смещения считается UTC
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
