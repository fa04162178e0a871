package domain

import "time"

// TimeInterval полуоткрытый интервал [Start, End)
type TimeInterval struct {
	Start time.Time
	End   time.Time
}

// Contains проверяет, что момент t попадает в интервал: Start <= t < End
func (i TimeInterval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}

// IsValid проверяет инвариант Start < End
func (i TimeInterval) IsValid() bool {
	return i.Start.Before(i.End)
}

// In возвращает интервал в указанном часовом поясе (моменты времени не меняются)
func (i TimeInterval) In(loc *time.Location) TimeInterval {
	return TimeInterval{Start: i.Start.In(loc), End: i.End.In(loc)}
}
