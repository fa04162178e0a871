package domain

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// WorkingWindow рабочее окно дня (время по часам в целевом часовом поясе)
type WorkingWindow struct {
	DayStart types.TimeString
	DayEnd   types.TimeString
}

// IsValid проверяет, что начало окна раньше конца
func (w WorkingWindow) IsValid() bool {
	return w.DayStart.IsBefore(w.DayEnd)
}

// Duration длительность окна
func (w WorkingWindow) Duration() time.Duration {
	return time.Duration(w.DayEnd.Minutes()-w.DayStart.Minutes()) * time.Minute
}

// Bounds возвращает границы окна для даты date в часовом поясе loc
func (w WorkingWindow) Bounds(date time.Time, loc *time.Location) (time.Time, time.Time) {
	return w.DayStart.On(date, loc), w.DayEnd.On(date, loc)
}

// DisplayRange объединенная последовательность подряд идущих свободных слотов
// Start - начало первого слота, Last - начало последнего, End - конец последнего
type DisplayRange struct {
	Start time.Time
	Last  time.Time
	End   time.Time
}

// IsSingleSlot возвращает true, если диапазон состоит из одного слота
func (r DisplayRange) IsSingleSlot() bool {
	return r.Start.Equal(r.Last)
}

// Label "10:00 AM - 11:30 AM" или "10:00 AM" для одиночного слота
func (r DisplayRange) Label() string {
	if r.IsSingleSlot() {
		return r.Start.Format(SlotLabel)
	}
	return r.Start.Format(SlotLabel) + " - " + r.Last.Format(SlotLabel)
}

// DaySchedule свободные слоты одного календарного дня
type DaySchedule struct {
	Date      time.Time
	FreeSlots []time.Time
	Ranges    []DisplayRange
}

// NoSlots возвращает true, если в этот день нет свободных слотов
func (d DaySchedule) NoSlots() bool {
	return len(d.FreeSlots) == 0
}

// Labels подписи диапазонов дня
func (d DaySchedule) Labels() []string {
	labels := make([]string, len(d.Ranges))
	for i, r := range d.Ranges {
		labels[i] = r.Label()
	}
	return labels
}

// Summary строка вида "Monday, Oct 15: 10:00 AM - 11:30 AM, 1:00 PM"
func (d DaySchedule) Summary() string {
	if d.NoSlots() {
		return d.Date.Format(DayLabel) + ": " + NoSlotsLabel
	}
	return d.Date.Format(DayLabel) + ": " + strings.Join(d.Labels(), ", ")
}
