package get_availability

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// reduceInput входные данные расчета свободных слотов
type reduceInput struct {
	From        time.Time // первый день периода (берется дата в loc)
	To          time.Time // последний день периода включительно
	Location    *time.Location
	Window      domain.WorkingWindow
	Granularity time.Duration
	Busy        []domain.TimeInterval
}

// reduceAvailability рассчитывает свободные слоты по дням периода
// Чистая функция: результат зависит только от входных данных
func reduceAvailability(in reduceInput) []domain.DaySchedule {
	if in.Granularity <= 0 || !in.Window.IsValid() {
		return []domain.DaySchedule{}
	}

	first := dateOf(in.From.In(in.Location))
	last := dateOf(in.To.In(in.Location))

	days := make([]domain.DaySchedule, 0)
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		free := freeSlots(partitionDay(day, in.Location, in.Window, in.Granularity), in.Busy)
		days = append(days, domain.DaySchedule{
			Date:      day,
			FreeSlots: free,
			Ranges:    mergeSlots(free, in.Granularity),
		})
	}

	return days
}

// partitionDay делит рабочее окно дня на слоты длиной granularity
// Неполный последний слот отбрасывается
func partitionDay(day time.Time, loc *time.Location, window domain.WorkingWindow, granularity time.Duration) []time.Time {
	dayStart, dayEnd := window.Bounds(day, loc)

	slots := make([]time.Time, 0)
	for slot := dayStart; !slot.Add(granularity).After(dayEnd); slot = slot.Add(granularity) {
		slots = append(slots, slot)
	}

	return slots
}

// freeSlots оставляет слоты, начало которых не попадает ни в один занятый интервал
func freeSlots(slots []time.Time, busy []domain.TimeInterval) []time.Time {
	free := make([]time.Time, 0, len(slots))
	for _, slot := range slots {
		if !isBusy(slot, busy) {
			free = append(free, slot)
		}
	}
	return free
}

// isBusy проверяет только момент начала слота: busyStart <= slotStart < busyEnd
// Слот, который начинается до занятого интервала и пересекается с ним, считается свободным
func isBusy(slotStart time.Time, busy []domain.TimeInterval) bool {
	for _, interval := range busy {
		if interval.Contains(slotStart) {
			return true
		}
	}
	return false
}

// mergeSlots превращает упорядоченные начала свободных слотов в диапазоны
func mergeSlots(slots []time.Time, granularity time.Duration) []domain.DisplayRange {
	ranges := make([]domain.DisplayRange, len(slots))
	for i, slot := range slots {
		ranges[i] = domain.DisplayRange{Start: slot, Last: slot, End: slot.Add(granularity)}
	}
	return mergeRanges(ranges)
}

// mergeRanges склеивает диапазоны, где следующий начинается ровно в конце предыдущего
// Повторное применение к результату ничего не меняет
func mergeRanges(ranges []domain.DisplayRange) []domain.DisplayRange {
	merged := make([]domain.DisplayRange, 0, len(ranges))
	for _, r := range ranges {
		if n := len(merged); n > 0 && merged[n-1].End.Equal(r.Start) {
			merged[n-1].Last = r.Last
			merged[n-1].End = r.End
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

// dateOf полночь даты t в ее же часовом поясе
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
