package get_availability

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

var testDay = time.Date(2024, time.October, 15, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return testDay.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func window(start, end string) domain.WorkingWindow {
	return domain.WorkingWindow{DayStart: types.TimeString(start), DayEnd: types.TimeString(end)}
}

func singleDay(w domain.WorkingWindow, granularity time.Duration, busy ...domain.TimeInterval) domain.DaySchedule {
	days := reduceAvailability(reduceInput{
		From:        testDay,
		To:          testDay,
		Location:    time.UTC,
		Window:      w,
		Granularity: granularity,
		Busy:        busy,
	})
	return days[0]
}

func TestReduceAvailability_Scenarios(t *testing.T) {
	tests := []struct {
		name   string
		window domain.WorkingWindow
		busy   []domain.TimeInterval
		want   []string
	}{
		{
			name:   "lunch break splits the day",
			window: window("10:00", "20:00"),
			busy:   []domain.TimeInterval{{Start: at(12, 0), End: at(13, 0)}},
			want:   []string{"10:00 AM - 11:30 AM", "1:00 PM - 7:30 PM"},
		},
		{
			name:   "single slot has no dash",
			window: window("10:00", "10:30"),
			want:   []string{"10:00 AM"},
		},
		{
			name:   "busy outside working window is ignored",
			window: window("10:00", "20:00"),
			busy: []domain.TimeInterval{
				{Start: at(6, 0), End: at(8, 0)},
				{Start: at(20, 0), End: at(22, 0)},
			},
			want: []string{"10:00 AM - 7:30 PM"},
		},
		{
			name:   "isolated free slot between busy blocks",
			window: window("10:00", "12:00"),
			busy: []domain.TimeInterval{
				{Start: at(10, 0), End: at(10, 30)},
				{Start: at(11, 0), End: at(12, 0)},
			},
			want: []string{"10:30 AM"},
		},
		{
			name:   "overlapping and unsorted busy intervals",
			window: window("10:00", "14:00"),
			busy: []domain.TimeInterval{
				{Start: at(12, 0), End: at(13, 0)},
				{Start: at(10, 30), End: at(11, 30)},
				{Start: at(11, 0), End: at(12, 30)},
			},
			want: []string{"10:00 AM", "1:00 PM - 1:30 PM"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day := singleDay(tt.window, 30*time.Minute, tt.busy...)

			require.False(t, day.NoSlots())
			assert.Equal(t, tt.want, day.Labels())
		})
	}
}

func TestReduceAvailability_SlotStartDecidesBusy(t *testing.T) {
	// 12:00 начинается до занятого интервала и остается свободным, 12:30 попадает внутрь
	day := singleDay(window("12:00", "13:30"), 30*time.Minute,
		domain.TimeInterval{Start: at(12, 15), End: at(12, 45)})

	assert.Equal(t, []time.Time{at(12, 0), at(13, 0)}, day.FreeSlots)
	assert.Equal(t, []string{"12:00 PM", "1:00 PM"}, day.Labels())
}

func TestReduceAvailability_BusyEndIsExclusive(t *testing.T) {
	day := singleDay(window("10:00", "11:00"), 30*time.Minute,
		domain.TimeInterval{Start: at(9, 0), End: at(10, 30)})

	assert.Equal(t, []time.Time{at(10, 30)}, day.FreeSlots)
}

func TestReduceAvailability_FullyBusyDay(t *testing.T) {
	day := singleDay(window("10:00", "20:00"), 30*time.Minute,
		domain.TimeInterval{Start: at(10, 0), End: at(20, 0)})

	assert.True(t, day.NoSlots())
	assert.Empty(t, day.Ranges)
	assert.Equal(t, "Tuesday, Oct 15: No available slots", day.Summary())
}

func TestReduceAvailability_SlotCountWithoutBusy(t *testing.T) {
	tests := []struct {
		window      domain.WorkingWindow
		granularity time.Duration
	}{
		{window("10:00", "20:00"), 30 * time.Minute},
		{window("10:00", "20:00"), 45 * time.Minute},
		{window("09:00", "17:30"), 60 * time.Minute},
		{window("10:00", "10:20"), 30 * time.Minute},
		{window("00:00", "23:59"), 7 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.window.DayStart.String()+"-"+tt.window.DayEnd.String()+" by "+tt.granularity.String(), func(t *testing.T) {
			day := singleDay(tt.window, tt.granularity)

			want := int(tt.window.Duration() / tt.granularity)
			assert.Len(t, day.FreeSlots, want)
			if want == 0 {
				assert.True(t, day.NoSlots())
				return
			}
			// последний слот целиком помещается в окно
			lastEnd := day.FreeSlots[len(day.FreeSlots)-1].Add(tt.granularity)
			_, dayEnd := tt.window.Bounds(testDay, time.UTC)
			assert.False(t, lastEnd.After(dayEnd))
		})
	}
}

func TestReduceAvailability_DisjointBusyLeavesDayFree(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	w := window("10:00", "20:00")

	for i := 0; i < 50; i++ {
		var busy []domain.TimeInterval
		n := rng.Intn(5) + 1
		for j := 0; j < n; j++ {
			// занятые интервалы до 10:00 или после 20:00
			if rng.Intn(2) == 0 {
				start := at(rng.Intn(9), rng.Intn(60))
				busy = append(busy, domain.TimeInterval{Start: start, End: at(10, 0)})
			} else {
				start := at(20, rng.Intn(60))
				busy = append(busy, domain.TimeInterval{Start: start, End: start.Add(time.Hour)})
			}
		}

		day := singleDay(w, 30*time.Minute, busy...)
		require.Len(t, day.FreeSlots, 20)
		require.Equal(t, []string{"10:00 AM - 7:30 PM"}, day.Labels())
	}
}

func TestMergeRanges_Idempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	granularity := 30 * time.Minute

	for i := 0; i < 100; i++ {
		var slots []time.Time
		for slot := at(10, 0); slot.Before(at(20, 0)); slot = slot.Add(granularity) {
			if rng.Intn(3) > 0 {
				slots = append(slots, slot)
			}
		}

		merged := mergeSlots(slots, granularity)
		assert.Equal(t, merged, mergeRanges(merged))

		covered := 0
		for _, r := range merged {
			covered += int(r.End.Sub(r.Start) / granularity)
		}
		assert.Equal(t, len(slots), covered)
	}
}

func TestReduceAvailability_DayRangeInTimezone(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	from := time.Date(2024, time.October, 15, 2, 0, 0, 0, time.UTC) // 14 октября 22:00 в Нью-Йорке
	busy := []domain.TimeInterval{{
		Start: time.Date(2024, time.October, 15, 14, 0, 0, 0, time.UTC), // 10:00 EDT
		End:   time.Date(2024, time.October, 15, 15, 0, 0, 0, time.UTC),
	}}

	days := reduceAvailability(reduceInput{
		From:        from,
		To:          from.AddDate(0, 0, 7),
		Location:    loc,
		Window:      window("10:00", "20:00"),
		Granularity: 30 * time.Minute,
		Busy:        busy,
	})

	require.Len(t, days, 8)
	assert.Equal(t, "Monday, Oct 14", days[0].Date.Format(domain.DayLabel))
	assert.Equal(t, "Monday, Oct 21", days[7].Date.Format(domain.DayLabel))

	assert.Equal(t, []string{"10:00 AM - 7:30 PM"}, days[0].Labels())
	assert.Equal(t, []string{"11:00 AM - 7:30 PM"}, days[1].Labels())
	assert.Equal(t, "Tuesday, Oct 15: 11:00 AM - 7:30 PM", days[1].Summary())
}

func TestReduceAvailability_DaylightSavingChange(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	// 27 октября 2024 часы переводятся назад в 03:00, окно 00:00-06:00 длится 7 часов
	day := time.Date(2024, time.October, 27, 12, 0, 0, 0, loc)
	days := reduceAvailability(reduceInput{
		From:        day,
		To:          day,
		Location:    loc,
		Window:      window("00:00", "06:00"),
		Granularity: time.Hour,
	})

	require.Len(t, days, 1)
	assert.Len(t, days[0].FreeSlots, 7)
	require.Len(t, days[0].Ranges, 1)
	assert.Equal(t, "12:00 AM - 5:00 AM", days[0].Ranges[0].Label())
}

func TestReduceAvailability_InvalidParameters(t *testing.T) {
	assert.Empty(t, reduceAvailability(reduceInput{
		From: testDay, To: testDay, Location: time.UTC,
		Window: window("20:00", "10:00"), Granularity: 30 * time.Minute,
	}))
	assert.Empty(t, reduceAvailability(reduceInput{
		From: testDay, To: testDay, Location: time.UTC,
		Window: window("10:00", "20:00"),
	}))
}
