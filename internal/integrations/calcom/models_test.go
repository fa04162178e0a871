package calcom

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailability_BusyIntervals(t *testing.T) {
	a := &Availability{Busy: []BusyPeriod{
		{Start: "2024-10-15T12:00:00Z", End: "2024-10-15T13:00:00.000Z"},
		{Start: "2024-10-15T14:00:00+02:00", End: "2024-10-15T15:00:00+0200"},
	}}

	got, err := a.BusyIntervals()
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.True(t, got[0].Start.Equal(time.Date(2024, 10, 15, 12, 0, 0, 0, time.UTC)))
	assert.True(t, got[0].End.Equal(time.Date(2024, 10, 15, 13, 0, 0, 0, time.UTC)))
	assert.True(t, got[1].Start.Equal(time.Date(2024, 10, 15, 12, 0, 0, 0, time.UTC)))
	assert.True(t, got[1].End.Equal(time.Date(2024, 10, 15, 13, 0, 0, 0, time.UTC)))
}

func TestAvailability_BusyIntervals_Empty(t *testing.T) {
	var nilAvailability *Availability

	got, err := nilAvailability.BusyIntervals()
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = (&Availability{}).BusyIntervals()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAvailability_BusyIntervals_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		period BusyPeriod
	}{
		{name: "bad start", period: BusyPeriod{Start: "yesterday", End: "2024-10-15T13:00:00Z"}},
		{name: "bad end", period: BusyPeriod{Start: "2024-10-15T12:00:00Z", End: "2024-10-15 13h"}},
		{name: "end before start", period: BusyPeriod{Start: "2024-10-15T13:00:00Z", End: "2024-10-15T12:00:00Z"}},
		{name: "empty interval", period: BusyPeriod{Start: "2024-10-15T13:00:00Z", End: "2024-10-15T13:00:00Z"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Availability{Busy: []BusyPeriod{
				{Start: "2024-10-15T10:00:00Z", End: "2024-10-15T11:00:00Z"},
				tt.period,
			}}

			got, err := a.BusyIntervals()
			assert.ErrorIs(t, err, ErrMalformedTimestamp)
			assert.Nil(t, got)
		})
	}
}
