package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "valid", input: "10:00", want: "10:00"},
		{name: "single digit hour", input: "9:30", want: "09:30"},
		{name: "end of day", input: "23:59", want: "23:59"},
		{name: "garbage", input: "ten", wantErr: true},
		{name: "out of range", input: "25:00", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("10:00").IsBefore("20:00"))
	assert.False(t, TimeString("20:00").IsBefore("20:00"))
	assert.Equal(t, 600, TimeString("10:00").Minutes())
}

func TestTimeString_On(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	date := time.Date(2024, time.March, 5, 23, 0, 0, 0, time.UTC)
	got := TimeString("10:30").On(date, loc)

	assert.Equal(t, time.Date(2024, time.March, 5, 10, 30, 0, 0, loc), got)
}
