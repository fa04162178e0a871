package export_availability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	getAvailability "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_availability"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *getAvailability.Request) (*getAvailability.Response, error) {
	args := m.Called(ctx, req)
	if r := args.Get(0); r != nil {
		return r.(*getAvailability.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newYork(t *testing.T) *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	return loc
}

func sampleResponse(loc *time.Location) *getAvailability.Response {
	at := func(day, hour, minute int) time.Time {
		return time.Date(2024, time.October, day, hour, minute, 0, 0, loc)
	}
	return &getAvailability.Response{
		Username:    "samielsolh",
		EventTypeID: 1027409,
		TimeZone:    loc.String(),
		Days: []domain.DaySchedule{
			{
				Date:      at(15, 0, 0),
				FreeSlots: []time.Time{at(15, 10, 0), at(15, 10, 30)},
				Ranges:    []domain.DisplayRange{{Start: at(15, 10, 0), Last: at(15, 10, 30), End: at(15, 11, 0)}},
			},
			{
				Date:      at(16, 0, 0),
				FreeSlots: []time.Time{at(16, 19, 30)},
				Ranges:    []domain.DisplayRange{{Start: at(16, 19, 30), Last: at(16, 19, 30), End: at(16, 20, 0)}},
			},
			{Date: at(17, 0, 0)},
		},
	}
}

func decodeEvents(t *testing.T, body string) []ical.Event {
	cal, err := ical.NewDecoder(strings.NewReader(body)).Decode()
	require.NoError(t, err)
	return cal.Events()
}

func TestHandle_ExportsOneEventPerRange(t *testing.T) {
	loc := newYork(t)
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *getAvailability.Request) bool {
		return req.Username == "samielsolh" && req.TimeZone == "America/New_York"
	})).Return(sampleResponse(loc), nil)

	h := NewHandler(uc, nopLogger{})
	h.now = func() time.Time { return time.Date(2024, time.October, 15, 9, 30, 0, 0, time.UTC) }

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet,
		"/api/v1/availability.ics?username=samielsolh&timeZone=America/New_York", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/calendar")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "availability.ics")

	events := decodeEvents(t, rec.Body.String())
	require.Len(t, events, 2)

	start, err := events[0].DateTimeStart(nil)
	require.NoError(t, err)
	assert.True(t, start.Equal(time.Date(2024, time.October, 15, 14, 0, 0, 0, time.UTC)))

	end, err := events[0].DateTimeEnd(nil)
	require.NoError(t, err)
	assert.True(t, end.Equal(time.Date(2024, time.October, 15, 15, 0, 0, 0, time.UTC)))

	summary, err := events[1].Props.Text(ical.PropDescription)
	require.NoError(t, err)
	assert.Equal(t, "Wednesday, Oct 16: 7:30 PM", summary)
}

func TestBuildCalendar_StableUIDs(t *testing.T) {
	resp := sampleResponse(time.UTC)

	first := BuildCalendar(resp, time.Now())
	second := BuildCalendar(resp, time.Now().Add(time.Hour))

	require.Len(t, first.Children, 2)
	require.Len(t, second.Children, 2)

	uidA, err := first.Children[0].Props.Text(ical.PropUID)
	require.NoError(t, err)
	uidB, err := second.Children[0].Props.Text(ical.PropUID)
	require.NoError(t, err)
	uidOther, err := first.Children[1].Props.Text(ical.PropUID)
	require.NoError(t, err)

	assert.Equal(t, uidA, uidB)
	assert.NotEqual(t, uidA, uidOther)
	assert.True(t, strings.HasSuffix(uidA, "@"+uidDomain))
}

func TestHandle_UpstreamError(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.Anything).Return(nil, getAvailability.ErrUpstreamFetch)

	h := NewHandler(uc, nopLogger{})
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/availability.ics", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
