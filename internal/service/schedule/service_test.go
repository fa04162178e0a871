package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedule/models"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) config(args mock.Arguments) (*domain.ScheduleConfig, error) {
	if c := args.Get(0); c != nil {
		return c.(*domain.ScheduleConfig), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) Create(ctx context.Context, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	return m.config(m.Called(ctx, config))
}

func (m *mockRepo) GetByUserAndEventType(ctx context.Context, username string, eventTypeID *int64) (*domain.ScheduleConfig, error) {
	return m.config(m.Called(ctx, username, eventTypeID))
}

func (m *mockRepo) GetConfigWithHierarchy(ctx context.Context, username string, eventTypeID *int64) (*domain.ScheduleConfig, error) {
	return m.config(m.Called(ctx, username, eventTypeID))
}

func (m *mockRepo) Update(ctx context.Context, id int64, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	return m.config(m.Called(ctx, id, config))
}

func (m *mockRepo) DeleteByUserAndEventType(ctx context.Context, username string, eventTypeID *int64) error {
	return m.Called(ctx, username, eventTypeID).Error(0)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newService(repo *mockRepo) *Service {
	return NewService(repo, domain.DefaultScheduleDefaults(), nopLogger{})
}

func TestService_Upsert_CreatesWithDefaults(t *testing.T) {
	repo := &mockRepo{}
	svc := newService(repo)

	repo.On("GetByUserAndEventType", mock.Anything, "samielsolh", (*int64)(nil)).
		Return(nil, scheduleRepo.ErrConfigNotFound)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.ScheduleConfig) bool {
		return c.DayStart == "09:00" && c.DayEnd == "20:00" && c.SlotDurationMinutes == 30 && c.TimeZone == nil
	})).Return(&domain.ScheduleConfig{ID: 1, Username: "samielsolh", DayStart: "09:00", DayEnd: "20:00", SlotDurationMinutes: 30}, nil)

	resp, created, err := svc.Upsert(context.Background(), &models.UpsertConfigRequest{
		Username: "samielsolh",
		DayStart: ptr.Ptr("9:00"),
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)

	assert.True(t, created)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "user", resp.Level)
}

func TestService_Upsert_UpdatesExisting(t *testing.T) {
	repo := &mockRepo{}
	svc := newService(repo)

	existing := &domain.ScheduleConfig{
		ID:                  7,
		Username:            "samielsolh",
		EventTypeID:         ptr.Ptr(int64(1027409)),
		DayStart:            "10:00",
		DayEnd:              "20:00",
		SlotDurationMinutes: 30,
		TimeZone:            ptr.Ptr("Europe/Berlin"),
	}

	repo.On("GetByUserAndEventType", mock.Anything, "samielsolh", ptr.Ptr(int64(1027409))).Return(existing, nil)
	repo.On("Update", mock.Anything, int64(7), mock.MatchedBy(func(c *domain.ScheduleConfig) bool {
		return c.SlotDurationMinutes == 60 && c.TimeZone == nil && c.DayStart == types.TimeString("10:00")
	})).Return(&domain.ScheduleConfig{
		ID: 7, Username: "samielsolh", EventTypeID: ptr.Ptr(int64(1027409)),
		DayStart: "10:00", DayEnd: "20:00", SlotDurationMinutes: 60,
	}, nil)

	resp, created, err := svc.Upsert(context.Background(), &models.UpsertConfigRequest{
		Username:            "samielsolh",
		EventTypeID:         ptr.Ptr(int64(1027409)),
		SlotDurationMinutes: ptr.Ptr(60),
		TimeZone:            ptr.Ptr(""),
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)

	assert.False(t, created)
	assert.Equal(t, 60, resp.SlotDurationMinutes)
	assert.Equal(t, "event_type", resp.Level)
	// исходная конфигурация не изменяется до успешного сохранения
	assert.Equal(t, 30, existing.SlotDurationMinutes)
}

func TestService_Upsert_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  *models.UpsertConfigRequest
	}{
		{name: "reversed window", req: &models.UpsertConfigRequest{DayStart: ptr.Ptr("20:00"), DayEnd: ptr.Ptr("10:00")}},
		{name: "bad time", req: &models.UpsertConfigRequest{DayEnd: ptr.Ptr("8pm")}},
		{name: "slot too short", req: &models.UpsertConfigRequest{SlotDurationMinutes: ptr.Ptr(1)}},
		{name: "slot longer than window", req: &models.UpsertConfigRequest{
			DayStart: ptr.Ptr("10:00"), DayEnd: ptr.Ptr("10:30"), SlotDurationMinutes: ptr.Ptr(60)}},
		{name: "unknown timezone", req: &models.UpsertConfigRequest{TimeZone: ptr.Ptr("Atlantis/Capital")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepo{}
			svc := newService(repo)
			tt.req.Username = "samielsolh"

			repo.On("GetByUserAndEventType", mock.Anything, mock.Anything, mock.Anything).
				Return(nil, scheduleRepo.ErrConfigNotFound)

			_, _, err := svc.Upsert(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestService_Upsert_MissingUsername(t *testing.T) {
	svc := newService(&mockRepo{})

	_, _, err := svc.Upsert(context.Background(), &models.UpsertConfigRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Get(t *testing.T) {
	repo := &mockRepo{}
	svc := newService(repo)

	repo.On("GetConfigWithHierarchy", mock.Anything, "samielsolh", ptr.Ptr(int64(5))).
		Return(&domain.ScheduleConfig{ID: 2, Username: "samielsolh", DayStart: "08:00", DayEnd: "16:00", SlotDurationMinutes: 15}, nil)
	repo.On("GetConfigWithHierarchy", mock.Anything, "nobody", (*int64)(nil)).
		Return(nil, scheduleRepo.ErrConfigNotFound)

	resp, err := svc.Get(context.Background(), "samielsolh", ptr.Ptr(int64(5)))
	require.NoError(t, err)
	assert.Equal(t, "08:00", resp.DayStart)
	assert.Equal(t, "user", resp.Level)

	_, err = svc.Get(context.Background(), "nobody", nil)
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestService_Delete(t *testing.T) {
	repo := &mockRepo{}
	svc := newService(repo)

	repo.On("DeleteByUserAndEventType", mock.Anything, "samielsolh", (*int64)(nil)).Return(nil).Once()
	repo.On("DeleteByUserAndEventType", mock.Anything, "samielsolh", (*int64)(nil)).Return(scheduleRepo.ErrConfigNotFound).Once()

	require.NoError(t, svc.Delete(context.Background(), "samielsolh", nil))
	assert.ErrorIs(t, svc.Delete(context.Background(), "samielsolh", nil), ErrConfigNotFound)
	repo.AssertExpectations(t)
}
