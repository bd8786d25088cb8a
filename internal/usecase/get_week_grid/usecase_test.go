package get_week_grid

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CapacityService/internal/domain"
	sessionRepo "github.com/m04kA/SMC-CapacityService/internal/infra/storage/session"
	"github.com/m04kA/SMC-CapacityService/internal/integrations/capacityapi"
	"github.com/m04kA/SMC-CapacityService/internal/service/schedule"
	"github.com/m04kA/SMC-CapacityService/pkg/clock"
	"github.com/m04kA/SMC-CapacityService/pkg/latest"
	"github.com/m04kA/SMC-CapacityService/pkg/logger"
)

type mockSessionRepo struct {
	mock.Mock
}

func (m *mockSessionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.BookingSession, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*domain.BookingSession)
	return s, args.Error(1)
}

type mockLister struct {
	mock.Mock
}

func (m *mockLister) ListCapacities(ctx context.Context, locationID string) ([]capacityapi.Capacity, error) {
	args := m.Called(ctx, locationID)
	list, _ := args.Get(0).([]capacityapi.Capacity)
	return list, args.Error(1)
}

type staleCounter struct {
	count int
}

func (c *staleCounter) RecordStaleFetch() {
	c.count++
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

type fixture struct {
	uc      *UseCase
	clk     *clock.Clock
	repo    *mockSessionRepo
	lister  *mockLister
	tracker *latest.Tracker
	stale   *staleCounter
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clk, err := clock.New("Asia/Ho_Chi_Minh")
	require.NoError(t, err)

	f := &fixture{
		clk:     clk,
		repo:    &mockSessionRepo{},
		lister:  &mockLister{},
		tracker: latest.NewTracker(),
		stale:   &staleCounter{},
	}
	scheduler := schedule.NewService(clk, domain.DefaultCatalog, logger.NewNop(), nil)
	f.uc = NewUseCase(f.repo, f.lister, scheduler, f.tracker, f.stale, logger.NewNop())
	// Воскресенье 9 июня 2024, полночь по времени локации
	f.uc.timeProvider = fixedTime{now: clk.Date(2024, 6, 9, 0, 0, 0)}
	return f
}

// понедельник 10 июня 2024, 08:00-09:00
var mondayMorning = capacityapi.Capacity{
	ID:            "cap-1",
	LocationID:    "loc-1",
	TimeSlot:      "morning",
	TotalCapacity: 5,
	DayOfWeek:     1,
	EffectiveDate: "2024-06-10T08:00:00.000Z",
	ExpiryDate:    "2024-06-10T09:00:00.000Z",
	IsActive:      true,
}

func Test_UseCase_Execute_byLocation(t *testing.T) {
	f := newFixture(t)
	f.lister.On("ListCapacities", mock.Anything, "loc-1").
		Return([]capacityapi.Capacity{mondayMorning}, nil).Once()

	resp, err := f.uc.Execute(context.Background(), &Request{LocationID: "loc-1"})
	require.NoError(t, err)

	assert.Nil(t, resp.Session)
	assert.Equal(t, domain.ViewDonor, resp.View.Mode)
	require.Len(t, resp.View.Days, 7)

	cell := resp.View.Days[1].TimeSlots[0].Cells[1]
	require.NotNil(t, cell.Slot)
	assert.Equal(t, "cap-1", cell.Slot.ID)
	assert.True(t, cell.Selectable)
	assert.Empty(t, resp.View.Anomalies)
	f.lister.AssertExpectations(t)
}

func Test_UseCase_Execute_anchorSelectsWeek(t *testing.T) {
	f := newFixture(t)
	f.lister.On("ListCapacities", mock.Anything, "loc-1").
		Return([]capacityapi.Capacity{mondayMorning}, nil).Once()

	anchor := f.clk.Date(2024, 6, 19, 12, 0, 0)
	resp, err := f.uc.Execute(context.Background(), &Request{LocationID: "loc-1", Anchor: &anchor})
	require.NoError(t, err)

	assert.True(t, resp.View.Week.Start.Equal(f.clk.Date(2024, 6, 16, 0, 0, 0)))
	for _, day := range resp.View.Days {
		for _, ts := range day.TimeSlots {
			for _, cell := range ts.Cells {
				assert.Nil(t, cell.Slot)
			}
		}
	}
}

func Test_UseCase_Execute_bySession(t *testing.T) {
	f := newFixture(t)
	session := domain.NewBookingSession("loc-1", f.clk.Date(2024, 6, 12, 0, 0, 0))
	f.repo.On("GetByID", mock.Anything, session.ID).Return(session, nil).Once()
	f.lister.On("ListCapacities", mock.Anything, "loc-1").
		Return([]capacityapi.Capacity{mondayMorning}, nil).Once()

	resp, err := f.uc.Execute(context.Background(), &Request{SessionID: &session.ID, LocationID: "ignored"})
	require.NoError(t, err)

	assert.Equal(t, session, resp.Session)
	assert.Equal(t, "loc-1", resp.View.LocationID)
	assert.True(t, resp.View.Week.Start.Equal(session.WeekAnchor))
}

func Test_UseCase_Execute_staleFetchDiscarded(t *testing.T) {
	f := newFixture(t)
	session := domain.NewBookingSession("loc-1", f.clk.Date(2024, 6, 12, 0, 0, 0))
	f.repo.On("GetByID", mock.Anything, session.ID).Return(session, nil)

	// Во время загрузки пользователь успел запросить сетку еще раз
	f.lister.On("ListCapacities", mock.Anything, "loc-1").
		Run(func(mock.Arguments) { f.tracker.Begin(session.ID.String()) }).
		Return([]capacityapi.Capacity{mondayMorning}, nil).Once()

	_, err := f.uc.Execute(context.Background(), &Request{SessionID: &session.ID})
	assert.ErrorIs(t, err, ErrStaleFetch)
	assert.Equal(t, 1, f.stale.count)
}

func Test_UseCase_Execute_cancelledDuringFetch(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	f.lister.On("ListCapacities", mock.Anything, "loc-1").
		Run(func(mock.Arguments) { cancel() }).
		Return([]capacityapi.Capacity{mondayMorning}, nil).Once()

	_, err := f.uc.Execute(ctx, &Request{LocationID: "loc-1"})
	assert.ErrorIs(t, err, ErrCancelled)
}

func Test_UseCase_Execute_errors(t *testing.T) {
	t.Run("invalid input", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.Execute(context.Background(), &Request{})
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = f.uc.Execute(context.Background(), &Request{LocationID: "loc-1", Mode: "admin"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("session not found", func(t *testing.T) {
		f := newFixture(t)
		id := uuid.New()
		f.repo.On("GetByID", mock.Anything, id).Return(nil, sessionRepo.ErrSessionNotFound).Once()

		_, err := f.uc.Execute(context.Background(), &Request{SessionID: &id})
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("location not found", func(t *testing.T) {
		f := newFixture(t)
		f.lister.On("ListCapacities", mock.Anything, "loc-x").
			Return(nil, capacityapi.NewAPIError(404, "Location not found")).Once()

		_, err := f.uc.Execute(context.Background(), &Request{LocationID: "loc-x"})
		assert.ErrorIs(t, err, ErrLocationNotFound)
	})

	t.Run("backend down", func(t *testing.T) {
		f := newFixture(t)
		f.lister.On("ListCapacities", mock.Anything, "loc-1").
			Return(nil, capacityapi.ErrUnavailable).Once()

		_, err := f.uc.Execute(context.Background(), &Request{LocationID: "loc-1"})
		assert.ErrorIs(t, err, ErrCapacityUnavailable)
	})
}
