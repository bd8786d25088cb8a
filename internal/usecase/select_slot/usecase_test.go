package select_slot

import (
	"context"
	"errors"
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

func (m *mockSessionRepo) Update(ctx context.Context, s *domain.BookingSession) error {
	return m.Called(ctx, s).Error(0)
}

type mockLister struct {
	mock.Mock
}

func (m *mockLister) ListCapacities(ctx context.Context, locationID string) ([]capacityapi.Capacity, error) {
	args := m.Called(ctx, locationID)
	list, _ := args.Get(0).([]capacityapi.Capacity)
	return list, args.Error(1)
}

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

type fixture struct {
	uc     *UseCase
	clk    *clock.Clock
	repo   *mockSessionRepo
	lister *mockLister
	tx     *fakeTxManager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clk, err := clock.New("Asia/Ho_Chi_Minh")
	require.NoError(t, err)

	f := &fixture{
		clk:    clk,
		repo:   &mockSessionRepo{},
		lister: &mockLister{},
		tx:     &fakeTxManager{},
	}
	scheduler := schedule.NewService(clk, domain.DefaultCatalog, logger.NewNop(), nil)
	f.uc = NewUseCase(f.repo, f.lister, scheduler, f.tx, logger.NewNop())
	f.uc.timeProvider = fixedTime{now: clk.Date(2024, 6, 9, 0, 0, 0)}
	return f
}

func (f *fixture) session() *domain.BookingSession {
	return domain.NewBookingSession("loc-1", f.clk.Date(2024, 6, 9, 0, 0, 0))
}

var weekRecords = []capacityapi.Capacity{
	{
		ID: "mon-8", LocationID: "loc-1", TimeSlot: "morning", TotalCapacity: 5, DayOfWeek: 1,
		EffectiveDate: "2024-06-10T08:00:00", ExpiryDate: "2024-06-10T09:00:00", IsActive: true,
	},
	{
		ID: "tue-14", LocationID: "loc-1", TimeSlot: "afternoon", TotalCapacity: 3, DayOfWeek: 2,
		EffectiveDate: "2024-06-11T14:00:00", ExpiryDate: "2024-06-11T15:00:00", IsActive: true,
	},
	{
		ID: "wed-off", LocationID: "loc-1", TimeSlot: "evening", TotalCapacity: 3, DayOfWeek: 3,
		EffectiveDate: "2024-06-12T18:00:00", ExpiryDate: "2024-06-12T19:00:00", IsActive: false,
	},
}

func Test_UseCase_Execute_selects(t *testing.T) {
	f := newFixture(t)
	session := f.session()
	f.repo.On("GetByID", mock.Anything, session.ID).Return(session, nil).Twice()
	f.lister.On("ListCapacities", mock.Anything, "loc-1").Return(weekRecords, nil).Once()
	f.repo.On("Update", mock.Anything, mock.MatchedBy(func(s *domain.BookingSession) bool {
		return s.State == domain.SessionSelected && s.Selection.CapacitySlotID == "mon-8"
	})).Return(nil).Once()

	resp, err := f.uc.Execute(context.Background(), &Request{SessionID: session.ID, CapacitySlotID: "mon-8"})
	require.NoError(t, err)

	sel := resp.Session.Selection
	require.NotNil(t, sel)
	assert.Equal(t, 1, sel.DayOfWeek)
	assert.Equal(t, domain.Morning, sel.TimeSlot)
	assert.Equal(t, "8-9", sel.HourBucket.Label)
	assert.True(t, sel.ResolvedDate.Equal(f.clk.Date(2024, 6, 10, 8, 0, 0)))
	assert.Equal(t, 1, f.tx.calls)
	f.repo.AssertExpectations(t)
}

func Test_UseCase_Execute_cancelled(t *testing.T) {
	f := newFixture(t)
	session := f.session()
	ctx, cancel := context.WithCancel(context.Background())
	f.repo.On("GetByID", mock.Anything, session.ID).Return(session, nil).Once()
	f.lister.On("ListCapacities", mock.Anything, "loc-1").
		Run(func(mock.Arguments) { cancel() }).
		Return(nil, context.Canceled).Once()

	_, err := f.uc.Execute(ctx, &Request{SessionID: session.ID, CapacitySlotID: "mon-8"})

	require.ErrorIs(t, err, ErrCancelled)
	assert.NotErrorIs(t, err, ErrCapacityUnavailable)
	assert.Equal(t, 0, f.tx.calls)
	f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func Test_UseCase_Execute_replacesPreviousSelection(t *testing.T) {
	f := newFixture(t)
	session := f.session()
	require.NoError(t, session.Select(domain.Selection{CapacitySlotID: "mon-8", DayOfWeek: 1}))

	f.repo.On("GetByID", mock.Anything, session.ID).Return(session, nil).Twice()
	f.lister.On("ListCapacities", mock.Anything, "loc-1").Return(weekRecords, nil).Once()
	f.repo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()

	resp, err := f.uc.Execute(context.Background(), &Request{SessionID: session.ID, CapacitySlotID: "tue-14"})
	require.NoError(t, err)

	assert.Equal(t, "tue-14", resp.Session.Selection.CapacitySlotID)
	assert.Equal(t, domain.Afternoon, resp.Session.Selection.TimeSlot)
}

func Test_UseCase_Execute_invalidSelectionIsNoOp(t *testing.T) {
	tests := []struct {
		name       string
		slotID     string
		now        func(clk *clock.Clock) time.Time
		wantReason domain.CellReason
	}{
		{
			name:       "past slot",
			slotID:     "mon-8",
			now:        func(clk *clock.Clock) time.Time { return clk.Date(2024, 6, 10, 8, 0, 0) },
			wantReason: domain.ReasonPast,
		},
		{
			name:       "inactive slot",
			slotID:     "wed-off",
			now:        func(clk *clock.Clock) time.Time { return clk.Date(2024, 6, 9, 0, 0, 0) },
			wantReason: domain.ReasonInactive,
		},
		{
			name:       "slot outside the week",
			slotID:     "missing",
			now:        func(clk *clock.Clock) time.Time { return clk.Date(2024, 6, 9, 0, 0, 0) },
			wantReason: domain.ReasonUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.uc.timeProvider = fixedTime{now: tt.now(f.clk)}
			session := f.session()
			f.repo.On("GetByID", mock.Anything, session.ID).Return(session, nil).Once()
			f.lister.On("ListCapacities", mock.Anything, "loc-1").Return(weekRecords, nil).Once()

			_, err := f.uc.Execute(context.Background(), &Request{SessionID: session.ID, CapacitySlotID: tt.slotID})
			require.ErrorIs(t, err, ErrInvalidSelection)

			reason, ok := schedule.ReasonOf(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantReason, reason)

			assert.Equal(t, domain.SessionNoSelection, session.State)
			assert.Zero(t, f.tx.calls)
			f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		})
	}
}

func Test_UseCase_Execute_weekMovedMeanwhile(t *testing.T) {
	f := newFixture(t)
	session := f.session()
	moved := *session
	moved.WeekAnchor = f.clk.Date(2024, 6, 16, 0, 0, 0)

	f.repo.On("GetByID", mock.Anything, session.ID).Return(session, nil).Once()
	f.repo.On("GetByID", mock.Anything, session.ID).Return(&moved, nil).Once()
	f.lister.On("ListCapacities", mock.Anything, "loc-1").Return(weekRecords, nil).Once()

	_, err := f.uc.Execute(context.Background(), &Request{SessionID: session.ID, CapacitySlotID: "mon-8"})
	assert.ErrorIs(t, err, ErrInvalidSelection)
	f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func Test_UseCase_Execute_errors(t *testing.T) {
	t.Run("invalid input", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.Execute(context.Background(), &Request{SessionID: uuid.New()})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("session not found", func(t *testing.T) {
		f := newFixture(t)
		id := uuid.New()
		f.repo.On("GetByID", mock.Anything, id).Return(nil, sessionRepo.ErrSessionNotFound).Once()

		_, err := f.uc.Execute(context.Background(), &Request{SessionID: id, CapacitySlotID: "mon-8"})
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("session cancelled", func(t *testing.T) {
		f := newFixture(t)
		session := f.session()
		require.NoError(t, session.Cancel())
		f.repo.On("GetByID", mock.Anything, session.ID).Return(session, nil).Once()

		_, err := f.uc.Execute(context.Background(), &Request{SessionID: session.ID, CapacitySlotID: "mon-8"})
		assert.ErrorIs(t, err, ErrSessionClosed)
	})

	t.Run("update fails", func(t *testing.T) {
		f := newFixture(t)
		session := f.session()
		f.repo.On("GetByID", mock.Anything, session.ID).Return(session, nil).Twice()
		f.lister.On("ListCapacities", mock.Anything, "loc-1").Return(weekRecords, nil).Once()
		f.repo.On("Update", mock.Anything, mock.Anything).Return(errors.New("connection reset")).Once()

		_, err := f.uc.Execute(context.Background(), &Request{SessionID: session.ID, CapacitySlotID: "mon-8"})
		assert.ErrorIs(t, err, ErrInternal)
	})
}
