package submit_booking

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
	"github.com/m04kA/SMC-CapacityService/internal/integrations/capacityapi"
	"github.com/m04kA/SMC-CapacityService/internal/service/schedule"
	"github.com/m04kA/SMC-CapacityService/pkg/clock"
	"github.com/m04kA/SMC-CapacityService/pkg/keylock"
	"github.com/m04kA/SMC-CapacityService/pkg/latest"
	"github.com/m04kA/SMC-CapacityService/pkg/logger"
	"github.com/m04kA/SMC-CapacityService/pkg/ptr"
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

type mockClient struct {
	mock.Mock
}

func (m *mockClient) SubmitDonationRequest(ctx context.Context, req *capacityapi.DonationRequest) (*capacityapi.DonationRequestResult, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*capacityapi.DonationRequestResult)
	return res, args.Error(1)
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type outcomes []string

func (o *outcomes) RecordSubmission(outcome string) {
	*o = append(*o, outcome)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

type fixture struct {
	uc       *UseCase
	clk      *clock.Clock
	repo     *mockSessionRepo
	client   *mockClient
	locker   *keylock.Locker
	tracker  *latest.Tracker
	outcomes *outcomes
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clk, err := clock.New("Asia/Ho_Chi_Minh")
	require.NoError(t, err)

	f := &fixture{
		clk:      clk,
		repo:     &mockSessionRepo{},
		client:   &mockClient{},
		locker:   keylock.New(),
		tracker:  latest.NewTracker(),
		outcomes: &outcomes{},
	}
	scheduler := schedule.NewService(clk, domain.DefaultCatalog, logger.NewNop(), nil)
	f.uc = NewUseCase(f.repo, f.client, scheduler, f.locker, f.tracker, fakeTxManager{}, f.outcomes, logger.NewNop())
	f.uc.timeProvider = fixedTime{now: clk.Date(2024, 6, 9, 12, 0, 0)}
	return f
}

// selectedSession сессия с выбором на понедельник 10 июня 2024, 08:00 по времени локации
func (f *fixture) selectedSession(t *testing.T) *domain.BookingSession {
	t.Helper()
	s := domain.NewBookingSession("loc-1", f.clk.Date(2024, 6, 9, 0, 0, 0))
	require.NoError(t, s.SetDetails(domain.BookingDetails{
		BloodGroupID: ptr.Ptr("bg-o-plus"),
		Notes:        ptr.Ptr("first donation"),
	}))
	require.NoError(t, s.Select(domain.Selection{
		CapacitySlotID: "mon-8",
		DayOfWeek:      1,
		TimeSlot:       domain.Morning,
		HourBucket:     domain.NewHourBucket(8, 9),
		ResolvedDate:   f.clk.Date(2024, 6, 10, 8, 0, 0),
	}))
	return s
}

func Test_UseCase_Execute_confirms(t *testing.T) {
	f := newFixture(t)
	session := f.selectedSession(t)
	f.repo.On("GetByID", mock.Anything, session.ID).Return(session, nil)
	f.client.On("SubmitDonationRequest", mock.Anything, mock.MatchedBy(func(req *capacityapi.DonationRequest) bool {
		return req.PreferredDate == "2024-06-10T01:00:00Z" &&
			req.PreferredTimeSlot == "morning" &&
			req.LocationID == "loc-1" &&
			*req.BloodGroupID == "bg-o-plus" &&
			req.ComponentTypeID == nil &&
			req.IsUrgent != nil && !*req.IsUrgent
	})).Return(&capacityapi.DonationRequestResult{ID: "req-1", Status: "pending"}, nil).Once()
	f.repo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()

	resp, err := f.uc.Execute(context.Background(), &Request{SessionID: session.ID})
	require.NoError(t, err)

	assert.Equal(t, "req-1", resp.RequestID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, domain.SessionConfirmed, resp.Session.State)
	require.NotNil(t, resp.Session.BookingRef)
	assert.Equal(t, "req-1", *resp.Session.BookingRef)
	assert.Equal(t, outcomes{outcomeConfirmed}, *f.outcomes)
	f.client.AssertExpectations(t)
	f.repo.AssertExpectations(t)
}

func Test_UseCase_Execute_confirmForgetsGridFetches(t *testing.T) {
	f := newFixture(t)
	session := f.selectedSession(t)
	ticket := f.tracker.Begin(session.ID.String())
	f.repo.On("GetByID", mock.Anything, session.ID).Return(session, nil)
	f.client.On("SubmitDonationRequest", mock.Anything, mock.Anything).
		Return(&capacityapi.DonationRequestResult{ID: "req-1", Status: "pending"}, nil).Once()
	f.repo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()

	_, err := f.uc.Execute(context.Background(), &Request{SessionID: session.ID})
	require.NoError(t, err)

	assert.False(t, f.tracker.IsLatest(ticket))
	assert.Equal(t, 0, f.tracker.Len())
}

func Test_UseCase_Execute_rejectedKeepsSelection(t *testing.T) {
	f := newFixture(t)
	session := f.selectedSession(t)
	f.repo.On("GetByID", mock.Anything, session.ID).Return(session, nil)
	f.client.On("SubmitDonationRequest", mock.Anything, mock.Anything).
		Return(nil, capacityapi.NewAPIError(422, "Location is closed on this date")).Once()
	f.repo.On("Update", mock.Anything, mock.MatchedBy(func(s *domain.BookingSession) bool {
		return s.State == domain.SessionSelected && s.LastError != nil
	})).Return(nil).Once()

	_, err := f.uc.Execute(context.Background(), &Request{SessionID: session.ID})
	require.ErrorIs(t, err, ErrSubmissionFailed)

	var subErr *SubmissionError
	require.True(t, errors.As(err, &subErr))
	assert.Equal(t, "Location is closed on this date", subErr.Message)
	assert.True(t, subErr.Rejected)

	require.NotNil(t, session.Selection)
	assert.Equal(t, "mon-8", session.Selection.CapacitySlotID)
	assert.Equal(t, "Location is closed on this date", *session.LastError)
	assert.Equal(t, outcomes{outcomeRejected}, *f.outcomes)
	f.repo.AssertExpectations(t)
}

func Test_UseCase_Execute_cancelledDuringSubmit(t *testing.T) {
	f := newFixture(t)
	session := f.selectedSession(t)
	ctx, cancel := context.WithCancel(context.Background())
	f.repo.On("GetByID", mock.Anything, session.ID).Return(session, nil).Once()
	f.client.On("SubmitDonationRequest", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { cancel() }).
		Return(nil, context.Canceled).Once()

	_, err := f.uc.Execute(ctx, &Request{SessionID: session.ID})

	require.ErrorIs(t, err, ErrCancelled)
	assert.Empty(t, *f.outcomes)
	f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func Test_UseCase_Execute_transportFailure(t *testing.T) {
	f := newFixture(t)
	session := f.selectedSession(t)
	f.repo.On("GetByID", mock.Anything, session.ID).Return(session, nil)
	f.client.On("SubmitDonationRequest", mock.Anything, mock.Anything).
		Return(nil, capacityapi.ErrInternal).Once()
	f.repo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()

	_, err := f.uc.Execute(context.Background(), &Request{SessionID: session.ID})

	var subErr *SubmissionError
	require.True(t, errors.As(err, &subErr))
	assert.False(t, subErr.Rejected)
	assert.Equal(t, defaultFailureMessage, subErr.Message)
	assert.Equal(t, outcomes{outcomeFailed}, *f.outcomes)
}

func Test_UseCase_Execute_preconditions(t *testing.T) {
	t.Run("no selection", func(t *testing.T) {
		f := newFixture(t)
		session := domain.NewBookingSession("loc-1", f.clk.Date(2024, 6, 9, 0, 0, 0))
		f.repo.On("GetByID", mock.Anything, session.ID).Return(session, nil).Once()

		_, err := f.uc.Execute(context.Background(), &Request{SessionID: session.ID})
		assert.ErrorIs(t, err, ErrNoSelection)
		f.client.AssertNotCalled(t, "SubmitDonationRequest", mock.Anything, mock.Anything)
	})

	t.Run("selection in the past", func(t *testing.T) {
		f := newFixture(t)
		f.uc.timeProvider = fixedTime{now: f.clk.Date(2024, 6, 10, 8, 0, 0)}
		session := f.selectedSession(t)
		f.repo.On("GetByID", mock.Anything, session.ID).Return(session, nil).Once()

		_, err := f.uc.Execute(context.Background(), &Request{SessionID: session.ID})
		assert.ErrorIs(t, err, ErrSelectionExpired)
		f.client.AssertNotCalled(t, "SubmitDonationRequest", mock.Anything, mock.Anything)
	})

	t.Run("already confirmed", func(t *testing.T) {
		f := newFixture(t)
		session := f.selectedSession(t)
		require.NoError(t, session.Confirm("req-0"))
		f.repo.On("GetByID", mock.Anything, session.ID).Return(session, nil).Once()

		_, err := f.uc.Execute(context.Background(), &Request{SessionID: session.ID})
		assert.ErrorIs(t, err, ErrSessionClosed)
	})

	t.Run("submission in progress", func(t *testing.T) {
		f := newFixture(t)
		id := uuid.New()
		unlock := f.locker.Lock(id.String())
		defer unlock()

		_, err := f.uc.Execute(context.Background(), &Request{SessionID: id})
		assert.ErrorIs(t, err, ErrSubmissionInProgress)
		f.repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("invalid input", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.Execute(context.Background(), &Request{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
