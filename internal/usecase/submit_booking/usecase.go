package submit_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CapacityService/internal/domain"
	sessionRepo "github.com/m04kA/SMC-CapacityService/internal/infra/storage/session"
	"github.com/m04kA/SMC-CapacityService/internal/integrations/capacityapi"
)

// UseCase use case для отправки заявки на донацию по выбранной ячейке
type UseCase struct {
	sessionRepo  SessionRepository
	client       DonationClient
	scheduler    Scheduler
	locker       SessionLocker
	tracker      FetchTracker
	txManager    TransactionManager
	recorder     SubmissionRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessionRepo SessionRepository,
	client DonationClient,
	scheduler Scheduler,
	locker SessionLocker,
	tracker FetchTracker,
	txManager TransactionManager,
	recorder SubmissionRecorder,
	logger Logger,
) *UseCase {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	if tracker == nil {
		tracker = noopTracker{}
	}
	return &UseCase{
		sessionRepo:  sessionRepo,
		client:       client,
		scheduler:    scheduler,
		locker:       locker,
		tracker:      tracker,
		txManager:    txManager,
		recorder:     recorder,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case отправки заявки.
// Автоматических повторов нет: при отказе выбор остается в сессии,
// а сообщение backend сохраняется и возвращается пользователю как есть.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SubmitBooking: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("SubmitBooking: session=%s", req.SessionID)

	// 2. Одна отправка на сессию в момент времени
	unlock, ok := uc.locker.TryLock(req.SessionID.String())
	if !ok {
		uc.logger.Warn("SubmitBooking: session=%s already submitting", req.SessionID)
		return nil, ErrSubmissionInProgress
	}
	defer unlock()

	// 3. Получаем сессию и проверяем выбор
	session, err := uc.getSession(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	if !session.HasSelection() {
		uc.logger.Warn("SubmitBooking: session=%s has no selection", req.SessionID)
		return nil, ErrNoSelection
	}
	selection := *session.Selection

	// 4. Выбранная ячейка могла уйти в прошлое, пока пользователь заполнял форму
	if !uc.scheduler.IsStillSelectable(selection, uc.timeProvider.Now()) {
		uc.logger.Warn("SubmitBooking: session=%s selection slot=%s at %s is in the past",
			req.SessionID, selection.CapacitySlotID, selection.ResolvedDate)
		return nil, ErrSelectionExpired
	}

	// 5. Формируем и отправляем заявку
	payload := uc.scheduler.ToBookingPayload(selection, session.LocationID, session.Details)

	uc.logger.Info("SubmitBooking: session=%s, location=%s, date=%s, time_slot=%s",
		req.SessionID, payload.LocationID, payload.PreferredDate, payload.PreferredTimeSlot)

	result, err := uc.client.SubmitDonationRequest(ctx, toDonationRequest(payload))
	if err != nil {
		if ctx.Err() != nil {
			uc.logger.Info("SubmitBooking: session=%s request cancelled", req.SessionID)
			return nil, fmt.Errorf("%w: %v", ErrCancelled, ctx.Err())
		}
		return nil, uc.fail(ctx, req.SessionID, err)
	}

	// 6. Подтверждаем сессию
	var confirmed *domain.BookingSession
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		fresh, err := uc.getSession(txCtx, req.SessionID)
		if err != nil {
			return err
		}

		if err := fresh.Confirm(result.ID); err != nil {
			uc.logger.Error("SubmitBooking: session=%s cannot be confirmed in state %s: %v",
				req.SessionID, fresh.State, err)
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}

		if err := uc.sessionRepo.Update(txCtx, fresh); err != nil {
			uc.logger.Error("SubmitBooking: failed to update session id=%s: %v", req.SessionID, err)
			return fmt.Errorf("%w: failed to update session: %v", ErrInternal, err)
		}

		confirmed = fresh
		return nil
	})
	if err != nil {
		// Заявка в backend уже создана, поэтому ошибка сохранения сессии логируется с ее ID
		uc.logger.Error("SubmitBooking: donation request id=%s created but session=%s not confirmed: %v",
			result.ID, req.SessionID, err)
		if errors.Is(err, ErrSessionNotFound) || errors.Is(err, ErrSessionClosed) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.tracker.Forget(req.SessionID.String())
	uc.recorder.RecordSubmission(outcomeConfirmed)
	uc.logger.Info("SubmitBooking: session=%s confirmed, donation request id=%s, status=%s",
		req.SessionID, result.ID, result.Status)

	return &Response{
		Session:   confirmed,
		Payload:   payload,
		RequestID: result.ID,
		Status:    result.Status,
	}, nil
}

// fail сохраняет сообщение об ошибке в сессии, оставляя выбор на месте
func (uc *UseCase) fail(ctx context.Context, id uuid.UUID, cause error) error {
	message, ok := capacityapi.ServerMessage(cause)
	if !ok {
		message = defaultFailureMessage
	}

	rejected := errors.Is(cause, capacityapi.ErrValidation) || errors.Is(cause, capacityapi.ErrConflict)
	if rejected {
		uc.recorder.RecordSubmission(outcomeRejected)
		uc.logger.Warn("SubmitBooking: session=%s rejected by backend: %v", id, cause)
	} else {
		uc.recorder.RecordSubmission(outcomeFailed)
		uc.logger.Error("SubmitBooking: session=%s submission failed: %v", id, cause)
	}

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		fresh, err := uc.getSession(txCtx, id)
		if err != nil {
			return err
		}
		if err := fresh.Fail(message); err != nil {
			return err
		}
		return uc.sessionRepo.Update(txCtx, fresh)
	})
	if err != nil {
		uc.logger.Error("SubmitBooking: failed to record failure for session=%s: %v", id, err)
	}

	return &SubmissionError{Message: message, Rejected: rejected}
}

// getSession возвращает открытую сессию
func (uc *UseCase) getSession(ctx context.Context, id uuid.UUID) (*domain.BookingSession, error) {
	session, err := uc.sessionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			uc.logger.Warn("SubmitBooking: session id=%s not found", id)
			return nil, ErrSessionNotFound
		}
		uc.logger.Error("SubmitBooking: failed to get session id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
	}

	if session.IsTerminal() {
		uc.logger.Warn("SubmitBooking: session id=%s is %s", id, session.State)
		return nil, ErrSessionClosed
	}

	return session, nil
}
