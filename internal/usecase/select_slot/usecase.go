package select_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CapacityService/internal/domain"
	sessionRepo "github.com/m04kA/SMC-CapacityService/internal/infra/storage/session"
	"github.com/m04kA/SMC-CapacityService/internal/service/schedule"
)

// UseCase use case для выбора или замены ячейки в сессии бронирования
type UseCase struct {
	sessionRepo  SessionRepository
	lister       CapacityLister
	scheduler    Scheduler
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessionRepo SessionRepository,
	lister CapacityLister,
	scheduler Scheduler,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessionRepo:  sessionRepo,
		lister:       lister,
		scheduler:    scheduler,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case выбора ячейки.
// Недоступный выбор не меняет сессию. Запись выбора идет в сериализуемой транзакции,
// поэтому из двух одновременных кликов в сессии остается ровно один выбор.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SelectSlot: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("SelectSlot: session=%s, slot=%s", req.SessionID, req.CapacitySlotID)

	now := uc.timeProvider.Now()

	// 2. Получаем сессию
	session, err := uc.getSession(ctx, req)
	if err != nil {
		return nil, err
	}

	// 3. Строим сетку недели сессии из свежих данных (вне транзакции)
	records, err := uc.lister.ListCapacities(ctx, session.LocationID)
	if err != nil {
		if ctx.Err() != nil {
			uc.logger.Info("SelectSlot: session=%s request cancelled", req.SessionID)
			return nil, fmt.Errorf("%w: %v", ErrCancelled, ctx.Err())
		}
		uc.logger.Error("SelectSlot: failed to list capacities for location=%s: %v", session.LocationID, err)
		return nil, fmt.Errorf("%w: %v", ErrCapacityUnavailable, err)
	}
	grid := uc.scheduler.BuildGrid(records, uc.scheduler.BuildWeek(session.WeekAnchor))

	// 4. Проверяем доступность и вычисляем выбор
	selection, err := uc.scheduler.SelectSlot(grid, req.CapacitySlotID, now)
	if err != nil {
		uc.logger.Warn("SelectSlot: session=%s, slot=%s rejected: %v", req.SessionID, req.CapacitySlotID, err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidSelection, err)
	}

	var result *domain.BookingSession

	// 5. Сохраняем выбор в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Перечитываем сессию с блокировкой (FOR UPDATE)
		fresh, err := uc.getSession(txCtx, req)
		if err != nil {
			return err
		}

		// 5.2. Пока строилась сетка, пользователь переключил неделю: выбор относится к старой неделе
		if !fresh.WeekAnchor.Equal(session.WeekAnchor) {
			uc.logger.Warn("SelectSlot: session=%s moved from week %s to %s, selection discarded",
				req.SessionID, session.WeekAnchor.Format(domain.DateFormat), fresh.WeekAnchor.Format(domain.DateFormat))
			return fmt.Errorf("%w: %w", ErrInvalidSelection, &schedule.SelectionError{
				Reason: domain.ReasonUnavailable,
				SlotID: req.CapacitySlotID,
			})
		}

		// 5.3. Выбор заменяет предыдущий
		if err := fresh.Select(selection); err != nil {
			uc.logger.Warn("SelectSlot: session=%s in state %s: %v", req.SessionID, fresh.State, err)
			return ErrSessionClosed
		}

		if err := uc.sessionRepo.Update(txCtx, fresh); err != nil {
			uc.logger.Error("SelectSlot: failed to update session id=%s: %v", req.SessionID, err)
			return fmt.Errorf("%w: failed to update session: %v", ErrInternal, err)
		}

		result = fresh
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) || errors.Is(err, ErrSessionClosed) ||
			errors.Is(err, ErrInvalidSelection) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("SelectSlot: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.logger.Info("SelectSlot: session=%s selected slot=%s on %s %s",
		req.SessionID, selection.CapacitySlotID, selection.ResolvedDate.Format(domain.DateFormat), selection.HourBucket.Label)

	return &Response{Session: result}, nil
}

// getSession возвращает сессию, доступную для изменения
func (uc *UseCase) getSession(ctx context.Context, req *Request) (*domain.BookingSession, error) {
	session, err := uc.sessionRepo.GetByID(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			uc.logger.Warn("SelectSlot: session id=%s not found", req.SessionID)
			return nil, ErrSessionNotFound
		}
		uc.logger.Error("SelectSlot: failed to get session id=%s: %v", req.SessionID, err)
		return nil, fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
	}

	if session.IsTerminal() {
		uc.logger.Warn("SelectSlot: session id=%s is %s", req.SessionID, session.State)
		return nil, ErrSessionClosed
	}

	return session, nil
}
