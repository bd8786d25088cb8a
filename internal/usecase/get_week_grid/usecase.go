package get_week_grid

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CapacityService/internal/domain"
	sessionRepo "github.com/m04kA/SMC-CapacityService/internal/infra/storage/session"
	"github.com/m04kA/SMC-CapacityService/internal/integrations/capacityapi"
	"github.com/m04kA/SMC-CapacityService/pkg/latest"
)

// UseCase use case для получения недельной сетки вместимости
type UseCase struct {
	sessionRepo   SessionRepository
	lister        CapacityLister
	scheduler     Scheduler
	tracker       FetchTracker
	staleRecorder StaleRecorder
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessionRepo SessionRepository,
	lister CapacityLister,
	scheduler Scheduler,
	tracker FetchTracker,
	staleRecorder StaleRecorder,
	logger Logger,
) *UseCase {
	if staleRecorder == nil {
		staleRecorder = noopStaleRecorder{}
	}
	return &UseCase{
		sessionRepo:   sessionRepo,
		lister:        lister,
		scheduler:     scheduler,
		tracker:       tracker,
		staleRecorder: staleRecorder,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case получения сетки.
// Сетка каждый раз строится заново из свежего списка записей.
// Для сессии действует правило "побеждает последний запрос": результат устаревшего запроса отбрасывается.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetWeekGrid: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	anchor := now
	if req.Anchor != nil {
		anchor = *req.Anchor
	}
	locationID := req.LocationID

	// 2. Если указана сессия, неделя и локация берутся из нее
	var (
		session *domain.BookingSession
		ticket  *latest.Ticket
	)
	if req.SessionID != nil {
		s, err := uc.sessionRepo.GetByID(ctx, *req.SessionID)
		if err != nil {
			if errors.Is(err, sessionRepo.ErrSessionNotFound) {
				uc.logger.Warn("GetWeekGrid: session id=%s not found", req.SessionID)
				return nil, ErrSessionNotFound
			}
			uc.logger.Error("GetWeekGrid: failed to get session id=%s: %v", req.SessionID, err)
			return nil, fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
		}
		session = s
		locationID = s.LocationID
		anchor = s.WeekAnchor

		t := uc.tracker.Begin(s.ID.String())
		ticket = &t
	}

	week := uc.scheduler.BuildWeek(anchor)
	uc.logger.Info("GetWeekGrid: location=%s, week=%s, mode=%s",
		locationID, week.Start.Format(domain.DateFormat), req.Mode)

	// 3. Загружаем записи вместимости локации
	records, err := uc.lister.ListCapacities(ctx, locationID)
	if err != nil {
		if ctx.Err() != nil {
			uc.logger.Info("GetWeekGrid: location=%s fetch cancelled", locationID)
			return nil, ErrCancelled
		}
		if errors.Is(err, capacityapi.ErrNotFound) {
			uc.logger.Warn("GetWeekGrid: location=%s not found", locationID)
			return nil, ErrLocationNotFound
		}
		uc.logger.Error("GetWeekGrid: failed to list capacities for location=%s: %v", locationID, err)
		return nil, fmt.Errorf("%w: %v", ErrCapacityUnavailable, err)
	}

	// 4. Клиент ушел, пока шла загрузка
	if ctx.Err() != nil {
		uc.logger.Info("GetWeekGrid: location=%s result discarded, request cancelled", locationID)
		return nil, ErrCancelled
	}

	// 5. Пока шла загрузка, для сессии начался более новый запрос
	if ticket != nil && !uc.tracker.IsLatest(*ticket) {
		uc.logger.Info("GetWeekGrid: session=%s result discarded, superseded by generation >%d",
			ticket.Key, ticket.Generation)
		uc.staleRecorder.RecordStaleFetch()
		return nil, ErrStaleFetch
	}

	// 6. Строим сетку и представление
	grid := uc.scheduler.BuildGrid(records, week)
	view := uc.scheduler.BuildView(grid, req.Mode, locationID, now)

	uc.logger.Info("GetWeekGrid: location=%s, week=%s: %d slots placed, %d anomalies",
		locationID, week.Start.Format(domain.DateFormat), grid.Len(), len(grid.Anomalies))

	return &Response{
		View:    view,
		Session: session,
	}, nil
}
