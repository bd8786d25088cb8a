package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-CapacityService/internal/domain"
	sessionRepo "github.com/m04kA/SMC-CapacityService/internal/infra/storage/session"
	"github.com/m04kA/SMC-CapacityService/internal/service/sessions/models"
)

// Service сервис для управления сессиями бронирования
type Service struct {
	sessionRepo SessionRepository
	scheduler   Scheduler
	txManager   TransactionManager
	tracker     FetchTracker
	validate    *validator.Validate
	logger      Logger
}

// NewService создает новый экземпляр сервиса сессий
func NewService(
	sessionRepo SessionRepository,
	scheduler Scheduler,
	txManager TransactionManager,
	tracker FetchTracker,
	logger Logger,
) *Service {
	return &Service{
		sessionRepo: sessionRepo,
		scheduler:   scheduler,
		txManager:   txManager,
		tracker:     tracker,
		validate:    validator.New(),
		logger:      logger,
	}
}

// Create создает сессию без выбора на неделе anchor (по умолчанию текущей)
func (s *Service) Create(ctx context.Context, req *models.CreateSessionRequest) (*domain.BookingSession, error) {
	if err := s.validateRequest(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	week := s.scheduler.CurrentWeek()
	if req.Anchor != nil {
		week = s.scheduler.BuildWeek(*req.Anchor)
	}

	session := domain.NewBookingSession(req.LocationID, week.Start)
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		s.logger.Error("Create: failed to create session for location=%s: %v", req.LocationID, err)
		return nil, fmt.Errorf("%w: failed to create session: %v", ErrInternal, err)
	}

	s.logger.Info("Create: session=%s created for location=%s, week=%s",
		session.ID, session.LocationID, session.WeekAnchor.Format(domain.DateFormat))
	return session, nil
}

// Get возвращает сессию по ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.BookingSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("Get: session id=%s not found", id)
			return nil, ErrSessionNotFound
		}
		s.logger.Error("Get: failed to get session id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
	}
	return session, nil
}

// Navigate переключает отображаемую неделю. Выбор ячейки при этом сохраняется.
func (s *Service) Navigate(ctx context.Context, req *models.NavigateRequest) (*domain.BookingSession, error) {
	if err := s.validateRequest(req); err != nil {
		s.logger.Warn("Navigate: validation failed: %v", err)
		return nil, err
	}

	return s.mutate(ctx, "Navigate", req.SessionID, func(session *domain.BookingSession) error {
		var target domain.Week
		switch req.Action {
		case models.ActionNext:
			target = session.Week().Next()
		case models.ActionPrev:
			target = session.Week().Prev()
		case models.ActionCurrent:
			target = s.scheduler.CurrentWeek()
		case models.ActionGoto:
			target = s.scheduler.BuildWeek(*req.Date)
		}

		s.logger.Info("Navigate: session=%s %s: %s -> %s", session.ID, req.Action,
			session.WeekAnchor.Format(domain.DateFormat), target.Start.Format(domain.DateFormat))
		return session.MoveTo(target.Start)
	})
}

// UpdateDetails заменяет данные донора целиком
func (s *Service) UpdateDetails(ctx context.Context, req *models.UpdateDetailsRequest) (*domain.BookingSession, error) {
	if err := s.validateRequest(req); err != nil {
		s.logger.Warn("UpdateDetails: validation failed: %v", err)
		return nil, err
	}

	return s.mutate(ctx, "UpdateDetails", req.SessionID, func(session *domain.BookingSession) error {
		return session.SetDetails(domain.BookingDetails{
			BloodGroupID:    req.BloodGroupID,
			ComponentTypeID: req.ComponentTypeID,
			Notes:           req.Notes,
			IsUrgent:        req.IsUrgent,
		})
	})
}

// Cancel отменяет сессию
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*domain.BookingSession, error) {
	session, err := s.mutate(ctx, "Cancel", id, func(session *domain.BookingSession) error {
		return session.Cancel()
	})
	if err != nil {
		return nil, err
	}

	s.tracker.Forget(id.String())
	s.logger.Info("Cancel: session=%s cancelled", id)
	return session, nil
}

// CleanupFinished удаляет завершенные сессии старше retention
func (s *Service) CleanupFinished(ctx context.Context, now time.Time, retention time.Duration) (int64, error) {
	deleted, err := s.sessionRepo.DeleteFinishedBefore(ctx, now.Add(-retention))
	if err != nil {
		s.logger.Error("CleanupFinished: failed to delete sessions: %v", err)
		return 0, fmt.Errorf("%w: failed to delete finished sessions: %v", ErrInternal, err)
	}
	if deleted > 0 {
		s.logger.Info("CleanupFinished: deleted %d sessions", deleted)
	}
	return deleted, nil
}

// mutate перечитывает сессию с блокировкой, применяет fn и сохраняет результат
func (s *Service) mutate(ctx context.Context, op string, id uuid.UUID, fn func(*domain.BookingSession) error) (*domain.BookingSession, error) {
	var result *domain.BookingSession

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		session, err := s.sessionRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, sessionRepo.ErrSessionNotFound) {
				s.logger.Warn("%s: session id=%s not found", op, id)
				return ErrSessionNotFound
			}
			s.logger.Error("%s: failed to get session id=%s: %v", op, id, err)
			return fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
		}

		if err := fn(session); err != nil {
			if errors.Is(err, domain.ErrInvalidTransition) {
				s.logger.Warn("%s: session id=%s is %s", op, id, session.State)
				return ErrSessionClosed
			}
			return err
		}

		if err := s.sessionRepo.Update(txCtx, session); err != nil {
			s.logger.Error("%s: failed to update session id=%s: %v", op, id, err)
			return fmt.Errorf("%w: failed to update session: %v", ErrInternal, err)
		}

		result = session
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) || errors.Is(err, ErrSessionClosed) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		s.logger.Error("%s: transaction failed: %v", op, err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	return result, nil
}

// validateRequest проверяет теги validate модели запроса
func (s *Service) validateRequest(req interface{}) error {
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}
