package navigate_session

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CapacityService/internal/api/handlers"
	"github.com/m04kA/SMC-CapacityService/internal/domain"
	"github.com/m04kA/SMC-CapacityService/internal/service/sessions"
	"github.com/m04kA/SMC-CapacityService/internal/service/sessions/models"
	getWeekGrid "github.com/m04kA/SMC-CapacityService/internal/usecase/get_week_grid"
)

const (
	msgInvalidSessionID   = "некорректный ID сессии"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidAction      = "некорректное действие: ожидается next, prev, current или goto с датой"
	msgNotFound           = "сессия бронирования не найдена"
	msgSessionClosed      = "сессия бронирования уже завершена"
)

type Handler struct {
	service SessionService
	useCase GetWeekGridUseCase
	parser  DateParser
	logger  Logger
}

func NewHandler(service SessionService, useCase GetWeekGridUseCase, parser DateParser, logger Logger) *Handler {
	return &Handler{
		service: service,
		useCase: useCase,
		parser:  parser,
		logger:  logger,
	}
}

// Handle POST /api/v1/booking-sessions/{sessionId}/navigate
// Переключает неделю и возвращает ее сетку. Выбор ячейки сохраняется.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID, err := handlers.PathUUID(r, "sessionId")
	if err != nil {
		h.logger.Warn("POST /booking-sessions/{id}/navigate - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	var req NavigateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking-sessions/{id}/navigate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	date, err := handlers.OptionalDate(req.Date, h.parser)
	if err != nil {
		h.logger.Warn("POST /booking-sessions/{id}/navigate - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// 1. Переключаем неделю сессии
	_, err = h.service.Navigate(r.Context(), &models.NavigateRequest{
		SessionID: sessionID,
		Action:    models.NavigateAction(req.Action),
		Date:      date,
	})
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("POST /booking-sessions/{id}/navigate - Invalid action: session_id=%s, error=%v", sessionID, err)
			handlers.RespondBadRequest(w, msgInvalidAction)
		case errors.Is(err, sessions.ErrSessionNotFound):
			h.logger.Warn("POST /booking-sessions/{id}/navigate - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, sessions.ErrSessionClosed):
			h.logger.Warn("POST /booking-sessions/{id}/navigate - Session closed: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgSessionClosed)
		default:
			h.logger.Error("POST /booking-sessions/{id}/navigate - Failed to navigate: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// 2. Загружаем сетку новой недели; устаревшая загрузка отбрасывается
	result, err := h.useCase.Execute(r.Context(), &getWeekGrid.Request{
		SessionID: &sessionID,
		Mode:      domain.ViewDonor,
	})
	if err != nil {
		handlers.RespondGridError(w, r, h.logger, err)
		return
	}

	h.logger.Info("POST /booking-sessions/{id}/navigate - Week changed: session_id=%s, action=%s, week=%s",
		sessionID, req.Action, result.View.Week.Start.Format(domain.DateFormat))
	handlers.RespondJSON(w, http.StatusOK, handlers.SessionGridResponse{
		Session: handlers.NewSessionResponse(result.Session),
		Grid:    handlers.NewGridResponse(result.View),
	})
}
