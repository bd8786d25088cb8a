package cancel_session

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CapacityService/internal/api/handlers"
	"github.com/m04kA/SMC-CapacityService/internal/service/sessions"
)

const (
	msgInvalidSessionID = "некорректный ID сессии"
	msgNotFound         = "сессия бронирования не найдена"
	msgSessionClosed    = "сессия бронирования уже завершена"
)

type Handler struct {
	service SessionService
	logger  Logger
}

func NewHandler(service SessionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/booking-sessions/{sessionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID, err := handlers.PathUUID(r, "sessionId")
	if err != nil {
		h.logger.Warn("DELETE /booking-sessions/{id} - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	session, err := h.service.Cancel(r.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrSessionNotFound):
			h.logger.Warn("DELETE /booking-sessions/{id} - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, sessions.ErrSessionClosed):
			h.logger.Warn("DELETE /booking-sessions/{id} - Session closed: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgSessionClosed)
		default:
			h.logger.Error("DELETE /booking-sessions/{id} - Failed to cancel session: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /booking-sessions/{id} - Session cancelled: session_id=%s", sessionID)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewSessionResponse(session))
}
