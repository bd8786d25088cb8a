package update_details

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CapacityService/internal/api/handlers"
	"github.com/m04kA/SMC-CapacityService/internal/service/sessions"
	"github.com/m04kA/SMC-CapacityService/internal/service/sessions/models"
)

const (
	msgInvalidSessionID   = "некорректный ID сессии"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDetails     = "некорректные данные заявки"
	msgNotFound           = "сессия бронирования не найдена"
	msgSessionClosed      = "сессия бронирования уже завершена"
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

// Handle PUT /api/v1/booking-sessions/{sessionId}/details
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID, err := handlers.PathUUID(r, "sessionId")
	if err != nil {
		h.logger.Warn("PUT /booking-sessions/{id}/details - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	var req UpdateDetailsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /booking-sessions/{id}/details - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	session, err := h.service.UpdateDetails(r.Context(), &models.UpdateDetailsRequest{
		SessionID:       sessionID,
		BloodGroupID:    req.BloodGroupID,
		ComponentTypeID: req.ComponentTypeID,
		Notes:           req.Notes,
		IsUrgent:        req.IsUrgent,
	})
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("PUT /booking-sessions/{id}/details - Invalid input: session_id=%s, error=%v", sessionID, err)
			handlers.RespondBadRequest(w, msgInvalidDetails)
		case errors.Is(err, sessions.ErrSessionNotFound):
			h.logger.Warn("PUT /booking-sessions/{id}/details - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, sessions.ErrSessionClosed):
			h.logger.Warn("PUT /booking-sessions/{id}/details - Session closed: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgSessionClosed)
		default:
			h.logger.Error("PUT /booking-sessions/{id}/details - Failed to update details: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /booking-sessions/{id}/details - Details updated: session_id=%s", sessionID)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewSessionResponse(session))
}
