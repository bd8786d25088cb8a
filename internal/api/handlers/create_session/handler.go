package create_session

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CapacityService/internal/api/handlers"
	"github.com/m04kA/SMC-CapacityService/internal/service/sessions"
	"github.com/m04kA/SMC-CapacityService/internal/service/sessions/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidAnchor      = "некорректный формат даты anchor, ожидается YYYY-MM-DD"
	msgInvalidLocationID  = "некорректный ID локации"
)

type Handler struct {
	service SessionService
	parser  DateParser
	logger  Logger
}

func NewHandler(service SessionService, parser DateParser, logger Logger) *Handler {
	return &Handler{
		service: service,
		parser:  parser,
		logger:  logger,
	}
}

// Handle POST /api/v1/booking-sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking-sessions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	anchor, err := handlers.OptionalDate(req.Anchor, h.parser)
	if err != nil {
		h.logger.Warn("POST /booking-sessions - Invalid anchor: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAnchor)
		return
	}

	session, err := h.service.Create(r.Context(), &models.CreateSessionRequest{
		LocationID: req.LocationID,
		Anchor:     anchor,
	})
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("POST /booking-sessions - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidLocationID)
		default:
			h.logger.Error("POST /booking-sessions - Failed to create session: location_id=%s, error=%v", req.LocationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /booking-sessions - Session created: session_id=%s, location_id=%s", session.ID, session.LocationID)
	handlers.RespondJSON(w, http.StatusCreated, handlers.NewSessionResponse(session))
}
