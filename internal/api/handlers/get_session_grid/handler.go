package get_session_grid

import (
	"net/http"

	"github.com/m04kA/SMC-CapacityService/internal/api/handlers"
	"github.com/m04kA/SMC-CapacityService/internal/domain"
	getWeekGrid "github.com/m04kA/SMC-CapacityService/internal/usecase/get_week_grid"
)

const msgInvalidSessionID = "некорректный ID сессии"

type Handler struct {
	useCase GetWeekGridUseCase
	logger  Logger
}

func NewHandler(useCase GetWeekGridUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/booking-sessions/{sessionId}/grid
// Если пока шла загрузка пришел более новый запрос той же сессии, ответ 204.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID, err := handlers.PathUUID(r, "sessionId")
	if err != nil {
		h.logger.Warn("GET /booking-sessions/{id}/grid - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getWeekGrid.Request{
		SessionID: &sessionID,
		Mode:      domain.ViewDonor,
	})
	if err != nil {
		handlers.RespondGridError(w, r, h.logger, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.SessionGridResponse{
		Session: handlers.NewSessionResponse(result.Session),
		Grid:    handlers.NewGridResponse(result.View),
	})
}
