package select_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CapacityService/internal/api/handlers"
	"github.com/m04kA/SMC-CapacityService/internal/domain"
	"github.com/m04kA/SMC-CapacityService/internal/service/schedule"
	selectSlot "github.com/m04kA/SMC-CapacityService/internal/usecase/select_slot"
)

const (
	msgInvalidSessionID    = "некорректный ID сессии"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingSlotID       = "не указан capacitySlotId"
	msgNotFound            = "сессия бронирования не найдена"
	msgSessionClosed       = "сессия бронирования уже завершена"
	msgSlotPast            = "выбранное время уже прошло"
	msgSlotInactive        = "слот неактивен"
	msgSlotUnavailable     = "слот недоступен для записи"
	msgCapacityUnavailable = "сервис вместимости недоступен"
)

type Handler struct {
	useCase SelectSlotUseCase
	logger  Logger
}

func NewHandler(useCase SelectSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/booking-sessions/{sessionId}/selection
// Недоступный выбор возвращает 409 с причиной, сессия при этом не меняется.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID, err := handlers.PathUUID(r, "sessionId")
	if err != nil {
		h.logger.Warn("POST /booking-sessions/{id}/selection - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	var req SelectSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking-sessions/{id}/selection - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &selectSlot.Request{
		SessionID:      sessionID,
		CapacitySlotID: req.CapacitySlotID,
	})
	if err != nil {
		switch {
		case errors.Is(err, selectSlot.ErrCancelled):
			// Клиент уже ушел, отвечать некому
			h.logger.Info("POST /booking-sessions/{id}/selection - Request cancelled: session_id=%s", sessionID)

		case errors.Is(err, selectSlot.ErrInvalidSelection):
			reason, _ := schedule.ReasonOf(err)
			h.logger.Warn("POST /booking-sessions/{id}/selection - Invalid selection: session_id=%s, slot_id=%s, reason=%s",
				sessionID, req.CapacitySlotID, reason)
			handlers.RespondErrorWithReason(w, http.StatusConflict, reasonMessage(reason), string(reason))

		case errors.Is(err, selectSlot.ErrInvalidInput):
			h.logger.Warn("POST /booking-sessions/{id}/selection - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgMissingSlotID)

		case errors.Is(err, selectSlot.ErrSessionNotFound):
			h.logger.Warn("POST /booking-sessions/{id}/selection - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, selectSlot.ErrSessionClosed):
			h.logger.Warn("POST /booking-sessions/{id}/selection - Session closed: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgSessionClosed)

		case errors.Is(err, selectSlot.ErrCapacityUnavailable):
			h.logger.Error("POST /booking-sessions/{id}/selection - Capacity backend unavailable: %v", err)
			handlers.RespondError(w, http.StatusBadGateway, msgCapacityUnavailable)

		default:
			h.logger.Error("POST /booking-sessions/{id}/selection - Failed to select slot: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /booking-sessions/{id}/selection - Slot selected: session_id=%s, slot_id=%s",
		sessionID, req.CapacitySlotID)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewSessionResponse(result.Session))
}

func reasonMessage(reason domain.CellReason) string {
	switch reason {
	case domain.ReasonPast:
		return msgSlotPast
	case domain.ReasonInactive:
		return msgSlotInactive
	default:
		return msgSlotUnavailable
	}
}
