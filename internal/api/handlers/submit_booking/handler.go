package submit_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CapacityService/internal/api/handlers"
	submitBooking "github.com/m04kA/SMC-CapacityService/internal/usecase/submit_booking"
)

const (
	msgInvalidSessionID     = "некорректный ID сессии"
	msgNotFound             = "сессия бронирования не найдена"
	msgSessionClosed        = "сессия бронирования уже завершена"
	msgNoSelection          = "не выбрано время донации"
	msgSelectionExpired     = "выбранное время уже недоступно, выберите другое"
	msgSubmissionInProgress = "заявка по этой сессии уже отправляется"
)

type Handler struct {
	useCase SubmitBookingUseCase
	logger  Logger
}

func NewHandler(useCase SubmitBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/booking-sessions/{sessionId}/submit
// Сообщение backend при отказе возвращается клиенту без изменений.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID, err := handlers.PathUUID(r, "sessionId")
	if err != nil {
		h.logger.Warn("POST /booking-sessions/{id}/submit - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &submitBooking.Request{SessionID: sessionID})
	if err != nil {
		var subErr *submitBooking.SubmissionError
		switch {
		case errors.As(err, &subErr):
			status := http.StatusBadGateway
			if subErr.Rejected {
				status = http.StatusUnprocessableEntity
			}
			h.logger.Warn("POST /booking-sessions/{id}/submit - Submission failed: session_id=%s, rejected=%v, message=%s",
				sessionID, subErr.Rejected, subErr.Message)
			handlers.RespondError(w, status, subErr.Message)

		case errors.Is(err, submitBooking.ErrCancelled):
			// Клиент уже ушел, отвечать некому
			h.logger.Info("POST /booking-sessions/{id}/submit - Request cancelled: session_id=%s", sessionID)

		case errors.Is(err, submitBooking.ErrSessionNotFound):
			h.logger.Warn("POST /booking-sessions/{id}/submit - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, submitBooking.ErrSessionClosed):
			h.logger.Warn("POST /booking-sessions/{id}/submit - Session closed: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgSessionClosed)

		case errors.Is(err, submitBooking.ErrNoSelection):
			h.logger.Warn("POST /booking-sessions/{id}/submit - No selection: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgNoSelection)

		case errors.Is(err, submitBooking.ErrSelectionExpired):
			h.logger.Warn("POST /booking-sessions/{id}/submit - Selection expired: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgSelectionExpired)

		case errors.Is(err, submitBooking.ErrSubmissionInProgress):
			h.logger.Warn("POST /booking-sessions/{id}/submit - Submission in progress: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgSubmissionInProgress)

		case errors.Is(err, submitBooking.ErrInvalidInput):
			h.logger.Warn("POST /booking-sessions/{id}/submit - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSessionID)

		default:
			h.logger.Error("POST /booking-sessions/{id}/submit - Failed to submit booking: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /booking-sessions/{id}/submit - Booking submitted: session_id=%s, request_id=%s",
		sessionID, result.RequestID)
	handlers.RespondJSON(w, http.StatusOK, SubmitBookingResponse{
		Session: handlers.NewSessionResponse(result.Session),
		Payload: PayloadResponse{
			PreferredDate:     result.Payload.PreferredDate,
			PreferredTimeSlot: string(result.Payload.PreferredTimeSlot),
			LocationID:        result.Payload.LocationID,
			BloodGroupID:      result.Payload.BloodGroupID,
			ComponentTypeID:   result.Payload.ComponentTypeID,
			Notes:             result.Payload.Notes,
			IsUrgent:          result.Payload.IsUrgent,
		},
		RequestID: result.RequestID,
		Status:    result.Status,
	})
}
