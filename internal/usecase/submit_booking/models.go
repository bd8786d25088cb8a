package submit_booking

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-CapacityService/internal/domain"
)

const (
	outcomeConfirmed = "confirmed"
	outcomeRejected  = "rejected"
	outcomeFailed    = "failed"

	// defaultFailureMessage используется, когда backend не вернул сообщение
	defaultFailureMessage = "donation request could not be submitted, please try again"
)

// Request модель запроса отправки заявки
type Request struct {
	SessionID uuid.UUID // ID сессии бронирования
}

// Response модель ответа с подтвержденной сессией
type Response struct {
	Session   *domain.BookingSession
	Payload   domain.BookingPayload // отправленная заявка
	RequestID string                // ID заявки в backend
	Status    string                // статус заявки в backend
}
