package select_slot

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-CapacityService/internal/domain"
)

// Request модель запроса выбора ячейки
type Request struct {
	SessionID      uuid.UUID // ID сессии бронирования
	CapacitySlotID string    // ID записи вместимости в отображаемой неделе
}

// Response модель ответа с обновленной сессией
type Response struct {
	Session *domain.BookingSession
}
