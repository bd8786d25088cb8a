package get_week_grid

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CapacityService/internal/domain"
)

// Request модель запроса сетки недели.
// Задается либо SessionID (неделя берется из сессии), либо LocationID с необязательным якорем.
type Request struct {
	SessionID  *uuid.UUID      // ID сессии бронирования (опционально)
	LocationID string          // ID локации, если сессия не указана
	Anchor     *time.Time      // Любой момент внутри нужной недели; по умолчанию текущая неделя
	Mode       domain.ViewMode // donor или staff
}

// Response модель ответа с отрисованной сеткой
type Response struct {
	View    domain.GridView
	Session *domain.BookingSession // nil, если запрос без сессии
}
