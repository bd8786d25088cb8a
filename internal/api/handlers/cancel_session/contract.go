package cancel_session

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CapacityService/internal/domain"
)

type SessionService interface {
	Cancel(ctx context.Context, id uuid.UUID) (*domain.BookingSession, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
