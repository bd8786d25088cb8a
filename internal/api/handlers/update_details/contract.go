package update_details

import (
	"context"

	"github.com/m04kA/SMC-CapacityService/internal/domain"
	"github.com/m04kA/SMC-CapacityService/internal/service/sessions/models"
)

type SessionService interface {
	UpdateDetails(ctx context.Context, req *models.UpdateDetailsRequest) (*domain.BookingSession, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
