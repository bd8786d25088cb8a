package create_capacity

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CapacityService/internal/service/capacities/models"
)

type CapacityService interface {
	Create(ctx context.Context, req *models.CreateCapacityRequest) (*models.CommandResponse, error)
}

type DateParser interface {
	ParseDate(s string) (time.Time, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
