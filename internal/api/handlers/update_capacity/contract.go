package update_capacity

import (
	"context"

	"github.com/m04kA/SMC-CapacityService/internal/service/capacities/models"
)

type CapacityService interface {
	Update(ctx context.Context, req *models.UpdateCapacityRequest) (*models.CommandResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
