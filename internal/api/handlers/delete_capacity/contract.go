package delete_capacity

import (
	"context"

	"github.com/m04kA/SMC-CapacityService/internal/service/capacities/models"
)

type CapacityService interface {
	Delete(ctx context.Context, req *models.DeleteCapacityRequest) (*models.CommandResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
