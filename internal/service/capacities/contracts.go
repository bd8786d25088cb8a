package capacities

import (
	"context"

	"github.com/m04kA/SMC-CapacityService/internal/infra/events"
	"github.com/m04kA/SMC-CapacityService/internal/integrations/capacityapi"
)

// CapacityClient интерфейс клиента backend вместимости
type CapacityClient interface {
	CreateCapacity(ctx context.Context, req *capacityapi.CreateCapacityRequest) (*capacityapi.Capacity, error)
	UpdateCapacity(ctx context.Context, id string, req *capacityapi.UpdateCapacityRequest) (*capacityapi.Capacity, error)
	DeleteCapacity(ctx context.Context, id string) error
	BulkCreateCapacities(ctx context.Context, req *capacityapi.BulkCreateCapacityRequest) ([]capacityapi.Capacity, error)
}

// Refresher сбрасывает кэш локации и загружает записи заново
type Refresher interface {
	Refresh(ctx context.Context, locationID string) ([]capacityapi.Capacity, error)
}

// ChangePublisher публикует события об изменении вместимости
type ChangePublisher interface {
	PublishCapacityChanged(ctx context.Context, evt events.CapacityChanged) error
}

// Locker выдает блокировку по ключу
type Locker interface {
	Lock(key string) (unlock func())
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
