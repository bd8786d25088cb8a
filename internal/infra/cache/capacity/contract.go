package capacity

import (
	"context"

	"github.com/m04kA/SMC-CapacityService/internal/integrations/capacityapi"
)

// Lister источник записей вместимости
type Lister interface {
	ListCapacities(ctx context.Context, locationID string) ([]capacityapi.Capacity, error)
}

// Recorder принимает статистику попаданий в кэш
type Recorder interface {
	RecordCacheResult(hit bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type noopRecorder struct{}

func (noopRecorder) RecordCacheResult(bool) {}
