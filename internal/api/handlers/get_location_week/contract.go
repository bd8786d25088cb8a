package get_location_week

import (
	"context"
	"time"

	getWeekGrid "github.com/m04kA/SMC-CapacityService/internal/usecase/get_week_grid"
)

type GetWeekGridUseCase interface {
	Execute(ctx context.Context, req *getWeekGrid.Request) (*getWeekGrid.Response, error)
}

type DateParser interface {
	ParseDate(s string) (time.Time, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
