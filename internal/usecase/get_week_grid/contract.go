package get_week_grid

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CapacityService/internal/domain"
	"github.com/m04kA/SMC-CapacityService/internal/integrations/capacityapi"
	"github.com/m04kA/SMC-CapacityService/pkg/latest"
)

// SessionRepository интерфейс репозитория сессий бронирования
type SessionRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.BookingSession, error)
}

// CapacityLister интерфейс источника записей вместимости (кэш поверх backend)
type CapacityLister interface {
	ListCapacities(ctx context.Context, locationID string) ([]capacityapi.Capacity, error)
}

// Scheduler интерфейс сервиса расписания
type Scheduler interface {
	BuildWeek(anchor time.Time) domain.Week
	BuildGrid(records []capacityapi.Capacity, week domain.Week) *domain.Grid
	BuildView(grid *domain.Grid, mode domain.ViewMode, locationID string, now time.Time) domain.GridView
}

// FetchTracker отслеживает последний запрос сетки по ключу
type FetchTracker interface {
	Begin(key string) latest.Ticket
	IsLatest(ticket latest.Ticket) bool
}

// StaleRecorder учитывает отброшенные устаревшие загрузки
type StaleRecorder interface {
	RecordStaleFetch()
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

type noopStaleRecorder struct{}

func (noopStaleRecorder) RecordStaleFetch() {}
