package select_slot

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CapacityService/internal/domain"
	"github.com/m04kA/SMC-CapacityService/internal/integrations/capacityapi"
)

// SessionRepository интерфейс репозитория сессий бронирования
type SessionRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.BookingSession, error)
	Update(ctx context.Context, session *domain.BookingSession) error
}

// CapacityLister интерфейс источника записей вместимости
type CapacityLister interface {
	ListCapacities(ctx context.Context, locationID string) ([]capacityapi.Capacity, error)
}

// Scheduler интерфейс сервиса расписания
type Scheduler interface {
	BuildWeek(anchor time.Time) domain.Week
	BuildGrid(records []capacityapi.Capacity, week domain.Week) *domain.Grid
	SelectSlot(grid *domain.Grid, slotID string, now time.Time) (domain.Selection, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
