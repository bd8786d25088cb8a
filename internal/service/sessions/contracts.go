package sessions

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CapacityService/internal/domain"
)

// SessionRepository интерфейс репозитория сессий бронирования
type SessionRepository interface {
	Create(ctx context.Context, session *domain.BookingSession) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.BookingSession, error)
	Update(ctx context.Context, session *domain.BookingSession) error
	DeleteFinishedBefore(ctx context.Context, before time.Time) (int64, error)
}

// Scheduler интерфейс сервиса расписания
type Scheduler interface {
	BuildWeek(anchor time.Time) domain.Week
	CurrentWeek() domain.Week
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// FetchTracker сбрасывает счетчик запросов сетки закрытой сессии
type FetchTracker interface {
	Forget(key string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
