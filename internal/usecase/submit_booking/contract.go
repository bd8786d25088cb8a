package submit_booking

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

// DonationClient интерфейс клиента backend для отправки заявок
type DonationClient interface {
	SubmitDonationRequest(ctx context.Context, req *capacityapi.DonationRequest) (*capacityapi.DonationRequestResult, error)
}

// Scheduler интерфейс сервиса расписания
type Scheduler interface {
	ToBookingPayload(sel domain.Selection, locationID string, details domain.BookingDetails) domain.BookingPayload
	IsStillSelectable(sel domain.Selection, now time.Time) bool
}

// SessionLocker не дает отправить одну сессию дважды одновременно
type SessionLocker interface {
	TryLock(key string) (unlock func(), ok bool)
}

// FetchTracker забывает счетчик запросов сетки подтвержденной сессии
type FetchTracker interface {
	Forget(key string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// SubmissionRecorder учитывает исходы отправки заявок
type SubmissionRecorder interface {
	RecordSubmission(outcome string)
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

type noopTracker struct{}

func (noopTracker) Forget(string) {}

type noopRecorder struct{}

func (noopRecorder) RecordSubmission(string) {}
