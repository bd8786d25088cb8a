package models

import (
	"time"

	"github.com/google/uuid"
)

// NavigateAction переход по неделям в сессии
type NavigateAction string

const (
	ActionNext    NavigateAction = "next"
	ActionPrev    NavigateAction = "prev"
	ActionCurrent NavigateAction = "current"
	ActionGoto    NavigateAction = "goto"
)

// CreateSessionRequest запрос на создание сессии бронирования
type CreateSessionRequest struct {
	LocationID string     `validate:"required,max=64"`
	Anchor     *time.Time // неделя по умолчанию: текущая
}

// NavigateRequest запрос на переход к другой неделе
type NavigateRequest struct {
	SessionID uuid.UUID      `validate:"required"`
	Action    NavigateAction `validate:"required,oneof=next prev current goto"`
	Date      *time.Time     `validate:"required_if=Action goto"`
}

// UpdateDetailsRequest запрос на замену данных донора в сессии.
// Значение заменяется целиком: отсутствующее поле очищается.
type UpdateDetailsRequest struct {
	SessionID       uuid.UUID `validate:"required"`
	BloodGroupID    *string   `validate:"omitempty,max=64"`
	ComponentTypeID *string   `validate:"omitempty,max=64"`
	Notes           *string   `validate:"omitempty,max=500"`
	IsUrgent        bool
}
