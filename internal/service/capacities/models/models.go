package models

import (
	"time"

	"github.com/m04kA/SMC-CapacityService/internal/integrations/capacityapi"
)

// Request модели

// CreateCapacityRequest запрос на создание слота.
// Слот повторяется по дню недели DayOfWeek с даты EffectiveDate по ExpiryDate включительно,
// в часах [StartHour, EndHour) по времени локации.
type CreateCapacityRequest struct {
	LocationID    string    `validate:"required,max=64"`
	DayOfWeek     int       `validate:"min=0,max=6"`
	TimeSlot      string    `validate:"required"`
	StartHour     int       `validate:"min=0,max=23"`
	EndHour       int       `validate:"min=1,max=24,gtfield=StartHour"`
	EffectiveDate time.Time `validate:"required"`
	ExpiryDate    time.Time `validate:"required"`
	TotalCapacity int       `validate:"min=0,max=1000"`
	Notes         string    `validate:"max=500"`
	IsActive      bool
}

// UpdateCapacityRequest запрос на изменение слота; обновляются только переданные поля
type UpdateCapacityRequest struct {
	CapacityID    string  `validate:"required"`
	LocationID    string  `validate:"required,max=64"`
	TotalCapacity *int    `validate:"omitempty,min=0,max=1000"`
	Notes         *string `validate:"omitempty,max=500"`
	IsActive      *bool
}

// DeleteCapacityRequest запрос на удаление слота
type DeleteCapacityRequest struct {
	CapacityID string `validate:"required"`
	LocationID string `validate:"required,max=64"`
}

// BulkCreateCapacityRequest запрос на массовое создание слотов.
// Раскладка по каталогу часов выполняется на стороне backend одной командой.
type BulkCreateCapacityRequest struct {
	LocationID     string    `validate:"required,max=64"`
	StartDayOfWeek int       `validate:"min=0,max=6"`
	EndDayOfWeek   int       `validate:"min=0,max=6,gtefield=StartDayOfWeek"`
	EffectiveDate  time.Time `validate:"required"`
	ExpiryDate     time.Time `validate:"required"`
	TotalCapacity  int       `validate:"min=0,max=1000"`
	Notes          string    `validate:"max=500"`
	IsActive       bool
}

// Response модели

// CommandResponse результат команды персонала
type CommandResponse struct {
	Capacities []capacityapi.Capacity // созданные или измененные записи
	Refreshed  int                    // число записей локации после повторной загрузки
}
