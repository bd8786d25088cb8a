package schedule

import (
	"time"

	"github.com/m04kA/SMC-CapacityService/internal/domain"
)

// Eligibility решает, можно ли выбрать ячейку в момент now, и возвращает причину отказа.
// Ячейка в прошлом, если начало интервала на её дате не позже now.
func (s *Service) Eligibility(cell domain.Cell, now time.Time) (bool, domain.CellReason) {
	if !cell.InWeek || cell.Slot == nil {
		return false, domain.ReasonUnavailable
	}

	slot := cell.Slot
	if slot.DayOfWeek != cell.DayOfWeek || slot.TimeSlot != cell.TimeSlot || slot.HourKey() != cell.Bucket.Key() {
		return false, domain.ReasonUnavailable
	}

	// Слот вне каталога в представлении не отображается и выбран быть не может
	if _, ok := s.catalog.Lookup(slot.TimeSlot, slot.HourKey()); !ok {
		return false, domain.ReasonUnavailable
	}

	if !cell.StartsAt().After(now) {
		return false, domain.ReasonPast
	}

	if !slot.IsActive {
		return false, domain.ReasonInactive
	}

	if !slot.HasCapacity() {
		return false, domain.ReasonUnavailable
	}

	return true, domain.ReasonNone
}

// IsSelectable возвращает true, если ячейку можно выбрать в момент now
func (s *Service) IsSelectable(cell domain.Cell, now time.Time) bool {
	ok, _ := s.Eligibility(cell, now)
	return ok
}
