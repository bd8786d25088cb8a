package schedule

import (
	"time"

	"github.com/m04kA/SMC-CapacityService/internal/domain"
	"github.com/m04kA/SMC-CapacityService/pkg/ptr"
)

// Select переводит ячейку и колонку дня в конкретную локальную дату-время:
// дата колонки плюс час, минута и секунда начала слота
func (s *Service) Select(cell domain.Cell, day domain.Day) (domain.Selection, error) {
	if cell.Slot == nil {
		return domain.Selection{}, invalidSelection("", domain.ReasonUnavailable)
	}

	slot := cell.Slot
	if day.DayOfWeek != slot.DayOfWeek || cell.DayOfWeek != slot.DayOfWeek {
		return domain.Selection{}, invalidSelection(slot.ID, domain.ReasonUnavailable)
	}

	start := s.clock.Local(slot.EffectiveDate)
	y, m, d := s.clock.Local(day.Date).Date()
	resolved := time.Date(y, m, d, start.Hour(), start.Minute(), start.Second(), 0, s.clock.Location())

	bucket := cell.Bucket
	if catalogBucket, ok := s.catalog.Lookup(slot.TimeSlot, slot.HourKey()); ok {
		bucket = catalogBucket
	}

	return domain.Selection{
		CapacitySlotID: slot.ID,
		DayOfWeek:      slot.DayOfWeek,
		TimeSlot:       slot.TimeSlot,
		HourBucket:     bucket,
		ResolvedDate:   resolved,
	}, nil
}

// SelectSlot находит слот в сетке, проверяет его доступность в момент now и строит выбор
func (s *Service) SelectSlot(grid *domain.Grid, slotID string, now time.Time) (domain.Selection, error) {
	slot, ok := grid.FindByID(slotID)
	if !ok {
		return domain.Selection{}, invalidSelection(slotID, domain.ReasonUnavailable)
	}

	cell := grid.CellOf(slot)
	if selectable, reason := s.Eligibility(cell, now); !selectable {
		return domain.Selection{}, invalidSelection(slotID, reason)
	}

	day, ok := grid.Week.Day(slot.DayOfWeek)
	if !ok {
		return domain.Selection{}, invalidSelection(slotID, domain.ReasonUnavailable)
	}

	return s.Select(cell, day)
}

// ToBookingPayload готовит заявку: дата переводится в UTC, передается только крупный период
func (s *Service) ToBookingPayload(sel domain.Selection, locationID string, details domain.BookingDetails) domain.BookingPayload {
	return domain.BookingPayload{
		PreferredDate:     s.clock.ToTransport(sel.ResolvedDate),
		PreferredTimeSlot: sel.TimeSlot,
		LocationID:        locationID,
		BloodGroupID:      details.BloodGroupID,
		ComponentTypeID:   details.ComponentTypeID,
		Notes:             details.Notes,
		IsUrgent:          ptr.Ptr(details.IsUrgent),
	}
}

// IsStillSelectable проверяет, что сохраненный выбор не ушел в прошлое к моменту now
func (s *Service) IsStillSelectable(sel domain.Selection, now time.Time) bool {
	return sel.ResolvedDate.After(now)
}
