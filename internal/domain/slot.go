package domain

import "time"

// CapacitySlot is a bookable (day of week, time slot, hour bucket) unit owned by the capacity backend.
// EffectiveDate and ExpiryDate are facility-local: their hours encode the bucket boundaries
// and their dates bound the validity window.
type CapacitySlot struct {
	ID            string
	LocationID    string
	DayOfWeek     int
	TimeSlot      TimeSlot
	EffectiveDate time.Time
	ExpiryDate    time.Time
	TotalCapacity int
	IsActive      bool
	Notes         string
}

// HourKey returns the bucket encoded by the slot's dates
func (s *CapacitySlot) HourKey() HourKey {
	return HourKey{Start: s.EffectiveDate.Hour(), End: s.ExpiryDate.Hour()}
}

// HasValidSpan returns true if the bucket start hour is before its end hour
func (s *CapacitySlot) HasValidSpan() bool {
	return s.EffectiveDate.Hour() < s.ExpiryDate.Hour()
}

// HasValidDayOfWeek returns true if the day of week is within 0..6
func (s *CapacitySlot) HasValidDayOfWeek() bool {
	return s.DayOfWeek >= MinDayOfWeek && s.DayOfWeek <= MaxDayOfWeek
}

// HasCapacity returns true if at least one donor can be booked
func (s *CapacitySlot) HasCapacity() bool {
	return s.TotalCapacity > 0
}
