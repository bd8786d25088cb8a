package domain

import "time"

// CellReason explains why a grid cell cannot be selected. Empty means selectable.
type CellReason string

const (
	ReasonNone        CellReason = ""
	ReasonPast        CellReason = "past"
	ReasonInactive    CellReason = "inactive"
	ReasonUnavailable CellReason = "unavailable"
)

// Selection is the concrete slot a donor picked in a booking session
type Selection struct {
	CapacitySlotID string
	DayOfWeek      int
	TimeSlot       TimeSlot
	HourBucket     HourBucket
	ResolvedDate   time.Time // facility-local
}

// BookingDetails are the donor inputs collected besides the slot.
// The value is replaced as a whole, never merged field by field.
type BookingDetails struct {
	BloodGroupID    *string
	ComponentTypeID *string
	Notes           *string
	IsUrgent        bool
}

// BookingPayload is the donation request sent to the backend
type BookingPayload struct {
	PreferredDate     string // UTC ISO8601
	PreferredTimeSlot TimeSlot
	LocationID        string
	BloodGroupID      *string
	ComponentTypeID   *string
	Notes             *string
	IsUrgent          *bool
}
