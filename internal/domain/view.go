package domain

// ViewMode selects donor or staff rendering of a grid
type ViewMode string

const (
	ViewDonor ViewMode = "donor"
	ViewStaff ViewMode = "staff"
)

// CellView is a rendered grid cell
type CellView struct {
	Cell
	Selectable bool
	Reason     CellReason
	CanAddSlot bool
}

// TimeSlotView groups the cells of one period of one day
type TimeSlotView struct {
	TimeSlot TimeSlot
	Cells    []CellView
}

// DayView is a rendered grid column
type DayView struct {
	Day       Day
	TimeSlots []TimeSlotView
}

// GridView is the full rendering of a week for a location
type GridView struct {
	Mode           ViewMode
	LocationID     string
	CatalogVersion string
	Week           Week
	Days           []DayView
	Anomalies      []Anomaly
}
