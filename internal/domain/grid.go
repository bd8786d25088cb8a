package domain

import "time"

// AnomalyKind classifies a capacity record that could not be placed cleanly
type AnomalyKind string

const (
	AnomalyDuplicate          AnomalyKind = "duplicate"
	AnomalyMalformedTimestamp AnomalyKind = "malformed_timestamp"
	AnomalyInvalidSpan        AnomalyKind = "invalid_span"
	AnomalyInvalidDayOfWeek   AnomalyKind = "invalid_day_of_week"
	AnomalyUnknownTimeSlot    AnomalyKind = "unknown_time_slot"
	AnomalyOffCatalog         AnomalyKind = "off_catalog"
)

// Anomaly is a data problem found while building a grid. It never fails the grid.
type Anomaly struct {
	Kind   AnomalyKind
	SlotID string
	Detail string
}

// Grid maps dayOfWeek -> timeSlot -> hourKey -> CapacitySlot for one week
type Grid struct {
	Week      Week
	Cells     map[int]map[TimeSlot]map[HourKey]CapacitySlot
	Anomalies []Anomaly
}

// NewGrid returns an empty grid for week
func NewGrid(week Week) *Grid {
	return &Grid{
		Week:      week,
		Cells:     make(map[int]map[TimeSlot]map[HourKey]CapacitySlot),
		Anomalies: []Anomaly{},
	}
}

// Put stores slot at its coordinates and returns the slot it replaced, if any
func (g *Grid) Put(slot CapacitySlot) (CapacitySlot, bool) {
	byTimeSlot, ok := g.Cells[slot.DayOfWeek]
	if !ok {
		byTimeSlot = make(map[TimeSlot]map[HourKey]CapacitySlot)
		g.Cells[slot.DayOfWeek] = byTimeSlot
	}
	byHour, ok := byTimeSlot[slot.TimeSlot]
	if !ok {
		byHour = make(map[HourKey]CapacitySlot)
		byTimeSlot[slot.TimeSlot] = byHour
	}

	key := slot.HourKey()
	prev, replaced := byHour[key]
	byHour[key] = slot
	return prev, replaced
}

// Lookup returns the slot at the given coordinates
func (g *Grid) Lookup(dayOfWeek int, ts TimeSlot, key HourKey) (CapacitySlot, bool) {
	slot, ok := g.Cells[dayOfWeek][ts][key]
	return slot, ok
}

// FindByID returns the slot with the given id
func (g *Grid) FindByID(id string) (CapacitySlot, bool) {
	for _, byTimeSlot := range g.Cells {
		for _, byHour := range byTimeSlot {
			for _, slot := range byHour {
				if slot.ID == id {
					return slot, true
				}
			}
		}
	}
	return CapacitySlot{}, false
}

// Len returns the number of placed slots
func (g *Grid) Len() int {
	n := 0
	for _, byTimeSlot := range g.Cells {
		for _, byHour := range byTimeSlot {
			n += len(byHour)
		}
	}
	return n
}

// Cell returns the grid cell for a weekday column and a catalog bucket
func (g *Grid) Cell(dayOfWeek int, ts TimeSlot, bucket HourBucket) Cell {
	cell := Cell{DayOfWeek: dayOfWeek, TimeSlot: ts, Bucket: bucket}
	if day, ok := g.Week.Day(dayOfWeek); ok {
		cell.Date = day.Date
		cell.InWeek = true
	}
	if slot, ok := g.Lookup(dayOfWeek, ts, bucket.Key()); ok {
		cell.Slot = &slot
	}
	return cell
}

// CellOf returns the cell occupied by slot
func (g *Grid) CellOf(slot CapacitySlot) Cell {
	key := slot.HourKey()
	return g.Cell(slot.DayOfWeek, slot.TimeSlot, NewHourBucket(key.Start, key.End))
}

// Cell is one (day, time slot, hour bucket) position of the grid
type Cell struct {
	DayOfWeek int
	Date      time.Time
	InWeek    bool
	TimeSlot  TimeSlot
	Bucket    HourBucket
	Slot      *CapacitySlot
}

// IsEmpty returns true if no capacity slot occupies the cell
func (c Cell) IsEmpty() bool {
	return c.Slot == nil
}

// StartsAt returns the concrete local instant the bucket starts on the cell's date
func (c Cell) StartsAt() time.Time {
	y, m, d := c.Date.Date()
	return time.Date(y, m, d, c.Bucket.StartHour, 0, 0, 0, c.Date.Location())
}
