package domain

import (
	"errors"
	"fmt"
	"strings"
)

// TimeSlot is the coarse period of day a capacity slot belongs to
type TimeSlot string

const (
	Morning   TimeSlot = "Morning"
	Afternoon TimeSlot = "Afternoon"
	Evening   TimeSlot = "Evening"
)

// TimeSlots lists periods in display order
var TimeSlots = []TimeSlot{Morning, Afternoon, Evening}

// ErrUnknownTimeSlot is returned when a time slot name is not recognized
var ErrUnknownTimeSlot = errors.New("unknown time slot")

// ParseTimeSlot parses a period name case-insensitively
func ParseTimeSlot(s string) (TimeSlot, error) {
	for _, ts := range TimeSlots {
		if strings.EqualFold(string(ts), strings.TrimSpace(s)) {
			return ts, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTimeSlot, s)
}

// IsValid reports whether ts is a known period
func (ts TimeSlot) IsValid() bool {
	for _, v := range TimeSlots {
		if ts == v {
			return true
		}
	}
	return false
}

// HourKey identifies an hour bucket by its start and end hour
type HourKey struct {
	Start int
	End   int
}

func (k HourKey) String() string {
	return fmt.Sprintf("%d-%d", k.Start, k.End)
}

// IsValid reports whether the bucket spans a positive number of hours within one day
func (k HourKey) IsValid() bool {
	return k.Start >= 0 && k.End <= 24 && k.Start < k.End
}

// HourBucket is a one-hour refinement within a TimeSlot
type HourBucket struct {
	Label     string
	StartHour int
	EndHour   int
}

// Key returns the bucket's hour key
func (b HourBucket) Key() HourKey {
	return HourKey{Start: b.StartHour, End: b.EndHour}
}

// NewHourBucket builds a bucket labelled "start-end"
func NewHourBucket(start, end int) HourBucket {
	return HourBucket{Label: fmt.Sprintf("%d-%d", start, end), StartHour: start, EndHour: end}
}

// Catalog is the single versioned table of hour buckets keyed by TimeSlot.
// Both the donor booking flow and the staff management flow render from it.
type Catalog struct {
	version string
	buckets map[TimeSlot][]HourBucket
}

// NewCatalog builds a catalog. Buckets are copied.
func NewCatalog(version string, buckets map[TimeSlot][]HourBucket) *Catalog {
	c := &Catalog{version: version, buckets: make(map[TimeSlot][]HourBucket, len(buckets))}
	for ts, list := range buckets {
		c.buckets[ts] = append([]HourBucket(nil), list...)
	}
	return c
}

// DefaultCatalogVersion is the version of DefaultCatalog
const DefaultCatalogVersion = "2"

// DefaultCatalog is the shared hour-bucket catalog
var DefaultCatalog = NewCatalog(DefaultCatalogVersion, map[TimeSlot][]HourBucket{
	Morning: {
		NewHourBucket(7, 8),
		NewHourBucket(8, 9),
		NewHourBucket(9, 10),
		NewHourBucket(10, 11),
	},
	Afternoon: {
		NewHourBucket(13, 14),
		NewHourBucket(14, 15),
		NewHourBucket(15, 16),
		NewHourBucket(16, 17),
		NewHourBucket(17, 18),
	},
	Evening: {
		NewHourBucket(18, 19),
		NewHourBucket(19, 20),
		NewHourBucket(20, 21),
	},
})

// Version returns the catalog version
func (c *Catalog) Version() string {
	return c.version
}

// TimeSlots returns the periods present in the catalog in display order
func (c *Catalog) TimeSlots() []TimeSlot {
	result := make([]TimeSlot, 0, len(c.buckets))
	for _, ts := range TimeSlots {
		if _, ok := c.buckets[ts]; ok {
			result = append(result, ts)
		}
	}
	return result
}

// HourBuckets returns the ordered buckets of a period
func (c *Catalog) HourBuckets(ts TimeSlot) []HourBucket {
	return append([]HourBucket(nil), c.buckets[ts]...)
}

// Lookup finds the bucket of a period by hour key
func (c *Catalog) Lookup(ts TimeSlot, key HourKey) (HourBucket, bool) {
	for _, b := range c.buckets[ts] {
		if b.Key() == key {
			return b, true
		}
	}
	return HourBucket{}, false
}

// TimeSlotOf returns the period that owns the bucket with the given key
func (c *Catalog) TimeSlotOf(key HourKey) (TimeSlot, bool) {
	for _, ts := range c.TimeSlots() {
		if _, ok := c.Lookup(ts, key); ok {
			return ts, true
		}
	}
	return "", false
}
