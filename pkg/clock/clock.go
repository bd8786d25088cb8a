// Package clock keeps every scheduling computation in one civil timezone and
// converts values at the transport boundary.
package clock

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata"
)

// DefaultTimezone is used when no timezone is configured.
const DefaultTimezone = "Asia/Ho_Chi_Minh"

const (
	// DateFormat is the calendar date layout used in requests and storage.
	DateFormat = "2006-01-02"

	wallClockLayout = "2006-01-02T15:04:05"
)

// ErrMalformedTimestamp is returned when a transport timestamp cannot be parsed.
var ErrMalformedTimestamp = errors.New("clock: malformed timestamp")

// Clock is a facility-local clock.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

// New loads the IANA timezone and returns a clock bound to it.
func New(timezone string) (*Clock, error) {
	if timezone == "" {
		timezone = DefaultTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("clock: load timezone %q: %w", timezone, err)
	}
	return &Clock{loc: loc, now: time.Now}, nil
}

// NewWithLocation returns a clock bound to loc.
func NewWithLocation(loc *time.Location) *Clock {
	return &Clock{loc: loc, now: time.Now}
}

// WithNow returns a copy of the clock reading the current time from fn.
func (c *Clock) WithNow(fn func() time.Time) *Clock {
	return &Clock{loc: c.loc, now: fn}
}

// Location returns the facility timezone.
func (c *Clock) Location() *time.Location {
	return c.loc
}

// Now returns the current instant in facility-local time.
func (c *Clock) Now() time.Time {
	return c.now().In(c.loc)
}

// Local converts t to facility-local time.
func (c *Clock) Local(t time.Time) time.Time {
	return t.In(c.loc)
}

// Date builds a facility-local time from civil fields.
func (c *Clock) Date(year int, month time.Month, day, hour, min, sec int) time.Time {
	return time.Date(year, month, day, hour, min, sec, 0, c.loc)
}

// ParseDate parses a YYYY-MM-DD date as local midnight.
func (c *Clock) ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateFormat, s, c.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, s)
	}
	return t, nil
}

// StartOfDay returns local midnight of t's local calendar day.
func (c *Clock) StartOfDay(t time.Time) time.Time {
	return DateOnly(t.In(c.loc))
}

// SameDay reports whether a and b fall on the same local calendar day.
func (c *Clock) SameDay(a, b time.Time) bool {
	return c.StartOfDay(a).Equal(c.StartOfDay(b))
}

// DecodeStored reads a capacity record timestamp. The backend stores the hour
// of day as the bucket boundary, so the wall clock fields are taken as local
// and any offset in the string is ignored.
func (c *Clock) DecodeStored(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, wallClockLayout} {
		p, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return time.Date(p.Year(), p.Month(), p.Day(), p.Hour(), p.Minute(), p.Second(), p.Nanosecond(), c.loc), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, s)
}

// EncodeStored is the inverse of DecodeStored: the local wall clock with a Z suffix.
func (c *Clock) EncodeStored(t time.Time) string {
	return t.In(c.loc).Format(wallClockLayout) + "Z"
}

// ToTransport converts a local instant to a UTC ISO8601 string.
func (c *Clock) ToTransport(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// FromTransport parses a UTC ISO8601 string back to local time.
func (c *Clock) FromTransport(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, s)
	}
	return t.In(c.loc), nil
}

// DateOnly truncates t to midnight in t's own location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
