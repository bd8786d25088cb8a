package domain

import "time"

// Day is one column of the week grid
type Day struct {
	DayOfWeek int
	Date      time.Time
	Label     string
}

// Week describes the seven days starting at a Sunday
type Week struct {
	Start time.Time
	Days  [DaysInWeek]Day
}

// BuildWeek normalizes anchor to the Sunday on or before it (at midnight in anchor's location)
// and returns the seven days of that week
func BuildWeek(anchor time.Time) Week {
	y, m, d := anchor.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, anchor.Location())
	start := day.AddDate(0, 0, -int(day.Weekday()))

	w := Week{Start: start}
	for i := 0; i < DaysInWeek; i++ {
		date := start.AddDate(0, 0, i)
		w.Days[i] = Day{
			DayOfWeek: int(date.Weekday()),
			Date:      date,
			Label:     date.Format(DayLabelFormat),
		}
	}
	return w
}

// CurrentWeek returns the week containing now
func CurrentWeek(now time.Time) Week {
	return BuildWeek(now)
}

// End returns the Saturday of the week
func (w Week) End() time.Time {
	return w.Days[DaysInWeek-1].Date
}

// Next returns the following week
func (w Week) Next() Week {
	return BuildWeek(w.Start.AddDate(0, 0, DaysInWeek))
}

// Prev returns the preceding week
func (w Week) Prev() Week {
	return BuildWeek(w.Start.AddDate(0, 0, -DaysInWeek))
}

// Day returns the column for a weekday
func (w Week) Day(dayOfWeek int) (Day, bool) {
	if dayOfWeek < MinDayOfWeek || dayOfWeek > MaxDayOfWeek {
		return Day{}, false
	}
	d := w.Days[dayOfWeek]
	return d, d.DayOfWeek == dayOfWeek
}

// Contains reports whether t's calendar day falls inside the week
func (w Week) Contains(t time.Time) bool {
	day := w.dateOf(t)
	return !day.Before(w.Start) && !day.After(w.End())
}

// Overlaps reports whether the calendar-day span [from, to] intersects the week
func (w Week) Overlaps(from, to time.Time) bool {
	return !w.dateOf(to).Before(w.Start) && !w.dateOf(from).After(w.End())
}

func (w Week) dateOf(t time.Time) time.Time {
	y, m, d := t.In(w.Start.Location()).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, w.Start.Location())
}
