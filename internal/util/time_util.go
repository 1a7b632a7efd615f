package util

import (
	"time"
)

const layout = time.DateOnly

func NewDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// TruncateToDay drops the time-of-day component, keeping the UTC calendar day.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func DateLte(t1, t2 time.Time) bool {
	return t1.Before(t2) || t1.Format(layout) == t2.Format(layout)
}

func SameDay(t1, t2 time.Time) bool {
	return t1.Format(layout) == t2.Format(layout)
}

// DaySequence returns every UTC calendar day from start to end, inclusive
// on both sides.
func DaySequence(start, end time.Time) []time.Time {
	out := []time.Time{}
	current := TruncateToDay(start)
	last := TruncateToDay(end)
	for !current.After(last) {
		out = append(out, current)
		current = current.AddDate(0, 0, 1)
	}
	return out
}

// DaysBetween returns the elapsed time between two instants expressed in
// fractional days. Snapshot cadence drifts, so callers should not assume
// whole-day gaps.
func DaysBetween(earlier, later time.Time) float64 {
	return later.Sub(earlier).Hours() / 24
}

func TimePointer(t time.Time) *time.Time {
	return &t
}
