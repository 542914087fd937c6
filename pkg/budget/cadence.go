package budget

import (
	"fmt"
	"time"
)

type CadenceType string

const (
	CadenceWeekly  CadenceType = "weekly"
	CadenceMonthly CadenceType = "monthly"
	CadenceYearly  CadenceType = "yearly"
	// CadenceEventually marks an open-ended item: its period never elapses,
	// so it is never rolled over.
	CadenceEventually CadenceType = "eventually"
)

// Cadence describes how often a budget item's period resets. Only the
// fields relevant to Type are meaningful.
type Cadence struct {
	Type       CadenceType
	DayOfWeek  time.Weekday // weekly
	DayOfMonth int          // monthly and yearly; clamped to the month's last day
	Month      time.Month   // yearly
}

// farFuture bounds open-ended periods. Not a real date the engine ever
// compares against besides membership tests.
var farFuture = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)

// Period returns the [start, end] window of the cadence period anchored at
// ref. Pure function of its inputs: calling it again with any instant inside
// the returned window yields the same window.
//
// Monthly periods start at the most recent DayOfMonth anchor on or before
// ref (clamped to the month's last valid day) and end the instant before
// the next month's anchor. Weekly periods start at the most recent
// DayOfWeek on or before ref and span 7 days. Yearly periods use the
// monthly anchor logic pinned to Month and span one year. Eventually
// periods are unbounded.
func (c Cadence) Period(ref time.Time) (time.Time, time.Time) {
	switch c.Type {
	case CadenceWeekly:
		delta := (int(ref.Weekday()) - int(c.DayOfWeek) + 7) % 7
		start := midnight(ref.AddDate(0, 0, -delta))
		return start, start.AddDate(0, 0, 7).Add(-time.Nanosecond)
	case CadenceMonthly:
		// Most recent monthly anchor on or before ref, so any instant
		// inside the returned window maps back to the same window.
		start := monthAnchor(ref.Year(), ref.Month(), c.DayOfMonth, ref.Location())
		if start.After(ref) {
			start = monthAnchor(ref.Year(), ref.Month()-1, c.DayOfMonth, ref.Location())
		}
		end := monthAnchor(start.Year(), start.Month()+1, c.DayOfMonth, ref.Location())
		return start, end.Add(-time.Nanosecond)
	case CadenceYearly:
		start := monthAnchor(ref.Year(), c.Month, c.DayOfMonth, ref.Location())
		if start.After(ref) {
			start = monthAnchor(ref.Year()-1, c.Month, c.DayOfMonth, ref.Location())
		}
		end := monthAnchor(start.Year()+1, c.Month, c.DayOfMonth, ref.Location())
		return start, end.Add(-time.Nanosecond)
	case CadenceEventually:
		return time.Time{}, farFuture
	}
	return time.Time{}, time.Time{}
}

// Validate checks that the cadence fields make sense for its type.
func (c Cadence) Validate() error {
	switch c.Type {
	case CadenceWeekly:
		if c.DayOfWeek < time.Sunday || c.DayOfWeek > time.Saturday {
			return fmt.Errorf("invalid day of week: %d", c.DayOfWeek)
		}
	case CadenceMonthly:
		if c.DayOfMonth < 1 || c.DayOfMonth > 31 {
			return fmt.Errorf("invalid day of month: %d", c.DayOfMonth)
		}
	case CadenceYearly:
		if c.DayOfMonth < 1 || c.DayOfMonth > 31 {
			return fmt.Errorf("invalid day of month: %d", c.DayOfMonth)
		}
		if c.Month < time.January || c.Month > time.December {
			return fmt.Errorf("invalid month: %d", c.Month)
		}
	case CadenceEventually:
	default:
		return fmt.Errorf("unknown cadence type: %q", c.Type)
	}
	return nil
}

// monthAnchor returns midnight of day in the given month, clamping day to
// the month's last valid day (monthly{31} anchors at Feb 28/29). month may
// be out of range; time.Date normalizes it into the following year.
func monthAnchor(year int, month time.Month, day int, loc *time.Location) time.Time {
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
	if day > lastDay {
		day = lastDay
	}
	if day < 1 {
		day = 1
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
