package budget

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestCadence_Period_Weekly(t *testing.T) {
	cadence := Cadence{Type: CadenceWeekly, DayOfWeek: time.Monday}

	t.Run("should start at the most recent occurrence of the weekday", func(t *testing.T) {
		// given: 2025-01-16 is a Thursday, the preceding Monday is 2025-01-13
		ref := time.Date(2025, time.January, 16, 15, 30, 0, 0, time.UTC)

		// when
		start, end := cadence.Period(ref)

		// then
		assert.Equal(t, date(2025, time.January, 13), start)
		assert.Equal(t, date(2025, time.January, 20).Add(-time.Nanosecond), end)
	})

	t.Run("should start on the reference date when it falls on the weekday", func(t *testing.T) {
		// given: 2025-01-13 is a Monday
		ref := time.Date(2025, time.January, 13, 9, 0, 0, 0, time.UTC)

		// when
		start, end := cadence.Period(ref)

		// then
		assert.Equal(t, date(2025, time.January, 13), start)
		assert.Equal(t, date(2025, time.January, 20).Add(-time.Nanosecond), end)
	})
}

func TestCadence_Period_Monthly(t *testing.T) {
	t.Run("should anchor at the configured day of the month", func(t *testing.T) {
		// given
		cadence := Cadence{Type: CadenceMonthly, DayOfMonth: 15}
		ref := date(2025, time.March, 20)

		// when
		start, end := cadence.Period(ref)

		// then
		assert.Equal(t, date(2025, time.March, 15), start)
		assert.Equal(t, date(2025, time.April, 15).Add(-time.Nanosecond), end)
	})

	t.Run("should use the previous month's anchor before the anchor day", func(t *testing.T) {
		// given
		cadence := Cadence{Type: CadenceMonthly, DayOfMonth: 15}
		ref := date(2025, time.March, 10)

		// when
		start, end := cadence.Period(ref)

		// then
		assert.Equal(t, date(2025, time.February, 15), start)
		assert.Equal(t, date(2025, time.March, 15).Add(-time.Nanosecond), end)
	})

	t.Run("should clamp the anchor day to the last day of a short month", func(t *testing.T) {
		// given
		cadence := Cadence{Type: CadenceMonthly, DayOfMonth: 31}
		ref := date(2025, time.February, 28)

		// when
		start, end := cadence.Period(ref)

		// then
		assert.Equal(t, date(2025, time.February, 28), start)
		assert.Equal(t, date(2025, time.March, 31).Add(-time.Nanosecond), end)
	})

	t.Run("should clamp to Feb 29 in a leap year", func(t *testing.T) {
		// given
		cadence := Cadence{Type: CadenceMonthly, DayOfMonth: 30}
		ref := date(2024, time.February, 29)

		// when
		start, _ := cadence.Period(ref)

		// then
		assert.Equal(t, date(2024, time.February, 29), start)
	})
}

func TestCadence_Period_Yearly(t *testing.T) {
	cadence := Cadence{Type: CadenceYearly, Month: time.April, DayOfMonth: 1}

	t.Run("should span one year from the anchor", func(t *testing.T) {
		// given
		ref := date(2025, time.July, 10)

		// when
		start, end := cadence.Period(ref)

		// then
		assert.Equal(t, date(2025, time.April, 1), start)
		assert.Equal(t, date(2026, time.April, 1).Add(-time.Nanosecond), end)
	})

	t.Run("should use the previous year's anchor before the anchor date", func(t *testing.T) {
		// given
		ref := date(2025, time.February, 10)

		// when
		start, end := cadence.Period(ref)

		// then
		assert.Equal(t, date(2024, time.April, 1), start)
		assert.Equal(t, date(2025, time.April, 1).Add(-time.Nanosecond), end)
	})
}

func TestCadence_Period_Eventually(t *testing.T) {
	t.Run("should contain any realistic instant", func(t *testing.T) {
		// given
		cadence := Cadence{Type: CadenceEventually}

		// when
		start, end := cadence.Period(date(2025, time.June, 1))

		// then
		item := BudgetItem{PeriodStart: start, PeriodEnd: end}
		assert.True(t, item.IsCurrent(date(1995, time.January, 1)))
		assert.True(t, item.IsCurrent(date(2150, time.December, 31)))
	})
}

func TestCadence_Period_Idempotence(t *testing.T) {
	cadences := map[string]Cadence{
		"weekly":     {Type: CadenceWeekly, DayOfWeek: time.Wednesday},
		"monthly":    {Type: CadenceMonthly, DayOfMonth: 28},
		"yearly":     {Type: CadenceYearly, Month: time.September, DayOfMonth: 15},
		"eventually": {Type: CadenceEventually},
	}

	for name, cadence := range cadences {
		t.Run(name, func(t *testing.T) {
			// given
			ref := time.Date(2025, time.May, 7, 12, 0, 0, 0, time.UTC)
			start, end := cadence.Period(ref)

			// when: recompute from several instants inside the period
			for _, inside := range []time.Time{start, end, start.Add(end.Sub(start) / 2)} {
				if cadence.Type == CadenceEventually && inside.IsZero() {
					continue
				}
				start2, end2 := cadence.Period(inside)

				// then
				assert.Equal(t, start, start2, "start recomputed from %s", inside)
				assert.Equal(t, end, end2, "end recomputed from %s", inside)
			}
		})
	}
}

func TestCadence_Validate(t *testing.T) {
	t.Run("should accept all well-formed cadences", func(t *testing.T) {
		for _, cadence := range []Cadence{
			{Type: CadenceWeekly, DayOfWeek: time.Sunday},
			{Type: CadenceMonthly, DayOfMonth: 31},
			{Type: CadenceYearly, Month: time.December, DayOfMonth: 24},
			{Type: CadenceEventually},
		} {
			require.NoError(t, cadence.Validate())
		}
	})

	t.Run("should reject unknown types and out-of-range anchors", func(t *testing.T) {
		assert.Error(t, Cadence{Type: "fortnightly"}.Validate())
		assert.Error(t, Cadence{Type: CadenceMonthly, DayOfMonth: 0}.Validate())
		assert.Error(t, Cadence{Type: CadenceMonthly, DayOfMonth: 32}.Validate())
		assert.Error(t, Cadence{Type: CadenceYearly, Month: 13, DayOfMonth: 1}.Validate())
	})
}
