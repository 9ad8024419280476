// Package ledger holds the pure date arithmetic behind the rent ledger:
// fiscal-year labeling, calendar-quarter windows and penalty trigger dates.
// All functions operate on UTC date components so results do not drift with
// the server's timezone.
package ledger

import (
	"fmt"
	"time"
)

// FinancialYearAndQuarter maps a date onto the Indian financial year
// (April through March). April-June is Q1, July-September Q2,
// October-December Q3, and January-March Q4 of the previous year's label.
func FinancialYearAndQuarter(date time.Time) (financialYear, quarter string) {
	year := date.UTC().Year()
	month := int(date.UTC().Month())

	if month >= 4 {
		financialYear = label(year, year+1)
		switch {
		case month <= 6:
			quarter = "Q1"
		case month <= 9:
			quarter = "Q2"
		default:
			quarter = "Q3"
		}
		return financialYear, quarter
	}

	return label(year-1, year), "Q4"
}

// PreviousQuarterRange returns the [start, end) window of the calendar
// quarter immediately before the one containing now. Note this is the
// calendar quarter system (Jan-Mar = Q1), not the fiscal quarters used by
// FinancialYearAndQuarter; the two coexist deliberately.
func PreviousQuarterRange(now time.Time) (start, end time.Time) {
	now = now.UTC()
	currentQuarter := (int(now.Month())-1)/3 + 1

	year := now.Year()
	var startMonth time.Month
	if currentQuarter == 1 {
		year--
		startMonth = time.October
	} else {
		startMonth = time.Month((currentQuarter-2)*3 + 1)
	}

	start = time.Date(year, startMonth, 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 3, 0)
	return start, end
}

// PenaltyTriggerDate returns the first day of the calendar quarter after the
// one containing monthDate. Unpaid rent for that month becomes penalizable
// on or after this date.
func PenaltyTriggerDate(monthDate time.Time) time.Time {
	year := monthDate.UTC().Year()
	month := int(monthDate.UTC().Month())

	switch {
	case month >= 4 && month <= 6:
		return time.Date(year, time.July, 1, 0, 0, 0, 0, time.UTC)
	case month >= 7 && month <= 9:
		return time.Date(year, time.October, 1, 0, 0, 0, 0, time.UTC)
	case month >= 10:
		return time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	default: // January-March
		return time.Date(year, time.April, 1, 0, 0, 0, 0, time.UTC)
	}
}

// MonthStart normalizes a date to the first of its calendar month in UTC,
// the canonical key for ledger entries.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func label(from, to int) string {
	return fmt.Sprintf("%d-%d", from, to)
}
