package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestFinancialYearAndQuarter(t *testing.T) {
	tests := []struct {
		name    string
		in      time.Time
		fy      string
		quarter string
	}{
		{"april starts Q1", date(2025, time.April, 1), "2025-2026", "Q1"},
		{"mid Q2", date(2025, time.July, 15), "2025-2026", "Q2"},
		{"september ends Q2", date(2025, time.September, 30), "2025-2026", "Q2"},
		{"december is Q3", date(2025, time.December, 31), "2025-2026", "Q3"},
		{"february belongs to previous label", date(2025, time.February, 10), "2024-2025", "Q4"},
		{"march ends Q4", date(2026, time.March, 31), "2025-2026", "Q4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fy, quarter := FinancialYearAndQuarter(tt.in)
			assert.Equal(t, tt.fy, fy)
			assert.Equal(t, tt.quarter, quarter)
		})
	}
}

func TestPreviousQuarterRange(t *testing.T) {
	tests := []struct {
		name  string
		now   time.Time
		start time.Time
		end   time.Time
	}{
		{"Q2 looks back to Jan-Mar", date(2025, time.May, 10), date(2025, time.January, 1), date(2025, time.April, 1)},
		{"Q3 looks back to Apr-Jun", date(2025, time.July, 1), date(2025, time.April, 1), date(2025, time.July, 1)},
		{"Q4 looks back to Jul-Sep", date(2025, time.October, 1), date(2025, time.July, 1), date(2025, time.October, 1)},
		{"Q1 wraps into previous year", date(2025, time.January, 1), date(2024, time.October, 1), date(2025, time.January, 1)},
		{"end of Q1 still wraps", date(2025, time.March, 31), date(2024, time.October, 1), date(2025, time.January, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := PreviousQuarterRange(tt.now)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}
}

// The previous-quarter window uses calendar quarters while the fiscal label
// uses April-March quarters; the same date maps differently in each system.
func TestQuarterSystemsStayDistinct(t *testing.T) {
	may := date(2025, time.May, 10)

	_, fiscalQuarter := FinancialYearAndQuarter(may)
	assert.Equal(t, "Q1", fiscalQuarter)

	start, _ := PreviousQuarterRange(may)
	assert.Equal(t, date(2025, time.January, 1), start, "calendar Q2 looks back to calendar Q1")
}

func TestPenaltyTriggerDate(t *testing.T) {
	tests := []struct {
		name    string
		month   time.Time
		trigger time.Time
	}{
		{"Apr-Jun penalizable from Jul 1", date(2025, time.May, 1), date(2025, time.July, 1)},
		{"Jul-Sep penalizable from Oct 1", date(2025, time.September, 1), date(2025, time.October, 1)},
		{"Oct-Dec penalizable from next Jan 1", date(2025, time.November, 1), date(2026, time.January, 1)},
		{"Jan-Mar penalizable from Apr 1 same year", date(2025, time.February, 1), date(2025, time.April, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.trigger, PenaltyTriggerDate(tt.month))
		})
	}
}

func TestMonthStart(t *testing.T) {
	assert.Equal(t, date(2025, time.March, 1), MonthStart(time.Date(2025, time.March, 28, 17, 4, 5, 0, time.UTC)))
	assert.Equal(t, date(2025, time.March, 1), MonthStart(date(2025, time.March, 1)))
}
