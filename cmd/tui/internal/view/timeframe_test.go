package view_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/student-spending/spendboard/cmd/tui/internal/view"
)

func TestDateRange(t *testing.T) {
	// Wednesday
	now := time.Date(2024, time.March, 13, 15, 4, 5, 0, time.Local)

	type testCase struct {
		name      string
		timeframe view.Timeframe
		start     string
		end       string
	}

	tests := []testCase{
		{name: "this week", timeframe: view.TimeframeThisWeek, start: "2024-03-11", end: "2024-03-13"},
		{name: "last week", timeframe: view.TimeframeLastWeek, start: "2024-03-04", end: "2024-03-10"},
		{name: "this month", timeframe: view.TimeframeThisMonth, start: "2024-03-01", end: "2024-03-13"},
		{name: "last month", timeframe: view.TimeframeLastMonth, start: "2024-02-01", end: "2024-02-29"},
		{name: "last 30 days", timeframe: view.TimeframeLast30Days, start: "2024-02-12", end: "2024-03-13"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := view.DateRange(tt.timeframe, now)
			assert.Equal(t, tt.start, start.Format("2006-01-02"))
			assert.Equal(t, tt.end, end.Format("2006-01-02"))
		})
	}
}

func TestDateRange_Sunday(t *testing.T) {
	now := time.Date(2024, time.March, 17, 9, 0, 0, 0, time.UTC)

	start, end := view.DateRange(view.TimeframeThisWeek, now)
	assert.Equal(t, "2024-03-11", start.Format("2006-01-02"))
	assert.Equal(t, "2024-03-17", end.Format("2006-01-02"))

	start, end = view.DateRange(view.TimeframeLastWeek, now)
	assert.Equal(t, "2024-03-04", start.Format("2006-01-02"))
	assert.Equal(t, "2024-03-10", end.Format("2006-01-02"))
}
