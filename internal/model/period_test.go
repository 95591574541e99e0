package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodClock(t *testing.T) {
	tests := []struct {
		period int
		hour   int
		minute int
		ok     bool
	}{
		{1, 0, 0, true},
		{2, 0, 30, true},
		{15, 7, 0, true},
		{38, 18, 30, true},
		{48, 23, 30, true},
		{49, 0, 0, false}, // clock-change periods have no wall-clock mapping
		{50, 0, 0, false},
		{0, 0, 0, false},
		{-1, 0, 0, false},
	}
	for _, tt := range tests {
		h, m, ok := PeriodClock(tt.period)
		assert.Equal(t, tt.ok, ok, "period %d", tt.period)
		assert.Equal(t, tt.hour, h, "period %d hour", tt.period)
		assert.Equal(t, tt.minute, m, "period %d minute", tt.period)
	}
}

func TestPeriodTimestamp(t *testing.T) {
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	ts, ok := PeriodTimestamp(date, 3)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 6, 2, 1, 0, 0, 0, time.UTC), ts)

	_, ok = PeriodTimestamp(date, 49)
	assert.False(t, ok)
}

func TestIsPeakPeriod(t *testing.T) {
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	saturday := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		date   time.Time
		period int
		peak   bool
	}{
		{"weekday before peak", monday, 14, false},
		{"weekday first peak period", monday, 15, true},
		{"weekday last peak period", monday, 38, true},
		{"weekday after peak", monday, 39, false},
		{"saturday midday", saturday, 25, false},
		{"sunday midday", sunday, 25, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.peak, IsPeakPeriod(tt.date, tt.period))
		})
	}
}

func TestFloorHalfHour(t *testing.T) {
	tests := []struct {
		in   time.Time
		want time.Time
	}{
		{
			time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC),
		},
		{
			time.Date(2025, 6, 2, 14, 29, 59, 999, time.UTC),
			time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC),
		},
		{
			time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC),
			time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC),
		},
		{
			time.Date(2025, 6, 2, 14, 45, 12, 0, time.UTC),
			time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FloorHalfHour(tt.in))
	}
}

func TestWeekBounds(t *testing.T) {
	// 2025-06-04 is a Wednesday; its ISO week runs Mon 2nd to Sun 8th.
	wednesday := time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)
	start, end := WeekBounds(wednesday)
	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC), end)

	// A Monday is its own week start.
	start, end = WeekBounds(start)
	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC), end)

	// A Sunday belongs to the week that started six days earlier.
	start, _ = WeekBounds(end)
	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), start)
}

func TestWeekKeyOrdering(t *testing.T) {
	assert.True(t, WeekKey{2024, 52}.Before(WeekKey{2025, 1}))
	assert.True(t, WeekKey{2025, 1}.Before(WeekKey{2025, 2}))
	assert.False(t, WeekKey{2025, 2}.Before(WeekKey{2025, 2}))
}

func TestMonthBounds(t *testing.T) {
	from, to := MonthBounds(2025, time.June)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), to)

	from, to = MonthBounds(2024, time.February)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), to)
}

func TestPreviousMonth(t *testing.T) {
	y, m := PreviousMonth(2025, time.June)
	assert.Equal(t, 2025, y)
	assert.Equal(t, time.May, m)

	y, m = PreviousMonth(2025, time.January)
	assert.Equal(t, 2024, y)
	assert.Equal(t, time.December, m)
}
