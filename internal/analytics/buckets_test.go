package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/energy-oracle/eo-api/internal/model"
)

func priceRec(date time.Time, period int, price float64) model.PriceRecord {
	return model.PriceRecord{
		SettlementDate:   date,
		SettlementPeriod: period,
		Price:            decimal.NewFromFloat(price),
	}
}

func TestGroupDaily(t *testing.T) {
	day1 := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)

	// Insertion order deliberately shuffled; output must sort by date.
	records := []model.PriceRecord{
		priceRec(day2, 1, 40),
		priceRec(day1, 1, 10),
		priceRec(day1, 2, 30),
		priceRec(day1, 3, 20),
	}

	out := GroupDaily(records)
	require.Len(t, out, 2)

	assert.Equal(t, day1, out[0].Date)
	assert.Equal(t, "20", out[0].AveragePrice.String())
	assert.Equal(t, "10", out[0].MinPrice.String())
	assert.Equal(t, "30", out[0].MaxPrice.String())
	assert.Equal(t, 3, out[0].SettlementPeriods)
	assert.Equal(t, "GBP/MWh", out[0].Unit)

	assert.Equal(t, day2, out[1].Date)
	assert.Equal(t, "40", out[1].AveragePrice.String())
	assert.Equal(t, 1, out[1].SettlementPeriods)
}

func TestGroupDailyEmpty(t *testing.T) {
	out := GroupDaily(nil)
	assert.Empty(t, out)
}

func TestGroupWeekly(t *testing.T) {
	// Sunday 2025-06-01 closes ISO week 22; Monday 2025-06-02 opens week 23.
	sunday := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	records := []model.PriceRecord{
		priceRec(monday, 1, 80),
		priceRec(sunday, 1, 20),
		priceRec(sunday, 2, 40),
	}

	out := GroupWeekly(records)
	require.Len(t, out, 2)

	assert.Equal(t, 22, out[0].WeekNumber)
	assert.Equal(t, time.Date(2025, 5, 26, 0, 0, 0, 0, time.UTC), out[0].WeekStart)
	assert.Equal(t, sunday, out[0].WeekEnd)
	assert.Equal(t, "30", out[0].AveragePrice.String())
	assert.Equal(t, 2, out[0].SettlementPeriods)

	assert.Equal(t, 23, out[1].WeekNumber)
	assert.Equal(t, monday, out[1].WeekStart)
	assert.Equal(t, time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC), out[1].WeekEnd)
	assert.Equal(t, "80", out[1].AveragePrice.String())
}

func TestSplitPeakOffPeak(t *testing.T) {
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	records := []model.PriceRecord{
		priceRec(monday, 14, 50),  // off-peak, just before the window
		priceRec(monday, 15, 100), // peak
		priceRec(monday, 38, 120), // peak
		priceRec(monday, 39, 70),  // off-peak, just after
	}

	out := SplitPeakOffPeak(records)
	assert.Equal(t, "110", out.PeakAverage.String())
	assert.Equal(t, "100", out.PeakMin.String())
	assert.Equal(t, "120", out.PeakMax.String())
	assert.Equal(t, 2, out.PeakPeriods)

	assert.Equal(t, "60", out.OffpeakAverage.String())
	assert.Equal(t, 2, out.OffpeakPeriods)

	assert.Equal(t, "50", out.PeakPremium.String())
	assert.Equal(t, "83.3", out.PeakPremiumPct.String())
	assert.Equal(t, "GBP/MWh", out.Unit)
}

func TestSplitPeakOffPeakWeekendIsAllOffPeak(t *testing.T) {
	saturday := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)

	out := SplitPeakOffPeak([]model.PriceRecord{
		priceRec(saturday, 20, 90),
		priceRec(saturday, 30, 110),
	})
	assert.Equal(t, 0, out.PeakPeriods)
	assert.Equal(t, 2, out.OffpeakPeriods)
	assert.Equal(t, "100", out.OffpeakAverage.String())
	assert.True(t, out.PeakAverage.IsZero())
}

func TestSplitPeakOffPeakNoOffPeak(t *testing.T) {
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	out := SplitPeakOffPeak([]model.PriceRecord{priceRec(monday, 20, 90)})
	assert.Equal(t, 1, out.PeakPeriods)
	assert.Equal(t, 0, out.OffpeakPeriods)
	// Premium percentage degrades to zero rather than dividing by zero.
	assert.True(t, out.PeakPremiumPct.IsZero())
	assert.Equal(t, "90", out.PeakPremium.String())
}

func TestRangeLabel(t *testing.T) {
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		days     int
		monthMax bool
		want     string
	}{
		{1, false, "day"},
		{7, false, "week"},
		{31, false, "month"},
		{90, false, "year"},
		{90, true, "month"},
	}
	for _, tt := range tests {
		got := rangeLabel(day, day.AddDate(0, 0, tt.days-1), tt.monthMax)
		assert.Equal(t, tt.want, got, "%d days monthMax=%v", tt.days, tt.monthMax)
	}
}
