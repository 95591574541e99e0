package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/energy-oracle/eo-api/internal/model"
)

func TestAverageRenewables(t *testing.T) {
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	avgs := averageRenewables([]model.FuelMixRecord{
		fuelRec(day, map[string]float64{"wind": 20, "solar": 10, "hydro": 5, "biomass": 2}),
		fuelRec(day.Add(30*time.Minute), map[string]float64{"wind": 30, "solar": 0, "hydro": 5}),
	})

	assert.Equal(t, 2, avgs.count)
	assert.InDelta(t, 25.0, avgs.wind, 1e-9)
	assert.InDelta(t, 5.0, avgs.solar, 1e-9)
	assert.InDelta(t, 5.0, avgs.hydro, 1e-9)
	assert.InDelta(t, 1.0, avgs.biomass, 1e-9)
	assert.InDelta(t, 36.0, avgs.total(), 1e-9)
}

func TestAverageRenewablesEmpty(t *testing.T) {
	avgs := averageRenewables(nil)
	assert.Equal(t, 0, avgs.count)
	assert.Zero(t, avgs.total())
}

func TestRegoTier(t *testing.T) {
	tests := []struct {
		total float64
		want  string
	}{
		{0, "low"},
		{29.9, "low"},
		{30, "medium"},
		{49.9, "medium"},
		{50, "high"},
		{80, "high"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, regoTier(tt.total), "total %.1f", tt.total)
	}
}

func TestSplitByRenewable(t *testing.T) {
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	prices := []model.PriceRecord{
		priceRec(day, 1, 100), // 00:00, renewable 55
		priceRec(day, 2, 60),  // 00:30, renewable 50: equal to threshold is brown
		priceRec(day, 3, 40),  // 01:00, renewable 20
		priceRec(day, 4, 999), // 01:30, no fuel reading: ignored
	}
	idx := IndexRenewable([]model.FuelMixRecord{
		fuelRec(day, map[string]float64{"wind": 40, "solar": 10, "biomass": 5}),
		fuelRec(day.Add(30*time.Minute), map[string]float64{"wind": 40, "solar": 10}),
		fuelRec(day.Add(60*time.Minute), map[string]float64{"wind": 20}),
	})

	green, brown := SplitByRenewable(prices, idx, 50)
	assert.Equal(t, []float64{100}, green)
	assert.Equal(t, []float64{60, 40}, brown)
}
