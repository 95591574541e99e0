package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/energy-oracle/eo-api/internal/model"
)

// Carbon intensity bands, gCO2/kWh. Green/brown classification for weighted
// pricing leaves the [100,200] range in neither subset.
const (
	GreenIntensityBelow = 100
	BrownIntensityAbove = 200
)

// dailyFuels is the fuel set considered for dominant-fuel determination, in
// the fixed tie-break order: when two fuels average the same share, the one
// earlier in this list wins. The order is alphabetical and deliberate;
// changing it changes responses.
var dailyFuels = []string{"biomass", "coal", "gas", "hydro", "nuclear", "solar", "wind"}

// CarbonWeighted is a price series split by the carbon intensity of its
// aligned half hours. Percentages are over matched periods only, so
// GreenPct+BrownPct <= 100; the [100,200] band and unmatched periods make
// up the remainder.
type CarbonWeighted struct {
	Period    string    `json:"period"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	AveragePrice decimal.Decimal `json:"average_price"`

	GreenAverage decimal.Decimal `json:"green_average"`
	GreenPeriods int             `json:"green_periods"`
	GreenPct     decimal.Decimal `json:"green_pct"`

	BrownAverage decimal.Decimal `json:"brown_average"`
	BrownPeriods int             `json:"brown_periods"`
	BrownPct     decimal.Decimal `json:"brown_pct"`

	GreenPremium decimal.Decimal `json:"green_premium"`

	AvgCarbonIntensity int `json:"avg_carbon_intensity"`

	UnitPrice  string `json:"unit_price"`
	UnitCarbon string `json:"unit_carbon"`
}

// WeighByCarbon aligns each price record against the carbon index and
// splits the series into green (<100) and brown (>200) subsets. An empty
// green or brown subset reports the overall average rather than zero, so
// the premium degrades to zero instead of a misleading full-price delta.
func WeighByCarbon(prices []model.PriceRecord, idx CarbonIndex) CarbonWeighted {
	var all, green, brown []float64
	var intensities []int

	for _, r := range prices {
		price, _ := r.Price.Float64()
		all = append(all, price)

		intensity, ok := idx.Lookup(r)
		if !ok {
			continue
		}
		intensities = append(intensities, intensity)
		switch {
		case intensity < GreenIntensityBelow:
			green = append(green, price)
		case intensity > BrownIntensityAbove:
			brown = append(brown, price)
		}
	}

	avgPrice := 0.0
	if len(all) > 0 {
		avgPrice = mean(all)
	}
	greenAvg, brownAvg := avgPrice, avgPrice
	if len(green) > 0 {
		greenAvg = mean(green)
	}
	if len(brown) > 0 {
		brownAvg = mean(brown)
	}

	matched := len(intensities)
	greenPct, brownPct := 0.0, 0.0
	if matched > 0 {
		greenPct = float64(len(green)) / float64(matched) * 100
		brownPct = float64(len(brown)) / float64(matched) * 100
	}

	avgIntensity := 0
	if matched > 0 {
		sum := 0
		for _, i := range intensities {
			sum += i
		}
		// Integer truncation of the mean, matching the published fixtures.
		avgIntensity = int(float64(sum) / float64(matched))
	}

	return CarbonWeighted{
		AveragePrice:       round2(avgPrice),
		GreenAverage:       round2(greenAvg),
		GreenPeriods:       len(green),
		GreenPct:           round1(greenPct),
		BrownAverage:       round2(brownAvg),
		BrownPeriods:       len(brown),
		BrownPct:           round1(brownPct),
		GreenPremium:       round2(greenAvg - avgPrice),
		AvgCarbonIntensity: avgIntensity,
		UnitPrice:          "GBP/MWh",
		UnitCarbon:         "gCO2/kWh",
	}
}

// DailyCarbonSummary is one day of carbon intensity: band histogram (each
// half-hour reading contributes 0.5 hours), dominant fuel and renewable
// share (wind+solar+hydro, excluding biomass).
type DailyCarbonSummary struct {
	Date             time.Time `json:"date"`
	AverageIntensity int       `json:"average_intensity"`
	MinIntensity     int       `json:"min_intensity"`
	MaxIntensity     int       `json:"max_intensity"`

	VeryLowHours  decimal.Decimal `json:"very_low_hours"`
	LowHours      decimal.Decimal `json:"low_hours"`
	ModerateHours decimal.Decimal `json:"moderate_hours"`
	HighHours     decimal.Decimal `json:"high_hours"`
	VeryHighHours decimal.Decimal `json:"very_high_hours"`

	DominantFuel string          `json:"dominant_fuel"`
	RenewablePct decimal.Decimal `json:"renewable_pct"`

	Unit string `json:"unit"`
}

// SummarizeCarbonDays groups carbon readings by calendar day and summarizes
// each day, joined against that day's fuel-mix readings. Days are emitted
// in ascending date order. A day with carbon readings but no fuel data
// reports dominant fuel "unknown" and renewable 0.
func SummarizeCarbonDays(carbon []model.CarbonRecord, fuel []model.FuelMixRecord) []DailyCarbonSummary {
	carbonByDay := make(map[time.Time][]int)
	for _, r := range carbon {
		d := model.DateOf(r.Datetime)
		carbonByDay[d] = append(carbonByDay[d], r.Intensity)
	}
	fuelByDay := make(map[time.Time][]model.FuelMixRecord)
	for _, r := range fuel {
		d := model.DateOf(r.Datetime)
		fuelByDay[d] = append(fuelByDay[d], r)
	}

	days := make([]time.Time, 0, len(carbonByDay))
	for d := range carbonByDay {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	out := make([]DailyCarbonSummary, 0, len(days))
	for _, d := range days {
		intensities := carbonByDay[d]

		var veryLow, low, moderate, high, veryHigh int
		sum, min, max := 0, intensities[0], intensities[0]
		for _, i := range intensities {
			sum += i
			if i < min {
				min = i
			}
			if i > max {
				max = i
			}
			switch {
			case i < 50:
				veryLow++
			case i < 100:
				low++
			case i < 200:
				moderate++
			case i < 300:
				high++
			default:
				veryHigh++
			}
		}

		dominant, renewable := dominantFuel(fuelByDay[d])

		out = append(out, DailyCarbonSummary{
			Date:             d,
			AverageIntensity: int(float64(sum) / float64(len(intensities))),
			MinIntensity:     min,
			MaxIntensity:     max,
			VeryLowHours:     halfHours(veryLow),
			LowHours:         halfHours(low),
			ModerateHours:    halfHours(moderate),
			HighHours:        halfHours(high),
			VeryHighHours:    halfHours(veryHigh),
			DominantFuel:     dominant,
			RenewablePct:     renewable,
			Unit:             "gCO2/kWh",
		})
	}
	return out
}

// halfHours converts a reading count to hours (one reading = 0.5 h).
func halfHours(readings int) decimal.Decimal {
	return decimal.NewFromInt(int64(readings)).Div(decimal.NewFromInt(2))
}

// dominantFuel averages each fuel's share over the day's readings (absent
// values count as 0) and picks the highest; ties go to the fuel earliest in
// dailyFuels. Returns "unknown" and zero renewable share when there are no
// readings.
func dominantFuel(readings []model.FuelMixRecord) (string, decimal.Decimal) {
	if len(readings) == 0 {
		return "unknown", decimal.Zero
	}

	averages := make(map[string]float64, len(dailyFuels))
	for _, fuel := range dailyFuels {
		total := 0.0
		for _, r := range readings {
			total += r.Fuel(fuel)
		}
		averages[fuel] = total / float64(len(readings))
	}

	dominant := ""
	best := 0.0
	for _, fuel := range dailyFuels {
		if dominant == "" || averages[fuel] > best {
			dominant = fuel
			best = averages[fuel]
		}
	}

	renewable := averages["wind"] + averages["solar"] + averages["hydro"]
	return dominant, round1(renewable)
}
