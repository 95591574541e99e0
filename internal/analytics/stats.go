// Package analytics turns raw half-hourly series into the derived summaries
// used for PPA settlement: statistical profiles, daily/weekly buckets,
// peak/off-peak splits and carbon/renewable classifications. Functions here
// are pure; Service wires them to the store.
package analytics

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/energy-oracle/eo-api/internal/fault"
)

// PriceStats is the statistical profile of a price series. Monetary fields
// are rounded to 2dp (banker's rounding), percentages to 1dp; min/max keep
// the raw decimals.
type PriceStats struct {
	Average decimal.Decimal `json:"average"`
	Median  decimal.Decimal `json:"median"`
	Min     decimal.Decimal `json:"min"`
	Max     decimal.Decimal `json:"max"`

	StdDev        decimal.Decimal `json:"std_dev"`
	VolatilityPct decimal.Decimal `json:"volatility_pct"`

	Percentile25 decimal.Decimal `json:"percentile_25"`
	Percentile75 decimal.Decimal `json:"percentile_75"`
	Percentile95 decimal.Decimal `json:"percentile_95"`

	SettlementPeriods int `json:"settlement_periods"`
	NegativePeriods   int `json:"negative_periods"`
	SpikePeriods      int `json:"spike_periods"`
}

// ComputePriceStats profiles a non-empty price series. Spike classification
// (price > 2x average) uses the unrounded average. An empty series is a
// NotFound fault; callers normally reject that earlier with range context.
func ComputePriceStats(prices []decimal.Decimal) (PriceStats, error) {
	if len(prices) == 0 {
		return PriceStats{}, fault.New(fault.NotFound, "no prices to profile")
	}

	vals := make([]float64, len(prices))
	minD, maxD := prices[0], prices[0]
	negatives := 0
	for i, p := range prices {
		f, _ := p.Float64()
		vals[i] = f
		if p.LessThan(minD) {
			minD = p
		}
		if p.GreaterThan(maxD) {
			maxD = p
		}
		if p.IsNegative() {
			negatives++
		}
	}

	avg := mean(vals)
	std := 0.0
	if len(vals) > 1 {
		std = sampleStdDev(vals, avg)
	}
	volatility := 0.0
	if avg != 0 {
		volatility = std / avg * 100
	}

	spikes := 0
	for _, v := range vals {
		if v > avg*2 {
			spikes++
		}
	}

	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)

	return PriceStats{
		Average:           round2(avg),
		Median:            round2(median(sorted)),
		Min:               minD,
		Max:               maxD,
		StdDev:            round2(std),
		VolatilityPct:     round1(volatility),
		Percentile25:      round2(percentileSorted(sorted, 25)),
		Percentile75:      round2(percentileSorted(sorted, 75)),
		Percentile95:      round2(percentileSorted(sorted, 95)),
		SettlementPeriods: len(prices),
		NegativePeriods:   negatives,
		SpikePeriods:      spikes,
	}, nil
}

// percentileSorted computes percentile p over an ascending-sorted series by
// linear interpolation between order statistics: k=(n-1)*p/100,
// result = data[floor(k)] + frac * (data[ceil(k)] - data[floor(k)]).
// Settlement fixtures depend on this exact method; do not switch to
// nearest-rank.
func percentileSorted(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	k := float64(len(sorted)-1) * p / 100
	f := int(math.Floor(k))
	c := f + 1
	if c >= len(sorted) {
		c = len(sorted) - 1
	}
	return sorted[f] + (k-float64(f))*(sorted[c]-sorted[f])
}

// median over an ascending-sorted series: middle element, or the mean of the
// two middle elements for even lengths.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func mean(vals []float64) float64 {
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// sampleStdDev uses the N-1 denominator.
func sampleStdDev(vals []float64, avg float64) float64 {
	ss := 0.0
	for _, v := range vals {
		d := v - avg
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(vals)-1))
}

// round2 rounds a final monetary output to 2dp, half to even.
func round2(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).RoundBank(2)
}

// round1 rounds a final percentage output to 1dp, half to even.
func round1(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).RoundBank(1)
}

// avgDecimal is the exact mean of a decimal series, unrounded.
func avgDecimal(vals []decimal.Decimal) decimal.Decimal {
	if len(vals) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, v := range vals {
		sum = sum.Add(v)
	}
	return sum.Div(decimal.NewFromInt(int64(len(vals))))
}

func minMaxDecimal(vals []decimal.Decimal) (min, max decimal.Decimal) {
	if len(vals) == 0 {
		return decimal.Zero, decimal.Zero
	}
	min, max = vals[0], vals[0]
	for _, v := range vals[1:] {
		if v.LessThan(min) {
			min = v
		}
		if v.GreaterThan(max) {
			max = v
		}
	}
	return min, max
}
