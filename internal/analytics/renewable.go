package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/energy-oracle/eo-api/internal/model"
)

// REGO supply tier thresholds over total renewable share.
const (
	regoMediumFrom = 30.0
	regoHighFrom   = 50.0
)

// RenewableIndexResult is the monthly renewable generation index: per-fuel
// average shares, their total (wind+solar+hydro+biomass), an optional
// month-on-month change, and a coarse REGO supply tier.
type RenewableIndexResult struct {
	Period    string    `json:"period"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	TotalRenewablePct decimal.Decimal `json:"total_renewable_pct"`
	WindPct           decimal.Decimal `json:"wind_pct"`
	SolarPct          decimal.Decimal `json:"solar_pct"`
	HydroPct          decimal.Decimal `json:"hydro_pct"`
	BiomassPct        decimal.Decimal `json:"biomass_pct"`

	// Nil when the previous month has no rows or a zero average.
	VsPreviousMonthPct *decimal.Decimal `json:"vs_previous_month_pct,omitempty"`

	EstimatedRegoSupply string `json:"estimated_rego_supply"`
	SettlementPeriods   int    `json:"settlement_periods"`
}

// renewableAverages holds per-fuel monthly averages before rounding.
type renewableAverages struct {
	wind, solar, hydro, biomass float64
	count                       int
}

func (a renewableAverages) total() float64 {
	return a.wind + a.solar + a.hydro + a.biomass
}

// averageRenewables averages the four renewable fuels over a set of
// readings, treating absent values as 0.
func averageRenewables(records []model.FuelMixRecord) renewableAverages {
	a := renewableAverages{count: len(records)}
	if a.count == 0 {
		return a
	}
	for _, r := range records {
		a.wind += r.Fuel("wind")
		a.solar += r.Fuel("solar")
		a.hydro += r.Fuel("hydro")
		a.biomass += r.Fuel("biomass")
	}
	n := float64(a.count)
	a.wind /= n
	a.solar /= n
	a.hydro /= n
	a.biomass /= n
	return a
}

// regoTier maps a total renewable share to its REGO supply tier.
func regoTier(totalRenewable float64) string {
	switch {
	case totalRenewable < regoMediumFrom:
		return "low"
	case totalRenewable < regoHighFrom:
		return "medium"
	default:
		return "high"
	}
}

// GreenPremiumResult compares prices in half hours above a renewable-share
// threshold (green) against the rest (brown). Equal-to-threshold is brown.
type GreenPremiumResult struct {
	Period    string    `json:"period"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	GreenPriceAvg decimal.Decimal `json:"green_price_avg"`
	GreenPeriods  int             `json:"green_periods"`
	BrownPriceAvg decimal.Decimal `json:"brown_price_avg"`
	BrownPeriods  int             `json:"brown_periods"`

	GreenPremium    decimal.Decimal `json:"green_premium"`
	GreenPremiumPct decimal.Decimal `json:"green_premium_pct"`

	RenewableThreshold int `json:"renewable_threshold"`
}

// SplitByRenewable aligns each price record against the renewable index and
// partitions matched prices at the threshold. Unmatched records land in
// neither slice.
func SplitByRenewable(prices []model.PriceRecord, idx RenewableIndex, threshold int) (green, brown []float64) {
	for _, r := range prices {
		pct, ok := idx.Lookup(r)
		if !ok {
			continue
		}
		price, _ := r.Price.Float64()
		if pct > float64(threshold) {
			green = append(green, price)
		} else {
			brown = append(brown, price)
		}
	}
	return green, brown
}
