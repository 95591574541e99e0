package analytics

import (
	"time"

	"github.com/energy-oracle/eo-api/internal/model"
)

// Cross-series alignment. Prices are keyed by (settlement date, period),
// carbon and fuel readings by wall-clock timestamp. Both sides are reduced
// to the same canonical key: the price side via the period->time-of-day
// mapping, the reading side by flooring to the half-hour boundary, all
// timezone-naive UTC. Settlement periods 49/50 have no canonical timestamp
// and never match.

// CarbonIndex maps canonical half-hour timestamps to intensity readings.
type CarbonIndex map[time.Time]int

// IndexCarbon builds a CarbonIndex. A later reading in the same half hour
// overwrites an earlier one, matching the store's one-reading-per-slot
// invariant.
func IndexCarbon(records []model.CarbonRecord) CarbonIndex {
	idx := make(CarbonIndex, len(records))
	for _, r := range records {
		idx[model.FloorHalfHour(r.Datetime)] = r.Intensity
	}
	return idx
}

// Lookup aligns one price record against the index.
func (idx CarbonIndex) Lookup(r model.PriceRecord) (int, bool) {
	ts, ok := r.Timestamp()
	if !ok {
		return 0, false
	}
	intensity, ok := idx[ts]
	return intensity, ok
}

// RenewableIndex maps canonical half-hour timestamps to renewable share
// (wind+solar+hydro+biomass, the green-premium definition).
type RenewableIndex map[time.Time]float64

// IndexRenewable builds a RenewableIndex from fuel-mix readings.
func IndexRenewable(records []model.FuelMixRecord) RenewableIndex {
	idx := make(RenewableIndex, len(records))
	for _, r := range records {
		idx[model.FloorHalfHour(r.Datetime)] = r.RenewableWithBiomass()
	}
	return idx
}

// Lookup aligns one price record against the index.
func (idx RenewableIndex) Lookup(r model.PriceRecord) (float64, bool) {
	ts, ok := r.Timestamp()
	if !ok {
		return 0, false
	}
	pct, ok := idx[ts]
	return pct, ok
}
