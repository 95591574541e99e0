// Package model holds the typed records read from the store and the
// settlement-period calendar they are indexed by.
package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/energy-oracle/eo-api/internal/store"
)

// PriceRecord is one half-hourly settlement price, from either the system
// price table (SSP/SBP mid) or the day-ahead table. Prices are GBP/MWh.
type PriceRecord struct {
	SettlementDate   time.Time        `json:"settlement_date"`
	SettlementPeriod int              `json:"settlement_period"`
	Price            decimal.Decimal  `json:"price"`
	SystemSellPrice  *decimal.Decimal `json:"system_sell_price,omitempty"`
	SystemBuyPrice   *decimal.Decimal `json:"system_buy_price,omitempty"`
	DataSource       string           `json:"data_source,omitempty"`
}

// Timestamp returns the canonical UTC half-hour timestamp for this record,
// or ok=false for clock-change periods 49/50 which have none.
func (r PriceRecord) Timestamp() (time.Time, bool) {
	return PeriodTimestamp(r.SettlementDate, r.SettlementPeriod)
}

// IsPeak applies the peak rule to this record.
func (r PriceRecord) IsPeak() bool {
	return IsPeakPeriod(r.SettlementDate, r.SettlementPeriod)
}

// CarbonRecord is one half-hour-aligned carbon intensity reading, gCO2/kWh.
type CarbonRecord struct {
	Datetime       time.Time `json:"datetime"`
	Intensity      int       `json:"intensity"`
	IntensityIndex string    `json:"intensity_index,omitempty"`
	DataSource     string    `json:"data_source,omitempty"`
}

// FuelMixRecord is one generation fuel mix reading. Each field is the
// percentage of total generation, or nil when the source did not report it.
// The percentages need not sum to exactly 100.
type FuelMixRecord struct {
	Datetime   time.Time `json:"datetime"`
	Biomass    *float64  `json:"biomass,omitempty"`
	Coal       *float64  `json:"coal,omitempty"`
	Gas        *float64  `json:"gas,omitempty"`
	Hydro      *float64  `json:"hydro,omitempty"`
	Imports    *float64  `json:"imports,omitempty"`
	Nuclear    *float64  `json:"nuclear,omitempty"`
	Other      *float64  `json:"other,omitempty"`
	Solar      *float64  `json:"solar,omitempty"`
	Wind       *float64  `json:"wind,omitempty"`
	DataSource string    `json:"data_source,omitempty"`
}

// Fuel returns the reported percentage for a fuel name, or 0 when absent.
// Unknown names also report 0; the summarizer only asks for known fuels.
func (r FuelMixRecord) Fuel(name string) float64 {
	var p *float64
	switch name {
	case "biomass":
		p = r.Biomass
	case "coal":
		p = r.Coal
	case "gas":
		p = r.Gas
	case "hydro":
		p = r.Hydro
	case "imports":
		p = r.Imports
	case "nuclear":
		p = r.Nuclear
	case "other":
		p = r.Other
	case "solar":
		p = r.Solar
	case "wind":
		p = r.Wind
	}
	if p == nil {
		return 0
	}
	return *p
}

// Renewable returns wind+solar+hydro, the daily-summary definition of
// renewable share. The monthly index additionally includes biomass.
func (r FuelMixRecord) Renewable() float64 {
	return r.Fuel("wind") + r.Fuel("solar") + r.Fuel("hydro")
}

// RenewableWithBiomass is the monthly-index definition: wind+solar+hydro+biomass.
func (r FuelMixRecord) RenewableWithBiomass() float64 {
	return r.Renewable() + r.Fuel("biomass")
}

// PriceRecordFromRow decodes a store row into a PriceRecord. A missing or
// ill-typed required column is a SchemaMismatch fault.
func PriceRecordFromRow(row store.Row) (PriceRecord, error) {
	d, err := dateColumn(row, "settlement_date")
	if err != nil {
		return PriceRecord{}, err
	}
	period, err := intColumn(row, "settlement_period")
	if err != nil {
		return PriceRecord{}, err
	}
	price, err := decimalColumn(row, "price")
	if err != nil {
		return PriceRecord{}, err
	}
	rec := PriceRecord{
		SettlementDate:   d,
		SettlementPeriod: period,
		Price:            price,
		DataSource:       optStringColumn(row, "data_source"),
	}
	if ssp, ok, err := optDecimalColumn(row, "system_sell_price"); err != nil {
		return PriceRecord{}, err
	} else if ok {
		rec.SystemSellPrice = &ssp
	}
	if sbp, ok, err := optDecimalColumn(row, "system_buy_price"); err != nil {
		return PriceRecord{}, err
	} else if ok {
		rec.SystemBuyPrice = &sbp
	}
	return rec, nil
}

// CarbonRecordFromRow decodes a store row into a CarbonRecord.
func CarbonRecordFromRow(row store.Row) (CarbonRecord, error) {
	dt, err := timeColumn(row, "datetime")
	if err != nil {
		return CarbonRecord{}, err
	}
	intensity, err := intColumn(row, "intensity")
	if err != nil {
		return CarbonRecord{}, err
	}
	return CarbonRecord{
		Datetime:       dt,
		Intensity:      intensity,
		IntensityIndex: optStringColumn(row, "intensity_index"),
		DataSource:     optStringColumn(row, "data_source"),
	}, nil
}

// FuelMixRecordFromRow decodes a store row into a FuelMixRecord. Only the
// timestamp is required; every fuel column is optional.
func FuelMixRecordFromRow(row store.Row) (FuelMixRecord, error) {
	dt, err := timeColumn(row, "datetime")
	if err != nil {
		return FuelMixRecord{}, err
	}
	rec := FuelMixRecord{
		Datetime:   dt,
		DataSource: optStringColumn(row, "data_source"),
	}
	fuels := []struct {
		name string
		dst  **float64
	}{
		{"biomass", &rec.Biomass},
		{"coal", &rec.Coal},
		{"gas", &rec.Gas},
		{"hydro", &rec.Hydro},
		{"imports", &rec.Imports},
		{"nuclear", &rec.Nuclear},
		{"other", &rec.Other},
		{"solar", &rec.Solar},
		{"wind", &rec.Wind},
	}
	for _, f := range fuels {
		v, ok, err := optFloatColumn(row, f.name)
		if err != nil {
			return FuelMixRecord{}, err
		}
		if ok {
			pct := v
			*f.dst = &pct
		}
	}
	return rec, nil
}

// PriceRecordsFromRows decodes a result set, failing on the first bad row.
func PriceRecordsFromRows(rows []store.Row) ([]PriceRecord, error) {
	out := make([]PriceRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := PriceRecordFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// CarbonRecordsFromRows decodes a result set, failing on the first bad row.
func CarbonRecordsFromRows(rows []store.Row) ([]CarbonRecord, error) {
	out := make([]CarbonRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := CarbonRecordFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// FuelMixRecordsFromRows decodes a result set, failing on the first bad row.
func FuelMixRecordsFromRows(rows []store.Row) ([]FuelMixRecord, error) {
	out := make([]FuelMixRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := FuelMixRecordFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}
