package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/energy-oracle/eo-api/internal/fault"
	"github.com/energy-oracle/eo-api/internal/store"
)

func TestPriceRecordFromRow(t *testing.T) {
	row := store.Row{
		"settlement_date":   "2025-06-02",
		"settlement_period": json.Number("3"),
		"price":             json.Number("72.45"),
		"system_sell_price": json.Number("70.00"),
		"data_source":       "elexon",
	}

	rec, err := PriceRecordFromRow(row)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), rec.SettlementDate)
	assert.Equal(t, 3, rec.SettlementPeriod)
	assert.Equal(t, "72.45", rec.Price.String())
	require.NotNil(t, rec.SystemSellPrice)
	assert.Equal(t, "70", rec.SystemSellPrice.String())
	assert.Nil(t, rec.SystemBuyPrice)
	assert.Equal(t, "elexon", rec.DataSource)

	ts, ok := rec.Timestamp()
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 6, 2, 1, 0, 0, 0, time.UTC), ts)
}

func TestPriceRecordFromRowSchemaMismatch(t *testing.T) {
	tests := []struct {
		name string
		row  store.Row
	}{
		{"missing price", store.Row{"settlement_date": "2025-06-02", "settlement_period": 1}},
		{"null date", store.Row{"settlement_date": nil, "settlement_period": 1, "price": 10.0}},
		{"bad date", store.Row{"settlement_date": "02/06/2025", "settlement_period": 1, "price": 10.0}},
		{"non-integer period", store.Row{"settlement_date": "2025-06-02", "settlement_period": 1.5, "price": 10.0}},
		{"untypable price", store.Row{"settlement_date": "2025-06-02", "settlement_period": 1, "price": "n/a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PriceRecordFromRow(tt.row)
			require.Error(t, err)
			assert.Equal(t, fault.SchemaMismatch, fault.KindOf(err))
		})
	}
}

func TestCarbonRecordFromRow(t *testing.T) {
	rec, err := CarbonRecordFromRow(store.Row{
		"datetime":        "2025-06-02T14:30:00",
		"intensity":       json.Number("142"),
		"intensity_index": "moderate",
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC), rec.Datetime)
	assert.Equal(t, 142, rec.Intensity)
	assert.Equal(t, "moderate", rec.IntensityIndex)

	// Zone-suffixed timestamps normalize to UTC.
	rec, err = CarbonRecordFromRow(store.Row{
		"datetime":  "2025-06-02T15:30:00+01:00",
		"intensity": 90,
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC), rec.Datetime)
}

func TestFuelMixRecordFromRow(t *testing.T) {
	rec, err := FuelMixRecordFromRow(store.Row{
		"datetime": "2025-06-02T00:00:00",
		"wind":     json.Number("32.5"),
		"solar":    json.Number("10.0"),
		"hydro":    json.Number("2.5"),
		"biomass":  json.Number("5.0"),
		"gas":      json.Number("30.0"),
	})
	require.NoError(t, err)

	assert.InDelta(t, 32.5, rec.Fuel("wind"), 1e-9)
	assert.Equal(t, 0.0, rec.Fuel("coal"), "absent fuel reads as zero")
	assert.Equal(t, 0.0, rec.Fuel("plutonium"), "unknown fuel reads as zero")
	assert.InDelta(t, 45.0, rec.Renewable(), 1e-9)
	assert.InDelta(t, 50.0, rec.RenewableWithBiomass(), 1e-9)
}

func TestRecordsFromRowsFailFast(t *testing.T) {
	rows := []store.Row{
		{"settlement_date": "2025-06-02", "settlement_period": 1, "price": 10.0},
		{"settlement_date": "2025-06-02", "settlement_period": 2}, // no price
	}
	_, err := PriceRecordsFromRows(rows)
	require.Error(t, err)
	assert.Equal(t, fault.SchemaMismatch, fault.KindOf(err))
}

func TestParseMonth(t *testing.T) {
	year, month, err := ParseMonth("2025", "6")
	require.NoError(t, err)
	assert.Equal(t, 2025, year)
	assert.Equal(t, time.June, month)

	_, _, err = ParseMonth("25", "6")
	assert.Error(t, err)
	_, _, err = ParseMonth("2025", "13")
	assert.Error(t, err)
	_, _, err = ParseMonth("2025", "0")
	assert.Error(t, err)
}

func TestFormatDatetime(t *testing.T) {
	in := time.Date(2025, 6, 2, 15, 30, 0, 0, time.FixedZone("BST", 3600))
	assert.Equal(t, "2025-06-02T14:30:00", FormatDatetime(in))
}
