package settlement

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/energy-oracle/eo-api/internal/fault"
	"github.com/energy-oracle/eo-api/internal/prices"
	"github.com/energy-oracle/eo-api/internal/store"
)

func seededPrices(t *testing.T) *prices.Service {
	t.Helper()
	mem := store.NewMemoryStore()
	// June 2025 averages exactly 72.50.
	mem.Insert(store.TableSystemPrices,
		store.Row{"settlement_date": "2025-06-01", "settlement_period": 1, "price": 70.0},
		store.Row{"settlement_date": "2025-06-01", "settlement_period": 2, "price": 75.0},
	)
	mem.Insert(store.TableDayAheadPrices,
		store.Row{"settlement_date": "2025-06-01", "settlement_period": 1, "price": 68.0},
	)
	return prices.NewService(mem)
}

func TestCalculate(t *testing.T) {
	svc := NewService(seededPrices(t), nil)

	volume := decimal.NewFromInt(14200)
	result, err := svc.Calculate(context.Background(), Request{
		Year:           2025,
		Month:          6,
		DiscountPerMWh: decimal.RequireFromString("5.00"),
		VolumeMWh:      &volume,
	})
	require.NoError(t, err)

	assert.Equal(t, 2025, result.Year)
	assert.Equal(t, 6, result.Month)
	assert.Equal(t, prices.TypeSystem, result.PriceType, "price type defaults to system")
	assert.Equal(t, "72.5", result.AveragePrice.String())
	assert.Equal(t, "5", result.Discount.String())
	assert.Equal(t, "67.5", result.SettlementPrice.String())
	require.NotNil(t, result.SettlementAmount)
	assert.Equal(t, "958500", result.SettlementAmount.String())
	assert.Equal(t, 2, result.SettlementPeriods)
	assert.Equal(t, "GBP/MWh", result.Unit)
	assert.Equal(t, "GBP", result.Currency)
}

func TestCalculateWithoutVolume(t *testing.T) {
	svc := NewService(seededPrices(t), nil)

	result, err := svc.Calculate(context.Background(), Request{
		Year:           2025,
		Month:          6,
		DiscountPerMWh: decimal.RequireFromString("80.00"),
	})
	require.NoError(t, err)

	// The discount may exceed the market average; the price goes negative.
	assert.Equal(t, "-7.5", result.SettlementPrice.String())
	assert.Nil(t, result.VolumeMWh)
	assert.Nil(t, result.SettlementAmount)
}

func TestCalculateUnknownPriceType(t *testing.T) {
	svc := NewService(seededPrices(t), nil)

	_, err := svc.Calculate(context.Background(), Request{Year: 2025, Month: 6, PriceType: "spot"})
	require.Error(t, err)
	assert.Equal(t, fault.InvalidArgument, fault.KindOf(err))
}

func TestCalculateMonthWithoutData(t *testing.T) {
	svc := NewService(seededPrices(t), nil)

	_, err := svc.Calculate(context.Background(), Request{Year: 2025, Month: 2})
	require.Error(t, err)
	assert.Equal(t, fault.NotFound, fault.KindOf(err))
}

func TestCalculateWithContractPreset(t *testing.T) {
	volume := decimal.NewFromInt(1000)
	svc := NewService(seededPrices(t), []Contract{{
		Name:           "windfarm-baseload",
		PriceType:      prices.TypeDayAhead,
		DiscountPerMWh: decimal.RequireFromString("3.00"),
		VolumeMWh:      &volume,
	}})

	result, err := svc.Calculate(context.Background(), Request{
		Year:     2025,
		Month:    6,
		Contract: "windfarm-baseload",
	})
	require.NoError(t, err)

	assert.Equal(t, "windfarm-baseload", result.Contract)
	assert.Equal(t, prices.TypeDayAhead, result.PriceType)
	assert.Equal(t, "65", result.SettlementPrice.String())
	require.NotNil(t, result.SettlementAmount)
	assert.Equal(t, "65000", result.SettlementAmount.String())
}

func TestCalculateExplicitTermsOverridePreset(t *testing.T) {
	svc := NewService(seededPrices(t), []Contract{{
		Name:           "windfarm-baseload",
		PriceType:      prices.TypeDayAhead,
		DiscountPerMWh: decimal.RequireFromString("3.00"),
	}})

	result, err := svc.Calculate(context.Background(), Request{
		Year:           2025,
		Month:          6,
		Contract:       "windfarm-baseload",
		PriceType:      prices.TypeSystem,
		DiscountPerMWh: decimal.RequireFromString("10.00"),
	})
	require.NoError(t, err)

	assert.Equal(t, prices.TypeSystem, result.PriceType)
	assert.Equal(t, "62.5", result.SettlementPrice.String())
}

func TestCalculateUnknownContract(t *testing.T) {
	svc := NewService(seededPrices(t), nil)

	_, err := svc.Calculate(context.Background(), Request{Year: 2025, Month: 6, Contract: "ghost"})
	require.Error(t, err)
	assert.Equal(t, fault.InvalidArgument, fault.KindOf(err))
}

func TestLoadContracts(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "book.yaml"), []byte(`
contracts:
  - name: solar-dayahead
    counterparty: Solent Solar Co-op
    price_type: dayahead
    discount_per_mwh: 3.50
  - name: windfarm-baseload
    price_type: system
    discount_per_mwh: 5.00
    volume_mwh: 14200
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	contracts, err := LoadContracts(dir)
	require.NoError(t, err)
	require.Len(t, contracts, 2)

	// Sorted by name.
	assert.Equal(t, "solar-dayahead", contracts[0].Name)
	assert.Equal(t, "Solent Solar Co-op", contracts[0].Counterparty)
	assert.Equal(t, "3.5", contracts[0].DiscountPerMWh.String())
	assert.Nil(t, contracts[0].VolumeMWh)

	assert.Equal(t, "windfarm-baseload", contracts[1].Name)
	require.NotNil(t, contracts[1].VolumeMWh)
	assert.Equal(t, "14200", contracts[1].VolumeMWh.String())
}

func TestLoadContractsMissingDir(t *testing.T) {
	contracts, err := LoadContracts(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Nil(t, contracts)
}

func TestLoadContractsBadYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("contracts: ["), 0o644))

	_, err := LoadContracts(dir)
	assert.Error(t, err)
}
