// Package prices queries the settlement price tables: latest readings,
// per-date and ranged reads, and the monthly averages PPA settlement is
// built on.
package prices

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/energy-oracle/eo-api/internal/fault"
	"github.com/energy-oracle/eo-api/internal/model"
	"github.com/energy-oracle/eo-api/internal/store"
)

// Price type selectors accepted by the API.
const (
	TypeSystem   = "system"
	TypeDayAhead = "dayahead"
)

// TableFor maps a price type to its table. An unknown type is an
// InvalidArgument fault.
func TableFor(priceType string) (string, error) {
	switch priceType {
	case TypeSystem:
		return store.TableSystemPrices, nil
	case TypeDayAhead:
		return store.TableDayAheadPrices, nil
	default:
		return "", fault.New(fault.InvalidArgument, "unknown price_type: %s", priceType)
	}
}

// PriceList is a list of price records plus the unit they are quoted in.
type PriceList struct {
	Data  []model.PriceRecord `json:"data"`
	Count int                 `json:"count"`
	Unit  string              `json:"unit"`
}

// MonthlyAverage is the arithmetic mean of every settlement period price in
// a calendar month. AveragePrice is unrounded; settlement rounds at its own
// output boundary.
type MonthlyAverage struct {
	Year              int             `json:"year"`
	Month             int             `json:"month"`
	AveragePrice      decimal.Decimal `json:"average_price"`
	MinPrice          decimal.Decimal `json:"min_price"`
	MaxPrice          decimal.Decimal `json:"max_price"`
	SettlementPeriods int             `json:"settlement_periods"`
	Unit              string          `json:"unit"`
	PriceType         string          `json:"price_type"`
}

// Service reads the two price tables through an injected Querier.
type Service struct {
	store store.Querier
}

func NewService(q store.Querier) *Service {
	return &Service{store: q}
}

// Latest returns the most recent records, date then period descending.
func (s *Service) Latest(ctx context.Context, priceType string, limit int) (*PriceList, error) {
	table, err := TableFor(priceType)
	if err != nil {
		return nil, err
	}
	rows, err := s.store.Query(ctx, store.Query{
		Table: table,
		Order: []store.Ordering{store.Desc("settlement_date"), store.Desc("settlement_period")},
		Limit: limit,
	})
	if err != nil {
		return nil, err
	}
	return newPriceList(rows)
}

// ByDate returns all settlement periods for one date, period ascending.
func (s *Service) ByDate(ctx context.Context, priceType string, date time.Time) (*PriceList, error) {
	table, err := TableFor(priceType)
	if err != nil {
		return nil, err
	}
	rows, err := s.store.Query(ctx, store.Query{
		Table:   table,
		Filters: []store.Filter{store.Eq("settlement_date", model.FormatDate(date))},
		Order:   []store.Ordering{store.Asc("settlement_period")},
	})
	if err != nil {
		return nil, err
	}
	return newPriceList(rows)
}

// Range returns records for an inclusive date range, ordered by date then
// period. Zero rows is a valid empty list, not an error.
func (s *Service) Range(ctx context.Context, priceType string, from, to time.Time) (*PriceList, error) {
	table, err := TableFor(priceType)
	if err != nil {
		return nil, err
	}
	rows, err := s.store.Query(ctx, store.Query{
		Table: table,
		Filters: []store.Filter{
			store.Gte("settlement_date", model.FormatDate(from)),
			store.Lte("settlement_date", model.FormatDate(to)),
		},
		Order: []store.Ordering{store.Asc("settlement_date"), store.Asc("settlement_period")},
	})
	if err != nil {
		return nil, err
	}
	return newPriceList(rows)
}

// MonthlyAverage computes the settlement reference price for a month. A
// month with zero rows is NotFound.
func (s *Service) MonthlyAverage(ctx context.Context, priceType string, year int, month time.Month) (*MonthlyAverage, error) {
	table, err := TableFor(priceType)
	if err != nil {
		return nil, err
	}

	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	next := from.AddDate(0, 1, 0)

	rows, err := s.store.Query(ctx, store.Query{
		Table: table,
		Filters: []store.Filter{
			store.Gte("settlement_date", model.FormatDate(from)),
			store.Lt("settlement_date", model.FormatDate(next)),
		},
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fault.New(fault.NotFound, "no %s price data for %04d-%02d", priceType, year, month)
	}

	records, err := model.PriceRecordsFromRows(rows)
	if err != nil {
		return nil, err
	}

	sum := decimal.Zero
	min, max := records[0].Price, records[0].Price
	for _, r := range records {
		sum = sum.Add(r.Price)
		if r.Price.LessThan(min) {
			min = r.Price
		}
		if r.Price.GreaterThan(max) {
			max = r.Price
		}
	}

	return &MonthlyAverage{
		Year:              year,
		Month:             int(month),
		AveragePrice:      sum.Div(decimal.NewFromInt(int64(len(records)))),
		MinPrice:          min,
		MaxPrice:          max,
		SettlementPeriods: len(records),
		Unit:              "GBP/MWh",
		PriceType:         priceType,
	}, nil
}

func newPriceList(rows []store.Row) (*PriceList, error) {
	records, err := model.PriceRecordsFromRows(rows)
	if err != nil {
		return nil, err
	}
	return &PriceList{Data: records, Count: len(records), Unit: "GBP/MWh"}, nil
}
