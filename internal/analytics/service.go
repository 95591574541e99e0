package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/energy-oracle/eo-api/internal/fault"
	"github.com/energy-oracle/eo-api/internal/model"
	"github.com/energy-oracle/eo-api/internal/prices"
	"github.com/energy-oracle/eo-api/internal/store"
)

// Service runs the aggregation pipelines: fetch every input series for the
// requested window up front, then transform. Computation never starts on a
// partial fetch, and nothing is cached between requests.
type Service struct {
	store store.Querier
}

func NewService(q store.Querier) *Service {
	return &Service{store: q}
}

// DailyAverageList is the response for the daily averages operation.
type DailyAverageList struct {
	Data      []DailyAverage `json:"data"`
	Count     int            `json:"count"`
	PriceType string         `json:"price_type"`
}

// WeeklyAverageList is the response for the weekly averages operation.
type WeeklyAverageList struct {
	Data      []WeeklyAverage `json:"data"`
	Count     int             `json:"count"`
	PriceType string          `json:"price_type"`
}

// DailyCarbonSummaryList is the response for the daily carbon summaries.
type DailyCarbonSummaryList struct {
	Data  []DailyCarbonSummary `json:"data"`
	Count int                  `json:"count"`
}

// PriceStatistics is the statistical profile plus its request context.
type PriceStatistics struct {
	Period    string    `json:"period"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	PriceType string    `json:"price_type"`
	PriceStats
	Unit string `json:"unit"`
}

// DailyAverages buckets a date range by calendar day. An empty range yields
// an empty list.
func (s *Service) DailyAverages(ctx context.Context, from, to time.Time, priceType string) (*DailyAverageList, error) {
	records, err := s.fetchPrices(ctx, priceType, from, to)
	if err != nil {
		return nil, err
	}
	data := GroupDaily(records)
	return &DailyAverageList{Data: data, Count: len(data), PriceType: priceType}, nil
}

// WeeklyAverages buckets a date range by ISO week.
func (s *Service) WeeklyAverages(ctx context.Context, from, to time.Time, priceType string) (*WeeklyAverageList, error) {
	records, err := s.fetchPrices(ctx, priceType, from, to)
	if err != nil {
		return nil, err
	}
	data := GroupWeekly(records)
	return &WeeklyAverageList{Data: data, Count: len(data), PriceType: priceType}, nil
}

// PeakOffPeak splits a date range with the peak rule.
func (s *Service) PeakOffPeak(ctx context.Context, from, to time.Time, priceType string) (*PeakOffPeak, error) {
	records, err := s.fetchPrices(ctx, priceType, from, to)
	if err != nil {
		return nil, err
	}
	result := SplitPeakOffPeak(records)
	result.Period = rangeLabel(from, to, true)
	result.StartDate = from
	result.EndDate = to
	return &result, nil
}

// PriceStatistics profiles a date range. A range with zero rows is
// NotFound: there is nothing to profile.
func (s *Service) PriceStatistics(ctx context.Context, from, to time.Time, priceType string) (*PriceStatistics, error) {
	records, err := s.fetchPrices(ctx, priceType, from, to)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fault.New(fault.NotFound, "no data found for %s to %s",
			model.FormatDate(from), model.FormatDate(to))
	}

	stats, err := ComputePriceStats(pricesOf(records))
	if err != nil {
		return nil, err
	}
	return &PriceStatistics{
		Period:     rangeLabel(from, to, false),
		StartDate:  from,
		EndDate:    to,
		PriceType:  priceType,
		PriceStats: stats,
		Unit:       "GBP/MWh",
	}, nil
}

// CarbonWeightedPrice joins system prices against carbon intensity for a
// date range and splits by intensity band.
func (s *Service) CarbonWeightedPrice(ctx context.Context, from, to time.Time) (*CarbonWeighted, error) {
	priceRecords, err := s.fetchPrices(ctx, prices.TypeSystem, from, to)
	if err != nil {
		return nil, err
	}
	carbonRecords, err := s.fetchCarbon(ctx, from, to)
	if err != nil {
		return nil, err
	}

	result := WeighByCarbon(priceRecords, IndexCarbon(carbonRecords))
	result.Period = rangeLabel(from, to, true)
	result.StartDate = from
	result.EndDate = to
	return &result, nil
}

// DailyCarbonSummaries summarizes carbon intensity per day for a range,
// with dominant fuel and renewable share from the fuel mix.
func (s *Service) DailyCarbonSummaries(ctx context.Context, from, to time.Time) (*DailyCarbonSummaryList, error) {
	carbonRecords, err := s.fetchCarbon(ctx, from, to)
	if err != nil {
		return nil, err
	}
	fuelRecords, err := s.fetchFuelMix(ctx, from, to)
	if err != nil {
		return nil, err
	}
	data := SummarizeCarbonDays(carbonRecords, fuelRecords)
	return &DailyCarbonSummaryList{Data: data, Count: len(data)}, nil
}

// RenewableGenerationIndex computes the monthly renewable index. A month
// with zero fuel-mix rows is NotFound; a missing previous month just leaves
// the comparison out.
func (s *Service) RenewableGenerationIndex(ctx context.Context, year int, month time.Month) (*RenewableIndexResult, error) {
	from, to := model.MonthBounds(year, month)

	records, err := s.fetchFuelMix(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fault.New(fault.NotFound, "no fuel mix data found for %04d-%02d", year, month)
	}

	avgs := averageRenewables(records)
	total := avgs.total()

	result := &RenewableIndexResult{
		Period:              fmt.Sprintf("%04d-%02d", year, month),
		StartDate:           from,
		EndDate:             to,
		TotalRenewablePct:   round1(total),
		WindPct:             round1(avgs.wind),
		SolarPct:            round1(avgs.solar),
		HydroPct:            round1(avgs.hydro),
		BiomassPct:          round1(avgs.biomass),
		EstimatedRegoSupply: regoTier(total),
		SettlementPeriods:   avgs.count,
	}

	prevYear, prevMonth := model.PreviousMonth(year, month)
	prevFrom, prevTo := model.MonthBounds(prevYear, prevMonth)
	prevRecords, err := s.fetchFuelMix(ctx, prevFrom, prevTo)
	if err != nil {
		return nil, err
	}
	if prevAvgs := averageRenewables(prevRecords); prevAvgs.count > 0 {
		if prevTotal := prevAvgs.total(); prevTotal > 0 {
			change := round1((total - prevTotal) / prevTotal * 100)
			result.VsPreviousMonthPct = &change
		}
	}

	return result, nil
}

// GreenPremium compares system prices above and below a renewable-share
// threshold for a month. NotFound when the month has no price rows, or when
// alignment leaves both subsets empty.
func (s *Service) GreenPremium(ctx context.Context, year int, month time.Month, threshold int) (*GreenPremiumResult, error) {
	from, to := model.MonthBounds(year, month)

	priceRecords, err := s.fetchPrices(ctx, prices.TypeSystem, from, to)
	if err != nil {
		return nil, err
	}
	if len(priceRecords) == 0 {
		return nil, fault.New(fault.NotFound, "no price data found for %04d-%02d", year, month)
	}

	fuelRecords, err := s.fetchFuelMix(ctx, from, to)
	if err != nil {
		return nil, err
	}

	green, brown := SplitByRenewable(priceRecords, IndexRenewable(fuelRecords), threshold)
	if len(green) == 0 && len(brown) == 0 {
		return nil, fault.New(fault.NotFound, "no matched price/fuel data for %04d-%02d", year, month)
	}

	greenAvg, brownAvg := 0.0, 0.0
	if len(green) > 0 {
		greenAvg = mean(green)
	}
	if len(brown) > 0 {
		brownAvg = mean(brown)
	}
	premium := greenAvg - brownAvg
	premiumPct := 0.0
	if brownAvg != 0 {
		premiumPct = premium / brownAvg * 100
	}

	return &GreenPremiumResult{
		Period:             fmt.Sprintf("%04d-%02d", year, month),
		StartDate:          from,
		EndDate:            to,
		GreenPriceAvg:      round2(greenAvg),
		GreenPeriods:       len(green),
		BrownPriceAvg:      round2(brownAvg),
		BrownPeriods:       len(brown),
		GreenPremium:       round2(premium),
		GreenPremiumPct:    round1(premiumPct),
		RenewableThreshold: threshold,
	}, nil
}

// fetchPrices reads one price table for an inclusive date range.
func (s *Service) fetchPrices(ctx context.Context, priceType string, from, to time.Time) ([]model.PriceRecord, error) {
	table, err := prices.TableFor(priceType)
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
	return model.PriceRecordsFromRows(rows)
}

// fetchCarbon reads carbon readings for the half-open datetime window
// covering an inclusive date range.
func (s *Service) fetchCarbon(ctx context.Context, from, to time.Time) ([]model.CarbonRecord, error) {
	rows, err := s.store.Query(ctx, store.Query{
		Table: store.TableCarbonIntensity,
		Filters: []store.Filter{
			store.Gte("datetime", model.FormatDatetime(model.DateOf(from))),
			store.Lt("datetime", model.FormatDatetime(model.DateOf(to).AddDate(0, 0, 1))),
		},
		Order: []store.Ordering{store.Asc("datetime")},
	})
	if err != nil {
		return nil, err
	}
	return model.CarbonRecordsFromRows(rows)
}

// fetchFuelMix reads fuel mix readings for the same window shape.
func (s *Service) fetchFuelMix(ctx context.Context, from, to time.Time) ([]model.FuelMixRecord, error) {
	rows, err := s.store.Query(ctx, store.Query{
		Table: store.TableFuelMix,
		Filters: []store.Filter{
			store.Gte("datetime", model.FormatDatetime(model.DateOf(from))),
			store.Lt("datetime", model.FormatDatetime(model.DateOf(to).AddDate(0, 0, 1))),
		},
		Order: []store.Ordering{store.Asc("datetime")},
	})
	if err != nil {
		return nil, err
	}
	return model.FuelMixRecordsFromRows(rows)
}

// pricesOf projects the price column of a record series.
func pricesOf(records []model.PriceRecord) []decimal.Decimal {
	out := make([]decimal.Decimal, len(records))
	for i, r := range records {
		out[i] = r.Price
	}
	return out
}
