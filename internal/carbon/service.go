// Package carbon queries the carbon intensity and fuel mix tables.
package carbon

import (
	"context"
	"time"

	"github.com/energy-oracle/eo-api/internal/model"
	"github.com/energy-oracle/eo-api/internal/store"
)

// IntensityList is a list of carbon intensity readings.
type IntensityList struct {
	Data  []model.CarbonRecord `json:"data"`
	Count int                  `json:"count"`
	Unit  string               `json:"unit"`
}

// FuelMixList is a list of fuel mix readings.
type FuelMixList struct {
	Data  []model.FuelMixRecord `json:"data"`
	Count int                   `json:"count"`
	Unit  string                `json:"unit"`
}

// Service reads the carbon_intensity and fuel_mix tables.
type Service struct {
	store store.Querier
}

func NewService(q store.Querier) *Service {
	return &Service{store: q}
}

// CurrentIntensity returns the most recent carbon intensity reading.
func (s *Service) CurrentIntensity(ctx context.Context) (*IntensityList, error) {
	rows, err := s.store.Query(ctx, store.Query{
		Table: store.TableCarbonIntensity,
		Order: []store.Ordering{store.Desc("datetime")},
		Limit: 1,
	})
	if err != nil {
		return nil, err
	}
	return newIntensityList(rows)
}

// IntensityByDate returns all readings for one date.
func (s *Service) IntensityByDate(ctx context.Context, date time.Time) (*IntensityList, error) {
	return s.IntensityRange(ctx, date, date)
}

// IntensityRange returns readings for an inclusive date range, queried as a
// half-open datetime window [from 00:00, to+1d 00:00).
func (s *Service) IntensityRange(ctx context.Context, from, to time.Time) (*IntensityList, error) {
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
	return newIntensityList(rows)
}

// CurrentFuelMix returns the most recent fuel mix reading.
func (s *Service) CurrentFuelMix(ctx context.Context) (*FuelMixList, error) {
	rows, err := s.store.Query(ctx, store.Query{
		Table: store.TableFuelMix,
		Order: []store.Ordering{store.Desc("datetime")},
		Limit: 1,
	})
	if err != nil {
		return nil, err
	}
	return newFuelMixList(rows)
}

// FuelMixByDate returns all fuel mix readings for one date.
func (s *Service) FuelMixByDate(ctx context.Context, date time.Time) (*FuelMixList, error) {
	rows, err := s.store.Query(ctx, store.Query{
		Table: store.TableFuelMix,
		Filters: []store.Filter{
			store.Gte("datetime", model.FormatDatetime(model.DateOf(date))),
			store.Lt("datetime", model.FormatDatetime(model.DateOf(date).AddDate(0, 0, 1))),
		},
		Order: []store.Ordering{store.Asc("datetime")},
	})
	if err != nil {
		return nil, err
	}
	return newFuelMixList(rows)
}

func newIntensityList(rows []store.Row) (*IntensityList, error) {
	records, err := model.CarbonRecordsFromRows(rows)
	if err != nil {
		return nil, err
	}
	return &IntensityList{Data: records, Count: len(records), Unit: "gCO2/kWh"}, nil
}

func newFuelMixList(rows []store.Row) (*FuelMixList, error) {
	records, err := model.FuelMixRecordsFromRows(rows)
	if err != nil {
		return nil, err
	}
	return &FuelMixList{Data: records, Count: len(records), Unit: "percentage"}, nil
}
