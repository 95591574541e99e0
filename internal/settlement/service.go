// Package settlement applies the PPA settlement formula on top of monthly
// average prices:
//
//	settlement_price  = monthly average - discount
//	settlement_amount = settlement_price * volume   (when volume is given)
package settlement

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/energy-oracle/eo-api/internal/fault"
	"github.com/energy-oracle/eo-api/internal/prices"
)

// Request asks for one month's settlement. Either spell out the terms or
// name a contract preset; explicit fields override the preset's.
type Request struct {
	Year           int              `json:"year" binding:"required"`
	Month          int              `json:"month" binding:"required,min=1,max=12"`
	Contract       string           `json:"contract,omitempty"`
	DiscountPerMWh decimal.Decimal  `json:"discount_per_mwh"`
	VolumeMWh      *decimal.Decimal `json:"volume_mwh,omitempty"`
	PriceType      string           `json:"price_type,omitempty"`
}

// Result is an audit-grade settlement statement both PPA parties can agree
// on. SettlementPrice may be negative when the discount exceeds the market
// average.
type Result struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	Contract  string `json:"contract,omitempty"`
	PriceType string `json:"price_type"`

	AveragePrice     decimal.Decimal  `json:"average_price"`
	Discount         decimal.Decimal  `json:"discount"`
	SettlementPrice  decimal.Decimal  `json:"settlement_price"`
	VolumeMWh        *decimal.Decimal `json:"volume_mwh,omitempty"`
	SettlementAmount *decimal.Decimal `json:"settlement_amount,omitempty"`

	SettlementPeriods int    `json:"settlement_periods"`
	Unit              string `json:"unit"`
	Currency          string `json:"currency"`
}

// Service computes settlements from monthly averages.
type Service struct {
	prices    *prices.Service
	contracts map[string]Contract
	book      []Contract
}

// NewService wires the price service and an optional contract book.
func NewService(priceService *prices.Service, contracts []Contract) *Service {
	return &Service{
		prices:    priceService,
		contracts: contractByName(contracts),
		book:      contracts,
	}
}

// Contracts lists the loaded presets.
func (s *Service) Contracts() []Contract {
	return s.book
}

// Calculate settles one month. Unknown price types and unknown contract
// names are InvalidArgument; a month with no data for the chosen index is
// NotFound.
func (s *Service) Calculate(ctx context.Context, req Request) (*Result, error) {
	req, err := s.applyContract(req)
	if err != nil {
		return nil, err
	}
	if req.PriceType == "" {
		req.PriceType = prices.TypeSystem
	}

	avg, err := s.prices.MonthlyAverage(ctx, req.PriceType, req.Year, time.Month(req.Month))
	if err != nil {
		return nil, err
	}

	// Intermediates stay unrounded; only the statement fields round.
	settlementPrice := avg.AveragePrice.Sub(req.DiscountPerMWh)

	result := &Result{
		Year:              req.Year,
		Month:             req.Month,
		Contract:          req.Contract,
		PriceType:         req.PriceType,
		AveragePrice:      avg.AveragePrice.RoundBank(2),
		Discount:          req.DiscountPerMWh,
		SettlementPrice:   settlementPrice.RoundBank(2),
		SettlementPeriods: avg.SettlementPeriods,
		Unit:              "GBP/MWh",
		Currency:          "GBP",
	}

	if req.VolumeMWh != nil {
		amount := settlementPrice.Mul(*req.VolumeMWh).RoundBank(2)
		result.VolumeMWh = req.VolumeMWh
		result.SettlementAmount = &amount
	}

	return result, nil
}

// applyContract folds a named preset into the request, keeping any terms
// the request set explicitly.
func (s *Service) applyContract(req Request) (Request, error) {
	if req.Contract == "" {
		return req, nil
	}
	c, ok := s.contracts[req.Contract]
	if !ok {
		return req, fault.New(fault.InvalidArgument, "unknown contract: %s", req.Contract)
	}
	if req.PriceType == "" {
		req.PriceType = c.PriceType
	}
	if req.DiscountPerMWh.IsZero() {
		req.DiscountPerMWh = c.DiscountPerMWh
	}
	if req.VolumeMWh == nil {
		req.VolumeMWh = c.VolumeMWh
	}
	return req, nil
}
