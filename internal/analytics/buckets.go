package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/energy-oracle/eo-api/internal/model"
)

// DailyAverage is one calendar-day bucket of a price series.
type DailyAverage struct {
	Date              time.Time       `json:"date"`
	AveragePrice      decimal.Decimal `json:"average_price"`
	MinPrice          decimal.Decimal `json:"min_price"`
	MaxPrice          decimal.Decimal `json:"max_price"`
	SettlementPeriods int             `json:"settlement_periods"`
	Unit              string          `json:"unit"`
}

// WeeklyAverage is one ISO-week bucket of a price series.
type WeeklyAverage struct {
	WeekStart         time.Time       `json:"week_start"`
	WeekEnd           time.Time       `json:"week_end"`
	WeekNumber        int             `json:"week_number"`
	AveragePrice      decimal.Decimal `json:"average_price"`
	MinPrice          decimal.Decimal `json:"min_price"`
	MaxPrice          decimal.Decimal `json:"max_price"`
	SettlementPeriods int             `json:"settlement_periods"`
	Unit              string          `json:"unit"`
}

// GroupDaily buckets prices by settlement date. Buckets are emitted sorted
// by date ascending; an empty input yields an empty slice, not an error.
func GroupDaily(records []model.PriceRecord) []DailyAverage {
	byDay := make(map[time.Time][]decimal.Decimal)
	for _, r := range records {
		d := model.DateOf(r.SettlementDate)
		byDay[d] = append(byDay[d], r.Price)
	}

	days := make([]time.Time, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	out := make([]DailyAverage, 0, len(days))
	for _, d := range days {
		prices := byDay[d]
		min, max := minMaxDecimal(prices)
		out = append(out, DailyAverage{
			Date:              d,
			AveragePrice:      avgDecimal(prices).RoundBank(2),
			MinPrice:          min,
			MaxPrice:          max,
			SettlementPeriods: len(prices),
			Unit:              "GBP/MWh",
		})
	}
	return out
}

// GroupWeekly buckets prices by ISO week, sorted by (ISO year, week).
func GroupWeekly(records []model.PriceRecord) []WeeklyAverage {
	type weekData struct {
		start, end time.Time
		prices     []decimal.Decimal
	}
	byWeek := make(map[model.WeekKey]*weekData)
	for _, r := range records {
		key := model.ISOWeekOf(r.SettlementDate)
		w, ok := byWeek[key]
		if !ok {
			start, end := model.WeekBounds(r.SettlementDate)
			w = &weekData{start: start, end: end}
			byWeek[key] = w
		}
		w.prices = append(w.prices, r.Price)
	}

	keys := make([]model.WeekKey, 0, len(byWeek))
	for k := range byWeek {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })

	out := make([]WeeklyAverage, 0, len(keys))
	for _, k := range keys {
		w := byWeek[k]
		min, max := minMaxDecimal(w.prices)
		out = append(out, WeeklyAverage{
			WeekStart:         w.start,
			WeekEnd:           w.end,
			WeekNumber:        k.Week,
			AveragePrice:      avgDecimal(w.prices).RoundBank(2),
			MinPrice:          min,
			MaxPrice:          max,
			SettlementPeriods: len(w.prices),
			Unit:              "GBP/MWh",
		})
	}
	return out
}

// PeakOffPeak is the peak/off-peak split of a price series. Peak is
// weekdays, periods 15-38; the premium is peak minus off-peak average.
type PeakOffPeak struct {
	Period    string    `json:"period"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	PeakAverage decimal.Decimal `json:"peak_average"`
	PeakMin     decimal.Decimal `json:"peak_min"`
	PeakMax     decimal.Decimal `json:"peak_max"`
	PeakPeriods int             `json:"peak_periods"`

	OffpeakAverage decimal.Decimal `json:"offpeak_average"`
	OffpeakMin     decimal.Decimal `json:"offpeak_min"`
	OffpeakMax     decimal.Decimal `json:"offpeak_max"`
	OffpeakPeriods int             `json:"offpeak_periods"`

	PeakPremium    decimal.Decimal `json:"peak_premium"`
	PeakPremiumPct decimal.Decimal `json:"peak_premium_pct"`

	Unit string `json:"unit"`
}

// SplitPeakOffPeak classifies every record with the peak rule and summarizes
// both groups. Either group may be empty; its stats are then zero and the
// premium percentage is zero when the off-peak average is zero.
func SplitPeakOffPeak(records []model.PriceRecord) PeakOffPeak {
	var peak, offpeak []decimal.Decimal
	for _, r := range records {
		if r.IsPeak() {
			peak = append(peak, r.Price)
		} else {
			offpeak = append(offpeak, r.Price)
		}
	}

	peakAvg, offpeakAvg := decimal.Zero, decimal.Zero
	if len(peak) > 0 {
		peakAvg = avgDecimal(peak)
	}
	if len(offpeak) > 0 {
		offpeakAvg = avgDecimal(offpeak)
	}
	premium := peakAvg.Sub(offpeakAvg)
	premiumPct := decimal.Zero
	if !offpeakAvg.IsZero() {
		premiumPct = premium.Div(offpeakAvg).Mul(decimal.NewFromInt(100))
	}

	peakMin, peakMax := minMaxDecimal(peak)
	offMin, offMax := minMaxDecimal(offpeak)

	return PeakOffPeak{
		PeakAverage:    peakAvg.RoundBank(2),
		PeakMin:        peakMin,
		PeakMax:        peakMax,
		PeakPeriods:    len(peak),
		OffpeakAverage: offpeakAvg.RoundBank(2),
		OffpeakMin:     offMin,
		OffpeakMax:     offMax,
		OffpeakPeriods: len(offpeak),
		PeakPremium:    premium.RoundBank(2),
		PeakPremiumPct: premiumPct.RoundBank(1),
		Unit:           "GBP/MWh",
	}
}

// rangeLabel names a date range by its length, matching the labels the API
// has always reported: day, week, month, then year.
func rangeLabel(from, to time.Time, monthMax bool) string {
	days := int(to.Sub(from).Hours()/24) + 1
	switch {
	case days <= 1:
		return "day"
	case days <= 7:
		return "week"
	case days <= 31 || monthMax:
		return "month"
	default:
		return "year"
	}
}
