package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/energy-oracle/eo-api/internal/fault"
	"github.com/energy-oracle/eo-api/internal/store"
)

// Column decoding helpers. Backends hand us loosely-typed values: PostgREST
// responses decode to float64/string/json.Number, lib/pq scans numerics as
// []byte. Required columns that are missing, null or untypable are a
// SchemaMismatch, never a silent zero.

func schemaErr(column string, v any) error {
	return fault.New(fault.SchemaMismatch, "column %q: unexpected value %v (%T)", column, v, v)
}

func missingErr(column string) error {
	return fault.New(fault.SchemaMismatch, "column %q missing from row", column)
}

func decimalColumn(row store.Row, column string) (decimal.Decimal, error) {
	v, ok := row[column]
	if !ok || v == nil {
		return decimal.Decimal{}, missingErr(column)
	}
	d, ok := toDecimal(v)
	if !ok {
		return decimal.Decimal{}, schemaErr(column, v)
	}
	return d, nil
}

func optDecimalColumn(row store.Row, column string) (decimal.Decimal, bool, error) {
	v, present := row[column]
	if !present || v == nil {
		return decimal.Decimal{}, false, nil
	}
	d, ok := toDecimal(v)
	if !ok {
		return decimal.Decimal{}, false, schemaErr(column, v)
	}
	return d, true, nil
}

func optFloatColumn(row store.Row, column string) (float64, bool, error) {
	d, ok, err := optDecimalColumn(row, column)
	if err != nil || !ok {
		return 0, ok, err
	}
	f, _ := d.Float64()
	return f, true, nil
}

func intColumn(row store.Row, column string) (int, error) {
	d, err := decimalColumn(row, column)
	if err != nil {
		return 0, err
	}
	if !d.IsInteger() {
		return 0, fault.New(fault.SchemaMismatch, "column %q: %s is not an integer", column, d)
	}
	return int(d.IntPart()), nil
}

func optStringColumn(row store.Row, column string) string {
	if s, ok := row[column].(string); ok {
		return s
	}
	return ""
}

func dateColumn(row store.Row, column string) (time.Time, error) {
	v, ok := row[column]
	if !ok || v == nil {
		return time.Time{}, missingErr(column)
	}
	switch x := v.(type) {
	case string:
		d, err := time.ParseInLocation(DateFormat, x, time.UTC)
		if err != nil {
			return time.Time{}, fault.New(fault.SchemaMismatch, "column %q: bad date %q", column, x)
		}
		return d, nil
	case time.Time:
		return DateOf(x.UTC()), nil
	}
	return time.Time{}, schemaErr(column, v)
}

// datetimeLayouts covers what the store emits: RFC3339 with or without a
// zone suffix, with or without fractional seconds. Naive timestamps are
// treated as UTC.
var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func timeColumn(row store.Row, column string) (time.Time, error) {
	v, ok := row[column]
	if !ok || v == nil {
		return time.Time{}, missingErr(column)
	}
	switch x := v.(type) {
	case string:
		for _, layout := range datetimeLayouts {
			if t, err := time.ParseInLocation(layout, x, time.UTC); err == nil {
				return t.UTC(), nil
			}
		}
		return time.Time{}, fault.New(fault.SchemaMismatch, "column %q: bad datetime %q", column, x)
	case time.Time:
		return x.UTC(), nil
	}
	return time.Time{}, schemaErr(column, v)
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case decimal.Decimal:
		return x, true
	case float64:
		return decimal.NewFromFloat(x), true
	case float32:
		return decimal.NewFromFloat32(x), true
	case int:
		return decimal.NewFromInt(int64(x)), true
	case int64:
		return decimal.NewFromInt(x), true
	case json.Number:
		d, err := decimal.NewFromString(x.String())
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(x)
		return d, err == nil
	case []byte:
		d, err := decimal.NewFromString(string(x))
		return d, err == nil
	}
	return decimal.Decimal{}, false
}

// ParseDate parses a YYYY-MM-DD query value.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateFormat, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be YYYY-MM-DD, got %q", s)
	}
	return d, nil
}

// FormatDate renders a date the way the store's date columns expect it.
func FormatDate(d time.Time) string { return d.Format(DateFormat) }

// FormatDatetime renders a datetime filter value (naive UTC, second
// precision) for the datetime-indexed tables.
func FormatDatetime(t time.Time) string { return t.UTC().Format("2006-01-02T15:04:05") }

// ParseMonth validates a year/month pair from a path.
func ParseMonth(yearStr, monthStr string) (int, time.Month, error) {
	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 1990 || year > 2100 {
		return 0, 0, fmt.Errorf("year must be a four-digit year, got %q", yearStr)
	}
	m, err := strconv.Atoi(monthStr)
	if err != nil || m < 1 || m > 12 {
		return 0, 0, fmt.Errorf("month must be between 1 and 12, got %q", monthStr)
	}
	return year, time.Month(m), nil
}
