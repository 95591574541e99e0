// Package store provides read access to the four time-series tables backing
// the API: system_prices, day_ahead_prices, carbon_intensity and fuel_mix.
// Callers describe what they want as a Query; backends (PostgREST, Postgres,
// in-memory) compile it to their own wire format.
package store

import "context"

// Table names. These are the only tables the API reads.
const (
	TableSystemPrices    = "system_prices"
	TableDayAheadPrices  = "day_ahead_prices"
	TableCarbonIntensity = "carbon_intensity"
	TableFuelMix         = "fuel_mix"
)

// Op is a filter operator. The set matches what PostgREST exposes and what
// the services need: inclusive bounds, one exclusive upper bound for
// half-open datetime windows, and equality.
type Op string

const (
	OpGte Op = "gte"
	OpLte Op = "lte"
	OpLt  Op = "lt"
	OpEq  Op = "eq"
)

// Filter is one predicate in a conjunction. Values are the string form the
// store understands (ISO dates and datetimes, plain numbers).
type Filter struct {
	Column string
	Op     Op
	Value  string
}

// Ordering is one sort key.
type Ordering struct {
	Column string
	Desc   bool
}

// Query describes a single read. Filters are ANDed. Limit 0 means no limit.
type Query struct {
	Table   string
	Filters []Filter
	Order   []Ordering
	Limit   int
}

// Row is one decoded result row. Column values arrive as whatever the
// backend's codec produced (float64, string, json.Number, nil); the model
// package is responsible for turning them into typed records.
type Row map[string]any

// Querier is the read-only contract the services depend on. Implementations
// must not retry: availability errors propagate to the caller unchanged.
type Querier interface {
	Query(ctx context.Context, q Query) ([]Row, error)
}

// Gte is shorthand for an inclusive lower-bound filter.
func Gte(column, value string) Filter { return Filter{Column: column, Op: OpGte, Value: value} }

// Lte is shorthand for an inclusive upper-bound filter.
func Lte(column, value string) Filter { return Filter{Column: column, Op: OpLte, Value: value} }

// Lt is shorthand for an exclusive upper-bound filter.
func Lt(column, value string) Filter { return Filter{Column: column, Op: OpLt, Value: value} }

// Eq is shorthand for an equality filter.
func Eq(column, value string) Filter { return Filter{Column: column, Op: OpEq, Value: value} }

// Asc and Desc are shorthand orderings.
func Asc(column string) Ordering  { return Ordering{Column: column} }
func Desc(column string) Ordering { return Ordering{Column: column, Desc: true} }
