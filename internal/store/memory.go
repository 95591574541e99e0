package store

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
)

// MemoryStore is an in-memory Querier. It backs the service tests and the
// demo seed path; predicate evaluation mirrors what PostgREST does for the
// column types we use (ISO dates/datetimes compare lexicographically,
// numbers numerically).
type MemoryStore struct {
	tables map[string][]Row
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tables: make(map[string][]Row)}
}

// Insert appends rows to a table.
func (m *MemoryStore) Insert(table string, rows ...Row) {
	m.tables[table] = append(m.tables[table], rows...)
}

// Query implements Querier.
func (m *MemoryStore) Query(_ context.Context, q Query) ([]Row, error) {
	var out []Row
	for _, row := range m.tables[q.Table] {
		if matchesAll(row, q.Filters) {
			out = append(out, row)
		}
	}

	if len(q.Order) > 0 {
		sort.SliceStable(out, func(i, j int) bool {
			for _, o := range q.Order {
				cmp := compareValues(out[i][o.Column], out[j][o.Column])
				if cmp == 0 {
					continue
				}
				if o.Desc {
					return cmp > 0
				}
				return cmp < 0
			}
			return false
		})
	}

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func matchesAll(row Row, filters []Filter) bool {
	for _, f := range filters {
		cmp := compareValues(row[f.Column], f.Value)
		switch f.Op {
		case OpGte:
			if cmp < 0 {
				return false
			}
		case OpLte:
			if cmp > 0 {
				return false
			}
		case OpLt:
			if cmp >= 0 {
				return false
			}
		case OpEq:
			if cmp != 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// compareValues compares two loosely-typed cell values. Numeric pairs
// compare numerically, everything else by string form.
func compareValues(a, b any) int {
	as, af, aNum := stringAndFloat(a)
	bs, bf, bNum := stringAndFloat(b)
	if aNum && bNum {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}

func stringAndFloat(v any) (s string, f float64, numeric bool) {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), x, true
	case int:
		return strconv.Itoa(x), float64(x), true
	case int64:
		return strconv.FormatInt(x, 10), float64(x), true
	case json.Number:
		if fv, err := x.Float64(); err == nil {
			return x.String(), fv, true
		}
		return x.String(), 0, false
	case string:
		if fv, err := strconv.ParseFloat(x, 64); err == nil {
			return x, fv, true
		}
		return x, 0, false
	case nil:
		return "", 0, false
	default:
		return "", 0, false
	}
}
