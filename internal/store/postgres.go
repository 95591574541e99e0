package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"

	"github.com/energy-oracle/eo-api/internal/fault"
)

// PostgresStore compiles queries to parameterized SQL against a Postgres
// database holding the same four tables. Useful when the API is co-located
// with the ingestion database instead of going through PostgREST.
type PostgresStore struct {
	db *sql.DB
}

// OpenPostgres opens a connection pool for dsn and verifies it.
func OpenPostgres(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fault.Wrap(err, fault.Unavailable, "postgres unreachable")
	}
	return &PostgresStore{db: db}, nil
}

// NewPostgresStore wraps an existing pool (used by tests with a stub driver).
func NewPostgresStore(db *sql.DB) *PostgresStore { return &PostgresStore{db: db} }

func (s *PostgresStore) Close() error { return s.db.Close() }

var sqlOps = map[Op]string{
	OpGte: ">=",
	OpLte: "<=",
	OpLt:  "<",
	OpEq:  "=",
}

// knownTables guards against table names reaching the SQL string from
// anywhere but the package constants.
var knownTables = map[string]bool{
	TableSystemPrices:    true,
	TableDayAheadPrices:  true,
	TableCarbonIntensity: true,
	TableFuelMix:         true,
}

// Query implements Querier.
func (s *PostgresStore) Query(ctx context.Context, q Query) ([]Row, error) {
	if !knownTables[q.Table] {
		return nil, fmt.Errorf("unknown table %q", q.Table)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT * FROM %s", q.Table)

	args := make([]any, 0, len(q.Filters))
	for i, f := range q.Filters {
		op, ok := sqlOps[f.Op]
		if !ok {
			return nil, fmt.Errorf("unsupported operator %q", f.Op)
		}
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		fmt.Fprintf(&sb, "%s %s $%d", f.Column, op, i+1)
		args = append(args, f.Value)
	}
	for i, o := range q.Order {
		if i == 0 {
			sb.WriteString(" ORDER BY ")
		} else {
			sb.WriteString(", ")
		}
		sb.WriteString(o.Column)
		if o.Desc {
			sb.WriteString(" DESC")
		}
	}
	if q.Limit > 0 {
		fmt.Fprintf(&sb, " LIMIT %d", q.Limit)
	}

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fault.Wrap(err, fault.Unavailable, "postgres query failed for %s", q.Table)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fault.Wrap(err, fault.Unavailable, "postgres columns for %s", q.Table)
	}

	var out []Row
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fault.Wrap(err, fault.Unavailable, "postgres scan for %s", q.Table)
		}
		row := make(Row, len(cols))
		for i, col := range cols {
			row[col] = normalizeSQLValue(values[i])
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fault.Wrap(err, fault.Unavailable, "postgres rows for %s", q.Table)
	}
	return out, nil
}

// normalizeSQLValue maps driver values onto the loose types the model
// decoders accept. Numerics arrive from lib/pq as []byte; dates as
// time.Time.
func normalizeSQLValue(v any) any {
	switch x := v.(type) {
	case []byte:
		return string(x)
	case nil:
		return nil
	default:
		return v
	}
}
