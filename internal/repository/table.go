package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// table is the lookup shared by every entity keyed by a single id column.
type table[T any] struct {
	name    string
	columns string
}

// get returns the row with the given id and whether it was found.
func (t table[T]) get(ctx context.Context, q Querier, id string) (T, bool, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", t.columns, t.name)
	return t.getWhere(ctx, q, query, id)
}

// getWhere runs a single-row query built by the caller.
func (t table[T]) getWhere(ctx context.Context, q Querier, query string, args ...interface{}) (T, bool, error) {
	var row T
	if err := sqlx.GetContext(ctx, q, &row, q.Rebind(query), args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return row, false, nil
		}
		return row, false, fmt.Errorf("failed to query %s: %w", t.name, err)
	}
	return row, true, nil
}

// selectWhere runs a multi-row query built by the caller. It never returns a
// nil slice so empty results encode as [].
func (t table[T]) selectWhere(ctx context.Context, q Querier, query string, args ...interface{}) ([]T, error) {
	rows := []T{}
	if err := sqlx.SelectContext(ctx, q, &rows, q.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", t.name, err)
	}
	return rows, nil
}

// insert writes rows with a named bulk insert, chunked to stay under the
// driver's bind parameter limit.
func (t table[T]) insert(ctx context.Context, q Querier, query string, rows []T) error {
	const chunkSize = 100
	for i := 0; i < len(rows); i += chunkSize {
		end := i + chunkSize
		if end > len(rows) {
			end = len(rows)
		}
		if _, err := sqlx.NamedExecContext(ctx, q, query, rows[i:end]); err != nil {
			return translateError(fmt.Errorf("failed to insert into %s: %w", t.name, err))
		}
	}
	return nil
}

// update runs a named statement against a single row.
func (t table[T]) update(ctx context.Context, q Querier, query string, row T) error {
	if _, err := sqlx.NamedExecContext(ctx, q, query, row); err != nil {
		return translateError(fmt.Errorf("failed to update %s: %w", t.name, err))
	}
	return nil
}

// exec runs a positional statement and reports the number of affected rows.
func exec(ctx context.Context, q Querier, query string, args ...interface{}) (int64, error) {
	res, err := q.ExecContext(ctx, q.Rebind(query), args...)
	if err != nil {
		return 0, translateError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return n, nil
}

// filter accumulates WHERE clauses and their arguments.
type filter struct {
	clauses []string
	args    []interface{}
}

func (f *filter) add(clause string, args ...interface{}) {
	f.clauses = append(f.clauses, clause)
	f.args = append(f.args, args...)
}

func (f *filter) where() string {
	if len(f.clauses) == 0 {
		return ""
	}
	out := " WHERE " + f.clauses[0]
	for _, c := range f.clauses[1:] {
		out += " AND " + c
	}
	return out
}
