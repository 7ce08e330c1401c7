package store

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotOneRow is returned by ExecOne when a write touched zero or several rows
var ErrNotOneRow = errors.New("store: expected exactly one row affected")

// ExecOne runs a write that must affect exactly one row
func ExecOne(ctx context.Context, q RowQuerier, sql string, args ...any) error {
	t, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if n := t.RowsAffected(); n != 1 {
		return fmt.Errorf("%w (got %d)", ErrNotOneRow, n)
	}
	return nil
}

// Scalar scans the first column of the first row into T
func Scalar[T any](ctx context.Context, q RowQuerier, sql string, args ...any) (T, error) {
	var v T
	if err := q.QueryRow(ctx, sql, args...).Scan(&v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// Many maps every row through scan, in result order
func Many[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) ([]T, error) {
	rs, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rs.Close()

	out := []T{}
	for rs.Next() {
		item, err := scan(rs)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rs.Err()
}

// EnsureSchema applies idempotent DDL statements in one transaction
func EnsureSchema(ctx context.Context, q TxRunner, ddl ...string) error {
	if len(ddl) == 0 {
		return nil
	}
	return q.Tx(ctx, func(tx RowQuerier) error {
		for i, stmt := range ddl {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("store: schema statement %d: %w", i, err)
			}
		}
		return nil
	})
}
