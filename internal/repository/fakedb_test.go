package repository

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"

	"talent-match/internal/database"
)

type fakeCall struct {
	query string
	args  []any
}

// fakeDB replays scripted rows and records every statement.
type fakeDB struct {
	calls    []fakeCall
	rows     [][]any
	rowErr   error
	queryErr error
	affected int64
	execErr  error
}

func (f *fakeDB) Ping(context.Context) error { return nil }
func (f *fakeDB) Close() error               { return nil }
func (f *fakeDB) SQLDB() *sql.DB             { return nil }

func (f *fakeDB) Begin(context.Context) (database.Tx, error) {
	return nil, fmt.Errorf("not supported")
}

func (f *fakeDB) Exec(_ context.Context, query string, args ...any) (int64, error) {
	f.calls = append(f.calls, fakeCall{query: query, args: args})
	return f.affected, f.execErr
}

func (f *fakeDB) Query(_ context.Context, query string, args ...any) (database.Rows, error) {
	f.calls = append(f.calls, fakeCall{query: query, args: args})
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return &fakeRows{rows: f.rows, i: -1}, nil
}

func (f *fakeDB) QueryRow(_ context.Context, query string, args ...any) database.Row {
	f.calls = append(f.calls, fakeCall{query: query, args: args})
	if f.rowErr != nil {
		return fakeRow{err: f.rowErr}
	}
	if len(f.rows) == 0 {
		return fakeRow{err: sql.ErrNoRows}
	}
	return fakeRow{vals: f.rows[0]}
}

type fakeRows struct {
	rows [][]any
	i    int
}

func (r *fakeRows) Close()     {}
func (r *fakeRows) Err() error { return nil }

func (r *fakeRows) Next() bool {
	r.i++
	return r.i < len(r.rows)
}

func (r *fakeRows) Scan(dest ...any) error {
	return assign(dest, r.rows[r.i])
}

type fakeRow struct {
	vals []any
	err  error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assign(dest, r.vals)
}

func assign(dest []any, vals []any) error {
	if len(dest) != len(vals) {
		return fmt.Errorf("scan: %d destinations for %d values", len(dest), len(vals))
	}
	for i, d := range dest {
		target := reflect.ValueOf(d).Elem()
		if vals[i] == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		target.Set(reflect.ValueOf(vals[i]))
	}
	return nil
}
