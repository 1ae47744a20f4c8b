package store

import (
	"context"
	"errors"
	"time"

	"feedbackd/internal/platform/store/pg"
	"feedbackd/internal/platform/store/sqltrace"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgConn is what a pool and a pgx.Tx have in common
type pgConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgQuerier runs statements on conn and reports each one to the tracer
type pgQuerier struct {
	conn   pgConn
	tracer sqltrace.Tracer
	slowMs int
}

func (q pgQuerier) trace(ctx context.Context, sql string, args []any, start time.Time, err error) {
	sqltrace.Emit(ctx, q.tracer, DriverPG, q.slowMs, sql, args, start, err)
}

func (q pgQuerier) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	start := time.Now()
	ct, err := q.conn.Exec(ctx, sql, args...)
	q.trace(ctx, sql, args, start, err)
	return ct, err
}

func (q pgQuerier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := q.conn.Query(ctx, sql, args...)
	q.trace(ctx, sql, args, start, err)
	if err != nil {
		return nil, err
	}
	return pgRows{rs}, nil
}

// QueryRow defers the trace until Scan so the scan error is part of the event
func (q pgQuerier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	start := time.Now()
	r := q.conn.QueryRow(ctx, sql, args...)
	return scanHook{Row: r, done: func(err error) { q.trace(ctx, sql, args, start, err) }}
}

// pgAdapter implements TxRunner over pg.PG
type pgAdapter struct {
	pgQuerier
	p *pg.PG
}

func newPGAdapter(p *pg.PG) *pgAdapter {
	return &pgAdapter{pgQuerier: pgQuerier{conn: p.Pool, tracer: p.Tracer, slowMs: p.SlowMs}, p: p}
}

// NewPG wraps an already opened pg client (tests use it with pgxmock)
func NewPG(p *pg.PG) TxRunner { return newPGAdapter(p) }

func (a *pgAdapter) Ping(ctx context.Context) error {
	if a == nil || a.p == nil || a.p.Pool == nil {
		return errors.New("pg: nil adapter")
	}
	return a.p.Pool.Ping(ctx)
}

func (a *pgAdapter) Close() error { a.p.Close(); return nil }

// Tx commits when fn returns nil and rolls back otherwise
func (a *pgAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.p.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(pgQuerier{conn: tx, tracer: a.tracer, slowMs: a.slowMs}); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

// scanHook reports the Scan outcome once it is known
type scanHook struct {
	Row
	done func(error)
}

func (s scanHook) Scan(dst ...any) error {
	err := s.Row.Scan(dst...)
	s.done(err)
	return err
}

// pgRows adds Columns to pgx.Rows
type pgRows struct{ pgx.Rows }

func (r pgRows) Columns() []string {
	fields := r.FieldDescriptions()
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}
	return names
}
