// Package pg opens a pgx pool for the relational store
package pg

import (
	"context"
	"fmt"

	"feedbackd/internal/platform/store/sqltrace"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Config is what the store passes down from its env config
type Config struct {
	URL      string
	MaxConns int32 // 0 keeps the pgxpool default
	SlowMs   int
	AppName  string // reported as application_name in pg_stat_activity
}

// Pool is the part of *pgxpool.Pool the store needs; pgxmock pools satisfy it
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// PG bundles a pool with the tracing settings the sql adapter applies
type PG struct {
	Pool   Pool
	Tracer sqltrace.Tracer
	SlowMs int
}

var newPool = func(ctx context.Context, cfg *pgxpool.Config) (Pool, error) {
	p, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Open parses cfg.URL and creates the pool without waiting for the server
// tune, when set, may adjust the parsed pool config last
func Open(ctx context.Context, cfg Config, tracer sqltrace.Tracer, tune func(*pgxpool.Config)) (*PG, error) {
	pc, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("pg: parse url: %w", err)
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	if cfg.AppName != "" {
		pc.ConnConfig.RuntimeParams["application_name"] = cfg.AppName
	}
	if tune != nil {
		tune(pc)
	}

	pool, err := newPool(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("pg: new pool: %w", err)
	}
	return New(pool, tracer, cfg.SlowMs), nil
}

// New wraps an open pool
func New(pool Pool, tracer sqltrace.Tracer, slowMs int) *PG {
	return &PG{Pool: pool, Tracer: tracer, SlowMs: slowMs}
}

func (p *PG) Close() {
	if p == nil || p.Pool == nil {
		return
	}
	p.Pool.Close()
}
