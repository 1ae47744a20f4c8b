// Package store opens the configured storage backends behind small seams
// a relational store (postgres or sqlite) for records and an optional clickhouse sink
package store

import (
	"context"
	"errors"
	"fmt"

	"feedbackd/internal/platform/logger"
	"feedbackd/internal/platform/store/sqltrace"
)

// Values accepted by Config.Driver
const (
	DriverPG     = "pg"
	DriverSQLite = "sqlite"
)

// Row is a single result row
type Row interface {
	Scan(dest ...any) error
}

// Rows is a result set; Close is idempotent
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

// CommandTag reports what a statement did
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the statement surface repositories write against
// queries use $n placeholders on every driver
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner is a RowQuerier that can also run fn in a transaction
// fn returning an error rolls back
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Clickhouse is the columnar sink; *ch.CH implements it
type Clickhouse interface {
	Insert(ctx context.Context, table string, rows [][]any) error
	Exec(ctx context.Context, sql string, args ...any) error
	Ping(ctx context.Context) error
	Close() error
}

// Store holds whichever backends Config enabled; disabled ones stay nil
type Store struct {
	Log logger.Logger

	SQL    TxRunner
	Driver string // backend behind SQL

	CH Clickhouse

	tracer sqltrace.Tracer
}

// Open dials every backend cfg enables; on failure nothing is left open
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{Log: logger.Nop()}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}

	var err error
	switch cfg.Driver {
	case "", DriverPG:
		if cfg.PG.Enabled {
			s.SQL, err = openPG(ctx, cfg, s)
			s.Driver = DriverPG
		}
	case DriverSQLite:
		s.SQL, err = openSQLite(ctx, cfg, s)
		s.Driver = DriverSQLite
	default:
		return nil, fmt.Errorf("store: unknown driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if cfg.CH.Enabled {
		if s.CH, err = openCH(ctx, cfg); err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
	}
	return s, nil
}

type pinger interface{ Ping(context.Context) error }

// Guard pings every open backend and joins the failures, each prefixed with its name
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("store: nil store")
	}
	var errs []error
	check := func(name string, p pinger) {
		if err := p.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	if p, ok := s.SQL.(pinger); ok {
		check(s.Driver, p)
	}
	if s.CH != nil {
		check("ch", s.CH)
	}
	return errors.Join(errs...)
}

// Ping is Guard, so a Store can serve as a readiness probe
func (s *Store) Ping(ctx context.Context) error { return s.Guard(ctx) }

// Close releases every open backend
func (s *Store) Close(context.Context) error {
	if s == nil {
		return nil
	}
	var errs []error
	if s.CH != nil {
		errs = append(errs, s.CH.Close())
	}
	if c, ok := s.SQL.(interface{ Close() error }); ok {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
