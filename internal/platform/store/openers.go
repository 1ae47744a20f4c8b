package store

import (
	"context"
	"fmt"
	"time"

	chx "feedbackd/internal/platform/store/ch"
	"feedbackd/internal/platform/store/pg"
	"feedbackd/internal/platform/store/sqlite"
	"feedbackd/internal/platform/store/sqltrace"
)

// seams for tests
var (
	openPGClient     = pg.Open
	openSQLiteClient = sqlite.Open
	openCHClient     = chx.Open
	sleep            = time.Sleep
)

const (
	defaultPGAttempts    = 20
	defaultPGPingTimeout = 3 * time.Second
	backoffStart         = 150 * time.Millisecond
	backoffCeiling       = 2 * time.Second
)

// openPG dials the pool and waits for postgres to answer a ping
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	p, err := openPGClient(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
		AppName:  cfg.AppName,
	}, s.sqlTracer(cfg.PG.LogSQL, DriverPG), nil)
	if err != nil {
		return nil, err
	}

	attempts := cfg.PG.ConnectRetries
	if attempts <= 0 {
		attempts = defaultPGAttempts
	}
	timeout := cfg.PG.PingTimeout
	if timeout <= 0 {
		timeout = defaultPGPingTimeout
	}

	// the pool is pinged directly so boot retries stay out of the sql trace
	if err := waitReady(ctx, s, "postgres", attempts, timeout, p.Pool.Ping); err != nil {
		p.Close()
		return nil, err
	}
	return newPGAdapter(p), nil
}

// waitReady calls ping up to attempts times with exponential backoff between tries
func waitReady(ctx context.Context, s *Store, name string, attempts int, timeout time.Duration, ping func(context.Context) error) error {
	var err error
	backoff := backoffStart
	for attempt := 1; ; attempt++ {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		err = ping(pctx)
		cancel()
		switch {
		case err == nil:
			return nil
		case ctx.Err() != nil:
			return ctx.Err()
		case attempt >= attempts:
			return fmt.Errorf("%s ping failed after %d attempts: %w", name, attempts, err)
		}
		s.Log.Warn().Err(err).Int("attempt", attempt).Dur("backoff", backoff).Msgf("%s not ready", name)
		sleep(backoff)
		backoff = min(backoff*2, backoffCeiling)
	}
}

func openSQLite(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	db, err := openSQLiteClient(ctx, sqlite.Config{
		Path:        cfg.SQLite.Path,
		BusyTimeout: cfg.SQLite.BusyTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite open %q: %w", cfg.SQLite.Path, err)
	}
	return newSQLiteAdapter(db.DB, s.sqlTracer(cfg.SQLite.LogSQL, DriverSQLite), cfg.SQLite.SlowQueryMs), nil
}

// sqlTracer prefers a WithTracer hook, then the zerolog tracer when logSQL is on
func (s *Store) sqlTracer(logSQL bool, driver string) sqltrace.Tracer {
	switch {
	case s.tracer != nil:
		return s.tracer
	case logSQL:
		return sqltrace.Zerolog(s.Log, driver)
	default:
		return nil
	}
}

func openCH(ctx context.Context, cfg Config) (Clickhouse, error) {
	c, err := openCHClient(ctx, chx.Config{URL: cfg.CH.URL, Role: cfg.CH.ClientName, Tag: cfg.CH.ClientTag})
	if err != nil {
		return nil, fmt.Errorf("clickhouse: %w", err)
	}
	return c, nil
}
