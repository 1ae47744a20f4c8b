// Package sqlite opens a local SQLite database through the pure Go modernc driver
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// Config configures the sqlite database file
type Config struct {
	// Path is a file path or ":memory:"
	Path string
	// BusyTimeout is how long a writer waits on a locked database
	BusyTimeout time.Duration
}

// DB is an open sqlite handle
type DB struct {
	*sql.DB
	Path string
}

var openDB = sql.Open

// DSN builds the modernc connection string with our pragmas
func DSN(cfg Config) string {
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		path = "feedback.db"
	}
	busy := cfg.BusyTimeout
	if busy <= 0 {
		busy = 5 * time.Second
	}
	q := url.Values{}
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busy.Milliseconds()))
	q.Add("_pragma", "foreign_keys(1)")
	if path != ":memory:" {
		q.Add("_pragma", "journal_mode(WAL)")
	}
	return "file:" + path + "?" + q.Encode()
}

// Open opens and pings the database
// a single connection serializes writers, which sqlite requires anyway
func Open(ctx context.Context, cfg Config) (*DB, error) {
	db, err := openDB("sqlite", DSN(cfg))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &DB{DB: db, Path: cfg.Path}, nil
}
