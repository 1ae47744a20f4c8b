// Package repo persists feedback records on the configured SQL backend
package repo

import (
	"context"

	"feedbackd/internal/modkit/repokit"
	"feedbackd/internal/platform/store"
	"feedbackd/internal/services/api/feedback/domain"
)

// Repo defines the repository contract for feedback
type Repo interface {
	// Insert appends one record and returns the id assigned by the database
	Insert(ctx context.Context, rec domain.Record) (int64, error)
	// Bootstrap creates the Feedback table when missing
	Bootstrap(ctx context.Context) error
}

const insertSQL = `INSERT INTO Feedback (content, sentiment, summary, created_at) VALUES ($1, $2, $3, $4) RETURNING id`

const pgDDL = `CREATE TABLE IF NOT EXISTS Feedback (
	id BIGSERIAL PRIMARY KEY,
	content TEXT NOT NULL,
	sentiment TEXT NOT NULL,
	summary TEXT NOT NULL,
	created_at TEXT NOT NULL
)`

const sqliteDDL = `CREATE TABLE IF NOT EXISTS Feedback (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	content TEXT NOT NULL,
	sentiment TEXT NOT NULL,
	summary TEXT NOT NULL,
	created_at TEXT NOT NULL
)`

type (
	// PG binds the Postgres dialect
	PG struct{}

	// SQLite binds the sqlite dialect
	SQLite struct{}

	queries struct {
		q   repokit.Queryer
		ddl string
	}
)

// Dialects returns the binder per store driver
func Dialects() repokit.Dialects[Repo] {
	return repokit.Dialects[Repo]{
		store.DriverPG:     PG{},
		store.DriverSQLite: SQLite{},
	}
}

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// NewSQLite creates a new sqlite repository binder
func NewSQLite() repokit.Binder[Repo] { return SQLite{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q, ddl: pgDDL} }

// Bind binds a sqlite queryer to the Repo implementation
func (SQLite) Bind(q repokit.Queryer) Repo { return &queries{q: q, ddl: sqliteDDL} }

func (r *queries) Insert(ctx context.Context, rec domain.Record) (int64, error) {
	return store.Scalar[int64](ctx, r.q, insertSQL, rec.Content, string(rec.Sentiment), rec.Summary, rec.CreatedAt)
}

func (r *queries) Bootstrap(ctx context.Context) error {
	_, err := r.q.Exec(ctx, r.ddl)
	return err
}
