package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"feedbackd/internal/platform/store/sqltrace"
)

// sqlConn is what *sql.DB and *sql.Tx have in common
type sqlConn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// sqliteAdapter implements TxRunner over database/sql
// statements are written with $n placeholders and rebound to ?n
type sqliteAdapter struct {
	db     *sql.DB
	tracer sqltrace.Tracer
	slowMs int
}

func newSQLiteAdapter(db *sql.DB, tracer sqltrace.Tracer, slowMs int) *sqliteAdapter {
	return &sqliteAdapter{db: db, tracer: tracer, slowMs: slowMs}
}

// NewSQLite wraps an open *sql.DB (tests use it with go-sqlmock)
func NewSQLite(db *sql.DB) TxRunner { return newSQLiteAdapter(db, nil, -1) }

func (a *sqliteAdapter) Ping(ctx context.Context) error {
	if a == nil || a.db == nil {
		return errors.New("sqlite: nil adapter")
	}
	return a.db.PingContext(ctx)
}

func (a *sqliteAdapter) Close() error { return a.db.Close() }

func (a *sqliteAdapter) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	return execSQL(ctx, a.db, a.tracer, a.slowMs, sql, args)
}

func (a *sqliteAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	return querySQL(ctx, a.db, a.tracer, a.slowMs, sql, args)
}

func (a *sqliteAdapter) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return queryRowSQL(ctx, a.db, a.tracer, a.slowMs, sql, args)
}

func (a *sqliteAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(sqlTxQuerier{tx: tx, tracer: a.tracer, slowMs: a.slowMs}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type sqlTxQuerier struct {
	tx     *sql.Tx
	tracer sqltrace.Tracer
	slowMs int
}

func (t sqlTxQuerier) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	return execSQL(ctx, t.tx, t.tracer, t.slowMs, sql, args)
}

func (t sqlTxQuerier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	return querySQL(ctx, t.tx, t.tracer, t.slowMs, sql, args)
}

func (t sqlTxQuerier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return queryRowSQL(ctx, t.tx, t.tracer, t.slowMs, sql, args)
}

func execSQL(ctx context.Context, c sqlConn, tr sqltrace.Tracer, slowMs int, q string, args []any) (CommandTag, error) {
	q = Rebind(q)
	start := time.Now()
	res, err := c.ExecContext(ctx, q, args...)
	sqltrace.Emit(ctx, tr, DriverSQLite, slowMs, q, args, start, err)
	if err != nil {
		return sqlTag{verb: verbOf(q)}, err
	}
	n, _ := res.RowsAffected()
	return sqlTag{verb: verbOf(q), n: n}, nil
}

func querySQL(ctx context.Context, c sqlConn, tr sqltrace.Tracer, slowMs int, q string, args []any) (Rows, error) {
	q = Rebind(q)
	start := time.Now()
	rs, err := c.QueryContext(ctx, q, args...)
	sqltrace.Emit(ctx, tr, DriverSQLite, slowMs, q, args, start, err)
	if err != nil {
		return nil, err
	}
	return sqlRows{r: rs}, nil
}

func queryRowSQL(ctx context.Context, c sqlConn, tr sqltrace.Tracer, slowMs int, q string, args []any) Row {
	q = Rebind(q)
	start := time.Now()
	r := c.QueryRowContext(ctx, q, args...)
	return sqlRow{r: r, after: func(err error) {
		sqltrace.Emit(ctx, tr, DriverSQLite, slowMs, q, args, start, err)
	}}
}

type sqlRow struct {
	r     *sql.Row
	after func(error)
}

func (x sqlRow) Scan(dst ...any) error {
	err := x.r.Scan(dst...)
	if x.after != nil {
		x.after(err)
	}
	return err
}

type sqlRows struct{ r *sql.Rows }

func (x sqlRows) Next() bool            { return x.r.Next() }
func (x sqlRows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x sqlRows) Err() error            { return x.r.Err() }
func (x sqlRows) Close()                { _ = x.r.Close() }
func (x sqlRows) Columns() []string {
	cols, _ := x.r.Columns()
	return cols
}

// sqlTag mimics the pg command tag text, e.g. "INSERT 1"
type sqlTag struct {
	verb string
	n    int64
}

func (t sqlTag) String() string      { return fmt.Sprintf("%s %d", t.verb, t.n) }
func (t sqlTag) RowsAffected() int64 { return t.n }

func verbOf(q string) string {
	f := strings.Fields(q)
	if len(f) == 0 {
		return ""
	}
	return strings.ToUpper(f[0])
}

// Rebind rewrites $n placeholders to sqlite's ?n, leaving quoted text alone
func Rebind(q string) string {
	if !strings.Contains(q, "$") {
		return q
	}
	var b strings.Builder
	b.Grow(len(q))
	var quote byte
	for i := 0; i < len(q); i++ {
		c := q[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '$' && i+1 < len(q) && q[i+1] >= '0' && q[i+1] <= '9':
			c = '?'
		}
		b.WriteByte(c)
	}
	return b.String()
}
