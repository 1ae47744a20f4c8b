package store

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebind(t *testing.T) {
	cases := []struct{ in, want string }{
		{"SELECT 1", "SELECT 1"},
		{"INSERT INTO Feedback (a, b) VALUES ($1, $2) RETURNING id", "INSERT INTO Feedback (a, b) VALUES (?1, ?2) RETURNING id"},
		{"SELECT '$1', $1", "SELECT '$1', ?1"},
		{`SELECT "col$2" FROM t WHERE x = $12`, `SELECT "col$2" FROM t WHERE x = ?12`},
		{"SELECT $ FROM t", "SELECT $ FROM t"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Rebind(c.in), c.in)
	}
}

func TestSQLiteAdapter_Sqlmock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	a := NewSQLite(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO Feedback (content) VALUES (?1) RETURNING id")).
		WithArgs("hello").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(9)))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM Feedback WHERE id = ?1")).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := Scalar[int64](ctx, a, "INSERT INTO Feedback (content) VALUES ($1) RETURNING id", "hello")
	require.NoError(t, err)
	assert.Equal(t, int64(9), id)

	ct, err := a.Exec(ctx, "DELETE FROM Feedback WHERE id = $1", int64(9))
	require.NoError(t, err)
	assert.Equal(t, int64(1), ct.RowsAffected())
	assert.Equal(t, "DELETE 1", ct.String())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteAdapter_TxRollbackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	a := NewSQLite(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO Feedback").WillReturnError(errors.New("database is locked"))
	mock.ExpectRollback()

	err = a.Tx(ctx, func(q RowQuerier) error {
		return ExecOne(ctx, q, "INSERT INTO Feedback (content) VALUES ($1)", "x")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is locked")

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO Feedback").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
	require.NoError(t, a.Tx(ctx, func(q RowQuerier) error {
		return ExecOne(ctx, q, "INSERT INTO Feedback (content) VALUES ($1)", "y")
	}))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteAdapter_RealDatabase(t *testing.T) {
	ctx := context.Background()
	rec := &traceRecorder{}

	s, err := Open(ctx, Config{
		Driver: DriverSQLite,
		SQLite: SQLiteConfig{Path: filepath.Join(t.TempDir(), "feedback.db")},
	})
	require.NoError(t, err)
	defer func() { require.NoError(t, s.Close(ctx)) }()

	a, ok := s.SQL.(*sqliteAdapter)
	require.True(t, ok)
	a.tracer, a.slowMs = rec, -1

	require.NoError(t, s.Guard(ctx))

	_, err = s.SQL.Exec(ctx, `CREATE TABLE Feedback (id INTEGER PRIMARY KEY AUTOINCREMENT, content TEXT NOT NULL, sentiment TEXT NOT NULL)`)
	require.NoError(t, err)

	for _, c := range []string{"one", "two"} {
		_, err := Scalar[int64](ctx, s.SQL, `INSERT INTO Feedback (content, sentiment) VALUES ($1, $2) RETURNING id`, c, "Neutral")
		require.NoError(t, err)
	}

	got, err := Many(ctx, s.SQL, func(r Row) (string, error) {
		var c string
		return c, r.Scan(&c)
	}, `SELECT content FROM Feedback WHERE sentiment = $1 ORDER BY id`, "Neutral")
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, got)

	n, err := One(ctx, s.SQL, func(r Row) (int64, error) {
		var n int64
		return n, r.Scan(&n)
	}, `SELECT count(*) FROM Feedback`)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = One(ctx, s.SQL, func(r Row) (string, error) { return "", nil }, `SELECT content FROM Feedback WHERE id = $1`, 999)
	assert.Error(t, err)

	assert.NotEmpty(t, rec.events)
	for _, ev := range rec.events {
		assert.Equal(t, DriverSQLite, ev.Driver)
		assert.False(t, ev.Slow)
	}
}
