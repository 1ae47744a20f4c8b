package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	perr "feedbackd/internal/platform/errors"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalar_PG(t *testing.T) {
	mock, a, _ := newMockPG(t)
	defer mock.Close()
	ctx := context.Background()

	mock.ExpectQuery("SELECT count").WillReturnRows(pgxmock.NewRows([]string{"n"}).AddRow(int64(7)))
	mock.ExpectQuery("SELECT count").WillReturnError(errors.New("boom"))
	mock.ExpectQuery("SELECT id").WillReturnRows(pgxmock.NewRows([]string{"id"}))

	n, err := Scalar[int64](ctx, a, "SELECT count(*) FROM Feedback")
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)

	n, err = Scalar[int64](ctx, a, "SELECT count(*) FROM Feedback")
	assert.EqualError(t, err, "boom")
	assert.Zero(t, n)

	_, err = Scalar[int64](ctx, a, "SELECT id FROM Feedback WHERE id = $1", 99)
	assert.True(t, perr.IsCode(err, perr.ErrorCodeNotFound), "err = %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScalar_SQLiteNoRows(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, Config{Driver: DriverSQLite, SQLite: SQLiteConfig{Path: filepath.Join(t.TempDir(), "s.db")}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(ctx) })

	_, err = Scalar[string](ctx, s.SQL, "SELECT 'x' WHERE 1 = $1", 0)
	assert.True(t, perr.IsCode(err, perr.ErrorCodeNotFound), "err = %v", err)

	got, err := Scalar[string](ctx, s.SQL, "SELECT 'x' WHERE 1 = $1", 1)
	require.NoError(t, err)
	assert.Equal(t, "x", got)
}
