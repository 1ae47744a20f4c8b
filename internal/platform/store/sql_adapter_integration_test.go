//go:build integration_pg

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	tcpg "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func postgresDSN(t *testing.T) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	c, err := tcpg.Run(ctx, "postgres:16-alpine",
		tcpg.WithDatabase("feedback"),
		tcpg.WithUsername("feedbackd"),
		tcpg.WithPassword("feedbackd"),
		tc.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(2*time.Minute)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	dsn, err := c.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return dsn
}

func TestStore_Integration_PG(t *testing.T) {
	dsn := postgresDSN(t)
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	var events eventLog
	s, err := Open(ctx, Config{
		AppName: "feedbackd-store-it",
		Driver:  DriverPG,
		PG:      PGConfig{Enabled: true, URL: dsn, MaxConns: 2, SlowQueryMs: 1000},
	}, WithTracer(&events))
	require.NoError(t, err)
	defer func() { _ = s.Close(ctx) }()

	require.NoError(t, s.Guard(ctx))
	require.Equal(t, DriverPG, s.Driver)

	_, err = s.SQL.Exec(ctx, `CREATE TABLE IF NOT EXISTS it_feedback (id BIGSERIAL PRIMARY KEY, content TEXT NOT NULL)`)
	require.NoError(t, err)

	insert := `INSERT INTO it_feedback (content) VALUES ($1) RETURNING id`
	first, err := Scalar[int64](ctx, s.SQL, insert, "first")
	require.NoError(t, err)
	require.Equal(t, int64(1), first)

	rollback := errors.New("rollback")
	err = s.SQL.Tx(ctx, func(q RowQuerier) error {
		if _, err := Scalar[int64](ctx, q, insert, "discarded"); err != nil {
			return err
		}
		return rollback
	})
	require.ErrorIs(t, err, rollback)

	require.NoError(t, s.SQL.Tx(ctx, func(q RowQuerier) error {
		tag, err := q.Exec(ctx, `INSERT INTO it_feedback (content) VALUES ($1)`, "kept")
		if err == nil && tag.RowsAffected() != 1 {
			err = errors.New("expected one row")
		}
		return err
	}))

	rows, err := s.SQL.Query(ctx, `SELECT content FROM it_feedback ORDER BY id`)
	require.NoError(t, err)
	defer rows.Close()
	require.Equal(t, []string{"content"}, rows.Columns())
	var contents []string
	for rows.Next() {
		var c string
		require.NoError(t, rows.Scan(&c))
		contents = append(contents, c)
	}
	require.NoError(t, rows.Err())
	require.Equal(t, []string{"first", "kept"}, contents)

	require.NotEmpty(t, events.events)
}
