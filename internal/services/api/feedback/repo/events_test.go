package repo

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"feedbackd/internal/platform/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCH struct {
	table string
	rows  [][]any
	ddl   []string
	err   error
}

func (f *fakeCH) Insert(_ context.Context, table string, rows [][]any) error {
	f.table = table
	f.rows = append(f.rows, rows...)
	return f.err
}

func (f *fakeCH) Exec(_ context.Context, sql string, _ ...any) error {
	f.ddl = append(f.ddl, sql)
	return f.err
}

func (f *fakeCH) Ping(context.Context) error { return nil }
func (f *fakeCH) Close() error               { return nil }

func TestEvents_Record(t *testing.T) {
	ch := &fakeCH{}
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.FixedZone("X", 3600))
	ev := NewEvents(ch, "events")

	require.NoError(t, ev.Record(context.Background(), Event{
		FeedbackID: 9,
		Sentiment:  "Negative",
		Summary:    "Slow login.",
		Content:    "héllo",
		Model:      "@cf/meta/llama-3-8b-instruct",
		Provider:   "workersai",
		CreatedAt:  at,
	}))

	assert.Equal(t, "events", ch.table)
	require.Len(t, ch.rows, 1)
	assert.Equal(t, []any{int64(9), "Negative", uint32(11), uint32(5), "@cf/meta/llama-3-8b-instruct", "workersai", at.UTC()}, ch.rows[0])
}

func TestEvents_BootstrapAndErrors(t *testing.T) {
	ch := &fakeCH{}
	require.NoError(t, NewEvents(ch, "analytics.feedback_events").Bootstrap(context.Background()))
	require.Len(t, ch.ddl, 1)
	assert.True(t, strings.HasPrefix(ch.ddl[0], "CREATE TABLE IF NOT EXISTS analytics.feedback_events ("))
	assert.Contains(t, ch.ddl[0], "ENGINE = MergeTree")

	ch.err = errors.New("ch down")
	assert.EqualError(t, NewEvents(ch, "t").Record(context.Background(), Event{}), "ch down")
}

func TestEvents_NilIsNoop(t *testing.T) {
	ev := NewEvents(nil, "ignored")
	assert.NoError(t, ev.Record(context.Background(), Event{}))
	assert.NoError(t, ev.Bootstrap(context.Background()))
}

func TestEventsTable(t *testing.T) {
	assert.Equal(t, DefaultEventsTable, EventsTable(config.New()))

	t.Setenv("SERVICE_CLICKHOUSE_TABLE", "analytics.fb_events")
	assert.Equal(t, "analytics.fb_events", EventsTable(config.New()))

	t.Setenv("SERVICE_CLICKHOUSE_TABLE", "events; DROP TABLE x")
	assert.Equal(t, DefaultEventsTable, EventsTable(config.New()))
}
