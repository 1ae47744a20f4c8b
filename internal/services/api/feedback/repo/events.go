package repo

import (
	"context"
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"

	"feedbackd/internal/platform/config"
	"feedbackd/internal/platform/logger"
	"feedbackd/internal/platform/store"
)

// DefaultEventsTable is the ClickHouse table analytics rows go to
const DefaultEventsTable = "feedback_events"

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// Event is one analytics row written after a record is durable
type Event struct {
	FeedbackID int64
	Sentiment  string
	Summary    string
	Content    string
	Model      string
	Provider   string
	CreatedAt  time.Time
}

// Events is the best effort analytics sink
type Events interface {
	Record(ctx context.Context, ev Event) error
	Bootstrap(ctx context.Context) error
}

type chEvents struct {
	ch    store.Clickhouse
	table string
}

type nopEvents struct{}

func (nopEvents) Record(context.Context, Event) error { return nil }
func (nopEvents) Bootstrap(context.Context) error     { return nil }

// NewEvents returns a ClickHouse sink, or a no-op one when ch is nil
func NewEvents(ch store.Clickhouse, table string) Events {
	if ch == nil {
		return nopEvents{}
	}
	return &chEvents{ch: ch, table: table}
}

// EventsTable reads SERVICE_CLICKHOUSE_TABLE, falling back to the default on a bad identifier
func EventsTable(cfg config.Conf) string {
	c := cfg.Prefix("SERVICE_CLICKHOUSE_")
	t := c.MayString("TABLE", DefaultEventsTable)
	if !tableName.MatchString(t) {
		logger.Get().Warn().Str("key", c.Key("TABLE")).Str("value", t).Msg("invalid table name; using default")
		return DefaultEventsTable
	}
	return t
}

func (e *chEvents) Record(ctx context.Context, ev Event) error {
	row := []any{
		ev.FeedbackID,
		ev.Sentiment,
		uint32(utf8.RuneCountInString(ev.Summary)),
		uint32(utf8.RuneCountInString(ev.Content)),
		ev.Model,
		ev.Provider,
		ev.CreatedAt.UTC(),
	}
	return e.ch.Insert(ctx, e.table, [][]any{row})
}

func (e *chEvents) Bootstrap(ctx context.Context) error {
	return e.ch.Exec(ctx, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	feedback_id Int64,
	sentiment LowCardinality(String),
	summary_len UInt32,
	content_len UInt32,
	model String,
	provider LowCardinality(String),
	created_at DateTime64(3, 'UTC')
) ENGINE = MergeTree
ORDER BY (created_at, feedback_id)`, e.table))
}
