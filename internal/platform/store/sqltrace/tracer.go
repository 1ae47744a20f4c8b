// Package sqltrace logs SQL statements issued by the store adapters
package sqltrace

import (
	"context"
	"strings"
	"time"

	"feedbackd/internal/platform/logger"

	"github.com/rs/zerolog"
)

// Event describes one finished statement
type Event struct {
	Driver    string
	SQL       string
	Args      any
	ElapsedUS int64
	Err       error
	Slow      bool
}

// Tracer receives statement events
type Tracer interface {
	OnQuery(ctx context.Context, ev Event)
}

// Zerolog returns a tracer that always prints statements, independent of the root level
func Zerolog(root logger.Logger, driver string) Tracer {
	ll := root.Level(zerolog.DebugLevel).With().Str("component", "sql").Str("driver", driver).Logger()
	return &zlTracer{log: ll}
}

type zlTracer struct{ log logger.Logger }

func (z *zlTracer) OnQuery(_ context.Context, ev Event) {
	evt := z.log.Info()
	if ev.Slow {
		evt = z.log.Warn()
	}
	evt.Float64("elapsed_ms", float64(ev.ElapsedUS)/1000.0).
		Bool("slow", ev.Slow).
		Str("sql", compact(ev.SQL)).
		Interface("args", ev.Args).
		Err(ev.Err).
		Msg("sql query")
}

// Emit reports a statement that started at start; nil tracers are ignored
// slowMs < 0 disables slow marking
func Emit(ctx context.Context, t Tracer, driver string, slowMs int, sql string, args []any, start time.Time, err error) {
	if t == nil {
		return
	}
	us := time.Since(start).Microseconds()
	t.OnQuery(ctx, Event{
		Driver:    driver,
		SQL:       sql,
		Args:      args,
		ElapsedUS: us,
		Err:       err,
		Slow:      slowMs >= 0 && us >= int64(slowMs)*1000,
	})
}

func compact(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		switch r {
		case '\n', '\t', '\r', ' ':
			if !space {
				b.WriteByte(' ')
				space = true
			}
			continue
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}
