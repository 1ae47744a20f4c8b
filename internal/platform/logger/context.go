package logger

import (
	"context"

	"github.com/rs/zerolog"
)

type ctxKey int

const (
	requestIDKey ctxKey = iota
	stageKey
	loggerKey
)

func withValue(ctx context.Context, k ctxKey, v string) context.Context {
	if v == "" {
		return ctx
	}
	return context.WithValue(ctx, k, v)
}

func value(ctx context.Context, k ctxKey) string {
	s, _ := ctx.Value(k).(string)
	return s
}

// WithRequest stores the request id so every pipeline log line can carry it
func WithRequest(ctx context.Context, reqID string) context.Context {
	return withValue(ctx, requestIDKey, reqID)
}

// WithStage records the pipeline stage (validate, analyze, normalize, store)
func WithStage(ctx context.Context, stage string) context.Context {
	return withValue(ctx, stageKey, stage)
}

// RequestID is the id set by WithRequest, or ""
func RequestID(ctx context.Context) string { return value(ctx, requestIDKey) }

// Attach makes l the logger C returns for ctx, a disabled one included
func Attach(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey, &l)
}

// C is the logger for ctx plus request_id and stage fields. It is the one set by
// Attach, else one attached with zerolog's WithContext, else the root
func C(ctx context.Context) *Logger {
	base, _ := ctx.Value(loggerKey).(*Logger)
	if base == nil {
		base = zerolog.Ctx(ctx)
		if base.GetLevel() == zerolog.Disabled {
			base = Get()
		}
	}
	zc := base.With()
	if id := value(ctx, requestIDKey); id != "" {
		zc = zc.Str("request_id", id)
	}
	if st := value(ctx, stageKey); st != "" {
		zc = zc.Str("stage", st)
	}
	l := zc.Logger()
	return &l
}
