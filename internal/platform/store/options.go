package store

import (
	"errors"

	"feedbackd/internal/platform/logger"
	"feedbackd/internal/platform/store/sqltrace"
)

// Option adjusts the Store before Open dials anything
type Option func(*Store) error

// WithLogger routes subclient logs and the LOG_SQL tracer through log
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}

// WithTracer receives every SQL statement regardless of the LOG_SQL flags
func WithTracer(t sqltrace.Tracer) Option {
	return func(s *Store) error {
		if t == nil {
			return errors.New("store: nil tracer")
		}
		s.tracer = t
		return nil
	}
}
