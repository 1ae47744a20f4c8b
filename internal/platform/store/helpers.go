package store

import (
	"context"
	"database/sql"
	"errors"

	perr "feedbackd/internal/platform/errors"

	"github.com/jackc/pgx/v5"
)

// Scalar scans the first column of the first row into T, e.g. INSERT ... RETURNING id
// an empty result is ErrorCodeNotFound whichever driver produced it
func Scalar[T any](ctx context.Context, q RowQuerier, query string, args ...any) (T, error) {
	var v T
	err := q.QueryRow(ctx, query, args...).Scan(&v)
	switch {
	case err == nil:
		return v, nil
	case errors.Is(err, pgx.ErrNoRows), errors.Is(err, sql.ErrNoRows):
		var zero T
		return zero, perr.Wrap(err, perr.ErrorCodeNotFound, "no rows")
	default:
		var zero T
		return zero, err
	}
}
