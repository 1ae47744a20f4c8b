package errors

import (
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const sqlStateUndefinedTable = "42P01"

func pgError(err error) *pgconn.PgError {
	var pe *pgconn.PgError
	if stderrs.As(err, &pe) {
		return pe
	}
	return nil
}

// SQLState is the Postgres SQLSTATE carried by err, "" when err did not come from Postgres
func SQLState(err error) string {
	if pe := pgError(err); pe != nil {
		return pe.Code
	}
	return ""
}

// SQLStateClass is the two character class of SQLState, e.g. "23" for integrity violations
func SQLStateClass(err error) string {
	s := SQLState(err)
	if len(s) < 2 {
		return ""
	}
	return s[:2]
}

// IsUndefinedTable reports a missing relation on either backend, usually a skipped bootstrap
func IsUndefinedTable(err error) bool {
	if err == nil {
		return false
	}
	if SQLState(err) == sqlStateUndefinedTable {
		return true
	}
	// sqlite only says so in the message
	return strings.Contains(strings.ToLower(Root(err).Error()), "no such table")
}
