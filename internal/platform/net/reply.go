package net

import (
	"net/http"

	perr "feedbackd/internal/platform/errors"
)

// Failure builds the status and JSON error body for err
// transports that cannot use the platform http helpers (middleware, recover) share this
func Failure(err error) (int, perr.Wire) {
	if err == nil {
		return http.StatusOK, perr.Wire{}
	}
	return perr.HTTP(err)
}

// Panic builds the reply for a recovered panic
func Panic() (int, perr.Wire) {
	return Failure(perr.Wrap(perr.PanicErrf("panic recovered"), perr.ErrorCodePanic, perr.MsgUnhandled))
}
