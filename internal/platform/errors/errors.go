// Package errors carries the project error type: a client message, a machine code and an optional cause
// import it as perr
package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies an error for callers and for the HTTP layer
// values are append only
type ErrorCode uint16

const (
	ErrorCodeUnknown ErrorCode = iota
	ErrorCodePanic
	ErrorCodeUnavailable
	ErrorCodeTooManyRequests
	ErrorCodeInvalidArgument
	ErrorCodeValidation
	ErrorCodeJSON
	ErrorCodeNotFound
	ErrorCodeDuplicateKey
	ErrorCodeDB
	ErrorCodeMethodNotAllowed
	// ErrorCodeUpstream marks a failing external collaborator such as the inference engine
	ErrorCodeUpstream
)

var codes = [...]struct {
	name   string
	status int
}{
	ErrorCodeUnknown:          {"unknown", http.StatusInternalServerError},
	ErrorCodePanic:            {"panic", http.StatusInternalServerError},
	ErrorCodeUnavailable:      {"unavailable", http.StatusServiceUnavailable},
	ErrorCodeTooManyRequests:  {"too_many_requests", http.StatusTooManyRequests},
	ErrorCodeInvalidArgument:  {"invalid_argument", http.StatusUnprocessableEntity},
	ErrorCodeValidation:       {"validation", http.StatusBadRequest},
	ErrorCodeJSON:             {"json", http.StatusBadRequest},
	ErrorCodeNotFound:         {"not_found", http.StatusNotFound},
	ErrorCodeDuplicateKey:     {"duplicate_key", http.StatusConflict},
	ErrorCodeDB:               {"db", http.StatusInternalServerError},
	ErrorCodeMethodNotAllowed: {"method_not_allowed", http.StatusMethodNotAllowed},
	ErrorCodeUpstream:         {"upstream", http.StatusInternalServerError},
}

// String is the snake_case name used in logs
func (c ErrorCode) String() string {
	if int(c) < len(codes) {
		return codes[c].name
	}
	return fmt.Sprintf("code(%d)", uint16(c))
}

// Status maps the code to an HTTP status; unmapped codes are 500
func (c ErrorCode) Status() int {
	if int(c) < len(codes) {
		return codes[c].status
	}
	return http.StatusInternalServerError
}

// MsgUnhandled is what clients see for errors that are not ours
const MsgUnhandled = "Failed to process request"

// Error is the structured error. msg is safe to show a client; cause is not
type Error struct {
	code  ErrorCode
	msg   string
	field string
	op    string
	cause error
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.cause != nil:
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Code() ErrorCode { return e.code }

// Message is the client facing text without the cause
func (e *Error) Message() string { return e.msg }

func (e *Error) Field() string { return e.field }

func (e *Error) Op() string { return e.op }

// Wire is the JSON error body
// Details carries the cause and is only set for 5xx
type Wire struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// WireFrom renders any error as a Wire; foreign errors become MsgUnhandled
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	e, ok := As(err)
	if !ok {
		return Wire{Error: MsgUnhandled, Details: err.Error()}
	}
	w := Wire{Error: e.msg}
	if e.cause != nil && e.code.Status() >= http.StatusInternalServerError {
		w.Details = e.cause.Error()
	}
	return w
}

// HTTP returns the status and body a handler should write for err
func HTTP(err error) (int, Wire) {
	if err == nil {
		return http.StatusOK, Wire{}
	}
	return CodeOf(err).Status(), WireFrom(err)
}

// As finds the outermost *Error in the chain
func As(err error) (*Error, bool) {
	var e *Error
	ok := stderrs.As(err, &e)
	return e, ok
}

// CodeOf returns the code of the outermost *Error, Unknown otherwise
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// Root walks Unwrap to the innermost error
func Root(err error) error {
	for err != nil {
		next := stderrs.Unwrap(err)
		if next == nil {
			break
		}
		err = next
	}
	return err
}

// WithField returns a copy of err naming the offending input field
// errors that are not *Error pass through
func WithField(err error, field string) error {
	return amend(err, func(e *Error) { e.field = field })
}

// WithOp returns a copy of err tagged with the pipeline stage that failed
func WithOp(err error, op string) error {
	return amend(err, func(e *Error) { e.op = op })
}

func amend(err error, set func(*Error)) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	cp := *e
	set(&cp)
	return &cp
}

func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap keeps cause reachable through errors.Is/As
func Wrap(cause error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, cause: cause}
}

func Wrapf(cause error, code ErrorCode, format string, a ...any) error {
	return Wrap(cause, code, fmt.Sprintf(format, a...))
}

func InvalidArgf(format string, a ...any) error { return Newf(ErrorCodeInvalidArgument, format, a...) }
func JSONErrf(format string, a ...any) error    { return Newf(ErrorCodeJSON, format, a...) }
func PanicErrf(format string, a ...any) error   { return Newf(ErrorCodePanic, format, a...) }
func Upstreamf(format string, a ...any) error   { return Newf(ErrorCodeUpstream, format, a...) }
