// Package http is the transport layer: a chi backed router seam, return style handlers and the server
package http

import (
	"encoding/json"
	"net/http"

	perr "feedbackd/internal/platform/errors"
	"feedbackd/internal/platform/logger"
)

// Response is what a return style handler produces
// an error Body picks its own status and is rendered as perr.Wire
type Response struct {
	Status int
	Body   any
	Header http.Header
}

func OK(body any) Response { return Response{Status: http.StatusOK, Body: body} }

func Error(err error) Response { return Response{Body: err} }

// Result turns a (value, error) pair into a Response; a Response value passes through untouched
func Result(v any, err error) Response {
	if err != nil {
		return Error(err)
	}
	if resp, ok := v.(Response); ok {
		return resp
	}
	return OK(v)
}

// Handle adapts a return style handler
func Handle(fn func(*http.Request) Response) Handler {
	return func(w http.ResponseWriter, r *http.Request) { fn(r).writeTo(w, r) }
}

func (resp Response) writeTo(w http.ResponseWriter, r *http.Request) {
	for k, vs := range resp.Header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}

	if err, ok := resp.Body.(error); ok && err != nil {
		status, wire := perr.HTTP(err)
		ev := logger.C(r.Context()).Debug()
		if status >= http.StatusInternalServerError {
			ev = logger.C(r.Context()).Error()
		}
		ev.Err(err).Int("status", status).Str("code", perr.CodeOf(err).String()).Msg("request failed")
		writeJSON(w, status, wire)
		return
	}

	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	if status == http.StatusNoContent {
		w.WriteHeader(status)
		return
	}
	writeJSON(w, status, resp.Body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
