// Package httpkit is the handler toolkit modules use instead of importing the platform http package
package httpkit

import (
	"net/http"

	perr "feedbackd/internal/platform/errors"
	phttp "feedbackd/internal/platform/net/http"
	"feedbackd/internal/platform/net/http/bind"
)

type (
	Response    = phttp.Response
	Handler     = phttp.Handler
	Router      = phttp.Router
	JSONOptions = bind.JSONOptions
)

// MsgMethodNotAllowed is the 405 body text
const MsgMethodNotAllowed = "Method not allowed"

func OK(body any) Response { return phttp.OK(body) }

func Error(err error) Response { return phttp.Error(err) }

func Handle(fn func(*http.Request) Response) Handler { return phttp.Handle(fn) }

// Get mounts a body less GET handler; a returned Response is written as is
func Get(r Router, path string, fn func(*http.Request) (any, error)) {
	r.Get(path, phttp.Handle(func(req *http.Request) Response { return phttp.Result(fn(req)) }))
}

// Bind decodes and validates the body into T and leaves the reply to the caller
func Bind[T any](r *http.Request, opts ...JSONOptions) (T, error) {
	return bind.ParseJSON[T](r, opts...)
}

// RegisterNotBlank backs the `notblank` validate tag with blank
func RegisterNotBlank(blank func(string) bool) error {
	return bind.RegisterValidation("notblank", bind.NotBlank(blank))
}

// OnlyMethod answers every verb but method with a JSON 405 and an Allow header
// mount it with r.Handle so chi does not answer first
func OnlyMethod(method string, h Handler) http.Handler {
	refuse := phttp.Handle(func(*http.Request) Response {
		return Error(perr.New(perr.ErrorCodeMethodNotAllowed, MsgMethodNotAllowed))
	})
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == method {
			h(w, r)
			return
		}
		w.Header().Set("Allow", method)
		refuse(w, r)
	})
}
