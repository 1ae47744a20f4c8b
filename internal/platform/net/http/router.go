package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler is a plain handler func
type Handler = func(http.ResponseWriter, *http.Request)

// Router is what modules mount routes on; AdaptChi provides the only implementation
type Router interface {
	Get(path string, h Handler)
	Post(path string, h Handler)
	// Method registers h for one verb
	Method(method, path string, h Handler)
	// Handle registers h for every verb
	Handle(path string, h http.Handler)

	NotFound(h Handler)
	MethodNotAllowed(h Handler)

	Use(mw ...func(http.Handler) http.Handler)
	// Group shares the parent's path but gets its own middleware stack
	Group(fn func(Router))
	// Route mounts a sub router under pattern
	Route(pattern string, fn func(Router))

	Mux() http.Handler
}

// AdaptChi wraps a chi root mux, group or sub router
func AdaptChi(r chi.Router) Router { return chiRouter{r} }

type chiRouter struct{ chi.Router }

func (c chiRouter) Get(p string, h Handler)                   { c.Router.Get(p, h) }
func (c chiRouter) Post(p string, h Handler)                  { c.Router.Post(p, h) }
func (c chiRouter) Method(m, p string, h Handler)             { c.Router.MethodFunc(m, p, h) }
func (c chiRouter) NotFound(h Handler)                        { c.Router.NotFound(h) }
func (c chiRouter) MethodNotAllowed(h Handler)                { c.Router.MethodNotAllowed(h) }
func (c chiRouter) Handle(p string, h http.Handler)           { c.Router.Handle(p, h) }
func (c chiRouter) Mux() http.Handler                         { return c.Router }
func (c chiRouter) Use(mw ...func(http.Handler) http.Handler) { c.Router.Use(mw...) }

func (c chiRouter) Group(fn func(Router)) {
	c.Router.Group(func(sub chi.Router) { fn(chiRouter{sub}) })
}

func (c chiRouter) Route(pattern string, fn func(Router)) {
	c.Router.Route(pattern, func(sub chi.Router) { fn(chiRouter{sub}) })
}
