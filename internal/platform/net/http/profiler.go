package http

import (
	stdhttp "net/http"

	pstrings "feedbackd/internal/platform/strings"

	mw "github.com/go-chi/chi/v5/middleware"
)

// MountProfiler exposes chi's pprof handlers below base (GET base redirects to the index)
// nothing is mounted when on is false
func MountProfiler(r Router, base string, on bool) {
	if !on {
		return
	}
	base = pstrings.MustPrefix(base)
	r.Handle(base+"/*", stdhttp.StripPrefix(base, mw.Profiler()))
	r.Method(stdhttp.MethodGet, base, stdhttp.RedirectHandler(base+"/pprof/", stdhttp.StatusFound).ServeHTTP)
}
