// Package swaggerkit serves the embedded OpenAPI document and a Swagger UI over it
package swaggerkit

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"net/http"

	phttp "feedbackd/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Base is where the UI lives; the document is Base + "/doc.json"
const Base = "/api/docs"

//go:embed openapi.json
var document []byte

var etag = func() string {
	sum := sha256.Sum256(document)
	return `"` + hex.EncodeToString(sum[:8]) + `"`
}()

// Mount registers the docs routes on r; a disabled mount registers nothing
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	docURL := Base + "/doc.json"
	r.Get(Base, func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, Base+"/", http.StatusPermanentRedirect)
	})
	r.Get(docURL, serveDocument)
	r.Handle(Base+"/*", httpSwagger.Handler(
		httpSwagger.URL(docURL),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))
}

func serveDocument(w http.ResponseWriter, r *http.Request) {
	h := w.Header()
	h.Set("ETag", etag)
	h.Set("Cache-Control", "no-cache")
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	h.Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write(document)
}
