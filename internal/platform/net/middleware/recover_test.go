package middleware_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "feedbackd/internal/platform/errors"
	"feedbackd/internal/platform/logger"
	pnet "feedbackd/internal/platform/net"
	"feedbackd/internal/platform/net/middleware"
)

func TestRecoverJSON_WritesErrorBody(t *testing.T) {
	h := middleware.RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req = req.WithContext(pnet.WithRequest(req.Context(), "rid-1"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status %d", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") != "rid-1" {
		t.Fatalf("request id header not mirrored")
	}
	var body perr.Wire
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != perr.MsgUnhandled || body.Details != "panic recovered" {
		t.Fatalf("body %+v", body)
	}
}

func TestRecoverJSON_LogsWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Options{Format: "json", Writer: &buf})
	h := middleware.RequestLogger(middleware.RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	})))

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req = req.WithContext(pnet.WithRequest(l.WithContext(req.Context()), "rid-2"))
	h.ServeHTTP(httptest.NewRecorder(), req)

	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("log line: %q", buf.String())
	}
	if line["request_id"] != "rid-2" || line["panic"] != "kaboom" || line["path"] != "/boom" || line["stack"] == "" {
		t.Fatalf("line = %v", line)
	}
}

func TestRecoverJSON_PassThrough(t *testing.T) {
	h := middleware.RecoverJSON(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status %d", rec.Code)
	}
}

func TestRecoverJSON_RepanicsAbortHandler(t *testing.T) {
	h := middleware.RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	defer func() {
		if v := recover(); v != http.ErrAbortHandler {
			t.Fatalf("expected ErrAbortHandler to propagate, got %v", v)
		}
	}()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}
