package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCountersAndHistograms(t *testing.T) {
	m := New()

	m.Submission(OutcomeSaved)
	m.Submission(OutcomeSaved)
	m.Submission(OutcomeInvalid)
	m.Sentiment("Positive")
	m.SinkFailure()
	m.Analysis("workersai", 300*time.Millisecond)
	m.HTTP(http.MethodPost, 200, 10*time.Millisecond)

	if got := testutil.ToFloat64(m.submissions.WithLabelValues(OutcomeSaved)); got != 2 {
		t.Fatalf("saved = %v", got)
	}
	if got := testutil.ToFloat64(m.submissions.WithLabelValues(OutcomeInvalid)); got != 1 {
		t.Fatalf("invalid = %v", got)
	}
	if got := testutil.ToFloat64(m.sentiments.WithLabelValues("Positive")); got != 1 {
		t.Fatalf("positive = %v", got)
	}
	if got := testutil.ToFloat64(m.sinkFailures); got != 1 {
		t.Fatalf("sink failures = %v", got)
	}
	if got := testutil.ToFloat64(m.httpRequests.WithLabelValues("POST", "200")); got != 1 {
		t.Fatalf("http = %v", got)
	}
	if n := testutil.CollectAndCount(m.analysis); n != 1 {
		t.Fatalf("analysis series = %d", n)
	}
}

func TestHandlerExposesNamespace(t *testing.T) {
	m := New()
	m.Submission(OutcomeStorageFailed)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `feedbackd_submissions_total{outcome="storage_failed"} 1`) {
		t.Fatalf("missing series in:\n%s", body)
	}
	if !strings.Contains(string(body), "go_goroutines") {
		t.Fatalf("go collector not registered")
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.Submission(OutcomeSaved)
	m.Sentiment("Neutral")
	m.Analysis("x", time.Second)
	m.HTTP("GET", 200, time.Millisecond)
	m.SinkFailure()
	if m.Registry() != nil {
		t.Fatalf("nil registry expected")
	}
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}
