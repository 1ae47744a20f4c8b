// Package metrics owns the process prometheus registry and the feedbackd collectors
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "feedbackd"

// Submission outcomes, one per terminal branch of the pipeline
const (
	OutcomeSaved          = "saved"
	OutcomeInvalid        = "invalid"
	OutcomeAnalysisFailed = "analysis_failed"
	OutcomeStorageFailed  = "storage_failed"
)

// Metrics bundles the collectors; all methods are nil safe so tests can pass nil
type Metrics struct {
	reg *prometheus.Registry

	submissions  *prometheus.CounterVec
	sentiments   *prometheus.CounterVec
	analysis     *prometheus.HistogramVec
	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
	sinkFailures prometheus.Counter
}

// New builds a private registry with go and process collectors plus ours
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		reg: reg,
		submissions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Feedback submissions by outcome",
		}, []string{"outcome"}),
		sentiments: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sentiment_total",
			Help:      "Stored feedback by normalized sentiment",
		}, []string{"label"}),
		analysis: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Inference round trip including extraction",
			Buckets:   []float64{.1, .25, .5, 1, 2, 4, 8, 16, 32},
		}, []string{"provider"}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method and status",
		}, []string{"method", "status"}),
		httpLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		sinkFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_sink_failures_total",
			Help:      "Analytics rows that could not be written",
		}),
	}
}

// Registry exposes the underlying registry (tests gather from it)
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.reg
}

// Handler serves the registry in the prometheus text format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// Submission counts one terminal outcome
func (m *Metrics) Submission(outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome).Inc()
}

// Sentiment counts one stored label
func (m *Metrics) Sentiment(label string) {
	if m == nil {
		return
	}
	m.sentiments.WithLabelValues(label).Inc()
}

// Analysis records an analyzer round trip
func (m *Metrics) Analysis(provider string, d time.Duration) {
	if m == nil {
		return
	}
	m.analysis.WithLabelValues(provider).Observe(d.Seconds())
}

// HTTP matches middleware.AccessLogOptions.Observe
func (m *Metrics) HTTP(method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(method).Observe(elapsed.Seconds())
}

// SinkFailure counts a dropped analytics row
func (m *Metrics) SinkFailure() {
	if m == nil {
		return
	}
	m.sinkFailures.Inc()
}
