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

// Registry holds all portal metrics
type Registry struct {
	gatherer prometheus.Gatherer

	// Backend API client
	BackendRequests *prometheus.CounterVec
	BackendLatency  *prometheus.HistogramVec

	// Navigation guard
	GuardDecisions *prometheus.CounterVec

	// Hangman
	HangmanFinished *prometheus.CounterVec

	// Inbound HTTP, labelled by mux route template
	HTTPRequests *prometheus.CounterVec
	HTTPLatency  *prometheus.HistogramVec
}

// New creates a Registry backed by its own prometheus registry, so that
// several instances can coexist in one test binary.
func New() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	return newRegistry(reg, reg)
}

func newRegistry(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Registry {
	factory := promauto.With(reg)
	r := &Registry{gatherer: gatherer}

	r.BackendRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_backend_requests_total",
		Help: "Requests sent to the game backend",
	}, []string{"method", "route", "status"})

	r.BackendLatency = factory.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "portal_backend_request_duration_seconds",
		Help:    "Game backend request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	r.GuardDecisions = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_guard_decisions_total",
		Help: "Navigation guard outcomes per route",
	}, []string{"route", "outcome"})

	r.HangmanFinished = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_hangman_games_finished_total",
		Help: "Hangman games that reached a terminal status",
	}, []string{"status"})

	r.HTTPRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_http_requests_total",
		Help: "HTTP requests served",
	}, []string{"component", "method", "route", "status"})

	r.HTTPLatency = factory.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "portal_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"component", "method", "route"})

	return r
}

// RecordBackendRequest records one backend call. status is 0 when the
// request never produced a response.
func (r *Registry) RecordBackendRequest(method, route string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	r.BackendRequests.WithLabelValues(method, route, statusString(status)).Inc()
	r.BackendLatency.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordGuardDecision records whether a navigation was allowed or redirected
func (r *Registry) RecordGuardDecision(route, outcome string) {
	if r == nil {
		return
	}
	r.GuardDecisions.WithLabelValues(route, outcome).Inc()
}

// RecordHangmanFinished records a game reaching the given status
func (r *Registry) RecordHangmanFinished(status string) {
	if r == nil {
		return
	}
	r.HangmanFinished.WithLabelValues(status).Inc()
}

// RecordHTTPRequest records one request served by component ("web" or "backend")
func (r *Registry) RecordHTTPRequest(component, method, route string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	r.HTTPRequests.WithLabelValues(component, method, route, strconv.Itoa(status)).Inc()
	r.HTTPLatency.WithLabelValues(component, method, route).Observe(duration.Seconds())
}

// Handler serves the registry in the Prometheus exposition format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}

func statusString(status int) string {
	if status == 0 {
		return "error"
	}
	return strconv.Itoa(status)
}
