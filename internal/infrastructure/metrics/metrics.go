// Package metrics exposes Prometheus collectors for the profile flows.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder implements application.MutationObserver and HTTP request counting.
type Recorder struct {
	Registry  *prometheus.Registry
	mutations *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	requests  *prometheus.CounterVec
}

// New builds a Recorder on its own registry so tests can create several.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		Registry: reg,
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "profile_mutations_total",
			Help: "Profile mutation flows by operation and outcome.",
		}, []string{"op", "result"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "profile_mutation_duration_seconds",
			Help:    "Time spent in a mutation flow, including simulated latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"method", "route", "code"}),
	}
	reg.MustRegister(r.mutations, r.latency, r.requests)
	return r
}

func (r *Recorder) ObserveMutation(op string, ok bool, took time.Duration) {
	result := "ok"
	if !ok {
		result = "error"
	}
	r.mutations.WithLabelValues(op, result).Inc()
	r.latency.WithLabelValues(op).Observe(took.Seconds())
}

func (r *Recorder) ObserveRequest(method, route string, code int) {
	r.requests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
}
