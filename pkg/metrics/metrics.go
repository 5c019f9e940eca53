package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics ledger action counters and latency on a private registry
type Metrics struct {
	actions   *prometheus.CounterVec
	durations *prometheus.HistogramVec
	requests  *prometheus.CounterVec
	registry  *prometheus.Registry
}

// New new metrics under the namespace
func New(namespace string) *Metrics {
	if namespace == "" {
		namespace = "ledger"
	}

	registry := prometheus.NewRegistry()
	actions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "actions_total",
		Help:      "Total ledger actions by result.",
	}, []string{"action", "result"})
	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "action_duration_seconds",
		Help:      "Duration of ledger actions in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"action"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by route and status.",
	}, []string{"route", "method", "status"})
	registry.MustRegister(actions, durations, requests)

	return &Metrics{
		actions:   actions,
		durations: durations,
		requests:  requests,
		registry:  registry,
	}
}

// ObserveAction record one action, result is "ok" or the error name
func (m *Metrics) ObserveAction(action, result string, start time.Time) {
	if m == nil {
		return
	}

	m.actions.WithLabelValues(action, result).Inc()
	m.durations.WithLabelValues(action).Observe(time.Since(start).Seconds())
}

// Middleware count requests of the route
func (m *Metrics) Middleware(route string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m == nil {
				next.ServeHTTP(w, r)
				return
			}

			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)
			m.requests.WithLabelValues(route, r.Method, http.StatusText(recorder.status)).Inc()
		})
	}
}

// Handler expose the registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry underlying prometheus registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}
