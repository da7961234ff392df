package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "creative_mastery"

// Metrics exposes the Prometheus collectors for the quiz service
type Metrics struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	computations    *prometheus.CounterVec
	memo            *prometheus.CounterVec
	sessions        *prometheus.CounterVec
	wsConnections   prometheus.Gauge
}

// MustNewMetrics registers the collectors with reg and panics on a conflicting registration.
// Tests pass a fresh prometheus.NewRegistry().
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "HTTP requests by route, method and status code.",
			},
			[]string{"route", "method", "code"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency by route.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		computations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "engine",
				Name:      "computations_total",
				Help:      "Engine invocations by operation and outcome label.",
			},
			[]string{"operation", "outcome"},
		),
		memo: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "engine",
				Name:      "memo_lookups_total",
				Help:      "Memoized engine lookups by operation and result.",
			},
			[]string{"operation", "result"},
		),
		sessions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "sessions",
				Name:      "events_total",
				Help:      "Quiz session lifecycle events.",
			},
			[]string{"event"},
		),
		wsConnections: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "ws",
				Name:      "connections",
				Help:      "Open websocket connections.",
			},
		),
	}

	collectors := []prometheus.Collector{m.requests, m.requestDuration, m.computations, m.memo, m.sessions, m.wsConnections}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			panic(err)
		}
	}
	return m
}

// ObserveRequest records one finished HTTP request
func (m *Metrics) ObserveRequest(route, method string, code int, d time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, method, statusLabel(code)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(d.Seconds())
}

// IncComputation counts an engine call; outcome is a match kind or "ok"
func (m *Metrics) IncComputation(operation, outcome string) {
	if m == nil {
		return
	}
	m.computations.WithLabelValues(operation, outcome).Inc()
}

// IncMemo counts a memo hit or miss
func (m *Metrics) IncMemo(operation string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.memo.WithLabelValues(operation, result).Inc()
}

// IncSessionEvent counts created, answered, completed or deleted sessions
func (m *Metrics) IncSessionEvent(event string) {
	if m == nil {
		return
	}
	m.sessions.WithLabelValues(event).Inc()
}

func (m *Metrics) IncConnections() {
	if m == nil {
		return
	}
	m.wsConnections.Inc()
}

func (m *Metrics) DecConnections() {
	if m == nil {
		return
	}
	m.wsConnections.Dec()
}

func statusLabel(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
