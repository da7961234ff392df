package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRecord(t *testing.T) {
	m := MustNewMetrics(prometheus.NewRegistry())

	m.ObserveRequest("/v1/results", "POST", 200, 5*time.Millisecond)
	m.ObserveRequest("/v1/results", "POST", 400, time.Millisecond)
	m.ObserveRequest("/v1/results", "POST", 404, time.Millisecond)
	m.IncComputation("results", "exact")
	m.IncMemo("results", true)
	m.IncMemo("results", false)
	m.IncSessionEvent("created")
	m.IncConnections()
	m.IncConnections()
	m.DecConnections()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("/v1/results", "POST", "2xx")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("/v1/results", "POST", "4xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.computations.WithLabelValues("results", "exact")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.memo.WithLabelValues("results", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.memo.WithLabelValues("results", "miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sessions.WithLabelValues("created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.wsConnections))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRequest("/", "GET", 200, time.Millisecond)
		m.IncComputation("results", "ok")
		m.IncMemo("results", true)
		m.IncSessionEvent("created")
		m.IncConnections()
		m.DecConnections()
	})
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	MustNewMetrics(reg)
	assert.Panics(t, func() { MustNewMetrics(reg) })
}
