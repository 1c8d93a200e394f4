package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/emberwatch/emberwatch/pkg/types"
	"github.com/emberwatch/emberwatch/server/internal/store"
)

// Metrics holds the server's Prometheus collectors on a private registry.
// A nil *Metrics is valid and turns every method into a no-op, so callers
// (and tests) can leave instrumentation out.
type Metrics struct {
	registry *prometheus.Registry
	accepted *prometheus.CounterVec
	rejected prometheus.Counter
}

// New builds the collectors and registers the store-derived gauges.
func New(st *store.Store) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		accepted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "emberwatch_readings_accepted_total",
			Help: "Readings accepted by the validator, by status.",
		}, []string{"status"}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "emberwatch_readings_rejected_total",
			Help: "Submissions rejected by the validator.",
		}),
	}

	m.registry.MustRegister(m.accepted, m.rejected)
	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "emberwatch_history_size",
		Help: "Current number of readings in the history log.",
	}, func() float64 { return float64(st.Size()) }))
	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "emberwatch_danger_state",
		Help: "1 when the latest reading is danger, 0 otherwise.",
	}, func() float64 {
		if latest, ok := st.Latest(); ok && latest.Status == types.StatusDanger {
			return 1
		}
		return 0
	}))

	// Pre-create the status series so they exist before the first reading.
	m.accepted.WithLabelValues(types.StatusDanger)
	m.accepted.WithLabelValues(types.StatusNormal)

	return m
}

// ReadingAccepted counts one accepted reading for its status.
func (m *Metrics) ReadingAccepted(status string) {
	if m == nil {
		return
	}
	m.accepted.WithLabelValues(status).Inc()
}

// ReadingRejected counts one rejected submission.
func (m *Metrics) ReadingRejected() {
	if m == nil {
		return
	}
	m.rejected.Inc()
}

// Handler returns the exposition endpoint for this registry. A nil
// receiver gets a 404 handler, matching the no-op behavior of the counters.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
