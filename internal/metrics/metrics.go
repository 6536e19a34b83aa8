// internal/metrics/metrics.go
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics instruments the capture loop.
// Owns its registry so multiple instances can coexist in tests.
type Metrics struct {
	reg *prometheus.Registry

	Samples    prometheus.Counter
	Alerts     prometheus.Counter
	IdlePolls  prometheus.Counter
	ReadErrors prometheus.Counter
}

// New creates and registers the instrument set.
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		Samples: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "simtemp_samples_total",
			Help: "Telemetry records decoded from the device.",
		}),
		Alerts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "simtemp_alerts_total",
			Help: "Records with the threshold-crossed flag set.",
		}),
		IdlePolls: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "simtemp_idle_polls_total",
			Help: "Readiness waits that returned without a record.",
		}),
		ReadErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "simtemp_read_errors_total",
			Help: "Wait or read failures on the telemetry stream.",
		}),
	}

	m.reg.MustRegister(m.Samples, m.Alerts, m.IdlePolls, m.ReadErrors)

	return m
}

// Handler exposes the registry in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
