package watch

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// Metrics records reload outcomes of a Watcher.
type Metrics struct {
	reloads     *prom.CounterVec
	duration    prom.Histogram
	lastSuccess prom.Gauge
}

// Reload result label values.
const (
	ResultApplied   = "applied"
	ResultUnchanged = "unchanged"
	ResultFailed    = "failed"
)

// NewMetrics constructs the watcher metrics and registers them with reg.
func NewMetrics(reg prom.Registerer) *Metrics {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	m := &Metrics{
		reloads: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docsite",
			Name:      "config_reloads_total",
			Help:      "Configuration reload attempts by result",
		}, []string{"result"}),
		duration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "docsite",
			Name:      "config_reload_duration_seconds",
			Help:      "Time spent loading and applying a configuration",
			Buckets:   prom.DefBuckets,
		}),
		lastSuccess: prom.NewGauge(prom.GaugeOpts{
			Namespace: "docsite",
			Name:      "config_last_applied_timestamp_seconds",
			Help:      "Unix time of the last applied configuration",
		}),
	}
	reg.MustRegister(m.reloads, m.duration, m.lastSuccess)
	return m
}

func (m *Metrics) observe(result string, started time.Time) {
	if m == nil {
		return
	}
	m.reloads.WithLabelValues(result).Inc()
	m.duration.Observe(time.Since(started).Seconds())
	if result == ResultApplied {
		m.lastSuccess.SetToCurrentTime()
	}
}
