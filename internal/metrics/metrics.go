// Package metrics holds the Prometheus instruments of the server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "liftrank"

type Manager struct {
	// counters
	CounterRequests        *prometheus.CounterVec
	CounterSessions        *prometheus.CounterVec
	CounterSets            *prometheus.CounterVec
	CounterPersonalRecords prometheus.Counter
	CounterCalculations    *prometheus.CounterVec

	// gauges
	GaugeActiveSessions prometheus.Gauge

	// histograms
	HistRequestDuration prometheus.Histogram
	HistSessionDuration prometheus.Histogram

	reg prometheus.Registerer
}

// SetupPrometheus returns a registry with the Go runtime, process and build
// collectors plus any extra collectors.
func SetupPrometheus(extra ...prometheus.Collector) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	reg.MustRegister(extra...)
	return reg
}

func NewTestManager() *Manager {
	return NewManager("test", prometheus.NewRegistry())
}

func NewManager(subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	return &Manager{
		CounterRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "requests_total",
			Help:      "The total number of incoming requests",
		}, []string{"method", "status"}),
		CounterSessions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "sessions_total",
			Help:      "Workout sessions by outcome",
		}, []string{"outcome"}),
		CounterSets: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "sets_total",
			Help:      "Logged sets, completed or skipped",
		}, []string{"kind"}),
		CounterPersonalRecords: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "personal_records_total",
			Help:      "Personal records set in finished sessions",
		}),
		CounterCalculations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "calculations_total",
			Help:      "Calculator requests by kind",
		}, []string{"kind"}),
		GaugeActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "active_sessions",
			Help:      "Sessions currently in memory",
		}),
		HistRequestDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request_duration_seconds",
			Help:      "Total duration of requests in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		HistSessionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "session_duration_seconds",
			Help:      "Duration of finished sessions in seconds",
			Buckets:   []float64{600, 1200, 1800, 2700, 3600, 5400, 7200},
		}),
		reg: reg,
	}
}

// RegisterCacheStats exposes hit and miss counts reported by stats as gauges.
func (m *Manager) RegisterCacheStats(stats func() (hits, misses int64)) {
	factory := promauto.With(m.reg)
	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "recommendation_cache_hits",
		Help:      "Personal record cache hits",
	}, func() float64 {
		hits, _ := stats()
		return float64(hits)
	})
	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "recommendation_cache_misses",
		Help:      "Personal record cache misses",
	}, func() float64 {
		_, misses := stats()
		return float64(misses)
	})
}
