package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StoreBackend is an info-style gauge: the configured backend label is
	// set to 1 at startup.
	StoreBackend = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystemStore,
			Name:      "backend_info",
			Help:      "Configured persistence backend",
		},
		[]string{"backend"},
	)

	// DBQueryDurationSeconds covers both postgres tables and mongo
	// collections; "table" carries either.
	DBQueryDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystemDB,
			Name:      "query_duration_seconds",
			Help:      "Store round trip time by operation",
			Buckets:   storeLatencyBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemDB,
			Name:      "query_errors_total",
			Help:      "Failed store calls by operation and error kind",
		},
		[]string{"operation", "table", "error_type"},
	)

	// Pool gauges are postgres only, refreshed by db.StartPoolMetrics.
	DBPoolAcquiredConnections = poolGauge("acquired_connections", "Connections checked out of the pool")
	DBPoolIdleConnections     = poolGauge("idle_connections", "Idle connections held by the pool")
	DBPoolMaxConnections      = poolGauge("max_connections", "Configured pool size")
	DBPoolTotalConnections    = poolGauge("total_connections", "Connections currently open")
)

func poolGauge(name, help string) prometheus.Gauge {
	return promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystemDB,
		Name:      "pool_" + name,
		Help:      help,
	})
}
