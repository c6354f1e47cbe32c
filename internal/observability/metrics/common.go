package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DomainErrorsTotal counts every domain error that reached the HTTP
	// boundary. Code is the stable DomainError code, not the message.
	DomainErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "domain_errors_total",
			Help:      "Domain errors returned to clients",
		},
		[]string{"category", "code", "status"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystemStore,
			Name:      "breaker_open",
			Help:      "1 while the named store breaker rejects calls, else 0",
		},
		[]string{"name"},
	)

	CircuitBreakerFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemStore,
			Name:      "breaker_failures_total",
			Help:      "Store failures counted by the named breaker",
		},
		[]string{"name"},
	)
)
