// Package metrics holds every Prometheus collector the service exports.
// All names live under the "notes" namespace; collectors register on the
// default registry and are served at /metrics.
package metrics

const namespace = "notes"

// Subsystems group collectors by the layer that updates them.
const (
	subsystemHTTP  = "http"
	subsystemDB    = "db"
	subsystemStore = "store"
	subsystemAuth  = "auth"
)

// Buckets for store round trips: most queries finish in single-digit
// milliseconds, the tail is network trouble.
var storeLatencyBuckets = []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}
