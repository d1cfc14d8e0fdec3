package ordermaint

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dsbender/ordermaint/internal/obs"
)

// EnableMetrics registers ordermaint's Prometheus counters and
// histogram (inserts, relabels, saturations, and relabel span, each
// labeled by backend name) with reg. It is safe to call more than
// once; only the first call takes effect. Callers who never call this
// incur no Prometheus registration overhead.
func EnableMetrics(reg prometheus.Registerer) {
	obs.EnableMetrics(reg)
}
