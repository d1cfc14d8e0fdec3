// Package obs wires the structured logging and metrics shared by the
// tagrange and listrange backends; the naive backends do not record
// through it.
//
// sirupsen/logrus carries the rare, structured, leveled diagnostics
// emitted around relabeling and saturation, and prometheus/client_golang
// carries the counters and histogram. Registration is opt-in and lazy:
// a caller who never calls EnableMetrics pays nothing beyond the cost
// of the counter/histogram objects themselves.
package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// Log is the package-level entry every backend logs through.
var Log = logrus.StandardLogger().WithField("component", "ordermaint")

var (
	insertsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ordermaint_inserts_total",
		Help: "Number of Insert operations performed, by backend.",
	}, []string{"backend"})

	relabelsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ordermaint_relabels_total",
		Help: "Number of relabel/re-space passes performed, by backend.",
	}, []string{"backend"})

	saturationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ordermaint_saturations_total",
		Help: "Number of Insert calls that failed with a saturation error, by backend.",
	}, []string{"backend"})

	relabelSpan = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ordermaint_relabel_span",
		Help:    "Number of nodes touched by a single relabel pass, by backend.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 16),
	}, []string{"backend"})
)

var (
	registerOnce sync.Once
	registered   bool
)

// EnableMetrics registers ordermaint's counters and histogram with
// reg. Safe to call more than once or from more than one backend; only
// the first call takes effect.
func EnableMetrics(reg prometheus.Registerer) {
	registerOnce.Do(func() {
		reg.MustRegister(insertsTotal, relabelsTotal, saturationsTotal, relabelSpan)
		registered = true
	})
}

// RecordInsert logs and, if metrics are enabled, counts a completed
// Insert for backend.
func RecordInsert(backend string) {
	Log.WithField("backend", backend).Trace("insert")
	if registered {
		insertsTotal.WithLabelValues(backend).Inc()
	}
}

// RecordRelabel logs and, if metrics are enabled, records a relabel
// pass that touched span nodes.
func RecordRelabel(backend string, span int) {
	Log.WithFields(logrus.Fields{"backend": backend, "span": span}).Debug("relabel")
	if registered {
		relabelsTotal.WithLabelValues(backend).Inc()
		relabelSpan.WithLabelValues(backend).Observe(float64(span))
	}
}

// RecordSaturation logs and, if metrics are enabled, counts a
// saturated Insert for backend.
func RecordSaturation(backend string, occupancy int) {
	Log.WithFields(logrus.Fields{"backend": backend, "occupancy": occupancy}).Warn("saturated")
	if registered {
		saturationsTotal.WithLabelValues(backend).Inc()
	}
}
