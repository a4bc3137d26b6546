// Package metrics exposes Prometheus instrumentation for a running
// gdbmi-live session: how many records of each kind have been parsed, how
// many lines failed to parse, and how full the framer's pending-line
// buffer is.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder holds the counters and gauges a parsing session reports to.
type Recorder struct {
	RecordsTotal        *prometheus.CounterVec
	ParseErrorsTotal    prometheus.Counter
	FramerBufferedBytes prometheus.Gauge
}

// NewRecorder registers a fresh set of metrics against reg. Pass
// prometheus.DefaultRegisterer to expose them on the default /metrics
// handler.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		RecordsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gdbmi",
			Name:      "records_total",
			Help:      "Number of GDB/MI records parsed, by record kind.",
		}, []string{"kind"}),
		ParseErrorsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "gdbmi",
			Name:      "parse_errors_total",
			Help:      "Number of lines that failed to parse as a GDB/MI record.",
		}),
		FramerBufferedBytes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "gdbmi",
			Name:      "framer_buffered_bytes",
			Help:      "Bytes currently held in the Framer's pending-line buffer.",
		}),
	}
}

// ObserveRecordKind increments the records_total counter for kind.
func (r *Recorder) ObserveRecordKind(kind string) {
	r.RecordsTotal.WithLabelValues(kind).Inc()
}

// ObserveParseError increments the parse_errors_total counter.
func (r *Recorder) ObserveParseError() {
	r.ParseErrorsTotal.Inc()
}

// SetBufferedBytes reports the Framer's current pending-byte count.
func (r *Recorder) SetBufferedBytes(n int) {
	r.FramerBufferedBytes.Set(float64(n))
}
