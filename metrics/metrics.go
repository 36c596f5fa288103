// Package metrics counts decode outcomes for long running captures.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "attmon"

type Metrics struct {
	Registry *prometheus.Registry

	PDUs          *prometheus.CounterVec
	DecodeErrors  *prometheus.CounterVec
	PendingReads  prometheus.Gauge
	EvictedReads  prometheus.Counter
	MatchedReads  prometheus.Counter
	Connections   prometheus.Gauge
	CaptureFrames *prometheus.CounterVec
}

// New registers a fresh set of collectors on their own registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		PDUs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pdus_total",
			Help:      "ATT PDUs decoded, by opcode name.",
		}, []string{"opcode"}),
		DecodeErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decode_errors_total",
			Help:      "Error markers emitted while decoding, by reason.",
		}, []string{"reason"}),
		PendingReads: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pending_reads",
			Help:      "Read requests waiting for a response across all connections.",
		}),
		EvictedReads: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pending_reads_evicted_total",
			Help:      "Read requests dropped because a connection hit its pending read cap.",
		}),
		MatchedReads: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pending_reads_matched_total",
			Help:      "Read responses correlated with a request.",
		}),
		Connections: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connections",
			Help:      "Connections with decoder state.",
		}),
		CaptureFrames: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "capture_frames_total",
			Help:      "HCI packets read from the capture source, by packet type.",
		}, []string{"type"}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
