package iobridge

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Reasons of skipped items, used as the "reason" label.
const (
	reasonMissingArrival = "missing_arrival"
	reasonMissingOrigin  = "missing_origin"
	reasonMissingOrigerr = "missing_origerr"
	reasonDetection      = "detection_failed"
	reasonHypothesis     = "hypothesis_failed"
	reasonUncertainty    = "uncertainty_failed"
	reasonPrediction     = "prediction_failed"
	reasonMagnitude      = "magnitude_failed"
	metricsNamespace     = "cssbridge"
)

type metrics struct {
	reg        *prometheus.Registry
	detections prometheus.Counter
	hypotheses prometheus.Counter
	origins    prometheus.Counter
	skipped    *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		reg: prometheus.NewRegistry(),
		detections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "detections_total",
			Help:      "Signal detections converted.",
		}),
		hypotheses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "hypotheses_total",
			Help:      "Full signal detection hypotheses converted.",
		}),
		origins: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "origins_total",
			Help:      "Origins converted.",
		}),
		skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "skipped_total",
			Help:      "Items left out of the results, by reason.",
		}, []string{"reason"}),
	}
	m.reg.MustRegister(m.detections, m.hypotheses, m.origins, m.skipped)
	return m
}

func (m *metrics) skip(reason string) {
	m.skipped.WithLabelValues(reason).Inc()
}
