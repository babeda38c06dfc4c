// Package bridge defines the batch conversion of legacy CSS records into
// common object model values.
package bridge

import (
	"context"

	"github.com/gnames/cssbridge/pkg/coi"
	"github.com/prometheus/client_golang/prometheus"
)

// Bridge converts records of processing stages in batches. Problems of
// a single item are logged and counted in metrics, they never abort the
// whole batch.
type Bridge interface {
	// Detections reconciles arrivals of the current stage with the
	// previous stage. prevStage may be empty.
	Detections(ctx context.Context, stage, prevStage string, arids []int64) ([]Detection, error)

	// Origins converts location uncertainty, predictions, behaviors and
	// network magnitudes of origins of the stage.
	Origins(ctx context.Context, stage string, orids []int64) ([]Origin, error)

	// Metrics returns the registry with conversion counters.
	Metrics() *prometheus.Registry

	// WriteMetrics saves metrics in Prometheus text format.
	WriteMetrics(path string) error
}

// Detection is a reconciled signal detection with full hypotheses of
// the current stage.
type Detection struct {
	Arid            int64                           `json:"arid"`
	SignalDetection coi.SignalDetection             `json:"signalDetection"`
	Hypotheses      []coi.SignalDetectionHypothesis `json:"hypotheses,omitempty"`
}

// Origin holds everything converted for one orid.
type Origin struct {
	Orid                int64                          `json:"orid"`
	Location            coi.EventLocation              `json:"location"`
	LocationUncertainty *coi.LocationUncertainty       `json:"locationUncertainty,omitempty"`
	Predictions         []coi.FeaturePrediction        `json:"featurePredictions,omitempty"`
	Behaviors           []coi.LocationBehavior         `json:"locationBehaviors,omitempty"`
	Magnitudes          []coi.NetworkMagnitudeSolution `json:"networkMagnitudeSolutions,omitempty"`
}

// Output is the document written by the convert command.
type Output struct {
	Stage         string      `json:"stage"`
	PreviousStage string      `json:"previousStage,omitempty"`
	Detections    []Detection `json:"detections"`
	Origins       []Origin    `json:"origins,omitempty"`
}
