package coi

import (
	"time"
)

// FeaturePredictionComponentType names a contribution to a predicted
// value.
type FeaturePredictionComponentType int

const (
	BaselinePrediction FeaturePredictionComponentType = iota
	StationCorrection
	EllipticityCorrection
	ElevationCorrection
	SourceDependentCorrection
)

var componentNames = []string{
	"BASELINE_PREDICTION",
	"STATION_CORRECTION",
	"ELLIPTICITY_CORRECTION",
	"ELEVATION_CORRECTION",
	"SOURCE_DEPENDENT_CORRECTION",
}

func (c FeaturePredictionComponentType) String() string {
	if int(c) < 0 || int(c) >= len(componentNames) {
		return "UNKNOWN"
	}
	return componentNames[c]
}

// MarshalText encodes FeaturePredictionComponentType by name.
func (c FeaturePredictionComponentType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// FeaturePredictionComponent is one additive part of a prediction.
type FeaturePredictionComponent struct {
	Type           FeaturePredictionComponentType `json:"featurePredictionComponentType"`
	Value          DoubleValue                    `json:"value"`
	IsExtrapolated bool                           `json:"extrapolated"`
}

// EventLocation is the hypocenter of an event.
type EventLocation struct {
	LatitudeDegrees  float64   `json:"latitudeDegrees"`
	LongitudeDegrees float64   `json:"longitudeDegrees"`
	DepthKm          float64   `json:"depthKm"`
	Time             time.Time `json:"time"`
}

// FeaturePrediction is a value predicted by a location solution for one
// feature measurement type.
type FeaturePrediction struct {
	Type           FeatureMeasurementType       `json:"predictionType"`
	Value          MeasurementValue             `json:"predictionValue"`
	Components     []FeaturePredictionComponent `json:"featurePredictionComponentSet"`
	Channel        *Channel                     `json:"channel,omitempty"`
	Phase          string                       `json:"phase"`
	SourceLocation EventLocation                `json:"sourceLocation"`
	Station        Station                      `json:"receiverStation"`
	Extrapolated   bool                         `json:"extrapolated"`
}

// NewFeaturePrediction creates a prediction making sure its value variant
// matches its type.
func NewFeaturePrediction(p FeaturePrediction) (FeaturePrediction, error) {
	kind := p.Type.ValueKind()
	if p.Value == nil || p.Value.Kind() != kind {
		return FeaturePrediction{}, MeasurementError(p.Type, "prediction value has a wrong kind")
	}
	if v, ok := p.Value.(NumericValue); ok {
		if err := checkNaN(namedFloat{"predictedValue", &v.Measured.Value}); err != nil {
			return FeaturePrediction{}, err
		}
	}
	p.Components = append([]FeaturePredictionComponent{}, p.Components...)
	return p, nil
}

// LocationBehavior links a feature measurement to at most one
// prediction.
type LocationBehavior struct {
	Measurement FeatureMeasurement `json:"measurement"`
	Prediction  *FeaturePrediction `json:"prediction,omitempty"`
	Residual    *float64           `json:"residual,omitempty"`
	Weight      *float64           `json:"weight,omitempty"`
	Defining    bool               `json:"defining"`
}

// NewLocationBehavior creates a LocationBehavior. A prediction, when
// given, must be of the measurement type.
func NewLocationBehavior(b LocationBehavior) (LocationBehavior, error) {
	err := checkNaN(
		namedFloat{"residual", b.Residual},
		namedFloat{"weight", b.Weight},
	)
	if err != nil {
		return LocationBehavior{}, err
	}
	if b.Prediction != nil && b.Prediction.Type != b.Measurement.Type {
		return LocationBehavior{}, MeasurementError(b.Measurement.Type,
			"prediction is of type "+b.Prediction.Type.String())
	}
	b.Residual = cloneFloat(b.Residual)
	b.Weight = cloneFloat(b.Weight)
	if b.Prediction != nil {
		b.Prediction = Ptr(*b.Prediction)
	}
	return b, nil
}

// PredictionsAndBehaviors are the predictions and location behaviors
// derived for one signal detection hypothesis.
type PredictionsAndBehaviors struct {
	Predictions []FeaturePrediction `json:"featurePredictions"`
	Behaviors   []LocationBehavior  `json:"locationBehaviors"`
}

// PredictionsOfType returns predictions of the given type.
func (p PredictionsAndBehaviors) PredictionsOfType(
	typ FeatureMeasurementType,
) []FeaturePrediction {
	var res []FeaturePrediction
	for _, v := range p.Predictions {
		if v.Type == typ {
			res = append(res, v)
		}
	}
	return res
}
