package coi

import (
	"github.com/google/uuid"
)

// SignalDetectionHypothesisID identifies a hypothesis within its signal
// detection.
type SignalDetectionHypothesisID struct {
	SignalDetectionID uuid.UUID `json:"signalDetectionId"`
	ID                uuid.UUID `json:"id"`
}

// SignalDetectionHypothesis is either a full hypothesis, or an entity
// reference when Data is nil.
type SignalDetectionHypothesis struct {
	ID   SignalDetectionHypothesisID `json:"id"`
	Data *HypothesisData             `json:"data,omitempty"`
}

// EntityReference creates a hypothesis that carries only its identity.
func EntityReference(sdID, id uuid.UUID) SignalDetectionHypothesis {
	return SignalDetectionHypothesis{
		ID: SignalDetectionHypothesisID{SignalDetectionID: sdID, ID: id},
	}
}

// IsEntityReference is true when the hypothesis has no data.
func (s SignalDetectionHypothesis) IsEntityReference() bool {
	return s.Data == nil
}

// ToEntityReference returns the hypothesis stripped of its data.
func (s SignalDetectionHypothesis) ToEntityReference() SignalDetectionHypothesis {
	return SignalDetectionHypothesis{ID: s.ID}
}

// HypothesisData is the content of a full signal detection hypothesis.
type HypothesisData struct {
	MonitoringOrganization string                     `json:"monitoringOrganization"`
	Station                Station                    `json:"station"`
	Deleted                bool                       `json:"deleted"`
	Parent                 *SignalDetectionHypothesis `json:"parentSignalDetectionHypothesis,omitempty"`
	FeatureMeasurements    []FeatureMeasurement       `json:"featureMeasurements"`
}

// NewHypothesisData validates and creates HypothesisData. It requires an
// organization, a station, and a non-empty list of measurements with
// unique types that includes ARRIVAL_TIME and PHASE.
func NewHypothesisData(d HypothesisData) (HypothesisData, error) {
	if d.MonitoringOrganization == "" {
		return HypothesisData{}, HypothesisDataError("monitoring organization is empty")
	}
	if d.Station.Name == "" {
		return HypothesisData{}, HypothesisDataError("station is empty")
	}
	if len(d.FeatureMeasurements) == 0 {
		return HypothesisData{}, HypothesisDataError("feature measurements are empty")
	}

	seen := make(map[FeatureMeasurementType]struct{}, len(d.FeatureMeasurements))
	for _, v := range d.FeatureMeasurements {
		if _, ok := seen[v.Type]; ok {
			return HypothesisData{},
				HypothesisDataError("duplicate feature measurement " + v.Type.String())
		}
		seen[v.Type] = struct{}{}
	}
	for _, v := range []FeatureMeasurementType{ArrivalTime, Phase} {
		if _, ok := seen[v]; !ok {
			return HypothesisData{},
				HypothesisDataError("missing feature measurement " + v.String())
		}
	}

	if d.Parent != nil {
		parent := d.Parent.ToEntityReference()
		d.Parent = &parent
	}
	d.FeatureMeasurements = append([]FeatureMeasurement{}, d.FeatureMeasurements...)
	return d, nil
}

// FeatureMeasurement finds a measurement by its type.
func (d HypothesisData) FeatureMeasurement(
	typ FeatureMeasurementType,
) (FeatureMeasurement, bool) {
	for _, v := range d.FeatureMeasurements {
		if v.Type == typ {
			return v, true
		}
	}
	return FeatureMeasurement{}, false
}

// SignalDetection is a detected signal with its ordered hypotheses.
type SignalDetection struct {
	ID                     uuid.UUID                   `json:"id"`
	Station                Station                     `json:"station"`
	MonitoringOrganization string                      `json:"monitoringOrganization"`
	Hypotheses             []SignalDetectionHypothesis `json:"signalDetectionHypotheses"`
}

// NewSignalDetection creates a SignalDetection. The hypothesis list must
// be non-empty and every hypothesis must belong to the detection.
func NewSignalDetection(
	id uuid.UUID,
	station Station,
	org string,
	hyps []SignalDetectionHypothesis,
) (SignalDetection, error) {
	if len(hyps) == 0 {
		return SignalDetection{}, SignalDetectionError("hypotheses are empty")
	}
	for _, v := range hyps {
		if v.ID.SignalDetectionID != id {
			return SignalDetection{}, SignalDetectionError(
				"hypothesis " + v.ID.ID.String() + " belongs to detection " +
					v.ID.SignalDetectionID.String())
		}
	}
	res := SignalDetection{
		ID:                     id,
		Station:                station,
		MonitoringOrganization: org,
		Hypotheses:             append([]SignalDetectionHypothesis{}, hyps...),
	}
	return res, nil
}
