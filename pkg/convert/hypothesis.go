package convert

import (
	"log/slog"

	"github.com/gnames/cssbridge/pkg/coi"
	"github.com/gnames/cssbridge/pkg/dao"
	"github.com/gnames/cssbridge/pkg/idutil"
	"github.com/google/uuid"
)

// ConverterID tells which stage account and detection a hypothesis
// belongs to.
type ConverterID struct {
	// Account is the legacy database account of the stage.
	Account     string
	DetectionID uuid.UUID
	// ParentID is the id of the parent hypothesis, if any.
	ParentID *uuid.UUID
}

// ArrivalInput is an arrival with the channel segment it was detected on
// and its analysis waveform.
type ArrivalInput struct {
	Arrival          *dao.ArrivalDao
	Channel          coi.Channel
	Segment          coi.ChannelSegment
	AnalysisWaveform *coi.WaveformAndFilterDefinition
}

// HypothesisConverter creates signal detection hypotheses from arrivals
// and assocs.
type HypothesisConverter struct {
	m   *Measurer
	ids idutil.IDs
}

// NewHypothesisConverter creates a HypothesisConverter.
func NewHypothesisConverter(m *Measurer, ids idutil.IDs) *HypothesisConverter {
	return &HypothesisConverter{m: m, ids: ids}
}

// EntityReference creates the arrival based hypothesis reference of a
// stage account.
func (hc *HypothesisConverter) EntityReference(
	account string,
	sdID uuid.UUID,
	arrival *dao.ArrivalDao,
) (coi.SignalDetectionHypothesis, error) {
	var res coi.SignalDetectionHypothesis
	if account == "" {
		return res, NullArgumentError("account")
	}
	if arrival == nil {
		return res, NullArgumentError("arrival")
	}
	id := hc.ids.HypothesisIDFromAridAndStage(arrival.Arid, account)
	return coi.EntityReference(sdID, id), nil
}

// EntityReferenceWithAssoc creates the assoc based hypothesis reference
// of a stage account. The assoc must belong to the arrival.
func (hc *HypothesisConverter) EntityReferenceWithAssoc(
	account string,
	sdID uuid.UUID,
	arrival *dao.ArrivalDao,
	assoc *dao.AssocDao,
) (coi.SignalDetectionHypothesis, error) {
	var res coi.SignalDetectionHypothesis
	if account == "" {
		return res, NullArgumentError("account")
	}
	if arrival == nil {
		return res, NullArgumentError("arrival")
	}
	if assoc == nil {
		return res, NullArgumentError("assoc")
	}
	if assoc.Arid != arrival.Arid {
		return res, AridMismatchError(arrival.Arid, assoc.Arid)
	}
	id := hc.ids.HypothesisIDFromAridOridAndStage(assoc.Arid, assoc.Orid, account)
	return coi.EntityReference(sdID, id), nil
}

// Convert creates a full hypothesis with its feature measurements.
//
// Channels of a different station and an assoc of a different arrival
// are errors. When the measurements cannot form valid hypothesis data the
// result is nil without an error.
func (hc *HypothesisConverter) Convert(
	cid ConverterID,
	arrival ArrivalInput,
	assoc *dao.AssocDao,
	org string,
	station coi.Station,
	amplitudes []AmplitudeInput,
	waveformsByAmpID map[int64]coi.WaveformAndFilterDefinition,
) (*coi.SignalDetectionHypothesis, error) {
	if cid.Account == "" {
		return nil, NullArgumentError("account")
	}
	if arrival.Arrival == nil {
		return nil, NullArgumentError("arrival")
	}

	channels := make([]coi.Channel, 0, len(amplitudes)+1)
	channels = append(channels, arrival.Channel)
	for _, v := range amplitudes {
		channels = append(channels, v.Channel)
	}
	for _, ch := range channels {
		if ch.StationName != "" && ch.StationName != station.Name {
			return nil, StationMismatchError(ch.Name, station.Name)
		}
	}

	var id uuid.UUID
	if assoc != nil {
		if assoc.Arid != arrival.Arrival.Arid {
			return nil, AridMismatchError(arrival.Arrival.Arid, assoc.Arid)
		}
		id = hc.ids.HypothesisIDFromAridOridAndStage(assoc.Arid, assoc.Orid, cid.Account)
	} else {
		id = hc.ids.HypothesisIDFromAridAndStage(arrival.Arrival.Arid, cid.Account)
	}

	fms, err := hc.m.FeatureMeasurements(MeasurementInput{
		Arrival:          arrival.Arrival,
		Assoc:            assoc,
		Amplitudes:       amplitudes,
		Channel:          arrival.Channel,
		Segment:          arrival.Segment,
		AnalysisWaveform: arrival.AnalysisWaveform,
		WaveformsByAmpID: waveformsByAmpID,
	})
	if err != nil {
		return nil, err
	}

	var parent *coi.SignalDetectionHypothesis
	if cid.ParentID != nil {
		parent = coi.Ptr(coi.EntityReference(cid.DetectionID, *cid.ParentID))
	}
	data, err := coi.NewHypothesisData(coi.HypothesisData{
		MonitoringOrganization: org,
		Station:                station,
		Parent:                 parent,
		FeatureMeasurements:    fms,
	})
	if err != nil {
		slog.Warn("Signal detection hypothesis cannot be built",
			"arid", arrival.Arrival.Arid, "error", err)
		return nil, nil
	}

	res := coi.SignalDetectionHypothesis{
		ID: coi.SignalDetectionHypothesisID{
			SignalDetectionID: cid.DetectionID,
			ID:                id,
		},
		Data: &data,
	}
	return &res, nil
}
