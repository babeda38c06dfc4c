package convert

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gnames/cssbridge/pkg/coi"
	"github.com/gnames/cssbridge/pkg/dao"
)

// ArrivalKinds are the measurement kinds derived from an arrival, in
// the order they are emitted.
var ArrivalKinds = []coi.FeatureMeasurementType{
	coi.ArrivalTime,
	coi.Phase,
	coi.ReceiverToSourceAzimuth,
	coi.Slowness,
	coi.EmergenceAngle,
	coi.Rectilinearity,
	coi.ShortPeriodFirstMotion,
	coi.LongPeriodFirstMotion,
}

// amplitudeTypes maps CSS amptype to amplitude measurement kinds.
var amplitudeTypes = map[string]coi.FeatureMeasurementType{
	"A5/2":     coi.AmplitudeA5Over2,
	"A5/2_OR":  coi.AmplitudeA5Over2OR,
	"ALR/2":    coi.AmplitudeALROver2,
	"ANL/2":    coi.AmplitudeANLOver2,
	"ANP/2":    coi.AmplitudeANPOver2,
	"FKSNR":    coi.AmplitudeFKSNR,
	"NOI_LRM0": coi.AmplitudeNoiLRM0,
	"RMSAMP":   coi.AmplitudeRMSAmp,
	"SBSNR":    coi.AmplitudeSBSNR,
	"LRM0":     coi.AmplitudeLRM0,
}

// AmplitudeType converts CSS amptype to an amplitude measurement kind.
func AmplitudeType(amptype string) (coi.FeatureMeasurementType, bool) {
	res, ok := amplitudeTypes[strings.ToUpper(strings.TrimSpace(amptype))]
	return res, ok
}

// MeasurementValueSpec tells how to read one measurement value from
// legacy records.
type MeasurementValueSpec struct {
	Type      coi.FeatureMeasurementType
	Arrival   *dao.ArrivalDao
	Assoc     *dao.AssocDao
	Amplitude *dao.AmplitudeDao
	Units     coi.Units

	// Measured extracts the value. It is nil for kinds that are not
	// numeric.
	Measured func() float64
	// Uncertainty extracts the standard deviation, if the kind has one.
	Uncertainty func() float64
}

// Measurer builds feature measurements from arrival, assoc and amplitude
// records.
type Measurer struct{}

// NewMeasurer creates a Measurer.
func NewMeasurer() *Measurer {
	return &Measurer{}
}

// Specs derives the value specs of kind from the records. Assoc and
// amplitude are optional. Some kinds yield no spec for the given records,
// and receiver to source azimuth yields a second, source to receiver
// spec when an assoc is present.
func (m *Measurer) Specs(
	kind coi.FeatureMeasurementType,
	arrival *dao.ArrivalDao,
	assoc *dao.AssocDao,
	amplitude *dao.AmplitudeDao,
) ([]MeasurementValueSpec, error) {
	if arrival == nil {
		return nil, NullArgumentError("arrival")
	}
	base := MeasurementValueSpec{
		Type:      kind,
		Arrival:   arrival,
		Assoc:     assoc,
		Amplitude: amplitude,
	}

	switch kind {
	case coi.ArrivalTime:
		base.Units = coi.Seconds
		base.Measured = func() float64 { return arrival.Time }
		base.Uncertainty = func() float64 { return arrival.DelTime }
		return []MeasurementValueSpec{base}, nil

	case coi.Phase, coi.ShortPeriodFirstMotion, coi.LongPeriodFirstMotion:
		base.Units = coi.Unitless
		return []MeasurementValueSpec{base}, nil

	case coi.ReceiverToSourceAzimuth:
		base.Units = coi.Degrees
		base.Measured = func() float64 { return arrival.Azimuth }
		base.Uncertainty = func() float64 { return arrival.DelAz }
		res := []MeasurementValueSpec{base}
		if assoc != nil {
			res = append(res, sourceToReceiverSpec(base, assoc))
		}
		return res, nil

	case coi.SourceToReceiverAzimuth:
		if assoc == nil {
			return nil, nil
		}
		return []MeasurementValueSpec{sourceToReceiverSpec(base, assoc)}, nil

	case coi.Slowness:
		base.Units = coi.SecondsPerDegree
		base.Measured = func() float64 { return arrival.Slow }
		base.Uncertainty = func() float64 { return arrival.DelSlow }
		return []MeasurementValueSpec{base}, nil

	case coi.EmergenceAngle:
		base.Units = coi.Degrees
		base.Measured = func() float64 { return arrival.Ema }
		return []MeasurementValueSpec{base}, nil

	case coi.Rectilinearity:
		base.Units = coi.Unitless
		base.Measured = func() float64 { return arrival.Rect }
		return []MeasurementValueSpec{base}, nil

	case coi.AmplitudeA5Over2, coi.AmplitudeA5Over2OR, coi.AmplitudeALROver2,
		coi.AmplitudeANLOver2, coi.AmplitudeANPOver2, coi.AmplitudeFKSNR,
		coi.AmplitudeNoiLRM0, coi.AmplitudeRMSAmp, coi.AmplitudeSBSNR,
		coi.AmplitudeLRM0:
		if amplitude == nil {
			return nil, nil
		}
		base.Units = amplitudeUnits(amplitude.Units)
		base.Measured = func() float64 { return amplitude.Amp }
		return []MeasurementValueSpec{base}, nil

	case coi.SourceToReceiverDistance:
		// predictions only
		return nil, UnsupportedTypeError(kind)
	}
	return nil, UnsupportedTypeError(kind)
}

func sourceToReceiverSpec(base MeasurementValueSpec, assoc *dao.AssocDao) MeasurementValueSpec {
	res := base
	res.Type = coi.SourceToReceiverAzimuth
	res.Units = coi.Degrees
	res.Measured = func() float64 { return assoc.Esaz }
	res.Uncertainty = nil
	return res
}

func amplitudeUnits(units string) coi.Units {
	switch strings.ToLower(strings.TrimSpace(units)) {
	case "nm":
		return coi.Nanometers
	case "db":
		return coi.Decibels
	default:
		return coi.Unitless
	}
}

// Value converts a spec to a measurement value. It returns false when the
// records do not carry the value.
func (m *Measurer) Value(spec MeasurementValueSpec) (coi.MeasurementValue, bool) {
	arrival := spec.Arrival
	if arrival == nil {
		return nil, false
	}
	refTime := coi.EpochToTime(arrival.Time)

	switch spec.Type.ValueKind() {
	case coi.ArrivalTimeKind:
		if dao.IsNA(arrival.Time, dao.NATime) {
			return nil, false
		}
		var std *time.Duration
		if spec.Uncertainty != nil {
			if sd := dao.Value(spec.Uncertainty(), dao.NA); sd != nil {
				std = coi.Ptr(coi.SecondsToDuration(*sd))
			}
		}
		return coi.ArrivalTimeValue{
			ArrivalTime: coi.InstantValue{Value: refTime, StandardDeviation: std},
		}, true

	case coi.PhaseTypeKind:
		phase := arrival.IPhase
		if spec.Assoc != nil && !dao.IsNAString(spec.Assoc.Phase) {
			phase = spec.Assoc.Phase
		}
		if dao.IsNAString(phase) {
			return nil, false
		}
		return coi.PhaseTypeValue{
			Phase:         phase,
			Confidence:    1.0,
			ReferenceTime: &refTime,
		}, true

	case coi.NumericKind:
		if spec.Measured == nil {
			return nil, false
		}
		v := dao.Value(spec.Measured(), dao.NA)
		if v == nil {
			return nil, false
		}
		var std *float64
		if spec.Uncertainty != nil {
			std = dao.Value(spec.Uncertainty(), dao.NA)
		}
		return coi.NumericValue{
			ReferenceTime: &refTime,
			Measured: coi.DoubleValue{
				Value:             *v,
				StandardDeviation: std,
				Units:             spec.Units,
			},
		}, true

	case coi.FirstMotionKind:
		idx := 0
		if spec.Type == coi.LongPeriodFirstMotion {
			idx = 1
		}
		if len(arrival.Fm) <= idx {
			return nil, false
		}
		var fm coi.FirstMotionType
		switch arrival.Fm[idx] {
		case 'c', 'C':
			fm = coi.Compression
		case 'd', 'D':
			fm = coi.Dilation
		case '.':
			fm = coi.Indeterminate
		default:
			return nil, false
		}
		return coi.FirstMotionValue{
			Type:          fm,
			Confidence:    1.0,
			ReferenceTime: &refTime,
		}, true

	case coi.AmplitudeKind:
		amp := spec.Amplitude
		if amp == nil || dao.IsNA(amp.Amp, dao.NA) {
			return nil, false
		}
		res := coi.AmplitudeValue{
			Amplitude: amp.Amp,
			Units:     spec.Units,
			Clipped:   strings.EqualFold(amp.Clip, "c"),
		}
		if per := dao.Value(amp.Per, dao.NA); per != nil {
			res.Period = coi.Ptr(coi.SecondsToDuration(*per))
		}
		if !dao.IsNA(amp.AmpTime, dao.NATime) && !dao.IsNA(amp.AmpTime, dao.NA) {
			res.MeasurementTime = coi.Ptr(coi.EpochToTime(amp.AmpTime))
		}
		return res, true
	}
	return nil, false
}

// AmplitudeInput is an amplitude record with the channel segment it was
// measured on.
type AmplitudeInput struct {
	Amplitude dao.AmplitudeDao
	Channel   coi.Channel
	Segment   coi.ChannelSegment
}

// MeasurementInput are the records and waveform references of one
// arrival.
type MeasurementInput struct {
	Arrival    *dao.ArrivalDao
	Assoc      *dao.AssocDao
	Amplitudes []AmplitudeInput
	Channel    coi.Channel
	Segment    coi.ChannelSegment

	// AnalysisWaveform is used by arrival based measurements.
	AnalysisWaveform *coi.WaveformAndFilterDefinition
	// WaveformsByAmpID holds analysis waveforms of amplitudes.
	WaveformsByAmpID map[int64]coi.WaveformAndFilterDefinition
}

// FeatureMeasurements builds the measurements of one arrival. Arrival
// based kinds come first in the order of ArrivalKinds, then the first
// A5/2 amplitude. Kinds without a value are skipped.
func (m *Measurer) FeatureMeasurements(in MeasurementInput) ([]coi.FeatureMeasurement, error) {
	if in.Arrival == nil {
		return nil, NullArgumentError("arrival")
	}

	var res []coi.FeatureMeasurement
	for _, kind := range ArrivalKinds {
		specs, err := m.Specs(kind, in.Arrival, in.Assoc, nil)
		if err != nil {
			return nil, err
		}
		for _, spec := range specs {
			fm, ok, err := m.measurement(spec, in.Channel, in.Segment)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			if spec.Type == coi.ArrivalTime {
				if snr := dao.Value(in.Arrival.Snr, dao.NA); snr != nil {
					fm = fm.WithSNR(coi.DoubleValue{Value: *snr, Units: coi.Decibels})
				}
			}
			if in.AnalysisWaveform != nil {
				fm = withAnalysisWaveform(fm, *in.AnalysisWaveform)
			}
			res = append(res, fm)
		}
	}

	ai := firstAmplitude(in.Amplitudes, coi.AmplitudeA5Over2)
	if ai == nil {
		return res, nil
	}
	amp := &ai.Amplitude
	specs, err := m.Specs(coi.AmplitudeA5Over2, in.Arrival, in.Assoc, amp)
	if err != nil {
		return nil, err
	}
	for _, spec := range specs {
		fm, ok, err := m.measurement(spec, ai.Channel, ai.Segment)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if w, ok := in.WaveformsByAmpID[amp.Ampid]; ok {
			fm = withAnalysisWaveform(fm, w)
		} else {
			slog.Debug("No analysis waveform for amplitude", "ampid", amp.Ampid)
		}
		res = append(res, fm)
	}
	return res, nil
}

func (m *Measurer) measurement(
	spec MeasurementValueSpec,
	ch coi.Channel,
	seg coi.ChannelSegment,
) (coi.FeatureMeasurement, bool, error) {
	val, ok := m.Value(spec)
	if !ok {
		return coi.FeatureMeasurement{}, false, nil
	}
	fm, err := coi.NewFeatureMeasurement(spec.Type, ch, seg, val)
	if err != nil {
		return coi.FeatureMeasurement{}, false, err
	}
	return fm, true, nil
}

// withAnalysisWaveform attaches w to the measurement. ARRIVAL_TIME and
// A5/2 keep w as is, other amplitudes get none, and other arrival kinds
// get it without the filter usage.
func withAnalysisWaveform(
	fm coi.FeatureMeasurement,
	w coi.WaveformAndFilterDefinition,
) coi.FeatureMeasurement {
	switch {
	case fm.Type == coi.ArrivalTime || fm.Type == coi.AmplitudeA5Over2:
		return fm.WithAnalysisWaveform(w)
	case fm.Type.IsAmplitude():
		slog.Debug("Amplitude measurement gets no analysis waveform",
			"type", fm.Type.String())
		return fm
	default:
		return fm.WithAnalysisWaveform(w.WithoutFilterUsage())
	}
}

func firstAmplitude(
	amps []AmplitudeInput,
	kind coi.FeatureMeasurementType,
) *AmplitudeInput {
	for i := range amps {
		if t, ok := AmplitudeType(amps[i].Amplitude.AmpType); ok && t == kind {
			return &amps[i]
		}
	}
	return nil
}
