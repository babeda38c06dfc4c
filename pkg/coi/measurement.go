package coi

import (
	"time"
)

// FeatureMeasurementType is the closed set of measurement kinds a signal
// detection hypothesis can carry.
type FeatureMeasurementType int

const (
	ArrivalTime FeatureMeasurementType = iota
	Phase
	ReceiverToSourceAzimuth
	SourceToReceiverAzimuth
	// SourceToReceiverDistance is used for feature predictions only.
	SourceToReceiverDistance
	Slowness
	EmergenceAngle
	Rectilinearity
	ShortPeriodFirstMotion
	LongPeriodFirstMotion
	AmplitudeA5Over2
	AmplitudeA5Over2OR
	AmplitudeALROver2
	AmplitudeANLOver2
	AmplitudeANPOver2
	AmplitudeFKSNR
	AmplitudeNoiLRM0
	AmplitudeRMSAmp
	AmplitudeSBSNR
	AmplitudeLRM0
)

var fmTypeNames = []string{
	"ARRIVAL_TIME",
	"PHASE",
	"RECEIVER_TO_SOURCE_AZIMUTH",
	"SOURCE_TO_RECEIVER_AZIMUTH",
	"SOURCE_TO_RECEIVER_DISTANCE",
	"SLOWNESS",
	"EMERGENCE_ANGLE",
	"RECTILINEARITY",
	"SHORT_PERIOD_FIRST_MOTION",
	"LONG_PERIOD_FIRST_MOTION",
	"AMPLITUDE_A5_OVER_2",
	"AMPLITUDE_A5_OVER_2_OR",
	"AMPLITUDE_ALR_OVER_2",
	"AMPLITUDE_ANL_OVER_2",
	"AMPLITUDE_ANP_OVER_2",
	"AMPLITUDE_FKSNR",
	"AMPLITUDE_NOI_LRM0",
	"AMPLITUDE_RMSAMP",
	"AMPLITUDE_SBSNR",
	"AMPLITUDE_LRM0",
}

func (f FeatureMeasurementType) String() string {
	if int(f) < 0 || int(f) >= len(fmTypeNames) {
		return "UNKNOWN"
	}
	return fmTypeNames[f]
}

// MarshalText encodes FeatureMeasurementType by name.
func (f FeatureMeasurementType) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// ParseFeatureMeasurementType converts a name to FeatureMeasurementType.
func ParseFeatureMeasurementType(s string) (FeatureMeasurementType, error) {
	for i, v := range fmTypeNames {
		if v == s {
			return FeatureMeasurementType(i), nil
		}
	}
	return 0, ErrUnknownEnumString
}

// IsAmplitude is true for all amplitude kinds.
func (f FeatureMeasurementType) IsAmplitude() bool {
	return f >= AmplitudeA5Over2 && f <= AmplitudeLRM0
}

// ValueKind returns the kind of MeasurementValue the type carries.
func (f FeatureMeasurementType) ValueKind() ValueKind {
	switch f {
	case ArrivalTime:
		return ArrivalTimeKind
	case Phase:
		return PhaseTypeKind
	case ShortPeriodFirstMotion, LongPeriodFirstMotion:
		return FirstMotionKind
	case ReceiverToSourceAzimuth, SourceToReceiverAzimuth,
		SourceToReceiverDistance, Slowness, EmergenceAngle, Rectilinearity:
		return NumericKind
	}
	if f.IsAmplitude() {
		return AmplitudeKind
	}
	return UnknownKind
}

// ValueKind tags the variants of MeasurementValue.
type ValueKind int

const (
	UnknownKind ValueKind = iota
	ArrivalTimeKind
	PhaseTypeKind
	NumericKind
	FirstMotionKind
	AmplitudeKind
)

// MeasurementValue is one of ArrivalTimeValue, PhaseTypeValue,
// NumericValue, FirstMotionValue or AmplitudeValue.
type MeasurementValue interface {
	Kind() ValueKind
}

// ArrivalTimeValue is the onset time of a signal.
type ArrivalTimeValue struct {
	ArrivalTime InstantValue `json:"arrivalTime"`
}

func (ArrivalTimeValue) Kind() ValueKind { return ArrivalTimeKind }

// PhaseTypeValue is the seismic phase label of a signal.
type PhaseTypeValue struct {
	Phase         string     `json:"phase"`
	Confidence    float64    `json:"confidence"`
	ReferenceTime *time.Time `json:"referenceTime,omitempty"`
}

func (PhaseTypeValue) Kind() ValueKind { return PhaseTypeKind }

// NumericValue is a measured number at an optional reference time.
type NumericValue struct {
	ReferenceTime *time.Time  `json:"referenceTime,omitempty"`
	Measured      DoubleValue `json:"measuredValue"`
}

func (NumericValue) Kind() ValueKind { return NumericKind }

// FirstMotionType is the polarity of the first motion of a signal.
type FirstMotionType int

const (
	Compression FirstMotionType = iota
	Dilation
	Indeterminate
)

func (f FirstMotionType) String() string {
	switch f {
	case Compression:
		return "COMPRESSION"
	case Dilation:
		return "DILATION"
	case Indeterminate:
		return "INDETERMINATE"
	default:
		return "UNKNOWN"
	}
}

// MarshalText encodes FirstMotionType by name.
func (f FirstMotionType) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// FirstMotionValue is a first motion polarity.
type FirstMotionValue struct {
	Type          FirstMotionType `json:"value"`
	Confidence    float64         `json:"confidence"`
	ReferenceTime *time.Time      `json:"referenceTime,omitempty"`
}

func (FirstMotionValue) Kind() ValueKind { return FirstMotionKind }

// AmplitudeValue is an amplitude measured at some period.
type AmplitudeValue struct {
	Amplitude       float64        `json:"amplitude"`
	Period          *time.Duration `json:"period,omitempty"`
	MeasurementTime *time.Time     `json:"measurementTime,omitempty"`
	Units           Units          `json:"units"`
	Clipped         bool           `json:"clipped"`
}

func (AmplitudeValue) Kind() ValueKind { return AmplitudeKind }

// FeatureMeasurement is a typed measurement made on a channel segment.
type FeatureMeasurement struct {
	Type             FeatureMeasurementType       `json:"featureMeasurementType"`
	Channel          Channel                      `json:"channel"`
	Segment          ChannelSegment               `json:"measuredChannelSegment"`
	Value            MeasurementValue             `json:"measurementValue"`
	SNR              *DoubleValue                 `json:"snr,omitempty"`
	AnalysisWaveform *WaveformAndFilterDefinition `json:"analysisWaveform,omitempty"`
}

// NewFeatureMeasurement creates a FeatureMeasurement after making sure
// the value variant matches the measurement type.
func NewFeatureMeasurement(
	typ FeatureMeasurementType,
	channel Channel,
	segment ChannelSegment,
	value MeasurementValue,
) (FeatureMeasurement, error) {
	kind := typ.ValueKind()
	if kind == UnknownKind {
		return FeatureMeasurement{}, MeasurementError(typ, "unknown type")
	}
	if value == nil {
		return FeatureMeasurement{}, MeasurementError(typ, "value is missing")
	}
	if value.Kind() != kind {
		return FeatureMeasurement{}, MeasurementError(typ, "value has a wrong kind")
	}
	if v, ok := value.(NumericValue); ok {
		if err := checkNaN(namedFloat{"measuredValue", &v.Measured.Value}); err != nil {
			return FeatureMeasurement{}, err
		}
	}
	res := FeatureMeasurement{
		Type:    typ,
		Channel: channel,
		Segment: segment,
		Value:   value,
	}
	return res, nil
}

// WithSNR returns a copy of the measurement with the signal-to-noise ratio.
func (f FeatureMeasurement) WithSNR(snr DoubleValue) FeatureMeasurement {
	f.SNR = &snr
	return f
}

// WithAnalysisWaveform returns a copy of the measurement with the
// analysis waveform.
func (f FeatureMeasurement) WithAnalysisWaveform(
	w WaveformAndFilterDefinition,
) FeatureMeasurement {
	w = w.Clone()
	f.AnalysisWaveform = &w
	return f
}
