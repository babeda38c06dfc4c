package coi

import (
	"strings"
)

const (
	// NetworkMagnitudeMax is the upper limit of a network magnitude.
	NetworkMagnitudeMax = 10.0
	// StationMagnitudeMin is the lower limit of a station magnitude.
	StationMagnitudeMin = -9.99
	// StationMagnitudeMax is the upper limit of a station magnitude.
	StationMagnitudeMax = 50.0
	// ResidualLimit bounds the absolute value of a magnitude residual.
	ResidualLimit = 10.0
)

// MagnitudeType is the scale of a magnitude.
type MagnitudeType int

const (
	UnknownMagnitudeType MagnitudeType = iota
	MB
	MS
	ML
	MW
	MBMLE
	MSMLE
)

var magTypeNames = []string{"UNKNOWN", "MB", "MS", "ML", "MW", "MB_MLE", "MS_MLE"}

func (m MagnitudeType) String() string {
	if int(m) < 0 || int(m) >= len(magTypeNames) {
		return magTypeNames[UnknownMagnitudeType]
	}
	return magTypeNames[m]
}

// MarshalText encodes MagnitudeType by name.
func (m MagnitudeType) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// ParseMagnitudeType converts CSS magtype such as "mb" or "ms_mle" to
// MagnitudeType.
func ParseMagnitudeType(s string) (MagnitudeType, error) {
	s = normalizeEnum(s)
	for i, v := range magTypeNames {
		if v == s {
			return MagnitudeType(i), nil
		}
	}
	return UnknownMagnitudeType, ErrUnknownEnumString
}

// MagnitudeModel is the attenuation model used for a station magnitude.
type MagnitudeModel int

const (
	UnknownMagnitudeModel MagnitudeModel = iota
	QFVC
	VeithClawson
	RezapourPearce
	Richter
	Nuttli
)

var magModelNames = []string{
	"UNKNOWN", "QFVC", "VEITH_CLAWSON", "REZAPOUR_PEARCE", "RICHTER", "NUTTLI",
}

func (m MagnitudeModel) String() string {
	if int(m) < 0 || int(m) >= len(magModelNames) {
		return magModelNames[UnknownMagnitudeModel]
	}
	return magModelNames[m]
}

// MarshalText encodes MagnitudeModel by name.
func (m MagnitudeModel) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// ParseMagnitudeModel converts CSS mmodel to MagnitudeModel.
func ParseMagnitudeModel(s string) (MagnitudeModel, error) {
	s = normalizeEnum(s)
	for i, v := range magModelNames {
		if v == s {
			return MagnitudeModel(i), nil
		}
	}
	return UnknownMagnitudeModel, ErrUnknownEnumString
}

func normalizeEnum(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	return strings.NewReplacer("-", "_", " ", "_").Replace(s)
}

// StationMagnitudeSolution is a magnitude estimated at one station.
type StationMagnitudeSolution struct {
	Type              MagnitudeType       `json:"type"`
	Model             MagnitudeModel      `json:"model"`
	Station           Station             `json:"station"`
	Phase             string              `json:"phase"`
	Magnitude         DoubleValue         `json:"magnitude"`
	ModelCorrection   *float64            `json:"modelCorrection,omitempty"`
	StationCorrection *float64            `json:"stationCorrection,omitempty"`
	Measurement       *FeatureMeasurement `json:"measurement,omitempty"`
}

// NewStationMagnitudeSolution validates and creates a
// StationMagnitudeSolution.
func NewStationMagnitudeSolution(
	s StationMagnitudeSolution,
) (StationMagnitudeSolution, error) {
	err := checkNaN(
		namedFloat{"magnitude", &s.Magnitude.Value},
		namedFloat{"modelCorrection", s.ModelCorrection},
		namedFloat{"stationCorrection", s.StationCorrection},
	)
	if err != nil {
		return StationMagnitudeSolution{}, err
	}
	mag := s.Magnitude.Value
	if mag < StationMagnitudeMin || mag > StationMagnitudeMax {
		return StationMagnitudeSolution{},
			RangeError("station magnitude", mag, "in [-9.99, 50.0]")
	}
	if s.ModelCorrection != nil && *s.ModelCorrection < 0 {
		return StationMagnitudeSolution{},
			RangeError("modelCorrection", *s.ModelCorrection, "non-negative")
	}
	if s.StationCorrection != nil && *s.StationCorrection < 0 {
		return StationMagnitudeSolution{},
			RangeError("stationCorrection", *s.StationCorrection, "non-negative")
	}
	s.ModelCorrection = cloneFloat(s.ModelCorrection)
	s.StationCorrection = cloneFloat(s.StationCorrection)
	return s, nil
}

// NetworkMagnitudeBehavior tells how a station magnitude contributed to a
// network magnitude.
type NetworkMagnitudeBehavior struct {
	Defining                 bool                     `json:"defining"`
	Residual                 float64                  `json:"residual"`
	Weight                   float64                  `json:"weight"`
	StationMagnitudeSolution StationMagnitudeSolution `json:"stationMagnitudeSolution"`
}

// NewNetworkMagnitudeBehavior validates and creates a
// NetworkMagnitudeBehavior.
func NewNetworkMagnitudeBehavior(
	b NetworkMagnitudeBehavior,
) (NetworkMagnitudeBehavior, error) {
	err := checkNaN(
		namedFloat{"residual", &b.Residual},
		namedFloat{"weight", &b.Weight},
	)
	if err != nil {
		return NetworkMagnitudeBehavior{}, err
	}
	if b.Residual < -ResidualLimit || b.Residual > ResidualLimit {
		return NetworkMagnitudeBehavior{},
			RangeError("residual", b.Residual, "in [-10.0, 10.0]")
	}
	if b.Weight < 0 {
		return NetworkMagnitudeBehavior{},
			RangeError("weight", b.Weight, "non-negative")
	}
	return b, nil
}

// NetworkMagnitudeSolution is a magnitude of an event computed from a
// network of stations.
type NetworkMagnitudeSolution struct {
	Type      MagnitudeType              `json:"type"`
	Magnitude DoubleValue                `json:"magnitude"`
	Behaviors []NetworkMagnitudeBehavior `json:"magnitudeBehaviors"`
}

// NewNetworkMagnitudeSolution validates and creates a
// NetworkMagnitudeSolution.
func NewNetworkMagnitudeSolution(
	s NetworkMagnitudeSolution,
) (NetworkMagnitudeSolution, error) {
	if err := checkNaN(namedFloat{"magnitude", &s.Magnitude.Value}); err != nil {
		return NetworkMagnitudeSolution{}, err
	}
	if s.Magnitude.Value > NetworkMagnitudeMax {
		return NetworkMagnitudeSolution{},
			RangeError("network magnitude", s.Magnitude.Value, "at most 10.0")
	}
	s.Behaviors = append([]NetworkMagnitudeBehavior{}, s.Behaviors...)
	return s, nil
}
