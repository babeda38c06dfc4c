package coi

import (
	"encoding/json"
	"math"
	"time"
)

const (
	// ConfidenceMin is the lowest allowed confidence level.
	ConfidenceMin = 0.5
	// ConfidenceMax is the highest allowed confidence level.
	ConfidenceMax = 1.0
	// KWeightDelta is the tolerance of a zero kWeight for CONFIDENCE
	// scaling.
	KWeightDelta = 0.0001
)

// ScalingFactorType tells how the size of a confidence region was scaled.
type ScalingFactorType int

const (
	// Confidence regions use only the a posteriori covariance (k = 0).
	Confidence ScalingFactorType = iota
	// Coverage regions use only the a priori variance (k = +Inf).
	Coverage
	// KWeighted regions mix a priori and a posteriori variances (k >= 0).
	KWeighted
)

var scalingNames = []string{"CONFIDENCE", "COVERAGE", "K_WEIGHTED"}

func (s ScalingFactorType) String() string {
	if int(s) < 0 || int(s) >= len(scalingNames) {
		return "UNKNOWN"
	}
	return scalingNames[s]
}

// MarshalText encodes ScalingFactorType by name.
func (s ScalingFactorType) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseScalingFactorType converts a name to ScalingFactorType.
func ParseScalingFactorType(s string) (ScalingFactorType, error) {
	for i, v := range scalingNames {
		if v == s {
			return ScalingFactorType(i), nil
		}
	}
	return 0, ErrUnknownEnumString
}

// EllipseParams are the fields of a two-dimensional confidence region.
// Nil pointers are absent values.
type EllipseParams struct {
	ScalingFactorType     ScalingFactorType `json:"scalingFactorType"`
	KWeight               float64           `json:"kWeight"`
	ConfidenceLevel       float64           `json:"confidenceLevel"`
	SemiMajorAxisLengthKm *float64          `json:"semiMajorAxisLengthKm,omitempty"`
	SemiMajorAxisTrendDeg *float64          `json:"semiMajorAxisTrendDeg,omitempty"`
	SemiMinorAxisLengthKm *float64          `json:"semiMinorAxisLengthKm,omitempty"`
	DepthUncertaintyKm    *float64          `json:"depthUncertaintyKm,omitempty"`
	TimeUncertainty       *time.Duration    `json:"timeUncertainty,omitempty"`
}

// Ellipse is a validated two-dimensional confidence region with optional
// depth and time uncertainties.
type Ellipse struct {
	p EllipseParams
}

// NewEllipse validates params and creates an Ellipse.
func NewEllipse(p EllipseParams) (Ellipse, error) {
	err := checkNaN(
		namedFloat{"kWeight", &p.KWeight},
		namedFloat{"confidenceLevel", &p.ConfidenceLevel},
		namedFloat{"semiMajorAxisLengthKm", p.SemiMajorAxisLengthKm},
		namedFloat{"semiMajorAxisTrendDeg", p.SemiMajorAxisTrendDeg},
		namedFloat{"semiMinorAxisLengthKm", p.SemiMinorAxisLengthKm},
		namedFloat{"depthUncertaintyKm", p.DepthUncertaintyKm},
	)
	if err != nil {
		return Ellipse{}, err
	}
	err = checkScaling(p.ScalingFactorType, p.KWeight, p.ConfidenceLevel)
	if err != nil {
		return Ellipse{}, err
	}
	if err = checkTimeUncertainty(p.TimeUncertainty); err != nil {
		return Ellipse{}, err
	}
	return Ellipse{p: p.clone()}, nil
}

// Params returns a copy of the ellipse fields.
func (e Ellipse) Params() EllipseParams { return e.p.clone() }

// ScalingFactorType tells how the ellipse axes were scaled.
func (e Ellipse) ScalingFactorType() ScalingFactorType { return e.p.ScalingFactorType }

// KWeight is the weight of a priori variance in the scaling.
func (e Ellipse) KWeight() float64 { return e.p.KWeight }

// ConfidenceLevel is the probability that the event lies inside the ellipse.
func (e Ellipse) ConfidenceLevel() float64 { return e.p.ConfidenceLevel }

// MarshalJSON encodes the ellipse fields.
func (e Ellipse) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		EllipseParams
		KWeight any `json:"kWeight"`
	}{e.p, kWeightJSON(e.p.KWeight)})
}

func (p EllipseParams) clone() EllipseParams {
	res := p
	res.SemiMajorAxisLengthKm = cloneFloat(p.SemiMajorAxisLengthKm)
	res.SemiMajorAxisTrendDeg = cloneFloat(p.SemiMajorAxisTrendDeg)
	res.SemiMinorAxisLengthKm = cloneFloat(p.SemiMinorAxisLengthKm)
	res.DepthUncertaintyKm = cloneFloat(p.DepthUncertaintyKm)
	res.TimeUncertainty = cloneDuration(p.TimeUncertainty)
	return res
}

// EllipsoidParams are the fields of a three-dimensional confidence region.
// Nil pointers are absent values.
type EllipsoidParams struct {
	ScalingFactorType             ScalingFactorType `json:"scalingFactorType"`
	KWeight                       float64           `json:"kWeight"`
	ConfidenceLevel               float64           `json:"confidenceLevel"`
	SemiMajorAxisLengthKm         *float64          `json:"semiMajorAxisLengthKm,omitempty"`
	SemiMajorAxisTrendDeg         *float64          `json:"semiMajorAxisTrendDeg,omitempty"`
	SemiMajorAxisPlungeDeg        *float64          `json:"semiMajorAxisPlungeDeg,omitempty"`
	SemiIntermediateAxisLengthKm  *float64          `json:"semiIntermediateAxisLengthKm,omitempty"`
	SemiIntermediateAxisTrendDeg  *float64          `json:"semiIntermediateAxisTrendDeg,omitempty"`
	SemiIntermediateAxisPlungeDeg *float64          `json:"semiIntermediateAxisPlungeDeg,omitempty"`
	SemiMinorAxisLengthKm         *float64          `json:"semiMinorAxisLengthKm,omitempty"`
	SemiMinorAxisTrendDeg         *float64          `json:"semiMinorAxisTrendDeg,omitempty"`
	SemiMinorAxisPlungeDeg        *float64          `json:"semiMinorAxisPlungeDeg,omitempty"`
	TimeUncertainty               *time.Duration    `json:"timeUncertainty,omitempty"`
}

// Ellipsoid is a validated three-dimensional confidence region with an
// optional time uncertainty.
type Ellipsoid struct {
	p EllipsoidParams
}

// NewEllipsoid validates params and creates an Ellipsoid.
func NewEllipsoid(p EllipsoidParams) (Ellipsoid, error) {
	err := checkNaN(
		namedFloat{"kWeight", &p.KWeight},
		namedFloat{"confidenceLevel", &p.ConfidenceLevel},
		namedFloat{"semiMajorAxisLengthKm", p.SemiMajorAxisLengthKm},
		namedFloat{"semiMajorAxisTrendDeg", p.SemiMajorAxisTrendDeg},
		namedFloat{"semiMajorAxisPlungeDeg", p.SemiMajorAxisPlungeDeg},
		namedFloat{"semiIntermediateAxisLengthKm", p.SemiIntermediateAxisLengthKm},
		namedFloat{"semiIntermediateAxisTrendDeg", p.SemiIntermediateAxisTrendDeg},
		namedFloat{"semiIntermediateAxisPlungeDeg", p.SemiIntermediateAxisPlungeDeg},
		namedFloat{"semiMinorAxisLengthKm", p.SemiMinorAxisLengthKm},
		namedFloat{"semiMinorAxisTrendDeg", p.SemiMinorAxisTrendDeg},
		namedFloat{"semiMinorAxisPlungeDeg", p.SemiMinorAxisPlungeDeg},
	)
	if err != nil {
		return Ellipsoid{}, err
	}
	err = checkScaling(p.ScalingFactorType, p.KWeight, p.ConfidenceLevel)
	if err != nil {
		return Ellipsoid{}, err
	}
	if err = checkTimeUncertainty(p.TimeUncertainty); err != nil {
		return Ellipsoid{}, err
	}
	return Ellipsoid{p: p.clone()}, nil
}

// Params returns a copy of the ellipsoid fields.
func (e Ellipsoid) Params() EllipsoidParams { return e.p.clone() }

// ScalingFactorType tells how the ellipsoid axes were scaled.
func (e Ellipsoid) ScalingFactorType() ScalingFactorType { return e.p.ScalingFactorType }

// KWeight is the weight of a priori variance in the scaling.
func (e Ellipsoid) KWeight() float64 { return e.p.KWeight }

// ConfidenceLevel is the probability that the event lies inside the ellipsoid.
func (e Ellipsoid) ConfidenceLevel() float64 { return e.p.ConfidenceLevel }

// MarshalJSON encodes the ellipsoid fields.
func (e Ellipsoid) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		EllipsoidParams
		KWeight any `json:"kWeight"`
	}{e.p, kWeightJSON(e.p.KWeight)})
}

// kWeightJSON writes the +Inf weight of COVERAGE regions as "Infinity",
// JSON has no literal for it.
func kWeightJSON(k float64) any {
	if math.IsInf(k, 1) {
		return "Infinity"
	}
	return k
}

func (p EllipsoidParams) clone() EllipsoidParams {
	res := p
	res.SemiMajorAxisLengthKm = cloneFloat(p.SemiMajorAxisLengthKm)
	res.SemiMajorAxisTrendDeg = cloneFloat(p.SemiMajorAxisTrendDeg)
	res.SemiMajorAxisPlungeDeg = cloneFloat(p.SemiMajorAxisPlungeDeg)
	res.SemiIntermediateAxisLengthKm = cloneFloat(p.SemiIntermediateAxisLengthKm)
	res.SemiIntermediateAxisTrendDeg = cloneFloat(p.SemiIntermediateAxisTrendDeg)
	res.SemiIntermediateAxisPlungeDeg = cloneFloat(p.SemiIntermediateAxisPlungeDeg)
	res.SemiMinorAxisLengthKm = cloneFloat(p.SemiMinorAxisLengthKm)
	res.SemiMinorAxisTrendDeg = cloneFloat(p.SemiMinorAxisTrendDeg)
	res.SemiMinorAxisPlungeDeg = cloneFloat(p.SemiMinorAxisPlungeDeg)
	res.TimeUncertainty = cloneDuration(p.TimeUncertainty)
	return res
}

type namedFloat struct {
	name string
	val  *float64
}

// checkNaN returns an error for the first present value that is NaN.
func checkNaN(fields ...namedFloat) error {
	for _, v := range fields {
		if v.val != nil && math.IsNaN(*v.val) {
			return NaNError(v.name)
		}
	}
	return nil
}

func checkScaling(sft ScalingFactorType, k, conf float64) error {
	if conf < ConfidenceMin || conf > ConfidenceMax {
		return ConfidenceError(conf)
	}
	switch sft {
	case Confidence:
		if math.Abs(k) >= KWeightDelta {
			return KWeightError(sft, k, "of 0.0")
		}
	case Coverage:
		if !math.IsInf(k, 1) {
			return KWeightError(sft, k, "of +Inf")
		}
	case KWeighted:
		if k < 0 {
			return KWeightError(sft, k, "greater or equal to 0.0")
		}
	default:
		return KWeightError(sft, k, "with a known scaling factor type")
	}
	return nil
}

func checkTimeUncertainty(d *time.Duration) error {
	if d != nil && *d < 0 {
		return TimeUncertaintyError(*d)
	}
	return nil
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

func cloneDuration(d *time.Duration) *time.Duration {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}
