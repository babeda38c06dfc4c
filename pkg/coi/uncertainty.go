package coi

import (
	"encoding/json"
)

// LocationUncertaintyParams are the fields of a location uncertainty.
// Covariance cells follow the order x, y, z, t.
type LocationUncertaintyParams struct {
	Xx *float64 `json:"xx,omitempty"`
	Xy *float64 `json:"xy,omitempty"`
	Xz *float64 `json:"xz,omitempty"`
	Xt *float64 `json:"xt,omitempty"`
	Yy *float64 `json:"yy,omitempty"`
	Yz *float64 `json:"yz,omitempty"`
	Yt *float64 `json:"yt,omitempty"`
	Zz *float64 `json:"zz,omitempty"`
	Zt *float64 `json:"zt,omitempty"`
	Tt *float64 `json:"tt,omitempty"`

	StdDevOneObservation *float64 `json:"stdDevOneObservation,omitempty"`

	Ellipses   []Ellipse   `json:"ellipses"`
	Ellipsoids []Ellipsoid `json:"ellipsoids"`
}

// LocationUncertainty is a validated covariance matrix with a set of
// confidence ellipses and ellipsoids.
type LocationUncertainty struct {
	p LocationUncertaintyParams
}

// NewLocationUncertainty validates params and creates a
// LocationUncertainty. Within each of Ellipses and Ellipsoids the pair of
// confidence level and scaling factor type must be unique.
func NewLocationUncertainty(
	p LocationUncertaintyParams,
) (LocationUncertainty, error) {
	err := checkNaN(
		namedFloat{"xx", p.Xx},
		namedFloat{"xy", p.Xy},
		namedFloat{"xz", p.Xz},
		namedFloat{"xt", p.Xt},
		namedFloat{"yy", p.Yy},
		namedFloat{"yz", p.Yz},
		namedFloat{"yt", p.Yt},
		namedFloat{"zz", p.Zz},
		namedFloat{"zt", p.Zt},
		namedFloat{"tt", p.Tt},
		namedFloat{"stdDevOneObservation", p.StdDevOneObservation},
	)
	if err != nil {
		return LocationUncertainty{}, err
	}

	// Elements may be zero values that never passed their constructors.
	ellipseKeys := make([]constraintKey, len(p.Ellipses))
	for i, v := range p.Ellipses {
		if _, err = NewEllipse(v.p); err != nil {
			return LocationUncertainty{}, err
		}
		ellipseKeys[i] = constraintKey{v.ConfidenceLevel(), v.ScalingFactorType()}
	}
	if hasDuplicates(ellipseKeys) {
		return LocationUncertainty{}, DuplicateEllipseError("Ellipses")
	}

	ellipsoidKeys := make([]constraintKey, len(p.Ellipsoids))
	for i, v := range p.Ellipsoids {
		if _, err = NewEllipsoid(v.p); err != nil {
			return LocationUncertainty{}, err
		}
		ellipsoidKeys[i] = constraintKey{v.ConfidenceLevel(), v.ScalingFactorType()}
	}
	if hasDuplicates(ellipsoidKeys) {
		return LocationUncertainty{}, DuplicateEllipseError("Ellipsoids")
	}

	return LocationUncertainty{p: p.clone()}, nil
}

// Params returns a copy of the location uncertainty fields.
func (l LocationUncertainty) Params() LocationUncertaintyParams {
	return l.p.clone()
}

// Ellipses returns a copy of the confidence ellipses.
func (l LocationUncertainty) Ellipses() []Ellipse {
	return append([]Ellipse{}, l.p.Ellipses...)
}

// Ellipsoids returns a copy of the confidence ellipsoids.
func (l LocationUncertainty) Ellipsoids() []Ellipsoid {
	return append([]Ellipsoid{}, l.p.Ellipsoids...)
}

// StdDevOneObservation returns the standard deviation of one observation,
// or nil when it is unknown.
func (l LocationUncertainty) StdDevOneObservation() *float64 {
	return cloneFloat(l.p.StdDevOneObservation)
}

// CovarianceMatrix returns the symmetric 4x4 matrix built from the ten
// independent cells. Absent cells are nil.
func (l LocationUncertainty) CovarianceMatrix() [4][4]*float64 {
	p := l.p
	rows := [4][4]*float64{
		{p.Xx, p.Xy, p.Xz, p.Xt},
		{nil, p.Yy, p.Yz, p.Yt},
		{nil, nil, p.Zz, p.Zt},
		{nil, nil, nil, p.Tt},
	}
	var res [4][4]*float64
	for i := range 4 {
		for j := i; j < 4; j++ {
			res[i][j] = cloneFloat(rows[i][j])
			res[j][i] = cloneFloat(rows[i][j])
		}
	}
	return res
}

// MarshalJSON encodes the location uncertainty fields.
func (l LocationUncertainty) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.p)
}

func (p LocationUncertaintyParams) clone() LocationUncertaintyParams {
	res := p
	for _, v := range []**float64{
		&res.Xx, &res.Xy, &res.Xz, &res.Xt, &res.Yy, &res.Yz, &res.Yt,
		&res.Zz, &res.Zt, &res.Tt, &res.StdDevOneObservation,
	} {
		*v = cloneFloat(*v)
	}
	res.Ellipses = append([]Ellipse{}, p.Ellipses...)
	res.Ellipsoids = append([]Ellipsoid{}, p.Ellipsoids...)
	return res
}

type constraintKey struct {
	confidence float64
	sft        ScalingFactorType
}

func hasDuplicates(keys []constraintKey) bool {
	for i := range keys {
		for j := i + 1; j < len(keys); j++ {
			if keys[i] == keys[j] {
				return true
			}
		}
	}
	return false
}
