package coi

import (
	"encoding/json"
	"time"
)

// RestraintType tells if a location axis was held fixed while solving.
type RestraintType int

const (
	Unrestrained RestraintType = iota
	Fixed
)

func (r RestraintType) String() string {
	switch r {
	case Unrestrained:
		return "UNRESTRAINED"
	case Fixed:
		return "FIXED"
	default:
		return "UNKNOWN"
	}
}

// MarshalText encodes RestraintType by name.
func (r RestraintType) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// DepthRestraintReason explains why depth was fixed.
type DepthRestraintReason int

const (
	FixedAtSurface DepthRestraintReason = iota
	FixedAtDepthPhases
	FixedByAnalyst
	FixedAtStandardDepth
	Other
)

var depthReasonNames = []string{
	"FIXED_AT_SURFACE",
	"FIXED_AT_DEPTH_PHASES",
	"FIXED_BY_ANALYST",
	"FIXED_AT_STANDARD_DEPTH",
	"OTHER",
}

func (d DepthRestraintReason) String() string {
	if int(d) < 0 || int(d) >= len(depthReasonNames) {
		return "UNKNOWN"
	}
	return depthReasonNames[d]
}

// MarshalText encodes DepthRestraintReason by name.
func (d DepthRestraintReason) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// LocationRestraintParams are the fields of a LocationRestraint.
type LocationRestraintParams struct {
	DepthRestraintType        RestraintType         `json:"depthRestraintType"`
	DepthRestraintReason      *DepthRestraintReason `json:"depthRestraintReason,omitempty"`
	DepthRestraintKm          *float64              `json:"depthRestraintKm,omitempty"`
	PositionRestraintType     RestraintType         `json:"positionRestraintType"`
	LatitudeRestraintDegrees  *float64              `json:"latitudeRestraintDegrees,omitempty"`
	LongitudeRestraintDegrees *float64              `json:"longitudeRestraintDegrees,omitempty"`
	TimeRestraintType         RestraintType         `json:"timeRestraintType"`
	TimeRestraint             *time.Time            `json:"timeRestraint,omitempty"`
}

// LocationRestraint describes which axes of a location solution were
// restrained. Values of an axis are present only when that axis is FIXED.
type LocationRestraint struct {
	p LocationRestraintParams
}

// NewLocationRestraint validates params and creates a LocationRestraint.
func NewLocationRestraint(p LocationRestraintParams) (LocationRestraint, error) {
	err := checkNaN(
		namedFloat{"depthRestraintKm", p.DepthRestraintKm},
		namedFloat{"latitudeRestraintDegrees", p.LatitudeRestraintDegrees},
		namedFloat{"longitudeRestraintDegrees", p.LongitudeRestraintDegrees},
	)
	if err != nil {
		return LocationRestraint{}, err
	}

	depth := p.DepthRestraintReason != nil && p.DepthRestraintKm != nil
	depthAny := p.DepthRestraintReason != nil || p.DepthRestraintKm != nil
	if err = checkAxis("depth", p.DepthRestraintType, depth, depthAny); err != nil {
		return LocationRestraint{}, err
	}

	pos := p.LatitudeRestraintDegrees != nil && p.LongitudeRestraintDegrees != nil
	posAny := p.LatitudeRestraintDegrees != nil || p.LongitudeRestraintDegrees != nil
	if err = checkAxis("position", p.PositionRestraintType, pos, posAny); err != nil {
		return LocationRestraint{}, err
	}

	tm := p.TimeRestraint != nil
	if err = checkAxis("time", p.TimeRestraintType, tm, tm); err != nil {
		return LocationRestraint{}, err
	}

	res := p
	res.DepthRestraintKm = cloneFloat(p.DepthRestraintKm)
	res.LatitudeRestraintDegrees = cloneFloat(p.LatitudeRestraintDegrees)
	res.LongitudeRestraintDegrees = cloneFloat(p.LongitudeRestraintDegrees)
	if p.DepthRestraintReason != nil {
		res.DepthRestraintReason = Ptr(*p.DepthRestraintReason)
	}
	if p.TimeRestraint != nil {
		res.TimeRestraint = Ptr(*p.TimeRestraint)
	}
	return LocationRestraint{p: res}, nil
}

// checkAxis makes sure a FIXED axis has all its values and an
// UNRESTRAINED one has none.
func checkAxis(axis string, rt RestraintType, all, some bool) error {
	switch rt {
	case Fixed:
		if !all {
			return RestraintError(axis, rt, false)
		}
	case Unrestrained:
		if some {
			return RestraintError(axis, rt, true)
		}
	default:
		return RestraintError(axis, rt, some)
	}
	return nil
}

// Free returns a restraint where nothing is fixed.
func Free() LocationRestraint {
	return LocationRestraint{}
}

// Surface returns a restraint with depth fixed at 0 km at the surface.
func Surface() LocationRestraint {
	return LocationRestraint{p: LocationRestraintParams{
		DepthRestraintType:   Fixed,
		DepthRestraintReason: Ptr(FixedAtSurface),
		DepthRestraintKm:     Ptr(0.0),
	}}
}

// Params returns a copy of the restraint fields.
func (l LocationRestraint) Params() LocationRestraintParams {
	res := l.p
	res.DepthRestraintKm = cloneFloat(l.p.DepthRestraintKm)
	res.LatitudeRestraintDegrees = cloneFloat(l.p.LatitudeRestraintDegrees)
	res.LongitudeRestraintDegrees = cloneFloat(l.p.LongitudeRestraintDegrees)
	if l.p.DepthRestraintReason != nil {
		res.DepthRestraintReason = Ptr(*l.p.DepthRestraintReason)
	}
	if l.p.TimeRestraint != nil {
		res.TimeRestraint = Ptr(*l.p.TimeRestraint)
	}
	return res
}

// MarshalJSON encodes the restraint fields.
func (l LocationRestraint) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.p)
}
