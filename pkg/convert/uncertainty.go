// Package convert turns validated legacy CSS records into common object
// model values.
package convert

import (
	"math"
	"time"

	"github.com/gnames/cssbridge/pkg/coi"
	"github.com/gnames/cssbridge/pkg/dao"
)

// LocationUncertainty converts an origerr record, and an optional
// evtcontrol record of the same origin, to a LocationUncertainty.
//
// The result always has a CONFIDENCE ellipse with the raw origerr values.
// When ctrl is given, a COVERAGE ellipse follows with lengths scaled by
// cov_sm_axes and depth and time scaled by cov_depth_time. Values that
// are NA, or whose factor is NA, are left absent.
func LocationUncertainty(
	origerr *dao.OrigerrDao,
	ctrl *dao.EventControlDao,
) (coi.LocationUncertainty, error) {
	if origerr == nil {
		return coi.LocationUncertainty{}, NullArgumentError("origerr")
	}

	p := coi.LocationUncertaintyParams{
		Xx: dao.Value(origerr.Sxx, dao.NA),
		Xy: dao.Value(origerr.Sxy, dao.NA),
		Xz: dao.Value(origerr.Sxz, dao.NA),
		Xt: dao.Value(origerr.Stx, dao.NA),
		Yy: dao.Value(origerr.Syy, dao.NA),
		Yz: dao.Value(origerr.Syz, dao.NA),
		Yt: dao.Value(origerr.Sty, dao.NA),
		Zz: dao.Value(origerr.Szz, dao.NA),
		Zt: dao.Value(origerr.Stz, dao.NA),
		Tt: dao.Value(origerr.Stt, dao.NA),

		StdDevOneObservation: dao.Value(origerr.Sdobs, dao.NA),
		Ellipsoids:           []coi.Ellipsoid{},
	}

	confidence, err := coi.NewEllipse(confidenceEllipse(origerr))
	if err != nil {
		return coi.LocationUncertainty{}, err
	}
	p.Ellipses = []coi.Ellipse{confidence}

	if ctrl != nil {
		coverage, err := coi.NewEllipse(coverageEllipse(origerr, ctrl))
		if err != nil {
			return coi.LocationUncertainty{}, err
		}
		p.Ellipses = append(p.Ellipses, coverage)
	}

	return coi.NewLocationUncertainty(p)
}

func confidenceEllipse(o *dao.OrigerrDao) coi.EllipseParams {
	return coi.EllipseParams{
		ScalingFactorType:     coi.Confidence,
		KWeight:               0.0,
		ConfidenceLevel:       o.Conf,
		SemiMajorAxisLengthKm: dao.Value(o.Smajax, dao.NA),
		SemiMajorAxisTrendDeg: dao.Value(o.Strike, dao.NA),
		SemiMinorAxisLengthKm: dao.Value(o.Sminax, dao.NA),
		DepthUncertaintyKm:    dao.Value(o.Sdepth, dao.NA),
		TimeUncertainty:       duration(dao.Value(o.Stime, dao.NA)),
	}
}

func coverageEllipse(o *dao.OrigerrDao, c *dao.EventControlDao) coi.EllipseParams {
	return coi.EllipseParams{
		ScalingFactorType:     coi.Coverage,
		KWeight:               math.Inf(1),
		ConfidenceLevel:       o.Conf,
		SemiMajorAxisLengthKm: scaled(o.Smajax, c.CovSmAxes),
		SemiMajorAxisTrendDeg: dao.Value(o.Strike, dao.NA),
		SemiMinorAxisLengthKm: scaled(o.Sminax, c.CovSmAxes),
		DepthUncertaintyKm:    scaled(o.Sdepth, c.CovDepthTime),
		TimeUncertainty:       duration(scaled(o.Stime, c.CovDepthTime)),
	}
}

// scaled multiplies v by factor, or returns nil when either is NA.
func scaled(v, factor float64) *float64 {
	if dao.IsNA(v, dao.NA) || dao.IsNA(factor, dao.NACov) {
		return nil
	}
	res := v * factor
	return &res
}

func duration(sec *float64) *time.Duration {
	if sec == nil {
		return nil
	}
	return coi.Ptr(coi.SecondsToDuration(*sec))
}
