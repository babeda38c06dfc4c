package coi_test

import (
	"testing"
	"time"

	"github.com/gnames/cssbridge/pkg/coi"
	"github.com/gnames/cssbridge/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocationRestraint(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		msg  string
		p    coi.LocationRestraintParams
		axis string
	}{
		{
			msg: "all free",
		},
		{
			msg: "fixed depth",
			p: coi.LocationRestraintParams{
				DepthRestraintType:   coi.Fixed,
				DepthRestraintReason: coi.Ptr(coi.FixedByAnalyst),
				DepthRestraintKm:     coi.Ptr(10.0),
			},
		},
		{
			msg: "fixed depth without value",
			p: coi.LocationRestraintParams{
				DepthRestraintType:   coi.Fixed,
				DepthRestraintReason: coi.Ptr(coi.FixedByAnalyst),
			},
			axis: "depth",
		},
		{
			msg: "free depth with reason",
			p: coi.LocationRestraintParams{
				DepthRestraintReason: coi.Ptr(coi.Other),
			},
			axis: "depth",
		},
		{
			msg: "fixed position",
			p: coi.LocationRestraintParams{
				PositionRestraintType:     coi.Fixed,
				LatitudeRestraintDegrees:  coi.Ptr(10.0),
				LongitudeRestraintDegrees: coi.Ptr(20.0),
			},
		},
		{
			msg: "fixed position without longitude",
			p: coi.LocationRestraintParams{
				PositionRestraintType:    coi.Fixed,
				LatitudeRestraintDegrees: coi.Ptr(10.0),
			},
			axis: "position",
		},
		{
			msg: "fixed time",
			p: coi.LocationRestraintParams{
				TimeRestraintType: coi.Fixed,
				TimeRestraint:     &now,
			},
		},
		{
			msg: "free time with value",
			p: coi.LocationRestraintParams{
				TimeRestraint: &now,
			},
			axis: "time",
		},
		{
			msg: "fixed time without value",
			p: coi.LocationRestraintParams{
				TimeRestraintType: coi.Fixed,
			},
			axis: "time",
		},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			res, err := coi.NewLocationRestraint(v.p)
			if v.axis == "" {
				require.NoError(t, err)
				assert.Equal(t, v.p, res.Params())
				return
			}
			require.Error(t, err)
			gnErr, ok := err.(*gn.Error)
			require.True(t, ok)
			assert.Equal(t, errcode.ValidationRestraintError, gnErr.Code)
			assert.Equal(t, v.axis, gnErr.Vars[0])
			assert.ErrorIs(t, gnErr.Err, coi.ErrRestraint)
		})
	}
}

func TestCanonicalRestraints(t *testing.T) {
	free := coi.Free().Params()
	assert.Equal(t, coi.Unrestrained, free.DepthRestraintType)
	assert.Equal(t, coi.Unrestrained, free.PositionRestraintType)
	assert.Equal(t, coi.Unrestrained, free.TimeRestraintType)

	surface := coi.Surface().Params()
	assert.Equal(t, coi.Fixed, surface.DepthRestraintType)
	assert.Equal(t, coi.FixedAtSurface, *surface.DepthRestraintReason)
	assert.Equal(t, 0.0, *surface.DepthRestraintKm)
	assert.Equal(t, coi.Unrestrained, surface.PositionRestraintType)

	_, err := coi.NewLocationRestraint(surface)
	assert.NoError(t, err, "surface restraint is valid")
}
