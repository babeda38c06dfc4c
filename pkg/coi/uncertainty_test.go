package coi_test

import (
	"math"
	"testing"

	"github.com/gnames/cssbridge/pkg/coi"
	"github.com/gnames/cssbridge/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ellipse(t *testing.T, sft coi.ScalingFactorType, conf float64) coi.Ellipse {
	k := 0.0
	switch sft {
	case coi.Coverage:
		k = math.Inf(1)
	case coi.KWeighted:
		k = 1.0
	}
	res, err := coi.NewEllipse(coi.EllipseParams{
		ScalingFactorType: sft,
		KWeight:           k,
		ConfidenceLevel:   conf,
	})
	require.NoError(t, err)
	return res
}

func TestLocationUncertaintyDuplicates(t *testing.T) {
	tests := []struct {
		msg      string
		ellipses func(t *testing.T) []coi.Ellipse
		dup      bool
	}{
		{
			msg: "same confidence and scaling",
			ellipses: func(t *testing.T) []coi.Ellipse {
				return []coi.Ellipse{
					ellipse(t, coi.Confidence, 0.9),
					ellipse(t, coi.Confidence, 0.9),
				}
			},
			dup: true,
		},
		{
			msg: "different confidence",
			ellipses: func(t *testing.T) []coi.Ellipse {
				return []coi.Ellipse{
					ellipse(t, coi.Confidence, 0.9),
					ellipse(t, coi.Confidence, 0.95),
				}
			},
		},
		{
			msg: "different scaling",
			ellipses: func(t *testing.T) []coi.Ellipse {
				return []coi.Ellipse{
					ellipse(t, coi.Confidence, 0.9),
					ellipse(t, coi.Coverage, 0.9),
				}
			},
		},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			_, err := coi.NewLocationUncertainty(coi.LocationUncertaintyParams{
				Ellipses: v.ellipses(t),
			})
			if !v.dup {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			gnErr, ok := err.(*gn.Error)
			require.True(t, ok)
			assert.Equal(t, errcode.ValidationDuplicateEllipseError, gnErr.Code)
			assert.Equal(t, "Ellipses", gnErr.Vars[0])
			assert.ErrorIs(t, gnErr.Err, coi.ErrDuplicateEllipse)
		})
	}
}

func TestLocationUncertaintyDuplicateEllipsoids(t *testing.T) {
	e, err := coi.NewEllipsoid(coi.EllipsoidParams{
		ScalingFactorType: coi.Confidence,
		ConfidenceLevel:   0.9,
	})
	require.NoError(t, err)

	_, err = coi.NewLocationUncertainty(coi.LocationUncertaintyParams{
		Ellipsoids: []coi.Ellipsoid{e, e},
	})
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, "Ellipsoids", gnErr.Vars[0])
}

func TestCovarianceMatrix(t *testing.T) {
	lu, err := coi.NewLocationUncertainty(coi.LocationUncertaintyParams{
		Xx: coi.Ptr(1.0), Xy: coi.Ptr(2.0), Xz: coi.Ptr(3.0), Xt: coi.Ptr(4.0),
		Yy: coi.Ptr(5.0), Yz: coi.Ptr(6.0), Yt: coi.Ptr(7.0),
		Zz: coi.Ptr(8.0), Zt: coi.Ptr(9.0),
		Tt: coi.Ptr(10.0),
	})
	require.NoError(t, err)

	exp := [4][4]float64{
		{1, 2, 3, 4},
		{2, 5, 6, 7},
		{3, 6, 8, 9},
		{4, 7, 9, 10},
	}
	m := lu.CovarianceMatrix()
	for i := range 4 {
		for j := range 4 {
			require.NotNil(t, m[i][j])
			assert.Equal(t, exp[i][j], *m[i][j])
			assert.Equal(t, *m[i][j], *m[j][i])
		}
	}

	*m[0][0] = 100
	assert.Equal(t, 1.0, *lu.CovarianceMatrix()[0][0], "matrix is a copy")
}

func TestCovarianceMatrixAbsent(t *testing.T) {
	lu, err := coi.NewLocationUncertainty(coi.LocationUncertaintyParams{
		Yy: coi.Ptr(5.0),
	})
	require.NoError(t, err)
	m := lu.CovarianceMatrix()
	assert.Equal(t, 5.0, *m[1][1])
	assert.Nil(t, m[0][1])
	assert.Nil(t, m[1][0])
	assert.Nil(t, lu.StdDevOneObservation())
}

func TestLocationUncertaintyNaN(t *testing.T) {
	_, err := coi.NewLocationUncertainty(coi.LocationUncertaintyParams{
		Zt: coi.Ptr(math.NaN()),
	})
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, "zt", gnErr.Vars[0])
}

func TestLocationUncertaintyZeroValueElements(t *testing.T) {
	tests := []struct {
		msg    string
		params coi.LocationUncertaintyParams
	}{
		{"zero ellipse",
			coi.LocationUncertaintyParams{Ellipses: []coi.Ellipse{{}}}},
		{"zero ellipsoid",
			coi.LocationUncertaintyParams{Ellipsoids: []coi.Ellipsoid{{}}}},
		{"zero ellipse after a valid one",
			coi.LocationUncertaintyParams{Ellipses: []coi.Ellipse{
				ellipse(t, coi.Confidence, 0.9), {},
			}}},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			lu, err := coi.NewLocationUncertainty(tt.params)
			require.Error(t, err)
			gnErr, ok := err.(*gn.Error)
			require.True(t, ok)
			assert.Equal(t, errcode.ValidationConfidenceError, gnErr.Code)
			assert.ErrorIs(t, gnErr.Err, coi.ErrConfidence)
			assert.Empty(t, lu.Ellipses())
			assert.Empty(t, lu.Ellipsoids())
		})
	}
}
