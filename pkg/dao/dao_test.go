package dao_test

import (
	"testing"

	"github.com/gnames/cssbridge/pkg/dao"
	"github.com/gnames/cssbridge/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsNA(t *testing.T) {
	tests := []struct {
		msg string
		v   float64
		na  float64
		res bool
	}{
		{"exact NA", -1.0, dao.NA, true},
		{"within delta", -1.00005, dao.NA, true},
		{"outside delta", -1.001, dao.NA, false},
		{"mag NA", -999.0, dao.NAMag, true},
		{"real value", 3.5, dao.NAMag, false},
	}
	for _, v := range tests {
		assert.Equal(t, v.res, dao.IsNA(v.v, v.na), v.msg)
	}

	assert.Nil(t, dao.Value(-1, dao.NA))
	assert.Equal(t, 2.0, *dao.Value(2, dao.NA))
	assert.True(t, dao.IsNAString("-"))
	assert.True(t, dao.IsNAString(""))
	assert.False(t, dao.IsNAString("P"))
}

func TestDefiningFlag(t *testing.T) {
	tests := []struct {
		input    string
		valid    bool
		defining bool
	}{
		{"d", true, true},
		{"D", true, true},
		{"n", true, false},
		{"X", true, false},
		{"-", true, false},
		{"", false, false},
		{"q", false, false},
	}
	for _, v := range tests {
		flag, ok := dao.ParseDefiningFlag(v.input)
		assert.Equal(t, v.valid, ok, v.input)
		assert.Equal(t, v.defining, flag.IsDefining(), v.input)
	}
}

func validArrival() dao.ArrivalDao {
	return dao.ArrivalDao{
		Arid:    1,
		Station: "ASAR",
		Channel: "SHZ",
		Time:    1_600_000_000.5,
		IPhase:  "P",
		DelTime: 0.1,
		Azimuth: 45,
		DelAz:   dao.NA,
		Slow:    12,
		DelSlow: dao.NA,
		Ema:     dao.NA,
		Rect:    dao.NA,
		Amp:     dao.NA,
		Per:     dao.NA,
		Fm:      "c.",
		Snr:     5,
	}
}

func TestArrivalValidate(t *testing.T) {
	tests := []struct {
		msg   string
		mod   func(*dao.ArrivalDao)
		field string
	}{
		{msg: "valid", mod: func(*dao.ArrivalDao) {}},
		{msg: "NA azimuth", mod: func(a *dao.ArrivalDao) { a.Azimuth = dao.NA }},
		{
			msg:   "zero arid",
			mod:   func(a *dao.ArrivalDao) { a.Arid = 0 },
			field: "Arid",
		},
		{
			msg:   "missing station",
			mod:   func(a *dao.ArrivalDao) { a.Station = "" },
			field: "Station",
		},
		{
			msg:   "azimuth out of range",
			mod:   func(a *dao.ArrivalDao) { a.Azimuth = 400 },
			field: "Azimuth",
		},
		{
			msg:   "negative deltim",
			mod:   func(a *dao.ArrivalDao) { a.DelTime = -5 },
			field: "DelTime",
		},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			a := validArrival()
			v.mod(&a)
			err := a.Validate()
			if v.field == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			gnErr, ok := err.(*gn.Error)
			require.True(t, ok)
			assert.Equal(t, errcode.DAOValidationError, gnErr.Code)
			assert.Equal(t, "arrival", gnErr.Vars[0])
			assert.Equal(t, v.field, gnErr.Vars[1])
			assert.ErrorIs(t, gnErr.Err, dao.ErrInvalidRecord)
		})
	}
}

func TestAssocValidate(t *testing.T) {
	a := dao.AssocDao{
		Arid:         1,
		Orid:         2,
		Station:      "ASAR",
		Phase:        "P",
		Belief:       dao.NA,
		Delta:        10,
		Seaz:         dao.NA,
		Esaz:         100,
		TimeDefining: dao.Defining,
		Weight:       dao.NA,
	}
	assert.NoError(t, a.Validate())

	a.AzDefining = "q"
	err := a.Validate()
	require.Error(t, err)
	assert.Equal(t, "AzDefining", err.(*gn.Error).Vars[1])
}

func TestMagnitudeValidate(t *testing.T) {
	n := dao.NetMagDao{Magid: 1, Orid: 2, MagType: "mb", Magnitude: dao.NAMag,
		Uncertainty: dao.NA}
	assert.NoError(t, n.Validate())

	n.Magnitude = 51
	assert.Error(t, n.Validate())

	s := dao.StaMagDao{Magid: 1, Orid: 2, Station: "ASAR", Magnitude: 4.2,
		Delta: 20, Uncertainty: 0.1, MagDefining: "d"}
	assert.NoError(t, s.Validate())
}

func TestEventControlValidate(t *testing.T) {
	e := dao.EventControlDao{Orid: 1, CovSmAxes: dao.NACov, CovDepthTime: 2.5}
	assert.NoError(t, e.Validate())

	e.CovSmAxes = -3
	err := e.Validate()
	require.Error(t, err)
	assert.Equal(t, "CovSmAxes", err.(*gn.Error).Vars[1])
}

func TestOrigerrValidate(t *testing.T) {
	o := dao.OrigerrDao{Orid: 1, Sdobs: dao.NA, Smajax: dao.NA, Sminax: dao.NA,
		Strike: dao.NA, Sdepth: dao.NA, Stime: dao.NA, Conf: 0.9}
	assert.NoError(t, o.Validate())

	o.Conf = 0.2
	assert.Error(t, o.Validate())
}
