package convert_test

import (
	"testing"
	"time"

	"github.com/gnames/cssbridge/pkg/coi"
	"github.com/gnames/cssbridge/pkg/convert"
	"github.com/gnames/cssbridge/pkg/dao"
	"github.com/gnames/cssbridge/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func arInfoDao() *dao.ArInfoDao {
	return &dao.ArInfoDao{
		Orid:                         5,
		Arid:                         100,
		TotalTravelTime:              203.232,
		BaseModelTravelTime:          1.1,
		TTStaticCorrection:           1.1,
		TTEllipticityCorrection:      1.1,
		TTElevationCorrection:        1.1,
		TTSourceSpecificCorrection:   1.1,
		TTModelError:                 1.25,
		AzSourceSpecificCorrection:   0.1,
		SlowSourceSpecificCorrection: 0.1,
		TimeWeight:                   0.5,
		AzWeight:                     dao.NA,
		SlowWeight:                   0.3,
	}
}

func associatedHypothesis(t *testing.T, as *dao.AssocDao) coi.SignalDetectionHypothesis {
	hc, ids := newConverter()
	cid := convert.ConverterID{Account: "al1", DetectionID: ids.SignalDetectionIDFromArid(100)}
	h, err := hc.Convert(cid,
		convert.ArrivalInput{Arrival: arrivalDao(), Channel: channel, Segment: segment},
		as, "IDC", station, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, h)
	return *h
}

func TestPredictionsAndBehaviors(t *testing.T) {
	as := assocDao()
	hyp := associatedHypothesis(t, as)
	loc := coi.EventLocation{LatitudeDegrees: 10, LongitudeDegrees: 20, Time: time.Unix(0, 0).UTC()}

	res, err := convert.PredictionsAndBehaviors(as, arInfoDao(), hyp, loc)
	require.NoError(t, err)

	tests := []struct {
		typ   coi.FeatureMeasurementType
		value float64
		units coi.Units
		comps int
	}{
		{coi.EmergenceAngle, 0.8, coi.Degrees, 1},
		{coi.ReceiverToSourceAzimuth, 1, coi.Degrees, 2},
		{coi.Slowness, 0, coi.SecondsPerDegree, 2},
		{coi.SourceToReceiverAzimuth, 1, coi.Degrees, 1},
		{coi.SourceToReceiverDistance, 1, coi.Degrees, 1},
	}
	for _, v := range tests {
		preds := res.PredictionsOfType(v.typ)
		require.Len(t, preds, 1, v.typ.String())
		nv := preds[0].Value.(coi.NumericValue)
		assert.InDelta(t, v.value, nv.Measured.Value, 1e-9, v.typ.String())
		assert.Equal(t, v.units, nv.Measured.Units, v.typ.String())
		assert.Len(t, preds[0].Components, v.comps, v.typ.String())
		assert.Equal(t, "Pn", preds[0].Phase)
		assert.Equal(t, station, preds[0].Station)
		assert.Equal(t, loc, preds[0].SourceLocation)
	}

	arr := res.PredictionsOfType(coi.ArrivalTime)
	require.Len(t, arr, 1)
	atv := arr[0].Value.(coi.ArrivalTimeValue)
	assert.Equal(t, int64(203), atv.ArrivalTime.Value.Unix())
	assert.Equal(t, 1250*time.Millisecond, *atv.ArrivalTime.StandardDeviation)
	assert.Len(t, arr[0].Components, 5)
	require.NotNil(t, arr[0].Channel)
	assert.Equal(t, channel, *arr[0].Channel)

	require.Len(t, res.Behaviors, 4)
	byType := make(map[coi.FeatureMeasurementType]coi.LocationBehavior)
	for _, v := range res.Behaviors {
		byType[v.Measurement.Type] = v
	}

	at := byType[coi.ArrivalTime]
	assert.True(t, at.Defining)
	assert.Equal(t, 0.5, *at.Residual)
	assert.Equal(t, 0.5, *at.Weight)
	require.NotNil(t, at.Prediction)
	assert.Equal(t, coi.ArrivalTime, at.Prediction.Type)

	az := byType[coi.ReceiverToSourceAzimuth]
	assert.True(t, az.Defining)
	assert.Equal(t, 44.0, *az.Residual)
	assert.Nil(t, az.Weight)

	slow := byType[coi.Slowness]
	assert.False(t, slow.Defining)
	assert.Equal(t, 0.3, *slow.Weight)

	ema := byType[coi.EmergenceAngle]
	assert.False(t, ema.Defining)
	assert.Equal(t, 0.2, *ema.Residual)
	assert.Nil(t, ema.Weight)
}

func TestPredictionsAndBehaviorsNoArInfo(t *testing.T) {
	as := assocDao()
	as.TimeDefining = ""
	as.AzDefining = "q"
	as.SlowRes = dao.NARes
	hyp := associatedHypothesis(t, as)

	res, err := convert.PredictionsAndBehaviors(as, nil, hyp, coi.EventLocation{})
	require.NoError(t, err)

	assert.Empty(t, res.PredictionsOfType(coi.ArrivalTime))
	assert.Empty(t, res.PredictionsOfType(coi.Slowness))
	az := res.PredictionsOfType(coi.ReceiverToSourceAzimuth)
	require.Len(t, az, 1)
	assert.Len(t, az[0].Components, 1)

	require.Len(t, res.Behaviors, 4)
	for _, v := range res.Behaviors {
		assert.False(t, v.Defining, v.Measurement.Type.String())
		assert.Nil(t, v.Weight)
		if v.Measurement.Type == coi.Slowness {
			assert.Nil(t, v.Residual)
			assert.Nil(t, v.Prediction)
		}
	}
}

func TestPredictionsAndBehaviorsErrors(t *testing.T) {
	hc, ids := newConverter()
	ref, err := hc.EntityReference("al1", ids.SignalDetectionIDFromArid(100), arrivalDao())
	require.NoError(t, err)

	_, err = convert.PredictionsAndBehaviors(assocDao(), nil, ref, coi.EventLocation{})
	gnErr := gnError(t, err)
	assert.Equal(t, errcode.ConvertMissingDataError, gnErr.Code)
	assert.ErrorIs(t, gnErr.Err, convert.ErrMissingData)

	_, err = convert.PredictionsAndBehaviors(nil, nil, ref, coi.EventLocation{})
	gnErr = gnError(t, err)
	assert.Equal(t, errcode.ConvertNullArgumentError, gnErr.Code)
	assert.Equal(t, "assoc", gnErr.Vars[0])
}
