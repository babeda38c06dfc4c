package convert_test

import (
	"testing"
	"time"

	"github.com/gnames/cssbridge/pkg/coi"
	"github.com/gnames/cssbridge/pkg/convert"
	"github.com/gnames/cssbridge/pkg/dao"
	"github.com/gnames/cssbridge/pkg/idutil"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	station = coi.Station{Name: "ASAR"}
	channel = coi.Channel{Name: "ASAR.AS01.SHZ", StationName: "ASAR"}
	segment = coi.ChannelSegment{
		Channel: channel,
		Start:   time.Unix(990, 0).UTC(),
		End:     time.Unix(1010, 0).UTC(),
	}
	ampChannel = coi.Channel{Name: "ASAR.AS31.BHZ", StationName: "ASAR"}
	ampSegment = coi.ChannelSegment{Channel: ampChannel}
)

func arrivalDao() *dao.ArrivalDao {
	return &dao.ArrivalDao{
		Arid:    100,
		Station: "ASAR",
		Channel: "SHZ",
		Time:    1000.5,
		IPhase:  "P",
		DelTime: 0.25,
		Azimuth: 45,
		DelAz:   2,
		Slow:    10,
		DelSlow: 1,
		Ema:     1,
		Rect:    0.5,
		Amp:     dao.NA,
		Per:     dao.NA,
		Fm:      "c.",
		Snr:     12,
		Auth:    "IDC",
	}
}

func assocDao() *dao.AssocDao {
	return &dao.AssocDao{
		Arid:         100,
		Orid:         5,
		Station:      "ASAR",
		Phase:        "Pn",
		Belief:       1,
		Delta:        1,
		Seaz:         dao.NA,
		Esaz:         1,
		TimeRes:      0.5,
		TimeDefining: dao.Defining,
		AzRes:        44,
		AzDefining:   dao.Defining,
		SlowRes:      10,
		SlowDefining: dao.NonDefining,
		EmaRes:       0.2,
		Weight:       dao.NA,
	}
}

func amplitudeDao(ampid int64, amptype string) dao.AmplitudeDao {
	return dao.AmplitudeDao{
		Ampid:   ampid,
		Arid:    100,
		Channel: "BHZ",
		Amp:     3.5,
		Per:     0.8,
		AmpTime: 1001,
		AmpType: amptype,
		Units:   "nm",
		Clip:    "-",
	}
}

func waveform() coi.WaveformAndFilterDefinition {
	return coi.WaveformAndFilterDefinition{
		Waveform:              segment,
		FilterDefinition:      &coi.FilterDefinition{Name: "BP 0.8-4.5"},
		FilterDefinitionUsage: coi.Ptr("DETECTION"),
	}
}

func newConverter() (*convert.HypothesisConverter, *idutil.Cache) {
	ids := idutil.New(time.Minute)
	return convert.NewHypothesisConverter(convert.NewMeasurer(), ids), ids
}

func types(fms []coi.FeatureMeasurement) []coi.FeatureMeasurementType {
	res := make([]coi.FeatureMeasurementType, len(fms))
	for i, v := range fms {
		res[i] = v.Type
	}
	return res
}

func find(fms []coi.FeatureMeasurement, typ coi.FeatureMeasurementType) (coi.FeatureMeasurement, bool) {
	for _, v := range fms {
		if v.Type == typ {
			return v, true
		}
	}
	return coi.FeatureMeasurement{}, false
}

func gnError(t *testing.T, err error) *gn.Error {
	t.Helper()
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.NotEmpty(t, gnErr.Msg)
	return gnErr
}
