package convert

import (
	"log/slog"

	"github.com/gnames/cssbridge/pkg/coi"
	"github.com/gnames/cssbridge/pkg/dao"
)

// BridgedHypothesis is a hypothesis of an origin with the records it was
// bridged from.
type BridgedHypothesis struct {
	Assoc *dao.AssocDao
	// ArInfo is optional.
	ArInfo     *dao.ArInfoDao
	Hypothesis *coi.SignalDetectionHypothesis
	StaMags    []dao.StaMagDao
}

// NetworkMagnitudeSolutions converts netmag records of an origin to
// network magnitude solutions. Station magnitudes are looked up in the
// bridged hypotheses by magid and orid.
func NetworkMagnitudeSolutions(
	netmags []dao.NetMagDao,
	sdh []BridgedHypothesis,
) ([]coi.NetworkMagnitudeSolution, error) {
	res := make([]coi.NetworkMagnitudeSolution, 0, len(netmags))
	for i := range netmags {
		nm := &netmags[i]
		typ, err := coi.ParseMagnitudeType(nm.MagType)
		if err != nil {
			slog.Warn("Skipping network magnitude of unknown type",
				"magid", nm.Magid, "magtype", nm.MagType)
			continue
		}

		var behaviors []coi.NetworkMagnitudeBehavior
		for _, h := range sdh {
			bs, err := magnitudeBehaviors(nm, typ, h)
			if err != nil {
				return nil, err
			}
			behaviors = append(behaviors, bs...)
		}

		sol, err := coi.NewNetworkMagnitudeSolution(coi.NetworkMagnitudeSolution{
			Type: typ,
			Magnitude: coi.DoubleValue{
				Value:             nm.Magnitude,
				StandardDeviation: dao.Value(nm.Uncertainty, dao.NA),
				Units:             coi.Unitless,
			},
			Behaviors: behaviors,
		})
		if err != nil {
			return nil, err
		}
		res = append(res, sol)
	}
	return res, nil
}

func magnitudeBehaviors(
	nm *dao.NetMagDao,
	typ coi.MagnitudeType,
	h BridgedHypothesis,
) ([]coi.NetworkMagnitudeBehavior, error) {
	if h.Hypothesis == nil || h.Hypothesis.IsEntityReference() {
		var arid int64
		if h.Assoc != nil {
			arid = h.Assoc.Arid
		}
		slog.Info("Hypothesis is missing, no magnitude behaviors", "arid", arid)
		return nil, nil
	}

	var res []coi.NetworkMagnitudeBehavior
	for i := range h.StaMags {
		sm := &h.StaMags[i]
		if sm.Magid != nm.Magid || sm.Orid != nm.Orid {
			continue
		}
		sol, err := stationMagnitude(sm, typ, h.Hypothesis.Data)
		if err != nil {
			return nil, err
		}
		b, err := coi.NewNetworkMagnitudeBehavior(coi.NetworkMagnitudeBehavior{
			Defining:                 sm.MagDefining.IsDefining(),
			Residual:                 sm.MagRes,
			Weight:                   1.0,
			StationMagnitudeSolution: sol,
		})
		if err != nil {
			return nil, err
		}
		res = append(res, b)
	}
	if len(res) == 0 {
		slog.Warn("No stamag records match netmag",
			"magid", nm.Magid, "orid", nm.Orid)
	}
	return res, nil
}

func stationMagnitude(
	sm *dao.StaMagDao,
	typ coi.MagnitudeType,
	data *coi.HypothesisData,
) (coi.StationMagnitudeSolution, error) {
	model, err := coi.ParseMagnitudeModel(sm.MagModel)
	if err != nil {
		slog.Warn("Unknown magnitude model, using UNKNOWN",
			"mmodel", sm.MagModel, "error", err)
		model = coi.UnknownMagnitudeModel
	}

	s := coi.StationMagnitudeSolution{
		Type:    typ,
		Model:   model,
		Station: data.Station,
		Phase:   sm.Phase,
		Magnitude: coi.DoubleValue{
			Value:             sm.Magnitude,
			StandardDeviation: dao.Value(sm.Uncertainty, dao.NA),
			Units:             coi.Unitless,
		},
	}
	if fm, ok := data.FeatureMeasurement(coi.AmplitudeA5Over2); ok {
		s.Measurement = &fm
	}
	return coi.NewStationMagnitudeSolution(s)
}
