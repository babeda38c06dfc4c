package convert

import (
	"log/slog"

	"github.com/gnames/cssbridge/pkg/coi"
	"github.com/gnames/cssbridge/pkg/dao"
)

// behaviorKinds are the measurement kinds that get a location behavior.
var behaviorKinds = []coi.FeatureMeasurementType{
	coi.ArrivalTime,
	coi.ReceiverToSourceAzimuth,
	coi.Slowness,
	coi.EmergenceAngle,
}

// PredictionsAndBehaviors derives feature predictions and location
// behaviors of one associated hypothesis. The arInfo record is optional,
// without it there is no arrival time prediction and no source dependent
// corrections.
func PredictionsAndBehaviors(
	assoc *dao.AssocDao,
	arInfo *dao.ArInfoDao,
	hyp coi.SignalDetectionHypothesis,
	loc coi.EventLocation,
) (coi.PredictionsAndBehaviors, error) {
	var res coi.PredictionsAndBehaviors
	if assoc == nil {
		return res, NullArgumentError("assoc")
	}
	if hyp.IsEntityReference() {
		return res, MissingDataError(hyp.ID.ID.String())
	}

	pb := predictionBuilder{
		assoc:  assoc,
		arInfo: arInfo,
		data:   hyp.Data,
		loc:    loc,
	}
	preds, err := pb.predictions()
	if err != nil {
		return res, err
	}
	res.Predictions = preds

	for _, kind := range behaviorKinds {
		fm, ok := hyp.Data.FeatureMeasurement(kind)
		if !ok {
			continue
		}
		b, err := behavior(kind, fm, assoc, arInfo, res)
		if err != nil {
			return coi.PredictionsAndBehaviors{}, err
		}
		res.Behaviors = append(res.Behaviors, b)
	}
	return res, nil
}

type predictionBuilder struct {
	assoc  *dao.AssocDao
	arInfo *dao.ArInfoDao
	data   *coi.HypothesisData
	loc    coi.EventLocation
}

func (p predictionBuilder) predictions() ([]coi.FeaturePrediction, error) {
	var res []coi.FeaturePrediction
	add := func(fp *coi.FeaturePrediction, err error) error {
		if err != nil {
			return err
		}
		if fp != nil {
			res = append(res, *fp)
		}
		return nil
	}

	steps := []func() (*coi.FeaturePrediction, error){
		p.arrivalTime,
		p.emergenceAngle,
		p.receiverToSourceAzimuth,
		p.slowness,
		p.sourceToReceiverAzimuth,
		p.sourceToReceiverDistance,
	}
	for _, step := range steps {
		if err := add(step()); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (p predictionBuilder) arrivalTime() (*coi.FeaturePrediction, error) {
	if p.arInfo == nil || dao.IsNA(p.arInfo.TotalTravelTime, dao.NA) {
		return nil, nil
	}
	a := p.arInfo
	val := coi.ArrivalTimeValue{
		ArrivalTime: coi.InstantValue{
			Value: p.loc.Time.Add(coi.SecondsToDuration(a.TotalTravelTime)),
		},
	}
	if sd := dao.Value(a.TTModelError, dao.NA); sd != nil {
		val.ArrivalTime.StandardDeviation = coi.Ptr(coi.SecondsToDuration(*sd))
	}

	comps := components(coi.Seconds,
		component{coi.BaselinePrediction, a.BaseModelTravelTime, dao.NA},
		component{coi.StationCorrection, a.TTStaticCorrection, dao.NARes},
		component{coi.EllipticityCorrection, a.TTEllipticityCorrection, dao.NARes},
		component{coi.ElevationCorrection, a.TTElevationCorrection, dao.NARes},
		component{coi.SourceDependentCorrection, a.TTSourceSpecificCorrection, dao.NARes},
	)
	return p.prediction(coi.ArrivalTime, val, comps)
}

func (p predictionBuilder) emergenceAngle() (*coi.FeaturePrediction, error) {
	v, ok := p.residualPrediction(coi.EmergenceAngle, p.assoc.EmaRes)
	if !ok {
		return nil, nil
	}
	comps := components(coi.Degrees, component{coi.BaselinePrediction, v, dao.NA})
	return p.prediction(coi.EmergenceAngle, numeric(v, coi.Degrees), comps)
}

func (p predictionBuilder) receiverToSourceAzimuth() (*coi.FeaturePrediction, error) {
	v, ok := p.residualPrediction(coi.ReceiverToSourceAzimuth, p.assoc.AzRes)
	if !ok {
		return nil, nil
	}
	parts := []component{{coi.BaselinePrediction, v, dao.NA}}
	if p.arInfo != nil {
		parts = append(parts, component{
			coi.SourceDependentCorrection, p.arInfo.AzSourceSpecificCorrection, dao.NARes,
		})
	}
	return p.prediction(coi.ReceiverToSourceAzimuth,
		numeric(v, coi.Degrees), components(coi.Degrees, parts...))
}

func (p predictionBuilder) slowness() (*coi.FeaturePrediction, error) {
	v, ok := p.residualPrediction(coi.Slowness, p.assoc.SlowRes)
	if !ok {
		return nil, nil
	}
	parts := []component{{coi.BaselinePrediction, v, dao.NA}}
	if p.arInfo != nil {
		parts = append(parts, component{
			coi.SourceDependentCorrection, p.arInfo.SlowSourceSpecificCorrection, dao.NARes,
		})
	}
	return p.prediction(coi.Slowness,
		numeric(v, coi.SecondsPerDegree), components(coi.SecondsPerDegree, parts...))
}

func (p predictionBuilder) sourceToReceiverAzimuth() (*coi.FeaturePrediction, error) {
	if dao.IsNA(p.assoc.Esaz, dao.NA) {
		return nil, nil
	}
	v := p.assoc.Esaz
	comps := components(coi.Degrees, component{coi.BaselinePrediction, v, dao.NA})
	return p.prediction(coi.SourceToReceiverAzimuth, numeric(v, coi.Degrees), comps)
}

func (p predictionBuilder) sourceToReceiverDistance() (*coi.FeaturePrediction, error) {
	if dao.IsNA(p.assoc.Delta, dao.NA) {
		return nil, nil
	}
	v := p.assoc.Delta
	comps := components(coi.Degrees, component{coi.BaselinePrediction, v, dao.NA})
	return p.prediction(coi.SourceToReceiverDistance, numeric(v, coi.Degrees), comps)
}

// residualPrediction is the measured value of kind minus its residual.
func (p predictionBuilder) residualPrediction(
	kind coi.FeatureMeasurementType,
	residual float64,
) (float64, bool) {
	if dao.IsNA(residual, dao.NARes) {
		return 0, false
	}
	fm, ok := p.data.FeatureMeasurement(kind)
	if !ok {
		return 0, false
	}
	nv, ok := fm.Value.(coi.NumericValue)
	if !ok {
		return 0, false
	}
	return nv.Measured.Value - residual, true
}

func (p predictionBuilder) prediction(
	kind coi.FeatureMeasurementType,
	val coi.MeasurementValue,
	comps []coi.FeaturePredictionComponent,
) (*coi.FeaturePrediction, error) {
	fp := coi.FeaturePrediction{
		Type:           kind,
		Value:          val,
		Components:     comps,
		Phase:          p.phase(),
		SourceLocation: p.loc,
		Station:        p.data.Station,
	}
	if fm, ok := p.data.FeatureMeasurement(kind); ok {
		fp.Channel = coi.Ptr(fm.Channel)
	}
	res, err := coi.NewFeaturePrediction(fp)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (p predictionBuilder) phase() string {
	if !dao.IsNAString(p.assoc.Phase) {
		return p.assoc.Phase
	}
	if fm, ok := p.data.FeatureMeasurement(coi.Phase); ok {
		if pv, ok := fm.Value.(coi.PhaseTypeValue); ok {
			return pv.Phase
		}
	}
	return ""
}

type component struct {
	typ coi.FeaturePredictionComponentType
	val float64
	na  float64
}

// components converts parts to prediction components skipping NA values.
func components(units coi.Units, parts ...component) []coi.FeaturePredictionComponent {
	res := make([]coi.FeaturePredictionComponent, 0, len(parts))
	for _, v := range parts {
		if dao.IsNA(v.val, v.na) {
			continue
		}
		res = append(res, coi.FeaturePredictionComponent{
			Type:  v.typ,
			Value: coi.DoubleValue{Value: v.val, Units: units},
		})
	}
	return res
}

func numeric(v float64, units coi.Units) coi.NumericValue {
	return coi.NumericValue{Measured: coi.DoubleValue{Value: v, Units: units}}
}

func behavior(
	kind coi.FeatureMeasurementType,
	fm coi.FeatureMeasurement,
	assoc *dao.AssocDao,
	arInfo *dao.ArInfoDao,
	pb coi.PredictionsAndBehaviors,
) (coi.LocationBehavior, error) {
	b := coi.LocationBehavior{Measurement: fm}
	if preds := pb.PredictionsOfType(kind); len(preds) > 0 {
		b.Prediction = &preds[0]
	}

	var residual float64
	var flag *dao.DefiningFlag
	var weight func(*dao.ArInfoDao) float64
	switch kind {
	case coi.ArrivalTime:
		residual, flag = assoc.TimeRes, &assoc.TimeDefining
		weight = func(a *dao.ArInfoDao) float64 { return a.TimeWeight }
	case coi.ReceiverToSourceAzimuth:
		residual, flag = assoc.AzRes, &assoc.AzDefining
		weight = func(a *dao.ArInfoDao) float64 { return a.AzWeight }
	case coi.Slowness:
		residual, flag = assoc.SlowRes, &assoc.SlowDefining
		weight = func(a *dao.ArInfoDao) float64 { return a.SlowWeight }
	case coi.EmergenceAngle:
		residual = assoc.EmaRes
	}

	b.Residual = dao.Value(residual, dao.NARes)
	if arInfo != nil && weight != nil {
		b.Weight = dao.Value(weight(arInfo), dao.NA)
	}
	if flag != nil {
		b.Defining = isDefining(kind, *flag)
	}
	return coi.NewLocationBehavior(b)
}

func isDefining(kind coi.FeatureMeasurementType, flag dao.DefiningFlag) bool {
	if !flag.IsValid() {
		slog.Debug("Defining flag is missing or invalid, using non-defining",
			"type", kind.String(), "flag", string(flag))
		return false
	}
	return flag.IsDefining()
}
