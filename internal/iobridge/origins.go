package iobridge

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/cssbridge/pkg/bridge"
	"github.com/gnames/cssbridge/pkg/coi"
	"github.com/gnames/cssbridge/pkg/convert"
	"github.com/gnames/cssbridge/pkg/dao"
	"github.com/gnames/gnfmt"
)

// Origins converts location uncertainty, predictions, behaviors and
// network magnitudes of origins. Results are sorted by orid.
func (b *bridgeImpl) Origins(
	ctx context.Context,
	stage string,
	orids []int64,
) ([]bridge.Origin, error) {
	start := time.Now()
	account, err := b.account(stage)
	if err != nil {
		return nil, err
	}

	orids = slices.Clone(orids)
	slices.Sort(orids)
	orids = slices.Compact(orids)

	res, err := process(ctx, b, "Origins: ", orids,
		func(ctx context.Context, orid int64) (bridge.Origin, bool, error) {
			return b.origin(ctx, stage, account, orid)
		})
	if err != nil {
		return nil, err
	}

	slog.Info("Origins converted",
		"stage", stage,
		"requested", humanize.Comma(int64(len(orids))),
		"converted", humanize.Comma(int64(len(res))),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return res, nil
}

// originRecords are the legacy records of one origin.
type originRecords struct {
	origin     *dao.OriginDao
	origerr    *dao.OrigerrDao
	ctrl       *dao.EventControlDao
	assocs     []dao.AssocDao
	arrivals   map[int64]*dao.ArrivalDao
	amplitudes map[int64][]dao.AmplitudeDao
	arInfos    map[int64]*dao.ArInfoDao
	staMags    map[int64][]dao.StaMagDao
	netMags    []dao.NetMagDao
}

func (b *bridgeImpl) loadOrigin(
	ctx context.Context,
	stage, account string,
	orid int64,
) (originRecords, error) {
	var res originRecords
	var err error
	r := b.reader

	if res.origin, err = r.Origin(ctx, account, orid); err != nil {
		return res, LoadError(stage, "origin", err)
	}
	if res.origin == nil {
		return res, nil
	}
	if res.origerr, err = r.Origerr(ctx, account, orid); err != nil {
		return res, LoadError(stage, "origerr", err)
	}
	if res.ctrl, err = r.EventControl(ctx, account, orid); err != nil {
		return res, LoadError(stage, "evtcontrol", err)
	}
	if res.assocs, err = r.AssocsByOrid(ctx, account, orid); err != nil {
		return res, LoadError(stage, "assoc", err)
	}

	arids := make([]int64, 0, len(res.assocs))
	for _, v := range res.assocs {
		arids = append(arids, v.Arid)
	}

	arrivals, err := r.Arrivals(ctx, account, arids)
	if err != nil {
		return res, LoadError(stage, "arrival", err)
	}
	res.arrivals = make(map[int64]*dao.ArrivalDao, len(arrivals))
	for i := range arrivals {
		res.arrivals[arrivals[i].Arid] = &arrivals[i]
	}

	amps, err := r.Amplitudes(ctx, account, arids)
	if err != nil {
		return res, LoadError(stage, "amplitude", err)
	}
	res.amplitudes = make(map[int64][]dao.AmplitudeDao)
	for _, v := range amps {
		res.amplitudes[v.Arid] = append(res.amplitudes[v.Arid], v)
	}

	infos, err := r.ArInfos(ctx, account, orid)
	if err != nil {
		return res, LoadError(stage, "ar_info", err)
	}
	res.arInfos = make(map[int64]*dao.ArInfoDao, len(infos))
	for i := range infos {
		res.arInfos[infos[i].Arid] = &infos[i]
	}

	stamags, err := r.StaMags(ctx, account, orid)
	if err != nil {
		return res, LoadError(stage, "stamag", err)
	}
	res.staMags = make(map[int64][]dao.StaMagDao)
	for _, v := range stamags {
		res.staMags[v.Arid] = append(res.staMags[v.Arid], v)
	}

	if res.netMags, err = r.NetMags(ctx, account, orid); err != nil {
		return res, LoadError(stage, "netmag", err)
	}
	return res, nil
}

func (b *bridgeImpl) origin(
	ctx context.Context,
	stage, account string,
	orid int64,
) (bridge.Origin, bool, error) {
	recs, err := b.loadOrigin(ctx, stage, account, orid)
	if err != nil {
		return bridge.Origin{}, false, err
	}
	if recs.origin == nil {
		slog.Warn("Origin not found", "stage", stage, "orid", orid)
		b.metrics.skip(reasonMissingOrigin)
		return bridge.Origin{}, false, nil
	}

	o := recs.origin
	res := bridge.Origin{
		Orid: orid,
		Location: coi.EventLocation{
			LatitudeDegrees:  o.Lat,
			LongitudeDegrees: o.Lon,
			DepthKm:          o.Depth,
			Time:             coi.EpochToTime(o.Time),
		},
	}

	switch lu, err := b.uncertainty(recs); {
	case err != nil:
		slog.Warn("Location uncertainty cannot be converted",
			"orid", orid, "error", err)
		b.metrics.skip(reasonUncertainty)
	case lu != nil:
		res.LocationUncertainty = lu
	}

	var bridged []convert.BridgedHypothesis
	for i := range recs.assocs {
		as := &recs.assocs[i]
		arr, ok := recs.arrivals[as.Arid]
		if !ok {
			slog.Warn("Associated arrival not found",
				"orid", orid, "arid", as.Arid)
			b.metrics.skip(reasonMissingArrival)
			continue
		}

		cid := convert.ConverterID{
			Account:     account,
			DetectionID: b.ids.SignalDetectionIDFromArid(as.Arid),
		}
		h := b.hypothesis(cid, arr, as, recs.amplitudes[as.Arid])
		if h == nil {
			continue
		}

		info := recs.arInfos[as.Arid]
		pab, err := convert.PredictionsAndBehaviors(as, info, *h, res.Location)
		if err != nil {
			slog.Warn("Predictions cannot be converted",
				"orid", orid, "arid", as.Arid, "error", err)
			b.metrics.skip(reasonPrediction)
		} else {
			res.Predictions = append(res.Predictions, pab.Predictions...)
			res.Behaviors = append(res.Behaviors, pab.Behaviors...)
		}

		bridged = append(bridged, convert.BridgedHypothesis{
			Assoc:      as,
			ArInfo:     info,
			Hypothesis: h,
			StaMags:    recs.staMags[as.Arid],
		})
	}

	mags, err := convert.NetworkMagnitudeSolutions(recs.netMags, bridged)
	if err != nil {
		slog.Warn("Network magnitudes cannot be converted",
			"orid", orid, "error", err)
		b.metrics.skip(reasonMagnitude)
	} else {
		res.Magnitudes = mags
	}

	b.metrics.origins.Inc()
	return res, true, nil
}

// uncertainty returns nil without error when the origin has no origerr.
func (b *bridgeImpl) uncertainty(recs originRecords) (*coi.LocationUncertainty, error) {
	if recs.origerr == nil {
		slog.Warn("Origin has no origerr record", "orid", recs.origin.Orid)
		b.metrics.skip(reasonMissingOrigerr)
		return nil, nil
	}
	lu, err := convert.LocationUncertainty(recs.origerr, recs.ctrl)
	if err != nil {
		return nil, err
	}
	return &lu, nil
}
