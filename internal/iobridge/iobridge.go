// Package iobridge implements bridge.Bridge. It loads legacy records
// through a legacy.Reader and converts them concurrently.
package iobridge

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/cssbridge/pkg/bridge"
	"github.com/gnames/cssbridge/pkg/coi"
	"github.com/gnames/cssbridge/pkg/config"
	"github.com/gnames/cssbridge/pkg/convert"
	"github.com/gnames/cssbridge/pkg/dao"
	"github.com/gnames/cssbridge/pkg/idutil"
	"github.com/gnames/cssbridge/pkg/legacy"
	"github.com/gnames/gnfmt"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

// Legacy records keep no waveform windows, a segment spans the onset
// from segmentLead before it to segmentLag after it.
const (
	segmentLead = 10 * time.Second
	segmentLag  = 60 * time.Second
)

type bridgeImpl struct {
	cfg     *config.Config
	reader  legacy.Reader
	ids     idutil.IDs
	hc      *convert.HypothesisConverter
	rec     *convert.Reconciler
	metrics *metrics
	jobs    int
}

// New creates a Bridge.
func New(cfg *config.Config, reader legacy.Reader, ids idutil.IDs) bridge.Bridge {
	hc := convert.NewHypothesisConverter(convert.NewMeasurer(), ids)
	jobs := cfg.JobsNumber
	if jobs <= 0 {
		jobs = 1
	}
	return &bridgeImpl{
		cfg:     cfg,
		reader:  reader,
		ids:     ids,
		hc:      hc,
		rec:     convert.NewReconciler(hc, ids),
		metrics: newMetrics(),
		jobs:    jobs,
	}
}

// Metrics returns the registry with conversion counters.
func (b *bridgeImpl) Metrics() *prometheus.Registry {
	return b.metrics.reg
}

// WriteMetrics saves metrics in Prometheus text format.
func (b *bridgeImpl) WriteMetrics(path string) error {
	if err := prometheus.WriteToTextfile(path, b.metrics.reg); err != nil {
		return MetricsError(path, err)
	}
	return nil
}

func (b *bridgeImpl) account(stage string) (string, error) {
	res, ok := b.cfg.Bridge.StageAccounts[stage]
	if !ok {
		return "", convert.UnknownStageError(stage)
	}
	return res, nil
}

// stageRecords are records of one stage grouped by arid.
type stageRecords struct {
	arrivals   map[int64]*dao.ArrivalDao
	assocs     map[int64][]dao.AssocDao
	amplitudes map[int64][]dao.AmplitudeDao
}

func (b *bridgeImpl) loadStage(
	ctx context.Context,
	stage, account string,
	arids []int64,
	withAmplitudes bool,
) (stageRecords, error) {
	res := stageRecords{
		arrivals:   make(map[int64]*dao.ArrivalDao),
		assocs:     make(map[int64][]dao.AssocDao),
		amplitudes: make(map[int64][]dao.AmplitudeDao),
	}

	arrivals, err := b.reader.Arrivals(ctx, account, arids)
	if err != nil {
		return res, LoadError(stage, "arrival", err)
	}
	for i := range arrivals {
		res.arrivals[arrivals[i].Arid] = &arrivals[i]
	}

	assocs, err := b.reader.AssocsByArids(ctx, account, arids)
	if err != nil {
		return res, LoadError(stage, "assoc", err)
	}
	for _, v := range assocs {
		res.assocs[v.Arid] = append(res.assocs[v.Arid], v)
	}

	if !withAmplitudes {
		return res, nil
	}
	amps, err := b.reader.Amplitudes(ctx, account, arids)
	if err != nil {
		return res, LoadError(stage, "amplitude", err)
	}
	for _, v := range amps {
		res.amplitudes[v.Arid] = append(res.amplitudes[v.Arid], v)
	}
	return res, nil
}

// Detections reconciles arrivals of the current stage with the previous
// stage. Results are sorted by arid.
func (b *bridgeImpl) Detections(
	ctx context.Context,
	stage, prevStage string,
	arids []int64,
) ([]bridge.Detection, error) {
	start := time.Now()
	account, err := b.account(stage)
	if err != nil {
		return nil, err
	}
	var prevAccount string
	if prevStage != "" {
		if prevAccount, err = b.account(prevStage); err != nil {
			return nil, err
		}
	}

	arids = slices.Clone(arids)
	slices.Sort(arids)
	arids = slices.Compact(arids)

	cur, err := b.loadStage(ctx, stage, account, arids, true)
	if err != nil {
		return nil, err
	}
	var prev stageRecords
	if prevAccount != "" {
		if prev, err = b.loadStage(ctx, prevStage, prevAccount, arids, false); err != nil {
			return nil, err
		}
	}

	res, err := process(ctx, b, "Signal detections: ", arids,
		func(_ context.Context, arid int64) (bridge.Detection, bool, error) {
			res, ok := b.detection(stage, prevStage, account, prevAccount, arid, cur, prev)
			return res, ok, nil
		})
	if err != nil {
		return nil, err
	}

	slog.Info("Signal detections converted",
		"stage", stage,
		"requested", humanize.Comma(int64(len(arids))),
		"converted", humanize.Comma(int64(len(res))),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return res, nil
}

func (b *bridgeImpl) detection(
	stage, prevStage, account, prevAccount string,
	arid int64,
	cur, prev stageRecords,
) (bridge.Detection, bool) {
	arr, ok := cur.arrivals[arid]
	if !ok {
		slog.Warn("Arrival not found", "stage", stage, "arid", arid)
		b.metrics.skip(reasonMissingArrival)
		return bridge.Detection{}, false
	}
	prevArr := prev.arrivals[arid]
	station := coi.Station{Name: arr.Station}

	sd, err := b.rec.SignalDetection(convert.SignalDetectionComponents{
		CurrentStage:           stage,
		PreviousStage:          prevStage,
		CurrentArrival:         arr,
		PreviousArrival:        prevArr,
		CurrentAssocs:          cur.assocs[arid],
		PreviousAssocs:         prev.assocs[arid],
		Station:                station,
		MonitoringOrganization: b.cfg.Bridge.MonitoringOrganization,
		OrderedStages:          b.cfg.Bridge.Stages,
		AccountByStage:         b.cfg.Bridge.StageAccounts,
	})
	if err != nil {
		slog.Warn("Signal detection cannot be reconciled",
			"stage", stage, "arid", arid, "error", err)
		b.metrics.skip(reasonDetection)
		return bridge.Detection{}, false
	}
	b.metrics.detections.Inc()

	var parent *uuid.UUID
	if prevArr != nil && prevAccount != "" {
		parent = coi.Ptr(b.ids.HypothesisIDFromAridAndStage(arid, prevAccount))
	}
	hyps := b.hypotheses(account, parent, arr, cur.assocs[arid], cur.amplitudes[arid])

	return bridge.Detection{Arid: arid, SignalDetection: sd, Hypotheses: hyps}, true
}

// hypotheses converts the arrival hypothesis of the account and the
// hypotheses of its assocs. Assoc hypotheses descend from the arrival
// one.
func (b *bridgeImpl) hypotheses(
	account string,
	parent *uuid.UUID,
	arr *dao.ArrivalDao,
	assocs []dao.AssocDao,
	amps []dao.AmplitudeDao,
) []coi.SignalDetectionHypothesis {
	var res []coi.SignalDetectionHypothesis
	cid := convert.ConverterID{
		Account:     account,
		DetectionID: b.ids.SignalDetectionIDFromArid(arr.Arid),
		ParentID:    parent,
	}

	h := b.hypothesis(cid, arr, nil, amps)
	if h != nil {
		res = append(res, *h)
		cid.ParentID = coi.Ptr(h.ID.ID)
	}
	for i := range assocs {
		if h = b.hypothesis(cid, arr, &assocs[i], amps); h != nil {
			res = append(res, *h)
		}
	}
	return res
}

func (b *bridgeImpl) hypothesis(
	cid convert.ConverterID,
	arr *dao.ArrivalDao,
	assoc *dao.AssocDao,
	amps []dao.AmplitudeDao,
) *coi.SignalDetectionHypothesis {
	h, err := b.hc.Convert(cid, arrivalInput(arr), assoc,
		b.cfg.Bridge.MonitoringOrganization, coi.Station{Name: arr.Station},
		amplitudeInputs(arr, amps), nil)
	if err != nil {
		slog.Warn("Signal detection hypothesis cannot be converted",
			"account", cid.Account, "arid", arr.Arid, "error", err)
	}
	if err != nil || h == nil {
		b.metrics.skip(reasonHypothesis)
		return nil
	}
	b.metrics.hypotheses.Inc()
	return h
}

func channel(station, name string) coi.Channel {
	return coi.Channel{
		Name:        fmt.Sprintf("%s.%s", station, name),
		StationName: station,
	}
}

func segment(ch coi.Channel, epoch float64) coi.ChannelSegment {
	t := coi.EpochToTime(epoch)
	return coi.ChannelSegment{
		Channel: ch,
		Start:   t.Add(-segmentLead),
		End:     t.Add(segmentLag),
	}
}

func arrivalInput(arr *dao.ArrivalDao) convert.ArrivalInput {
	ch := channel(arr.Station, arr.Channel)
	return convert.ArrivalInput{
		Arrival: arr,
		Channel: ch,
		Segment: segment(ch, arr.Time),
	}
}

// amplitudeInputs places amplitudes on their own channels. An amplitude
// without a channel or time takes them from the arrival.
func amplitudeInputs(arr *dao.ArrivalDao, amps []dao.AmplitudeDao) []convert.AmplitudeInput {
	res := make([]convert.AmplitudeInput, 0, len(amps))
	for _, v := range amps {
		name := v.Channel
		if name == "" || name == dao.NAString {
			name = arr.Channel
		}
		epoch := v.AmpTime
		if dao.IsNA(epoch, dao.NATime) {
			epoch = arr.Time
		}
		ch := channel(arr.Station, name)
		res = append(res, convert.AmplitudeInput{
			Amplitude: v,
			Channel:   ch,
			Segment:   segment(ch, epoch),
		})
	}
	return res
}

// process runs fn for every item with the configured number of workers
// and shows progress. Items for which fn returns false are left out,
// the order of the rest is kept. An error of fn cancels the batch.
func process[In, Out any](
	ctx context.Context,
	b *bridgeImpl,
	prefix string,
	items []In,
	fn func(context.Context, In) (Out, bool, error),
) ([]Out, error) {
	outs := make([]Out, len(items))
	oks := make([]bool, len(items))

	bar := newProgressBar(len(items), prefix)
	defer bar.Finish()

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(b.jobs)
	for i, item := range items {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			out, ok, err := fn(gCtx, item)
			if err != nil {
				return err
			}
			outs[i], oks[i] = out, ok
			bar.Increment()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := make([]Out, 0, len(items))
	for i := range outs {
		if oks[i] {
			res = append(res, outs[i])
		}
	}
	return res, nil
}
