/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gnames/cssbridge/internal/iobridge"
	"github.com/gnames/cssbridge/internal/iofs"
	"github.com/gnames/cssbridge/internal/ioreader"
	"github.com/gnames/cssbridge/pkg/bridge"
	"github.com/gnames/cssbridge/pkg/config"
	"github.com/gnames/cssbridge/pkg/idutil"
	"github.com/gnames/gn"
	"github.com/gnames/gnlib"
	"github.com/spf13/cobra"
)

// getConvertCmd returns the convert command.
func getConvertCmd() *cobra.Command {
	convertCmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert legacy records of a stage to JSON",
		Long: `Convert arrivals and origins of a processing stage.

Arrivals become signal detections reconciled with the previous stage,
together with full signal detection hypotheses of the current stage.
Origins become location uncertainties, feature predictions, location
behaviors and network magnitude solutions.

Problems with a single record are logged and counted, they do not stop
the conversion. Counters can be saved with --metrics-file.

Examples:
  cssbridge convert --stage AL1 --arids 101,102
  cssbridge convert --stage AL2 --prev-stage AL1 --arids 101 --orids 5
  cssbridge convert -s AL2 -a 101 -o result.json --metrics-file m.prom`,
		RunE: runConvert,
	}

	f := convertCmd.Flags()
	f.StringP("stage", "s", "", "current processing stage (required)")
	f.StringP("prev-stage", "p", "", "previous processing stage")
	f.Int64SliceP("arids", "a", nil, "arrival ids, comma separated")
	f.Int64Slice("orids", nil, "origin ids, comma separated")
	f.StringP("output", "o", "", "file for JSON results (default STDOUT)")
	f.String("metrics-file", "", "file for conversion metrics")
	f.IntP("jobs", "j", 0, "number of concurrent workers (default: number of CPU cores)")
	_ = convertCmd.MarkFlagRequired("stage")

	return convertCmd
}

func runConvert(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	cfg.Update(flagOptions(cmd,
		stringFlag("stage", config.OptConvertStage),
		stringFlag("prev-stage", config.OptConvertPrevStage),
		idsFlag("arids", config.OptConvertArids),
		idsFlag("orids", config.OptConvertOrids),
		stringFlag("output", config.OptConvertOutput),
		stringFlag("metrics-file", config.OptConvertMetricsFile),
		jobsFlag,
	))

	if cfg.Convert.Stage == "" {
		err := fmt.Errorf("stage is required")
		gn.PrintErrorMessage(err)
		return err
	}
	if len(cfg.Convert.Arids) == 0 && len(cfg.Convert.Orids) == 0 {
		gn.Warn("No <em>arids</em> or <em>orids</em> given, nothing to convert")
		return nil
	}

	op, err := connect(ctx)
	if err != nil {
		printError(err)
		return err
	}
	defer op.Close()

	ttl := time.Duration(cfg.Bridge.IDCacheTTLMinutes) * time.Minute
	ids := idutil.New(ttl)
	b := iobridge.New(cfg, ioreader.New(op, cfg.Database.BatchSize), ids)

	out, err := convert(ctx, b, cfg.Convert)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	data, err := iobridge.Encode(out)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if err = iofs.WriteOutput(cfg.Convert.Output, data); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if cfg.Convert.MetricsFile != "" {
		if err = b.WriteMetrics(cfg.Convert.MetricsFile); err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
	}
	slog.Info("Conversion finished", "ids_memoized", ids.Len())

	if cfg.Convert.Output != "" {
		successMsg := gnlib.FormatMessage(
			"<em>Converted %d detections and %d origins to %s</em>",
			[]any{len(out.Detections), len(out.Origins), cfg.Convert.Output},
		)
		fmt.Println(successMsg)
	}
	return nil
}

func convert(
	ctx context.Context,
	b bridge.Bridge,
	cc config.ConvertConfig,
) (bridge.Output, error) {
	var err error
	res := bridge.Output{
		Stage:         cc.Stage,
		PreviousStage: cc.PrevStage,
		Detections:    []bridge.Detection{},
	}

	if len(cc.Arids) > 0 {
		res.Detections, err = b.Detections(ctx, cc.Stage, cc.PrevStage, cc.Arids)
		if err != nil {
			return res, err
		}
	}
	if len(cc.Orids) > 0 {
		res.Origins, err = b.Origins(ctx, cc.Stage, cc.Orids)
		if err != nil {
			return res, err
		}
	}
	return res, nil
}
