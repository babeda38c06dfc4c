package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/cssbridge/internal/iodb"
	"github.com/gnames/cssbridge/internal/iotesting"
	"github.com/gnames/cssbridge/pkg/bridge"
	"github.com/gnames/cssbridge/pkg/config"
	"github.com/gnames/cssbridge/pkg/dao"
	"github.com/gnames/cssbridge/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd(t *testing.T) {
	cmd := getRootCmd()
	require.NotNil(t, cmd)
	assert.Equal(t, "cssbridge", cmd.Use)

	var names []string
	for _, v := range cmd.Commands() {
		names = append(names, v.Name())
	}
	assert.Subset(t, names, []string{"create", "convert", "config"})
}

func TestRootCmdVersion(t *testing.T) {
	tests := []struct {
		msg  string
		flag string
	}{
		{"long flag", "--version"},
		{"short flag", "-V"},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			cmd := getRootCmd()
			cmd.Version = "version: v1.2.3\nbuild:   abc123"

			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetArgs([]string{v.flag})

			require.NoError(t, cmd.Execute())
			assert.Contains(t, buf.String(), "v1.2.3")
			assert.Contains(t, buf.String(), "abc123")
		})
	}
}

func TestRootCmdHelp(t *testing.T) {
	cmd := getRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())
	help := buf.String()
	assert.Contains(t, help, "CSS3.0")
	assert.Contains(t, help, "CSSBRIDGE_")
	assert.Contains(t, help, "convert")
}

func TestConvertCmdFlags(t *testing.T) {
	cmd := getConvertCmd()
	assert.NotNil(t, cmd.RunE)

	tests := []struct {
		name, short string
	}{
		{"stage", "s"},
		{"prev-stage", "p"},
		{"arids", "a"},
		{"orids", ""},
		{"output", "o"},
		{"metrics-file", ""},
		{"jobs", "j"},
	}
	for _, v := range tests {
		t.Run(v.name, func(t *testing.T) {
			f := cmd.Flags().Lookup(v.name)
			require.NotNil(t, f)
			assert.Equal(t, v.short, f.Shorthand)
		})
	}
}

func TestFlagOptions(t *testing.T) {
	cmd := getConvertCmd()
	require.NoError(t, cmd.ParseFlags([]string{
		"--stage", "AL2", "--arids", "3,1", "-j", "2",
	}))

	opts := flagOptions(cmd,
		stringFlag("stage", config.OptConvertStage),
		stringFlag("prev-stage", config.OptConvertPrevStage),
		idsFlag("arids", config.OptConvertArids),
		idsFlag("orids", config.OptConvertOrids),
		jobsFlag,
	)
	// unchanged flags give no options
	assert.Len(t, opts, 3)

	c := config.New()
	c.Update(opts)
	assert.Equal(t, "AL2", c.Convert.Stage)
	assert.Equal(t, []int64{3, 1}, c.Convert.Arids)
	assert.Empty(t, c.Convert.Orids)
	assert.Equal(t, 2, c.JobsNumber)
}

type stubBridge struct {
	bridge.Bridge
	calls []string
}

func (s *stubBridge) Detections(
	_ context.Context, stage, prev string, arids []int64,
) ([]bridge.Detection, error) {
	s.calls = append(s.calls, "detections:"+stage+":"+prev)
	res := make([]bridge.Detection, len(arids))
	for i, v := range arids {
		res[i].Arid = v
	}
	return res, nil
}

func (s *stubBridge) Origins(
	_ context.Context, stage string, orids []int64,
) ([]bridge.Origin, error) {
	s.calls = append(s.calls, "origins:"+stage)
	res := make([]bridge.Origin, len(orids))
	for i, v := range orids {
		res[i].Orid = v
	}
	return res, nil
}

func TestConvertOutput(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		msg   string
		cc    config.ConvertConfig
		calls []string
		dets  int
		origs int
	}{
		{"arids only", config.ConvertConfig{Stage: "AL1", Arids: []int64{1, 2}},
			[]string{"detections:AL1:"}, 2, 0},
		{"orids only", config.ConvertConfig{Stage: "AL2", Orids: []int64{5}},
			[]string{"origins:AL2"}, 0, 1},
		{"both", config.ConvertConfig{
			Stage: "AL2", PrevStage: "AL1", Arids: []int64{1}, Orids: []int64{5},
		}, []string{"detections:AL2:AL1", "origins:AL2"}, 1, 1},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			b := &stubBridge{}
			res, err := convert(ctx, b, v.cc)
			require.NoError(t, err)
			assert.Equal(t, v.calls, b.calls)
			assert.Equal(t, v.cc.Stage, res.Stage)
			assert.Equal(t, v.cc.PrevStage, res.PreviousStage)
			assert.Len(t, res.Detections, v.dets)
			assert.Len(t, res.Origins, v.origs)
		})
	}
}

// TestCreateAndConvert runs both commands against a sqlite store in a
// temporary home directory.
func TestCreateAndConvert(t *testing.T) {
	home := iotesting.SetupTempHome(t)
	t.Setenv("HOME", home)
	t.Setenv("CSSBRIDGE_DATABASE_DRIVER", "sqlite")
	t.Setenv("CSSBRIDGE_LOG_DESTINATION", "stderr")
	t.Setenv("CSSBRIDGE_LOG_LEVEL", "error")

	cmd := getRootCmd()
	cmd.SetArgs([]string{"create"})
	require.NoError(t, cmd.Execute())

	storePath := filepath.Join(config.DataDir(home), "legacy.sqlite")
	_, err := os.Stat(storePath)
	require.NoError(t, err)

	ctx := context.Background()
	op := iodb.NewOperator()
	dbCfg := config.New().Database
	dbCfg.Driver = db.SQLite
	dbCfg.Path = storePath
	require.NoError(t, op.Connect(ctx, &dbCfg))
	iotesting.Seed(t, op, "al1", &dao.ArrivalDao{
		Arid: 100, Station: "ASAR", Channel: "SHZ", Time: 1000.5,
		IPhase: "P", DelTime: 0.25, Azimuth: 45, DelAz: 2, Slow: 10,
		DelSlow: 1, Ema: 1, Rect: 0.5, Amp: dao.NA, Per: dao.NA,
		Fm: "c.", Snr: 12,
	})
	require.NoError(t, op.Close())

	out := filepath.Join(t.TempDir(), "out.json")
	metrics := filepath.Join(t.TempDir(), "m.prom")
	cmd = getRootCmd()
	cmd.SetArgs([]string{
		"convert", "-s", "AL1", "-a", "100,101", "-o", out,
		"--metrics-file", metrics,
	})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var res struct {
		Stage      string `json:"stage"`
		Detections []struct {
			Arid int64 `json:"arid"`
		} `json:"detections"`
	}
	require.NoError(t, json.Unmarshal(data, &res))
	assert.Equal(t, "AL1", res.Stage)
	require.Len(t, res.Detections, 1)
	assert.Equal(t, int64(100), res.Detections[0].Arid)

	data, err = os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), `cssbridge_skipped_total{reason="missing_arrival"} 1`)
}

func TestConfigCmd(t *testing.T) {
	home := iotesting.SetupTempHome(t)
	t.Setenv("HOME", home)
	t.Setenv("CSSBRIDGE_LOG_DESTINATION", "stderr")
	t.Setenv("CSSBRIDGE_BRIDGE_MONITORING_ORGANIZATION", "TEST")

	cmd := getRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"config"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), "monitoring_organization: TEST")
	assert.Contains(t, buf.String(), "config.yaml")
}
