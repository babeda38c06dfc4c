package config_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/gnames/cssbridge/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "cssbridge"),
		},
		{
			msg: "cache dir",
			fn:  config.CacheDir,
			res: filepath.Join(tempHome, ".cache", "cssbridge"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "cssbridge", "logs"),
		},
		{
			msg: "config file",
			fn:  config.ConfigFilePath,
			res: filepath.Join(tempHome, ".config", "cssbridge", "config.yaml"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()

	t.Run("creates valid default config", func(t *testing.T) {
		require.NotNil(t, cfg)

		assert.Equal(t, "postgres", cfg.Database.Driver)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "css", cfg.Database.Database)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 1_000, cfg.Database.BatchSize)

		assert.Equal(t, []string{"AL1", "AL2"}, cfg.Bridge.Stages)
		assert.Equal(t, "al1", cfg.Bridge.StageAccounts["AL1"])
		assert.Equal(t, "IDC", cfg.Bridge.MonitoringOrganization)
		assert.Equal(t, 60, cfg.Bridge.IDCacheTTLMinutes)

		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "file", cfg.Log.Destination)

		assert.Equal(t, runtime.NumCPU(), cfg.JobsNumber)
	})

	t.Run("accounts are sorted and unique", func(t *testing.T) {
		c := config.New()
		c.Update([]config.Option{
			config.OptBridgeStageAccounts(map[string]string{
				"AL2": "al2", "AL1": "al1", "SOCCPRO": "al1",
			}),
		})
		assert.Equal(t, []string{"al1", "al2"}, c.Accounts())
	})
}

func TestOptionDatabaseDriver(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets sqlite", "sqlite", "sqlite"},
		{"normalizes case", " SQLite ", "sqlite"},
		{"ignores unknown driver", "oracle", "postgres"},
		{"ignores empty", "", "postgres"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptDatabaseDriver(tt.input)})
			assert.Equal(t, tt.expected, cfg.Database.Driver)
		})
	}
}

func TestOptionDatabasePort(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{"sets valid port", 5433, 5433},
		{"ignores zero", 0, 5432},
		{"ignores negative", -100, 5432},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptDatabasePort(tt.input)})
			assert.Equal(t, tt.expected, cfg.Database.Port)
		})
	}
}

func TestOptionBridgeStages(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "sets stages",
			input:    []string{"SOCCPRO", "AL1", "AL2"},
			expected: []string{"SOCCPRO", "AL1", "AL2"},
		},
		{
			name:     "trims stage names",
			input:    []string{" AL1", "AL2 "},
			expected: []string{"AL1", "AL2"},
		},
		{
			name:     "ignores empty list",
			input:    nil,
			expected: []string{"AL1", "AL2"},
		},
		{
			name:     "ignores empty stage",
			input:    []string{"AL1", " "},
			expected: []string{"AL1", "AL2"},
		},
		{
			name:     "ignores duplicates",
			input:    []string{"AL1", "AL1"},
			expected: []string{"AL1", "AL2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptBridgeStages(tt.input)})
			assert.Equal(t, tt.expected, cfg.Bridge.Stages)
		})
	}
}

func TestOptionBridgeStageAccounts(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptBridgeStageAccounts(map[string]string{"AL1": ""}),
	})
	assert.Equal(t, "al1", cfg.Bridge.StageAccounts["AL1"],
		"empty account is rejected")

	cfg.Update([]config.Option{
		config.OptBridgeStageAccounts(map[string]string{" AL3 ": " al3 "}),
	})
	assert.Equal(t, map[string]string{"AL3": "al3"}, cfg.Bridge.StageAccounts)
}

func TestOptionConvertIDs(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptConvertArids([]int64{1, 2}),
		config.OptConvertOrids([]int64{0}),
		config.OptConvertPrevStage(" AL1 "),
	})
	assert.Equal(t, []int64{1, 2}, cfg.Convert.Arids)
	assert.Nil(t, cfg.Convert.Orids)
	assert.Equal(t, "AL1", cfg.Convert.PrevStage)
}

func TestOptionLogDestination(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets stderr", "stderr", "stderr"},
		{"sets stdout", "STDOUT", "stdout"},
		{"ignores invalid", "syslog", "file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptLogDestination(tt.input)})
			assert.Equal(t, tt.expected, cfg.Log.Destination)
		})
	}
}

func TestToOptions(t *testing.T) {
	src := config.New()
	src.Update([]config.Option{
		config.OptDatabaseDriver("sqlite"),
		config.OptDatabasePath("/tmp/legacy.sqlite"),
		config.OptBridgeStages([]string{"SOCCPRO", "AL1"}),
		config.OptBridgeStageAccounts(map[string]string{
			"SOCCPRO": "soccpro", "AL1": "al1",
		}),
		config.OptBridgeMonitoringOrganization("TEST"),
		config.OptJobsNumber(3),
		config.OptHomeDir("/home/user"),
		config.OptConvertStage("AL1"),
	})

	dst := config.New()
	dst.Update(src.ToOptions())

	assert.Equal(t, src.Database, dst.Database)
	assert.Equal(t, src.Bridge, dst.Bridge)
	assert.Equal(t, src.Log, dst.Log)
	assert.Equal(t, 3, dst.JobsNumber)
	assert.Empty(t, dst.HomeDir, "runtime field is not persisted")
	assert.Empty(t, dst.Convert.Stage, "runtime field is not persisted")
}

func TestSQLitePath(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptHomeDir("/home/user")})
	assert.Equal(t,
		filepath.Join("/home/user", ".local", "share", "cssbridge", "legacy.sqlite"),
		cfg.SQLitePath())

	cfg.Update([]config.Option{config.OptDatabasePath("/data/css.sqlite")})
	assert.Equal(t, "/data/css.sqlite", cfg.SQLitePath())
}
