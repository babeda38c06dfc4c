package ioconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/cssbridge/internal/ioconfig"
	"github.com/gnames/cssbridge/internal/iofs"
	"github.com/gnames/cssbridge/pkg/config"
	"github.com/gnames/cssbridge/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadTemplate(t *testing.T) {
	path := writeConfig(t, iofs.ConfigYAML)

	res, err := ioconfig.Load(path)
	require.NoError(t, err)

	exp := config.New()
	assert.Equal(t, exp.Database, res.Database)
	assert.Equal(t, exp.Bridge, res.Bridge)
	assert.Equal(t, exp.Log, res.Log)
}

func TestLoadEnv(t *testing.T) {
	path := writeConfig(t, "database:\n  host: filehost\n  port: 5433\n")
	t.Setenv("CSSBRIDGE_DATABASE_HOST", "envhost")
	t.Setenv("CSSBRIDGE_DATABASE_DRIVER", "sqlite")
	t.Setenv("CSSBRIDGE_JOBS_NUMBER", "3")

	res, err := ioconfig.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "envhost", res.Database.Host)
	assert.Equal(t, 5433, res.Database.Port)
	assert.Equal(t, "sqlite", res.Database.Driver)
	assert.Equal(t, 3, res.JobsNumber)

	cfg := config.New()
	cfg.Update(res.ToOptions())
	assert.Equal(t, "envhost", cfg.Database.Host)
	assert.Equal(t, "css", cfg.Database.Database)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		msg  string
		path string
	}{
		{"missing file", filepath.Join(t.TempDir(), "none.yaml")},
		{"broken yaml", writeConfig(t, "database: [host\n")},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			_, err := ioconfig.Load(v.path)
			gnErr, ok := err.(*gn.Error)
			require.True(t, ok)
			assert.Equal(t, errcode.ReadFileError, gnErr.Code)
		})
	}
}

func TestEnvVar(t *testing.T) {
	assert.Equal(t, "CSSBRIDGE_DATABASE_SSL_MODE", ioconfig.EnvVar("database.ssl_mode"))
	assert.Equal(t, "CSSBRIDGE_JOBS_NUMBER", ioconfig.EnvVar("jobs_number"))
}

func TestRender(t *testing.T) {
	cfg := config.New()
	cfg.JobsNumber = 4

	res, err := ioconfig.Render(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(res), "********")
	assert.NotContains(t, string(res), "password: postgres")

	var back config.Config
	require.NoError(t, yaml.Unmarshal(res, &back))
	assert.Equal(t, cfg.Bridge, back.Bridge)
	assert.Equal(t, cfg.Log, back.Log)
	assert.Equal(t, 4, back.JobsNumber)
	assert.Equal(t, cfg.Database.Host, back.Database.Host)

	// original config is not changed
	assert.Equal(t, "postgres", cfg.Database.Password)
}
