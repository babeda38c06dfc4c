package iologger

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/cssbridge/pkg/config"
	"github.com/gnames/cssbridge/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		exp   slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, v := range tests {
		t.Run(v.input, func(t *testing.T) {
			assert.Equal(t, v.exp, parseLevel(v.input))
		})
	}
}

func TestNewHandler(t *testing.T) {
	tests := []struct {
		format string
		exp    string
	}{
		{"json", `"msg":"hello"`},
		{"text", `msg=hello`},
		{"tint", `msg=hello`},
		{"unknown", `"msg":"hello"`},
	}

	for _, v := range tests {
		t.Run(v.format, func(t *testing.T) {
			var buf bytes.Buffer
			h := newHandler(&buf, config.LogConfig{Format: v.format, Level: "info"})
			slog.New(h).Info("hello")
			assert.Contains(t, buf.String(), v.exp)
		})
	}

	var buf bytes.Buffer
	h := newHandler(&buf, config.LogConfig{Format: "json", Level: "error"})
	slog.New(h).Warn("ignored")
	assert.Empty(t, buf.String())
}

func TestInitFile(t *testing.T) {
	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })

	logDir := t.TempDir()
	cfg := config.New().Log
	require.NoError(t, Init(logDir, cfg))
	slog.Info("Log file check")

	data, err := os.ReadFile(filepath.Join(logDir, LogFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Log file check")

	err = Init(filepath.Join(logDir, "missing"), cfg)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.CreateLogFileError, gnErr.Code)
}

func TestCreateLogFileError(t *testing.T) {
	orig := errors.New("read-only file system")
	err := CreateLogFileError("/logs/cssbridge.log", orig)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.CreateLogFileError, gnErr.Code)
	assert.Equal(t, "/logs/cssbridge.log", gnErr.Vars[0])
	assert.ErrorIs(t, gnErr.Err, orig)
}
