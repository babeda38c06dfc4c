// Package config provides configuration management for cssbridge.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: driver, host, port, user, password, database, ssl_mode,
//     path, batch_size
//   - Log: level, format, destination
//   - Bridge: stages, stage_accounts, monitoring_organization,
//     id_cache_ttl_minutes
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Convert.Stage, PrevStage, Arids, Orids, Output, MetricsFile
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use CSSBRIDGE_ prefix with underscores for nesting:
//
//	CSSBRIDGE_DATABASE_DRIVER=sqlite
//	CSSBRIDGE_DATABASE_PATH=/data/legacy.sqlite
//	CSSBRIDGE_LOG_LEVEL=info
//	CSSBRIDGE_BRIDGE_MONITORING_ORGANIZATION=IDC
//	CSSBRIDGE_JOBS_NUMBER=8
package config

import (
	"maps"
	"runtime"
	"slices"
)

// Config represents the complete cssbridge configuration.
type Config struct {
	// Database contains connection settings of the legacy CSS store.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Bridge describes processing stages and their legacy accounts.
	Bridge BridgeConfig `mapstructure:"bridge" yaml:"bridge"`

	// Convert contains settings specific to the convert command.
	Convert ConvertConfig `mapstructure:"-" yaml:"-"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for parallel operations.
	// Default value is set according to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string `mapstructure:"-" yaml:"-"`
}

// DatabaseConfig contains legacy database connection parameters.
type DatabaseConfig struct {
	// Driver selects the legacy store: "postgres" or "sqlite".
	Driver string `mapstructure:"driver" yaml:"driver"`

	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// Path is the location of the sqlite file. Used only with the
	// "sqlite" driver. Empty value means <data dir>/legacy.sqlite.
	Path string `mapstructure:"path" yaml:"path"`

	// BatchSize limits how many ids go into one IN (...) query.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// BridgeConfig describes how processing stages map to legacy accounts.
type BridgeConfig struct {
	// Stages lists processing stages in their processing order.
	// A previous stage is recognized only if it is in this list.
	Stages []string `mapstructure:"stages" yaml:"stages"`

	// StageAccounts maps a stage name to the legacy database account
	// (schema on postgres, table prefix on sqlite) that stores its records.
	StageAccounts map[string]string `mapstructure:"stage_accounts" yaml:"stage_accounts"`

	// MonitoringOrganization is attached to every signal detection.
	MonitoringOrganization string `mapstructure:"monitoring_organization" yaml:"monitoring_organization"`

	// IDCacheTTLMinutes is how long generated ids stay memoized.
	IDCacheTTLMinutes int `mapstructure:"id_cache_ttl_minutes" yaml:"id_cache_ttl_minutes"`
}

// ConvertConfig contains runtime settings of the convert command.
type ConvertConfig struct {
	// Stage is the current processing stage.
	Stage string

	// PrevStage is the optional previous processing stage.
	PrevStage string

	// Arids are arrival ids to convert into signal detections.
	Arids []int64

	// Orids are origin ids to convert into location uncertainties and
	// magnitude solutions.
	Orids []int64

	// Output is a file for JSON results. Empty means STDOUT.
	Output string

	// MetricsFile, if set, receives conversion metrics in Prometheus
	// text format.
	MetricsFile string
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Driver:    "postgres",
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "css",
			SSLMode:   "disable",
			BatchSize: 1_000,
		},
		Bridge: BridgeConfig{
			Stages: []string{"AL1", "AL2"},
			StageAccounts: map[string]string{
				"AL1": "al1",
				"AL2": "al2",
			},
			MonitoringOrganization: "IDC",
			IDCacheTTLMinutes:      60,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}

// Accounts returns legacy accounts of all stages, sorted and unique.
func (c *Config) Accounts() []string {
	uniq := make(map[string]struct{})
	for _, v := range c.Bridge.StageAccounts {
		uniq[v] = struct{}{}
	}
	return slices.Sorted(maps.Keys(uniq))
}
