package config

import (
	"maps"
	"strings"

	"github.com/gnames/gn"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDatabaseDriver sets the legacy store driver.
// Valid values: "postgres", "sqlite".
func OptDatabaseDriver(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.Driver", s) {
			c.Database.Driver = s
		}
	}
}

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptDatabasePath sets the sqlite file location.
func OptDatabasePath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Path", s) {
			c.Database.Path = s
		}
	}
}

// OptDatabaseBatchSize sets how many ids go into one query.
func OptDatabaseBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.Database.BatchSize = i
		}
	}
}

// OptBridgeStages sets processing stages in their processing order.
// The whole list is rejected if any stage is empty or repeated.
func OptBridgeStages(ss []string) Option {
	res := make([]string, 0, len(ss))
	for _, v := range ss {
		res = append(res, strings.TrimSpace(v))
	}
	return func(c *Config) {
		if isValidStages(res) {
			c.Bridge.Stages = res
		}
	}
}

// OptBridgeStageAccounts sets the mapping from a stage to its legacy
// database account. The whole map is rejected if any key or value is empty.
func OptBridgeStageAccounts(m map[string]string) Option {
	res := make(map[string]string, len(m))
	for k, v := range m {
		res[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return func(c *Config) {
		if isValidAccounts(res) {
			c.Bridge.StageAccounts = res
		}
	}
}

// OptBridgeMonitoringOrganization sets the organization attached to
// signal detections.
func OptBridgeMonitoringOrganization(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Monitoring Organization", s) {
			c.Bridge.MonitoringOrganization = s
		}
	}
}

// OptBridgeIDCacheTTLMinutes sets how long generated ids stay memoized.
func OptBridgeIDCacheTTLMinutes(i int) Option {
	return func(c *Config) {
		if isValidInt("ID Cache TTL", i) {
			c.Bridge.IDCacheTTLMinutes = i
		}
	}
}

// OptConvertStage sets the current processing stage.
// Runtime-only field - not in ToOptions().
func OptConvertStage(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Stage", s) {
			c.Convert.Stage = s
		}
	}
}

// OptConvertPrevStage sets the previous processing stage.
// Empty value is allowed and means there is no previous stage.
// Runtime-only field - not in ToOptions().
func OptConvertPrevStage(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		c.Convert.PrevStage = s
	}
}

// OptConvertArids sets arrival ids to convert.
// Runtime-only field - not in ToOptions().
func OptConvertArids(ii []int64) Option {
	return func(c *Config) {
		if isValidIDs("Arids", ii) {
			c.Convert.Arids = ii
		}
	}
}

// OptConvertOrids sets origin ids to convert.
// Runtime-only field - not in ToOptions().
func OptConvertOrids(ii []int64) Option {
	return func(c *Config) {
		if isValidIDs("Orids", ii) {
			c.Convert.Orids = ii
		}
	}
}

// OptConvertOutput sets a file for JSON results.
// Runtime-only field - not in ToOptions().
func OptConvertOutput(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Output", s) {
			c.Convert.Output = s
		}
	}
}

// OptConvertMetricsFile sets a file for conversion metrics.
// Runtime-only field - not in ToOptions().
func OptConvertMetricsFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Metrics File", s) {
			c.Convert.MetricsFile = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for parallel operations.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}

func isValidStages(ss []string) bool {
	if len(ss) == 0 {
		gn.Warn("<em>Stages</em> cannot be empty, ignoring")
		return false
	}
	seen := make(map[string]struct{}, len(ss))
	for _, v := range ss {
		if v == "" {
			gn.Warn("<em>Stages</em> contain an empty stage, ignoring")
			return false
		}
		if _, ok := seen[v]; ok {
			gn.Warn("<em>Stages</em> contain duplicate stage '%s', ignoring", v)
			return false
		}
		seen[v] = struct{}{}
	}
	return true
}

func isValidAccounts(m map[string]string) bool {
	if len(m) == 0 {
		gn.Warn("<em>Stage Accounts</em> cannot be empty, ignoring")
		return false
	}
	for k, v := range maps.All(m) {
		if k == "" || v == "" {
			gn.Warn(
				"<em>Stage Accounts</em> have an empty stage or account "+
					"('%s': '%s'), ignoring", k, v,
			)
			return false
		}
	}
	return true
}

func isValidIDs(name string, ii []int64) bool {
	if len(ii) == 0 {
		return false
	}
	for _, v := range ii {
		if v <= 0 {
			gn.Warn("<em>%s</em> must be positive, ignoring %d", name, v)
			return false
		}
	}
	return true
}
