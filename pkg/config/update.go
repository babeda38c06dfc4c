package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the persistent fields of the Config into options.
// Runtime-only fields (HomeDir, Convert) are left out. Empty and zero
// values produce no option.
func (c *Config) ToOptions() []Option {
	res := c.Database.options()
	res = append(res, c.Bridge.options()...)
	res = append(res, c.Log.options()...)
	if c.JobsNumber > 0 {
		res = append(res, OptJobsNumber(c.JobsNumber))
	}
	return res
}

func (d DatabaseConfig) options() []Option {
	res := strOptions(
		strOpt{d.Driver, OptDatabaseDriver},
		strOpt{d.Host, OptDatabaseHost},
	)
	if d.Port > 0 {
		res = append(res, OptDatabasePort(d.Port))
	}
	res = append(res, strOptions(
		strOpt{d.User, OptDatabaseUser},
		strOpt{d.Password, OptDatabasePassword},
		strOpt{d.Database, OptDatabaseDatabase},
		strOpt{d.SSLMode, OptDatabaseSSLMode},
		strOpt{d.Path, OptDatabasePath},
	)...)
	if d.BatchSize > 0 {
		res = append(res, OptDatabaseBatchSize(d.BatchSize))
	}
	return res
}

func (b BridgeConfig) options() []Option {
	var res []Option
	if len(b.Stages) > 0 {
		res = append(res, OptBridgeStages(b.Stages))
	}
	if len(b.StageAccounts) > 0 {
		res = append(res, OptBridgeStageAccounts(b.StageAccounts))
	}
	res = append(res, strOptions(
		strOpt{b.MonitoringOrganization, OptBridgeMonitoringOrganization},
	)...)
	if b.IDCacheTTLMinutes > 0 {
		res = append(res, OptBridgeIDCacheTTLMinutes(b.IDCacheTTLMinutes))
	}
	return res
}

func (l LogConfig) options() []Option {
	return strOptions(
		strOpt{l.Format, OptLogFormat},
		strOpt{l.Level, OptLogLevel},
		strOpt{l.Destination, OptLogDestination},
	)
}

type strOpt struct {
	val string
	fn  func(string) Option
}

func strOptions(opts ...strOpt) []Option {
	var res []Option
	for _, v := range opts {
		if v.val != "" {
			res = append(res, v.fn(v.val))
		}
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Database.Driver": {"postgres": s, "sqlite": s},
		"Database.SSLMode": {"disable": s, "require": s,
			"verify-ca": s, "verify-full": s},
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s, "tint": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}
