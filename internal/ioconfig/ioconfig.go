// Package ioconfig reads config.yaml with environment overrides and
// renders configuration back to YAML.
package ioconfig

import (
	"os"
	"strings"

	"github.com/gnames/cssbridge/internal/iofs"
	"github.com/gnames/cssbridge/pkg/config"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// envPrefix is the prefix of all environment variables of cssbridge.
const envPrefix = "CSSBRIDGE"

// envKeys are persistent settings that can be set by environment
// variables. They match fields of config.ToOptions().
var envKeys = []string{
	"database.driver",
	"database.host",
	"database.port",
	"database.user",
	"database.password",
	"database.database",
	"database.ssl_mode",
	"database.path",
	"database.batch_size",

	"bridge.monitoring_organization",
	"bridge.id_cache_ttl_minutes",

	"log.level",
	"log.format",
	"log.destination",

	"jobs_number",
}

// Load reads the config file at path. Environment variables override
// values from the file. The result contains only what the file and
// environment provide, use ToOptions to apply it to defaults.
func Load(path string) (*config.Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	initEnvVars(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(path, err)
	}

	var res config.Config
	if err := v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(path, err)
	}

	// viper lowercases map keys, stage names are case sensitive.
	accounts, err := stageAccounts(path)
	if err != nil {
		return nil, iofs.ReadFileError(path, err)
	}
	if len(accounts) > 0 {
		res.Bridge.StageAccounts = accounts
	}
	return &res, nil
}

func stageAccounts(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw struct {
		Bridge struct {
			StageAccounts map[string]string `yaml:"stage_accounts"`
		} `yaml:"bridge"`
	}
	if err = yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return raw.Bridge.StageAccounts, nil
}

func initEnvVars(v *viper.Viper) {
	// Variables are bound one by one, so it is clear which of them are
	// allowed.
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range envKeys {
		_ = v.BindEnv(key, EnvVar(key))
	}
	v.AutomaticEnv()
}

// EnvVar returns the environment variable of a config key.
func EnvVar(key string) string {
	key = strings.ReplaceAll(key, ".", "_")
	return envPrefix + "_" + strings.ToUpper(key)
}

// persistent mirrors the part of Config that goes to config.yaml.
type persistent struct {
	Database   config.DatabaseConfig `yaml:"database"`
	Bridge     config.BridgeConfig   `yaml:"bridge"`
	Log        config.LogConfig      `yaml:"log"`
	JobsNumber int                   `yaml:"jobs_number"`
}

// Render converts persistent settings of cfg to YAML. The password is
// masked.
func Render(cfg *config.Config) ([]byte, error) {
	p := persistent{
		Database:   cfg.Database,
		Bridge:     cfg.Bridge,
		Log:        cfg.Log,
		JobsNumber: cfg.JobsNumber,
	}
	if p.Database.Password != "" {
		p.Database.Password = "********"
	}
	return yaml.Marshal(p)
}
