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
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/gnames/cssbridge/internal/ioconfig"
	"github.com/gnames/cssbridge/internal/iodb"
	"github.com/gnames/cssbridge/internal/iofs"
	"github.com/gnames/cssbridge/internal/iologger"
	app "github.com/gnames/cssbridge/pkg"
	"github.com/gnames/cssbridge/pkg/config"
	"github.com/gnames/cssbridge/pkg/db"
	"github.com/gnames/gn"
	"github.com/gnames/gnlib"
	"github.com/spf13/cobra"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd builds the root command with all subcommands.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "cssbridge",
		Short:   "Converts legacy CSS3.0 seismic records to common object model",
		Long: `cssbridge reads arrivals, assocs, origins and magnitudes of CSS3.0
legacy accounts and converts them into signal detections, hypotheses,
location uncertainties, feature predictions and network magnitudes.

Commands:
  - create: create legacy tables of all configured accounts
  - convert: convert records of a processing stage to JSON
  - config: print the effective configuration

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (CSSBRIDGE_*)
  3. Config file (~/.config/cssbridge/config.yaml)
  4. Built-in defaults

Nested fields use underscores (database.host is CSSBRIDGE_DATABASE_HOST).`,
		PersistentPreRunE: bootstrap,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Remove the automatic "cssbridge version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for cssbridge")

	rootCmd.AddCommand(getCreateCmd(), getConvertCmd(), getConfigCmd())
	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = ioconfig.Load(config.ConfigFilePath(homeDir)); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings
	if err = iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded", "config_file", config.ConfigFilePath(homeDir))
	return nil
}

// connect opens the legacy store. A sqlite store without explicit path
// lives in the data directory.
func connect(ctx context.Context) (db.Operator, error) {
	dbCfg := cfg.Database
	if dbCfg.Driver == db.SQLite {
		dbCfg.Path = cfg.SQLitePath()
	}

	op := iodb.NewOperator()
	if err := op.Connect(ctx, &dbCfg); err != nil {
		return nil, err
	}
	return op, nil
}

// printError shows the troubleshooting message of connection failures
// and the short message of all other errors.
func printError(err error) {
	var cf iodb.ConnectionFailure
	if errors.As(err, &cf) {
		gnlib.PrintUserMessage(cf)
		return
	}
	gn.PrintErrorMessage(err)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
