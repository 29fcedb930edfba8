/*
 *     Copyright 2025 The Forecaster Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package cmd

import (
	"context"
	"os"
	"path"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/salesforecast/forecaster/cmd/dependency"
	logger "github.com/salesforecast/forecaster/internal/fclog"
	"github.com/salesforecast/forecaster/forecaster"
	"github.com/salesforecast/forecaster/forecaster/config"
	"github.com/salesforecast/forecaster/pkg/fcpath"
	"github.com/salesforecast/forecaster/pkg/pidfile"
	"github.com/salesforecast/forecaster/pkg/types"
	"github.com/salesforecast/forecaster/version"
)

var (
	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "forecaster",
	Short: "the retail sales forecaster",
	Long: `Forecaster is a long-running process serving next-day units sold forecasts. It loads one trained
model artifact at startup, translates form or json submissions into the feature vector the model was
trained on and answers with the rounded forecast or a structured error.`,
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Convert config.
		if err := cfg.Convert(); err != nil {
			return err
		}

		// Validate config.
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Initialize fcpath.
		f, err := initFcpath(&cfg.Server)
		if err != nil {
			return errors.Wrap(err, "init forecaster paths")
		}

		// Initialize logger.
		if err := logger.InitForecaster(cfg.Verbose, cfg.Console, f.LogDir(), cfg.LogRotateConfig()); err != nil {
			return errors.Wrap(err, "init forecaster logger")
		}
		logger.RedirectStdoutAndStderr(cfg.Console, path.Join(f.LogDir(), types.ForecasterName))

		return runForecaster(ctx, f)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func init() {
	// Initialize default forecaster config.
	cfg = config.New()
	// Initialize command and config.
	dependency.InitCommandAndConfig(rootCmd, true, cfg)
}

func initFcpath(cfg *config.ServerConfig) (fcpath.Fcpath, error) {
	var options []fcpath.Option
	if cfg.LogDir != "" {
		options = append(options, fcpath.WithLogDir(cfg.LogDir))
	}

	if cfg.DataDir != "" {
		options = append(options, fcpath.WithDataDir(cfg.DataDir))
	}

	return fcpath.New(options...)
}

func runForecaster(ctx context.Context, f fcpath.Fcpath) error {
	logger.Infof("version:\n%s", version.Version())

	ff := dependency.InitMonitor(cfg.PProfPort)
	defer ff()

	pf, err := pidfile.New(path.Join(f.WorkHome(), types.ForecasterPIDFileName))
	if err != nil {
		return errors.Wrap(err, "write pid file")
	}
	defer func() {
		if err := pf.Remove(); err != nil {
			logger.Warnf("remove pid file %s: %s", pf.Path(), err.Error())
		}
	}()

	svr, err := forecaster.New(ctx, cfg, f)
	if err != nil {
		return errors.Wrapf(err, "start forecaster with model %s", cfg.Model.ArtifactPath)
	}

	dependency.SetupQuitSignalHandler(func() { svr.Stop() })
	return svr.Serve()
}
