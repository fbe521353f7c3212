/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package cli provides the guardctl command-line interface.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"dirpx.dev/guard/apis"
	"dirpx.dev/guard/internal/config"
	"dirpx.dev/guard/internal/logging"
	"dirpx.dev/guard/mapper"
	"github.com/spf13/cobra"
)

// Global flags
var (
	jsonOutput bool
	envFile    string
)

var rootCmd = &cobra.Command{
	Use:   "guardctl",
	Short: "Inspect and serve guarded native operations",
	Long: `guardctl lists the guarded call sites compiled into this binary,
explains how their failures map onto HTTP and gRPC statuses, and serves a
small HTTP API that runs a subset of them.

Configuration is read from the environment after merging an optional .env
file (GUARD_LOG_LEVEL, GUARD_ROOT, GUARD_STATUS_OVERRIDES, ...).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// ExitFunc is the function called to exit the program.
// Can be overridden for testing.
var ExitFunc = os.Exit

// Execute runs the root command. It is called by main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
		ExitFunc(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file merged before reading configuration")
}

// env is what every command needs from configuration.
type env struct {
	cfg    config.Config
	log    *slog.Logger
	mapper apis.Mapper
}

// loadEnv reads configuration and builds the logger and the status mapper.
// Logs go to logOut.
func loadEnv(logOut io.Writer) (*env, error) {
	cfg, err := config.Load[config.Config](envFile)
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat, logOut)
	if err != nil {
		return nil, err
	}
	opts, err := mapper.ParseOverrides(cfg.StatusOverrides)
	if err != nil {
		return nil, err
	}
	m, err := mapper.New(opts...)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: log, mapper: m}, nil
}
