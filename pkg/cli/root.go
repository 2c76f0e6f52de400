// Copyright (c) 2025, pacage contributors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pacage/pacage/pkg/logging"
)

const (
	name           = "pacaged"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"

	configDir string
	logLevel  string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   name,
	Short: "pacaged - from-source Arch-family package builder and repository manager",
	Long: fmt.Sprintf(`pacaged - from-source Arch-family package builder and repository manager

Version: %s
Commit:  %s
Built:   %s

Fetches package recipes, builds them inside a container against a shared
toolchain configuration, and maintains a pacman-compatible repository from
the results.`, version, commit, date),
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to the rootCmd.
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nreceived interrupt signal, shutting down gracefully...")
		cancel()
	}()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initLogger)

	rootCmd.PersistentFlags().StringVar(&configDir, "config", ".", "configuration directory containing pacage.toml and resolve.toml")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.SetEnvPrefix("PACAGE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// initLogger resolves --config and --log-level through viper, so an
// explicit flag wins, PACAGE_CONFIG/PACAGE_LOG_LEVEL take effect when the
// flag was left at its default, and the flag's own default is the last
// resort. It then configures slog before any command executes.
func initLogger() {
	configDir = viper.GetString("config")
	logLevel = viper.GetString("log-level")

	logging.SetDefaultStructuredLoggerWithLevel(name, version, logLevel)
	slog.Info("starting", "name", name, "version", version, "commit", commit, "date", date, "logLevel", logLevel)
}
