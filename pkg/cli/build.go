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
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pacage/pacage/pkg/build"
	"github.com/pacage/pacage/pkg/config"
	"github.com/pacage/pacage/pkg/fetch"
	"github.com/pacage/pacage/pkg/pipeline"
	"github.com/pacage/pacage/pkg/repo"
)

// baseMakepkgConf is the host toolchain file every per-package config is
// synthesized from.
// TODO: read from an env var instead of a hardcoded host path.
const baseMakepkgConf = "/etc/makepkg.conf"

const defaultCommunityHost = "aur.archlinux.org"

var (
	continueOnError bool
	concurrency     int
)

var buildCmd = &cobra.Command{
	Use:   "build [package...]",
	Short: "Fetch, patch, and build packages into the repository",
	Long: `Starts the build container, runs the full pipeline against the named
packages (or, with none given, every package configured in pacage.toml),
and stops the container on exit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configDir)
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		if err := cfg.Init(cmd.Context()); err != nil {
			return fmt.Errorf("initializing workspace: %w", err)
		}

		baseTemplate, err := os.ReadFile(baseMakepkgConf)
		if err != nil {
			return fmt.Errorf("reading base toolchain config %s: %w", baseMakepkgConf, err)
		}

		executor := build.NewExecutor(cfg.ContainerRunner, cfg.ServerDir, "")
		executor.MountDir = cfg.HostServerDir
		executor.BuildLogDir = cfg.BuildLogDir

		if err := executor.Start(cmd.Context()); err != nil {
			return fmt.Errorf("starting build container: %w", err)
		}
		defer executor.Stop()

		fetcher := &fetch.Fetcher{
			RecipeRoot:    cfg.PkgsDir(),
			CommunityHost: defaultCommunityHost,
			Print: func(dir string) (string, error) {
				return executor.PrintSourceInfo(cmd.Context(), filepath.Base(dir))
			},
		}

		names := args
		if len(names) == 0 {
			for name := range cfg.Packages {
				names = append(names, name)
			}
		}
		if len(names) == 0 {
			return fmt.Errorf("no packages named on the command line or configured in pacage.toml")
		}

		concurrencyFlag := concurrency
		if concurrencyFlag <= 0 {
			concurrencyFlag = cfg.MaxParDL
		}

		p := &pipeline.Pipeline{
			Config:              cfg,
			Fetcher:             fetcher,
			Executor:            executor,
			Index:               &repo.Index{Dir: cfg.RepoDir()},
			Print:               fetcher.Print,
			BaseMakepkgTemplate: string(baseTemplate),
			ContinueOnError:     continueOnError,
			Concurrency:         concurrencyFlag,
		}

		result, err := p.Run(cmd.Context(), names)
		if err != nil {
			return fmt.Errorf("pipeline run: %w", err)
		}

		slog.Info("build run complete",
			"built", len(result.Built),
			"skipped", len(result.Skipped),
			"failed", len(result.Failed))
		for name, ferr := range result.Failed {
			fmt.Fprintf(cmd.OutOrStdout(), "FAILED %s: %v\n", name, ferr)
		}
		if len(result.Failed) > 0 {
			return fmt.Errorf("%d package(s) failed", len(result.Failed))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().BoolVar(&continueOnError, "continue-on-error", false, "keep building other packages after one fails")
	buildCmd.Flags().IntVar(&concurrency, "concurrency", 0, "max concurrent fetch/download/patch workers (default: max_par_dl from pacage.toml)")
}
