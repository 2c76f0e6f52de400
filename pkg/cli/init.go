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

	"github.com/spf13/cobra"

	"github.com/pacage/pacage/pkg/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the workspace directory tree a build needs",
	Long: `Reads pacage.toml from --config and creates server_dir and its
subdirectories (pkgs/, srcs/, repo/, cache/pacman/, and conditionally
cache/ccache/ and build_log_dir), so later commands can assume they exist.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(configDir)
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		if err := cfg.Init(cmd.Context()); err != nil {
			return fmt.Errorf("initializing workspace: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "workspace ready at %s\n", cfg.ServerDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
