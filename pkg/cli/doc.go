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

// Package cli implements the pacaged command-line interface.
//
// # Commands
//
// init - bootstrap a workspace:
//
//	pacaged init --config /etc/pacage
//
// Reads pacage.toml from the config directory and creates the server
// directory tree (pkgs/, srcs/, repo/, cache/pacman/, and conditionally
// cache/ccache/) that every other command expects to already exist.
//
// build - fetch, patch, and build packages:
//
//	pacaged build --config /etc/pacage bash jq
//	pacaged build --config /etc/pacage --continue-on-error --concurrency 4
//
// With no package names, builds every package named in pacage.toml.
// Starts the build container, runs the full pipeline (fetch, up-to-date
// suppression, download, patch, build, artifact parse, index merge), and
// stops the container on exit regardless of outcome.
//
// # Global Flags
//
//	--config       Configuration directory containing pacage.toml and resolve.toml (default ".")
//	--log-level    Log level: debug, info, warn, error (default "info")
//
// # Environment Variables
//
//	PACAGE_LOG_LEVEL   Overrides the default log level when --log-level is not set
//
// # Architecture
//
// The CLI uses the cobra/viper framework and delegates to specialized
// packages:
//   - pkg/config - pacage.toml/resolve.toml parsing and workspace bootstrap
//   - pkg/fetch - recipe fetching and dependency-frontier coordination
//   - pkg/build - build container lifecycle and toolchain-config synthesis
//   - pkg/repo - repository index merging
//   - pkg/pipeline - end-to-end orchestration
//   - pkg/logging - structured logging
package cli
