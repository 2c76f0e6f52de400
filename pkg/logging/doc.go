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

// Package logging provides structured logging utilities shared across the
// pacage pipeline, fetcher, build executor, patch engine and repository
// merger.
//
// # Overview
//
// This package wraps the standard library slog package with pacage-wide
// defaults and conventions: environment-based log level configuration,
// module/version context injection, and source location tracking for
// debug logs.
//
// # Log Levels
//
// Supported log levels (case-insensitive): DEBUG, INFO (default),
// WARN/WARNING, ERROR.
//
// # Usage
//
// Setting the default logger (recommended, call once from main):
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("pacaged", "v1.0.0")
//	    slog.Info("pipeline starting")
//	}
//
// Creating a scoped logger:
//
//	logger := logging.New("build", "v1.0.0", "debug")
//	logger.Info("container started", "name", containerName)
//
// Setting an explicit level regardless of the environment:
//
//	logging.SetDefaultStructuredLoggerWithLevel("repo", "v1.0.0", "warn")
//
// # Environment Configuration
//
// PACAGE_LOG_LEVEL controls verbosity:
//
//	PACAGE_LOG_LEVEL=debug pacaged build
//
// If unset, defaults to INFO.
//
// # Output Format
//
// All logs are written to stderr in JSON format with "module" and
// "version" fields attached to every record.
package logging
