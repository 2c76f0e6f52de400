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

package logging

import (
	"log"
	"log/slog"
	"os"
	"strings"
)

// envLogLevel is the environment variable consulted when no explicit level
// is supplied.
const envLogLevel = "PACAGE_LOG_LEVEL"

// ParseLevel parses a case-insensitive level name, defaulting to Info for
// unset or unrecognized values.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds a structured slog.Logger writing JSON to stderr, tagging every
// record with module and version, at the given explicit level.
func New(module, version, level string) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level:     ParseLevel(level),
		AddSource: ParseLevel(level) == slog.LevelDebug,
	})
	return slog.New(handler).With("module", module, "version", version)
}

// NewStructuredLogger builds a logger whose level is read from
// PACAGE_LOG_LEVEL.
func NewStructuredLogger(module, version string) *slog.Logger {
	return New(module, version, os.Getenv(envLogLevel))
}

// SetDefaultStructuredLogger installs a logger built from PACAGE_LOG_LEVEL
// as slog's package-level default.
func SetDefaultStructuredLogger(module, version string) {
	slog.SetDefault(NewStructuredLogger(module, version))
}

// SetDefaultStructuredLoggerWithLevel installs a logger at an explicit
// level as slog's package-level default, ignoring the environment.
func SetDefaultStructuredLoggerWithLevel(module, version, level string) {
	slog.SetDefault(New(module, version, level))
}

// NewLogLogger adapts a *slog.Logger to a standard library *log.Logger at
// the given level, for interop with APIs that require one (e.g. the
// container engine client's verbose transport logging).
func NewLogLogger(logger *slog.Logger, level slog.Level) *log.Logger {
	return slog.NewLogLogger(logger.Handler(), level)
}
