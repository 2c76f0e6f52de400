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

package config

import (
	"context"
	"os"
	"path/filepath"

	pacerrors "github.com/pacage/pacage/pkg/errors"
)

// PkgsDir is the directory recipes are cloned into.
func (c *Config) PkgsDir() string { return filepath.Join(c.ServerDir, "pkgs") }

// SrcsDir is the directory package sources are downloaded into.
func (c *Config) SrcsDir() string { return filepath.Join(c.ServerDir, "srcs") }

// RepoDir is the directory the package repository index and artifacts live in.
func (c *Config) RepoDir() string { return filepath.Join(c.ServerDir, "repo") }

// PkgSrcDir is the source directory for a single package.
func (c *Config) PkgSrcDir(name string) string { return filepath.Join(c.SrcsDir(), name) }

// PkgDir is the recipe directory for a single package.
func (c *Config) PkgDir(name string) string { return filepath.Join(c.PkgsDir(), name) }

// Init creates the workspace directories the build pipeline expects to
// already exist: pkgs/, srcs/, repo/, cache/pacman/, the optional log
// directory, and cache/ccache/ when any toolchain profile enables ccache.
func (c *Config) Init(ctx context.Context) error {
	dirs := []string{
		c.ServerDir,
		c.PkgsDir(),
		c.SrcsDir(),
		c.RepoDir(),
		filepath.Join(c.ServerDir, "cache", "pacman"),
	}
	if c.BuildLogDir != "" {
		dirs = append(dirs, c.BuildLogDir)
	}
	if c.anyCCacheEnabled() {
		dirs = append(dirs, filepath.Join(c.ServerDir, "cache", "ccache"))
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return pacerrors.Wrap(pacerrors.ErrCodeIO, "creating workspace directory "+dir, err)
		}
	}
	return nil
}

func (c *Config) anyCCacheEnabled() bool {
	if c.Makepkg != nil && c.Makepkg.CCache != nil && *c.Makepkg.CCache {
		return true
	}
	for _, pkg := range c.Packages {
		if pkg.Makepkg != nil && pkg.Makepkg.CCache != nil && *pkg.Makepkg.CCache {
			return true
		}
	}
	return false
}
