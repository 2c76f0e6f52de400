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
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/pacage/pacage/pkg/build"
	pacerrors "github.com/pacage/pacage/pkg/errors"
	"github.com/pacage/pacage/pkg/fetch"
	"github.com/pacage/pacage/pkg/recipe"
)

const (
	configFilename   = "pacage.toml"
	resolverFilename = "resolve.toml"
	defaultServerDir = "/srv/pacage"
)

// Package holds the per-package overrides a pacage.toml table entry can
// carry: its recipe origin, toolchain overrides, and an optional override
// of the default dependency-expansion policy.
type Package struct {
	Name     string
	Origin   fetch.Origin
	Makepkg  *build.Toolchain
	DepsFlag *bool
}

// NeedDeps resolves whether this package's dependencies should be
// expanded, given the config-wide default.
func (p *Package) NeedDeps(defaultDeps bool) bool {
	if p.DepsFlag != nil {
		return *p.DepsFlag
	}
	return defaultDeps
}

// Config is the fully parsed, resolver-applied configuration for one
// pacage instance.
type Config struct {
	ConfDir         string
	ContainerRunner string
	ServerDir       string
	HostServerDir   string
	BuildLogDir     string
	MaxParDL        int
	Deps            bool
	Makepkg         *build.Toolchain
	Packages        map[string]*Package
	Resolver        recipe.Resolver
}

// Resolve applies the alias table to a requested name.
func (c *Config) Resolve(name string) string {
	return c.Resolver.Resolve(name)
}

// EnsurePackage returns the Package for a (resolved) name, creating a
// default registry-origin entry with no overrides if one is not already
// configured. The returned name is the resolved, canonical one.
func (c *Config) EnsurePackage(name string) (string, *Package) {
	name = c.Resolve(name)
	if pkg, ok := c.Packages[name]; ok {
		return name, pkg
	}
	pkg := &Package{Name: name, Origin: fetch.Origin{Kind: fetch.OriginRegistry}}
	c.Packages[name] = pkg
	return name, pkg
}

// Load reads confDir/pacage.toml and confDir/resolve.toml and produces a
// fully parsed Config. Every top-level table other than "makepkg" is
// treated as a per-package override table named by its key.
func Load(confDir string) (*Config, error) {
	absDir, err := filepath.Abs(confDir)
	if err != nil {
		return nil, pacerrors.Wrap(pacerrors.ErrCodeIO, "resolving config directory", err)
	}

	data, err := os.ReadFile(filepath.Join(absDir, configFilename))
	if err != nil {
		return nil, pacerrors.Wrap(pacerrors.ErrCodeIO, "reading "+configFilename, err)
	}

	var top map[string]toml.Primitive
	meta, err := toml.Decode(string(data), &top)
	if err != nil {
		return nil, pacerrors.Wrap(pacerrors.ErrCodeParse, "parsing "+configFilename, err)
	}

	cfg := &Config{
		ConfDir:         absDir,
		ContainerRunner: "docker",
		ServerDir:       defaultServerDir,
		MaxParDL:        1,
		Packages:        make(map[string]*Package),
	}

	for key, prim := range top {
		switch key {
		case "container_runner":
			if err := meta.PrimitiveDecode(prim, &cfg.ContainerRunner); err != nil {
				return nil, pacerrors.Wrapf(pacerrors.ErrCodeParse, "invalid %q", err, key)
			}
		case "server_dir":
			if err := meta.PrimitiveDecode(prim, &cfg.ServerDir); err != nil {
				return nil, pacerrors.Wrapf(pacerrors.ErrCodeParse, "invalid %q", err, key)
			}
		case "host_server_dir":
			if err := meta.PrimitiveDecode(prim, &cfg.HostServerDir); err != nil {
				return nil, pacerrors.Wrapf(pacerrors.ErrCodeParse, "invalid %q", err, key)
			}
		case "build_log_dir":
			if err := meta.PrimitiveDecode(prim, &cfg.BuildLogDir); err != nil {
				return nil, pacerrors.Wrapf(pacerrors.ErrCodeParse, "invalid %q", err, key)
			}
		case "max_par_dl":
			if err := meta.PrimitiveDecode(prim, &cfg.MaxParDL); err != nil {
				return nil, pacerrors.Wrapf(pacerrors.ErrCodeParse, "invalid %q", err, key)
			}
		case "deps":
			if err := meta.PrimitiveDecode(prim, &cfg.Deps); err != nil {
				return nil, pacerrors.Wrapf(pacerrors.ErrCodeParse, "invalid %q", err, key)
			}
		case "makepkg":
			var raw tomlMakepkg
			if err := meta.PrimitiveDecode(prim, &raw); err != nil {
				return nil, pacerrors.Wrap(pacerrors.ErrCodeParse, "invalid \"makepkg\"", err)
			}
			cfg.Makepkg = raw.toolchain()
		default:
			var raw tomlPackage
			if err := meta.PrimitiveDecode(prim, &raw); err != nil {
				return nil, pacerrors.Wrapf(pacerrors.ErrCodeParse, "invalid package table %q", err, key)
			}
			origin, err := parseOrigin(raw.Repo)
			if err != nil {
				return nil, pacerrors.Wrapf(pacerrors.ErrCodeParse, "package %q", err, key)
			}
			cfg.Packages[key] = &Package{
				Name:     key,
				Origin:   origin,
				Makepkg:  raw.Makepkg.toolchain(),
				DepsFlag: raw.Deps,
			}
		}
	}

	if cfg.MaxParDL <= 0 {
		cfg.MaxParDL = 1
	}

	resolver, err := recipe.LoadResolver(filepath.Join(absDir, resolverFilename))
	if err != nil {
		return nil, err
	}
	cfg.Resolver = resolver

	return cfg, nil
}

// tomlMakepkg is the wire shape of a [makepkg] (or per-package [x.makepkg])
// table before being lifted into a build.Toolchain.
type tomlMakepkg struct {
	Packager  *string `toml:"packager"`
	MakeFlags *string `toml:"makeflags"`
	CFlags    *string `toml:"cflags"`
	CXXFlags  *string `toml:"cxxflags"`
	RustFlags *string `toml:"rustflags"`
	LDFlags   *string `toml:"ldflags"`
	LTOFlags  *string `toml:"ltoflags"`
	CCache    *bool   `toml:"ccache"`
}

func (m tomlMakepkg) toolchain() *build.Toolchain {
	if m == (tomlMakepkg{}) {
		return nil
	}
	return &build.Toolchain{
		Packager:  m.Packager,
		MakeFlags: m.MakeFlags,
		CFlags:    m.CFlags,
		CXXFlags:  m.CXXFlags,
		RustFlags: m.RustFlags,
		LDFlags:   m.LDFlags,
		LTOFlags:  m.LTOFlags,
		CCache:    m.CCache,
	}
}

// tomlPackage is the wire shape of a per-package table.
type tomlPackage struct {
	Repo    string      `toml:"repo"`
	Deps    *bool       `toml:"deps"`
	Makepkg tomlMakepkg `toml:"makepkg"`
}

// parseOrigin maps a package table's "repo" string onto a fetch.Origin:
// empty or "registry" selects the package's canonical registry, "aur"
// selects the community host, an "https://" value is a direct remote URL,
// and a "file://" value is a local path with the scheme stripped.
func parseOrigin(repo string) (fetch.Origin, error) {
	switch {
	case repo == "" || repo == "registry":
		return fetch.Origin{Kind: fetch.OriginRegistry}, nil
	case repo == "aur":
		return fetch.Origin{Kind: fetch.OriginCommunity}, nil
	case len(repo) >= 7 && repo[:7] == "file://":
		return fetch.Origin{Kind: fetch.OriginLocalPath, Value: repo[7:]}, nil
	case len(repo) >= 8 && repo[:8] == "https://", len(repo) >= 7 && repo[:7] == "http://":
		return fetch.Origin{Kind: fetch.OriginRemoteURL, Value: repo}, nil
	default:
		return fetch.Origin{}, fmt.Errorf("unrecognized repo origin %q", repo)
	}
}
