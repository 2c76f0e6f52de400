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

package recipe

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	pacerrors "github.com/pacage/pacage/pkg/errors"
	"github.com/pacage/pacage/pkg/version"
)

// MetadataFilename is the name of the cached/produced metadata file inside
// a recipe's directory.
const MetadataFilename = ".SRCINFO"

// Recipe is the parsed metadata for one package, identified by Name.
type Recipe struct {
	Name       string
	Version    string
	Release    *string
	Epoch      *uint32
	Depends    []string
	HasSources bool
}

// Identity returns the Recipe's identity hash: its name alone.
func (r *Recipe) Identity() string { return r.Name }

// PackageVersion builds the full version.Version for this recipe.
func (r *Recipe) PackageVersion() (*version.Version, error) {
	if r.Version == "" {
		return nil, pacerrors.New(pacerrors.ErrCodeParse, "recipe has empty pkgver")
	}
	var b strings.Builder
	if r.Epoch != nil {
		fmt.Fprintf(&b, "%d:", *r.Epoch)
	}
	b.WriteString(r.Version)
	if r.Release != nil {
		fmt.Fprintf(&b, "-%s", *r.Release)
	}
	return version.Parse(b.String())
}

// Printer runs the recipe-local tool that prints the metadata text
// ("makepkg --printsrcinfo"), returning its stdout. Implementations
// typically delegate to pkg/build's subprocess runner so this package
// stays exec-free.
type Printer func(dir string) (string, error)

// Load parses a Recipe from the metadata file under dir. If the file is
// absent, print is invoked to produce it, and the result is cached to
// dir/.SRCINFO before parsing.
func Load(dir string, print Printer) (*Recipe, error) {
	path := filepath.Join(dir, MetadataFilename)
	content, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, pacerrors.Wrap(pacerrors.ErrCodeIO, "reading recipe metadata", err)
		}
		printed, perr := print(dir)
		if perr != nil {
			return nil, pacerrors.Wrap(pacerrors.ErrCodeSubprocess, "printing recipe metadata", perr)
		}
		if werr := os.WriteFile(path, []byte(printed), 0o644); werr != nil {
			return nil, pacerrors.Wrap(pacerrors.ErrCodeIO, "caching recipe metadata", werr)
		}
		content = []byte(printed)
		recordMetadataLoad(false)
	} else {
		recordMetadataLoad(true)
	}
	return Parse(string(content))
}

// Parse parses recipe metadata text (key = value per line, multi-valued
// keys repeat). Required: pkgbase, pkgver. Optional: pkgrel, epoch
// (non-negative integer), depends, source. Unknown keys are ignored.
func Parse(text string) (*Recipe, error) {
	var name, ver, rel *string
	var epoch *uint32
	var deps []string
	hasSources := false

	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := scanner.Text()
		idx := strings.IndexByte(line, '=')
		if idx < 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		val := strings.TrimSpace(line[idx+1:])

		switch key {
		case "pkgbase":
			v := val
			name = &v
		case "pkgver":
			v := val
			ver = &v
		case "pkgrel":
			v := val
			rel = &v
		case "epoch":
			n, err := strconv.ParseUint(val, 10, 32)
			if err != nil {
				return nil, pacerrors.Wrapf(pacerrors.ErrCodeParse, "invalid epoch %q", err, val)
			}
			e := uint32(n)
			epoch = &e
		case "depends":
			deps = append(deps, val)
		case "source":
			hasSources = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, pacerrors.Wrap(pacerrors.ErrCodeIO, "scanning recipe metadata", err)
	}

	if name == nil || ver == nil {
		return nil, pacerrors.Newf(pacerrors.ErrCodeParse,
			"missing required field in recipe metadata: pkgbase=%v pkgver=%v", name, ver)
	}

	return &Recipe{
		Name:       *name,
		Version:    *ver,
		Release:    rel,
		Epoch:      epoch,
		Depends:    deps,
		HasSources: hasSources,
	}, nil
}
