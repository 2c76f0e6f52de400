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

package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pacage/pacage/pkg/artifact"
	"github.com/pacage/pacage/pkg/build"
	"github.com/pacage/pacage/pkg/config"
	pacerrors "github.com/pacage/pacage/pkg/errors"
	"github.com/pacage/pacage/pkg/fetch"
	"github.com/pacage/pacage/pkg/recipe"
	"github.com/pacage/pacage/pkg/repo"
	"github.com/pacage/pacage/pkg/version"
)

// recipeFetcher is the subset of *fetch.Fetcher the pipeline depends on;
// tests substitute it to exercise orchestration without shelling out.
type recipeFetcher interface {
	Fetch(ctx context.Context, name string, origin fetch.Origin) (*recipe.Recipe, error)
}

// buildExecutor is the subset of *build.Executor the pipeline depends on;
// tests substitute it to exercise up-to-date suppression and error
// propagation without a container runtime.
type buildExecutor interface {
	DownloadSources(ctx context.Context, rec *recipe.Recipe, recipeDir string, pkg, def *build.Toolchain, baseTemplate string, print recipe.Printer) (*recipe.Recipe, error)
	BuildPackage(ctx context.Context, rec *recipe.Recipe, pkg, def *build.Toolchain, baseTemplate string) (time.Duration, error)
}

// artifactParser is the subset of artifact.Parse the pipeline depends on.
type artifactParser func(pkgfile string) (*artifact.Result, error)

// patcher is the subset of patch.Apply the pipeline depends on.
type patcher func(ctx context.Context, confDir, pkgSrcDir string, rec *recipe.Recipe) (bool, error)

// Pipeline wires the fetcher, build executor, patch engine, and
// repository merger together into one end-to-end run.
type Pipeline struct {
	Config              *config.Config
	Fetcher             recipeFetcher
	Executor            buildExecutor
	Index               *repo.Index
	Print               recipe.Printer
	BaseMakepkgTemplate string
	ContinueOnError     bool
	Concurrency         int
	Arch                string

	// ParseArtifact and ApplyPatches default to artifact.Parse and
	// pipeline's own patch.Apply wrapper; tests override them.
	ParseArtifact artifactParser
	ApplyPatches  patcher

	buildMu sync.Mutex
}

// Result summarizes one pipeline run.
type Result struct {
	Built   []string
	Skipped []string
	Failed  map[string]error
}

// Run resolves the requested names (and, per package, their dependencies),
// fetches recipes, skips packages already up to date in the index, and
// downloads sources, patches, and builds the rest, merging every
// successful build into the repository index at the end.
func (p *Pipeline) Run(ctx context.Context, names []string) (*Result, error) {
	if p.Concurrency <= 0 {
		p.Concurrency = 1
	}
	if p.Arch == "" {
		p.Arch = "x86_64"
	}
	if p.ParseArtifact == nil {
		p.ParseArtifact = artifact.Parse
	}
	if p.ApplyPatches == nil {
		p.ApplyPatches = applyPatches
	}

	coordinator := &fetch.Coordinator{
		Fetcher:         p.Fetcher,
		Resolver:        p.Config.Resolver,
		Concurrency:     p.Concurrency,
		ContinueOnError: p.ContinueOnError,
		NeedDeps: func(name string) bool {
			_, pkg := p.Config.EnsurePackage(name)
			return pkg.NeedDeps(p.Config.Deps)
		},
		OriginFor: func(name string) fetch.Origin {
			_, pkg := p.Config.EnsurePackage(name)
			return pkg.Origin
		},
	}

	fetched, fetchErrs, err := coordinator.Run(ctx, names)
	if err != nil {
		return nil, err
	}

	current, err := p.currentVersions()
	if err != nil {
		return nil, err
	}

	result := &Result{Failed: make(map[string]error)}
	for name, ferr := range fetchErrs {
		result.Failed[name] = ferr
	}

	var mu sync.Mutex
	var updates []*repo.Update

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.Concurrency)

	for _, f := range fetched {
		f := f
		g.Go(func() error {
			pkgVersion, err := f.Recipe.PackageVersion()
			if err != nil {
				return p.fail(result, &mu, f.Name, err)
			}

			if existing, ok := current[f.Name]; ok && existing.Equal(pkgVersion) {
				slog.Info("package up to date, skipping build", "package", f.Name, "version", pkgVersion.String())
				packagesSkippedUpToDate.Inc()
				mu.Lock()
				result.Skipped = append(result.Skipped, f.Name)
				mu.Unlock()
				return nil
			}

			update, err := p.buildOne(gctx, f)
			if err != nil {
				return p.fail(result, &mu, f.Name, err)
			}

			mu.Lock()
			result.Built = append(result.Built, f.Name)
			updates = append(updates, update)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(updates) > 0 {
		if err := p.Index.Merge(updates); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// fail records a per-package failure. With ContinueOnError set, it logs
// and returns nil so the errgroup keeps the other packages running;
// otherwise it returns the error, which cancels the group's context.
func (p *Pipeline) fail(result *Result, mu *sync.Mutex, name string, err error) error {
	if p.ContinueOnError {
		slog.Error("package failed, continuing", "package", name, "error", err)
		mu.Lock()
		result.Failed[name] = err
		mu.Unlock()
		return nil
	}
	return fmt.Errorf("package %s: %w", name, err)
}

func (p *Pipeline) buildOne(ctx context.Context, f fetch.Fetched) (*repo.Update, error) {
	name := f.Name
	recipeDir := p.Config.PkgDir(name)
	_, pkg := p.Config.EnsurePackage(name)

	rec, err := p.Executor.DownloadSources(ctx, f.Recipe, recipeDir, pkg.Makepkg, p.Config.Makepkg, p.BaseMakepkgTemplate, p.Print)
	if err != nil {
		return nil, err
	}

	pkgSrcDir := p.Config.PkgSrcDir(name)
	if _, err := p.ApplyPatches(ctx, p.Config.ConfDir, pkgSrcDir, rec); err != nil {
		return nil, err
	}

	pkgVersion, err := rec.PackageVersion()
	if err != nil {
		return nil, err
	}

	p.buildMu.Lock()
	elapsed, buildErr := p.Executor.BuildPackage(ctx, rec, pkg.Makepkg, p.Config.Makepkg, p.BaseMakepkgTemplate)
	p.buildMu.Unlock()
	if buildErr != nil {
		return nil, buildErr
	}
	slog.Info("built package", "package", name, "version", pkgVersion.String(), "elapsed", build.FormatDuration(elapsed))

	artifactPath := build.ArtifactPath(p.Config.ServerDir, name, pkgVersion.String(), p.Arch)
	parsed, err := p.ParseArtifact(artifactPath)
	if err != nil {
		return nil, pacerrors.Wrap(pacerrors.ErrCodeIO, "parsing built artifact for "+name, err)
	}

	entry := repo.FromArtifact(artifactPath, parsed, nil)
	return &repo.Update{Entry: entry, Files: parsed.Files}, nil
}

// currentVersions returns the repository index's current name -> version
// map, used for up-to-date suppression.
func (p *Pipeline) currentVersions() (map[string]*version.Version, error) {
	entries, err := p.Index.List()
	if err != nil {
		return nil, err
	}
	versions := make(map[string]*version.Version, len(entries))
	for _, e := range entries {
		v, err := version.Parse(e.Version)
		if err != nil {
			slog.Warn("skipping index entry with unparsable version", "package", e.Name, "version", e.Version)
			continue
		}
		versions[e.Name] = v
	}
	return versions, nil
}
