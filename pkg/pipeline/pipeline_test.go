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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pacage/pacage/pkg/artifact"
	"github.com/pacage/pacage/pkg/build"
	"github.com/pacage/pacage/pkg/config"
	"github.com/pacage/pacage/pkg/fetch"
	"github.com/pacage/pacage/pkg/recipe"
	"github.com/pacage/pacage/pkg/repo"
)

type fakeFetcher struct {
	recipes map[string]*recipe.Recipe
	errs    map[string]error
}

func (f *fakeFetcher) Fetch(_ context.Context, name string, _ fetch.Origin) (*recipe.Recipe, error) {
	if err, ok := f.errs[name]; ok {
		return nil, err
	}
	return f.recipes[name], nil
}

type fakeExecutor struct {
	mu            sync.Mutex
	downloadCalls map[string]int
	buildCalls    map[string]int
	failBuild     map[string]bool
}

func newFakeExecutor() *fakeExecutor {
	return &fakeExecutor{downloadCalls: map[string]int{}, buildCalls: map[string]int{}, failBuild: map[string]bool{}}
}

func (f *fakeExecutor) DownloadSources(_ context.Context, rec *recipe.Recipe, _ string, _, _ *build.Toolchain, _ string, _ recipe.Printer) (*recipe.Recipe, error) {
	f.mu.Lock()
	f.downloadCalls[rec.Name]++
	f.mu.Unlock()
	return rec, nil
}

func (f *fakeExecutor) BuildPackage(_ context.Context, rec *recipe.Recipe, _, _ *build.Toolchain, _ string) (time.Duration, error) {
	f.mu.Lock()
	f.buildCalls[rec.Name]++
	fail := f.failBuild[rec.Name]
	f.mu.Unlock()
	if fail {
		return 0, errors.New("simulated build failure")
	}
	return time.Second, nil
}

func loadTestConfig(t *testing.T, serverDir string) *config.Config {
	t.Helper()
	confDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(confDir, "pacage.toml"), []byte(fmt.Sprintf("server_dir = %q\n", serverDir)), 0o644))
	cfg, err := config.Load(confDir)
	require.NoError(t, err)
	return cfg
}

func fakeParseArtifactFor(name, version string) artifactParser {
	return func(path string) (*artifact.Result, error) {
		if !strings.Contains(path, name) {
			return nil, fmt.Errorf("unexpected artifact path %q", path)
		}
		return &artifact.Result{
			Metadata:       artifact.Metadata{Name: name, Version: version, Architecture: "x86_64"},
			Files:          []string{"usr/bin/" + name},
			CompressedSize: 10,
			SHA256:         strings.Repeat("a", 64),
		}, nil
	}
}

func noopPatcher(_ context.Context, _, _ string, _ *recipe.Recipe) (bool, error) {
	return false, nil
}

func TestPipelineSkipsUpToDatePackage(t *testing.T) {
	serverDir := t.TempDir()
	cfg := loadTestConfig(t, serverDir)

	index := &repo.Index{Dir: t.TempDir()}
	existing := &repo.Entry{
		Metadata:       artifact.Metadata{Name: "bash", Version: "5.2.026-2", Architecture: "x86_64"},
		Filename:       "bash-5.2.026-2-x86_64.pkg.tar.zst",
		CompressedSize: 10,
		SHA256:         strings.Repeat("b", 64),
	}
	require.NoError(t, index.Merge([]*repo.Update{{Entry: existing, Files: []string{"usr/bin/bash"}}}))

	release := "2"
	fetcher := &fakeFetcher{recipes: map[string]*recipe.Recipe{
		"bash": {Name: "bash", Version: "5.2.026", Release: &release},
	}}
	executor := newFakeExecutor()

	p := &Pipeline{
		Config:        cfg,
		Fetcher:       fetcher,
		Executor:      executor,
		Index:         index,
		ApplyPatches:  noopPatcher,
		ParseArtifact: fakeParseArtifactFor("bash", "5.2.026-2"),
	}

	result, err := p.Run(context.Background(), []string{"bash"})
	require.NoError(t, err)
	assert.Equal(t, []string{"bash"}, result.Skipped)
	assert.Empty(t, result.Built)
	assert.Zero(t, executor.downloadCalls["bash"])
	assert.Zero(t, executor.buildCalls["bash"])
}

func TestPipelineBuildsNewPackage(t *testing.T) {
	serverDir := t.TempDir()
	cfg := loadTestConfig(t, serverDir)
	index := &repo.Index{Dir: t.TempDir()}

	fetcher := &fakeFetcher{recipes: map[string]*recipe.Recipe{
		"widget": {Name: "widget", Version: "1.0"},
	}}
	executor := newFakeExecutor()

	p := &Pipeline{
		Config:        cfg,
		Fetcher:       fetcher,
		Executor:      executor,
		Index:         index,
		ApplyPatches:  noopPatcher,
		ParseArtifact: fakeParseArtifactFor("widget", "1.0"),
	}

	result, err := p.Run(context.Background(), []string{"widget"})
	require.NoError(t, err)
	assert.Equal(t, []string{"widget"}, result.Built)
	assert.Equal(t, 1, executor.downloadCalls["widget"])
	assert.Equal(t, 1, executor.buildCalls["widget"])

	entries, err := index.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "widget", entries[0].Name)
}

func TestPipelineContinueOnErrorRecordsFailure(t *testing.T) {
	serverDir := t.TempDir()
	cfg := loadTestConfig(t, serverDir)
	index := &repo.Index{Dir: t.TempDir()}

	fetcher := &fakeFetcher{recipes: map[string]*recipe.Recipe{
		"good": {Name: "good", Version: "1.0"},
		"bad":  {Name: "bad", Version: "1.0"},
	}}
	executor := newFakeExecutor()
	executor.failBuild["bad"] = true

	p := &Pipeline{
		Config:          cfg,
		Fetcher:         fetcher,
		Executor:        executor,
		Index:           index,
		ContinueOnError: true,
		ApplyPatches:    noopPatcher,
		ParseArtifact: func(path string) (*artifact.Result, error) {
			return fakeParseArtifactFor("good", "1.0")(path)
		},
	}

	result, err := p.Run(context.Background(), []string{"good", "bad"})
	require.NoError(t, err)
	assert.Equal(t, []string{"good"}, result.Built)
	assert.Contains(t, result.Failed, "bad")
}

func TestPipelineAbortsWithoutContinueOnError(t *testing.T) {
	serverDir := t.TempDir()
	cfg := loadTestConfig(t, serverDir)
	index := &repo.Index{Dir: t.TempDir()}

	fetcher := &fakeFetcher{recipes: map[string]*recipe.Recipe{
		"bad": {Name: "bad", Version: "1.0"},
	}}
	executor := newFakeExecutor()
	executor.failBuild["bad"] = true

	p := &Pipeline{
		Config:          cfg,
		Fetcher:         fetcher,
		Executor:        executor,
		Index:           index,
		ContinueOnError: false,
		ApplyPatches:    noopPatcher,
		ParseArtifact:   fakeParseArtifactFor("bad", "1.0"),
	}

	_, err := p.Run(context.Background(), []string{"bad"})
	assert.Error(t, err)
}
