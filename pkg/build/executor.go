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

package build

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	pacerrors "github.com/pacage/pacage/pkg/errors"
	"github.com/pacage/pacage/pkg/recipe"
)

// containerName is the fixed name of the single long-lived build
// container; any prior container by this name is stopped and removed
// before a new one starts.
const containerName = "pacage_builder"

const entrypointScript = "pacage_entrypoint.sh"

// Executor owns the single long-lived build container. Zero value is not
// usable; construct with NewExecutor.
type Executor struct {
	// Runner is the container CLI binary, e.g. "docker" or "podman".
	Runner string
	// ServerDir is the host directory mounted at /build inside the
	// container.
	ServerDir string
	// BaseImage is the image the container starts from.
	BaseImage string
	// BuildLogDir, if set, receives one file per container action with
	// its combined output, named by package, action, and outcome.
	BuildLogDir string
	// MountDir, if set, overrides ServerDir as the host-side path passed
	// to "-v=<MountDir>:/build", for when the container engine resolves
	// bind-mount sources against a different filesystem view than the
	// one pacaged itself reads and writes through (e.g. pacaged running
	// inside its own container talking to the host's docker daemon).
	MountDir string
}

// NewExecutor constructs an Executor bound to a container runner binary and
// the host directory that will be mounted at /build.
func NewExecutor(runner, serverDir, baseImage string) *Executor {
	if baseImage == "" {
		baseImage = "archlinux:base-devel"
	}
	return &Executor{Runner: runner, ServerDir: serverDir, BaseImage: baseImage}
}

// Start stops and removes any prior container with the fixed name, runs a
// fresh detached container, and execs the entrypoint's "start" verb to
// prepare the build environment. A failed start is fatal.
func (e *Executor) Start(ctx context.Context) error {
	e.stopContainer(context.Background())

	if err := WriteEntrypointScript(e.ServerDir); err != nil {
		return err
	}

	mountDir := e.MountDir
	if mountDir == "" {
		mountDir = e.ServerDir
	}
	runArgs := []string{
		"run", "--rm", "--pids-limit", "-1",
		"--name", containerName,
		"-d",
		fmt.Sprintf("-v=%s:/build", mountDir),
		e.BaseImage,
		"sh", "-c", "sleep infinity",
	}
	if out, err := e.run(ctx, runArgs...); err != nil {
		return pacerrors.WrapSubprocess("starting build container", out, err)
	}

	out, err := e.exec(ctx, "start", "")
	if err != nil {
		return pacerrors.WrapSubprocess("preparing build environment", out, err)
	}
	return nil
}

// Stop tears down the build container unconditionally. It is safe to call
// multiple times and safe to call from a deferred cleanup on any exit path,
// including after a panic recovery.
func (e *Executor) Stop() {
	e.stopContainer(context.Background())
}

func (e *Executor) stopContainer(ctx context.Context) {
	_, _ = e.run(ctx, "stop", containerName)
	_, _ = e.run(ctx, "rm", containerName)
}

func (e *Executor) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, e.Runner, args...)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// exec runs the entrypoint script inside the running container with the
// per-operation envelope: workdir /build, HOME=/tmp, and a dedicated
// ccache directory.
func (e *Executor) exec(ctx context.Context, verb, name string) (string, error) {
	args := []string{
		"exec",
		"--workdir=/build",
		"--env=HOME=/tmp",
		"--env=CCACHE_DIR=/build/cache/ccache/",
		containerName,
		"bash", filepath.Join("/build", entrypointScript), verb,
	}
	if name != "" {
		args = append(args, name)
	}
	out, err := e.run(ctx, args...)

	logPkg := name
	if logPkg == "" {
		logPkg = containerName
	}
	writeActionLog(e.BuildLogDir, logPkg, verb, out, err == nil)

	return out, err
}

// DownloadSources materializes the package's toolchain-config file inside
// the shared mount, execs the "get" verb, and removes the config file
// regardless of outcome. On success, it re-derives the Recipe if the
// recipe's metadata file changed on disk during the download (its
// max(status-change, modified) time is now newer than the one recorded
// before the exec),
// otherwise it returns the Recipe unchanged.
func (e *Executor) DownloadSources(ctx context.Context, rec *recipe.Recipe, recipeDir string, pkg, def *Toolchain, baseTemplate string, print recipe.Printer) (*recipe.Recipe, error) {
	confPath := filepath.Join(e.ServerDir, fmt.Sprintf("makepkg_%s.conf", rec.Name))
	conf := SynthesizeConfig(baseTemplate, rec.Name, pkg, def)
	if err := os.WriteFile(confPath, []byte(conf), 0o644); err != nil {
		return nil, pacerrors.Wrap(pacerrors.ErrCodeIO, "writing per-package toolchain config", err)
	}
	defer os.Remove(confPath)

	before, staterr := recipeMetadataStamp(recipeDir)

	start := time.Now()
	out, err := e.exec(ctx, "get", rec.Name)
	downloadDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, pacerrors.WrapSubprocess(fmt.Sprintf("downloading sources for %s", rec.Name), out, err)
	}

	if staterr != nil {
		return rec, nil
	}
	after, err := recipeMetadataModTime(recipeDir)
	if err != nil {
		return rec, nil
	}
	if after.After(before) {
		return recipe.Load(recipeDir, print)
	}
	return rec, nil
}

// BuildPackage execs the "build" verb under the per-package toolchain
// config, tracks elapsed wall time, and returns it for logging. A non-zero
// exit is a structured subprocess error; the produced artifact is expected
// at the deterministic repo path the caller resolves separately.
func (e *Executor) BuildPackage(ctx context.Context, rec *recipe.Recipe, pkg, def *Toolchain, baseTemplate string) (time.Duration, error) {
	confPath := filepath.Join(e.ServerDir, fmt.Sprintf("makepkg_%s.conf", rec.Name))
	conf := SynthesizeConfig(baseTemplate, rec.Name, pkg, def)
	if err := os.WriteFile(confPath, []byte(conf), 0o644); err != nil {
		return 0, pacerrors.Wrap(pacerrors.ErrCodeIO, "writing per-package toolchain config", err)
	}
	defer os.Remove(confPath)

	start := time.Now()
	out, err := e.exec(ctx, "build", rec.Name)
	elapsed := time.Since(start)
	buildDuration.Observe(elapsed.Seconds())
	if err != nil {
		buildFailures.Inc()
		return elapsed, pacerrors.WrapSubprocess(fmt.Sprintf("building %s", rec.Name), out, err)
	}
	return elapsed, nil
}

// PrintSourceInfo execs the "srcinfo" verb for name and returns its stdout,
// satisfying recipe.Printer. Unlike the other verbs, its output must be
// clean (no interleaved stderr) since the caller caches it verbatim to
// .SRCINFO, so it captures stdout and stderr separately rather than
// going through exec's CombinedOutput path.
func (e *Executor) PrintSourceInfo(ctx context.Context, name string) (string, error) {
	args := []string{
		"exec",
		"--workdir=/build",
		"--env=HOME=/tmp",
		containerName,
		"bash", filepath.Join("/build", entrypointScript), "srcinfo", name,
	}
	cmd := exec.CommandContext(ctx, e.Runner, args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return "", pacerrors.WrapSubprocess(fmt.Sprintf("printing recipe metadata for %s", name), stderr.String(), err)
	}
	return string(out), nil
}

// ArtifactPath returns the deterministic path a successful build places its
// archive at, under the repo directory of the shared mount.
func ArtifactPath(serverDir, name, version, arch string) string {
	return filepath.Join(serverDir, "repo", fmt.Sprintf("%s-%s-%s.pkg.tar.zst", name, version, arch))
}
