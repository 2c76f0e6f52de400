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

package patch

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"

	pacerrors "github.com/pacage/pacage/pkg/errors"
)

// Applied reports whether Apply actually ran any patches (false also means
// "already patched" or "nothing to patch", both of which are success).
type Applied bool

// Apply patches a package's unpacked sources in place, following the
// sentinel-then-discover-then-locate-then-apply sequence: a prior sentinel
// or an empty patch set is a no-op success; otherwise every discovered
// patch is applied in sorted order with strip level 1, and the sentinel is
// written only after every patch succeeds.
func Apply(ctx context.Context, confDir, pkgSrcDir, name, version string) (Applied, error) {
	if IsPatched(pkgSrcDir) {
		return false, nil
	}

	patches, err := DiscoverPatches(confDir, name)
	if err != nil {
		return false, err
	}
	if len(patches) == 0 {
		return false, nil
	}

	root, err := LocateSourceRoot(pkgSrcDir, name, version)
	if err != nil {
		return false, err
	}

	for _, p := range patches {
		slog.Info("applying patch", "package", name, "patch", p)
		if err := applyOne(ctx, root, p); err != nil {
			patchFailures.Inc()
			return false, pacerrors.Wrap(pacerrors.ErrCodePatchFailed, fmt.Sprintf("applying %s to %s", p, name), err)
		}
		slog.Info("applied patch", "package", name, "patch", p)
	}

	if err := MarkPatched(pkgSrcDir); err != nil {
		return false, err
	}
	patchesApplied.Add(float64(len(patches)))
	return true, nil
}

func applyOne(ctx context.Context, dir, patchFile string) error {
	cmd := exec.CommandContext(ctx, "patch", "-p1", "--input="+patchFile)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return pacerrors.WrapSubprocess(fmt.Sprintf("applying %s", patchFile), string(out), err)
	}
	return nil
}
