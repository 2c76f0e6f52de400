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
	"fmt"
	"os"
	"path/filepath"
	"sort"

	pacerrors "github.com/pacage/pacage/pkg/errors"
)

// buildSystemMarkers are the files searched for when neither of the two
// conventional source directory names exists.
var buildSystemMarkers = []string{"Makefile", "CMakeLists.txt", "meson.build", "BUILD", "BUILD.bazel"}

// sentinelFilename marks a source tree as already patched.
const sentinelFilename = ".pacage_patched"

// patchFileExt is the extension enumerated under the patch directory.
const patchFileExt = ".patch"

// LocateSourceRoot finds the directory patches should be applied against,
// under pkgSrcDir/src: first the package name itself, then name-version,
// else the first immediate subdirectory of src/ containing a recognized
// build system marker file. Returns pacerrors.ErrCodeNotFound if nothing
// matches.
func LocateSourceRoot(pkgSrcDir, name, version string) (string, error) {
	srcDir := filepath.Join(pkgSrcDir, "src")

	candidate := filepath.Join(srcDir, name)
	if exists(candidate) {
		return candidate, nil
	}

	candidate = filepath.Join(srcDir, fmt.Sprintf("%s-%s", name, version))
	if exists(candidate) {
		return candidate, nil
	}

	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return "", pacerrors.Wrap(pacerrors.ErrCodeIO, "reading source directory "+srcDir, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(srcDir, entry.Name())
		for _, marker := range buildSystemMarkers {
			if exists(filepath.Join(dir, marker)) {
				return dir, nil
			}
		}
	}

	return "", pacerrors.Newf(pacerrors.ErrCodeNotFound, "could not find source root for %s under %s", name, srcDir)
}

// DiscoverPatches lists the .patch files for a package, sorted
// lexicographically. A missing patch directory yields an empty, nil-error
// result: having no patches is not a failure.
func DiscoverPatches(confDir, name string) ([]string, error) {
	patchDir := filepath.Join(confDir, "patchs", name)
	entries, err := os.ReadDir(patchDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, pacerrors.Wrap(pacerrors.ErrCodeIO, "reading patch directory "+patchDir, err)
	}

	var patches []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if filepath.Ext(entry.Name()) != patchFileExt {
			continue
		}
		patches = append(patches, filepath.Join(patchDir, entry.Name()))
	}
	sort.Strings(patches)
	return patches, nil
}

// IsPatched reports whether the sentinel file already exists in the
// source tree.
func IsPatched(pkgSrcDir string) bool {
	return exists(filepath.Join(pkgSrcDir, sentinelFilename))
}

// MarkPatched creates the sentinel file, recording that this source tree
// has had all of its patches applied.
func MarkPatched(pkgSrcDir string) error {
	f, err := os.Create(filepath.Join(pkgSrcDir, sentinelFilename))
	if err != nil {
		return pacerrors.Wrap(pacerrors.ErrCodeIO, "creating patch sentinel", err)
	}
	return f.Close()
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
