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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtifactPathIsDeterministic(t *testing.T) {
	got := ArtifactPath("/srv/pacage", "bash", "5.2.026-2", "x86_64")
	assert.Equal(t, "/srv/pacage/repo/bash-5.2.026-2-x86_64.pkg.tar.zst", got)
}

func TestNewExecutorDefaultsBaseImage(t *testing.T) {
	e := NewExecutor("docker", "/srv/pacage", "")
	assert.Equal(t, "archlinux:base-devel", e.BaseImage)
}

func TestMaxStatTimeUsesModTimeWhenNewer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "PKGBUILD")
	require.NoError(t, os.WriteFile(path, []byte("pkgname=bash\n"), 0o644))

	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, future, future))

	stamp, err := maxStatTime(path)
	require.NoError(t, err)
	assert.WithinDuration(t, future, stamp, time.Second)
}

func TestRecipeMetadataModTimeDetectsRewrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "PKGBUILD")
	require.NoError(t, os.WriteFile(path, []byte("pkgname=bash\n"), 0o644))

	before, err := recipeMetadataStamp(dir)
	require.NoError(t, err)

	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, future, future))

	after, err := recipeMetadataModTime(dir)
	require.NoError(t, err)
	assert.True(t, after.After(before), "mtime advanced forward must be observed as a rewrite")
}
