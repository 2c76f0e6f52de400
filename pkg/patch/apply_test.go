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
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplySkipsWhenAlreadyPatched(t *testing.T) {
	pkgSrc := t.TempDir()
	require.NoError(t, MarkPatched(pkgSrc))

	applied, err := Apply(context.Background(), t.TempDir(), pkgSrc, "bash", "5.2.026")
	require.NoError(t, err)
	assert.False(t, bool(applied))
}

func TestApplySkipsWhenNoPatches(t *testing.T) {
	pkgSrc := t.TempDir()
	confDir := t.TempDir()

	applied, err := Apply(context.Background(), confDir, pkgSrc, "bash", "5.2.026")
	require.NoError(t, err)
	assert.False(t, bool(applied))
	assert.False(t, IsPatched(pkgSrc), "a skip with nothing to do leaves no sentinel")
}

func TestApplyRunsPatchAndWritesSentinel(t *testing.T) {
	if _, err := exec.LookPath("patch"); err != nil {
		t.Skip("patch(1) not available in this environment")
	}

	pkgSrc := t.TempDir()
	srcDir := filepath.Join(pkgSrc, "src", "widget")
	require.NoError(t, os.MkdirAll(srcDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "greeting.txt"), []byte("hello\n"), 0o644))

	confDir := t.TempDir()
	patchDir := filepath.Join(confDir, "patchs", "widget")
	require.NoError(t, os.MkdirAll(patchDir, 0o755))
	diff := "--- a/greeting.txt\n+++ b/greeting.txt\n@@ -1 +1 @@\n-hello\n+hello world\n"
	require.NoError(t, os.WriteFile(filepath.Join(patchDir, "001-greeting.patch"), []byte(diff), 0o644))

	applied, err := Apply(context.Background(), confDir, pkgSrc, "widget", "1.0")
	require.NoError(t, err)
	assert.True(t, bool(applied))
	assert.True(t, IsPatched(pkgSrc))

	content, err := os.ReadFile(filepath.Join(srcDir, "greeting.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello world\n", string(content))
}

func TestApplyFailureDoesNotWriteSentinel(t *testing.T) {
	if _, err := exec.LookPath("patch"); err != nil {
		t.Skip("patch(1) not available in this environment")
	}

	pkgSrc := t.TempDir()
	srcDir := filepath.Join(pkgSrc, "src", "widget")
	require.NoError(t, os.MkdirAll(srcDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "greeting.txt"), []byte("nope\n"), 0o644))

	confDir := t.TempDir()
	patchDir := filepath.Join(confDir, "patchs", "widget")
	require.NoError(t, os.MkdirAll(patchDir, 0o755))
	diff := "--- a/greeting.txt\n+++ b/greeting.txt\n@@ -1 +1 @@\n-hello\n+hello world\n"
	require.NoError(t, os.WriteFile(filepath.Join(patchDir, "001-greeting.patch"), []byte(diff), 0o644))

	_, err := Apply(context.Background(), confDir, pkgSrc, "widget", "1.0")
	require.Error(t, err)
	assert.False(t, IsPatched(pkgSrc))
}
