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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolverResolve(t *testing.T) {
	r := Resolver{"py": "python"}
	assert.Equal(t, "python", r.Resolve("py"))
	assert.Equal(t, "bash", r.Resolve("bash"))
}

func TestLoadResolverMissingFile(t *testing.T) {
	r, err := LoadResolver(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Empty(t, r)
}

func TestLoadResolverParsesTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resolve.toml")
	content := "# comment\npy = python\n\nnode = nodejs\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	r, err := LoadResolver(path)
	require.NoError(t, err)
	assert.Equal(t, "python", r.Resolve("py"))
	assert.Equal(t, "nodejs", r.Resolve("node"))
	assert.Equal(t, "other", r.Resolve("other"))
}
