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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirHelpersUnderServerDir(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `server_dir = "/srv/pacage"`)
	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/srv/pacage", "pkgs"), cfg.PkgsDir())
	assert.Equal(t, filepath.Join("/srv/pacage", "srcs"), cfg.SrcsDir())
	assert.Equal(t, filepath.Join("/srv/pacage", "repo"), cfg.RepoDir())
	assert.Equal(t, filepath.Join("/srv/pacage", "pkgs", "bash"), cfg.PkgDir("bash"))
	assert.Equal(t, filepath.Join("/srv/pacage", "srcs", "bash"), cfg.PkgSrcDir("bash"))
}
