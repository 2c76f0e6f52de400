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

const sampleSrcInfo = `pkgbase = bash
	pkgdesc = The GNU Bourne Again shell
	pkgver = 5.2.026
	pkgrel = 5
	depends = readline
	depends = glibc
	source = https://ftp.gnu.org/gnu/bash/bash-5.2.tar.gz
`

func TestParse(t *testing.T) {
	r, err := Parse(sampleSrcInfo)
	require.NoError(t, err)
	assert.Equal(t, "bash", r.Name)
	assert.Equal(t, "5.2.026", r.Version)
	require.NotNil(t, r.Release)
	assert.Equal(t, "5", *r.Release)
	assert.Equal(t, []string{"readline", "glibc"}, r.Depends)
	assert.True(t, r.HasSources)
}

func TestParseNoSources(t *testing.T) {
	r, err := Parse("pkgbase = zlib\npkgver = 1.3\n")
	require.NoError(t, err)
	assert.False(t, r.HasSources)
}

func TestParseMissingRequired(t *testing.T) {
	_, err := Parse("pkgrel = 1\n")
	assert.Error(t, err)
}

func TestParseInvalidEpoch(t *testing.T) {
	_, err := Parse("pkgbase = x\npkgver = 1\nepoch = notanumber\n")
	assert.Error(t, err)
}

func TestPackageVersion(t *testing.T) {
	release := "2"
	epoch := uint32(1)
	r := &Recipe{Name: "vi", Version: "070224", Release: &release, Epoch: &epoch}
	v, err := r.PackageVersion()
	require.NoError(t, err)
	assert.Equal(t, "1:070224-2", v.String())
}

func TestLoadCachesPrintedMetadata(t *testing.T) {
	dir := t.TempDir()
	calls := 0
	printer := func(d string) (string, error) {
		calls++
		return "pkgbase = foo\npkgver = 1.0\n", nil
	}

	r, err := Load(dir, printer)
	require.NoError(t, err)
	assert.Equal(t, "foo", r.Name)
	assert.Equal(t, 1, calls)

	// Second load reads the cached file and must not invoke the printer again.
	r2, err := Load(dir, printer)
	require.NoError(t, err)
	assert.Equal(t, r.Name, r2.Name)
	assert.Equal(t, 1, calls)

	_, statErr := os.Stat(filepath.Join(dir, MetadataFilename))
	require.NoError(t, statErr)
}

func TestLoadPrinterFailure(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(dir, func(d string) (string, error) {
		return "", assert.AnError
	})
	assert.Error(t, err)
}
