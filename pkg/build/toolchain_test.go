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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const baseTemplate = "# base makepkg.conf\nCARCH=\"x86_64\"\n"

func TestSynthesizeConfigAppendsDoubledSrcPkgDestLine(t *testing.T) {
	conf := SynthesizeConfig(baseTemplate, "bash", nil, nil)

	srcdestIdx := strings.Index(conf, "SRCDEST=/build/srcs/bash\n")
	doubledIdx := strings.Index(conf, "SRCPKGDEST==/build/srcs/bash\n")
	a := assert.New(t)
	a.NotEqual(-1, srcdestIdx)
	a.NotEqual(-1, doubledIdx)
	a.Less(srcdestIdx, doubledIdx, "SRCDEST line must precede the doubled SRCPKGDEST line")
	a.NotContains(conf, "SRCPKGDEST=/build/srcs/bash\n", "only the doubled-key form should appear, never a single-= SRCPKGDEST line")
}

func TestSynthesizeConfigPerPackageOverridesDefault(t *testing.T) {
	defPackager := "Default Packager <default@example.com>"
	pkgPackager := "Custom Packager <custom@example.com>"
	def := &Toolchain{Packager: &defPackager}
	pkg := &Toolchain{Packager: &pkgPackager}

	conf := SynthesizeConfig(baseTemplate, "bash", pkg, def)
	assert.Contains(t, conf, `PACKAGER="Custom Packager <custom@example.com>"`)
	assert.NotContains(t, conf, "Default Packager")
}

func TestSynthesizeConfigFallsBackToDefault(t *testing.T) {
	defPackager := "Default Packager <default@example.com>"
	def := &Toolchain{Packager: &defPackager}

	conf := SynthesizeConfig(baseTemplate, "bash", nil, def)
	assert.Contains(t, conf, `PACKAGER="Default Packager <default@example.com>"`)
}

func TestSynthesizeConfigOmitsUnsetOverlayFields(t *testing.T) {
	conf := SynthesizeConfig(baseTemplate, "bash", nil, nil)
	assert.NotContains(t, conf, "PACKAGER=")
	assert.NotContains(t, conf, "CFLAGS=")
}

func TestSynthesizeConfigBuildEnvOnlyWhenCCacheTrue(t *testing.T) {
	ccacheOn := true
	ccacheOff := false

	withCCache := SynthesizeConfig(baseTemplate, "bash", &Toolchain{CCache: &ccacheOn}, nil)
	assert.Contains(t, withCCache, "BUILDENV=(!distcc color ccache check !sign)")

	withoutCCache := SynthesizeConfig(baseTemplate, "bash", &Toolchain{CCache: &ccacheOff}, nil)
	assert.NotContains(t, withoutCCache, "BUILDENV=")

	neither := SynthesizeConfig(baseTemplate, "bash", nil, nil)
	assert.NotContains(t, neither, "BUILDENV=")
}

func TestSynthesizeConfigCCachePackageOverridesDefault(t *testing.T) {
	defOn := true
	pkgOff := false
	conf := SynthesizeConfig(baseTemplate, "bash", &Toolchain{CCache: &pkgOff}, &Toolchain{CCache: &defOn})
	assert.NotContains(t, conf, "BUILDENV=")
}

func TestSynthesizeConfigCCacheFallsBackToDefault(t *testing.T) {
	defOn := true
	conf := SynthesizeConfig(baseTemplate, "bash", &Toolchain{}, &Toolchain{CCache: &defOn})
	assert.Contains(t, conf, "BUILDENV=")
}
