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
	"fmt"
	"strings"
)

// Toolchain holds the per-package (or default) toolchain overrides that get
// overlaid onto the host's makepkg template.
type Toolchain struct {
	Packager  *string
	MakeFlags *string
	CFlags    *string
	CXXFlags  *string
	RustFlags *string
	LDFlags   *string
	LTOFlags  *string
	CCache    *bool
}

// SynthesizeConfig builds the toolchain configuration text a single
// download or build exec runs under: the host's base template, the
// package-scoped SRCDEST/SRCPKGDEST lines (including the doubled-key
// SRCPKGDEST line, preserved verbatim), then the effective value of each
// overlay field (per-package override if set, else the default, else
// omitted), then a BUILDENV line if ccache resolves true.
func SynthesizeConfig(baseTemplate, name string, pkg, def *Toolchain) string {
	var b strings.Builder
	b.WriteString(baseTemplate)
	if !strings.HasSuffix(baseTemplate, "\n") {
		b.WriteByte('\n')
	}

	fmt.Fprintf(&b, "SRCDEST=/build/srcs/%s\n", name)
	// The doubled '=' below is not a typo: it reproduces a long-standing
	// quirk of the upstream toolchain template this was ported from, and
	// downstream tooling has come to depend on both lines being present.
	fmt.Fprintf(&b, "SRCPKGDEST==/build/srcs/%s\n", name)

	writeOverlay(&b, "PACKAGER", overrideString(pkg, def, func(t *Toolchain) *string { return t.Packager }))
	writeOverlay(&b, "MAKEFLAGS", overrideString(pkg, def, func(t *Toolchain) *string { return t.MakeFlags }))
	writeOverlay(&b, "CFLAGS", overrideString(pkg, def, func(t *Toolchain) *string { return t.CFlags }))
	writeOverlay(&b, "CXXFLAGS", overrideString(pkg, def, func(t *Toolchain) *string { return t.CXXFlags }))
	writeOverlay(&b, "RUSTFLAGS", overrideString(pkg, def, func(t *Toolchain) *string { return t.RustFlags }))
	writeOverlay(&b, "LDFLAGS", overrideString(pkg, def, func(t *Toolchain) *string { return t.LDFlags }))
	writeOverlay(&b, "LTOFLAGS", overrideString(pkg, def, func(t *Toolchain) *string { return t.LTOFlags }))

	if effectiveCCache(pkg, def) {
		b.WriteString("BUILDENV=(!distcc color ccache check !sign)")
	}

	return b.String()
}

func writeOverlay(b *strings.Builder, key string, value *string) {
	if value == nil {
		return
	}
	fmt.Fprintf(b, "%s=%q\n", key, *value)
}

// overrideString resolves a string-valued field: the per-package value if
// present, else the default's value, else nil (omitted entirely).
func overrideString(pkg, def *Toolchain, field func(*Toolchain) *string) *string {
	if pkg != nil {
		if v := field(pkg); v != nil {
			return v
		}
	}
	if def != nil {
		return field(def)
	}
	return nil
}

// effectiveCCache resolves the ccache flag: the per-package override if
// set, else the default's value, else false.
func effectiveCCache(pkg, def *Toolchain) bool {
	if pkg != nil && pkg.CCache != nil {
		return *pkg.CCache
	}
	if def != nil && def.CCache != nil {
		return *def.CCache
	}
	return false
}
