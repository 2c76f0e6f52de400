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

package pipeline

import (
	"context"

	"github.com/pacage/pacage/pkg/patch"
	"github.com/pacage/pacage/pkg/recipe"
)

// applyPatches runs the patch engine against a freshly downloaded
// package's source tree, keyed by the recipe's raw upstream version (not
// the full epoch:version-release string), matching how patch's source-root
// search names extracted upstream tarballs.
func applyPatches(ctx context.Context, confDir, pkgSrcDir string, rec *recipe.Recipe) (bool, error) {
	applied, err := patch.Apply(ctx, confDir, pkgSrcDir, rec.Name, rec.Version)
	return bool(applied), err
}
