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
	_ "embed"
	"os"
	"path/filepath"

	pacerrors "github.com/pacage/pacage/pkg/errors"
)

//go:embed assets/pacage_entrypoint.sh
var entrypointScriptContent string

// WriteEntrypointScript writes the embedded container entrypoint script
// into the shared mount's root, where Start's exec invokes it by path.
func WriteEntrypointScript(serverDir string) error {
	path := filepath.Join(serverDir, entrypointScript)
	if err := os.WriteFile(path, []byte(entrypointScriptContent), 0o755); err != nil {
		return pacerrors.Wrap(pacerrors.ErrCodeIO, "writing build container entrypoint script", err)
	}
	return nil
}
