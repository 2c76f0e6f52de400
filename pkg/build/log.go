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
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// writeActionLog records one container action's combined output under
// dir, named "<pkg>_<action>_<SUCCESS|ERROR>_<unixts>_<runID>.log". The
// run ID guards against two concurrent pipeline invocations landing on
// the same package/action/second. A write failure only logs a warning;
// it never fails the action it is recording.
func writeActionLog(dir, pkg, action, output string, success bool) {
	if dir == "" {
		return
	}
	status := "SUCCESS"
	if !success {
		status = "ERROR"
	}
	name := fmt.Sprintf("%s_%s_%s_%d_%s.log", pkg, action, status, time.Now().Unix(), uuid.NewString())
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(output), 0o644); err != nil {
		slog.Warn("failed to write build action log", "path", path, "error", err)
	}
}
