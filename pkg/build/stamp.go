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
	"syscall"
	"time"

	pacerrors "github.com/pacage/pacage/pkg/errors"
)

// recipeMetadataStamp returns the PKGBUILD's max(status-change, modified)
// time, recorded before a source download so a later stat can detect
// whether makepkg rewrote the file while fetching sources. Linux does not
// reliably expose a file's birth time through stat(2), so status-change
// time (ctime) stands in for "created" here, matching the metadata Go's
// os.FileInfo can actually report.
func recipeMetadataStamp(recipeDir string) (time.Time, error) {
	return maxStatTime(filepath.Join(recipeDir, "PKGBUILD"))
}

// recipeMetadataModTime returns the same max(status-change, modified) stamp
// after a download, to compare against the pre-download one.
func recipeMetadataModTime(recipeDir string) (time.Time, error) {
	return maxStatTime(filepath.Join(recipeDir, "PKGBUILD"))
}

func maxStatTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, pacerrors.Wrap(pacerrors.ErrCodeIO, "statting "+path, err)
	}
	mtime := info.ModTime()
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return mtime, nil
	}
	ctime := time.Unix(stat.Ctim.Sec, stat.Ctim.Nsec)
	if ctime.After(mtime) {
		return ctime, nil
	}
	return mtime, nil
}
