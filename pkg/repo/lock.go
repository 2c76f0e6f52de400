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

package repo

import (
	"os"

	pacerrors "github.com/pacage/pacage/pkg/errors"
)

// dirLock is a scoped filesystem lock backed by the atomicity of mkdir:
// only one caller can successfully create the lock directory at a time.
// A concurrent merger on the same host does not wait: its acquireLock
// fails at once with ErrCodeLockContention.
type dirLock struct {
	path string
}

// acquireLock creates the lock directory at path, failing if it already
// exists.
func acquireLock(path string) (*dirLock, error) {
	if err := os.Mkdir(path, 0o755); err != nil {
		if os.IsExist(err) {
			return nil, pacerrors.Wrap(pacerrors.ErrCodeLockContention, "repository is locked", err)
		}
		return nil, pacerrors.Wrap(pacerrors.ErrCodeIO, "creating lock directory", err)
	}
	return &dirLock{path: path}, nil
}

// Release removes the lock directory and everything left inside it
// (temporary merge files that were never renamed out). Safe to call on
// every exit path, including after a failed merge.
func (l *dirLock) Release() error {
	if err := os.RemoveAll(l.path); err != nil {
		return pacerrors.Wrap(pacerrors.ErrCodeIO, "releasing lock directory", err)
	}
	return nil
}

// Path returns the lock directory, the location Merge uses for its
// temporary output files so the final rename stays on one filesystem.
func (l *dirLock) Path() string {
	return l.path
}
