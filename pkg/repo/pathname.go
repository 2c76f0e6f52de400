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
	"strings"

	pacerrors "github.com/pacage/pacage/pkg/errors"
	"github.com/pacage/pacage/pkg/version"
)

// ParsePathName splits an index directory key of the form
// "<pkgname>-<version-string>" into its name and parsed version.
func ParsePathName(path string) (string, *version.Version, error) {
	second := strings.LastIndexByte(path, '-')
	if second < 0 {
		return "", nil, pacerrors.New(pacerrors.ErrCodeParse, "Missing '-' in database entry")
	}

	first := strings.LastIndexByte(path[:second], '-')
	if first < 0 {
		return "", nil, pacerrors.New(pacerrors.ErrCodeParse, "Missing second '-' in database entry")
	}

	if second+1 >= len(path) {
		return "", nil, pacerrors.New(pacerrors.ErrCodeParse, "Package release missing")
	}
	if first == 0 {
		return "", nil, pacerrors.New(pacerrors.ErrCodeParse, "Package name missing")
	}

	name := path[:first]
	ver, err := version.Parse(path[first+1:])
	if err != nil {
		return "", nil, pacerrors.Wrap(pacerrors.ErrCodeParse, "parsing db entry version", err)
	}
	return name, ver, nil
}
