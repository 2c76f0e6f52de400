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
	"bufio"
	"os"
	"strings"

	pacerrors "github.com/pacage/pacage/pkg/errors"
)

// Resolver maps an external alias to a canonical recipe name. Lookups
// that miss the table return the input name unchanged. The table is
// read-only once loaded and safe for concurrent Resolve calls.
type Resolver map[string]string

// Resolve returns table[name] if present, otherwise name itself.
func (r Resolver) Resolve(name string) string {
	if canonical, ok := r[name]; ok {
		resolverHits.Inc()
		return canonical
	}
	return name
}

// LoadResolver reads a flat "alias = canonical" table from path. A
// missing file yields an empty, valid Resolver rather than an error.
func LoadResolver(path string) (Resolver, error) {
	r := make(Resolver)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return r, nil
		}
		return nil, pacerrors.Wrap(pacerrors.ErrCodeIO, "opening resolver table", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		idx := strings.IndexByte(line, '=')
		if idx < 0 {
			continue
		}
		alias := strings.TrimSpace(line[:idx])
		canonical := strings.TrimSpace(line[idx+1:])
		if alias == "" || canonical == "" {
			continue
		}
		r[alias] = canonical
	}
	if err := scanner.Err(); err != nil {
		return nil, pacerrors.Wrap(pacerrors.ErrCodeIO, "scanning resolver table", err)
	}
	return r, nil
}
