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
	"bufio"
	"fmt"
	"io"
	"sort"
)

// WriteFiles serializes the files-file block for a package: the
// "%FILES%" header followed by each installed path, sorted ascending,
// each preceded by a blank line.
func WriteFiles(w io.Writer, files []string) error {
	bw := bufio.NewWriter(w)

	sorted := append([]string(nil), files...)
	sort.Strings(sorted)

	fmt.Fprintln(bw, "%FILES%")
	for _, f := range sorted {
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, f)
	}
	return bw.Flush()
}

// ParseFiles reads a files-file block back into its sorted path list.
func ParseFiles(r io.Reader) ([]string, error) {
	var files []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || line == "%FILES%" {
			continue
		}
		files = append(files, line)
	}
	sort.Strings(files)
	return files, scanner.Err()
}
