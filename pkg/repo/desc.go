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
	"strconv"
	"strings"

	pacerrors "github.com/pacage/pacage/pkg/errors"
)

// WriteDesc serializes e as a desc-file block: a sequence of
// "%KEY%\n<value(s)>\n\n" records in the order pacman's repo-add emits
// them.
func WriteDesc(w io.Writer, e *Entry) error {
	bw := bufio.NewWriter(w)

	writeScalar(bw, "FILENAME", e.Filename)
	writeScalar(bw, "NAME", e.Name)
	writeScalar(bw, "VERSION", e.Version)
	writeScalar(bw, "SHA256SUM", e.SHA256)
	writeScalar(bw, "CSIZE", strconv.FormatUint(e.CompressedSize, 10))

	if e.InstallSize != nil {
		writeScalar(bw, "ISIZE", strconv.FormatUint(*e.InstallSize, 10))
	}
	if e.BuildDate != nil {
		writeScalar(bw, "BUILDDATE", strconv.FormatUint(*e.BuildDate, 10))
	}
	if e.Base != "" {
		writeScalar(bw, "BASE", e.Base)
	}
	if e.Description != "" {
		writeScalar(bw, "DESC", e.Description)
	}
	if e.PGPSignature != nil {
		writeScalar(bw, "PGPSIG", *e.PGPSignature)
	}
	if e.URL != "" {
		writeScalar(bw, "URL", e.URL)
	}
	if e.Architecture != "" {
		writeScalar(bw, "ARCH", e.Architecture)
	}
	if e.Packager != "" {
		writeScalar(bw, "PACKAGER", e.Packager)
	}

	writeList(bw, "GROUPS", e.Groups)
	writeList(bw, "LICENSE", e.Licenses)
	writeList(bw, "REPLACES", e.Replaces)
	writeList(bw, "CONFLICTS", e.Conflicts)
	writeList(bw, "PROVIDES", e.Provides)
	writeList(bw, "DEPENDS", e.Depends)
	writeList(bw, "OPTDEPENDS", e.OptDepends)
	writeList(bw, "MAKEDEPENDS", e.MakeDepends)
	writeList(bw, "CHECKDEPENDS", e.CheckDepends)

	return bw.Flush()
}

func writeScalar(w *bufio.Writer, key, value string) {
	fmt.Fprintf(w, "%%%s%%\n%s\n\n", key, value)
}

func writeList(w *bufio.Writer, key string, values []string) {
	if len(values) == 0 {
		return
	}
	fmt.Fprintf(w, "%%%s%%\n", key)
	for _, v := range values {
		fmt.Fprintln(w, v)
	}
	fmt.Fprintln(w)
}

// ParseDesc reads a desc-file block back into an Entry. Unknown keys are
// ignored; required keys (FILENAME, NAME, VERSION, SHA256SUM, CSIZE) must
// be present.
func ParseDesc(r io.Reader) (*Entry, error) {
	var e Entry
	var haveFilename, haveName, haveVersion, haveSHA, haveCSize bool

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "%") || !strings.HasSuffix(line, "%") {
			continue
		}
		key := strings.Trim(line, "%")

		switch key {
		case "FILENAME":
			v, err := scalarValue(scanner, key)
			if err != nil {
				return nil, err
			}
			e.Filename, haveFilename = v, true
		case "NAME":
			v, err := scalarValue(scanner, key)
			if err != nil {
				return nil, err
			}
			e.Name, haveName = v, true
		case "VERSION":
			v, err := scalarValue(scanner, key)
			if err != nil {
				return nil, err
			}
			e.Version, haveVersion = v, true
		case "SHA256SUM":
			v, err := scalarValue(scanner, key)
			if err != nil {
				return nil, err
			}
			e.SHA256, haveSHA = v, true
		case "CSIZE":
			v, err := scalarValue(scanner, key)
			if err != nil {
				return nil, err
			}
			n, perr := strconv.ParseUint(v, 10, 64)
			if perr != nil {
				return nil, pacerrors.Wrapf(pacerrors.ErrCodeParse, "invalid %%CSIZE%% value %q", perr, v)
			}
			e.CompressedSize, haveCSize = n, true
		case "ISIZE":
			v, err := scalarValue(scanner, key)
			if err != nil {
				return nil, err
			}
			n, perr := strconv.ParseUint(v, 10, 64)
			if perr != nil {
				return nil, pacerrors.Wrapf(pacerrors.ErrCodeParse, "invalid %%ISIZE%% value %q", perr, v)
			}
			e.InstallSize = &n
		case "BUILDDATE":
			v, err := scalarValue(scanner, key)
			if err != nil {
				return nil, err
			}
			n, perr := strconv.ParseUint(v, 10, 64)
			if perr != nil {
				return nil, pacerrors.Wrapf(pacerrors.ErrCodeParse, "invalid %%BUILDDATE%% value %q", perr, v)
			}
			e.BuildDate = &n
		case "BASE":
			v, err := scalarValue(scanner, key)
			if err != nil {
				return nil, err
			}
			e.Base = v
		case "DESC":
			v, err := scalarValue(scanner, key)
			if err != nil {
				return nil, err
			}
			e.Description = v
		case "PGPSIG":
			v, err := scalarValue(scanner, key)
			if err != nil {
				return nil, err
			}
			e.PGPSignature = &v
		case "URL":
			v, err := scalarValue(scanner, key)
			if err != nil {
				return nil, err
			}
			e.URL = v
		case "ARCH":
			v, err := scalarValue(scanner, key)
			if err != nil {
				return nil, err
			}
			e.Architecture = v
		case "PACKAGER":
			v, err := scalarValue(scanner, key)
			if err != nil {
				return nil, err
			}
			e.Packager = v
		case "GROUPS":
			e.Groups = listValue(scanner)
		case "LICENSE":
			e.Licenses = listValue(scanner)
		case "REPLACES":
			e.Replaces = listValue(scanner)
		case "CONFLICTS":
			e.Conflicts = listValue(scanner)
		case "PROVIDES":
			e.Provides = listValue(scanner)
		case "DEPENDS":
			e.Depends = listValue(scanner)
		case "OPTDEPENDS":
			e.OptDepends = listValue(scanner)
		case "MAKEDEPENDS":
			e.MakeDepends = listValue(scanner)
		case "CHECKDEPENDS":
			e.CheckDepends = listValue(scanner)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, pacerrors.Wrap(pacerrors.ErrCodeIO, "scanning desc entry", err)
	}

	switch {
	case !haveFilename:
		return nil, pacerrors.New(pacerrors.ErrCodeParse, "missing %FILENAME% value")
	case !haveName:
		return nil, pacerrors.New(pacerrors.ErrCodeParse, "missing %NAME% value")
	case !haveVersion:
		return nil, pacerrors.New(pacerrors.ErrCodeParse, "missing %VERSION% value")
	case !haveSHA:
		return nil, pacerrors.New(pacerrors.ErrCodeParse, "missing %SHA256SUM% value")
	case !haveCSize:
		return nil, pacerrors.New(pacerrors.ErrCodeParse, "missing %CSIZE% value")
	}

	return &e, nil
}

func scalarValue(scanner *bufio.Scanner, key string) (string, error) {
	if !scanner.Scan() {
		return "", pacerrors.Newf(pacerrors.ErrCodeParse, "missing %%%s%% value", key)
	}
	return scanner.Text(), nil
}

func listValue(scanner *bufio.Scanner) []string {
	var vals []string
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			break
		}
		vals = append(vals, line)
	}
	return vals
}
