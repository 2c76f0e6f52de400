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

package artifact

import (
	"archive/tar"
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"

	pacerrors "github.com/pacage/pacage/pkg/errors"
)

// pkginfoEntry is the archive path of the embedded metadata file every
// built package carries.
const pkginfoEntry = ".PKGINFO"

// Metadata is the parsed content of a package's embedded .PKGINFO.
type Metadata struct {
	Name         string
	Base         string
	Version      string
	Description  string
	URL          string
	Architecture string
	Packager     string
	InstallSize  *uint64
	BuildDate    *uint64

	Groups       []string
	Licenses     []string
	Replaces     []string
	Depends      []string
	Conflicts    []string
	Provides     []string
	OptDepends   []string
	MakeDepends  []string
	CheckDepends []string
}

// Result bundles a package's parsed metadata with the facts the repository
// merger needs about its container: the full set of non-hidden regular
// file paths it installs, its compressed size, and the SHA-256 of its raw
// compressed bytes.
type Result struct {
	Metadata       Metadata
	Files          []string
	CompressedSize uint64
	SHA256         string
}

// Parse opens pkgfile (a zstd-compressed tar archive), extracts its
// .PKGINFO, records every non-hidden regular file path it contains, and
// computes the SHA-256 and size of the archive's raw compressed bytes.
func Parse(pkgfile string) (result *Result, err error) {
	start := time.Now()
	defer func() {
		parseDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			parseFailures.Inc()
		}
	}()

	sum, size, err := hashFile(pkgfile)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(pkgfile)
	if err != nil {
		return nil, pacerrors.Wrap(pacerrors.ErrCodeIO, "opening package archive", err)
	}
	defer f.Close()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return nil, pacerrors.Wrap(pacerrors.ErrCodeParse, "decompressing package archive", err)
	}
	defer zr.Close()

	var meta *Metadata
	var files []string

	tr := tar.NewReader(zr)
	for {
		hdr, terr := tr.Next()
		if terr == io.EOF {
			break
		}
		if terr != nil {
			return nil, pacerrors.Wrap(pacerrors.ErrCodeParse, "reading package archive entries", terr)
		}

		switch {
		case hdr.Name == pkginfoEntry:
			m, perr := parsePkgInfo(tr)
			if perr != nil {
				return nil, perr
			}
			meta = m
		case hdr.Typeflag == tar.TypeReg && !strings.HasPrefix(hdr.Name, "."):
			files = append(files, hdr.Name)
		}
	}

	if meta == nil {
		return nil, pacerrors.New(pacerrors.ErrCodeParse, "package archive is missing .PKGINFO")
	}

	sort.Strings(files)

	return &Result{
		Metadata:       *meta,
		Files:          files,
		CompressedSize: size,
		SHA256:         sum,
	}, nil
}

// hashFile computes the SHA-256 and byte length of pkgfile's entire raw
// (compressed) content, read independently of the tar/zstd decode pass.
func hashFile(pkgfile string) (sum string, size uint64, err error) {
	f, err := os.Open(pkgfile)
	if err != nil {
		return "", 0, pacerrors.Wrap(pacerrors.ErrCodeIO, "opening package archive", err)
	}
	defer f.Close()

	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return "", 0, pacerrors.Wrap(pacerrors.ErrCodeIO, "hashing package archive", err)
	}
	return hex.EncodeToString(h.Sum(nil)), uint64(n), nil
}

// parsePkgInfo reads the key = value lines of an embedded .PKGINFO entry.
func parsePkgInfo(r io.Reader) (*Metadata, error) {
	var m Metadata
	var haveName, haveVersion bool

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		idx := strings.IndexByte(line, '=')
		if idx < 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		val := strings.TrimSpace(line[idx+1:])

		switch key {
		case "pkgname":
			m.Name = val
			haveName = true
		case "pkgver":
			m.Version = val
			haveVersion = true
		case "pkgbase":
			m.Base = val
		case "pkgdesc":
			m.Description = val
		case "url":
			m.URL = val
		case "arch":
			m.Architecture = val
		case "packager":
			m.Packager = val
		case "groups":
			m.Groups = append(m.Groups, val)
		case "license":
			m.Licenses = append(m.Licenses, val)
		case "replaces":
			m.Replaces = append(m.Replaces, val)
		case "depend":
			m.Depends = append(m.Depends, val)
		case "conflicts":
			m.Conflicts = append(m.Conflicts, val)
		case "provides":
			m.Provides = append(m.Provides, val)
		case "optdepend":
			m.OptDepends = append(m.OptDepends, val)
		case "makedepend":
			m.MakeDepends = append(m.MakeDepends, val)
		case "checkdepend":
			m.CheckDepends = append(m.CheckDepends, val)
		case "size":
			n, err := strconv.ParseUint(val, 10, 64)
			if err != nil {
				return nil, pacerrors.Wrapf(pacerrors.ErrCodeParse, "invalid size %q in .PKGINFO", err, val)
			}
			m.InstallSize = &n
		case "builddate":
			n, err := strconv.ParseUint(val, 10, 64)
			if err != nil {
				return nil, pacerrors.Wrapf(pacerrors.ErrCodeParse, "invalid builddate %q in .PKGINFO", err, val)
			}
			m.BuildDate = &n
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, pacerrors.Wrap(pacerrors.ErrCodeIO, "scanning .PKGINFO", err)
	}

	if !haveName {
		return nil, pacerrors.New(pacerrors.ErrCodeParse, "missing pkgname entry in .PKGINFO")
	}
	if !haveVersion {
		return nil, pacerrors.New(pacerrors.ErrCodeParse, "missing pkgver entry in .PKGINFO")
	}

	return &m, nil
}
