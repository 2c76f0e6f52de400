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
	"archive/tar"
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	pacerrors "github.com/pacage/pacage/pkg/errors"
	"github.com/pacage/pacage/pkg/version"
)

const (
	// DBFilename is the package descriptor index, the file pacman itself
	// expects to find at the repository root.
	DBFilename = "pacage.db.tar.gz"
	// FilesFilename is the companion per-package file listing index.
	FilesFilename = "pacage.files.tar.gz"

	tmpDBName    = "pacage.db.tmp"
	tmpFilesName = "pacage.files.tmp"
	lockSuffix   = ".lock"
)

// Index is a pacman-compatible repository rooted at Dir: Dir holds the
// two index archives and the built artifact files they describe.
type Index struct {
	Dir string
}

func (ix *Index) dbPath() string    { return filepath.Join(ix.Dir, DBFilename) }
func (ix *Index) filesPath() string { return filepath.Join(ix.Dir, FilesFilename) }
func (ix *Index) lockPath() string  { return filepath.Join(ix.Dir, DBFilename+lockSuffix) }

// Update is one freshly built package to fold into the index.
type Update struct {
	Entry *Entry
	Files []string
}

// Merge locks the index, folds updates into new descriptor and files
// archives alongside whatever survives from the existing ones, and
// atomically replaces both. Superseded artifact files are unlinked from
// Dir afterward. A version already present and newer than an update's
// is a fatal downgrade attempt, reported as ErrCodeDowngrade; packages
// not present in updates are left untouched.
func (ix *Index) Merge(updates []*Update) (err error) {
	start := time.Now()
	defer func() {
		mergeDuration.Observe(time.Since(start).Seconds())
	}()

	byName := make(map[string]*Update, len(updates))
	for _, u := range updates {
		byName[u.Entry.Name] = u
	}

	lock, err := acquireLock(ix.lockPath())
	if err != nil {
		return err
	}
	defer lock.Release()

	dbTmp := filepath.Join(lock.Path(), tmpDBName)
	filesTmp := filepath.Join(lock.Path(), tmpFilesName)

	dbFile, dbTw, dbGz, err := createTarGz(dbTmp)
	if err != nil {
		return err
	}
	filesFile, filesTw, filesGz, err := createTarGz(filesTmp)
	if err != nil {
		return err
	}

	var stale []string

	if _, statErr := os.Stat(ix.dbPath()); statErr == nil {
		if err = copyOldDB(dbTw, ix.dbPath(), byName, &stale); err != nil {
			return err
		}
	}
	if _, statErr := os.Stat(ix.filesPath()); statErr == nil {
		if err = copyOldFiles(filesTw, ix.filesPath(), byName); err != nil {
			return err
		}
	}

	for _, u := range updates {
		descDir := u.Entry.NameVersion()

		var descBuf bytes.Buffer
		if err = WriteDesc(&descBuf, u.Entry); err != nil {
			return err
		}

		if err = writeTarEntry(dbTw, path.Join(descDir, "desc"), descBuf.Bytes()); err != nil {
			return err
		}
		if err = writeTarEntry(filesTw, path.Join(descDir, "desc"), descBuf.Bytes()); err != nil {
			return err
		}

		var filesBuf bytes.Buffer
		if err = WriteFiles(&filesBuf, u.Files); err != nil {
			return err
		}
		if err = writeTarEntry(filesTw, path.Join(descDir, "files"), filesBuf.Bytes()); err != nil {
			return err
		}
	}

	if err = finishTarGz(dbTw, dbGz, dbFile); err != nil {
		return err
	}
	if err = finishTarGz(filesTw, filesGz, filesFile); err != nil {
		return err
	}

	if err = os.Rename(dbTmp, ix.dbPath()); err != nil {
		return pacerrors.Wrap(pacerrors.ErrCodeIO, "replacing repository db index", err)
	}
	if err = os.Rename(filesTmp, ix.filesPath()); err != nil {
		return pacerrors.Wrap(pacerrors.ErrCodeIO, "replacing repository files index", err)
	}

	for _, filename := range stale {
		if rmErr := os.Remove(filepath.Join(ix.Dir, filename)); rmErr != nil && !os.IsNotExist(rmErr) {
			return pacerrors.Wrap(pacerrors.ErrCodeIO, "removing stale artifact", rmErr)
		}
	}

	mergedPackages.Add(float64(len(updates)))
	staleArtifactsRemoved.Add(float64(len(stale)))
	return nil
}

func createTarGz(path string) (*os.File, *tar.Writer, *gzip.Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, nil, pacerrors.Wrap(pacerrors.ErrCodeIO, "creating temporary index archive", err)
	}
	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)
	return f, tw, gz, nil
}

func finishTarGz(tw *tar.Writer, gz *gzip.Writer, f *os.File) error {
	if err := tw.Close(); err != nil {
		return pacerrors.Wrap(pacerrors.ErrCodeIO, "closing index tar stream", err)
	}
	if err := gz.Close(); err != nil {
		return pacerrors.Wrap(pacerrors.ErrCodeIO, "closing index gzip stream", err)
	}
	if err := f.Sync(); err != nil {
		return pacerrors.Wrap(pacerrors.ErrCodeIO, "syncing index archive", err)
	}
	return f.Close()
}

func writeTarEntry(tw *tar.Writer, name string, content []byte) error {
	hdr := &tar.Header{
		Name:     name,
		Size:     int64(len(content)),
		Mode:     0o644,
		Typeflag: tar.TypeReg,
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return pacerrors.Wrap(pacerrors.ErrCodeIO, "writing index tar header", err)
	}
	if _, err := tw.Write(content); err != nil {
		return pacerrors.Wrap(pacerrors.ErrCodeIO, "writing index tar entry", err)
	}
	return nil
}

// copyOldDB streams every desc entry of the existing db index into tw,
// skipping and classifying entries whose package name is in the batch.
func copyOldDB(tw *tar.Writer, dbPath string, batch map[string]*Update, stale *[]string) error {
	f, err := os.Open(dbPath)
	if err != nil {
		return pacerrors.Wrap(pacerrors.ErrCodeIO, "opening existing db index", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return pacerrors.Wrap(pacerrors.ErrCodeParse, "decompressing existing db index", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return pacerrors.Wrap(pacerrors.ErrCodeParse, "reading existing db index", err)
		}
		if path.Base(hdr.Name) != "desc" {
			continue
		}

		dir := path.Dir(hdr.Name)
		ename, eversion, perr := ParsePathName(dir)
		if perr != nil {
			continue
		}

		update, incoming := batch[ename]
		if !incoming {
			if err = copyTarEntry(tw, hdr, tr); err != nil {
				return err
			}
			continue
		}

		incomingVersion, verr := version.Parse(update.Entry.Version)
		if verr != nil {
			return pacerrors.Wrap(pacerrors.ErrCodeParse, "parsing incoming package version", verr)
		}

		switch eversion.Compare(incomingVersion) {
		case 1:
			return pacerrors.Newf(pacerrors.ErrCodeDowngrade,
				"downgrade attempted for %s: repository has %s, incoming is %s",
				ename, eversion.String(), incomingVersion.String())
		case 0:
			// Duplicate: accept the incoming copy, drop the old one.
			continue
		default:
			var buf bytes.Buffer
			if _, cerr := io.Copy(&buf, tr); cerr != nil {
				return pacerrors.Wrap(pacerrors.ErrCodeIO, "reading superseded desc entry", cerr)
			}
			old, perr := ParseDesc(&buf)
			if perr != nil {
				return pacerrors.Wrap(pacerrors.ErrCodeParse, "parsing superseded desc entry", perr)
			}
			*stale = append(*stale, old.Filename)
		}
	}
	return nil
}

// copyOldFiles streams every desc/files entry of the existing files index
// into tw, omitting any whose package name matches the batch.
func copyOldFiles(tw *tar.Writer, filesPath string, batch map[string]*Update) error {
	f, err := os.Open(filesPath)
	if err != nil {
		return pacerrors.Wrap(pacerrors.ErrCodeIO, "opening existing files index", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return pacerrors.Wrap(pacerrors.ErrCodeParse, "decompressing existing files index", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return pacerrors.Wrap(pacerrors.ErrCodeParse, "reading existing files index", err)
		}

		base := path.Base(hdr.Name)
		if base != "desc" && base != "files" {
			continue
		}

		dir := path.Dir(hdr.Name)
		ename, _, perr := ParsePathName(dir)
		if perr != nil {
			continue
		}
		if _, matched := batch[ename]; matched {
			continue
		}
		if err = copyTarEntry(tw, hdr, tr); err != nil {
			return err
		}
	}
	return nil
}

func copyTarEntry(tw *tar.Writer, hdr *tar.Header, r io.Reader) error {
	out := *hdr
	if err := tw.WriteHeader(&out); err != nil {
		return pacerrors.Wrap(pacerrors.ErrCodeIO, "copying index entry header", err)
	}
	if _, err := io.Copy(tw, r); err != nil {
		return pacerrors.Wrap(pacerrors.ErrCodeIO, "copying index entry body", err)
	}
	return nil
}

// List reads every desc entry out of the db index.
func (ix *Index) List() ([]*Entry, error) {
	f, err := os.Open(ix.dbPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, pacerrors.New(pacerrors.ErrCodeNotFound, "repository has no db index yet")
		}
		return nil, pacerrors.Wrap(pacerrors.ErrCodeIO, "opening db index", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, pacerrors.Wrap(pacerrors.ErrCodeParse, "decompressing db index", err)
	}
	defer gz.Close()

	var entries []*Entry
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, pacerrors.Wrap(pacerrors.ErrCodeParse, "reading db index", err)
		}
		if path.Base(hdr.Name) != "desc" {
			continue
		}
		e, perr := ParseDesc(tr)
		if perr != nil {
			return nil, perr
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// FindArtifact locates the built archive for name under Dir by prefix
// match, mirroring the on-disk "<name>-<version>-<arch>.pkg.tar.zst"
// naming convention.
func FindArtifact(dir, name string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", pacerrors.Wrap(pacerrors.ErrCodeIO, "reading repo directory", err)
	}
	prefix := name + "-"
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n := e.Name()
		if strings.HasPrefix(n, prefix) && strings.HasSuffix(n, ".pkg.tar.zst") {
			return filepath.Join(dir, n), nil
		}
	}
	return "", pacerrors.Newf(pacerrors.ErrCodeNotFound, "no built archive found for %s", name)
}
