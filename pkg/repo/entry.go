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

import "github.com/pacage/pacage/pkg/artifact"

// Entry is one package's record in the repository index: its parsed
// .PKGINFO metadata plus the facts the index format needs about the
// artifact container itself.
type Entry struct {
	artifact.Metadata

	Filename       string
	CompressedSize uint64
	SHA256         string
	PGPSignature   *string
}

// NameVersion returns the "<name>-<version>" directory key used inside
// the index archives.
func (e *Entry) NameVersion() string {
	return e.Name + "-" + e.Version
}

// FromArtifact builds an Entry from a parsed artifact, filling in the
// fields the index format needs beyond .PKGINFO.
func FromArtifact(filename string, res *artifact.Result, pgpsig *string) *Entry {
	return &Entry{
		Metadata:       res.Metadata,
		Filename:       filename,
		CompressedSize: res.CompressedSize,
		SHA256:         res.SHA256,
		PGPSignature:   pgpsig,
	}
}
