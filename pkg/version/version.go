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

// Package version parses and totally orders package version strings of
// the form [epoch:]base[-release], matching the native pacman comparator.
package version

import (
	"strconv"
	"strings"

	pacerrors "github.com/pacage/pacage/pkg/errors"
)

// Version is an immutable, parsed [epoch:]base[-release] value.
type Version struct {
	epoch   *uint32
	base    string
	release *string
}

// New constructs a Version directly from its components, bypassing
// parsing. base must be non-empty.
func New(base string, release *string, epoch *uint32) *Version {
	return &Version{epoch: epoch, base: base, release: release}
}

// Parse parses "[epoch:]base[-release]".
//
// Rule: if both ':' and '-' appear and ':' comes after '-', the ':' is
// not an epoch separator and stays in the release (the text after the
// first '-'); otherwise the leftmost ':' separates the epoch. A
// trailing '-' with no release, a missing base, or a non-numeric epoch is
// a parse error.
func Parse(s string) (*Version, error) {
	colon := strings.IndexByte(s, ':')
	dash := strings.IndexByte(s, '-')

	if colon != -1 && dash != -1 && colon > dash {
		colon = -1
	}

	var epoch *uint32
	if colon != -1 {
		n, err := strconv.ParseUint(s[:colon], 10, 32)
		if err != nil {
			return nil, pacerrors.Wrap(pacerrors.ErrCodeParse, "invalid epoch number", err)
		}
		v := uint32(n)
		epoch = &v
	}

	var release *string
	if dash != -1 {
		if dash+1 >= len(s) {
			return nil, pacerrors.New(pacerrors.ErrCodeParse, "empty release number")
		}
		r := s[dash+1:]
		release = &r
	}

	baseStart := 0
	if colon != -1 {
		baseStart = colon + 1
	}
	baseEnd := len(s)
	if dash != -1 {
		baseEnd = dash
	}
	base := s[baseStart:baseEnd]
	if base == "" {
		return nil, pacerrors.New(pacerrors.ErrCodeParse, "empty version")
	}

	return &Version{epoch: epoch, base: base, release: release}, nil
}

// Base returns the version's base component, excluding epoch and release.
func (v *Version) Base() string { return v.base }

// Release returns the release component, or "1" if none was supplied, per
// the ordering rule in Compare.
func (v *Version) Release() string {
	if v.release == nil {
		return "1"
	}
	return *v.release
}

// Epoch returns the epoch, defaulting to 0.
func (v *Version) Epoch() uint32 {
	if v.epoch == nil {
		return 0
	}
	return *v.epoch
}

// String renders the version back to "[epoch:]base[-release]". It
// round-trips through Parse.
func (v *Version) String() string {
	var b strings.Builder
	if v.epoch != nil {
		b.WriteString(strconv.FormatUint(uint64(*v.epoch), 10))
		b.WriteByte(':')
	}
	b.WriteString(v.base)
	if v.release != nil {
		b.WriteByte('-')
		b.WriteString(*v.release)
	}
	return b.String()
}

// Compare totally orders two versions:
//  1. epochs numerically (missing = 0)
//  2. bases via rpmvercmp
//  3. releases via rpmvercmp (missing release = "1")
//
// Returns a negative number if v < other, zero if equal, positive if
// v > other.
func (v *Version) Compare(other *Version) int {
	if d := int(v.Epoch()) - int(other.Epoch()); d != 0 {
		return sign(d)
	}
	if c := rpmvercmp(v.base, other.base); c != 0 {
		return c
	}
	return rpmvercmp(v.Release(), other.Release())
}

// Equal reports whether v and other compare equal.
func (v *Version) Equal(other *Version) bool { return v.Compare(other) == 0 }

// Less reports whether v orders strictly before other.
func (v *Version) Less(other *Version) bool { return v.Compare(other) < 0 }

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

// rpmvercmp is a byte-for-byte port of pacman's segmented comparator: it
// walks both strings one character at a time in lockstep, discarding
// matched runs of non-alphanumeric separators, then compares runs of
// digits or letters homogeneously. A numeric run beats an alphabetic run.
// Leading zeros in a digit run are stripped before the numeric compare.
//
// Ported from https://gitlab.archlinux.org/pacman/pacman/-/blob/master/lib/libalpm/version.c
func rpmvercmp(a, b string) int {
	ia, ib := 0, 0
	next := func(s string, i *int) (byte, bool) {
		if *i >= len(s) {
			return 0, false
		}
		c := s[*i]
		*i++
		return c, true
	}

	const (
		stateNonAlphaNum = iota
		stateNumber
		stateAlpha
	)
	state := stateNonAlphaNum
	var ca, cb byte

outer:
	for {
		switch state {
		case stateNonAlphaNum:
			na, oka := next(a, &ia)
			nb, okb := next(b, &ib)
			switch {
			case oka && okb:
				aAN, bAN := isAlphaNum(na), isAlphaNum(nb)
				switch {
				case !aAN && !bAN:
					continue outer
				case !aAN && bAN:
					return 1
				case aAN && !bAN:
					return -1
				case isDigit(na):
					if !isDigit(nb) {
						return 1
					}
					ca, cb = na, nb
					state = stateNumber
				default: // na is alphabetic
					if !isAlpha(nb) {
						return -1
					}
					ca, cb = na, nb
					state = stateAlpha
				}
			case oka && !okb:
				return -1
			case !oka && okb:
				return 1
			default:
				return -1 // both exhausted; arbitrary, matches upstream
			}

		case stateNumber:
			for ca == '0' {
				if c, ok := next(a, &ia); ok {
					ca = c
				} else {
					break
				}
			}
			for cb == '0' {
				if c, ok := next(b, &ib); ok {
					cb = c
				} else {
					break
				}
			}
			var resA, resB uint64
			hasA, hasB := true, true
			for {
				switch {
				case hasA && hasB:
					aDig, bDig := isDigit(ca), isDigit(cb)
					switch {
					case aDig && bDig:
						resA = resA*10 + uint64(ca-'0')
						resB = resB*10 + uint64(cb-'0')
					case aDig && !bDig:
						return 1
					case !aDig && bDig:
						return -1
					default:
						if resA != resB {
							return sign64(resA, resB)
						}
						aAlpha, bAlpha := isAlpha(ca), isAlpha(cb)
						switch {
						case aAlpha && bAlpha:
							state = stateAlpha
							continue outer
						case aAlpha && !bAlpha:
							return -1
						case !aAlpha && bAlpha:
							return 1
						default:
							state = stateNonAlphaNum
							continue outer
						}
					}
				case hasA && !hasB:
					if isAlpha(ca) {
						return -1
					}
					return 1
				case !hasA && hasB:
					return -1
				default:
					return sign64(resA, resB)
				}
				var ok bool
				ca, ok = next(a, &ia)
				hasA = ok
				cb, ok = next(b, &ib)
				hasB = ok
			}

		case stateAlpha:
			hasA, hasB := true, true
			for {
				switch {
				case hasA && hasB:
					aAlpha, bAlpha := isAlpha(ca), isAlpha(cb)
					switch {
					case aAlpha && bAlpha:
						if ca != cb {
							return sign(int(ca) - int(cb))
						}
					case aAlpha && !bAlpha:
						return 1
					case !aAlpha && bAlpha:
						return -1
					default:
						aDig, bDig := isDigit(ca), isDigit(cb)
						switch {
						case aDig && bDig:
							state = stateNumber
						case aDig && !bDig:
							return -1
						case !aDig && bDig:
							return 1
						default:
							state = stateNonAlphaNum
						}
						continue outer
					}
				case hasA && !hasB:
					return 1
				case !hasA && hasB:
					return -1
				default:
					return 0
				}
				var ok bool
				ca, ok = next(a, &ia)
				hasA = ok
				cb, ok = next(b, &ib)
				hasB = ok
			}
		}
	}
}

func sign64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func isDigit(c byte) bool    { return c >= '0' && c <= '9' }
func isAlpha(c byte) bool    { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isAlphaNum(c byte) bool { return isDigit(c) || isAlpha(c) }
