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

package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"1", "1", 0},
		{"1.5", "1.5", 0},
		{"1.5.0", "1.5.0", 0},
		{"1.5.1", "1.5.0", 1},
		{"1.5.1", "1.5", 1},
		{"1.5.0-1", "1.5.0-1", 0},
		{"1.5.0-1", "1.5.0-2", -1},
		{"1.5.0-1", "1.5.1-1", -1},
		{"1.5.0-2", "1.5.1-1", -1},
		{"1.5-1", "1.5.1-1", -1},
		{"1.5-2", "1.5.1-1", -1},
		{"1.5-2", "1.5.1-2", -1},
		{"1.5", "1.5-1", 0},
		{"1.5-1", "1.5", 0},
		{"1.1-1", "1.1", 0},
		{"1.0-1", "1.1", -1},
		{"1.1-1", "1.0", 1},
		{"1.5b", "1.5", -1},
		{"1.5b-1", "1.5", -1},
		{"1.5b", "1.5.1", -1},
		{"1.0a", "1.0alpha", -1},
		{"1.0alpha", "1.0b", -1},
		{"1.0b", "1.0beta", -1},
		{"1.0beta", "1.0rc", -1},
		{"1.0rc", "1.0", -1},
		{"1.5.a", "1.5", 1},
		{"1.5.b", "1.5.a", 1},
		{"1.5.1", "1.5.b", 1},
		{"1.5.b-1", "1.5.b", 0},
		{"1.5-1", "1.5.b", -1},
		{"2.0", "2_0", 0},
		{"2.0_a", "2_0.a", 0},
		{"2.0a", "2.0.a", -1},
		{"2___a", "2_a", 1},
		{"0:1.0", "0:1.0", 0},
		{"0:1.0", "0:1.1", -1},
		{"1:1.0", "0:1.0", 1},
		{"1:1.0", "0:1.1", 1},
		{"1:1.0", "2:1.1", -1},
		{"1:1.0", "0:1.0-1", 1},
		{"1:1.0-1", "0:1.1-1", 1},
		{"0:1.0", "1.0", 0},
		{"0:1.0", "1.1", -1},
		{"0:1.1", "1.0", 1},
		{"1:1.0", "1.0", 1},
		{"1:1.0", "1.1", 1},
		{"1:1.1", "1.1", 1},
		{"1.5.1", "1.5.0", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_vs_"+tt.b, func(t *testing.T) {
			va, err := Parse(tt.a)
			require.NoError(t, err)
			vb, err := Parse(tt.b)
			require.NoError(t, err)

			got := sign(va.Compare(vb))
			assert.Equalf(t, tt.expected, got, "Compare(%q, %q)", tt.a, tt.b)

			// Compare must be antisymmetric.
			assert.Equal(t, -tt.expected, sign(vb.Compare(va)), "Compare(%q, %q) reversed", tt.b, tt.a)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"trailing dash", "1.0-"},
		{"empty epoch before colon", ":1"},
		{"non-numeric epoch", "x:1.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestParseEpochEverythingAfterLastDashRule(t *testing.T) {
	// ':' after '-' is not an epoch separator; it stays in the release.
	v, err := Parse("1-2:3")
	require.NoError(t, err)
	assert.Equal(t, uint32(0), v.Epoch())
	assert.Equal(t, "1", v.Base())
	assert.Equal(t, "2:3", v.Release())
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{"1.0", "1:1.0", "1.0-2", "1:1.0-2", "5.2.026-2"}
	for _, in := range inputs {
		v, err := Parse(in)
		require.NoError(t, err)
		v2, err := Parse(v.String())
		require.NoError(t, err)
		assert.Zero(t, v.Compare(v2))
		assert.Equal(t, v.String(), v2.String())
	}
}

func TestViString(t *testing.T) {
	epoch := uint32(1)
	release := "6"
	v := New("070224", &release, &epoch)
	assert.Equal(t, "1:070224-6", v.String())
}
