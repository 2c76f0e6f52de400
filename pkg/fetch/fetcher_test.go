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

package fetch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pacerrors "github.com/pacage/pacage/pkg/errors"
)

func TestFetchLocalPathNotImplemented(t *testing.T) {
	f := &Fetcher{RecipeRoot: t.TempDir()}
	_, err := f.Fetch(context.Background(), "foo", Origin{Kind: OriginLocalPath})
	require.Error(t, err)
	code, ok := pacerrors.Code(err)
	require.True(t, ok)
	assert.Equal(t, pacerrors.ErrCodeNotFound, code)
}

func TestFetchUnknownOriginIsParseError(t *testing.T) {
	f := &Fetcher{RecipeRoot: t.TempDir()}
	_, err := f.Fetch(context.Background(), "foo", Origin{Kind: OriginKind(99)})
	require.Error(t, err)
	code, ok := pacerrors.Code(err)
	require.True(t, ok)
	assert.Equal(t, pacerrors.ErrCodeParse, code)
}

func TestFetchRemoteURLFailureIsNotFound(t *testing.T) {
	f := &Fetcher{RecipeRoot: t.TempDir()}
	_, err := f.Fetch(context.Background(), "foo", Origin{Kind: OriginRemoteURL, Value: "://not-a-valid-url"})
	require.Error(t, err)
	code, ok := pacerrors.Code(err)
	require.True(t, ok)
	assert.Equal(t, pacerrors.ErrCodeNotFound, code)
}
