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
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	pacerrors "github.com/pacage/pacage/pkg/errors"
	"github.com/pacage/pacage/pkg/recipe"
)

// OriginKind names where a recipe's upstream source lives.
type OriginKind int

const (
	// OriginRegistry clones from the canonical package registry.
	OriginRegistry OriginKind = iota
	// OriginCommunity clones "https://<community host>/<name>.git".
	OriginCommunity
	// OriginRemoteURL clones an arbitrary git URL.
	OriginRemoteURL
	// OriginLocalPath reserves the origin tag; not implemented.
	OriginLocalPath
)

// Origin identifies one recipe's source and, for Community/RemoteURL/
// LocalPath, the value that parameterizes it.
type Origin struct {
	Kind  OriginKind
	Value string
}

// Fetcher clones recipe trees into RecipeRoot and parses the resulting
// metadata via Print when a cached .SRCINFO isn't present.
type Fetcher struct {
	RecipeRoot    string
	CommunityHost string
	Print         recipe.Printer
}

// Fetch clears any existing directory for name under RecipeRoot, clones
// it per origin with interactive git prompts disabled, and parses the
// resulting Recipe. A non-zero clone exits as a NotFound error carrying
// the tool's captured output.
func (f *Fetcher) Fetch(ctx context.Context, name string, origin Origin) (rec *recipe.Recipe, err error) {
	defer func() {
		if err != nil {
			fetchesTotal.WithLabelValues("error").Inc()
		} else {
			fetchesTotal.WithLabelValues("ok").Inc()
		}
	}()

	dir := filepath.Join(f.RecipeRoot, name)
	if _, err := os.Stat(dir); err == nil {
		if err := os.RemoveAll(dir); err != nil {
			return nil, pacerrors.Wrap(pacerrors.ErrCodeIO, "clearing previous recipe directory", err)
		}
	}

	var args []string
	switch origin.Kind {
	case OriginRegistry:
		args = []string{"pkgctl", "repo", "clone", "--protocol=https", name}
	case OriginCommunity:
		args = []string{"git", "clone", fmt.Sprintf("https://%s/%s.git", f.CommunityHost, name)}
	case OriginRemoteURL:
		args = []string{"git", "clone", origin.Value}
	case OriginLocalPath:
		return nil, pacerrors.New(pacerrors.ErrCodeNotFound, "local path recipe origin is not implemented")
	default:
		return nil, pacerrors.Newf(pacerrors.ErrCodeParse, "unknown recipe origin kind %d", origin.Kind)
	}

	out, err := runGitTerminalPromptOff(ctx, f.RecipeRoot, args)
	if err != nil {
		se := pacerrors.Wrap(pacerrors.ErrCodeNotFound, fmt.Sprintf("fetching recipe %q: %s", name, pacerrors.LastLines(out, 10)), err)
		se.ExitCode = pacerrors.ExitCodeOf(err)
		return nil, se
	}

	return recipe.Load(dir, f.Print)
}

func runGitTerminalPromptOff(ctx context.Context, dir string, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	out, err := cmd.CombinedOutput()
	return string(out), err
}
