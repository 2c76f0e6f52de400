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
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pacage/pacage/pkg/recipe"
)

// stubFetcher swaps the coordinator's subprocess dependency for an
// in-memory table, keyed by name, so its concurrency and termination
// logic can be exercised without a git binary.
type stubFetcher struct {
	mu       sync.Mutex
	calls    map[string]int
	deps     map[string][]string
	fail     map[string]bool
	failOnce string
}

func (s *stubFetcher) Fetch(ctx context.Context, name string, origin Origin) (*recipe.Recipe, error) {
	s.mu.Lock()
	s.calls[name]++
	s.mu.Unlock()

	if s.fail[name] || name == s.failOnce {
		return nil, fmt.Errorf("simulated failure for %s", name)
	}
	return &recipe.Recipe{Name: name, Version: "1.0", Depends: s.deps[name]}, nil
}

func newCoordinator(stub *stubFetcher, continueOnErr bool) *Coordinator {
	return &Coordinator{
		Fetcher:         stub,
		Resolver:        recipe.Resolver{},
		Concurrency:     3,
		ContinueOnError: continueOnErr,
		NeedDeps:        func(string) bool { return true },
		OriginFor:       func(string) Origin { return Origin{Kind: OriginRegistry} },
	}
}

func TestCoordinatorFetchesSeedsOnce(t *testing.T) {
	stub := &stubFetcher{calls: map[string]int{}, deps: map[string][]string{}}
	c := newCoordinator(stub, true)

	results, errored, err := c.Run(context.Background(), []string{"a", "b", "a"})
	require.NoError(t, err)
	assert.Empty(t, errored)
	assert.Len(t, results, 2)
	assert.Equal(t, 1, stub.calls["a"])
	assert.Equal(t, 1, stub.calls["b"])
}

func TestCoordinatorExpandsDependencies(t *testing.T) {
	stub := &stubFetcher{
		calls: map[string]int{},
		deps:  map[string][]string{"a": {"b", "c"}, "b": {"c"}},
	}
	c := newCoordinator(stub, true)

	results, _, err := c.Run(context.Background(), []string{"a"})
	require.NoError(t, err)
	assert.Len(t, results, 3)
	assert.Equal(t, 1, stub.calls["c"], "c reachable via both a and b must fetch once")
}

func TestCoordinatorContinueOnErrorCollectsFailures(t *testing.T) {
	stub := &stubFetcher{calls: map[string]int{}, deps: map[string][]string{}, fail: map[string]bool{"bad": true}}
	c := newCoordinator(stub, true)

	results, errored, err := c.Run(context.Background(), []string{"good", "bad"})
	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Contains(t, errored, "bad")
}

func TestCoordinatorAbortsOnFirstError(t *testing.T) {
	stub := &stubFetcher{calls: map[string]int{}, deps: map[string][]string{}, failOnce: "bad"}
	c := newCoordinator(stub, false)

	_, _, err := c.Run(context.Background(), []string{"bad"})
	assert.Error(t, err)
}
