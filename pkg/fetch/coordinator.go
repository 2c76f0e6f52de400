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
	"sync"
	"sync/atomic"

	"github.com/pacage/pacage/pkg/recipe"
)

// Fetched pairs a successfully fetched recipe with the origin it was
// fetched from.
type Fetched struct {
	Recipe *recipe.Recipe
	Name   string
	Origin Origin
}

// recipeFetcher is the subset of *Fetcher the coordinator depends on;
// tests substitute it to exercise the pool without shelling out to git.
type recipeFetcher interface {
	Fetch(ctx context.Context, name string, origin Origin) (*recipe.Recipe, error)
}

// Coordinator runs a bounded pool of workers over a dependency frontier
// that starts at a seed set and grows as dependencies are discovered.
// Names are fetched at most once per run; emission order is unspecified.
type Coordinator struct {
	Fetcher         recipeFetcher
	Resolver        recipe.Resolver
	Concurrency     int
	ContinueOnError bool

	// NeedDeps reports whether a fetched recipe's dependencies should be
	// enqueued. OriginFor resolves the origin to fetch a (possibly newly
	// discovered) name from.
	NeedDeps  func(name string) bool
	OriginFor func(name string) Origin
}

// unboundedQueue is a FIFO whose emptiness can be checked atomically
// alongside a send/receive, which a plain Go channel cannot do. The
// worker pool's termination rule depends on observing "no work queued"
// in the same instant as "every worker idle".
type unboundedQueue struct {
	mu    sync.Mutex
	cond  *sync.Cond
	items []*string
}

func newUnboundedQueue() *unboundedQueue {
	q := &unboundedQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

func (q *unboundedQueue) send(item *string) {
	q.mu.Lock()
	q.items = append(q.items, item)
	q.cond.Signal()
	q.mu.Unlock()
}

func (q *unboundedQueue) recv() *string {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 {
		q.cond.Wait()
	}
	item := q.items[0]
	q.items = q.items[1:]
	return item
}

func (q *unboundedQueue) isEmpty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) == 0
}

// Run fetches seeds (and their transitively discovered dependencies) and
// returns every recipe fetched. Names already seen (successfully or not)
// are skipped. If ContinueOnError is false, the first fetch error
// cancels the remaining workers and is returned; otherwise it is
// collected into the returned error map and the run proceeds.
func (c *Coordinator) Run(ctx context.Context, seeds []string) ([]Fetched, map[string]error, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	queue := newUnboundedQueue()
	for _, name := range seeds {
		resolved := c.Resolver.Resolve(name)
		queue.send(&resolved)
	}

	var mu sync.Mutex
	done := make(map[string]bool)
	errored := make(map[string]error)
	var results []Fetched

	var waiting int32
	n := int32(c.Concurrency)

	var fatalOnce sync.Once
	var fatal error

	var wg sync.WaitGroup
	wg.Add(c.Concurrency)
	for i := 0; i < c.Concurrency; i++ {
		go func() {
			defer wg.Done()
			for {
				if ctx.Err() != nil {
					return
				}

				w := atomic.AddInt32(&waiting, 1)
				if w == n && queue.isEmpty() {
					for i := int32(0); i < n-1; i++ {
						queue.send(nil)
					}
					return
				}

				item := queue.recv()
				if item == nil {
					return
				}
				atomic.AddInt32(&waiting, -1)
				name := *item

				mu.Lock()
				if done[name] || errored[name] != nil {
					mu.Unlock()
					continue
				}
				done[name] = true
				mu.Unlock()

				origin := c.OriginFor(name)
				rec, err := c.Fetcher.Fetch(ctx, name, origin)
				if err != nil {
					if c.ContinueOnError {
						mu.Lock()
						errored[name] = err
						mu.Unlock()
						continue
					}
					fatalOnce.Do(func() {
						fatal = err
						cancel()
						for i := int32(0); i < n-1; i++ {
							queue.send(nil)
						}
					})
					return
				}

				if c.NeedDeps(name) {
					for _, dep := range rec.Depends {
						resolved := c.Resolver.Resolve(dep)
						queue.send(&resolved)
					}
				}

				mu.Lock()
				results = append(results, Fetched{Recipe: rec, Name: name, Origin: origin})
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if fatal != nil {
		return nil, nil, fatal
	}
	return results, errored, nil
}
