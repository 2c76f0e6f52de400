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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mergeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pacage_repo_merge_duration_seconds",
			Help:    "Time spent merging artifacts into the repository index.",
			Buckets: prometheus.DefBuckets,
		},
	)

	mergedPackages = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pacage_repo_merged_packages_total",
			Help: "Total number of package entries written into the repository index.",
		},
	)

	staleArtifactsRemoved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pacage_repo_stale_artifacts_removed_total",
			Help: "Total number of superseded artifact files unlinked after a merge.",
		},
	)
)
