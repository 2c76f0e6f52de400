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

package build

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var downloadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "pacage_build_download_duration_seconds",
	Help:    "Time spent downloading a package's sources inside the build container.",
	Buckets: prometheus.DefBuckets,
})

var buildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "pacage_build_duration_seconds",
	Help:    "Wall-clock time spent building a package inside the build container.",
	Buckets: prometheus.ExponentialBuckets(1, 2, 12),
})

var buildFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "pacage_build_failures_total",
	Help: "Total number of package builds that exited non-zero.",
})
