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

package artifact

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	parseDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pacage_artifact_parse_duration_seconds",
			Help:    "Time spent parsing a built package archive.",
			Buckets: prometheus.DefBuckets,
		},
	)

	parseFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pacage_artifact_parse_failures_total",
			Help: "Total number of package archives that failed to parse.",
		},
	)
)
