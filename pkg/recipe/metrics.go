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

package recipe

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metadataLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pacage_recipe_metadata_loads_total",
			Help: "Total number of recipe metadata loads, by source.",
		},
		[]string{"source"}, // "cache" or "printed"
	)

	resolverHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pacage_recipe_resolver_hits_total",
			Help: "Total number of alias lookups resolved to a canonical name.",
		},
	)
)

func recordMetadataLoad(fromCache bool) {
	if fromCache {
		metadataLoads.WithLabelValues("cache").Inc()
	} else {
		metadataLoads.WithLabelValues("printed").Inc()
	}
}
