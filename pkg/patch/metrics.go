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

package patch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var patchesApplied = promauto.NewCounter(prometheus.CounterOpts{
	Name: "pacage_patches_applied_total",
	Help: "Total number of .patch files successfully applied across all packages.",
})

var patchFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "pacage_patch_failures_total",
	Help: "Total number of packages whose patch application failed.",
})
