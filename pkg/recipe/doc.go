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

// Package recipe parses recipe metadata files (the ".SRCINFO" format) and
// resolves user-facing package aliases to canonical recipe names.
//
// # Overview
//
// A Recipe is the parsed form of a package's build metadata: its base
// name, version components, declared dependencies, and whether it
// declares any upstream sources. Load reads the metadata file directly
// when present, and falls back to invoking a caller-supplied printer
// (typically "makepkg --printsrcinfo" run inside the build container) and
// caching the result to disk otherwise.
//
// Resolver maps external aliases to canonical recipe names; it is loaded
// once from an optional file and consulted at every user-facing name
// boundary.
package recipe
