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

// Package pipeline wires the recipe fetcher, build executor, patch engine,
// and repository merger into one end-to-end run: resolve names, fetch
// recipes and their dependencies, skip packages already up to date in the
// index, download sources, patch, build, and merge the resulting artifacts
// into the repository.
package pipeline
