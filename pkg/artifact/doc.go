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

// Package artifact parses built binary package archives (zstd-compressed
// tar streams) and their embedded .PKGINFO metadata.
//
// Parse first computes the SHA-256 of the raw compressed bytes and the
// compressed size in a separate full read of the file, then reads exactly
// one embedded .PKGINFO entry (required) and records every non-hidden
// regular file's path into a sorted set.
package artifact
