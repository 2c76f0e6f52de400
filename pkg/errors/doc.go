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

// Package errors provides structured error types shared across the
// pipeline, fetcher, build executor, patch engine and repository merger.
//
// # Overview
//
// StructuredError carries an ErrorCode for programmatic handling, a
// human-readable message, an optional cause and optional context. It
// supports errors.Is/errors.As through Unwrap.
//
// # Error Codes
//
//   - ErrCodeIO: filesystem, subprocess spawn, channel failure
//   - ErrCodeSubprocess: non-zero subprocess exit, carries the exit code and
//     the trailing lines of captured output
//   - ErrCodeParse: malformed metadata, version, or numeric field
//   - ErrCodeNotFound: recipe origin returned no artifact
//   - ErrCodeDowngrade: merger would replace an index entry with an older version
//   - ErrCodeLockContention: another merger holds the repository lock directory
//   - ErrCodePatchFailed: patch application failed for a package
//
// # Usage
//
//	err := errors.New(errors.ErrCodeNotFound, "recipe not found: "+name)
//	err := errors.WrapSubprocess("build failed", cmdOutput, cmdErr)
package errors
