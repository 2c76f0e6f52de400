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

package errors

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// maxSubprocessLogLines bounds how much of a failing subprocess's combined
// output is kept in a wrapped error's message, mirroring the 10-line tail
// the original implementation wrote to its error log.
const maxSubprocessLogLines = 10

// ErrorCode represents a structured error classification.
type ErrorCode string

const (
	// ErrCodeIO indicates a filesystem, subprocess spawn, or channel failure.
	ErrCodeIO ErrorCode = "IO"
	// ErrCodeSubprocess indicates a subprocess exited non-zero.
	ErrCodeSubprocess ErrorCode = "SUBPROCESS"
	// ErrCodeParse indicates malformed metadata, a malformed version, or a bad numeric field.
	ErrCodeParse ErrorCode = "PARSE"
	// ErrCodeNotFound indicates a recipe origin returned no artifact.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeDowngrade indicates the merger would replace an index entry with an older version.
	// Reserved: current policy is to always treat this as fatal.
	ErrCodeDowngrade ErrorCode = "DOWNGRADE"
	// ErrCodeLockContention indicates another merger holds the repository lock directory.
	ErrCodeLockContention ErrorCode = "LOCK_CONTENTION"
	// ErrCodePatchFailed indicates patch application failed for a package.
	ErrCodePatchFailed ErrorCode = "PATCH_FAILED"
)

// StructuredError provides structured error information for better observability.
type StructuredError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
	// ExitCode is the subprocess exit status. WrapSubprocess sets it on
	// ErrCodeSubprocess errors; callers may set it on other codes, and the
	// constructors leave it at -1.
	ExitCode int
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is and errors.As support.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// New creates a new StructuredError with the given code and message.
func New(code ErrorCode, message string) *StructuredError {
	return &StructuredError{Code: code, Message: message, ExitCode: -1}
}

// Newf creates a new StructuredError with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *StructuredError {
	return &StructuredError{Code: code, Message: fmt.Sprintf(format, args...), ExitCode: -1}
}

// NewWithContext creates a new StructuredError with context information.
func NewWithContext(code ErrorCode, message string, context map[string]any) *StructuredError {
	return &StructuredError{Code: code, Message: message, Context: context, ExitCode: -1}
}

// Wrap wraps an existing error with additional context.
func Wrap(code ErrorCode, message string, cause error) *StructuredError {
	return &StructuredError{Code: code, Message: message, Cause: cause, ExitCode: -1}
}

// Wrapf wraps an existing error with a formatted message.
func Wrapf(code ErrorCode, format string, cause error, args ...any) *StructuredError {
	return &StructuredError{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause, ExitCode: -1}
}

// WrapWithContext wraps an error with additional context information.
func WrapWithContext(code ErrorCode, message string, cause error, context map[string]any) *StructuredError {
	return &StructuredError{Code: code, Message: message, Cause: cause, Context: context, ExitCode: -1}
}

// LastLines returns the trailing n lines of s. Trailing newlines are
// ignored when counting so a combined-output blob ending in "\n" doesn't
// report a phantom empty last line. If s has n or fewer lines it is
// returned unchanged.
func LastLines(s string, n int) string {
	trimmed := strings.TrimRight(s, "\n")
	if trimmed == "" {
		return ""
	}
	lines := strings.Split(trimmed, "\n")
	if len(lines) <= n {
		return trimmed
	}
	return strings.Join(lines[len(lines)-n:], "\n")
}

// ExitCodeOf extracts the process exit code from err if it unwraps to an
// *exec.ExitError, and -1 otherwise (signal death, spawn failure, or a
// cause that was never a subprocess in the first place).
func ExitCodeOf(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// WrapSubprocess builds an ErrCodeSubprocess error from a failed command's
// combined output: the message carries only the trailing
// maxSubprocessLogLines lines of output (the original wrote the same tail
// to its error log rather than dumping the whole capture), and the exit
// code, when cause is an *exec.ExitError, is recorded on ExitCode for
// callers that want it without parsing the message.
func WrapSubprocess(message, output string, cause error) *StructuredError {
	se := &StructuredError{
		Code:     ErrCodeSubprocess,
		Message:  fmt.Sprintf("%s: %s", message, LastLines(output, maxSubprocessLogLines)),
		Cause:    cause,
		ExitCode: ExitCodeOf(cause),
	}
	if se.ExitCode >= 0 {
		se.Context = map[string]any{"exit_code": se.ExitCode}
	}
	return se
}

// Code returns the ErrorCode of err if it is (or wraps) a *StructuredError,
// and false otherwise.
func Code(err error) (ErrorCode, bool) {
	var se *StructuredError
	if ok := asStructured(err, &se); ok {
		return se.Code, true
	}
	return "", false
}

func asStructured(err error, target **StructuredError) bool {
	for err != nil {
		if se, ok := err.(*StructuredError); ok {
			*target = se
			return true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = unwrapper.Unwrap()
	}
	return false
}
