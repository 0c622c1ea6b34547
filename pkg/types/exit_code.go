// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	// ExitOK means the include reference was resolved (or the command succeeded).
	ExitOK ExitCode = 0
	// ExitNotFound means the include reference could not be resolved, or the
	// requested line holds no include directive.
	ExitNotFound ExitCode = 1
	// ExitUsage means bad arguments, bad configuration or an unreadable
	// source file.
	ExitUsage ExitCode = 2
)

// ErrInvalidExitCode is the sentinel error wrapped by InvalidExitCodeError.
var ErrInvalidExitCode = errors.New("invalid exit code")

type (
	// ExitCode represents a process exit status code.
	// Exit codes are in the range 0-255 on POSIX systems.
	ExitCode int

	// InvalidExitCodeError is returned when an ExitCode is outside the
	// valid range (0-255).
	InvalidExitCodeError struct {
		Value ExitCode
	}
)

// Error implements the error interface.
func (e *InvalidExitCodeError) Error() string {
	return fmt.Sprintf("invalid exit code %d (must be in range 0-255)", e.Value)
}

// Unwrap returns ErrInvalidExitCode so callers can use errors.Is for programmatic detection.
func (e *InvalidExitCodeError) Unwrap() error { return ErrInvalidExitCode }

// Validate returns an error if the ExitCode is outside the valid range (0-255).
func (c ExitCode) Validate() error {
	if c < 0 || c > 255 {
		return &InvalidExitCodeError{Value: c}
	}
	return nil
}

// IsSuccess returns true if the exit code indicates success.
func (c ExitCode) IsSuccess() bool { return c == ExitOK }

// String returns the decimal representation followed by the meaning of the
// codes openinclude produces, e.g. "1 (not found)".
func (c ExitCode) String() string {
	switch c {
	case ExitOK:
		return "0 (ok)"
	case ExitNotFound:
		return "1 (not found)"
	case ExitUsage:
		return "2 (usage)"
	default:
		return strconv.Itoa(int(c))
	}
}
