// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Error types, display and exit codes for CLI commands.
//
// Commands always return errors; main decides how to show them and which
// exit code to use.

package cli

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jeranaias/statescope/internal/api"
	"github.com/jeranaias/statescope/internal/config"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates configuration file or settings error
	ExitConfigError = 3
	// ExitNetworkError indicates the API could not be reached
	ExitNetworkError = 5
	// ExitNotFoundError indicates a resource was not found
	ExitNotFoundError = 7
	// ExitTimeoutError indicates an operation timed out
	ExitTimeoutError = 8
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// UsageError is a malformed command line.
type UsageError struct {
	Command string
	Reason  string
	Example string
}

func (e *UsageError) Error() string {
	msg := e.Command + ": " + e.Reason
	if e.Example != "" {
		msg += " (example: " + e.Example + ")"
	}
	return msg
}

// NotFoundError is a lookup with no match.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func usageErr(command, reason, example string) error {
	return &UsageError{Command: command, Reason: reason, Example: example}
}

// =============================================================================
// DISPLAY
// =============================================================================

// DisplayError writes err to w in the human format.
func DisplayError(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("Error:"), err.Error())
	if hint := hintFor(err); hint != "" {
		fmt.Fprintln(w, DimStyle.Render(hint))
	}
}

func hintFor(err error) string {
	switch api.TypeOf(err) {
	case api.ErrTypeConnection:
		return "Is the policy API running? Set api.base_url or STATESCOPE_API_URL."
	case api.ErrTypeRateLimited:
		return "The API allows 10 questions per minute."
	}
	var ve config.ValidateErrors
	if errors.As(err, &ve) {
		return "Fix the config file or run: statescope config init"
	}
	return ""
}

// GetExitCode determines the exit code for err.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var usage *UsageError
	if errors.As(err, &usage) {
		return ExitUsageError
	}
	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		return ExitNotFoundError
	}
	var ve config.ValidateErrors
	if errors.As(err, &ve) {
		return ExitConfigError
	}
	if code, ok := api.StatusCode(err); ok && code == http.StatusNotFound {
		return ExitNotFoundError
	}

	switch api.TypeOf(err) {
	case api.ErrTypeConnection:
		return ExitNetworkError
	case api.ErrTypeTimeout:
		return ExitTimeoutError
	case api.ErrTypeInvalidRequest:
		return ExitUsageError
	}
	return ExitGeneralError
}
