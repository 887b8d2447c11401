// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// json_output.go - JSON output envelope for --json.

package cli

import (
	"encoding/json"
	"io"
	"time"

	"github.com/jeranaias/statescope/internal/model"
)

// JSONResponse wraps every --json payload.
type JSONResponse struct {
	// Success indicates whether the command completed successfully
	Success bool `json:"success"`

	// Data contains the command-specific response data
	Data interface{} `json:"data"`

	// Error contains the error message if Success is false, null otherwise
	Error *string `json:"error"`

	// Timestamp is when the response was generated (RFC 3339, UTC)
	Timestamp string `json:"timestamp"`

	// Command is the command that was executed
	Command string `json:"command,omitempty"`
}

// now is replaced in tests.
var now = time.Now

// NewJSONResponse creates a new successful JSON response.
func NewJSONResponse(command string, data interface{}) *JSONResponse {
	return &JSONResponse{
		Success:   true,
		Data:      data,
		Timestamp: now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// NewJSONErrorResponse creates a new error JSON response.
func NewJSONErrorResponse(command string, err error) *JSONResponse {
	msg := err.Error()
	return &JSONResponse{
		Success:   false,
		Error:     &msg,
		Timestamp: now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// Print writes the response as indented JSON.
func (r *JSONResponse) Print(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// outputJSON runs fetch and prints its result, or its error, as JSON. The
// error is still returned so the exit code reflects it.
func outputJSON(w io.Writer, command string, fetch func() (interface{}, error)) error {
	data, err := fetch()
	if err != nil {
		_ = NewJSONErrorResponse(command, err).Print(w)
		return err
	}
	return NewJSONResponse(command, data).Print(w)
}

// =============================================================================
// COMMAND-SPECIFIC DATA STRUCTURES
// =============================================================================

// VersionData represents the data returned by the version command.
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version,omitempty"`
}

// AskData represents the data returned by the ask command.
type AskData struct {
	Question   string         `json:"question"`
	Answer     string         `json:"answer"`
	Sources    []model.Source `json:"sources"`
	Model      string         `json:"model,omitempty"`
	DurationMs int64          `json:"duration_ms"`
}

// StatusData represents the data returned by the status command.
type StatusData struct {
	BaseURL     string `json:"base_url"`
	Reachable   bool   `json:"reachable"`
	Status      string `json:"status,omitempty"`
	PolicyCount int    `json:"policy_count"`
	LatencyMs   int64  `json:"latency_ms"`
	Error       string `json:"error,omitempty"`
}

// ConfigData represents the data returned by config show.
type ConfigData struct {
	Path   string      `json:"path"`
	Exists bool        `json:"exists"`
	Config interface{} `json:"config"`
}
