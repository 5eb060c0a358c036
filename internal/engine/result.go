// ============================================================================
// meinTABELLENWERK (mTW) - Lokaler KI-Tabellen-Agent
// ============================================================================
//
// Package:     engine
// Description: Execution result types returned to callers
// Author:      Mike Stoffels
// Created:     2026-02-14
// License:     MIT
// ============================================================================

package engine

import "github.com/msto63/mTW/internal/command"

// Result status values
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusInsight = "insight"
)

// ExecutionResult is the outcome of one command. Mutations carry a
// message and the new table shape, insights carry a response and an
// optional structured payload, upstream error markers carry the raw
// model output for diagnostics.
type ExecutionResult struct {
	Status         string                 `json:"status"`
	Message        string                 `json:"message,omitempty"`
	Action         command.Action         `json:"action,omitempty"`
	Reasoning      string                 `json:"reasoning,omitempty"`
	NewRowCount    int                    `json:"new_row_count,omitempty"`
	NewColumnCount int                    `json:"new_column_count,omitempty"`
	Response       string                 `json:"response,omitempty"`
	Data           map[string]interface{} `json:"data,omitempty"`
	ErrorDetail    string                 `json:"error_detail,omitempty"`
	RawResponse    string                 `json:"raw_response,omitempty"`
}

// IsError reports whether the result describes a failed command
func (r ExecutionResult) IsError() bool {
	return r.Status == StatusError
}
