// ============================================================================
// meinTABELLENWERK (mTW) - Lokaler KI-Tabellen-Agent
// ============================================================================
//
// Package:     apperror
// Description: Severity levels for error prioritization and logging
// Author:      Mike Stoffels
// Created:     2026-02-10
// License:     MIT
// ============================================================================

package apperror

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow indicates a minor error, typically invalid user input
	SeverityLow Severity = iota

	// SeverityMedium indicates an error that affects functionality but has workarounds
	SeverityMedium

	// SeverityHigh indicates a serious error that significantly impacts functionality
	SeverityHigh

	// SeverityCritical indicates an error that makes the application unusable
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// SeverityFromCode determines the appropriate severity level based on error code
func SeverityFromCode(code Code) Severity {
	switch code {
	case CodeStoreError, CodeIOError:
		return SeverityHigh

	case CodeTranslationFailed, CodeProviderUnavailable, CodeNetworkError,
		CodeTimeout, CodeConfigError, CodeInvalidConfig:
		return SeverityMedium

	case CodeUnknownColumn, CodeDuplicateColumn, CodeColumnSetMismatch,
		CodeIndexOutOfRange, CodeMissingParameter, CodeUnknownAction,
		CodeInvalidOperator, CodeParseFailure, CodeEmptyPlan, CodeInvalidInput:
		return SeverityLow

	default:
		return SeverityMedium
	}
}
