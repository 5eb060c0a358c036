// ============================================================================
// meinTABELLENWERK (mTW) - Lokaler KI-Tabellen-Agent
// ============================================================================
//
// Package:     apperror
// Description: Error code definitions for consistent error classification
// Author:      Mike Stoffels
// Created:     2026-02-10
// License:     MIT
// ============================================================================

package apperror

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeTimeout      Code = "TIMEOUT"

	// Table and operation codes
	CodeUnknownColumn     Code = "UNKNOWN_COLUMN"
	CodeDuplicateColumn   Code = "DUPLICATE_COLUMN"
	CodeColumnSetMismatch Code = "COLUMN_SET_MISMATCH"
	CodeIndexOutOfRange   Code = "INDEX_OUT_OF_RANGE"
	CodeMissingParameter  Code = "MISSING_PARAMETER"
	CodeUnknownAction     Code = "UNKNOWN_ACTION"
	CodeInvalidOperator   Code = "INVALID_OPERATOR"
	CodeParseFailure      Code = "PARSE_FAILURE"
	CodeEmptyPlan         Code = "EMPTY_PLAN"
	CodeTranslationFailed Code = "TRANSLATION_FAILED"

	// Infrastructure codes
	CodeIOError             Code = "IO_ERROR"
	CodeStoreError          Code = "STORE_ERROR"
	CodeConfigError         Code = "CONFIG_ERROR"
	CodeInvalidConfig       Code = "INVALID_CONFIG"
	CodeProviderUnavailable Code = "PROVIDER_UNAVAILABLE"
	CodeNetworkError        Code = "NETWORK_ERROR"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeInvalidInput, CodeTimeout,
		CodeUnknownColumn, CodeDuplicateColumn, CodeColumnSetMismatch,
		CodeIndexOutOfRange, CodeMissingParameter, CodeUnknownAction,
		CodeInvalidOperator, CodeParseFailure, CodeEmptyPlan, CodeTranslationFailed,
		CodeIOError, CodeStoreError, CodeConfigError, CodeInvalidConfig,
		CodeProviderUnavailable, CodeNetworkError:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeUnknownColumn, CodeDuplicateColumn, CodeColumnSetMismatch,
		CodeIndexOutOfRange, CodeMissingParameter, CodeUnknownAction,
		CodeInvalidOperator, CodeParseFailure, CodeEmptyPlan:
		return "command"
	case CodeTranslationFailed, CodeProviderUnavailable, CodeNetworkError:
		return "provider"
	case CodeIOError, CodeStoreError:
		return "storage"
	case CodeConfigError, CodeInvalidConfig:
		return "configuration"
	default:
		return "generic"
	}
}
