package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/msto63/mTW/pkg/core/apperror"
)

func TestNew(t *testing.T) {
	logger := New("test")

	if logger == nil {
		t.Fatal("New() should not return nil")
	}

	if logger.GetLevel() != LevelInfo {
		t.Errorf("New() level = %v, want %v", logger.GetLevel(), LevelInfo)
	}

	if logger.name != "test" {
		t.Errorf("New() name = %v, want test", logger.name)
	}
}

func TestNewWithConfig(t *testing.T) {
	var buf bytes.Buffer
	config := Config{
		Level:  LevelError,
		Format: FormatText,
		Output: &buf,
		Name:   "test-logger",
	}

	logger := NewWithConfig(config)

	if logger.GetLevel() != LevelError {
		t.Errorf("NewWithConfig() level = %v, want %v", logger.GetLevel(), LevelError)
	}

	if logger.output != &buf {
		t.Error("NewWithConfig() should set custom output")
	}
}

func TestLoggerWithLevel(t *testing.T) {
	logger := New("test")
	newLogger := logger.WithLevel(LevelDebug)

	if newLogger == logger {
		t.Error("WithLevel() should return a new logger instance")
	}

	if newLogger.GetLevel() != LevelDebug {
		t.Errorf("WithLevel() level = %v, want %v", newLogger.GetLevel(), LevelDebug)
	}

	// Original logger should be unchanged
	if logger.GetLevel() != LevelInfo {
		t.Error("WithLevel() should not modify original logger")
	}
}

func TestLoggerWithField(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithConfig(Config{Level: LevelInfo, Format: FormatJSON, Output: &buf})

	logger.WithField("component", "engine").Info("ready")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON log output: %v", err)
	}

	if entry["component"] != "engine" {
		t.Errorf("Expected component=engine, got %v", entry["component"])
	}

	if entry["message"] != "ready" {
		t.Errorf("Expected message=ready, got %v", entry["message"])
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		minLevel  Level
		logLevel  Level
		wantEmpty bool
	}{
		{"Debug filtered at info", LevelInfo, LevelDebug, true},
		{"Info passes at info", LevelInfo, LevelInfo, false},
		{"Error passes at info", LevelInfo, LevelError, false},
		{"Info filtered at error", LevelError, LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewWithConfig(Config{Level: tt.minLevel, Format: FormatText, Output: &buf})

			logger.log(tt.logLevel, "message", nil)

			if got := buf.Len() == 0; got != tt.wantEmpty {
				t.Errorf("Output empty = %v, want %v (output: %q)", got, tt.wantEmpty, buf.String())
			}
		})
	}
}

func TestLoggerTextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithConfig(Config{Level: LevelInfo, Format: FormatText, Output: &buf, Name: "tabelle"})

	logger.Info("loaded", Fields{"rows": 10})

	output := buf.String()
	if !strings.Contains(output, "[INF]") {
		t.Errorf("Text output missing level marker: %q", output)
	}
	if !strings.Contains(output, "{tabelle}") {
		t.Errorf("Text output missing logger name: %q", output)
	}
	if !strings.Contains(output, "rows=10") {
		t.Errorf("Text output missing field: %q", output)
	}
}

func TestLogError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantLevel string
	}{
		{
			name:      "Low severity logs at info",
			err:       apperror.New("column missing").WithCode(apperror.CodeUnknownColumn),
			wantLevel: "info",
		},
		{
			name:      "Medium severity logs at warn",
			err:       apperror.New("provider slow").WithCode(apperror.CodeTimeout),
			wantLevel: "warn",
		},
		{
			name:      "High severity logs at error",
			err:       apperror.New("db broken").WithCode(apperror.CodeStoreError),
			wantLevel: "error",
		},
		{
			name:      "Plain error logs at error",
			err:       errors.New("boom"),
			wantLevel: "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewWithConfig(Config{Level: LevelTrace, Format: FormatJSON, Output: &buf})

			logger.LogError(tt.err)

			var entry map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("Failed to parse JSON log output: %v", err)
			}

			if entry["level"] != tt.wantLevel {
				t.Errorf("LogError() level = %v, want %v", entry["level"], tt.wantLevel)
			}
		})
	}
}

func TestLogErrorNil(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithConfig(Config{Level: LevelTrace, Format: FormatText, Output: &buf})

	logger.LogError(nil)

	if buf.Len() != 0 {
		t.Errorf("LogError(nil) should produce no output, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"trace", LevelTrace},
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"WARN", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"fatal", LevelFatal},
		{"unknown", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
