// ============================================================================
// meinTABELLENWERK (mTW) - Lokaler KI-Tabellen-Agent
// ============================================================================
//
// Package:     version
// Description: Central version information for the application
// Author:      Mike Stoffels
// Created:     2026-02-10
// License:     MIT
// ============================================================================

package version

import "fmt"

const (
	// Version is the application version
	Version = "0.3.0"

	// Name is the application name
	Name = "meinTABELLENWERK"

	// ShortName is the binary name
	ShortName = "mtw"
)

// Build information, set via -ldflags at build time
var (
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Full returns the full version string including build information
func Full() string {
	return fmt.Sprintf("%s %s (commit %s, built %s)", Name, Version, Commit, BuildDate)
}

// Short returns the short version string
func Short() string {
	return fmt.Sprintf("%s v%s", ShortName, Version)
}
