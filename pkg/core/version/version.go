// ============================================================================
// teacup - grammar-driven language engine
// ============================================================================
//
// Package:     version
// Description: Central version management for teacup components
// Author:      msto63
// Created:     2025-06-20
// License:     MIT
// ============================================================================

package version

import "fmt"

// Version constants for teacup components
const (
	// Release version
	Platform = "0.1.0"

	// Component versions
	Engine   = "0.1.0"
	Language = "0.1.0"
	Server   = "0.1.0"
	Protocol = "1.0.0"
)

// Set at build time with -ldflags "-X github.com/msto63/teacup/pkg/core/version.Commit=..."
var (
	Commit    = "dev"
	BuildDate = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "engine":
		return Engine
	case "language", "teacup":
		return Language
	case "server":
		return Server
	case "protocol":
		return Protocol
	default:
		return Platform
	}
}

// String returns the full version line printed by `teacup version`
func String() string {
	return fmt.Sprintf("teacup %s (engine %s, commit %s, built %s)", Platform, Engine, Commit, BuildDate)
}
