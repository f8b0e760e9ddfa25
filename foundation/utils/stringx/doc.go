// Package stringx provides the string helpers shared by the CLI, the
// renderers and the configuration layer.
//
// Package: stringx
// Title: String Utilities
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-06-14
package stringx
