// File: stringx.go
// Title: Core String Utility Functions
// Description: Unicode-aware helpers for blank checks, truncation and
//              making whitespace visible in token listings.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-06-14
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core utilities
// - 2025-06-14 v0.2.0: Reduced to the helpers in use, added Visible

package stringx

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsBlank returns true if the string is empty or contains only whitespace.
func IsBlank(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// Truncate truncates a string to maxLen runes, adding an ellipsis if truncated.
// Multi-byte characters are never split.
func Truncate(s string, maxLen int, ellipsis string) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}

	ellipsisLen := utf8.RuneCountInString(ellipsis)
	if ellipsisLen >= maxLen {
		return string([]rune(s)[:maxLen])
	}
	return string([]rune(s)[:maxLen-ellipsisLen]) + ellipsis
}

var visibleReplacer = strings.NewReplacer(
	"\n", "↵",
	"\t", "→",
	"\r", "␍",
)

// Visible replaces line breaks and tabs with printable symbols so that
// operator tokens such as "\n" show up in tables and trees.
func Visible(s string) string {
	return visibleReplacer.Replace(s)
}

// OneLine collapses all whitespace runs to single spaces.
func OneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
