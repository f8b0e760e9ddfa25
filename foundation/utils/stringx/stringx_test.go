// File: stringx_test.go
// Title: String Utility Tests
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-06-14

package stringx

import "testing"

func TestIsBlank(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"\t\n", true},
		{" x ", false},
	}
	for _, tt := range tests {
		if got := IsBlank(tt.input); got != tt.want {
			t.Errorf("IsBlank(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		ellipsis string
		want     string
	}{
		{"fits", "let", 5, "…", "let"},
		{"cut", "let x = 1 in x end", 8, "…", "let x =…"},
		{"unicode", "äöüäöü", 4, "..", "äö.."},
		{"ellipsis too long", "abcdef", 2, "...", "ab"},
		{"zero", "abc", 0, "…", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.input, tt.maxLen, tt.ellipsis); got != tt.want {
				t.Errorf("Truncate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVisible(t *testing.T) {
	if got := Visible("a\nb\tc"); got != "a↵b→c" {
		t.Errorf("Visible() = %q", got)
	}
}

func TestOneLine(t *testing.T) {
	if got := OneLine("let x = 1\n  in x\tend"); got != "let x = 1 in x end" {
		t.Errorf("OneLine() = %q", got)
	}
}
