// File: codes_test.go
// Title: Error Code Tests
// Description: Tests for code validation and categorization.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-06-14

package error

import "testing"

func TestCodeCategory(t *testing.T) {
	tests := []struct {
		code   Code
		want   string
		engine bool
	}{
		{CodeUnresolvedOperator, "syntax", true},
		{CodeUnknownNodeShape, "evaluation", true},
		{CodeUndefinedName, "evaluation", true},
		{CodeInvalidDeclaration, "evaluation", true},
		{CodeInvalidGrammar, "grammar", true},
		{CodeDivisionByZero, "runtime", true},
		{CodeDatabaseError, "system", false},
		{CodeNotFound, "generic", false},
		{Code("BOGUS"), "unknown", false},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			if got := tt.code.Category(); got != tt.want {
				t.Errorf("Category() = %v, want %v", got, tt.want)
			}
			if got := tt.code.IsEngine(); got != tt.engine {
				t.Errorf("IsEngine() = %v, want %v", got, tt.engine)
			}
		})
	}
}

func TestCodeIsValid(t *testing.T) {
	if !CodeUnresolvedOperator.IsValid() {
		t.Error("predefined code reported invalid")
	}
	if Code("TCOL_SYNTAX").IsValid() {
		t.Error("unknown code reported valid")
	}
}
