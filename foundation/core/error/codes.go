// File: codes.go
// Title: Error Code Definitions
// Description: Standardized error codes. The engine codes mirror the failure
//              taxonomy of the language engine; the remaining codes cover the
//              application layers around it.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-06-14
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2025-06-14 v0.2.0: Replaced TCOL codes with engine codes

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"

	// Engine: configuration time
	CodeInvalidGrammar Code = "INVALID_GRAMMAR"

	// Engine: parsing
	CodeUnresolvedOperator Code = "UNRESOLVED_OPERATOR"
	CodeEmptyInput         Code = "EMPTY_INPUT"
	CodeInputTooLong       Code = "INPUT_TOO_LONG"

	// Engine: evaluation
	CodeUnknownNodeShape   Code = "UNKNOWN_NODE_SHAPE"
	CodeUndefinedName      Code = "UNDEFINED_NAME"
	CodeInvalidDeclaration Code = "INVALID_DECLARATION"
	CodeRecursionLimit     Code = "RECURSION_LIMIT"
	CodeTypeMismatch       Code = "TYPE_MISMATCH"
	CodeNotCallable        Code = "NOT_CALLABLE"
	CodeDivisionByZero     Code = "DIVISION_BY_ZERO"

	// Application
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeDatabaseError Code = "DATABASE_ERROR"
	CodeNetworkError  Code = "NETWORK_ERROR"
)

var knownCodes = map[Code]string{
	CodeUnknown:            "generic",
	CodeInternal:           "generic",
	CodeNotFound:           "generic",
	CodeInvalidInput:       "generic",
	CodeInvalidGrammar:     "grammar",
	CodeUnresolvedOperator: "syntax",
	CodeEmptyInput:         "syntax",
	CodeInputTooLong:       "syntax",
	CodeUnknownNodeShape:   "evaluation",
	CodeUndefinedName:      "evaluation",
	CodeInvalidDeclaration: "evaluation",
	CodeRecursionLimit:     "evaluation",
	CodeTypeMismatch:       "runtime",
	CodeNotCallable:        "runtime",
	CodeDivisionByZero:     "runtime",
	CodeConfigError:        "system",
	CodeDatabaseError:      "system",
	CodeNetworkError:       "system",
}

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid reports whether the code is one of the predefined codes
func (c Code) IsValid() bool {
	_, ok := knownCodes[c]
	return ok
}

// Category returns the category the code belongs to
// (generic, grammar, syntax, evaluation, runtime, system).
func (c Code) Category() string {
	if cat, ok := knownCodes[c]; ok {
		return cat
	}
	return "unknown"
}

// IsEngine reports whether the code is raised by the language engine itself.
func (c Code) IsEngine() bool {
	switch c.Category() {
	case "grammar", "syntax", "evaluation", "runtime":
		return true
	}
	return false
}
