// File: severity.go
// Title: Error Severity Levels
// Description: Severity levels for errors and the default severity per code.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-06-14
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with severity levels
// - 2025-06-14 v0.2.0: Severity mapping for engine codes

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow indicates a problem with user input (bad program text)
	SeverityLow Severity = iota

	// SeverityMedium indicates an error that affects functionality but has workarounds
	SeverityMedium

	// SeverityHigh indicates a serious error, e.g. storage or configuration failures
	SeverityHigh

	// SeverityCritical indicates an error that makes the system unusable
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

// ShouldAlert returns true if this severity level should trigger alerts
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}

// GetSeverityFromCode determines the default severity for an error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeInternal:
		return SeverityCritical
	case CodeDatabaseError, CodeConfigError, CodeInvalidGrammar:
		return SeverityHigh
	case CodeRecursionLimit, CodeNetworkError:
		return SeverityMedium
	case CodeInvalidInput, CodeNotFound,
		CodeUnresolvedOperator, CodeEmptyInput, CodeInputTooLong,
		CodeUnknownNodeShape, CodeUndefinedName, CodeInvalidDeclaration,
		CodeTypeMismatch, CodeNotCallable, CodeDivisionByZero:
		return SeverityLow
	default:
		return SeverityMedium
	}
}
