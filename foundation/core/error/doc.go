// Package error provides the structured error type used across teacup.
//
// Package: error
// Title: teacup Error Handling
// Description: Structured errors with codes, severities, operation names and
//              free-form details. Every failure raised by the language engine
//              (tokenizer configuration, parser, evaluator, builtins) and by
//              the application layers (config, history, server) is an *Error
//              so callers can branch on Code instead of parsing messages.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-06-14
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors and codes
// - 2025-06-14 v0.2.0: Engine error taxonomy, errors.As based lookup helpers
//
// Usage:
//
//	import mdwerror "github.com/msto63/teacup/foundation/core/error"
//
//	err := mdwerror.New("unknown operator: @").
//		WithCode(mdwerror.CodeUnresolvedOperator).
//		WithOperation("parser.Parse").
//		WithDetail("text", "@")
//
//	if mdwerror.HasCode(err, mdwerror.CodeUnresolvedOperator) {
//		// ...
//	}
package error
