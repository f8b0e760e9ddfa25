// Package log provides structured logging for teacup.
//
// Package: log
// Title: teacup Structured Logging
// Description: Leveled, structured logging with JSON, text and console
//              formats. Loggers are immutable values: With* methods return a
//              derived logger, so components attach their own fields
//              ("component", "grammar", "session") without affecting others.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-06-14
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging and error integration
// - 2025-06-14 v0.2.0: Removed async and request context, stderr default at warn level
//
// Usage:
//
//	import mdwlog "github.com/msto63/teacup/foundation/core/log"
//
//	logger := mdwlog.GetDefault().WithField("component", "parser")
//	logger.Debug("handle reduced", mdwlog.Fields{"signature": "E + E"})
//
//	timer := logger.StartTimer("evaluate")
//	// ...
//	timer.Stop()
package log
