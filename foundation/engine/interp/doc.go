// File: doc.go
// Title: Interpreter Package Documentation
// Author: msto63
// Version: v0.1.0
// Created: 2025-06-07
// Modified: 2025-06-09

/*
Package interp evaluates syntax trees by dispatching each node to a handler
selected by pattern.

Handlers are registered in order and consulted in reverse: the most recently
registered handler whose pattern matches a node wins. Registration order is
therefore the precedence mechanism; a specific pattern such as field access
must be registered after a broad one such as "any binary operator" that
would also match it.

# Values

Evaluation produces plain Go values:

	float64       numbers
	string        strings
	bool          booleans
	nil           null
	[]Value       lists
	Missing       an unsupplied parameter
	Callable      builtins, closures and bound methods
	*Object       named attribute bags such as Math

# Calls

Call arguments are wrapped in thunks. A lazy callable receives the thunks
and forces them as it sees fit; any other callable receives the forced
values, evaluated left to right. Thunks are not memoized: forcing twice
evaluates twice.

# Scopes

Environments form a parent-linked chain. Lookups walk outward from the
innermost scope; definitions always go into the scope they are made on.
*/
package interp
