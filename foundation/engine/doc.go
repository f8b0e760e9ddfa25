// File: doc.go
// Title: Engine Package Documentation
// Author: msto63
// Version: v0.1.0
// Created: 2025-06-11
// Modified: 2025-06-11

/*
Package engine chains the language pipeline: tokenize, tag fixity, parse,
evaluate.

A language is described by a Grammar (token rules, priority table, shape
classifier), a handler table and a root environment. An Engine compiles
these once and is safe for concurrent use; every Run evaluates in its own
Evaluator.

	eng, err := engine.New(grammar, handlers, root, engine.Options{CacheSize: 128})
	res, err := eng.Run("1 + 2 * 3")
	fmt.Println(interp.Format(res.Value))

Parsed trees are immutable and cached by the blake3 digest of their source
when CacheSize is positive.

The package-level Tokenize, TagFixity, Parse, Evaluate and Run functions
compose the stages without an Engine.
*/
package engine
