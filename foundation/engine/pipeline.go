// File: pipeline.go
// Title: Pipeline Functions
// Description: Stateless compositions of the pipeline stages.
// Author: msto63
// Version: v0.1.0
// Created: 2025-06-11
// Modified: 2025-06-11
//
// Change History:
// - 2025-06-11 v0.1.0: Initial implementation

package engine

import (
	"github.com/msto63/teacup/foundation/engine/ast"
	"github.com/msto63/teacup/foundation/engine/interp"
	"github.com/msto63/teacup/foundation/engine/lexer"
	"github.com/msto63/teacup/foundation/engine/parser"
)

// Tokenize splits text with rules
func Tokenize(text string, rules []lexer.Rule) ([]lexer.Token, error) {
	return lexer.Tokenize(text, rules)
}

// TagFixity relabels infix tokens in prefix position
func TagFixity(tokens []lexer.Token) []lexer.Token {
	return lexer.TagFixity(tokens)
}

// Parse builds a tree from tagged tokens
func Parse(tokens []lexer.Token, table *parser.Table, fin parser.Finalizer[ast.Node]) (ast.Node, error) {
	return parser.Parse(tokens, table, fin)
}

// Evaluate evaluates n in env
func Evaluate(n ast.Node, env *interp.Env, handlers *interp.Handlers) (interp.Value, error) {
	return interp.Evaluate(n, env, handlers)
}

// Run tokenizes, tags, parses and evaluates text in one call
func Run(text string, g Grammar, handlers *interp.Handlers, root *interp.Env) (interp.Value, error) {
	e, err := New(g, handlers, root, Options{})
	if err != nil {
		return nil, err
	}
	res, err := e.Run(text)
	if err != nil {
		return nil, err
	}
	return res.Value, nil
}
