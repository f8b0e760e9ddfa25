// File: handler.go
// Title: Handler Table
// Description: Ordered pattern-to-handler registrations consulted in
//              reverse order.
// Author: msto63
// Version: v0.1.0
// Created: 2025-06-07
// Modified: 2025-06-08
//
// Change History:
// - 2025-06-07 v0.1.0: Initial implementation
// - 2025-06-08 v0.1.1: Named handlers for debug output

package interp

import (
	"github.com/msto63/teacup/foundation/engine/ast"
)

// HandlerFunc evaluates a node matched by a handler's pattern. args are the
// node's present operands.
type HandlerFunc func(ev *Evaluator, n ast.Node, env *Env, args []ast.Node) (Value, error)

// Handler is one registration
type Handler struct {
	Name    string
	Pattern ast.Pattern
	Fn      HandlerFunc
}

// Handlers is an ordered handler table
type Handlers struct {
	entries []Handler
}

// NewHandlers creates an empty table
func NewHandlers() *Handlers {
	return &Handlers{}
}

// Register appends a handler. Later registrations take precedence over
// earlier ones whose patterns overlap.
func (h *Handlers) Register(name string, p ast.Pattern, fn HandlerFunc) *Handlers {
	h.entries = append(h.entries, Handler{Name: name, Pattern: p, Fn: fn})
	return h
}

// Len returns the number of registrations
func (h *Handlers) Len() int {
	return len(h.entries)
}

// All returns the registrations in registration order
func (h *Handlers) All() []Handler {
	return append([]Handler(nil), h.entries...)
}

// Lookup returns the last registered handler matching n
func (h *Handlers) Lookup(n ast.Node) (Handler, bool) {
	for i := len(h.entries) - 1; i >= 0; i-- {
		if h.entries[i].Pattern.Match(n) {
			return h.entries[i], true
		}
	}
	return Handler{}, false
}
