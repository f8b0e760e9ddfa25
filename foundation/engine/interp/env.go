// File: env.go
// Title: Environments
// Description: Parent-linked scopes. Lookups fall through to the parent on
//              a miss; definitions shadow without touching ancestors.
// Author: msto63
// Version: v0.1.0
// Created: 2025-06-07
// Modified: 2025-06-07
//
// Change History:
// - 2025-06-07 v0.1.0: Initial implementation

package interp

import "sort"

// Env is a scope
type Env struct {
	parent *Env
	vars   map[string]Value
}

// NewEnv creates an empty scope below parent; parent may be nil
func NewEnv(parent *Env) *Env {
	return &Env{parent: parent, vars: make(map[string]Value)}
}

// NewRootEnv creates a parentless scope holding a copy of vars
func NewRootEnv(vars map[string]Value) *Env {
	env := NewEnv(nil)
	for k, v := range vars {
		env.vars[k] = v
	}
	return env
}

// Parent returns the enclosing scope, or nil for a root
func (e *Env) Parent() *Env { return e.parent }

// Lookup resolves name from this scope outward
func (e *Env) Lookup(name string) (Value, bool) {
	for s := e; s != nil; s = s.parent {
		if v, ok := s.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Define binds name in this scope
func (e *Env) Define(name string, v Value) {
	e.vars[name] = v
}

// Has reports whether name is bound in this scope itself
func (e *Env) Has(name string) bool {
	_, ok := e.vars[name]
	return ok
}

// Names returns the names bound in this scope, sorted
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.vars))
	for k := range e.vars {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Depth returns the number of ancestors
func (e *Env) Depth() int {
	d := 0
	for s := e.parent; s != nil; s = s.parent {
		d++
	}
	return d
}
