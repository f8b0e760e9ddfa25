// File: callable.go
// Title: Callables and Thunks
// Description: Builtins, closures, bound methods and the suspended
//              computations passed as call arguments.
// Author: msto63
// Version: v0.1.0
// Created: 2025-06-07
// Modified: 2025-06-10
//
// Change History:
// - 2025-06-07 v0.1.0: Initial implementation
// - 2025-06-10 v0.1.1: Method binding on field access

package interp

import (
	"github.com/msto63/teacup/foundation/engine/ast"
)

// Callable is a value that can be applied to arguments. A lazy callable
// receives *Thunk arguments; any other callable receives forced values.
type Callable interface {
	Call(ev *Evaluator, args []Value) (Value, error)
	Lazy() bool
	Name() string
}

// Binder is implemented by callables that take a receiver when read as a
// field
type Binder interface {
	Bind(receiver Value) Callable
}

// Thunk is a suspended computation. Every Force re-runs it.
type Thunk struct {
	force func() (Value, error)
}

// NewThunk suspends the evaluation of n in env
func NewThunk(ev *Evaluator, n ast.Node, env *Env) *Thunk {
	return &Thunk{force: func() (Value, error) { return ev.Eval(n, env) }}
}

// Constant wraps an already computed value
func Constant(v Value) *Thunk {
	return &Thunk{force: func() (Value, error) { return v, nil }}
}

// Force runs the computation
func (t *Thunk) Force() (Value, error) {
	return t.force()
}

// Force forces v when it is a thunk and returns it unchanged otherwise
func Force(v Value) (Value, error) {
	if t, ok := v.(*Thunk); ok {
		return t.Force()
	}
	return v, nil
}

// Arg returns args[i], or Missing when fewer arguments were supplied
func Arg(args []Value, i int) Value {
	if i < len(args) {
		return args[i]
	}
	return Missing
}

// BuiltinFunc implements a builtin
type BuiltinFunc func(ev *Evaluator, args []Value) (Value, error)

// Builtin is a callable implemented in Go
type Builtin struct {
	name   string
	lazy   bool
	method bool
	fn     BuiltinFunc
}

// NewBuiltin creates an eager builtin
func NewBuiltin(name string, fn BuiltinFunc) *Builtin {
	return &Builtin{name: name, fn: fn}
}

// NewLazyBuiltin creates a builtin that receives its arguments as thunks
func NewLazyBuiltin(name string, fn BuiltinFunc) *Builtin {
	return &Builtin{name: name, lazy: true, fn: fn}
}

// NewMethod creates a builtin that expects its receiver as first argument.
// Reading it as a field binds the receiver.
func NewMethod(name string, fn BuiltinFunc) *Builtin {
	return &Builtin{name: name, method: true, fn: fn}
}

// Call implements Callable
func (b *Builtin) Call(ev *Evaluator, args []Value) (Value, error) {
	return b.fn(ev, args)
}

// Lazy implements Callable
func (b *Builtin) Lazy() bool { return b.lazy }

// Name implements Callable
func (b *Builtin) Name() string { return b.name }

// Bind implements Binder. Plain builtins ignore the receiver.
func (b *Builtin) Bind(receiver Value) Callable {
	if !b.method {
		return b
	}
	return &BoundMethod{receiver: receiver, method: b}
}

// BoundMethod is a method builtin with its receiver fixed
type BoundMethod struct {
	receiver Value
	method   *Builtin
}

// Call implements Callable
func (m *BoundMethod) Call(ev *Evaluator, args []Value) (Value, error) {
	full := make([]Value, 0, len(args)+1)
	full = append(full, m.receiver)
	full = append(full, args...)
	return m.method.fn(ev, full)
}

// Lazy implements Callable
func (m *BoundMethod) Lazy() bool { return m.method.lazy }

// Name implements Callable
func (m *BoundMethod) Name() string { return TypeName(m.receiver) + "." + m.method.name }

// Receiver returns the bound receiver
func (m *BoundMethod) Receiver() Value { return m.receiver }

// Closure is a user-defined function
type Closure struct {
	name   string
	params []ast.Node
	body   ast.Node
	env    *Env
}

// Call binds the arguments positionally in a fresh scope below the
// defining scope and evaluates the body. Missing arguments bind Missing;
// extra arguments are ignored.
func (c *Closure) Call(ev *Evaluator, args []Value) (Value, error) {
	scope := NewEnv(c.env)
	for i, p := range c.params {
		if err := BindVariable(scope, p, Arg(args, i)); err != nil {
			return nil, err
		}
	}
	return ev.Eval(c.body, scope)
}

// Lazy implements Callable
func (c *Closure) Lazy() bool { return false }

// Name implements Callable
func (c *Closure) Name() string {
	if c.name == "" {
		return "anonymous"
	}
	return c.name
}

// Params returns the parameter nodes
func (c *Closure) Params() []ast.Node { return c.params }

// Named returns a copy of the closure carrying name
func (c *Closure) Named(name string) *Closure {
	cp := *c
	cp.name = name
	return &cp
}

// Property is a prototype attribute computed from the receiver when read
type Property struct {
	name string
	get  func(receiver Value) (Value, error)
}

// NewProperty creates a computed attribute
func NewProperty(name string, get func(receiver Value) (Value, error)) *Property {
	return &Property{name: name, get: get}
}

// Name returns the attribute name
func (p *Property) Name() string { return p.name }
