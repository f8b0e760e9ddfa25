// File: interp.go
// Title: Tree-Walking Evaluator
// Description: Dispatches nodes to handlers and provides the building
//              blocks handlers share: name resolution, calls, function
//              construction, variable binding and field access.
// Author: msto63
// Version: v0.1.0
// Created: 2025-06-07
// Modified: 2025-06-10
//
// Change History:
// - 2025-06-07 v0.1.0: Initial implementation
// - 2025-06-08 v0.1.1: Recursion limit
// - 2025-06-10 v0.1.2: Prototypes for list and string methods

package interp

import (
	"fmt"
	"math"

	mdwerror "github.com/msto63/teacup/foundation/core/error"
	mdwlog "github.com/msto63/teacup/foundation/core/log"
	"github.com/msto63/teacup/foundation/engine/ast"
	"github.com/msto63/teacup/foundation/engine/lexer"
)

// DefaultMaxDepth bounds evaluation nesting when Options.MaxDepth is zero
const DefaultMaxDepth = 10000

// Options configures an Interpreter
type Options struct {
	Logger *mdwlog.Logger
	// MaxDepth bounds nested evaluation; zero selects DefaultMaxDepth
	MaxDepth int
	// Prototypes maps a type name ("list", "string", ...) to the object
	// whose attributes are readable as fields on values of that type
	Prototypes map[string]*Object
}

// Interpreter holds the handler table and root scope. It is not modified
// by evaluation and may be shared.
type Interpreter struct {
	handlers   *Handlers
	root       *Env
	logger     *mdwlog.Logger
	maxDepth   int
	prototypes map[string]*Object
}

// New creates an Interpreter
func New(handlers *Handlers, root *Env, opts Options) *Interpreter {
	logger := opts.Logger
	if logger == nil {
		logger = mdwlog.GetDefault()
	}
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if root == nil {
		root = NewEnv(nil)
	}
	return &Interpreter{
		handlers:   handlers,
		root:       root,
		logger:     logger.WithField("component", "interp"),
		maxDepth:   maxDepth,
		prototypes: opts.Prototypes,
	}
}

// Root returns the root scope
func (in *Interpreter) Root() *Env { return in.root }

// Handlers returns the handler table
func (in *Interpreter) Handlers() *Handlers { return in.handlers }

// Evaluate evaluates n in the root scope
func (in *Interpreter) Evaluate(n ast.Node) (Value, error) {
	return in.EvaluateIn(n, in.root)
}

// EvaluateIn evaluates n in env
func (in *Interpreter) EvaluateIn(n ast.Node, env *Env) (Value, error) {
	ev := &Evaluator{in: in}
	return ev.Eval(n, env)
}

// Evaluate evaluates n in env with the given handlers and default options
func Evaluate(n ast.Node, env *Env, handlers *Handlers) (Value, error) {
	return New(handlers, env, Options{}).Evaluate(n)
}

// Evaluator carries the state of one evaluation
type Evaluator struct {
	in    *Interpreter
	depth int
}

// Interpreter returns the interpreter this evaluation runs on
func (ev *Evaluator) Interpreter() *Interpreter { return ev.in }

// Eval dispatches n to the last registered handler whose pattern matches
func (ev *Evaluator) Eval(n ast.Node, env *Env) (Value, error) {
	if n == nil {
		return nil, mdwerror.New("cannot evaluate an absent node").
			WithCode(mdwerror.CodeUnknownNodeShape).
			WithOperation("interp.Eval")
	}

	h, ok := ev.in.handlers.Lookup(n)
	if !ok {
		span := n.Span()
		ev.in.logger.Debug("no handler for node", mdwlog.Fields{
			"signature": n.Signature(),
			"start":     span.Start,
		})
		return nil, mdwerror.New(fmt.Sprintf("no handler for node shape '%s'", n.Signature())).
			WithCode(mdwerror.CodeUnknownNodeShape).
			WithOperation("interp.Eval").
			WithDetail("signature", n.Signature()).
			WithDetail("start", span.Start).
			WithDetail("end", span.End)
	}

	ev.depth++
	defer func() { ev.depth-- }()
	if ev.depth > ev.in.maxDepth {
		return nil, mdwerror.New(fmt.Sprintf("evaluation nested deeper than %d levels", ev.in.maxDepth)).
			WithCode(mdwerror.CodeRecursionLimit).
			WithOperation("interp.Eval").
			WithDetail("max_depth", ev.in.maxDepth)
	}

	return h.Fn(ev, n, env, n.Args())
}

// Resolve looks name up from env outward
func (ev *Evaluator) Resolve(env *Env, name string) (Value, error) {
	if v, ok := env.Lookup(name); ok {
		return v, nil
	}
	return nil, mdwerror.New(fmt.Sprintf("undefined variable: '%s'", name)).
		WithCode(mdwerror.CodeUndefinedName).
		WithOperation("interp.Resolve").
		WithDetail("name", name)
}

// RunCall evaluates a call node: the callee, then the arguments as thunks.
// A lazy callee receives the thunks; any other callee receives the values
// forced left to right.
func (ev *Evaluator) RunCall(n ast.Node, env *Env) (Value, error) {
	calleeNode, argNodes, ok := ast.NormalizeCall(n)
	if !ok {
		return nil, mdwerror.New(fmt.Sprintf("'%s' is not a call", n.Signature())).
			WithCode(mdwerror.CodeUnknownNodeShape).
			WithOperation("interp.RunCall").
			WithDetail("signature", n.Signature())
	}

	callee, err := ev.Eval(calleeNode, env)
	if err != nil {
		return nil, err
	}
	fn, err := asCallable(callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, len(argNodes))
	for i, a := range argNodes {
		args[i] = NewThunk(ev, a, env)
	}
	if !fn.Lazy() {
		for i := range args {
			if args[i], err = Force(args[i]); err != nil {
				return nil, err
			}
		}
	}
	return fn.Call(ev, args)
}

// Apply calls fn with already computed arguments. A lazy callee receives
// them wrapped as constant thunks.
func (ev *Evaluator) Apply(fn Value, args ...Value) (Value, error) {
	c, err := asCallable(fn)
	if err != nil {
		return nil, err
	}
	if c.Lazy() {
		wrapped := make([]Value, len(args))
		for i, a := range args {
			wrapped[i] = Constant(a)
		}
		args = wrapped
	}
	return c.Call(ev, args)
}

func asCallable(v Value) (Callable, error) {
	if c, ok := v.(Callable); ok {
		return c, nil
	}
	return nil, mdwerror.New(fmt.Sprintf("value of type %s is not callable", TypeName(v))).
		WithCode(mdwerror.CodeNotCallable).
		WithOperation("interp.Call").
		WithDetail("type", TypeName(v))
}

// BuildFunction creates a closure over env. Every parameter must be a
// bindable name.
func BuildFunction(params []ast.Node, body ast.Node, env *Env) (*Closure, error) {
	for _, p := range params {
		if _, err := bindingName(p); err != nil {
			return nil, err
		}
	}
	return &Closure{params: params, body: body, env: env}, nil
}

// BindVariable binds v under the name target denotes. Words and infix
// operators bind under their text, prefix operators under "prefix:" and
// their text; anything else is an invalid declaration.
func BindVariable(env *Env, target ast.Node, v Value) error {
	name, err := bindingName(target)
	if err != nil {
		return err
	}
	env.Define(name, v)
	return nil
}

func bindingName(target ast.Node) (string, error) {
	leaf, ok := target.(*ast.Leaf)
	if ok {
		switch leaf.Kind() {
		case lexer.KindWord, lexer.KindInfix:
			return leaf.Text(), nil
		case lexer.KindPrefix:
			return "prefix:" + leaf.Text(), nil
		}
	}
	sig := "<nil>"
	if target != nil {
		sig = target.Signature()
	}
	return "", mdwerror.New("invalid variable declaration").
		WithCode(mdwerror.CodeInvalidDeclaration).
		WithOperation("interp.BindVariable").
		WithDetail("signature", sig)
}

// GetField reads field from obj. Object attributes are looked up by name,
// lists and strings take integer indexes and expose their prototype's
// attributes by name. Properties are computed from obj and callables read
// as fields are bound to it.
func (ev *Evaluator) GetField(obj, field Value) (Value, error) {
	var (
		v     Value
		found bool
	)
	switch x := obj.(type) {
	case nil, missing:
		return nil, mdwerror.New(fmt.Sprintf("cannot read field %s of %s", formatNested(field), TypeName(obj))).
			WithCode(mdwerror.CodeTypeMismatch).
			WithOperation("interp.GetField")
	case *Object:
		v, found = x.Attr(Format(field))
	case []Value:
		if i, ok := index(field, len(x)); ok {
			return x[i], nil
		}
		if _, isNum := field.(float64); isNum {
			return nil, nil
		}
		v, found = ev.prototypeAttr(obj, field)
	case string:
		runes := []rune(x)
		if i, ok := index(field, len(runes)); ok {
			return string(runes[i]), nil
		}
		if _, isNum := field.(float64); isNum {
			return nil, nil
		}
		v, found = ev.prototypeAttr(obj, field)
	default:
		v, found = ev.prototypeAttr(obj, field)
	}

	if !found {
		return nil, mdwerror.New(fmt.Sprintf("undefined field %s on %s", formatNested(field), TypeName(obj))).
			WithCode(mdwerror.CodeUndefinedName).
			WithOperation("interp.GetField").
			WithDetail("field", Format(field)).
			WithDetail("type", TypeName(obj))
	}
	switch x := v.(type) {
	case *Property:
		return x.get(obj)
	case Binder:
		return x.Bind(obj), nil
	}
	return v, nil
}

func (ev *Evaluator) prototypeAttr(obj, field Value) (Value, bool) {
	name, ok := field.(string)
	if !ok {
		return nil, false
	}
	proto, ok := ev.in.prototypes[TypeName(obj)]
	if !ok {
		return nil, false
	}
	return proto.Attr(name)
}

func index(field Value, length int) (int, bool) {
	f, ok := field.(float64)
	if !ok || f != math.Trunc(f) || f < 0 || f >= float64(length) {
		return 0, false
	}
	return int(f), true
}
