// File: constructs.go
// Title: Shared Construct Semantics
// Description: Evaluation of the constructs most languages built on the
//              engine share: sequences, conditionals, let-style bindings
//              and list comprehensions. Handlers supply the operands.
// Author: msto63
// Version: v0.1.0
// Created: 2025-06-08
// Modified: 2025-06-10
//
// Change History:
// - 2025-06-08 v0.1.0: Initial implementation

package interp

import (
	"fmt"

	mdwerror "github.com/msto63/teacup/foundation/core/error"
	"github.com/msto63/teacup/foundation/engine/ast"
)

// EvalSequence evaluates stmts in order in env and returns the last value;
// null for no statements
func (ev *Evaluator) EvalSequence(stmts []ast.Node, env *Env) (Value, error) {
	var last Value
	for _, stmt := range stmts {
		v, err := ev.Eval(stmt, env)
		if err != nil {
			return nil, err
		}
		last = v
	}
	return last, nil
}

// EvalConditional takes alternating test and consequent nodes with an
// optional trailing else node. The first truthy test selects its
// consequent; with no match and no else the result is null.
func (ev *Evaluator) EvalConditional(clauses []ast.Node, env *Env) (Value, error) {
	for len(clauses) > 0 {
		if len(clauses) == 1 {
			return ev.Eval(clauses[0], env)
		}
		test, err := ev.Eval(clauses[0], env)
		if err != nil {
			return nil, err
		}
		if Truthy(test) {
			return ev.Eval(clauses[1], env)
		}
		clauses = clauses[2:]
	}
	return nil, nil
}

// BindDeclarations builds the scope of a let-style construct. Value
// expressions are evaluated in env, so siblings cannot see each other;
// function declarations close over the new scope and may recurse.
func (ev *Evaluator) BindDeclarations(decls []ast.Node, env *Env) (*Env, error) {
	scope := NewEnv(env)
	for _, d := range decls {
		decl, err := ast.NormalizeAssignment(d)
		if err != nil {
			return nil, err
		}
		name, err := bindingName(decl.Name)
		if err != nil {
			return nil, err
		}

		var value Value
		if decl.IsFunction {
			fn, err := BuildFunction(decl.Params, decl.Value, scope)
			if err != nil {
				return nil, err
			}
			value = fn.Named(name)
		} else if value, err = ev.Eval(decl.Value, env); err != nil {
			return nil, err
		}
		scope.Define(name, value)
	}
	return scope, nil
}

// Comprehend evaluates source once and, for every element, binds variable
// in a fresh scope below env, checks the optional guard and collects the
// body's value. Strings iterate by character.
func (ev *Evaluator) Comprehend(variable, source, guard, body ast.Node, env *Env) ([]Value, error) {
	src, err := ev.Eval(source, env)
	if err != nil {
		return nil, err
	}
	items, err := iterable(src)
	if err != nil {
		return nil, err
	}

	results := []Value{}
	for _, item := range items {
		scope := NewEnv(env)
		if err := BindVariable(scope, variable, item); err != nil {
			return nil, err
		}
		if guard != nil {
			ok, err := ev.Eval(guard, scope)
			if err != nil {
				return nil, err
			}
			if !Truthy(ok) {
				continue
			}
		}
		v, err := ev.Eval(body, scope)
		if err != nil {
			return nil, err
		}
		results = append(results, v)
	}
	return results, nil
}

func iterable(v Value) ([]Value, error) {
	switch x := v.(type) {
	case []Value:
		return x, nil
	case string:
		items := make([]Value, 0, len(x))
		for _, r := range x {
			items = append(items, string(r))
		}
		return items, nil
	}
	return nil, mdwerror.New(fmt.Sprintf("cannot iterate over %s", TypeName(v))).
		WithCode(mdwerror.CodeTypeMismatch).
		WithOperation("interp.Comprehend").
		WithDetail("type", TypeName(v))
}
