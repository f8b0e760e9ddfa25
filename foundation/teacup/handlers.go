// File: handlers.go
// Title: Teacup Handlers
// Description: Node handlers of the Teacup language in registration order.
// Author: msto63
// Version: v0.1.0
// Created: 2025-06-14
// Modified: 2025-06-16
//
// Change History:
// - 2025-06-14 v0.1.0: Initial implementation
// - 2025-06-16 v0.1.1: Dispatch on shapes

package teacup

import (
	"strconv"

	mdwerror "github.com/msto63/teacup/foundation/core/error"
	"github.com/msto63/teacup/foundation/engine/ast"
	"github.com/msto63/teacup/foundation/engine/interp"
	"github.com/msto63/teacup/foundation/engine/lexer"
)

// Handlers returns a fresh Teacup handler table. Order matters: later
// registrations override earlier ones.
func Handlers() *interp.Handlers {
	return interp.NewHandlers().
		Register("variable", ast.OfKind{lexer.KindWord, lexer.KindInfix}, evalVariable).
		Register("prefix operator", ast.OfKind{lexer.KindPrefix}, evalPrefixOperator).
		Register("number", ast.OfKind{lexer.KindNumber}, evalNumber).
		Register("string", ast.OfKind{lexer.KindString}, evalString).
		Register("operator", ast.OfShape(ast.ShapeOperator), evalCall).
		Register("parentheses", ast.OfShape(ast.ShapeGroup), evalInner).
		Register("begin", ast.OfShape(ast.ShapeBlock), evalInner).
		Register("call", ast.Sig("E ( E ) _"), evalCall).
		Register("call without arguments", ast.Sig("E ( _ ) _"), evalCall).
		Register("list", ast.Sig("_ [ E ] _"), evalList).
		Register("empty list", ast.Sig("_ [ _ ] _"), evalEmptyList).
		Register("index", ast.OfShape(ast.ShapeIndex), evalIndex).
		Register("field", ast.OfShape(ast.ShapeField), evalField).
		Register("if", ast.OfShape(ast.ShapeConditional), evalIf).
		Register("sequence", ast.OfShape(ast.ShapeSequence), evalSequence).
		Register("lambda", ast.OfShape(ast.ShapeLambda), evalLambda).
		Register("let", ast.OfShape(ast.ShapeBinding), evalLet).
		Register("for", ast.Sig("_ for E in E do E end _"), evalFor).
		Register("for when", ast.Sig("_ for E in E when E do E end _"), evalForWhen)
}

func text(n ast.Node) string {
	return n.(*ast.Leaf).Text()
}

func evalVariable(ev *interp.Evaluator, n ast.Node, env *interp.Env, _ []ast.Node) (interp.Value, error) {
	return ev.Resolve(env, text(n))
}

func evalPrefixOperator(ev *interp.Evaluator, n ast.Node, env *interp.Env, _ []ast.Node) (interp.Value, error) {
	return ev.Resolve(env, "prefix:"+text(n))
}

func evalNumber(_ *interp.Evaluator, n ast.Node, _ *interp.Env, _ []ast.Node) (interp.Value, error) {
	f, err := strconv.ParseFloat(text(n), 64)
	if err != nil {
		return nil, mdwerror.Wrap(err, "invalid number").
			WithCode(mdwerror.CodeTypeMismatch).
			WithDetail("text", text(n))
	}
	return f, nil
}

// evalString strips the delimiters; escapes are kept verbatim
func evalString(_ *interp.Evaluator, n ast.Node, _ *interp.Env, _ []ast.Node) (interp.Value, error) {
	s := text(n)
	return s[1 : len(s)-1], nil
}

func evalCall(ev *interp.Evaluator, n ast.Node, env *interp.Env, _ []ast.Node) (interp.Value, error) {
	return ev.RunCall(n, env)
}

func evalInner(ev *interp.Evaluator, _ ast.Node, env *interp.Env, args []ast.Node) (interp.Value, error) {
	return ev.Eval(args[0], env)
}

func evalList(ev *interp.Evaluator, _ ast.Node, env *interp.Env, args []ast.Node) (interp.Value, error) {
	items := ast.FlattenList(args[0])
	list := make([]interp.Value, 0, len(items))
	for _, item := range items {
		v, err := ev.Eval(item, env)
		if err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	return list, nil
}

func evalEmptyList(*interp.Evaluator, ast.Node, *interp.Env, []ast.Node) (interp.Value, error) {
	return []interp.Value{}, nil
}

// evalIndex treats x[i, j] as x[i][j]
func evalIndex(ev *interp.Evaluator, _ ast.Node, env *interp.Env, args []ast.Node) (interp.Value, error) {
	res, err := ev.Eval(args[0], env)
	if err != nil {
		return nil, err
	}
	for _, item := range ast.FlattenList(args[1]) {
		key, err := ev.Eval(item, env)
		if err != nil {
			return nil, err
		}
		if res, err = ev.GetField(res, key); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// evalField uses a bare name after the dot literally and evaluates
// anything else
func evalField(ev *interp.Evaluator, _ ast.Node, env *interp.Env, args []ast.Node) (interp.Value, error) {
	obj, err := ev.Eval(args[0], env)
	if err != nil {
		return nil, err
	}
	var key interp.Value
	if ast.IsLeafOf(args[1], lexer.KindWord) {
		key = text(args[1])
	} else if key, err = ev.Eval(args[1], env); err != nil {
		return nil, err
	}
	return ev.GetField(obj, key)
}

func evalIf(ev *interp.Evaluator, _ ast.Node, env *interp.Env, args []ast.Node) (interp.Value, error) {
	return ev.EvalConditional(args, env)
}

func evalSequence(ev *interp.Evaluator, _ ast.Node, env *interp.Env, args []ast.Node) (interp.Value, error) {
	return ev.EvalSequence(args, env)
}

func evalLambda(_ *interp.Evaluator, _ ast.Node, env *interp.Env, args []ast.Node) (interp.Value, error) {
	return interp.BuildFunction(ast.FlattenList(ast.UnwrapParens(args[0])), args[1], env)
}

func evalLet(ev *interp.Evaluator, _ ast.Node, env *interp.Env, args []ast.Node) (interp.Value, error) {
	scope, err := ev.BindDeclarations(ast.FlattenList(args[0]), env)
	if err != nil {
		return nil, err
	}
	return ev.Eval(args[1], scope)
}

func evalFor(ev *interp.Evaluator, _ ast.Node, env *interp.Env, args []ast.Node) (interp.Value, error) {
	return ev.Comprehend(args[0], args[1], nil, args[2], env)
}

func evalForWhen(ev *interp.Evaluator, _ ast.Node, env *interp.Env, args []ast.Node) (interp.Value, error) {
	return ev.Comprehend(args[0], args[1], args[2], args[3], env)
}
