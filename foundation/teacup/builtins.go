// File: builtins.go
// Title: Teacup Root Environment
// Description: Constants, operators and library functions visible to every
//              Teacup program.
// Author: msto63
// Version: v0.1.0
// Created: 2025-06-14
// Modified: 2025-06-18
//
// Change History:
// - 2025-06-14 v0.1.0: Initial implementation
// - 2025-06-17 v0.1.1: String and list concatenation, division by zero
// - 2025-06-18 v0.1.2: print, len, Math

package teacup

import (
	"fmt"
	"io"
	"math"
	"strings"

	mdwerror "github.com/msto63/teacup/foundation/core/error"
	"github.com/msto63/teacup/foundation/engine/interp"
)

// MaxRangeLength bounds the number of elements a..b may produce
const MaxRangeLength = 1_000_000

type (
	value = interp.Value
	list  = []interp.Value
)

// RootEnv builds a fresh root environment; print writes to out
func RootEnv(out io.Writer) *interp.Env {
	return interp.NewRootEnv(map[string]value{
		"true":  true,
		"false": false,
		"null":  nil,

		"+":        interp.NewBuiltin("+", add),
		"-":        arithmetic("-", func(a, b float64) (float64, error) { return a - b, nil }),
		"*":        arithmetic("*", func(a, b float64) (float64, error) { return a * b, nil }),
		"/":        arithmetic("/", divide),
		"%":        arithmetic("%", modulo),
		"^":        arithmetic("^", func(a, b float64) (float64, error) { return math.Pow(a, b), nil }),
		"prefix:-": interp.NewBuiltin("prefix:-", negate),

		"<":  comparison("<", func(c int) bool { return c < 0 }),
		">":  comparison(">", func(c int) bool { return c > 0 }),
		"<=": comparison("<=", func(c int) bool { return c <= 0 }),
		">=": comparison(">=", func(c int) bool { return c >= 0 }),
		"==": interp.NewBuiltin("==", func(_ *interp.Evaluator, args list) (value, error) {
			return interp.Equal(interp.Arg(args, 0), interp.Arg(args, 1)), nil
		}),
		"!=": interp.NewBuiltin("!=", func(_ *interp.Evaluator, args list) (value, error) {
			return !interp.Equal(interp.Arg(args, 0), interp.Arg(args, 1)), nil
		}),

		"..": interp.NewBuiltin("..", numericRange),

		"prefix:not": interp.NewBuiltin("not", func(_ *interp.Evaluator, args list) (value, error) {
			return !interp.Truthy(interp.Arg(args, 0)), nil
		}),
		"and": interp.NewLazyBuiltin("and", func(_ *interp.Evaluator, args list) (value, error) {
			a, err := interp.Force(interp.Arg(args, 0))
			if err != nil || !interp.Truthy(a) {
				return a, err
			}
			return interp.Force(interp.Arg(args, 1))
		}),
		"or": interp.NewLazyBuiltin("or", func(_ *interp.Evaluator, args list) (value, error) {
			a, err := interp.Force(interp.Arg(args, 0))
			if err != nil || interp.Truthy(a) {
				return a, err
			}
			return interp.Force(interp.Arg(args, 1))
		}),

		"print": interp.NewBuiltin("print", func(_ *interp.Evaluator, args list) (value, error) {
			parts := make([]string, len(args))
			for i, a := range args {
				parts[i] = interp.Format(a)
			}
			if _, err := fmt.Fprintln(out, strings.Join(parts, " ")); err != nil {
				return nil, mdwerror.Wrap(err, "print failed").WithCode(mdwerror.CodeInternal)
			}
			if len(args) == 0 {
				return nil, nil
			}
			return args[0], nil
		}),
		"len": interp.NewBuiltin("len", func(_ *interp.Evaluator, args list) (value, error) {
			return length(interp.Arg(args, 0))
		}),
		"Math": mathObject(),
	})
}

func typeError(op string, args ...value) *mdwerror.Error {
	types := make([]string, len(args))
	for i, a := range args {
		types[i] = interp.TypeName(a)
	}
	msg := fmt.Sprintf("%s is not defined for %s", op, strings.Join(types, " and "))
	if len(args) == 0 {
		msg = op + " needs at least one argument"
	}
	return mdwerror.New(msg).
		WithCode(mdwerror.CodeTypeMismatch).
		WithOperation("teacup." + op).
		WithDetail("types", types)
}

func numbers(op string, args list, n int) ([]float64, error) {
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		f, ok := interp.Arg(args, i).(float64)
		if !ok {
			picked := make([]value, n)
			for j := range picked {
				picked[j] = interp.Arg(args, j)
			}
			return nil, typeError(op, picked...)
		}
		out[i] = f
	}
	return out, nil
}

func arithmetic(op string, fn func(a, b float64) (float64, error)) *interp.Builtin {
	return interp.NewBuiltin(op, func(_ *interp.Evaluator, args list) (value, error) {
		nums, err := numbers(op, args, 2)
		if err != nil {
			return nil, err
		}
		return fn(nums[0], nums[1])
	})
}

func divisionByZero(op string) error {
	return mdwerror.New("division by zero").
		WithCode(mdwerror.CodeDivisionByZero).
		WithOperation("teacup." + op)
}

func divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, divisionByZero("/")
	}
	return a / b, nil
}

func modulo(a, b float64) (float64, error) {
	if b == 0 {
		return 0, divisionByZero("%")
	}
	return math.Mod(a, b), nil
}

// add sums numbers, concatenates lists and concatenates the display form
// of its operands when either is a string
func add(_ *interp.Evaluator, args list) (value, error) {
	a, b := interp.Arg(args, 0), interp.Arg(args, 1)
	switch x := a.(type) {
	case float64:
		if y, ok := b.(float64); ok {
			return x + y, nil
		}
	case list:
		if y, ok := b.(list); ok {
			out := make(list, 0, len(x)+len(y))
			return append(append(out, x...), y...), nil
		}
	}
	_, aStr := a.(string)
	_, bStr := b.(string)
	if aStr || bStr {
		return interp.Format(a) + interp.Format(b), nil
	}
	return nil, typeError("+", a, b)
}

func negate(_ *interp.Evaluator, args list) (value, error) {
	nums, err := numbers("prefix:-", args, 1)
	if err != nil {
		return nil, err
	}
	return -nums[0], nil
}

func comparison(op string, test func(c int) bool) *interp.Builtin {
	return interp.NewBuiltin(op, func(_ *interp.Evaluator, args list) (value, error) {
		a, b := interp.Arg(args, 0), interp.Arg(args, 1)
		switch x := a.(type) {
		case float64:
			if y, ok := b.(float64); ok {
				switch {
				case x < y:
					return test(-1), nil
				case x > y:
					return test(1), nil
				case x == y:
					return test(0), nil
				}
				return false, nil
			}
		case string:
			if y, ok := b.(string); ok {
				return test(strings.Compare(x, y)), nil
			}
		}
		return nil, typeError(op, a, b)
	})
}

// numericRange returns the numbers from start up to, not including, end
func numericRange(_ *interp.Evaluator, args list) (value, error) {
	nums, err := numbers("..", args, 2)
	if err != nil {
		return nil, err
	}
	start, end := nums[0], nums[1]
	if end-start > MaxRangeLength {
		return nil, mdwerror.New(fmt.Sprintf("range %s..%s has more than %d elements",
			interp.FormatNumber(start), interp.FormatNumber(end), MaxRangeLength)).
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("teacup..")
	}
	out := list{}
	for x := start; x < end; x++ {
		out = append(out, x)
	}
	return out, nil
}

func length(v value) (value, error) {
	switch x := v.(type) {
	case list:
		return float64(len(x)), nil
	case string:
		return float64(len([]rune(x))), nil
	}
	return nil, typeError("len", v)
}

func mathObject() *interp.Object {
	unary := func(name string, fn func(float64) float64) *interp.Builtin {
		return interp.NewBuiltin(name, func(_ *interp.Evaluator, args list) (value, error) {
			nums, err := numbers("Math."+name, args, 1)
			if err != nil {
				return nil, err
			}
			return fn(nums[0]), nil
		})
	}
	fold := func(name string, fn func(a, b float64) float64) *interp.Builtin {
		return interp.NewBuiltin(name, func(_ *interp.Evaluator, args list) (value, error) {
			if len(args) == 0 {
				return nil, typeError("Math." + name)
			}
			nums, err := numbers("Math."+name, args, len(args))
			if err != nil {
				return nil, err
			}
			acc := nums[0]
			for _, n := range nums[1:] {
				acc = fn(acc, n)
			}
			return acc, nil
		})
	}

	return interp.NewObject("Math", map[string]value{
		"abs":   unary("abs", math.Abs),
		"floor": unary("floor", math.Floor),
		"ceil":  unary("ceil", math.Ceil),
		"sqrt":  unary("sqrt", math.Sqrt),
		"min":   fold("min", math.Min),
		"max":   fold("max", math.Max),
		"pi":    math.Pi,
	})
}
