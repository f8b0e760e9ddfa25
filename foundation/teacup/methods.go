// File: methods.go
// Title: List and String Methods
// Description: Prototype attributes available on list and string values
//              through field access.
// Author: msto63
// Version: v0.1.0
// Created: 2025-06-17
// Modified: 2025-06-17
//
// Change History:
// - 2025-06-17 v0.1.0: Initial implementation

package teacup

import (
	"strings"

	"github.com/msto63/teacup/foundation/engine/interp"
)

// Prototypes returns the list and string prototypes
func Prototypes() map[string]*interp.Object {
	return map[string]*interp.Object{
		"list": interp.NewObject("list", map[string]value{
			"length": interp.NewProperty("length", length),
			"map":    interp.NewMethod("map", listMap),
			"filter": interp.NewMethod("filter", listFilter),
			"join":   interp.NewMethod("join", listJoin),
			"push":   interp.NewMethod("push", listPush),
		}),
		"string": interp.NewObject("string", map[string]value{
			"length": interp.NewProperty("length", length),
			"upper": interp.NewMethod("upper", func(_ *interp.Evaluator, args list) (value, error) {
				return strings.ToUpper(args[0].(string)), nil
			}),
			"lower": interp.NewMethod("lower", func(_ *interp.Evaluator, args list) (value, error) {
				return strings.ToLower(args[0].(string)), nil
			}),
			"split": interp.NewMethod("split", stringSplit),
		}),
	}
}

// listMap calls fn with each element and its index
func listMap(ev *interp.Evaluator, args list) (value, error) {
	items := args[0].(list)
	fn := interp.Arg(args, 1)
	out := make(list, 0, len(items))
	for i, item := range items {
		v, err := ev.Apply(fn, item, float64(i))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func listFilter(ev *interp.Evaluator, args list) (value, error) {
	items := args[0].(list)
	fn := interp.Arg(args, 1)
	out := list{}
	for i, item := range items {
		keep, err := ev.Apply(fn, item, float64(i))
		if err != nil {
			return nil, err
		}
		if interp.Truthy(keep) {
			out = append(out, item)
		}
	}
	return out, nil
}

// listJoin joins the display forms of the elements; the separator
// defaults to ","
func listJoin(_ *interp.Evaluator, args list) (value, error) {
	items := args[0].(list)
	sep := ","
	if s, ok := interp.Arg(args, 1).(string); ok {
		sep = s
	}
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = interp.Format(item)
	}
	return strings.Join(parts, sep), nil
}

// listPush returns a new list with the arguments appended
func listPush(_ *interp.Evaluator, args list) (value, error) {
	items := args[0].(list)
	out := make(list, 0, len(items)+len(args)-1)
	out = append(out, items...)
	return append(out, args[1:]...), nil
}

func stringSplit(_ *interp.Evaluator, args list) (value, error) {
	s := args[0].(string)
	sep, ok := interp.Arg(args, 1).(string)
	if !ok {
		return list{s}, nil
	}
	parts := strings.Split(s, sep)
	out := make(list, len(parts))
	for i, p := range parts {
		out[i] = p
	}
	return out, nil
}
