// File: value.go
// Title: Runtime Values
// Description: Value representation, type names, truthiness, equality and
//              display formatting.
// Author: msto63
// Version: v0.1.0
// Created: 2025-06-07
// Modified: 2025-06-09
//
// Change History:
// - 2025-06-07 v0.1.0: Initial implementation
// - 2025-06-09 v0.1.1: Deep list equality

package interp

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Value is any runtime value
type Value = interface{}

type missing struct{}

func (missing) String() string { return "missing" }

// Missing is bound to parameters for which no argument was supplied
var Missing Value = missing{}

// IsMissing reports whether v is the Missing marker
func IsMissing(v Value) bool {
	_, ok := v.(missing)
	return ok
}

// Object is a named bag of attributes
type Object struct {
	name  string
	attrs map[string]Value
}

// NewObject creates an object; attrs is copied
func NewObject(name string, attrs map[string]Value) *Object {
	o := &Object{name: name, attrs: make(map[string]Value, len(attrs))}
	for k, v := range attrs {
		o.attrs[k] = v
	}
	return o
}

// Name returns the object name
func (o *Object) Name() string { return o.name }

// Attr returns the named attribute
func (o *Object) Attr(name string) (Value, bool) {
	v, ok := o.attrs[name]
	return v, ok
}

// Keys returns the attribute names, sorted
func (o *Object) Keys() []string {
	keys := make([]string, 0, len(o.attrs))
	for k := range o.attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// TypeName returns the language-level type name of v
func TypeName(v Value) string {
	switch v.(type) {
	case nil:
		return "null"
	case float64:
		return "number"
	case string:
		return "string"
	case bool:
		return "boolean"
	case []Value:
		return "list"
	case missing:
		return "missing"
	case *Thunk:
		return "thunk"
	case Callable:
		return "function"
	case *Object:
		return "object"
	default:
		return "unknown"
	}
}

// Truthy reports whether v counts as true in a condition. False, null,
// Missing, zero, NaN and the empty string are false; everything else,
// including empty lists, is true.
func Truthy(v Value) bool {
	switch x := v.(type) {
	case nil, missing:
		return false
	case bool:
		return x
	case float64:
		return x != 0 && !math.IsNaN(x)
	case string:
		return x != ""
	default:
		return true
	}
}

// Equal compares values. Null equals Missing; lists compare element-wise;
// callables and objects compare by identity.
func Equal(a, b Value) bool {
	if isNullish(a) || isNullish(b) {
		return isNullish(a) && isNullish(b)
	}
	switch x := a.(type) {
	case float64:
		y, ok := b.(float64)
		return ok && x == y
	case string:
		y, ok := b.(string)
		return ok && x == y
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	case []Value:
		y, ok := b.([]Value)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case *Object:
		y, ok := b.(*Object)
		return ok && x == y
	}
	return identical(a, b)
}

func isNullish(v Value) bool {
	return v == nil || IsMissing(v)
}

// identical compares values that may not be comparable with ==
func identical(a, b Value) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}

// FormatNumber renders a number the way the language prints it: integers
// without a fraction, everything else with the shortest exact digits.
func FormatNumber(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case math.IsNaN(f):
		return "NaN"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Format renders a value for display. Strings are shown raw at the top
// level and quoted inside lists.
func Format(v Value) string {
	if s, ok := v.(string); ok {
		return s
	}
	return formatNested(v)
}

func formatNested(v Value) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case float64:
		return FormatNumber(x)
	case string:
		return strconv.Quote(x)
	case bool:
		return strconv.FormatBool(x)
	case []Value:
		parts := make([]string, len(x))
		for i, item := range x {
			parts[i] = formatNested(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case missing:
		return "missing"
	case *Object:
		return "<object " + x.name + ">"
	case *Thunk:
		return "<thunk>"
	case Callable:
		return "<function " + x.Name() + ">"
	default:
		return "<unknown>"
	}
}
