// File: priority.go
// Title: Operator Priority Table
// Description: Binding-power pairs per operator and the lookup order used by
//              the parser: "kind:text", then "text", then "type:kind".
// Author: msto63
// Version: v0.1.0
// Created: 2025-06-03
// Modified: 2025-06-03
//
// Change History:
// - 2025-06-03 v0.1.0: Initial implementation

package parser

import (
	"fmt"
	"sort"

	mdwerror "github.com/msto63/teacup/foundation/core/error"
	"github.com/msto63/teacup/foundation/engine/lexer"
)

const (
	// PrefixRight is the right power of prefix operators. Seen as lookahead
	// they always open a new handle.
	PrefixRight = 10004

	// SuffixLeft is the left power of suffix operators. Whatever follows
	// them never opens a handle inside them.
	SuffixLeft = 10005
)

// Priority is a (left, right) binding-power pair. The parser compares the
// Left power of the token on its left with the Right power of the lookahead.
type Priority struct {
	Left  int `json:"left" yaml:"left" toml:"left"`
	Right int `json:"right" yaml:"right" toml:"right"`
}

// LeftAssoc returns the pair for a left-associative operator: a-b-c is (a-b)-c
func LeftAssoc(n int) Priority { return Priority{Left: n, Right: n - 1} }

// RightAssoc returns the pair for a right-associative operator: a^b^c is a^(b^c)
func RightAssoc(n int) Priority { return Priority{Left: n, Right: n + 1} }

// NonAssoc returns the pair for chaining operators. Equal powers merge into
// one flat handle, which is how separators and mixfix keywords work.
func NonAssoc(n int) Priority { return Priority{Left: n, Right: n} }

// Prefix returns the pair for prefix operators and opening brackets
func Prefix(n int) Priority { return Priority{Left: n, Right: PrefixRight} }

// Suffix returns the pair for suffix operators and closing brackets
func Suffix(n int) Priority { return Priority{Left: SuffixLeft, Right: n} }

// String returns a string representation of the pair
func (p Priority) String() string {
	return fmt.Sprintf("(%d, %d)", p.Left, p.Right)
}

// KindKey returns the table key addressing every token of a kind
func KindKey(kind lexer.Kind) string {
	return "type:" + string(kind)
}

// Table maps operator keys to priorities. Keys are "kind:text" for a token
// of one kind and text, "text" for any token with that text, and
// "type:kind" for every token of a kind.
type Table struct {
	entries map[string]Priority
}

// NewTable creates an empty priority table
func NewTable() *Table {
	return &Table{entries: make(map[string]Priority)}
}

// Set adds or replaces an entry and returns the table for chaining
func (t *Table) Set(key string, p Priority) *Table {
	t.entries[key] = p
	return t
}

// Get returns the entry stored under key
func (t *Table) Get(key string) (Priority, bool) {
	p, ok := t.entries[key]
	return p, ok
}

// Len returns the number of entries
func (t *Table) Len() int {
	return len(t.entries)
}

// Keys returns all keys in sorted order
func (t *Table) Keys() []string {
	keys := make([]string, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Lookup resolves the priority of a token. A token no entry covers is an
// UNRESOLVED_OPERATOR error naming its text.
func (t *Table) Lookup(tok lexer.Token) (Priority, error) {
	if p, ok := t.entries[string(tok.Kind)+":"+tok.Text]; ok {
		return p, nil
	}
	if p, ok := t.entries[tok.Text]; ok {
		return p, nil
	}
	if p, ok := t.entries[KindKey(tok.Kind)]; ok {
		return p, nil
	}
	return Priority{}, mdwerror.New(fmt.Sprintf("unknown operator: %s", tok.Text)).
		WithCode(mdwerror.CodeUnresolvedOperator).
		WithOperation("parser.Lookup").
		WithDetail("text", tok.Text).
		WithDetail("kind", string(tok.Kind)).
		WithDetail("start", tok.Start).
		WithDetail("line", tok.Line).
		WithDetail("column", tok.Column)
}
