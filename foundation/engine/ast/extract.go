// File: extract.go
// Title: Structural Extractors
// Description: Helpers that take nodes apart: pattern extraction, paren
//              unwrapping, list flattening and normalization of calls and
//              declarations.
// Author: msto63
// Version: v0.1.0
// Created: 2025-06-06
// Modified: 2025-07-02
//
// Change History:
// - 2025-06-06 v0.1.0: Initial implementation
// - 2025-06-07 v0.1.1: Strict extraction errors carry both signatures
// - 2025-07-02 v0.1.2: Operator declarations; lists split one level only

package ast

import (
	"fmt"
	"regexp"

	mdwerror "github.com/msto63/teacup/foundation/core/error"
	"github.com/msto63/teacup/foundation/engine/lexer"
)

var (
	listPattern   = regexp.MustCompile(`^[E_]( [;,\n] [E_])+$`)
	binaryPattern = regexp.MustCompile(`^[E_] [^ ]+ [E_]$`)
	callPattern   = regexp.MustCompile(`^E \( [E_] \) _$`)
)

const (
	groupSignature  = "_ ( E ) _"
	assignSignature = "E = E"
)

// Extract returns the args of n when p matches it
func Extract(p Pattern, n Node) ([]Node, bool) {
	if n == nil || !p.Match(n) {
		return nil, false
	}
	return n.Args(), true
}

// ExtractStrict is Extract that fails with CodeUnknownNodeShape on mismatch
func ExtractStrict(p Pattern, n Node) ([]Node, error) {
	if args, ok := Extract(p, n); ok {
		return args, nil
	}
	got := "<nil>"
	if n != nil {
		got = n.Signature()
	}
	return nil, mdwerror.New(fmt.Sprintf("expected '%s', got '%s'", p, got)).
		WithCode(mdwerror.CodeUnknownNodeShape).
		WithOperation("ast.ExtractStrict").
		WithDetail("expected", p.String()).
		WithDetail("signature", got)
}

// UnwrapParens strips every layer of plain parentheses around n
func UnwrapParens(n Node) Node {
	for n != nil && n.Signature() == groupSignature {
		n = n.Args()[0]
	}
	return n
}

// FlattenList turns a separator-joined node into its items; absent items
// are skipped. Only the top level is split: in "a; b, c" the items are a
// and "b, c". Any other node, including nil, yields a single item or none.
func FlattenList(n Node) []Node {
	if n == nil {
		return nil
	}
	if !listPattern.MatchString(n.Signature()) {
		return []Node{n}
	}
	return append([]Node(nil), n.Args()...)
}

// NormalizeCall recognizes the two call forms. A binary operator node
// "a op b" yields the operator token as callee and its operands as args; a
// call node "f(x, y)" yields f and the flattened argument list.
func NormalizeCall(n Node) (callee Node, args []Node, ok bool) {
	if n == nil {
		return nil, nil, false
	}
	sig := n.Signature()
	switch {
	case callPattern.MatchString(sig):
		all := n.Args()
		if len(all) > 1 {
			return all[0], FlattenList(all[1]), true
		}
		return all[0], []Node{}, true
	case binaryPattern.MatchString(sig):
		return NewLeaf(n.Ops()[0]), n.Args(), true
	}
	return nil, nil, false
}

// Declaration is the normalized form of "name = value" and
// "name(params) = value"
type Declaration struct {
	Name Node
	// Params is nil for a plain variable declaration
	Params     []Node
	IsFunction bool
	Value      Node
}

// NormalizeAssignment splits an "E = E" node. Call sugar on the left makes
// it a function declaration: "f(x) = ..." names f, "x ++ y = ..." names the
// infix operator ++ and "-x = ..." the prefix operator -.
func NormalizeAssignment(n Node) (Declaration, error) {
	args, err := ExtractStrict(Sig(assignSignature), n)
	if err != nil {
		return Declaration{}, mdwerror.Wrap(err, "invalid declaration").
			WithCode(mdwerror.CodeInvalidDeclaration).
			WithOperation("ast.NormalizeAssignment")
	}
	lhs, value := args[0], args[1]
	if callee, params, ok := NormalizeCall(lhs); ok {
		return Declaration{Name: callee, Params: params, IsFunction: true, Value: value}, nil
	}
	return Declaration{Name: lhs, Value: value}, nil
}

// Leaves returns the leaves of n in source order
func Leaves(n Node) []*Leaf {
	if n == nil {
		return nil
	}
	if leaf, ok := n.(*Leaf); ok {
		return []*Leaf{leaf}
	}
	var out []*Leaf
	for _, arg := range n.Args() {
		out = append(out, Leaves(arg)...)
	}
	return out
}

// IsLeafOf reports whether n is a leaf of one of the kinds
func IsLeafOf(n Node, kinds ...lexer.Kind) bool {
	return OfKind(kinds).Match(n)
}
