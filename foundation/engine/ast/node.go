// File: node.go
// Title: Syntax Tree Nodes
// Description: Leaf and Compound nodes, spans, the default finalizer and
//              structural equality.
// Author: msto63
// Version: v0.1.0
// Created: 2025-06-03
// Modified: 2025-06-06
//
// Change History:
// - 2025-06-03 v0.1.0: Initial implementation
// - 2025-06-06 v0.1.1: Shapes assigned by a classifier at finalize time

package ast

import (
	"strings"

	"github.com/msto63/teacup/foundation/engine/lexer"
	"github.com/msto63/teacup/foundation/engine/parser"
)

// Span is a byte range in the source text
type Span struct {
	Start int
	End   int
}

// Node is a syntax tree node
type Node interface {
	// Signature is the structural key: the token kind for leaves, the
	// E/_/operator sequence for compounds
	Signature() string
	Shape() Shape
	Span() Span
	// Args are the present operands in order; nil for leaves
	Args() []Node
	// Ops are the operator tokens in order; nil for leaves
	Ops() []lexer.Token
	String() string
}

// Leaf is a single token
type Leaf struct {
	Token lexer.Token
}

// NewLeaf wraps a token
func NewLeaf(tok lexer.Token) *Leaf {
	return &Leaf{Token: tok}
}

// Signature returns the token kind
func (l *Leaf) Signature() string { return string(l.Token.Kind) }

// Shape returns ShapeAtom
func (l *Leaf) Shape() Shape { return ShapeAtom }

// Span returns the token's byte range
func (l *Leaf) Span() Span { return Span{Start: l.Token.Start, End: l.Token.End} }

// Args returns nil
func (l *Leaf) Args() []Node { return nil }

// Ops returns nil
func (l *Leaf) Ops() []lexer.Token { return nil }

// Kind returns the token kind
func (l *Leaf) Kind() lexer.Kind { return l.Token.Kind }

// Text returns the token text
func (l *Leaf) Text() string { return l.Token.Text }

// String returns the token text
func (l *Leaf) String() string { return l.Token.Text }

// Compound is a reduced handle
type Compound struct {
	signature string
	shape     Shape
	args      []Node
	ops       []lexer.Token
	span      Span
}

// Signature returns the structural signature
func (c *Compound) Signature() string { return c.signature }

// Shape returns the classified shape
func (c *Compound) Shape() Shape { return c.shape }

// Span returns the byte range from the first to the last element
func (c *Compound) Span() Span { return c.span }

// Args returns the present operands
func (c *Compound) Args() []Node { return c.args }

// Ops returns the operator tokens
func (c *Compound) Ops() []lexer.Token { return c.ops }

// Op returns the text of the i-th operator
func (c *Compound) Op(i int) string { return c.ops[i].Text }

// String renders the node fully parenthesized, leaving out absent operands:
// "((a - b) - c)".
func (c *Compound) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	argIdx := 0
	for i, part := range strings.Split(c.signature, " ") {
		if i > 0 {
			sb.WriteByte(' ')
		}
		switch {
		case i%2 == 1:
			sb.WriteString(c.ops[i/2].Text)
		case part == "E":
			sb.WriteString(c.args[argIdx].String())
			argIdx++
		default:
			sb.WriteByte('_')
		}
	}
	sb.WriteByte(')')
	return sb.String()
}

// NewFinalizer returns the default finalizer using c to assign shapes. A
// handle holding a single token with absent neighbours collapses into a
// Leaf; any other handle becomes a Compound. A nil classifier leaves every
// compound at ShapeOther.
func NewFinalizer(c *Classifier) parser.Finalizer[Node] {
	return func(h parser.Handle[Node]) Node {
		if h.IsAtom() {
			return NewLeaf(h.Ops[0])
		}

		sig := h.Signature()
		n := &Compound{
			signature: sig,
			shape:     c.Classify(sig),
			ops:       append([]lexer.Token(nil), h.Ops...),
		}
		for _, slot := range h.Operands {
			if slot.Set {
				n.args = append(n.args, slot.Value)
			}
		}

		first, last := h.Operands[0], h.Operands[len(h.Operands)-1]
		if first.Set {
			n.span.Start = first.Value.Span().Start
		} else {
			n.span.Start = h.Ops[0].Start
		}
		if last.Set {
			n.span.End = last.Value.Span().End
		} else {
			n.span.End = h.Ops[len(h.Ops)-1].End
		}
		return n
	}
}

// Finalize is the default finalizer without shape classification
var Finalize = NewFinalizer(nil)

// Equal reports whether two trees have the same structure and token texts.
// Offsets are ignored.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Signature() != b.Signature() {
		return false
	}
	if la, ok := a.(*Leaf); ok {
		lb, ok := b.(*Leaf)
		return ok && la.Token.Kind == lb.Token.Kind && la.Token.Text == lb.Token.Text
	}
	if _, ok := b.(*Leaf); ok {
		return false
	}

	aArgs, bArgs := a.Args(), b.Args()
	if len(aArgs) != len(bArgs) {
		return false
	}
	for i := range aArgs {
		if !Equal(aArgs[i], bArgs[i]) {
			return false
		}
	}
	return true
}
