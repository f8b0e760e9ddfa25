// ============================================================================
// teacup - grammar-driven language engine
// ============================================================================
//
// Package:     render
// Description: Display finalizers: bracketed text, signature listing and
//              a styled parse tree
// Author:      msto63
// Created:     2025-06-22
// License:     MIT
// ============================================================================

package render

import (
	"strings"

	"github.com/msto63/teacup/foundation/engine/ast"
	"github.com/msto63/teacup/foundation/engine/lexer"
	"github.com/msto63/teacup/foundation/engine/parser"
)

// Bracketed renders every reduction as a parenthesized string. Absent
// operands are omitted, so "a - b - c" becomes "((a - b) - c)".
func Bracketed(h parser.Handle[string]) string {
	if h.IsAtom() {
		return h.Ops[0].Text
	}

	parts := make([]string, 0, len(h.Operands)+len(h.Ops))
	for i, slot := range h.Operands {
		if i > 0 {
			parts = append(parts, h.Ops[i-1].Text)
		}
		if slot.Set {
			parts = append(parts, slot.Value)
		}
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// Signatures lists the signature of every reduced node in reduction order
func Signatures(h parser.Handle[[]string]) []string {
	if h.IsAtom() {
		return nil
	}

	var out []string
	for _, slot := range h.Operands {
		if slot.Set {
			out = append(out, slot.Value...)
		}
	}
	return append(out, h.Signature())
}

// Tree is a display node
type Tree struct {
	Label    string
	Kind     lexer.Kind
	Shape    ast.Shape
	Leaf     bool
	Children []*Tree

	listSep string
}

// listSeparators are flattened into a single display node
var listSeparators = map[string]bool{",": true, ";": true, "\n": true}

// NewTreeFinalizer builds display trees, classifying compounds with c
func NewTreeFinalizer(c *ast.Classifier) parser.Finalizer[*Tree] {
	return func(h parser.Handle[*Tree]) *Tree {
		if h.IsAtom() {
			tok := h.Ops[0]
			return &Tree{Label: tok.Text, Kind: tok.Kind, Shape: ast.ShapeAtom, Leaf: true}
		}

		sig := h.Signature()
		t := &Tree{Label: sig, Shape: c.Classify(sig)}
		sep, isList := listOperator(h.Ops)
		for _, slot := range h.Operands {
			if !slot.Set {
				continue
			}
			child := slot.Value
			if isList && child.listSep == sep {
				t.Children = append(t.Children, child.Children...)
				continue
			}
			t.Children = append(t.Children, child)
		}
		if isList {
			t.listSep = sep
			t.Label = displaySeparator(sep) + " list"
		}
		return t
	}
}

func listOperator(ops []lexer.Token) (string, bool) {
	sep := ops[0].Text
	if !listSeparators[sep] {
		return "", false
	}
	for _, op := range ops[1:] {
		if op.Text != sep {
			return "", false
		}
	}
	return sep, true
}

func displaySeparator(s string) string {
	return strings.ReplaceAll(s, "\n", `\n`)
}

// Plain renders t as an indented tree without colours
func Plain(t *Tree) string {
	return draw(t, false)
}

// Styled renders t as an indented tree coloured by token kind and shape
func Styled(t *Tree) string {
	return draw(t, true)
}

func draw(t *Tree, styled bool) string {
	var sb strings.Builder
	sb.WriteString(label(t, styled))
	sb.WriteByte('\n')
	drawChildren(&sb, t, "", styled)
	return strings.TrimSuffix(sb.String(), "\n")
}

func drawChildren(sb *strings.Builder, t *Tree, indent string, styled bool) {
	for i, child := range t.Children {
		branch, next := "├── ", "│   "
		if i == len(t.Children)-1 {
			branch, next = "└── ", "    "
		}
		if styled {
			sb.WriteString(BranchStyle.Render(indent + branch))
		} else {
			sb.WriteString(indent + branch)
		}
		sb.WriteString(label(child, styled))
		sb.WriteByte('\n')
		drawChildren(sb, child, indent+next, styled)
	}
}

func label(t *Tree, styled bool) string {
	if t.Leaf {
		text := displaySeparator(t.Label)
		if styled {
			return KindStyle(t.Kind).Render(text)
		}
		return text
	}

	shape := "[" + t.Shape.String() + "]"
	if styled {
		return SignatureStyle.Render(displaySeparator(t.Label)) + " " + ShapeLabelStyle(t.Shape).Render(shape)
	}
	return displaySeparator(t.Label) + " " + shape
}
