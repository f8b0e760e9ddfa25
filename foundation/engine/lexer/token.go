// File: token.go
// Title: Token Definitions
// Description: Token kinds and the Token value produced by the tokenizer.
// Author: msto63
// Version: v0.1.0
// Created: 2025-06-02
// Modified: 2025-06-02
//
// Change History:
// - 2025-06-02 v0.1.0: Initial implementation

package lexer

import (
	"fmt"

	mdwstringx "github.com/msto63/teacup/foundation/utils/stringx"
)

// Kind is the category of a token. Grammars may define their own kinds;
// the engine itself only attaches meaning to the ones declared below.
type Kind string

const (
	// KindFiller marks text matched by no rule. Never part of a token sequence.
	KindFiller Kind = ""

	// KindComment is matched like any other kind and then dropped.
	KindComment Kind = "comment"

	// KindInfix tokens are operators that may become prefix operators.
	KindInfix Kind = "infix"

	// KindPrefix is assigned by TagFixity to infix tokens without a left operand.
	KindPrefix Kind = "prefix"

	// KindOpen, KindMiddle and KindClose form bracket-like and mixfix constructs.
	KindOpen   Kind = "open"
	KindMiddle Kind = "middle"
	KindClose  Kind = "close"

	// Atom kinds used by the bundled grammars.
	KindNumber Kind = "number"
	KindWord   Kind = "word"
	KindString Kind = "string"
)

// String returns the kind name; filler prints as "filler"
func (k Kind) String() string {
	if k == KindFiller {
		return "filler"
	}
	return string(k)
}

// Token is one piece of the input
type Token struct {
	Kind   Kind   // Token category
	Text   string // Exact source text
	Start  int    // Byte offset of the first character
	End    int    // Byte offset after the last character
	Line   int    // Line number (1-based)
	Column int    // Column number in runes (1-based)
}

// String returns a string representation of the token
func (t Token) String() string {
	return fmt.Sprintf("%s(%s)", t.Kind, mdwstringx.Visible(t.Text))
}

// Is reports whether the token has the given kind and text
func (t Token) Is(kind Kind, text string) bool {
	return t.Kind == kind && t.Text == text
}
