// File: fixity.go
// Title: Fixity Tagger
// Description: Reclassifies infix tokens that have no left operand as
//              prefix operators.
// Author: msto63
// Version: v0.1.0
// Created: 2025-06-02
// Modified: 2025-06-02
//
// Change History:
// - 2025-06-02 v0.1.0: Initial implementation

package lexer

// TagFixity returns a copy of tokens in which every infix token that follows
// another infix token, an open token, or nothing at all is relabeled as
// prefix. A relabeled token still counts as infix for the token after it,
// so in "- - 3" both minus signs become prefix.
func TagFixity(tokens []Token) []Token {
	out := make([]Token, len(tokens))
	copy(out, tokens)

	prev := KindInfix
	for i := range out {
		kind := out[i].Kind
		if kind == KindInfix && (prev == KindInfix || prev == KindOpen) {
			out[i].Kind = KindPrefix
		}
		prev = kind
	}
	return out
}
