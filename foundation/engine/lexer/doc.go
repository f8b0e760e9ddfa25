// File: doc.go
// Title: Lexer Package Documentation
// Description: Table-driven tokenizer and fixity tagger for the language
//              engine.
// Author: msto63
// Version: v0.1.0
// Created: 2025-06-02
// Modified: 2025-06-02
//
// Change History:
// - 2025-06-02 v0.1.0: Initial implementation

/*
Package lexer turns source text into a flat sequence of typed tokens.

A grammar configures the tokenizer with an ordered list of rules, each
pairing a token Kind with a Matcher. At every position the first rule (in
list order) whose matcher accepts wins; text matched by no rule is filler.
Rules may overlap on purpose: a keyword rule listed before the identifier
rule claims "if" while "iffy" still becomes an identifier.

Filler and comments are dropped from the token sequence, but every piece
keeps its byte offsets so positions stay correct after filtering.

Unmatched characters are dropped silently rather than reported. This is
deliberate: "1 § 2" tokenizes exactly like "1 2".

TagFixity runs after tokenization and turns infix tokens that have no left
operand (at the start, after another operator or after an opening bracket)
into prefix tokens, so that "- - 3" reads as two negations.
*/
package lexer
