// File: doc.go
// Title: Parser Package Documentation
// Author: msto63
// Version: v0.1.0
// Created: 2025-06-03
// Modified: 2025-06-03

/*
Package parser implements a generalized operator-precedence parser.

Every token, atoms included, is an operator with a (left, right) binding
power pair taken from a Table. The parser walks the token sequence keeping a
stack of open handles. For the token on its left and the lookahead on its
right it either

  - opens a new handle when the lookahead binds tighter,
  - closes the current handle when it binds looser, or
  - merges the lookahead into the current handle when both are equal.

A closed handle is an alternating operand/operator sequence
[operand0, op0, operand1, op1, ..., operandN] where operands may be absent.
It is passed to a Finalizer, which turns it into the caller's node type.
Because merging keeps equal-power tokens in one handle, mixfix constructs
such as "if a then b elif c then d else e end" arrive at the finalizer as a
single handle with six operators.

The parser is generic over the finalizer's result type: the same algorithm
builds syntax trees, bracketed strings or display trees.
*/
package parser
