// File: doc.go
// Title: AST Package Documentation
// Author: msto63
// Version: v0.1.0
// Created: 2025-06-03
// Modified: 2025-06-06

/*
Package ast defines the syntax tree produced by the default finalizer and
the structural helpers used to take it apart.

A tree has two node types. A Leaf wraps a single token; its signature is the
token kind ("number", "word", ...). A Compound is a reduced handle: the
present operands become Args, the operator tokens become Ops, and the
signature spells out the handle with "E" for present and "_" for absent
operands, e.g. "E + E", "_ ( E ) _" or "_ if E then E else E end _".

Signatures are computed once when the node is built. A Classifier maps them
to a closed set of Shapes at the same time, so evaluators can dispatch on a
Shape instead of matching strings on every step.
*/
package ast
