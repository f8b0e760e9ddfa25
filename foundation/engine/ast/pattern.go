// File: pattern.go
// Title: Node Patterns
// Description: Predicates over nodes used for shape classification,
//              handler dispatch and structural extraction.
// Author: msto63
// Version: v0.1.0
// Created: 2025-06-06
// Modified: 2025-06-06
//
// Change History:
// - 2025-06-06 v0.1.0: Initial implementation

package ast

import (
	"regexp"
	"strings"

	mdwerror "github.com/msto63/teacup/foundation/core/error"
	"github.com/msto63/teacup/foundation/engine/lexer"
)

// Pattern selects nodes
type Pattern interface {
	Match(n Node) bool
	String() string
}

// SignaturePattern selects signatures; used by the Classifier
type SignaturePattern interface {
	MatchSignature(signature string) bool
}

// Sig matches a compound with exactly this signature
type Sig string

// Match implements Pattern
func (s Sig) Match(n Node) bool {
	if _, ok := n.(*Compound); !ok {
		return false
	}
	return n.Signature() == string(s)
}

// MatchSignature implements SignaturePattern
func (s Sig) MatchSignature(signature string) bool { return signature == string(s) }

func (s Sig) String() string { return string(s) }

// SigRegexp matches compounds whose signature matches a regular expression
type SigRegexp struct {
	re *regexp.Regexp
}

// NewSigRegexp compiles expr. The expression is not anchored implicitly.
func NewSigRegexp(expr string) (*SigRegexp, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, mdwerror.Wrap(err, "invalid signature pattern").
			WithCode(mdwerror.CodeInvalidGrammar).
			WithDetail("pattern", expr)
	}
	return &SigRegexp{re: re}, nil
}

// MustSigRegexp is NewSigRegexp for package-level patterns; it panics on error
func MustSigRegexp(expr string) *SigRegexp {
	p, err := NewSigRegexp(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// Match implements Pattern
func (p *SigRegexp) Match(n Node) bool {
	if _, ok := n.(*Compound); !ok {
		return false
	}
	return p.re.MatchString(n.Signature())
}

// MatchSignature implements SignaturePattern
func (p *SigRegexp) MatchSignature(signature string) bool { return p.re.MatchString(signature) }

func (p *SigRegexp) String() string { return "/" + p.re.String() + "/" }

// OfShape matches nodes classified with the given shape
type OfShape Shape

// Match implements Pattern
func (s OfShape) Match(n Node) bool { return n.Shape() == Shape(s) }

func (s OfShape) String() string { return "shape:" + Shape(s).String() }

// OfKind matches leaves whose token kind is one of the listed kinds
type OfKind []lexer.Kind

// Match implements Pattern
func (k OfKind) Match(n Node) bool {
	leaf, ok := n.(*Leaf)
	if !ok {
		return false
	}
	for _, kind := range k {
		if leaf.Token.Kind == kind {
			return true
		}
	}
	return false
}

func (k OfKind) String() string {
	names := make([]string, len(k))
	for i, kind := range k {
		names[i] = kind.String()
	}
	return "kind:" + strings.Join(names, "|")
}
