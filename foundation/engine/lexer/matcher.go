// File: matcher.go
// Title: Token Matchers
// Description: Matchers decide how many bytes a rule consumes at a given
//              position. Patterns are compiled once, anchored at the
//              position; literal and keyword sets avoid regular expressions.
// Author: msto63
// Version: v0.1.0
// Created: 2025-06-02
// Modified: 2025-07-02
//
// Change History:
// - 2025-06-02 v0.1.0: Initial implementation
// - 2025-06-04 v0.1.1: Keywords check word boundaries on both sides
// - 2025-07-02 v0.1.2: Leading \b in patterns sees the preceding byte

package lexer

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	mdwerror "github.com/msto63/teacup/foundation/core/error"
)

// Matcher reports the length in bytes of the match starting at pos, or 0
// when it does not match. Empty matches count as no match.
type Matcher interface {
	Match(input string, pos int) int
	String() string
}

// Pattern matches a regular expression anchored at the current position.
// The expression only sees the input from the position on, except that a
// leading \b also rejects a match preceded by a word character.
type Pattern struct {
	expr     string
	re       *regexp.Regexp
	boundary bool
}

// NewPattern compiles expr. A malformed expression is a configuration error.
func NewPattern(expr string) (*Pattern, error) {
	if expr == "" {
		return nil, mdwerror.New("empty token pattern").
			WithCode(mdwerror.CodeInvalidGrammar).
			WithOperation("lexer.NewPattern")
	}
	re, err := regexp.Compile(`^(?:` + expr + `)`)
	if err != nil {
		return nil, mdwerror.Wrap(err, "invalid token pattern").
			WithCode(mdwerror.CodeInvalidGrammar).
			WithOperation("lexer.NewPattern").
			WithDetail("pattern", expr)
	}
	return &Pattern{expr: expr, re: re, boundary: strings.HasPrefix(expr, `\b`)}, nil
}

// MustPattern is like NewPattern but panics on error. Meant for grammars
// defined in code.
func MustPattern(expr string) *Pattern {
	p, err := NewPattern(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// Match implements Matcher
func (p *Pattern) Match(input string, pos int) int {
	if p.boundary && pos > 0 && isWordByte(input[pos-1]) {
		return 0
	}
	loc := p.re.FindStringIndex(input[pos:])
	if loc == nil {
		return 0
	}
	return loc[1]
}

// String implements Matcher
func (p *Pattern) String() string {
	return "/" + p.expr + "/"
}

// Expr returns the source expression
func (p *Pattern) Expr() string {
	return p.expr
}

// Literals matches any of a fixed set of strings, longest first.
type Literals struct {
	words []string
}

// NewLiterals builds a literal matcher. Empty strings are ignored.
func NewLiterals(words ...string) (*Literals, error) {
	l := &Literals{}
	for _, w := range words {
		if w != "" {
			l.words = append(l.words, w)
		}
	}
	if len(l.words) == 0 {
		return nil, mdwerror.New("literal matcher needs at least one literal").
			WithCode(mdwerror.CodeInvalidGrammar).
			WithOperation("lexer.NewLiterals")
	}
	sort.SliceStable(l.words, func(i, j int) bool { return len(l.words[i]) > len(l.words[j]) })
	return l, nil
}

// Match implements Matcher
func (l *Literals) Match(input string, pos int) int {
	rest := input[pos:]
	for _, w := range l.words {
		if strings.HasPrefix(rest, w) {
			return len(w)
		}
	}
	return 0
}

// String implements Matcher
func (l *Literals) String() string {
	return fmt.Sprintf("literals%q", l.words)
}

// Words returns the literals, longest first
func (l *Literals) Words() []string {
	return append([]string(nil), l.words...)
}

// Keywords matches whole words only: the match must neither be preceded
// nor followed by a word character ([A-Za-z0-9_]).
type Keywords struct {
	*Literals
}

// NewKeywords builds a keyword matcher
func NewKeywords(words ...string) (*Keywords, error) {
	l, err := NewLiterals(words...)
	if err != nil {
		return nil, err
	}
	return &Keywords{Literals: l}, nil
}

// Match implements Matcher
func (k *Keywords) Match(input string, pos int) int {
	if pos > 0 && isWordByte(input[pos-1]) {
		return 0
	}
	rest := input[pos:]
	for _, w := range k.words {
		if !strings.HasPrefix(rest, w) {
			continue
		}
		if len(w) < len(rest) && isWordByte(rest[len(w)]) {
			continue
		}
		return len(w)
	}
	return 0
}

// String implements Matcher
func (k *Keywords) String() string {
	return fmt.Sprintf("keywords%q", k.words)
}

func isWordByte(b byte) bool {
	return b == '_' || b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}
