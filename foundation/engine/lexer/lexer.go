// File: lexer.go
// Title: Table-Driven Tokenizer
// Description: Splits source text into tokens using an ordered rule list.
//              The first rule that matches at a position wins. Text matched
//              by no rule becomes filler; filler and comments are dropped
//              from the result but keep the offsets of all other tokens
//              exact.
// Author: msto63
// Version: v0.1.0
// Created: 2025-06-02
// Modified: 2025-06-04
//
// Change History:
// - 2025-06-02 v0.1.0: Initial implementation
// - 2025-06-04 v0.1.1: Line and column tracking

package lexer

import (
	"fmt"
	"unicode/utf8"

	mdwerror "github.com/msto63/teacup/foundation/core/error"
	mdwlog "github.com/msto63/teacup/foundation/core/log"
	mdwstringx "github.com/msto63/teacup/foundation/utils/stringx"
)

// Rule pairs a token kind with the matcher that recognizes it
type Rule struct {
	Kind    Kind
	Matcher Matcher
}

// String returns a string representation of the rule
func (r Rule) String() string {
	return fmt.Sprintf("%s %s", r.Kind, r.Matcher)
}

// Options configures a Tokenizer
type Options struct {
	Logger *mdwlog.Logger
}

// Tokenizer splits text according to a fixed rule list
type Tokenizer struct {
	rules  []Rule
	logger *mdwlog.Logger
}

// New validates the rules and creates a Tokenizer
func New(rules []Rule, opts Options) (*Tokenizer, error) {
	if len(rules) == 0 {
		return nil, mdwerror.New("tokenizer needs at least one rule").
			WithCode(mdwerror.CodeInvalidGrammar).
			WithOperation("lexer.New")
	}
	for i, r := range rules {
		if r.Kind == KindFiller || r.Matcher == nil {
			return nil, mdwerror.New(fmt.Sprintf("token rule %d is incomplete", i)).
				WithCode(mdwerror.CodeInvalidGrammar).
				WithOperation("lexer.New").
				WithDetail("index", i).
				WithDetail("kind", string(r.Kind))
		}
	}

	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}

	return &Tokenizer{
		rules:  append([]Rule(nil), rules...),
		logger: opts.Logger.WithField("component", "lexer"),
	}, nil
}

// Rules returns a copy of the rule list
func (t *Tokenizer) Rules() []Rule {
	return append([]Rule(nil), t.rules...)
}

// Scan splits text into contiguous pieces covering all of it. Filler and
// comments are included, so concatenating the Text of all pieces yields
// the input.
func (t *Tokenizer) Scan(text string) []Token {
	var pieces []Token
	cursor := newCursor()

	emit := func(kind Kind, start, end int) {
		line, col := cursor.advance(text, start)
		pieces = append(pieces, Token{
			Kind:   kind,
			Text:   text[start:end],
			Start:  start,
			End:    end,
			Line:   line,
			Column: col,
		})
	}

	pos, fillStart := 0, 0
	for pos < len(text) {
		kind, n := t.match(text, pos)
		if n == 0 {
			_, size := utf8.DecodeRuneInString(text[pos:])
			pos += size
			continue
		}
		if fillStart < pos {
			emit(KindFiller, fillStart, pos)
		}
		emit(kind, pos, pos+n)
		pos += n
		fillStart = pos
	}
	if fillStart < len(text) {
		emit(KindFiller, fillStart, len(text))
	}
	return pieces
}

// Tokenize returns the tokens of text with filler and comments removed
func (t *Tokenizer) Tokenize(text string) []Token {
	pieces := t.Scan(text)
	tokens := make([]Token, 0, len(pieces))
	dropped := 0

	for _, p := range pieces {
		switch {
		case p.Kind == KindFiller:
			if !mdwstringx.IsBlank(p.Text) {
				dropped += utf8.RuneCountInString(p.Text)
				t.logger.Trace("dropping unmatched text", mdwlog.Fields{
					"text":  p.Text,
					"start": p.Start,
				})
			}
		case p.Kind == KindComment, p.Text == "":
		default:
			tokens = append(tokens, p)
		}
	}

	if dropped > 0 {
		t.logger.Debug("unmatched characters dropped", mdwlog.Fields{"count": dropped})
	}
	t.logger.Trace("tokenized", mdwlog.Fields{"tokens": len(tokens), "bytes": len(text)})
	return tokens
}

func (t *Tokenizer) match(text string, pos int) (Kind, int) {
	for _, r := range t.rules {
		if n := r.Matcher.Match(text, pos); n > 0 {
			return r.Kind, n
		}
	}
	return KindFiller, 0
}

// Tokenize is a convenience wrapper creating a Tokenizer with default options
func Tokenize(text string, rules []Rule) ([]Token, error) {
	t, err := New(rules, Options{})
	if err != nil {
		return nil, err
	}
	return t.Tokenize(text), nil
}

// cursor converts byte offsets into line and column numbers. Offsets must be
// requested in increasing order.
type cursor struct {
	pos, line, col int
}

func newCursor() *cursor {
	return &cursor{line: 1, col: 1}
}

func (c *cursor) advance(text string, to int) (int, int) {
	for c.pos < to {
		r, size := utf8.DecodeRuneInString(text[c.pos:])
		if r == '\n' {
			c.line++
			c.col = 1
		} else {
			c.col++
		}
		c.pos += size
	}
	return c.line, c.col
}
