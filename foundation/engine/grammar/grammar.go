// File: grammar.go
// Title: Grammar Documents
// Description: Declarative token rules, priority entries and shape rules
//              stored as TOML or YAML and compiled into an engine grammar.
// Author: msto63
// Version: v0.1.0
// Created: 2025-06-12
// Modified: 2025-06-14
//
// Change History:
// - 2025-06-12 v0.1.0: Initial implementation
// - 2025-06-14 v0.1.1: Shape rules, export

// Package grammar reads, validates and writes grammar documents.
//
// A document lists token rules in matching order, priority entries and
// optional shape rules for the classifier:
//
//	name = "calc"
//
//	[[tokens]]
//	kind = "number"
//	pattern = '\d+'
//
//	[[tokens]]
//	kind = "open"
//	literals = ["("]
//	keywords = ["if"]
//
//	[[priorities]]
//	key = "+"
//	assoc = "left"
//	power = 505
//
//	[[shapes]]
//	signature = "_ ( E ) _"
//	shape = "group"
//
// Token patterns are anchored at the current position and see only the
// input from there on. A leading \b is the one exception: it also checks
// the byte before the position, so '\bx' does not match inside "axe".
package grammar

import (
	"fmt"
	"strings"

	mdwconfig "github.com/msto63/teacup/foundation/core/config"
	mdwerror "github.com/msto63/teacup/foundation/core/error"
	"github.com/msto63/teacup/foundation/engine"
	"github.com/msto63/teacup/foundation/engine/ast"
	"github.com/msto63/teacup/foundation/engine/lexer"
	"github.com/msto63/teacup/foundation/engine/parser"
	mdwstringx "github.com/msto63/teacup/foundation/utils/stringx"
)

// Association names accepted in priority entries
const (
	AssocLeft     = "left"
	AssocRight    = "right"
	AssocNone     = "none"
	AssocPrefix   = "prefix"
	AssocSuffix   = "suffix"
	AssocExplicit = "explicit"
)

// TokenSpec is one token rule. Either Pattern or at least one of Literals
// and Keywords is set; literals are tried before keywords.
type TokenSpec struct {
	Kind     string   `toml:"kind" yaml:"kind"`
	Pattern  string   `toml:"pattern,omitempty" yaml:"pattern,omitempty"`
	Literals []string `toml:"literals,omitempty" yaml:"literals,omitempty"`
	Keywords []string `toml:"keywords,omitempty" yaml:"keywords,omitempty"`
}

// PrioritySpec is one priority entry. Power applies to every association
// except explicit, which takes Left and Right as given.
type PrioritySpec struct {
	Key   string `toml:"key" yaml:"key"`
	Assoc string `toml:"assoc" yaml:"assoc"`
	Power int    `toml:"power,omitempty" yaml:"power,omitempty"`
	Left  int    `toml:"left,omitempty" yaml:"left,omitempty"`
	Right int    `toml:"right,omitempty" yaml:"right,omitempty"`
}

// ShapeSpec assigns a shape to an exact signature or to signatures
// matching a regular expression
type ShapeSpec struct {
	Signature string `toml:"signature,omitempty" yaml:"signature,omitempty"`
	Pattern   string `toml:"pattern,omitempty" yaml:"pattern,omitempty"`
	Shape     string `toml:"shape" yaml:"shape"`
}

// Document is a grammar file
type Document struct {
	Name       string         `toml:"name" yaml:"name"`
	Tokens     []TokenSpec    `toml:"tokens" yaml:"tokens"`
	Priorities []PrioritySpec `toml:"priorities" yaml:"priorities"`
	Shapes     []ShapeSpec    `toml:"shapes,omitempty" yaml:"shapes,omitempty"`
}

// Load reads a grammar document; the format follows the file extension
func Load(path string) (*Document, error) {
	var doc Document
	if err := mdwconfig.LoadFile(path, mdwconfig.FormatAuto, &doc); err != nil {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, mdwerror.Wrap(err, "invalid grammar file").WithDetail("filePath", path)
	}
	return &doc, nil
}

// Parse decodes and validates a grammar document
func Parse(data []byte, format mdwconfig.Format) (*Document, error) {
	var doc Document
	if err := mdwconfig.Decode(data, format, &doc); err != nil {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Export encodes a document as TOML or YAML
func Export(doc *Document, format mdwconfig.Format) ([]byte, error) {
	return mdwconfig.Encode(doc, format)
}

// Validate checks the document without compiling patterns
func (d *Document) Validate() error {
	if len(d.Tokens) == 0 {
		return invalid("grammar defines no tokens")
	}
	for i, t := range d.Tokens {
		if mdwstringx.IsBlank(t.Kind) || t.Kind == lexer.KindFiller.String() {
			return invalid(fmt.Sprintf("token rule %d has no usable kind", i)).WithDetail("index", i)
		}
		hasWords := len(t.Literals) > 0 || len(t.Keywords) > 0
		if (t.Pattern == "") == !hasWords {
			return invalid(fmt.Sprintf("token rule %d (%s) needs either a pattern or literals/keywords", i, t.Kind)).
				WithDetail("index", i).
				WithDetail("kind", t.Kind)
		}
	}

	seen := make(map[string]bool, len(d.Priorities))
	for i, p := range d.Priorities {
		if p.Key == "" {
			return invalid(fmt.Sprintf("priority %d has no key", i)).WithDetail("index", i)
		}
		if seen[p.Key] {
			return invalid(fmt.Sprintf("duplicate priority key %q", p.Key)).WithDetail("key", p.Key)
		}
		seen[p.Key] = true
		if _, err := p.priority(); err != nil {
			return err
		}
	}

	for i, s := range d.Shapes {
		if (s.Signature == "") == (s.Pattern == "") {
			return invalid(fmt.Sprintf("shape rule %d needs either a signature or a pattern", i)).WithDetail("index", i)
		}
		if _, ok := ast.ParseShape(s.Shape); !ok {
			return invalid(fmt.Sprintf("shape rule %d has unknown shape %q", i, s.Shape)).WithDetail("shape", s.Shape)
		}
	}
	return nil
}

// Compile validates the document and builds the engine grammar
func (d *Document) Compile() (engine.Grammar, error) {
	if err := d.Validate(); err != nil {
		return engine.Grammar{}, err
	}

	g := engine.Grammar{
		Name:       d.Name,
		Priorities: parser.NewTable(),
		Classifier: ast.NewClassifier(),
	}

	for _, t := range d.Tokens {
		rules, err := t.rules()
		if err != nil {
			return engine.Grammar{}, err
		}
		g.Rules = append(g.Rules, rules...)
	}

	for _, p := range d.Priorities {
		prio, _ := p.priority()
		g.Priorities.Set(p.Key, prio)
	}

	for _, s := range d.Shapes {
		shape, _ := ast.ParseShape(s.Shape)
		if s.Signature != "" {
			g.Classifier.Add(ast.Sig(s.Signature), shape)
			continue
		}
		re, err := ast.NewSigRegexp(s.Pattern)
		if err != nil {
			return engine.Grammar{}, err
		}
		g.Classifier.Add(re, shape)
	}
	return g, nil
}

func (t TokenSpec) rules() ([]lexer.Rule, error) {
	kind := lexer.Kind(t.Kind)
	if t.Pattern != "" {
		m, err := lexer.NewPattern(t.Pattern)
		if err != nil {
			return nil, err
		}
		return []lexer.Rule{{Kind: kind, Matcher: m}}, nil
	}

	var rules []lexer.Rule
	if len(t.Literals) > 0 {
		m, err := lexer.NewLiterals(t.Literals...)
		if err != nil {
			return nil, err
		}
		rules = append(rules, lexer.Rule{Kind: kind, Matcher: m})
	}
	if len(t.Keywords) > 0 {
		m, err := lexer.NewKeywords(t.Keywords...)
		if err != nil {
			return nil, err
		}
		rules = append(rules, lexer.Rule{Kind: kind, Matcher: m})
	}
	return rules, nil
}

func (p PrioritySpec) priority() (parser.Priority, error) {
	switch strings.ToLower(p.Assoc) {
	case AssocLeft:
		return parser.LeftAssoc(p.Power), nil
	case AssocRight:
		return parser.RightAssoc(p.Power), nil
	case AssocNone:
		return parser.NonAssoc(p.Power), nil
	case AssocPrefix:
		return parser.Prefix(p.Power), nil
	case AssocSuffix:
		return parser.Suffix(p.Power), nil
	case AssocExplicit:
		return parser.Priority{Left: p.Left, Right: p.Right}, nil
	}
	return parser.Priority{}, invalid(fmt.Sprintf("priority %q has unknown association %q", p.Key, p.Assoc)).
		WithDetail("key", p.Key).
		WithDetail("assoc", p.Assoc)
}

func invalid(msg string) *mdwerror.Error {
	return mdwerror.New(msg).
		WithCode(mdwerror.CodeInvalidGrammar).
		WithOperation("grammar.Validate")
}
