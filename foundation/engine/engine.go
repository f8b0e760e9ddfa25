// File: engine.go
// Title: Language Engine
// Description: Compiles a grammar, handler table and root environment into
//              a reusable pipeline with a digest-keyed parse cache.
// Author: msto63
// Version: v0.1.0
// Created: 2025-06-11
// Modified: 2025-06-13
//
// Change History:
// - 2025-06-11 v0.1.0: Initial implementation
// - 2025-06-13 v0.1.1: Parse cache, input length limit

package engine

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"
	"github.com/zeebo/blake3"

	mdwerror "github.com/msto63/teacup/foundation/core/error"
	mdwlog "github.com/msto63/teacup/foundation/core/log"
	"github.com/msto63/teacup/foundation/engine/ast"
	"github.com/msto63/teacup/foundation/engine/interp"
	"github.com/msto63/teacup/foundation/engine/lexer"
	"github.com/msto63/teacup/foundation/engine/parser"
)

// Grammar is the syntactic part of a language
type Grammar struct {
	Name       string
	Rules      []lexer.Rule
	Priorities *parser.Table
	// Classifier assigns shapes to compound nodes; nil leaves them
	// unclassified
	Classifier *ast.Classifier
}

// Options configures an Engine
type Options struct {
	Logger *mdwlog.Logger
	// MaxInputLength rejects longer sources in bytes; zero disables the check
	MaxInputLength int
	// MaxDepth bounds evaluation nesting; zero selects the interpreter default
	MaxDepth int
	// CacheSize is the number of parsed trees kept; zero disables caching
	CacheSize int
	// Prototypes are passed to the interpreter
	Prototypes map[string]*interp.Object
}

// Result describes one completed run
type Result struct {
	ID       string
	Source   string
	Digest   string
	Tree     ast.Node
	Value    interp.Value
	Duration time.Duration
}

// Engine runs source text through the pipeline
type Engine struct {
	grammar        Grammar
	tokenizer      *lexer.Tokenizer
	parser         *parser.Parser[ast.Node]
	interp         *interp.Interpreter
	cache          *lru.Cache
	maxInputLength int
	logger         *mdwlog.Logger
}

// New validates the grammar and builds an Engine
func New(g Grammar, handlers *interp.Handlers, root *interp.Env, opts Options) (*Engine, error) {
	logger := opts.Logger
	if logger == nil {
		logger = mdwlog.GetDefault()
	}
	logger = logger.WithField("component", "engine").WithField("grammar", g.Name)

	if g.Priorities == nil {
		return nil, mdwerror.New("grammar has no priority table").
			WithCode(mdwerror.CodeInvalidGrammar).
			WithOperation("engine.New").
			WithDetail("grammar", g.Name)
	}
	if handlers == nil {
		return nil, mdwerror.New("no handlers configured").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("engine.New")
	}

	tok, err := lexer.New(g.Rules, lexer.Options{Logger: logger})
	if err != nil {
		return nil, mdwerror.Wrap(err, "invalid token rules").WithDetail("grammar", g.Name)
	}

	e := &Engine{
		grammar:   g,
		tokenizer: tok,
		parser:    parser.New(g.Priorities, ast.NewFinalizer(g.Classifier), parser.Options{Logger: logger}),
		interp: interp.New(handlers, root, interp.Options{
			Logger:     logger,
			MaxDepth:   opts.MaxDepth,
			Prototypes: opts.Prototypes,
		}),
		maxInputLength: opts.MaxInputLength,
		logger:         logger,
	}

	if opts.CacheSize > 0 {
		cache, err := lru.New(opts.CacheSize)
		if err != nil {
			return nil, mdwerror.Wrap(err, fmt.Sprintf("failed to create parse cache of size %d", opts.CacheSize)).
				WithCode(mdwerror.CodeInvalidInput).
				WithOperation("engine.New")
		}
		e.cache = cache
	}

	logger.Debug("engine ready", mdwlog.Fields{
		"rules":      len(g.Rules),
		"priorities": g.Priorities.Len(),
		"handlers":   handlers.Len(),
		"cache_size": opts.CacheSize,
	})
	return e, nil
}

// Grammar returns the grammar the engine was built with
func (e *Engine) Grammar() Grammar { return e.grammar }

// Interpreter returns the underlying interpreter
func (e *Engine) Interpreter() *interp.Interpreter { return e.interp }

// Root returns the root environment
func (e *Engine) Root() *interp.Env { return e.interp.Root() }

// Tokenize splits text into tokens without fixity tagging
func (e *Engine) Tokenize(text string) ([]lexer.Token, error) {
	if err := e.checkLength(text); err != nil {
		return nil, err
	}
	return e.tokenizer.Tokenize(text), nil
}

// Tokens splits text into tokens and tags prefix operators
func (e *Engine) Tokens(text string) ([]lexer.Token, error) {
	tokens, err := e.Tokenize(text)
	if err != nil {
		return nil, err
	}
	return lexer.TagFixity(tokens), nil
}

// Parse builds the syntax tree of text. Input without tokens fails with
// CodeEmptyInput.
func (e *Engine) Parse(text string) (ast.Node, error) {
	digest := Digest(text)
	if e.cache != nil {
		if cached, ok := e.cache.Get(digest); ok {
			e.logger.Trace("parse cache hit", mdwlog.Field("digest", digest))
			return cached.(ast.Node), nil
		}
	}

	tokens, err := e.Tokens(text)
	if err != nil {
		return nil, err
	}
	tree, err := e.parser.Parse(tokens)
	if err != nil {
		return nil, err
	}
	if e.cache != nil {
		e.cache.Add(digest, tree)
	}
	return tree, nil
}

// ParseWith parses text with an arbitrary finalizer, bypassing the cache
func ParseWith[T any](e *Engine, text string, fin parser.Finalizer[T]) (T, error) {
	tokens, err := e.Tokens(text)
	if err != nil {
		var zero T
		return zero, err
	}
	return parser.New(e.grammar.Priorities, fin, parser.Options{Logger: e.logger}).Parse(tokens)
}

// Evaluate evaluates a tree in the root environment
func (e *Engine) Evaluate(n ast.Node) (interp.Value, error) {
	return e.interp.Evaluate(n)
}

// Run parses and evaluates text. Input without tokens evaluates to null.
func (e *Engine) Run(text string) (*Result, error) {
	res := &Result{
		ID:     uuid.New().String(),
		Source: text,
		Digest: Digest(text),
	}
	timer := e.logger.StartTimer("run").WithField("id", res.ID)

	tree, err := e.Parse(text)
	switch {
	case mdwerror.HasCode(err, mdwerror.CodeEmptyInput):
		res.Duration = timer.Stop()
		return res, nil
	case err != nil:
		res.Duration = timer.Elapsed()
		e.logger.Debug("parse failed", mdwlog.Err(err).Merge(mdwlog.Field("id", res.ID)))
		return res, err
	}
	res.Tree = tree

	res.Value, err = e.interp.Evaluate(tree)
	if err != nil {
		res.Duration = timer.Elapsed()
		e.logger.Debug("evaluation failed", mdwlog.Err(err).Merge(mdwlog.Field("id", res.ID)))
		return res, err
	}
	res.Duration = timer.Stop()
	return res, nil
}

func (e *Engine) checkLength(text string) error {
	if e.maxInputLength > 0 && len(text) > e.maxInputLength {
		return mdwerror.Newf("input of %d bytes exceeds the limit of %d", len(text), e.maxInputLength).
			WithCode(mdwerror.CodeInputTooLong).
			WithOperation("engine.Tokenize").
			WithDetails(map[string]interface{}{
				"length": len(text),
				"max":    e.maxInputLength,
			})
	}
	return nil
}

// Digest returns the hex blake3 digest of text
func Digest(text string) string {
	sum := blake3.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
