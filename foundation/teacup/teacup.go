// File: teacup.go
// Title: Teacup Language
// Description: Assembles the Teacup language from its embedded grammar,
//              root environment and handler table.
// Author: msto63
// Version: v0.1.0
// Created: 2025-06-14
// Modified: 2025-06-18
//
// Change History:
// - 2025-06-14 v0.1.0: Initial implementation
// - 2025-06-18 v0.1.1: Grammar override, print output

// Package teacup is a small expression language built on the engine:
//
//	let sq(x) = x * x in
//	    for x in 1..10 when x % 2 == 0 do sq(x) end
//	end
//
// evaluates to [4, 16, 36, 64]. Everything is an expression; functions are
// closures, "and" and "or" short-circuit, and for loops are list
// comprehensions.
package teacup

import (
	_ "embed"
	"io"
	"os"

	mdwconfig "github.com/msto63/teacup/foundation/core/config"
	mdwlog "github.com/msto63/teacup/foundation/core/log"
	"github.com/msto63/teacup/foundation/engine"
	"github.com/msto63/teacup/foundation/engine/grammar"
	"github.com/msto63/teacup/foundation/engine/interp"
)

//go:embed grammar.toml
var grammarTOML []byte

// Options configures a Teacup engine
type Options struct {
	Logger         *mdwlog.Logger
	MaxInputLength int
	MaxDepth       int
	CacheSize      int
	// Output receives what print writes; defaults to stdout
	Output io.Writer
	// Grammar replaces the built-in token and priority tables. Its shape
	// rules must classify nodes the way the built-in grammar does.
	Grammar *engine.Grammar
}

// GrammarSource returns the embedded grammar document as TOML
func GrammarSource() []byte {
	return append([]byte(nil), grammarTOML...)
}

// Document returns the parsed built-in grammar document
func Document() (*grammar.Document, error) {
	return grammar.Parse(grammarTOML, mdwconfig.FormatTOML)
}

// Grammar compiles the built-in grammar
func Grammar() (engine.Grammar, error) {
	doc, err := Document()
	if err != nil {
		return engine.Grammar{}, err
	}
	return doc.Compile()
}

// New creates an engine for Teacup
func New(opts Options) (*engine.Engine, error) {
	var g engine.Grammar
	if opts.Grammar != nil {
		g = *opts.Grammar
	} else {
		var err error
		if g, err = Grammar(); err != nil {
			return nil, err
		}
	}

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	return engine.New(g, Handlers(), RootEnv(out), engine.Options{
		Logger:         opts.Logger,
		MaxInputLength: opts.MaxInputLength,
		MaxDepth:       opts.MaxDepth,
		CacheSize:      opts.CacheSize,
		Prototypes:     Prototypes(),
	})
}

// Run evaluates source with a default engine
func Run(source string) (interp.Value, error) {
	e, err := New(Options{})
	if err != nil {
		return nil, err
	}
	res, err := e.Run(source)
	if err != nil {
		return nil, err
	}
	return res.Value, nil
}
