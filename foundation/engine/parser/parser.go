// File: parser.go
// Title: Handle-Stack Precedence Parser
// Description: Shift/reduce parsing driven by binding-power pairs. The token
//              queue and the handle stack are deques; a nil operator marks
//              the sentinel on both ends of the input.
// Author: msto63
// Version: v0.1.0
// Created: 2025-06-03
// Modified: 2025-06-05
//
// Change History:
// - 2025-06-03 v0.1.0: Initial implementation
// - 2025-06-05 v0.1.1: Generic finalizer, deque based stack

package parser

import (
	"strings"

	"github.com/edwingeng/deque"

	mdwerror "github.com/msto63/teacup/foundation/core/error"
	mdwlog "github.com/msto63/teacup/foundation/core/log"
	"github.com/msto63/teacup/foundation/engine/lexer"
)

// Slot is an operand position of a handle. Set is false for absent operands.
type Slot[T any] struct {
	Value T
	Set   bool
}

// Present returns a filled slot
func Present[T any](v T) Slot[T] {
	return Slot[T]{Value: v, Set: true}
}

// Handle is a closed alternating sequence: Operands[0], Ops[0], Operands[1],
// Ops[1], ..., Operands[len(Ops)]. It always has one more operand slot than
// operators.
type Handle[T any] struct {
	Operands []Slot[T]
	Ops      []lexer.Token
}

// IsAtom reports whether the handle is a single operator with both operand
// slots absent, i.e. a bare token.
func (h Handle[T]) IsAtom() bool {
	return len(h.Ops) == 1 && !h.Operands[0].Set && !h.Operands[1].Set
}

// Signature derives the structural signature: "E" for a present operand,
// "_" for an absent one and the operator text for each operator, joined by
// single spaces.
func (h Handle[T]) Signature() string {
	var sb strings.Builder
	for i, slot := range h.Operands {
		if i > 0 {
			sb.WriteByte(' ')
			sb.WriteString(h.Ops[i-1].Text)
			sb.WriteByte(' ')
		}
		if slot.Set {
			sb.WriteByte('E')
		} else {
			sb.WriteByte('_')
		}
	}
	return sb.String()
}

// Finalizer turns a closed handle into a result node
type Finalizer[T any] func(h Handle[T]) T

// Options configures a Parser
type Options struct {
	Logger *mdwlog.Logger
}

// Parser parses token sequences with a fixed priority table and finalizer
type Parser[T any] struct {
	table    *Table
	finalize Finalizer[T]
	logger   *mdwlog.Logger
}

// New creates a parser
func New[T any](table *Table, finalize Finalizer[T], opts Options) *Parser[T] {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	return &Parser[T]{
		table:    table,
		finalize: finalize,
		logger:   opts.Logger.WithField("component", "parser"),
	}
}

// Parse is a convenience wrapper creating a Parser with default options
func Parse[T any](tokens []lexer.Token, table *Table, finalize Finalizer[T]) (T, error) {
	return New(table, finalize, Options{}).Parse(tokens)
}

type step int

const (
	stepDone step = iota
	stepOpen
	stepClose
	stepMerge
)

// frame is a handle under construction. The bottom frame holds the start
// sentinel as its only operator.
type frame[T any] struct {
	operands []Slot[T]
	ops      []*lexer.Token
}

func (f *frame[T]) last() *lexer.Token {
	return f.ops[len(f.ops)-1]
}

func (f *frame[T]) handle() Handle[T] {
	ops := make([]lexer.Token, len(f.ops))
	for i, op := range f.ops {
		ops[i] = *op
	}
	return Handle[T]{Operands: f.operands, Ops: ops}
}

// Parse reduces tokens to a single root node. Empty input fails with
// EMPTY_INPUT; a token without priority fails with UNRESOLVED_OPERATOR.
func (p *Parser[T]) Parse(tokens []lexer.Token) (T, error) {
	var zero T

	queue := deque.NewDeque()
	for i := range tokens {
		tok := tokens[i]
		queue.PushBack(&tok)
	}
	next := func() *lexer.Token {
		if queue.Empty() {
			return nil
		}
		tok := queue.Front().(*lexer.Token)
		queue.PopFront()
		return tok
	}

	stack := deque.NewDeque()
	current := &frame[T]{operands: []Slot[T]{{}}, ops: []*lexer.Token{nil}}
	var middle Slot[T]
	var left *lexer.Token
	right := next()
	reductions := 0

	for {
		s, err := p.order(left, right)
		if err != nil {
			p.logger.Debug("parse failed", mdwlog.Fields{"error": err.Error(), "reductions": reductions})
			return zero, err
		}

		switch s {
		case stepDone:
			if !middle.Set {
				return zero, mdwerror.New("nothing to parse").
					WithCode(mdwerror.CodeEmptyInput).
					WithOperation("parser.Parse")
			}
			p.logger.Trace("parse completed", mdwlog.Fields{"tokens": len(tokens), "reductions": reductions})
			return middle.Value, nil

		case stepOpen:
			stack.PushBack(current)
			current = &frame[T]{operands: []Slot[T]{middle}, ops: []*lexer.Token{right}}
			middle = Slot[T]{}
			left = right
			right = next()

		case stepClose:
			current.operands = append(current.operands, middle)
			h := current.handle()
			if p.logger.IsLevelEnabled(mdwlog.LevelTrace) {
				p.logger.Trace("handle closed", mdwlog.Fields{"signature": h.Signature()})
			}
			middle = Present(p.finalize(h))
			reductions++
			current = stack.PopBack().(*frame[T])
			left = current.last()

		case stepMerge:
			current.operands = append(current.operands, middle)
			current.ops = append(current.ops, right)
			middle = Slot[T]{}
			left = right
			right = next()
		}
	}
}

func (p *Parser[T]) order(left, right *lexer.Token) (step, error) {
	switch {
	case left == nil && right == nil:
		return stepDone, nil
	case left == nil:
		return stepOpen, nil
	case right == nil:
		return stepClose, nil
	}

	lp, err := p.table.Lookup(*left)
	if err != nil {
		return stepDone, err
	}
	rp, err := p.table.Lookup(*right)
	if err != nil {
		return stepDone, err
	}

	switch {
	case rp.Right > lp.Left:
		return stepOpen, nil
	case rp.Right < lp.Left:
		return stepClose, nil
	default:
		return stepMerge, nil
	}
}
