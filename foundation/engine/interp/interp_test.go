package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mdwerror "github.com/msto63/teacup/foundation/core/error"
	"github.com/msto63/teacup/foundation/engine/ast"
	"github.com/msto63/teacup/foundation/engine/lexer"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Value
	}{
		{"number", "42", 42.0},
		{"precedence", "1 + 2 * 3", 7.0},
		{"left associative", "10 - 4 - 3", 3.0},
		{"double prefix", "- - 3", 3.0},
		{"infix then prefix", "3 - - 3", 6.0},
		{"group", "(1 + 2) * 3", 9.0},
		{"sequence returns last", "1; 2; 3", 3.0},
		{"lambda call", "((a, b) -> a * b)(3, 4)", 12.0},
		{"let", "let x = 2 in x * x end", 4.0},
		{"let shadows", "let x = 1 in (let x = 2 in x end) end", 2.0},
		{"let function", "let sq(n) = n * n in sq(5) end", 25.0},
		{"recursive function", "let f(n) = n < 1 || f(n - 1) in f(3) end", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, tt.input, testRoot())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInnerBindingsDoNotLeak(t *testing.T) {
	got, err := run(t, "let x = 1 in (let x = 2 in x end); x end", testRoot())
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)

	_, err = run(t, "(let y = 1 in y end); y", testRoot())
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeUndefinedName))
}

func TestSiblingDeclarationsUseOuterScope(t *testing.T) {
	root := testRoot()
	root.Define("x", 10.0)

	got, err := run(t, "let x = 1, y = x in y end", root)
	require.NoError(t, err)
	assert.Equal(t, 10.0, got)
}

func TestLaterHandlerWins(t *testing.T) {
	n := parse(t, "1 + 2")
	constant := func(v Value) HandlerFunc {
		return func(*Evaluator, ast.Node, *Env, []ast.Node) (Value, error) { return v, nil }
	}

	h := NewHandlers().
		Register("broad", ast.MustSigRegexp(`^E \S+ E$`), constant("broad")).
		Register("specific", ast.Sig("E + E"), constant("specific"))
	got, err := Evaluate(n, testRoot(), h)
	require.NoError(t, err)
	assert.Equal(t, "specific", got)

	h = NewHandlers().
		Register("specific", ast.Sig("E + E"), constant("specific")).
		Register("broad", ast.MustSigRegexp(`^E \S+ E$`), constant("broad"))
	got, err = Evaluate(n, testRoot(), h)
	require.NoError(t, err)
	assert.Equal(t, "broad", got, "a broad pattern registered last shadows the specific one")

	found, ok := h.Lookup(n)
	require.True(t, ok)
	assert.Equal(t, "broad", found.Name)
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, "specific", h.All()[0].Name)
}

func TestUnknownNodeShape(t *testing.T) {
	_, err := run(t, "(1", testRoot())
	require.Error(t, err)
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeUnknownNodeShape))

	e, ok := mdwerror.As(err)
	require.True(t, ok)
	sig, _ := e.Detail("signature")
	assert.Equal(t, "_ ( E", sig)
}

func TestUndefinedName(t *testing.T) {
	_, err := run(t, "1 + nope", testRoot())
	require.Error(t, err)
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeUndefinedName))
	assert.Contains(t, err.Error(), "nope")
}

func TestLazyShortCircuit(t *testing.T) {
	got, err := run(t, "true || nope", testRoot())
	require.NoError(t, err)
	assert.Equal(t, true, got)

	_, err = run(t, "false || nope", testRoot())
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeUndefinedName))
}

func TestThunksAreNotMemoized(t *testing.T) {
	calls := 0
	root := testRoot()
	root.Define("tick", NewBuiltin("tick", func(*Evaluator, []Value) (Value, error) {
		calls++
		return float64(calls), nil
	}))
	root.Define("twice", NewLazyBuiltin("twice", func(_ *Evaluator, args []Value) (Value, error) {
		if _, err := Force(args[0]); err != nil {
			return nil, err
		}
		return Force(args[0])
	}))

	got, err := run(t, "twice(tick())", root)
	require.NoError(t, err)
	assert.Equal(t, 2.0, got)
	assert.Equal(t, 2, calls)
}

func TestArityIsPermissive(t *testing.T) {
	got, err := run(t, "((a, b) -> b)(1)", testRoot())
	require.NoError(t, err)
	assert.True(t, IsMissing(got), "unsupplied parameter binds Missing")

	got, err = run(t, "((a, b) -> b)(1, 2, 3)", testRoot())
	require.NoError(t, err)
	assert.Equal(t, 2.0, got, "extra arguments are ignored")
}

func TestNotCallable(t *testing.T) {
	root := testRoot()
	root.Define("x", 1.0)
	_, err := run(t, "x(2)", root)
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeNotCallable))
}

func TestInvalidDeclaration(t *testing.T) {
	_, err := run(t, "let 1 = 2 in 3 end", testRoot())
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeInvalidDeclaration))

	_, err = run(t, "let x + 1 in 3 end", testRoot())
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeInvalidDeclaration))

	_, err = run(t, "(1 -> 2)", testRoot())
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeInvalidDeclaration))
}

func TestBindVariable(t *testing.T) {
	env := NewEnv(nil)
	minus := ast.NewLeaf(lexer.Token{Kind: lexer.KindPrefix, Text: "-"})
	plus := ast.NewLeaf(lexer.Token{Kind: lexer.KindInfix, Text: "+"})
	word := ast.NewLeaf(lexer.Token{Kind: lexer.KindWord, Text: "x"})

	require.NoError(t, BindVariable(env, minus, 1.0))
	require.NoError(t, BindVariable(env, plus, 2.0))
	require.NoError(t, BindVariable(env, word, 3.0))
	assert.Equal(t, []string{"+", "prefix:-", "x"}, env.Names())

	num := ast.NewLeaf(lexer.Token{Kind: lexer.KindNumber, Text: "1"})
	assert.True(t, mdwerror.HasCode(BindVariable(env, num, 1.0), mdwerror.CodeInvalidDeclaration))
	assert.True(t, mdwerror.HasCode(BindVariable(env, nil, 1.0), mdwerror.CodeInvalidDeclaration))
}

func TestRecursionLimit(t *testing.T) {
	in := New(testHandlers(), testRoot(), Options{MaxDepth: 5})
	_, err := in.Evaluate(parse(t, "1 + (2 + (3 + (4 + (5 + 6))))"))
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeRecursionLimit))

	got, err := in.Evaluate(parse(t, "1 + 2"))
	require.NoError(t, err)
	assert.Equal(t, 3.0, got, "depth is tracked per evaluation")

	_, err = run(t, "let f(n) = f(n) in f(1) end", testRoot())
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeRecursionLimit))
}

func TestEvalNilNode(t *testing.T) {
	_, err := New(testHandlers(), nil, Options{}).Evaluate(nil)
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeUnknownNodeShape))
}

func TestApply(t *testing.T) {
	ev := &Evaluator{in: New(testHandlers(), testRoot(), Options{})}
	plus, _ := testRoot().Lookup("+")
	got, err := ev.Apply(plus, 1.0, 2.0)
	require.NoError(t, err)
	assert.Equal(t, 3.0, got)

	or, _ := testRoot().Lookup("||")
	got, err = ev.Apply(or, false, "fallback")
	require.NoError(t, err)
	assert.Equal(t, "fallback", got, "lazy callees receive constant thunks")

	_, err = ev.Apply("text")
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeNotCallable))
}

func TestGetField(t *testing.T) {
	length := NewMethod("length", func(_ *Evaluator, args []Value) (Value, error) {
		return float64(len(args[0].([]Value))), nil
	})
	abs := NewBuiltin("abs", func(_ *Evaluator, args []Value) (Value, error) { return args[0], nil })
	size := NewProperty("size", func(recv Value) (Value, error) {
		return float64(len(recv.([]Value))), nil
	})
	in := New(testHandlers(), testRoot(), Options{
		Prototypes: map[string]*Object{"list": NewObject("list", map[string]Value{"length": length, "size": size})},
	})
	ev := &Evaluator{in: in}
	list := []Value{1.0, 2.0, 3.0}

	v, err := ev.GetField(list, 1.0)
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)

	v, err = ev.GetField(list, 7.0)
	require.NoError(t, err)
	assert.Nil(t, v, "out of range index reads null")

	v, err = ev.GetField("héllo", 1.0)
	require.NoError(t, err)
	assert.Equal(t, "é", v)

	m, err := ev.GetField(list, "length")
	require.NoError(t, err)
	bound, ok := m.(*BoundMethod)
	require.True(t, ok)
	assert.Equal(t, list, bound.Receiver())
	assert.Equal(t, "list.length", bound.Name())
	n, err := ev.Apply(m)
	require.NoError(t, err)
	assert.Equal(t, 3.0, n)

	v, err = ev.GetField(list, "size")
	require.NoError(t, err)
	assert.Equal(t, 3.0, v, "properties are computed on access")

	math := NewObject("Math", map[string]Value{"abs": abs, "pi": 3.14})
	v, err = ev.GetField(math, "pi")
	require.NoError(t, err)
	assert.Equal(t, 3.14, v)
	v, err = ev.GetField(math, "abs")
	require.NoError(t, err)
	assert.Same(t, abs, v, "plain builtins ignore the receiver")

	_, err = ev.GetField(math, "tau")
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeUndefinedName))
	_, err = ev.GetField(list, "nope")
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeUndefinedName))
	_, err = ev.GetField(nil, "x")
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeTypeMismatch))
}
