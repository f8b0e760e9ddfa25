package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mdwlog "github.com/msto63/teacup/foundation/core/log"
	"github.com/msto63/teacup/foundation/engine"
	"github.com/msto63/teacup/foundation/engine/ast"
	"github.com/msto63/teacup/foundation/teacup"
)

func newEngine(t *testing.T) *engine.Engine {
	t.Helper()
	e, err := teacup.New(teacup.Options{Logger: mdwlog.NewNop()})
	require.NoError(t, err)
	return e
}

func TestBracketed(t *testing.T) {
	e := newEngine(t)

	tests := []struct {
		source string
		want   string
	}{
		{"a - b - c", "((a - b) - c)"},
		{"a + b - c + d", "(((a + b) - c) + d)"},
		{"a ^ b ^ c", "(a ^ (b ^ c))"},
		{"a = b = c", "(a = (b = c))"},
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"1 * 2 + 3", "((1 * 2) + 3)"},
		{"- - 3", "(- (- 3))"},
		{"3 - - 3", "(3 - (- 3))"},
		{"a, b, c", "(a , b , c)"},
		{"f(x)", "(f ( x ))"},
		{"f()", "(f ( ))"},
		{"a.b(c)", "((a . b) ( c ))"},
		{"x", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			got, err := engine.ParseWith(e, tt.source, Bracketed)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSignatures(t *testing.T) {
	e := newEngine(t)

	got, err := engine.ParseWith(e, "1 + 2 * 3", Signatures)
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"E * E", "E + E"}, got); diff != "" {
		t.Errorf("signatures mismatch (-want +got):\n%s", diff)
	}

	got, err = engine.ParseWith(e, "if a then f(b) end", Signatures)
	require.NoError(t, err)
	assert.Equal(t, []string{"E ( E ) _", "_ if E then E end _"}, got)

	got, err = engine.ParseWith(e, "x", Signatures)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTree(t *testing.T) {
	e := newEngine(t)
	fin := NewTreeFinalizer(e.Grammar().Classifier)

	tree, err := engine.ParseWith(e, "1 + 2 * 3", fin)
	require.NoError(t, err)

	assert.Equal(t, ast.ShapeOperator, tree.Shape)
	require.Len(t, tree.Children, 2)
	assert.True(t, tree.Children[0].Leaf)

	want := "E + E [operator]\n" +
		"├── 1\n" +
		"└── E * E [operator]\n" +
		"    ├── 2\n" +
		"    └── 3"
	assert.Equal(t, want, Plain(tree))
}

func TestTree_Lists(t *testing.T) {
	e := newEngine(t)
	fin := NewTreeFinalizer(e.Grammar().Classifier)

	tree, err := engine.ParseWith(e, "a, b, c", fin)
	require.NoError(t, err)
	assert.Equal(t, ", list [sequence]\n├── a\n├── b\n└── c", Plain(tree))

	tree, err = engine.ParseWith(e, "a\nb", fin)
	require.NoError(t, err)
	assert.Equal(t, `\n list [sequence]`, Plain(tree)[:len(`\n list [sequence]`)])
}

func TestTree_UnknownShape(t *testing.T) {
	e := newEngine(t)
	fin := NewTreeFinalizer(e.Grammar().Classifier)

	tree, err := engine.ParseWith(e, "{a}", fin)
	require.NoError(t, err)
	assert.Equal(t, ast.ShapeOther, tree.Shape)
	assert.Contains(t, Plain(tree), "[other]")
}

func TestStyled(t *testing.T) {
	e := newEngine(t)
	fin := NewTreeFinalizer(e.Grammar().Classifier)

	tree, err := engine.ParseWith(e, `f("tea", 2)`, fin)
	require.NoError(t, err)

	out := Styled(tree)
	for _, part := range []string{"E ( E ) _", "[call]", "f", `"tea"`, "2"} {
		assert.Contains(t, out, part)
	}
}
