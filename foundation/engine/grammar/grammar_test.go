package grammar

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mdwconfig "github.com/msto63/teacup/foundation/core/config"
	mdwerror "github.com/msto63/teacup/foundation/core/error"
	"github.com/msto63/teacup/foundation/engine/ast"
	"github.com/msto63/teacup/foundation/engine/lexer"
	"github.com/msto63/teacup/foundation/engine/parser"
)

const calcTOML = `
name = "calc"

[[tokens]]
kind = "number"
pattern = '\d+'

[[tokens]]
kind = "open"
literals = ["("]
keywords = ["begin"]

[[tokens]]
kind = "close"
literals = [")"]
keywords = ["end"]

[[tokens]]
kind = "infix"
pattern = '[-+*/]'

[[priorities]]
key = "type:open"
assoc = "prefix"
power = 5

[[priorities]]
key = "type:close"
assoc = "suffix"
power = 5

[[priorities]]
key = "+"
assoc = "left"
power = 505

[[priorities]]
key = "^"
assoc = "right"
power = 705

[[priorities]]
key = "."
assoc = "explicit"
left = 15005
right = 1004

[[priorities]]
key = "type:number"
assoc = "none"
power = 20005

[[shapes]]
pattern = '^[E_] \S+ E$'
shape = "operator"

[[shapes]]
signature = "_ ( E ) _"
shape = "group"
`

func TestParseAndCompile(t *testing.T) {
	doc, err := Parse([]byte(calcTOML), mdwconfig.FormatTOML)
	require.NoError(t, err)
	assert.Equal(t, "calc", doc.Name)
	assert.Len(t, doc.Tokens, 4)

	g, err := doc.Compile()
	require.NoError(t, err)
	assert.Equal(t, "calc", g.Name)
	require.Len(t, g.Rules, 6, "literals and keywords compile to separate rules")
	assert.Equal(t, lexer.KindOpen, g.Rules[1].Kind)
	assert.IsType(t, &lexer.Literals{}, g.Rules[1].Matcher)
	assert.IsType(t, &lexer.Keywords{}, g.Rules[2].Matcher)

	tests := []struct {
		key  string
		want parser.Priority
	}{
		{"type:open", parser.Prefix(5)},
		{"type:close", parser.Suffix(5)},
		{"+", parser.LeftAssoc(505)},
		{"^", parser.RightAssoc(705)},
		{".", parser.Priority{Left: 15005, Right: 1004}},
		{"type:number", parser.NonAssoc(20005)},
	}
	for _, tt := range tests {
		got, ok := g.Priorities.Get(tt.key)
		require.True(t, ok, tt.key)
		assert.Equal(t, tt.want, got, tt.key)
	}

	assert.Equal(t, ast.ShapeGroup, g.Classifier.Classify("_ ( E ) _"))
	assert.Equal(t, ast.ShapeOperator, g.Classifier.Classify("E + E"))
}

func TestCompiledRulesTokenize(t *testing.T) {
	doc, err := Parse([]byte(calcTOML), mdwconfig.FormatTOML)
	require.NoError(t, err)
	g, err := doc.Compile()
	require.NoError(t, err)

	tokens, err := lexer.Tokenize("begin 1 + (2) end", g.Rules)
	require.NoError(t, err)
	var texts []string
	for _, tok := range tokens {
		texts = append(texts, tok.Kind.String()+":"+tok.Text)
	}
	assert.Equal(t, []string{"open:begin", "number:1", "infix:+", "open:(", "number:2", "close:)", "close:end"}, texts)
}

func TestExportRoundTrip(t *testing.T) {
	doc, err := Parse([]byte(calcTOML), mdwconfig.FormatTOML)
	require.NoError(t, err)

	for _, format := range []mdwconfig.Format{mdwconfig.FormatTOML, mdwconfig.FormatYAML} {
		t.Run(format.String(), func(t *testing.T) {
			data, err := Export(doc, format)
			require.NoError(t, err)

			back, err := Parse(data, format)
			require.NoError(t, err)
			if diff := cmp.Diff(doc, back); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "calc.toml")
	require.NoError(t, os.WriteFile(path, []byte(calcTOML), 0o644))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "calc", doc.Name)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeNotFound))

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("name: bad\ntokens: []\n"), 0o644))
	_, err = Load(bad)
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeInvalidGrammar))
}

func TestValidate(t *testing.T) {
	number := TokenSpec{Kind: "number", Pattern: `\d+`}

	tests := []struct {
		name string
		doc  Document
	}{
		{"no tokens", Document{}},
		{"blank kind", Document{Tokens: []TokenSpec{{Pattern: "x"}}}},
		{"filler kind", Document{Tokens: []TokenSpec{{Kind: "filler", Pattern: "x"}}}},
		{"no matcher", Document{Tokens: []TokenSpec{{Kind: "word"}}}},
		{"pattern and literals", Document{Tokens: []TokenSpec{{Kind: "word", Pattern: "x", Literals: []string{"x"}}}}},
		{"priority without key", Document{Tokens: []TokenSpec{number}, Priorities: []PrioritySpec{{Assoc: "left", Power: 1}}}},
		{"unknown assoc", Document{Tokens: []TokenSpec{number}, Priorities: []PrioritySpec{{Key: "+", Assoc: "sideways"}}}},
		{"duplicate key", Document{Tokens: []TokenSpec{number}, Priorities: []PrioritySpec{
			{Key: "+", Assoc: "left", Power: 1},
			{Key: "+", Assoc: "right", Power: 2},
		}}},
		{"shape without matcher", Document{Tokens: []TokenSpec{number}, Shapes: []ShapeSpec{{Shape: "call"}}}},
		{"unknown shape", Document{Tokens: []TokenSpec{number}, Shapes: []ShapeSpec{{Signature: "E E", Shape: "blob"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.doc.Validate()
			require.Error(t, err)
			assert.True(t, mdwerror.HasCode(err, mdwerror.CodeInvalidGrammar))
		})
	}
}

func TestCompileRejectsBadPatterns(t *testing.T) {
	doc := Document{Tokens: []TokenSpec{{Kind: "word", Pattern: "("}}}
	_, err := doc.Compile()
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeInvalidGrammar))

	doc = Document{
		Tokens: []TokenSpec{{Kind: "word", Pattern: `\w+`}},
		Shapes: []ShapeSpec{{Pattern: "(", Shape: "call"}},
	}
	_, err = doc.Compile()
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeInvalidGrammar))
}
