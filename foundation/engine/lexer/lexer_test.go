package lexer

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mdwerror "github.com/msto63/teacup/foundation/core/error"
)

func mustLiterals(t *testing.T, words ...string) *Literals {
	t.Helper()
	l, err := NewLiterals(words...)
	require.NoError(t, err)
	return l
}

func mustKeywords(t *testing.T, words ...string) *Keywords {
	t.Helper()
	k, err := NewKeywords(words...)
	require.NoError(t, err)
	return k
}

// testRules mirrors the bundled expression language closely enough to
// exercise overlap between keywords and identifiers.
func testRules(t *testing.T) []Rule {
	t.Helper()
	return []Rule{
		{KindNumber, MustPattern(`\d+(?:\.\d+)?(?:[eE][+-]?\d+)?`)},
		{KindOpen, mustLiterals(t, "(", "[", "{")},
		{KindOpen, mustKeywords(t, "let", "for", "if", "begin")},
		{KindMiddle, mustKeywords(t, "then", "elif", "else", "in", "do", "when")},
		{KindClose, mustLiterals(t, ")", "]", "}")},
		{KindClose, mustKeywords(t, "end")},
		{KindInfix, mustLiterals(t, ",", ";", "\n")},
		{KindInfix, MustPattern(`[!@$%^&*|/?.:~+=<>-]+`)},
		{KindInfix, mustKeywords(t, "and", "or", "not")},
		{KindWord, MustPattern(`\w+`)},
		{KindString, MustPattern(`"(?:\\.|[^"\\])*"`)},
		{KindComment, MustPattern(`#[^\n]*`)},
	}
}

type kt struct {
	Kind Kind
	Text string
}

func kinds(tokens []Token) []kt {
	out := make([]kt, len(tokens))
	for i, tok := range tokens {
		out[i] = kt{tok.Kind, tok.Text}
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []kt
	}{
		{
			name:  "arithmetic",
			input: "1 + 2.5e3",
			want:  []kt{{KindNumber, "1"}, {KindInfix, "+"}, {KindNumber, "2.5e3"}},
		},
		{
			name:  "keyword before identifier",
			input: "if iffy then x end",
			want: []kt{
				{KindOpen, "if"}, {KindWord, "iffy"}, {KindMiddle, "then"},
				{KindWord, "x"}, {KindClose, "end"},
			},
		},
		{
			name:  "range is not a decimal",
			input: "1..5",
			want:  []kt{{KindNumber, "1"}, {KindInfix, ".."}, {KindNumber, "5"}},
		},
		{
			name:  "comments are dropped",
			input: "x # the answer\ny",
			want:  []kt{{KindWord, "x"}, {KindInfix, "\n"}, {KindWord, "y"}},
		},
		{
			name:  "strings keep their quotes",
			input: `"a \"b\" c" + x`,
			want:  []kt{{KindString, `"a \"b\" c"`}, {KindInfix, "+"}, {KindWord, "x"}},
		},
		{
			name:  "operator runs",
			input: "f->x<=y",
			want: []kt{
				{KindWord, "f"}, {KindInfix, "->"}, {KindWord, "x"},
				{KindInfix, "<="}, {KindWord, "y"},
			},
		},
		{
			name:  "empty",
			input: "",
			want:  []kt{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input, testRules(t))
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, kinds(tokens)); diff != "" {
				t.Errorf("Tokenize(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestTokenOffsets(t *testing.T) {
	input := "let x = 10\n  in x end"
	tokens, err := Tokenize(input, testRules(t))
	require.NoError(t, err)

	for _, tok := range tokens {
		assert.Equal(t, tok.Text, input[tok.Start:tok.End], "offsets of %s", tok)
	}

	in := tokens[5]
	require.Equal(t, "in", in.Text)
	assert.Equal(t, 2, in.Line)
	assert.Equal(t, 3, in.Column)
}

func TestScanCoversInput(t *testing.T) {
	tz, err := New(testRules(t), Options{})
	require.NoError(t, err)

	input := "a § b # note\n\"s\""
	pieces := tz.Scan(input)

	var sb strings.Builder
	end := 0
	for _, p := range pieces {
		assert.Equal(t, end, p.Start, "pieces must be contiguous")
		end = p.End
		sb.WriteString(p.Text)
	}
	assert.Equal(t, input, sb.String())
	assert.Equal(t, len(input), end)
}

func TestUnmatchedCharactersAreDroppedSilently(t *testing.T) {
	tests := []struct {
		with    string
		without string
	}{
		{"1 § 2", "1  2"},
		{"x€+y", "x+y"},
		{"let a = 1 in a ` end", "let a = 1 in a  end"},
	}

	for _, tt := range tests {
		t.Run(tt.with, func(t *testing.T) {
			got, err := Tokenize(tt.with, testRules(t))
			require.NoError(t, err)
			want, err := Tokenize(tt.without, testRules(t))
			require.NoError(t, err)

			if diff := cmp.Diff(kinds(want), kinds(got)); diff != "" {
				t.Errorf("token identities differ (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFirstRuleWins(t *testing.T) {
	rules := []Rule{
		{KindWord, MustPattern(`[a-z]+`)},
		{KindOpen, mustKeywords(t, "let")},
	}
	tokens, err := Tokenize("let", rules)
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, KindWord, tokens[0].Kind, "an earlier rule claims overlapping text")
}

func TestKeywordBoundaries(t *testing.T) {
	k := mustKeywords(t, "in", "int")

	tests := []struct {
		input string
		pos   int
		want  int
	}{
		{"in x", 0, 2},
		{"int x", 0, 3},
		{"inx", 0, 0},
		{"xin", 1, 0},
		{"(in)", 1, 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, k.Match(tt.input, tt.pos), "Match(%q, %d)", tt.input, tt.pos)
	}
}

func TestPatternLeadingBoundary(t *testing.T) {
	p := MustPattern(`\bx\w*`)

	tests := []struct {
		input string
		pos   int
		want  int
	}{
		{"xy", 0, 2},
		{"(xy)", 1, 2},
		{"axy", 1, 0},
		{"_xy", 1, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, p.Match(tt.input, tt.pos), "Match(%q, %d)", tt.input, tt.pos)
	}
	assert.Equal(t, 2, MustPattern(`x\w*`).Match("axy", 1), "without \\b the preceding byte is ignored")
}

func TestLiteralsPreferLongest(t *testing.T) {
	l := mustLiterals(t, "<", "<=", "<==")
	assert.Equal(t, 3, l.Match("<== x", 0))
	assert.Equal(t, 2, l.Match("<= x", 0))
	assert.Equal(t, 0, l.Match("> x", 0))
}

func TestConfigurationErrors(t *testing.T) {
	_, err := NewPattern(`(unclosed`)
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeInvalidGrammar))

	_, err = NewPattern("")
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeInvalidGrammar))

	_, err = NewLiterals("", "")
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeInvalidGrammar))

	_, err = New(nil, Options{})
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeInvalidGrammar))

	_, err = New([]Rule{{Kind: KindWord}}, Options{})
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeInvalidGrammar))

	assert.Panics(t, func() { MustPattern(`[`) })
}
