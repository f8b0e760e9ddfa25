package lexer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagFixity(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Kind
	}{
		{"double negation", "- - 3", []Kind{KindPrefix, KindPrefix, KindNumber}},
		{"binary then unary", "3 - - 3", []Kind{KindNumber, KindInfix, KindPrefix, KindNumber}},
		{"after open", "(-x)", []Kind{KindOpen, KindPrefix, KindWord, KindClose}},
		{"after close", "(x) - 1", []Kind{KindOpen, KindWord, KindClose, KindInfix, KindNumber}},
		{"after keyword open", "if -x then 1 end", []Kind{KindOpen, KindPrefix, KindWord, KindMiddle, KindNumber, KindClose}},
		{"word operator", "not a or not b", []Kind{KindPrefix, KindWord, KindInfix, KindPrefix, KindWord}},
		{"after separator", "a, -b", []Kind{KindWord, KindInfix, KindPrefix, KindWord}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input, testRules(t))
			require.NoError(t, err)

			tagged := TagFixity(tokens)
			got := make([]Kind, len(tagged))
			for i, tok := range tagged {
				got[i] = tok.Kind
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("TagFixity(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestTagFixityDoesNotModifyInput(t *testing.T) {
	tokens, err := Tokenize("-1", testRules(t))
	require.NoError(t, err)

	tagged := TagFixity(tokens)
	assert.Equal(t, KindInfix, tokens[0].Kind)
	assert.Equal(t, KindPrefix, tagged[0].Kind)
}
