package lexer

import (
	"testing"

	"github.com/deepnoodle-ai/retrograde/internal/token"
	"github.com/stretchr/testify/require"
)

func tokenize(t *testing.T, input string) []token.Token {
	t.Helper()
	l := New(input)
	var tokens []token.Token
	for {
		tok, err := l.Next()
		require.NoError(t, err)
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens
		}
	}
}

func TestBasicTokens(t *testing.T) {
	tests := []struct {
		input    string
		expected []token.Type
	}{
		{
			input: "var x = 1;",
			expected: []token.Type{
				token.VAR, token.IDENT, token.ASSIGN, token.NUMBER,
				token.SEMICOLON, token.EOF,
			},
		},
		{
			input: "for (k in obj) {}",
			expected: []token.Type{
				token.FOR, token.LPAREN, token.IDENT, token.IN, token.IDENT,
				token.RPAREN, token.LBRACE, token.RBRACE, token.EOF,
			},
		},
		{
			input: "a === b !== c",
			expected: []token.Type{
				token.IDENT, token.EQ_STRICT, token.IDENT,
				token.NOT_EQ_STRICT, token.IDENT, token.EOF,
			},
		},
		{
			input: "i++ < keys.length",
			expected: []token.Type{
				token.IDENT, token.PLUS_PLUS, token.LT, token.IDENT,
				token.PERIOD, token.IDENT, token.EOF,
			},
		},
		{
			input: "throw new TypeError('no')",
			expected: []token.Type{
				token.THROW, token.NEW, token.IDENT, token.LPAREN,
				token.STRING, token.RPAREN, token.EOF,
			},
		},
	}
	for _, tt := range tests {
		tokens := tokenize(t, tt.input)
		var types []token.Type
		for _, tok := range tokens {
			types = append(types, tok.Type)
		}
		require.Equal(t, tt.expected, types, "input: %s", tt.input)
	}
}

func TestNewlines(t *testing.T) {
	tokens := tokenize(t, "a\nb")
	require.Len(t, tokens, 4)
	require.Equal(t, token.IDENT, tokens[0].Type)
	require.Equal(t, token.NEWLINE, tokens[1].Type)
	require.Equal(t, token.IDENT, tokens[2].Type)
	require.Equal(t, 1, tokens[2].StartPosition.Line)
	require.Equal(t, 0, tokens[2].StartPosition.Column)
}

func TestComments(t *testing.T) {
	tokens := tokenize(t, "a // trailing\n/* block\ncomment */ b")
	var types []token.Type
	for _, tok := range tokens {
		types = append(types, tok.Type)
	}
	require.Equal(t, []token.Type{
		token.IDENT, token.NEWLINE, token.IDENT, token.EOF,
	}, types)
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input   string
		literal string
	}{
		{"42", "42"},
		{"1.5", "1.5"},
		{"0x2a", "0x2a"},
		{"1e3", "1e3"},
		{"2.5e-2", "2.5e-2"},
	}
	for _, tt := range tests {
		tokens := tokenize(t, tt.input)
		require.Equal(t, token.NUMBER, tokens[0].Type)
		require.Equal(t, tt.literal, tokens[0].Literal)
	}
}

func TestStrings(t *testing.T) {
	tokens := tokenize(t, `"hello \"world\""`)
	require.Equal(t, token.STRING, tokens[0].Type)
	require.Equal(t, `"hello \"world\""`, tokens[0].Literal)

	tokens = tokenize(t, `'single'`)
	require.Equal(t, token.STRING, tokens[0].Type)
}

func TestUnterminatedString(t *testing.T) {
	l := New(`"oops`)
	_, err := l.Next()
	require.Error(t, err)
}

func TestIllegalCharacter(t *testing.T) {
	l := New("a # b")
	tok, err := l.Next()
	require.NoError(t, err)
	require.Equal(t, token.IDENT, tok.Type)
	tok, err = l.Next()
	require.Error(t, err)
	require.Equal(t, token.ILLEGAL, tok.Type)
}

func TestGetLineText(t *testing.T) {
	l := New("var x = 1\nvar y = 2")
	var tok token.Token
	for i := 0; i < 6; i++ {
		tok, _ = l.Next()
	}
	require.Equal(t, token.VAR, tok.Type)
	require.Equal(t, "var y = 2", l.GetLineText(tok))
}
