package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hexen/internal/token"
)

func TestNextBasicTokens(t *testing.T) {
	input := `func add(a : i32, b : i32) : i32 = {
	return a + b
}`
	l := New(input)

	want := []token.TokenType{
		token.FUNC, token.IDENT, token.LPAREN,
		token.IDENT, token.COLON, token.IDENT, token.COMMA,
		token.IDENT, token.COLON, token.IDENT, token.RPAREN,
		token.COLON, token.IDENT, token.ASSIGN, token.LBRACE,
		token.RETURN, token.IDENT, token.PLUS, token.IDENT,
		token.RBRACE, token.EOF,
	}

	for i, tt := range want {
		tok := l.Next()
		require.Equalf(t, tt, tok.Type, "token %d: lexeme %q", i, tok.Lexeme)
	}
}

func TestNextNumberLiterals(t *testing.T) {
	l := New("42 3.14 1..5")

	tok := l.Next()
	require.Equal(t, token.INT, tok.Type)
	require.Equal(t, int64(42), tok.Literal)

	tok = l.Next()
	require.Equal(t, token.FLOAT, tok.Type)
	require.Equal(t, 3.14, tok.Literal)

	tok = l.Next()
	require.Equal(t, token.INT, tok.Type)
	require.Equal(t, int64(1), tok.Literal)

	tok = l.Next()
	require.Equal(t, token.DOT_DOT, tok.Type)

	tok = l.Next()
	require.Equal(t, token.INT, tok.Type)
	require.Equal(t, int64(5), tok.Literal)
}

func TestNextOperatorsAndDivision(t *testing.T) {
	input := `-> : .. ..= == != <= >= && || \ /`
	l := New(input)
	want := []token.TokenType{
		token.ARROW, token.COLON, token.DOT_DOT, token.DOT_DOT_EQ,
		token.EQ, token.NOT_EQ, token.LTE, token.GTE, token.AND, token.OR,
		token.BACKSLASH, token.SLASH, token.EOF,
	}
	for _, tt := range want {
		tok := l.Next()
		require.Equal(t, tt, tok.Type)
	}
}

func TestNextStringLiteral(t *testing.T) {
	l := New(`"hello\nworld"`)
	tok := l.Next()
	require.Equal(t, token.STRING, tok.Type)
	require.Equal(t, "hello\nworld", tok.Literal)
}

func TestNextSkipsLineComments(t *testing.T) {
	l := New("// a comment\nval x")
	tok := l.Next()
	require.Equal(t, token.VAL, tok.Type)
	tok = l.Next()
	require.Equal(t, token.IDENT, tok.Type)
	require.Equal(t, "x", tok.Lexeme)
}

func TestNextLabel(t *testing.T) {
	l := New("'outer while")
	tok := l.Next()
	require.Equal(t, token.APOSTROPHE, tok.Type)
	tok = l.Next()
	require.Equal(t, token.IDENT, tok.Type)
	require.Equal(t, "outer", tok.Lexeme)
	tok = l.Next()
	require.Equal(t, token.WHILE, tok.Type)
}
