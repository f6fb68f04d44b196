package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypeString(t *testing.T) {
	for typ := Type(0); typ < maxType; typ++ {
		if typ.String() == "" {
			t.Errorf("missing string representation of type %d", typ)
		}
	}
}

func TestLookupKw(t *testing.T) {
	for typ := Type(0); typ < maxType; typ++ {
		expect := typ >= kwStart && typ <= kwEnd
		val := LookupKw(typ.String())
		if expect {
			require.Equal(t, typ, val)
		} else {
			require.Equal(t, IDENTIFIER, val)
		}
	}
}

func TestGoString(t *testing.T) {
	require.Equal(t, "'('", LEFT_PAREN.GoString())
	require.Equal(t, "'<='", LESS_EQUAL.GoString())
	require.Equal(t, "while", WHILE.GoString())
	require.Equal(t, "end of file", EOF.GoString())
}

func TestLiteral(t *testing.T) {
	tok := Token{Type: STRING, Lexeme: `"abc"`, Str: "abc", Line: 1}
	require.Equal(t, "abc", tok.Literal())

	tok = Token{Type: NUMBER, Lexeme: "12.5", Num: 12.5, Line: 1}
	require.Equal(t, "12.5", tok.Literal())

	tok = Token{Type: NUMBER, Lexeme: "3", Num: 3, Line: 1}
	require.Equal(t, "3", tok.Literal())

	tok = Token{Type: IDENTIFIER, Lexeme: "abc", Line: 1}
	require.Equal(t, "", tok.Literal())
}

func TestTokenString(t *testing.T) {
	tok := Token{Type: NUMBER, Lexeme: "1", Num: 1, Line: 1}
	require.Equal(t, "number literal 1 1", tok.String())

	tok = Token{Type: STRING, Lexeme: `"a"`, Str: "a", Line: 1}
	require.Equal(t, `string literal "a"`, tok.String())

	tok = Token{Type: IDENTIFIER, Lexeme: "abc", Line: 1}
	require.Equal(t, "identifier abc", tok.String())

	tok = Token{Type: PLUS, Lexeme: "+", Line: 1}
	require.Equal(t, "'+'", tok.String())

	tok = Token{Type: WHILE, Lexeme: "while", Line: 1}
	require.Equal(t, "while", tok.String())

	tok = Token{Type: EOF, Line: 1}
	require.Equal(t, "end of file", tok.String())
}
