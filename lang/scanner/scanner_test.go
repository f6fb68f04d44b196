package scanner_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/mna/velox/lang/scanner"
	"github.com/mna/velox/lang/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	cases := []struct {
		src  string
		want []token.Type
	}{
		{"", []token.Type{token.EOF}},
		{"()", []token.Type{token.LEFT_PAREN, token.RIGHT_PAREN, token.EOF}},
		{"{},.-+;*/", []token.Type{
			token.LEFT_BRACE, token.RIGHT_BRACE, token.COMMA, token.DOT,
			token.MINUS, token.PLUS, token.SEMICOLON, token.STAR, token.SLASH,
			token.EOF,
		}},
		{"! != = == < <= > >=", []token.Type{
			token.BANG, token.BANG_EQUAL, token.EQUAL, token.EQUAL_EQUAL,
			token.LESS, token.LESS_EQUAL, token.GREATER, token.GREATER_EQUAL,
			token.EOF,
		}},
		{"// just a comment", []token.Type{token.EOF}},
		{"1 // comment\n2", []token.Type{token.NUMBER, token.NUMBER, token.EOF}},
		{`"hi" 12 12.5 foo _bar`, []token.Type{
			token.STRING, token.NUMBER, token.NUMBER,
			token.IDENTIFIER, token.IDENTIFIER, token.EOF,
		}},
		{"and class else false fun for if nil or print return super this true var while", []token.Type{
			token.AND, token.CLASS, token.ELSE, token.FALSE, token.FUN,
			token.FOR, token.IF, token.NIL, token.OR, token.PRINT,
			token.RETURN, token.SUPER, token.THIS, token.TRUE, token.VAR,
			token.WHILE, token.EOF,
		}},
		{"orchid android classy", []token.Type{
			token.IDENTIFIER, token.IDENTIFIER, token.IDENTIFIER, token.EOF,
		}},
		{"1.", []token.Type{token.NUMBER, token.DOT, token.EOF}},
		{".5", []token.Type{token.DOT, token.NUMBER, token.EOF}},
	}

	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			toks := scanner.ScanAll([]byte(c.src), func(line int, msg string) {
				t.Errorf("unexpected scan error at line %d: %s", line, msg)
			})
			types := make([]token.Type, len(toks))
			for i, tok := range toks {
				types[i] = tok.Type
			}
			require.Equal(t, c.want, types)
		})
	}
}

func TestScanLiterals(t *testing.T) {
	toks := scanner.ScanAll([]byte(`"foo" 12.5 0 007`), nil)
	require.Len(t, toks, 5)
	assert.Equal(t, "foo", toks[0].Str)
	assert.Equal(t, `"foo"`, toks[0].Lexeme)
	assert.Equal(t, 12.5, toks[1].Num)
	assert.Equal(t, 0.0, toks[2].Num)
	assert.Equal(t, 7.0, toks[3].Num)
	assert.Equal(t, "007", toks[3].Lexeme)
}

func TestScanLines(t *testing.T) {
	src := "one\ntwo\n\"a\nmulti\nline\"\nthree"
	toks := scanner.ScanAll([]byte(src), nil)
	require.Len(t, toks, 5)

	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, 2, toks[1].Line)
	// a multi-line string is reported at the line it ends on
	assert.Equal(t, 5, toks[2].Line)
	assert.Equal(t, "a\nmulti\nline", toks[2].Str)
	assert.Equal(t, 6, toks[3].Line)
	assert.Equal(t, token.EOF, toks[4].Type)
	assert.Equal(t, 6, toks[4].Line)
}

func TestScanErrors(t *testing.T) {
	t.Run("unexpected character", func(t *testing.T) {
		var errs []string
		toks := scanner.ScanAll([]byte("@#1"), func(line int, msg string) {
			errs = append(errs, fmt.Sprintf("%d: %s", line, msg))
		})
		// scanning continues past the bad bytes
		require.Len(t, toks, 2)
		assert.Equal(t, token.NUMBER, toks[0].Type)
		require.Equal(t, []string{"1: Unexpected character.", "1: Unexpected character."}, errs)
	})

	t.Run("unterminated string", func(t *testing.T) {
		var errs []string
		toks := scanner.ScanAll([]byte("1 \"abc"), func(line int, msg string) {
			errs = append(errs, msg)
		})
		// no token is emitted for the unterminated string
		require.Len(t, toks, 2)
		assert.Equal(t, token.NUMBER, toks[0].Type)
		assert.Equal(t, token.EOF, toks[1].Type)
		require.Equal(t, []string{"Unterminated string."}, errs)
	})
}

// Concatenating the lexemes of all emitted tokens yields the input with
// whitespace and comments elided.
func TestLexemeRoundtrip(t *testing.T) {
	srcs := []string{
		`print 1 + 2 * 3;`,
		"var a = \"foo\";\nvar b = a; // trailing comment\n",
		"fun f(a, b) { return a < b; }",
		"class A < B { init() { this.x = super.y; } }",
	}
	for _, src := range srcs {
		t.Run(src, func(t *testing.T) {
			toks := scanner.ScanAll([]byte(src), nil)

			var sb strings.Builder
			for _, tok := range toks {
				sb.WriteString(tok.Lexeme)
			}

			stripped := src
			for _, ws := range []string{" ", "\t", "\r", "\n"} {
				stripped = strings.ReplaceAll(stripped, ws, "")
			}
			if i := strings.Index(stripped, "//"); i >= 0 {
				stripped = stripped[:i]
			}
			require.Equal(t, stripped, sb.String())
		})
	}
}
