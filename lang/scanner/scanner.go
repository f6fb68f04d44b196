// Package scanner implements the lexical scanner that turns source text into
// the ordered sequence of tokens consumed by the parser.
package scanner

import (
	"strconv"

	"github.com/mna/velox/lang/token"
)

// Scanner tokenizes a source buffer. Lexical errors are reported through the
// error handler and never stop the scan; the token stream is always produced,
// terminated by an EOF token.
type Scanner struct {
	// immutable state after Init
	src []byte
	err func(line int, msg string)

	// mutable scanning state
	start   int // byte offset of the token being scanned
	current int // byte offset of the next unread byte
	line    int // 1-based, incremented on newlines
}

// Init initializes the scanner to tokenize a new source buffer. The error
// handler may be nil, in which case lexical errors are silently dropped.
func (s *Scanner) Init(src []byte, errHandler func(line int, msg string)) {
	s.src = src
	s.err = errHandler
	s.start = 0
	s.current = 0
	s.line = 1
}

// ScanAll is a helper that tokenizes the entire source buffer and returns the
// tokens, including the trailing EOF token.
func ScanAll(src []byte, errHandler func(line int, msg string)) []token.Token {
	var s Scanner
	s.Init(src, errHandler)

	var toks []token.Token
	for {
		tok := s.Scan()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

// Scan returns the next token in the source buffer. Once the buffer is
// exhausted it returns an EOF token on every call.
func (s *Scanner) Scan() token.Token {
	for !s.atEnd() {
		s.start = s.current
		c := s.advance()

		switch c {
		case '(':
			return s.make(token.LEFT_PAREN)
		case ')':
			return s.make(token.RIGHT_PAREN)
		case '{':
			return s.make(token.LEFT_BRACE)
		case '}':
			return s.make(token.RIGHT_BRACE)
		case ',':
			return s.make(token.COMMA)
		case '.':
			return s.make(token.DOT)
		case '-':
			return s.make(token.MINUS)
		case '+':
			return s.make(token.PLUS)
		case ';':
			return s.make(token.SEMICOLON)
		case '*':
			return s.make(token.STAR)

		case '!':
			if s.advanceIf('=') {
				return s.make(token.BANG_EQUAL)
			}
			return s.make(token.BANG)
		case '=':
			if s.advanceIf('=') {
				return s.make(token.EQUAL_EQUAL)
			}
			return s.make(token.EQUAL)
		case '<':
			if s.advanceIf('=') {
				return s.make(token.LESS_EQUAL)
			}
			return s.make(token.LESS)
		case '>':
			if s.advanceIf('=') {
				return s.make(token.GREATER_EQUAL)
			}
			return s.make(token.GREATER)

		case '/':
			if s.advanceIf('/') {
				// line comment, consume until the newline exclusive
				for !s.atEnd() && s.peek() != '\n' {
					s.current++
				}
				continue
			}
			return s.make(token.SLASH)

		case ' ', '\r', '\t':
			continue
		case '\n':
			s.line++
			continue

		case '"':
			if tok, ok := s.scanString(); ok {
				return tok
			}
			continue

		default:
			if isDigit(c) {
				return s.scanNumber()
			}
			if isAlpha(c) {
				return s.scanIdent()
			}
			s.error("Unexpected character.")
			continue
		}
	}

	s.start = s.current
	return token.Token{Type: token.EOF, Line: s.line}
}

func (s *Scanner) atEnd() bool {
	return s.current >= len(s.src)
}

// advance consumes and returns the next byte.
func (s *Scanner) advance() byte {
	c := s.src[s.current]
	s.current++
	return c
}

// peek returns the next unread byte without consuming it, 0 at EOF.
func (s *Scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.src[s.current]
}

// peekNext returns the byte after the next unread one, 0 if out of range.
func (s *Scanner) peekNext() byte {
	if s.current+1 >= len(s.src) {
		return 0
	}
	return s.src[s.current+1]
}

// advanceIf consumes the next byte only if it matches.
func (s *Scanner) advanceIf(match byte) bool {
	if s.atEnd() || s.src[s.current] != match {
		return false
	}
	s.current++
	return true
}

func (s *Scanner) make(typ token.Type) token.Token {
	return token.Token{
		Type:   typ,
		Lexeme: string(s.src[s.start:s.current]),
		Line:   s.line,
	}
}

func (s *Scanner) error(msg string) {
	if s.err != nil {
		s.err(s.line, msg)
	}
}

// scanString scans a string literal after the opening quote was consumed.
// Strings may span multiple lines and support no escape sequences. An
// unterminated string reports an error and produces no token.
func (s *Scanner) scanString() (token.Token, bool) {
	for !s.atEnd() && s.peek() != '"' {
		if s.peek() == '\n' {
			s.line++
		}
		s.current++
	}

	if s.atEnd() {
		s.error("Unterminated string.")
		return token.Token{}, false
	}
	s.current++ // closing quote

	tok := s.make(token.STRING)
	tok.Str = string(s.src[s.start+1 : s.current-1])
	return tok, true
}

// scanNumber scans a number literal: one or more digits with an optional
// fractional part of a dot followed by at least one digit. No leading sign,
// no exponent.
func (s *Scanner) scanNumber() token.Token {
	for isDigit(s.peek()) {
		s.current++
	}

	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.current++ // the dot
		for isDigit(s.peek()) {
			s.current++
		}
	}

	tok := s.make(token.NUMBER)
	// the lexeme is guaranteed to be a valid float
	tok.Num, _ = strconv.ParseFloat(tok.Lexeme, 64)
	return tok
}

func (s *Scanner) scanIdent() token.Token {
	for isAlpha(s.peek()) || isDigit(s.peek()) {
		s.current++
	}

	tok := s.make(token.LookupKw(string(s.src[s.start:s.current])))
	return tok
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isAlpha(c byte) bool {
	return 'a' <= c && c <= 'z' ||
		'A' <= c && c <= 'Z' ||
		c == '_'
}
