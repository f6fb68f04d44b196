// Package parser implements the recursive-descent parser that transforms the
// token stream into an abstract syntax tree (AST).
//
// The parser is single-pass with one token of lookahead. A parse error is
// reported at the offending token and recovered at the declaration level by
// synchronizing to the next statement boundary, so a single bad statement
// does not hide errors in the rest of the input.
package parser

import (
	"errors"

	"github.com/mna/velox/lang/ast"
	"github.com/mna/velox/lang/reporter"
	"github.com/mna/velox/lang/scanner"
	"github.com/mna/velox/lang/token"
)

// Parse scans and parses a source buffer and returns the list of top-level
// statements. Errors are reported through rep; when rep.HadError() is true
// after the call, the returned AST is incomplete and must not be executed.
func Parse(src []byte, rep *reporter.Reporter) []ast.Stmt {
	var p parser
	p.init(src, rep)

	var stmts []ast.Stmt
	for p.tok.Type != token.EOF {
		if st := p.declaration(); st != nil {
			stmts = append(stmts, st)
		}
	}
	return stmts
}

var errPanicMode = errors.New("panic")

// parser parses a source buffer and generates an AST.
type parser struct {
	scanner scanner.Scanner
	rep     *reporter.Reporter

	tok  token.Token // current token
	prev token.Token // most recently consumed token
}

func (p *parser) init(src []byte, rep *reporter.Reporter) {
	p.rep = rep
	p.scanner.Init(src, rep.Error)

	// advance to first token
	p.advance()
}

func (p *parser) advance() {
	p.prev = p.tok
	p.tok = p.scanner.Scan()
}

// check returns true if the current token is of the specified type, without
// consuming it.
func (p *parser) check(typ token.Type) bool {
	return p.tok.Type == typ
}

// match consumes the current token if it is one of the specified types.
func (p *parser) match(types ...token.Type) bool {
	for _, typ := range types {
		if p.tok.Type == typ {
			p.advance()
			return true
		}
	}
	return false
}

// expect returns the current token and consumes it if it is of the expected
// type, otherwise it reports an error and panics with errPanicMode which gets
// recovered at the declaration level.
func (p *parser) expect(typ token.Type, msg string) token.Token {
	if p.tok.Type == typ {
		tok := p.tok
		p.advance()
		return tok
	}
	panic(p.error(p.tok, msg))
}

// error reports a parse error at the offending token and returns the panic
// sentinel. Callers decide whether to panic with it (abandoning the current
// statement) or to keep parsing.
func (p *parser) error(tok token.Token, msg string) error {
	p.rep.ErrorAt(tok, msg)
	return errPanicMode
}

// synchronize advances until a likely statement boundary: the token after a
// semicolon, or a token that begins a declaration or statement.
func (p *parser) synchronize() {
	p.advance()

	for p.tok.Type != token.EOF {
		if p.prev.Type == token.SEMICOLON {
			return
		}

		switch p.tok.Type {
		case token.CLASS, token.FUN, token.VAR, token.FOR,
			token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		p.advance()
	}
}
