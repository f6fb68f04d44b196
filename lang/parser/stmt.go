package parser

import (
	"github.com/mna/velox/lang/ast"
	"github.com/mna/velox/lang/token"
)

// maxParams bounds the number of parameters of a function and the number of
// arguments of a call.
const maxParams = 255

// declaration parses a declaration or statement. It returns nil when the
// statement failed to parse, after synchronizing to the next statement
// boundary.
func (p *parser) declaration() (st ast.Stmt) {
	defer func() {
		if e := recover(); e != nil {
			if e != errPanicMode {
				panic(e)
			}
			p.synchronize()
			st = nil
		}
	}()

	switch {
	case p.match(token.CLASS):
		return p.classDecl()
	case p.match(token.FUN):
		return p.function("function")
	case p.match(token.VAR):
		return p.varDecl()
	default:
		return p.statement()
	}
}

func (p *parser) classDecl() ast.Stmt {
	var stmt ast.ClassStmt
	stmt.Name = p.expect(token.IDENTIFIER, "Expect class name.")

	if p.match(token.LESS) {
		name := p.expect(token.IDENTIFIER, "Expect superclass name.")
		stmt.Superclass = &ast.VariableExpr{Name: name}
	}

	p.expect(token.LEFT_BRACE, "Expect '{' before class body.")
	for !p.check(token.RIGHT_BRACE) && !p.check(token.EOF) {
		stmt.Methods = append(stmt.Methods, p.function("method"))
	}
	p.expect(token.RIGHT_BRACE, "Expect '}' after class body.")
	return &stmt
}

// function parses a named function after the introducing keyword was
// consumed. The kind is "function" or "method" and is only used in error
// messages.
func (p *parser) function(kind string) *ast.FuncStmt {
	var stmt ast.FuncStmt
	stmt.Name = p.expect(token.IDENTIFIER, "Expect "+kind+" name.")

	p.expect(token.LEFT_PAREN, "Expect '(' after "+kind+" name.")
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(stmt.Params) >= maxParams {
				// report but keep parsing, no need to panic for this
				_ = p.error(p.tok, "Can't have more than 255 parameters.")
			}
			stmt.Params = append(stmt.Params,
				p.expect(token.IDENTIFIER, "Expect parameter name."))
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.expect(token.RIGHT_PAREN, "Expect ')' after parameters.")

	p.expect(token.LEFT_BRACE, "Expect '{' before "+kind+" body.")
	stmt.Body = p.block()
	return &stmt
}

func (p *parser) varDecl() ast.Stmt {
	var stmt ast.VarStmt
	stmt.Name = p.expect(token.IDENTIFIER, "Expect variable name.")

	if p.match(token.EQUAL) {
		stmt.Initializer = p.expression()
	}
	p.expect(token.SEMICOLON, "Expect ';' after variable declaration.")
	return &stmt
}

func (p *parser) statement() ast.Stmt {
	switch {
	case p.match(token.FOR):
		return p.forStmt()
	case p.match(token.IF):
		return p.ifStmt()
	case p.match(token.PRINT):
		return p.printStmt()
	case p.match(token.RETURN):
		return p.returnStmt()
	case p.match(token.WHILE):
		return p.whileStmt()
	case p.match(token.LEFT_BRACE):
		return &ast.BlockStmt{Stmts: p.block()}
	default:
		return p.exprStmt()
	}
}

// forStmt parses a for loop and desugars it into a while loop, wrapped in a
// block holding the initializer when there is one, with the increment
// appended as the last statement of the body.
func (p *parser) forStmt() ast.Stmt {
	p.expect(token.LEFT_PAREN, "Expect '(' after 'for'.")

	var init ast.Stmt
	switch {
	case p.match(token.SEMICOLON):
		// no initializer
	case p.match(token.VAR):
		init = p.varDecl()
	default:
		init = p.exprStmt()
	}

	var cond ast.Expr
	if !p.check(token.SEMICOLON) {
		cond = p.expression()
	}
	p.expect(token.SEMICOLON, "Expect ';' after loop condition.")

	var incr ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		incr = p.expression()
	}
	p.expect(token.RIGHT_PAREN, "Expect ')' after for clauses.")

	body := p.statement()

	if incr != nil {
		body = &ast.BlockStmt{Stmts: []ast.Stmt{body, &ast.ExprStmt{Expr: incr}}}
	}
	if cond == nil {
		cond = &ast.LiteralExpr{Value: true}
	}
	body = &ast.WhileStmt{Cond: cond, Body: body}
	if init != nil {
		body = &ast.BlockStmt{Stmts: []ast.Stmt{init, body}}
	}
	return body
}

func (p *parser) ifStmt() ast.Stmt {
	var stmt ast.IfStmt
	p.expect(token.LEFT_PAREN, "Expect '(' after 'if'.")
	stmt.Cond = p.expression()
	p.expect(token.RIGHT_PAREN, "Expect ')' after if condition.")

	stmt.Then = p.statement()
	if p.match(token.ELSE) {
		stmt.Else = p.statement()
	}
	return &stmt
}

func (p *parser) printStmt() ast.Stmt {
	expr := p.expression()
	p.expect(token.SEMICOLON, "Expect ';' after value.")
	return &ast.PrintStmt{Expr: expr}
}

func (p *parser) returnStmt() ast.Stmt {
	var stmt ast.ReturnStmt
	stmt.Keyword = p.prev

	if !p.check(token.SEMICOLON) {
		stmt.Value = p.expression()
	}
	p.expect(token.SEMICOLON, "Expect ';' after return value.")
	return &stmt
}

func (p *parser) whileStmt() ast.Stmt {
	var stmt ast.WhileStmt
	p.expect(token.LEFT_PAREN, "Expect '(' after 'while'.")
	stmt.Cond = p.expression()
	p.expect(token.RIGHT_PAREN, "Expect ')' after condition.")

	stmt.Body = p.statement()
	return &stmt
}

// block parses the statements of a braced block after the opening brace was
// consumed, up to and including the closing brace.
func (p *parser) block() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.RIGHT_BRACE) && !p.check(token.EOF) {
		if st := p.declaration(); st != nil {
			stmts = append(stmts, st)
		}
	}
	p.expect(token.RIGHT_BRACE, "Expect '}' after block.")
	return stmts
}

func (p *parser) exprStmt() ast.Stmt {
	expr := p.expression()
	p.expect(token.SEMICOLON, "Expect ';' after expression.")
	return &ast.ExprStmt{Expr: expr}
}
