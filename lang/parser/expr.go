package parser

import (
	"github.com/mna/velox/lang/ast"
	"github.com/mna/velox/lang/token"
)

func (p *parser) expression() ast.Expr {
	return p.assignment()
}

// assignment parses the left-hand side as an expression first, then converts
// it when an '=' follows: a variable becomes an assign node, a property read
// becomes a property write. Anything else is not a valid assignment target.
func (p *parser) assignment() ast.Expr {
	expr := p.logicOr()

	if p.match(token.EQUAL) {
		equals := p.prev
		value := p.assignment()

		switch expr := expr.(type) {
		case *ast.VariableExpr:
			return &ast.AssignExpr{Name: expr.Name, Value: value}
		case *ast.GetExpr:
			return &ast.SetExpr{Object: expr.Object, Name: expr.Name, Value: value}
		default:
			// report but keep parsing, the rhs was already consumed
			_ = p.error(equals, "Invalid assignment target.")
		}
	}
	return expr
}

func (p *parser) logicOr() ast.Expr {
	expr := p.logicAnd()
	for p.match(token.OR) {
		op := p.prev
		expr = &ast.LogicalExpr{Left: expr, Op: op, Right: p.logicAnd()}
	}
	return expr
}

func (p *parser) logicAnd() ast.Expr {
	expr := p.equality()
	for p.match(token.AND) {
		op := p.prev
		expr = &ast.LogicalExpr{Left: expr, Op: op, Right: p.equality()}
	}
	return expr
}

func (p *parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.BANG_EQUAL, token.EQUAL_EQUAL) {
		op := p.prev
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: p.comparison()}
	}
	return expr
}

func (p *parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL) {
		op := p.prev
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: p.term()}
	}
	return expr
}

func (p *parser) term() ast.Expr {
	expr := p.factor()
	for p.match(token.MINUS, token.PLUS) {
		op := p.prev
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: p.factor()}
	}
	return expr
}

func (p *parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(token.SLASH, token.STAR) {
		op := p.prev
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: p.unary()}
	}
	return expr
}

func (p *parser) unary() ast.Expr {
	if p.match(token.BANG, token.MINUS) {
		op := p.prev
		return &ast.UnaryExpr{Op: op, Right: p.unary()}
	}
	return p.call()
}

func (p *parser) call() ast.Expr {
	expr := p.primary()

	for {
		switch {
		case p.match(token.LEFT_PAREN):
			expr = p.finishCall(expr)
		case p.match(token.DOT):
			name := p.expect(token.IDENTIFIER, "Expect property name after '.'.")
			expr = &ast.GetExpr{Object: expr, Name: name}
		default:
			return expr
		}
	}
}

func (p *parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(args) >= maxParams {
				// report but keep parsing, no need to panic for this
				_ = p.error(p.tok, "Can't have more than 255 arguments.")
			}
			args = append(args, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	paren := p.expect(token.RIGHT_PAREN, "Expect ')' after arguments.")
	return &ast.CallExpr{Callee: callee, Paren: paren, Args: args}
}

func (p *parser) primary() ast.Expr {
	switch {
	case p.match(token.TRUE):
		return &ast.LiteralExpr{Value: true}
	case p.match(token.FALSE):
		return &ast.LiteralExpr{Value: false}
	case p.match(token.NIL):
		return &ast.LiteralExpr{Value: nil}

	case p.match(token.NUMBER):
		return &ast.LiteralExpr{Value: p.prev.Num}
	case p.match(token.STRING):
		return &ast.LiteralExpr{Value: p.prev.Str}

	case p.match(token.LEFT_PAREN):
		expr := p.expression()
		p.expect(token.RIGHT_PAREN, "Expect ')' after expression.")
		return &ast.GroupingExpr{Expr: expr}

	case p.match(token.THIS):
		return &ast.ThisExpr{Keyword: p.prev}

	case p.match(token.SUPER):
		keyword := p.prev
		p.expect(token.DOT, "Expect '.' after 'super'.")
		method := p.expect(token.IDENTIFIER, "Expect superclass method name.")
		return &ast.SuperExpr{Keyword: keyword, Method: method}

	case p.match(token.IDENTIFIER):
		return &ast.VariableExpr{Name: p.prev}

	default:
		panic(p.error(p.tok, "Expect expression."))
	}
}
