package ast

import "github.com/mna/velox/lang/token"

type (
	// AssignExpr represents an assignment to a variable, e.g. x = y.
	AssignExpr struct {
		Name  token.Token
		Value Expr
	}

	// BinaryExpr represents a binary operator expression, e.g. x + y.
	BinaryExpr struct {
		Left  Expr
		Op    token.Token
		Right Expr
	}

	// CallExpr represents a call, e.g. x(y, z). Paren is the closing
	// parenthesis, kept for runtime error reporting.
	CallExpr struct {
		Callee Expr
		Paren  token.Token
		Args   []Expr
	}

	// GetExpr represents a property read, e.g. x.y.
	GetExpr struct {
		Object Expr
		Name   token.Token
	}

	// GroupingExpr represents an expression wrapped in parentheses.
	GroupingExpr struct {
		Expr Expr
	}

	// LiteralExpr represents a literal value. Value is nil, a bool, a float64
	// or a string.
	LiteralExpr struct {
		Value any
	}

	// LogicalExpr represents a short-circuiting binary expression, with an
	// "and" or "or" operator.
	LogicalExpr struct {
		Left  Expr
		Op    token.Token
		Right Expr
	}

	// SetExpr represents a property write, e.g. x.y = z.
	SetExpr struct {
		Object Expr
		Name   token.Token
		Value  Expr
	}

	// SuperExpr represents a superclass method access, e.g. super.m.
	SuperExpr struct {
		Keyword token.Token
		Method  token.Token
	}

	// ThisExpr represents the "this" keyword inside a method.
	ThisExpr struct {
		Keyword token.Token
	}

	// UnaryExpr represents a unary operator expression, e.g. -x or !x.
	UnaryExpr struct {
		Op    token.Token
		Right Expr
	}

	// VariableExpr represents a variable read.
	VariableExpr struct {
		Name token.Token
	}
)

func (n *AssignExpr) node()   {}
func (n *BinaryExpr) node()   {}
func (n *CallExpr) node()     {}
func (n *GetExpr) node()      {}
func (n *GroupingExpr) node() {}
func (n *LiteralExpr) node()  {}
func (n *LogicalExpr) node()  {}
func (n *SetExpr) node()      {}
func (n *SuperExpr) node()    {}
func (n *ThisExpr) node()     {}
func (n *UnaryExpr) node()    {}
func (n *VariableExpr) node() {}

func (n *AssignExpr) expr()   {}
func (n *BinaryExpr) expr()   {}
func (n *CallExpr) expr()     {}
func (n *GetExpr) expr()      {}
func (n *GroupingExpr) expr() {}
func (n *LiteralExpr) expr()  {}
func (n *LogicalExpr) expr()  {}
func (n *SetExpr) expr()      {}
func (n *SuperExpr) expr()    {}
func (n *ThisExpr) expr()     {}
func (n *UnaryExpr) expr()    {}
func (n *VariableExpr) expr() {}
