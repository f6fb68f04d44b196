// Package resolver implements the static resolution pass that runs between
// parsing and interpretation. It walks the AST once, computes for every
// name-resolving expression the lexical distance to the scope that binds the
// name, and enforces the static rules of the language.
//
// # Scopes
//
// The resolver mirrors the environment chain the interpreter will build at
// runtime: one scope per block, per function body and around class bodies
// (holding "this", and "super" when the class inherits). A name found d
// scopes away from its use site is recorded in the Locals side table under
// the expression node's identity; a name found in no scope is left
// unrecorded and resolves against the globals at runtime.
//
// # Static rules
//
// Reading a local in its own initializer, redeclaring a name in the same
// local scope, returning from top-level code, returning a value from an
// initializer, using "this" outside a class, using "super" outside a class
// or in a class with no superclass, and a class inheriting from itself are
// all compile-time errors. The pass reports them all and never aborts; the
// driver checks the reporter before running the interpreter.
package resolver

import (
	"fmt"

	"github.com/mna/velox/lang/ast"
	"github.com/mna/velox/lang/reporter"
	"github.com/mna/velox/lang/token"
)

// Locals is the side table produced by the resolver and consulted by the
// interpreter: for each name-resolving expression (variable, assign, this,
// super) found in a local scope, the number of environments to walk up from
// the active one to reach the binding. Expressions absent from the table
// resolve against the globals.
type Locals map[ast.Expr]int

// Resolve walks the statements of a successful parse and returns the Locals
// side table. Errors are reported through rep; a table produced with errors
// reported must not be executed.
func Resolve(stmts []ast.Stmt, rep *reporter.Reporter) Locals {
	r := resolver{
		rep:    rep,
		locals: make(Locals),
	}
	r.stmts(stmts)
	return r.locals
}

type funcType int

const (
	funcNone funcType = iota
	funcFunction
	funcInitializer
	funcMethod
)

type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

type resolver struct {
	rep    *reporter.Reporter
	locals Locals

	// scopes is the stack of local scopes, innermost last. Each scope maps a
	// declared name to whether its initializer has completed (declared vs
	// defined).
	scopes []map[string]bool

	currentFunc  funcType
	currentClass classType
}

func (r *resolver) stmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.stmt(s)
	}
}

func (r *resolver) stmt(stmt ast.Stmt) {
	switch stmt := stmt.(type) {
	case *ast.BlockStmt:
		r.beginScope()
		r.stmts(stmt.Stmts)
		r.endScope()

	case *ast.ClassStmt:
		enclosing := r.currentClass
		r.currentClass = classClass

		r.declare(stmt.Name)
		r.define(stmt.Name)

		if stmt.Superclass != nil {
			if stmt.Superclass.Name.Lexeme == stmt.Name.Lexeme {
				r.rep.ErrorAt(stmt.Superclass.Name, "A class can't inherit from itself.")
			}
			r.currentClass = classSubclass
			r.expr(stmt.Superclass)

			r.beginScope()
			r.scopes[len(r.scopes)-1]["super"] = true
		}

		r.beginScope()
		r.scopes[len(r.scopes)-1]["this"] = true

		for _, m := range stmt.Methods {
			typ := funcMethod
			if m.Name.Lexeme == "init" {
				typ = funcInitializer
			}
			r.function(m, typ)
		}

		r.endScope()
		if stmt.Superclass != nil {
			r.endScope()
		}
		r.currentClass = enclosing

	case *ast.ExprStmt:
		r.expr(stmt.Expr)

	case *ast.FuncStmt:
		r.declare(stmt.Name)
		r.define(stmt.Name)
		r.function(stmt, funcFunction)

	case *ast.IfStmt:
		r.expr(stmt.Cond)
		r.stmt(stmt.Then)
		if stmt.Else != nil {
			r.stmt(stmt.Else)
		}

	case *ast.PrintStmt:
		r.expr(stmt.Expr)

	case *ast.ReturnStmt:
		if r.currentFunc == funcNone {
			r.rep.ErrorAt(stmt.Keyword, "Can't return from top-level code.")
		}
		if stmt.Value != nil {
			if r.currentFunc == funcInitializer {
				r.rep.ErrorAt(stmt.Keyword, "Can't return a value from an initializer.")
			}
			r.expr(stmt.Value)
		}

	case *ast.VarStmt:
		r.declare(stmt.Name)
		if stmt.Initializer != nil {
			r.expr(stmt.Initializer)
		}
		r.define(stmt.Name)

	case *ast.WhileStmt:
		r.expr(stmt.Cond)
		r.stmt(stmt.Body)

	default:
		panic(fmt.Sprintf("unexpected stmt %T", stmt))
	}
}

func (r *resolver) expr(expr ast.Expr) {
	switch expr := expr.(type) {
	case *ast.AssignExpr:
		r.expr(expr.Value)
		r.resolveLocal(expr, expr.Name)

	case *ast.BinaryExpr:
		r.expr(expr.Left)
		r.expr(expr.Right)

	case *ast.CallExpr:
		r.expr(expr.Callee)
		for _, a := range expr.Args {
			r.expr(a)
		}

	case *ast.GetExpr:
		// the property name is a runtime lookup, only the target resolves
		r.expr(expr.Object)

	case *ast.GroupingExpr:
		r.expr(expr.Expr)

	case *ast.LiteralExpr:
		// nothing to do

	case *ast.LogicalExpr:
		r.expr(expr.Left)
		r.expr(expr.Right)

	case *ast.SetExpr:
		r.expr(expr.Value)
		r.expr(expr.Object)

	case *ast.SuperExpr:
		switch r.currentClass {
		case classNone:
			r.rep.ErrorAt(expr.Keyword, "Can't use 'super' outside of a class.")
		case classClass:
			r.rep.ErrorAt(expr.Keyword, "Can't use 'super' in a class with no superclass.")
		}
		r.resolveLocal(expr, expr.Keyword)

	case *ast.ThisExpr:
		if r.currentClass == classNone {
			r.rep.ErrorAt(expr.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(expr, expr.Keyword)

	case *ast.UnaryExpr:
		r.expr(expr.Right)

	case *ast.VariableExpr:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][expr.Name.Lexeme]; ok && !defined {
				r.rep.ErrorAt(expr.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(expr, expr.Name)

	default:
		panic(fmt.Sprintf("unexpected expr %T", expr))
	}
}

// function resolves a function or method body: the parameters are declared
// and defined in a fresh scope that encloses the body.
func (r *resolver) function(fn *ast.FuncStmt, typ funcType) {
	enclosing := r.currentFunc
	r.currentFunc = typ

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.stmts(fn.Body)
	r.endScope()

	r.currentFunc = enclosing
}

func (r *resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

// declare records the name in the innermost scope, not yet usable by its own
// initializer. Declaring at the top level (no open scope) is a no-op: the
// globals allow redeclaration.
func (r *resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}

	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.rep.ErrorAt(name, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

// define marks the name as fully initialized in the innermost scope.
func (r *resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

// resolveLocal walks the scope stack from innermost outward and records the
// depth of the first scope binding the name. Names found in no scope are
// left unrecorded and resolve globally at runtime.
func (r *resolver) resolveLocal(expr ast.Expr, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
}
