// Package interp implements the tree-walking evaluator. It executes the
// resolved AST over a chain of lexically-nested environments, dispatching on
// node type for both expressions and statements.
package interp

import (
	"errors"
	"fmt"
	"io"

	"github.com/dolthub/swiss"

	"github.com/mna/velox/lang/ast"
	"github.com/mna/velox/lang/reporter"
	"github.com/mna/velox/lang/resolver"
	"github.com/mna/velox/lang/token"
)

// A RuntimeError aborts the current top-level run. It carries the token
// blamed for the error so the reporter can print the source line.
type RuntimeError struct {
	Token token.Token
	Msg   string
}

func (e *RuntimeError) Error() string { return e.Msg }

// returnSignal is the non-local transfer used by return statements: it
// unwinds the evaluation stack from the return site to the enclosing
// function call, running the scoped environment restores on the way. It is
// internal control flow, not an error, and never escapes Function.Call.
type returnSignal struct {
	value any
}

func (returnSignal) Error() string { return "return outside function" }

// An Interp evaluates programs. It is reused across REPL inputs so that
// globals persist; the locals side tables of successive runs accumulate.
type Interp struct {
	rep    *reporter.Reporter
	stdout io.Writer

	globals *Environment
	env     *Environment
	locals  resolver.Locals
}

// New creates an interpreter that prints to stdout and reports runtime
// errors through rep. The globals are seeded with the clock builtin.
func New(stdout io.Writer, rep *reporter.Reporter) *Interp {
	globals := NewEnvironment(nil)
	globals.Define("clock", clockFn{})

	return &Interp{
		rep:     rep,
		stdout:  stdout,
		globals: globals,
		env:     globals,
		locals:  make(resolver.Locals),
	}
}

// Interpret executes the statements of a resolved program. A runtime error
// aborts the run, is printed through the reporter and sets its sticky
// runtime-error flag.
func (in *Interp) Interpret(stmts []ast.Stmt, locals resolver.Locals) {
	for e, d := range locals {
		in.locals[e] = d
	}

	for _, s := range stmts {
		if err := in.execute(s); err != nil {
			var rerr *RuntimeError
			if !errors.As(err, &rerr) {
				// a return signal escaping the interpreter is a bug
				panic(err)
			}
			in.rep.RuntimeError(rerr.Token, rerr.Msg)
			return
		}
	}
}

func (in *Interp) execute(stmt ast.Stmt) error {
	switch stmt := stmt.(type) {
	case *ast.BlockStmt:
		return in.executeBlock(stmt.Stmts, NewEnvironment(in.env))

	case *ast.ClassStmt:
		return in.executeClass(stmt)

	case *ast.ExprStmt:
		_, err := in.evaluate(stmt.Expr)
		return err

	case *ast.FuncStmt:
		fn := &Function{decl: stmt, closure: in.env}
		in.env.Define(stmt.Name.Lexeme, fn)
		return nil

	case *ast.IfStmt:
		cond, err := in.evaluate(stmt.Cond)
		if err != nil {
			return err
		}
		if Truthy(cond) {
			return in.execute(stmt.Then)
		}
		if stmt.Else != nil {
			return in.execute(stmt.Else)
		}
		return nil

	case *ast.PrintStmt:
		v, err := in.evaluate(stmt.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(in.stdout, Stringify(v))
		return nil

	case *ast.ReturnStmt:
		var v any
		if stmt.Value != nil {
			var err error
			if v, err = in.evaluate(stmt.Value); err != nil {
				return err
			}
		}
		return returnSignal{value: v}

	case *ast.VarStmt:
		var v any
		if stmt.Initializer != nil {
			var err error
			if v, err = in.evaluate(stmt.Initializer); err != nil {
				return err
			}
		}
		in.env.Define(stmt.Name.Lexeme, v)
		return nil

	case *ast.WhileStmt:
		for {
			cond, err := in.evaluate(stmt.Cond)
			if err != nil {
				return err
			}
			if !Truthy(cond) {
				return nil
			}
			if err := in.execute(stmt.Body); err != nil {
				return err
			}
		}

	default:
		panic(fmt.Sprintf("unexpected stmt %T", stmt))
	}
}

// executeBlock executes statements in the provided environment and restores
// the previous one on every exit path, including runtime errors and return
// unwinding.
func (in *Interp) executeBlock(stmts []ast.Stmt, env *Environment) error {
	prev := in.env
	in.env = env
	defer func() { in.env = prev }()

	for _, s := range stmts {
		if err := in.execute(s); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interp) executeClass(stmt *ast.ClassStmt) error {
	var superclass *Class
	if stmt.Superclass != nil {
		v, err := in.evaluate(stmt.Superclass)
		if err != nil {
			return err
		}
		sc, ok := v.(*Class)
		if !ok {
			return &RuntimeError{Token: stmt.Superclass.Name, Msg: "Superclass must be a class."}
		}
		superclass = sc
	}

	// define the name first so methods can refer to the class itself
	in.env.Define(stmt.Name.Lexeme, nil)

	env := in.env
	if superclass != nil {
		env = NewEnvironment(env)
		env.Define("super", superclass)
	}

	methods := swiss.NewMap[string, *Function](uint32(len(stmt.Methods) + 1))
	for _, m := range stmt.Methods {
		fn := &Function{
			decl:          m,
			closure:       env,
			isInitializer: m.Name.Lexeme == "init",
		}
		methods.Put(m.Name.Lexeme, fn)
	}

	class := &Class{Name: stmt.Name.Lexeme, superclass: superclass, methods: methods}
	return in.env.Assign(stmt.Name, class)
}

func (in *Interp) evaluate(expr ast.Expr) (any, error) {
	switch expr := expr.(type) {
	case *ast.AssignExpr:
		v, err := in.evaluate(expr.Value)
		if err != nil {
			return nil, err
		}
		if d, ok := in.locals[expr]; ok {
			in.env.AssignAt(d, expr.Name, v)
		} else if err := in.globals.Assign(expr.Name, v); err != nil {
			return nil, err
		}
		return v, nil

	case *ast.BinaryExpr:
		return in.evaluateBinary(expr)

	case *ast.CallExpr:
		return in.evaluateCall(expr)

	case *ast.GetExpr:
		obj, err := in.evaluate(expr.Object)
		if err != nil {
			return nil, err
		}
		inst, ok := obj.(*Instance)
		if !ok {
			return nil, &RuntimeError{Token: expr.Name, Msg: "Only instances have properties."}
		}
		return inst.get(expr.Name)

	case *ast.GroupingExpr:
		return in.evaluate(expr.Expr)

	case *ast.LiteralExpr:
		return expr.Value, nil

	case *ast.LogicalExpr:
		left, err := in.evaluate(expr.Left)
		if err != nil {
			return nil, err
		}
		// short-circuit: return the original left value when it decides
		if expr.Op.Type == token.OR {
			if Truthy(left) {
				return left, nil
			}
		} else if !Truthy(left) {
			return left, nil
		}
		return in.evaluate(expr.Right)

	case *ast.SetExpr:
		obj, err := in.evaluate(expr.Object)
		if err != nil {
			return nil, err
		}
		inst, ok := obj.(*Instance)
		if !ok {
			return nil, &RuntimeError{Token: expr.Name, Msg: "Only instances have fields."}
		}
		v, err := in.evaluate(expr.Value)
		if err != nil {
			return nil, err
		}
		inst.set(expr.Name, v)
		return v, nil

	case *ast.SuperExpr:
		// the scope holding "super" is one outside the one holding "this"
		d := in.locals[expr]
		superclass := in.env.GetAt(d, "super").(*Class)
		object := in.env.GetAt(d-1, "this").(*Instance)

		method := superclass.findMethod(expr.Method.Lexeme)
		if method == nil {
			return nil, &RuntimeError{Token: expr.Method, Msg: "Undefined property '" + expr.Method.Lexeme + "'."}
		}
		return method.bind(object), nil

	case *ast.ThisExpr:
		return in.lookupVariable(expr.Keyword, expr)

	case *ast.UnaryExpr:
		right, err := in.evaluate(expr.Right)
		if err != nil {
			return nil, err
		}
		switch expr.Op.Type {
		case token.MINUS:
			n, ok := right.(float64)
			if !ok {
				return nil, &RuntimeError{Token: expr.Op, Msg: "Operand must be a number."}
			}
			return -n, nil
		case token.BANG:
			return !Truthy(right), nil
		default:
			panic(fmt.Sprintf("unexpected unary operator %v", expr.Op.Type))
		}

	case *ast.VariableExpr:
		return in.lookupVariable(expr.Name, expr)

	default:
		panic(fmt.Sprintf("unexpected expr %T", expr))
	}
}

func (in *Interp) evaluateBinary(expr *ast.BinaryExpr) (any, error) {
	left, err := in.evaluate(expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evaluate(expr.Right)
	if err != nil {
		return nil, err
	}

	switch expr.Op.Type {
	case token.BANG_EQUAL:
		return !Equal(left, right), nil
	case token.EQUAL_EQUAL:
		return Equal(left, right), nil

	case token.PLUS:
		if ln, lok := left.(float64); lok {
			if rn, rok := right.(float64); rok {
				return ln + rn, nil
			}
		}
		if ls, lok := left.(string); lok {
			if rs, rok := right.(string); rok {
				return ls + rs, nil
			}
		}
		return nil, &RuntimeError{Token: expr.Op, Msg: "Operands must be two numbers or two strings."}
	}

	ln, lok := left.(float64)
	rn, rok := right.(float64)
	if !lok || !rok {
		return nil, &RuntimeError{Token: expr.Op, Msg: "Operands must be numbers."}
	}

	switch expr.Op.Type {
	case token.MINUS:
		return ln - rn, nil
	case token.SLASH:
		return ln / rn, nil
	case token.STAR:
		return ln * rn, nil
	case token.GREATER:
		return ln > rn, nil
	case token.GREATER_EQUAL:
		return ln >= rn, nil
	case token.LESS:
		return ln < rn, nil
	case token.LESS_EQUAL:
		return ln <= rn, nil
	default:
		panic(fmt.Sprintf("unexpected binary operator %v", expr.Op.Type))
	}
}

func (in *Interp) evaluateCall(expr *ast.CallExpr) (any, error) {
	callee, err := in.evaluate(expr.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]any, 0, len(expr.Args))
	for _, a := range expr.Args {
		v, err := in.evaluate(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	fn, ok := callee.(Callable)
	if !ok {
		return nil, &RuntimeError{Token: expr.Paren, Msg: "Can only call functions and classes."}
	}
	if len(args) != fn.Arity() {
		return nil, &RuntimeError{
			Token: expr.Paren,
			Msg:   fmt.Sprintf("Expected %d arguments but got %d.", fn.Arity(), len(args)),
		}
	}
	return fn.Call(in, args)
}

// lookupVariable reads a name through the locals side table when the
// resolver bound it to a local scope, and through the globals otherwise.
func (in *Interp) lookupVariable(name token.Token, expr ast.Expr) (any, error) {
	if d, ok := in.locals[expr]; ok {
		return in.env.GetAt(d, name.Lexeme), nil
	}
	return in.globals.Get(name)
}
