package interp

import (
	"time"

	"github.com/dolthub/swiss"

	"github.com/mna/velox/lang/ast"
	"github.com/mna/velox/lang/token"
)

// A Callable is any value that can appear to the left of a call's opening
// parenthesis: user-defined functions, classes, and the clock builtin.
type Callable interface {
	// Arity returns the number of arguments the callable expects.
	Arity() int

	// Call invokes the callable with the evaluated arguments, whose count is
	// guaranteed to match Arity.
	Call(in *Interp, args []any) (any, error)
}

// clockFn is the single builtin: clock() returns the current wall-clock time
// as a floating-point number of seconds.
type clockFn struct{}

func (clockFn) Arity() int { return 0 }

func (clockFn) Call(_ *Interp, _ []any) (any, error) {
	return float64(time.Now().UnixNano()) / float64(time.Second), nil
}

func (clockFn) String() string { return "<native fn>" }

// A Function is a user-defined function value: the declaration node plus the
// environment captured at evaluation time (its closure).
type Function struct {
	decl          *ast.FuncStmt
	closure       *Environment
	isInitializer bool
}

func (f *Function) String() string { return "<fn " + f.decl.Name.Lexeme + ">" }

func (f *Function) Arity() int { return len(f.decl.Params) }

// Call executes the function body in a fresh environment nested in the
// closure, with the parameters bound to the arguments. A return statement
// anywhere in the body unwinds to here; an initializer always returns the
// bound instance.
func (f *Function) Call(in *Interp, args []any) (any, error) {
	env := NewEnvironment(f.closure)
	for i, param := range f.decl.Params {
		env.Define(param.Lexeme, args[i])
	}

	if err := in.executeBlock(f.decl.Body, env); err != nil {
		rv, ok := err.(returnSignal)
		if !ok {
			return nil, err
		}
		if f.isInitializer {
			return f.closure.GetAt(0, "this"), nil
		}
		return rv.value, nil
	}

	if f.isInitializer {
		return f.closure.GetAt(0, "this"), nil
	}
	return nil, nil
}

// bind returns a copy of the function whose closure is extended with a scope
// binding "this" to the instance.
func (f *Function) bind(inst *Instance) *Function {
	env := NewEnvironment(f.closure)
	env.Define("this", inst)
	return &Function{decl: f.decl, closure: env, isInitializer: f.isInitializer}
}

// A Class is a runtime class value: its name, its optional superclass and
// its method table. Calling a class allocates an instance and runs the
// initializer, if any.
type Class struct {
	Name       string
	superclass *Class
	methods    *swiss.Map[string, *Function]
}

func (c *Class) String() string { return c.Name }

// Arity of the class-as-callable is the arity of its initializer, 0 when it
// has none.
func (c *Class) Arity() int {
	if init := c.findMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

func (c *Class) Call(in *Interp, args []any) (any, error) {
	inst := &Instance{
		class:  c,
		fields: swiss.NewMap[string, any](8),
	}
	if init := c.findMethod("init"); init != nil {
		if _, err := init.bind(inst).Call(in, args); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

// findMethod looks up a method by name, walking the superclass chain.
func (c *Class) findMethod(name string) *Function {
	if m, ok := c.methods.Get(name); ok {
		return m
	}
	if c.superclass != nil {
		return c.superclass.findMethod(name)
	}
	return nil
}

// An Instance is a runtime object: its backing class and its mutable fields.
type Instance struct {
	class  *Class
	fields *swiss.Map[string, any]
}

func (i *Instance) String() string { return i.class.Name + " instance" }

// get reads a property: a field if present, else a method of the class chain
// bound to the instance. A missing property is a runtime error.
func (i *Instance) get(name token.Token) (any, error) {
	if v, ok := i.fields.Get(name.Lexeme); ok {
		return v, nil
	}
	if m := i.class.findMethod(name.Lexeme); m != nil {
		return m.bind(i), nil
	}
	return nil, &RuntimeError{Token: name, Msg: "Undefined property '" + name.Lexeme + "'."}
}

// set writes a field, shadowing any method of the same name.
func (i *Instance) set(name token.Token, v any) {
	i.fields.Put(name.Lexeme, v)
}
