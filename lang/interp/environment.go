package interp

import (
	"github.com/dolthub/swiss"

	"github.com/mna/velox/lang/token"
)

// An Environment is one link of the lexically-nested scope chain: a mapping
// from names to values plus a pointer to the enclosing environment, nil for
// the globals. A new environment is created per block, per function call,
// each time a method is bound to an instance (holding "this"), and once per
// class declaration holding "super" when the class inherits.
type Environment struct {
	enclosing *Environment
	values    *swiss.Map[string, any]
}

// NewEnvironment creates an empty environment nested in enclosing, which may
// be nil for the outermost (global) environment.
func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{
		enclosing: enclosing,
		values:    swiss.NewMap[string, any](8),
	}
}

// Define binds a name in this environment, overwriting any previous binding
// of the same name.
func (e *Environment) Define(name string, v any) {
	e.values.Put(name, v)
}

// Get reads the value of a name, walking the chain outward. An unknown name
// is a runtime error blamed on the name token.
func (e *Environment) Get(name token.Token) (any, error) {
	if v, ok := e.values.Get(name.Lexeme); ok {
		return v, nil
	}
	if e.enclosing != nil {
		return e.enclosing.Get(name)
	}
	return nil, &RuntimeError{Token: name, Msg: "Undefined variable '" + name.Lexeme + "'."}
}

// GetAt reads the value of a name in the environment at the given distance
// up the chain. The resolver guarantees the binding exists.
func (e *Environment) GetAt(distance int, name string) any {
	v, _ := e.ancestor(distance).values.Get(name)
	return v
}

// Assign writes the value of a name to the nearest environment that already
// binds it. An unknown name is a runtime error blamed on the name token.
func (e *Environment) Assign(name token.Token, v any) error {
	if _, ok := e.values.Get(name.Lexeme); ok {
		e.values.Put(name.Lexeme, v)
		return nil
	}
	if e.enclosing != nil {
		return e.enclosing.Assign(name, v)
	}
	return &RuntimeError{Token: name, Msg: "Undefined variable '" + name.Lexeme + "'."}
}

// AssignAt writes the value of a name in the environment at the given
// distance up the chain. The resolver guarantees the binding exists.
func (e *Environment) AssignAt(distance int, name token.Token, v any) {
	e.ancestor(distance).values.Put(name.Lexeme, v)
}

func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.enclosing
	}
	return env
}
