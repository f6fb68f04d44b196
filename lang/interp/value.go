package interp

import (
	"fmt"
	"strconv"
)

// Runtime values are represented as follows: nil is Go nil, booleans are Go
// bools, numbers are float64, strings are Go strings, and callables and
// instances are *Function, *Class, *Instance or the clock builtin.

// Stringify returns the display form of a runtime value, as used by the
// print statement and by error formatting.
func Stringify(v any) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(v)
	case float64:
		// integral floats print without a trailing .0
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return v
	default:
		// callables and instances describe themselves
		return fmt.Sprintf("%v", v)
	}
}

// Truthy returns the truth value of a runtime value: nil and false are
// falsy, every other value is truthy.
func Truthy(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	default:
		return true
	}
}

// Equal returns true if two runtime values are equal: nil equals nil, values
// of the same kind compare by payload, and values of different kinds are
// never equal.
func Equal(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	switch a := a.(type) {
	case bool:
		b, ok := b.(bool)
		return ok && a == b
	case float64:
		b, ok := b.(float64)
		return ok && a == b
	case string:
		b, ok := b.(string)
		return ok && a == b
	default:
		// callables and instances compare by identity
		return a == b
	}
}
