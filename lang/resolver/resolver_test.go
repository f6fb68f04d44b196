package resolver_test

import (
	"bytes"
	"sort"
	"testing"

	"github.com/mna/velox/lang/ast"
	"github.com/mna/velox/lang/parser"
	"github.com/mna/velox/lang/reporter"
	"github.com/mna/velox/lang/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolve(t *testing.T, src string) (resolver.Locals, string) {
	t.Helper()

	var ebuf bytes.Buffer
	rep := &reporter.Reporter{W: &ebuf}
	stmts := parser.Parse([]byte(src), rep)
	require.Empty(t, ebuf.String(), "parse errors")

	locals := resolver.Resolve(stmts, rep)
	return locals, ebuf.String()
}

// depthsByName indexes the locals side table by the name of the resolved
// expression, with sorted depths per name.
func depthsByName(locals resolver.Locals) map[string][]int {
	m := make(map[string][]int)
	for e, d := range locals {
		var name string
		switch e := e.(type) {
		case *ast.VariableExpr:
			name = e.Name.Lexeme
		case *ast.AssignExpr:
			name = e.Name.Lexeme
		case *ast.ThisExpr:
			name = "this"
		case *ast.SuperExpr:
			name = "super"
		}
		m[name] = append(m[name], d)
	}
	for _, ds := range m {
		sort.Ints(ds)
	}
	return m
}

func TestResolveDepths(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want map[string][]int
	}{
		{
			"globals are unrecorded",
			"var a = 1; print a; a = 2;",
			map[string][]int{},
		},
		{
			"same block",
			"{ var a = 1; print a; }",
			map[string][]int{"a": {0}},
		},
		{
			"nested block",
			"{ var a = 1; { print a; } }",
			map[string][]int{"a": {1}},
		},
		{
			"assign at depth",
			"{ var a = 1; { { a = 2; } } }",
			map[string][]int{"a": {2}},
		},
		{
			"params are locals",
			"fun f(x) { print x; }",
			map[string][]int{"x": {0}},
		},
		{
			"closure crosses the function scope",
			"{ var i = 0; fun count() { i = i + 1; } }",
			map[string][]int{"i": {1, 1}},
		},
		{
			"this in a method",
			"class A { m() { return this; } }",
			map[string][]int{"this": {1}},
		},
		{
			"super in a subclass method",
			"class A {} class B < A { m() { super.m(); } }",
			map[string][]int{"super": {2}},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			locals, errs := resolve(t, c.src)
			require.Empty(t, errs)
			require.Equal(t, c.want, depthsByName(locals))
		})
	}
}

// A function body declared before a later shadowing declaration keeps
// resolving to the outer binding.
func TestResolveShadowing(t *testing.T) {
	src := `
var a = "global";
{
  fun show() { print a; }
  show();
  var a = "local";
  show();
}`
	locals, errs := resolve(t, src)
	require.Empty(t, errs)

	// the read of a inside show is global, only the show calls are local
	require.Equal(t, map[string][]int{"show": {0, 0}}, depthsByName(locals))
}

func TestResolveErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{
			"self-initializer",
			"fun f() { var a = a; }",
			"[line 1] Error at 'a': Can't read local variable in its own initializer.\n",
		},
		{
			"redeclaration in local scope",
			"fun f() { var a; var a; }",
			"[line 1] Error at 'a': Already a variable with this name in this scope.\n",
		},
		{
			"top-level return",
			"return 1;",
			"[line 1] Error at 'return': Can't return from top-level code.\n",
		},
		{
			"return value from initializer",
			"class A { init() { return 1; } }",
			"[line 1] Error at 'return': Can't return a value from an initializer.\n",
		},
		{
			"this outside class",
			"print this;",
			"[line 1] Error at 'this': Can't use 'this' outside of a class.\n",
		},
		{
			"super outside class",
			"fun f() { super.m(); }",
			"[line 1] Error at 'super': Can't use 'super' outside of a class.\n",
		},
		{
			"super without superclass",
			"class A { m() { super.m(); } }",
			"[line 1] Error at 'super': Can't use 'super' in a class with no superclass.\n",
		},
		{
			"class inherits from itself",
			"class A < A {}",
			"[line 1] Error at 'A': A class can't inherit from itself.\n",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, errs := resolve(t, c.src)
			require.Equal(t, c.want, errs)
		})
	}
}

// Valid constructs that look close to the error cases.
func TestResolveNoErrors(t *testing.T) {
	srcs := []string{
		// redeclaring a global is allowed
		"var a = 1; var a = 2;",
		// shadowing in a child scope is allowed
		"fun f() { var a; { var a; } }",
		// a bare return inside an initializer is allowed
		"class A { init() { return; } }",
		// this and super in nested functions inside methods still resolve
		"class A { m() {} } class B < A { m() { fun g() { return this; } super.m(); } }",
	}

	for _, src := range srcs {
		t.Run(src, func(t *testing.T) {
			_, errs := resolve(t, src)
			assert.Empty(t, errs)
		})
	}
}
