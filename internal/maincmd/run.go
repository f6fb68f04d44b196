package maincmd

import (
	"fmt"
	"os"

	"github.com/mna/mainer"
	"github.com/mna/velox/lang/ast"
	"github.com/mna/velox/lang/interp"
	"github.com/mna/velox/lang/parser"
	"github.com/mna/velox/lang/reporter"
	"github.com/mna/velox/lang/resolver"
	"github.com/mna/velox/lang/scanner"
)

// runFile interprets the named file: exit 0 on success, 65 when a compile
// error was reported, 70 when a runtime error was.
func (c *Cmd) runFile(stdio mainer.Stdio, path string) mainer.ExitCode {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return mainer.Failure
	}

	rep := &reporter.Reporter{W: stdio.Stderr}
	in := interp.New(stdio.Stdout, rep)
	c.run(src, rep, in, stdio)

	switch {
	case rep.HadError():
		return exitCompileError
	case rep.HadRuntimeError():
		return exitRuntimeError
	default:
		return mainer.Success
	}
}

// run pushes one source buffer through the pipeline: scan, parse, resolve,
// interpret, aborting between phases when a compile error was reported. The
// debug flags stop the pipeline after their phase and dump its output.
func (c *Cmd) run(src []byte, rep *reporter.Reporter, in *interp.Interp, stdio mainer.Stdio) {
	if c.PrintTokens {
		for _, tok := range scanner.ScanAll(src, rep.Error) {
			fmt.Fprintln(stdio.Stdout, tok)
		}
		return
	}

	stmts := parser.Parse(src, rep)
	if rep.HadError() {
		return
	}

	if c.PrintAst {
		printer := ast.Printer{Output: stdio.Stdout}
		if err := printer.Print(stmts); err != nil {
			fmt.Fprintln(stdio.Stderr, err)
		}
		return
	}

	locals := resolver.Resolve(stmts, rep)
	if rep.HadError() {
		return
	}
	in.Interpret(stmts, locals)
}
