// Package reporter implements the diagnostics sink shared by every phase of
// the pipeline. It formats compile-time and runtime errors and keeps the two
// sticky flags that the driver consults between phases and at process exit.
package reporter

import (
	"fmt"
	"io"

	"github.com/mna/velox/lang/token"
)

// A Reporter prints diagnostics to W and records whether any compile-time or
// runtime error was reported. The flags are sticky: they stay set until
// explicitly reset by the driver.
type Reporter struct {
	// W is the writer diagnostics are printed to, typically standard error.
	W io.Writer

	hadError        bool
	hadRuntimeError bool
}

// Error reports a compile-time error at a source line, with no offending
// token. It is the reporting surface used by the scanner.
func (r *Reporter) Error(line int, msg string) {
	r.report(line, "", msg)
}

// ErrorAt reports a compile-time error blamed on a token. It is the reporting
// surface used by the parser and the resolver.
func (r *Reporter) ErrorAt(tok token.Token, msg string) {
	if tok.Type == token.EOF {
		r.report(tok.Line, " at end", msg)
	} else {
		r.report(tok.Line, " at '"+tok.Lexeme+"'", msg)
	}
}

// RuntimeError reports a runtime error blamed on a token and sets the sticky
// runtime-error flag.
func (r *Reporter) RuntimeError(tok token.Token, msg string) {
	fmt.Fprintf(r.W, "%s\n[line %d]\n", msg, tok.Line)
	r.hadRuntimeError = true
}

// HadError returns true if any compile-time error was reported since the last
// call to ResetError.
func (r *Reporter) HadError() bool { return r.hadError }

// HadRuntimeError returns true if any runtime error was reported. This flag
// is never reset; it is observed once at file-run exit.
func (r *Reporter) HadRuntimeError() bool { return r.hadRuntimeError }

// ResetError clears the compile-error flag. The driver calls it between REPL
// lines so an invalid line does not poison subsequent ones.
func (r *Reporter) ResetError() { r.hadError = false }

func (r *Reporter) report(line int, where, msg string) {
	fmt.Fprintf(r.W, "[line %d] Error%s: %s\n", line, where, msg)
	r.hadError = true
}
