// Package maincmd implements the command-line driver: file execution, the
// interactive prompt, and the token/AST debug dumps.
package maincmd

import (
	"errors"
	"fmt"

	"github.com/mna/mainer"
)

const binName = "velox"

// usage is the exact line printed when more arguments than a single script
// are provided.
const usage = "Usage: velox [script]"

var longUsage = fmt.Sprintf(`usage: %s [<option>...] [<script>]
       %[1]s -h|--help
       %[1]s -v|--version

Tree-walking interpreter for the %[1]s scripting language. With a <script>
argument, runs the file and exits; without one, starts an interactive
prompt reading one line of input per iteration, until end of input.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       --print-tokens            Scan the script and print its tokens
                                 instead of running it.
       --print-ast               Parse the script and print its syntax
                                 tree instead of running it.

Exit codes:
       64                        Invalid command-line usage.
       65                        The script contained compile errors.
       70                        The script failed with a runtime error.
`, binName)

// exit codes fixed by the interpreter's process contract
const (
	exitUsage        = mainer.ExitCode(64)
	exitCompileError = mainer.ExitCode(65)
	exitRuntimeError = mainer.ExitCode(70)
)

// Cmd is the velox command. Its exported fields are set by the flag parser.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	PrintTokens bool `flag:"print-tokens"`
	PrintAst    bool `flag:"print-ast"`

	args []string
}

// SetArgs receives the positional (non-flag) arguments.
func (c *Cmd) SetArgs(args []string) {
	c.args = args
}

// Validate is called by the flag parser once the flags are set.
func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}
	if (c.PrintTokens || c.PrintAst) && len(c.args) == 0 {
		return errors.New("a script file is required with --print-tokens or --print-ast")
	}
	return nil
}

// Main runs the command and returns its exit code.
func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	var p mainer.Parser
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s\n", err, usage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success

	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	switch len(c.args) {
	case 0:
		return c.repl(stdio)
	case 1:
		return c.runFile(stdio, c.args[0])
	default:
		fmt.Fprintln(stdio.Stdout, usage)
		return exitUsage
	}
}
