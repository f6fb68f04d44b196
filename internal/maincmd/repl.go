package maincmd

import (
	"bufio"
	"fmt"

	"github.com/mna/mainer"
	"github.com/mna/velox/lang/interp"
	"github.com/mna/velox/lang/reporter"
)

// repl runs the interactive prompt, one line of input per iteration, until
// end of input. The interpreter is reused across lines so globals persist;
// the compile-error flag is reset between lines so a bad line does not
// poison the next ones.
func (c *Cmd) repl(stdio mainer.Stdio) mainer.ExitCode {
	rep := &reporter.Reporter{W: stdio.Stderr}
	in := interp.New(stdio.Stdout, rep)

	lines := bufio.NewScanner(stdio.Stdin)
	for {
		fmt.Fprint(stdio.Stdout, "> ")
		if !lines.Scan() {
			break
		}
		c.run(lines.Bytes(), rep, in, stdio)
		rep.ResetError()
	}
	return mainer.Success
}
