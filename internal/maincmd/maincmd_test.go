package maincmd_test

import (
	"bytes"
	"flag"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mna/mainer"
	"github.com/mna/velox/internal/filetest"
	"github.com/mna/velox/internal/maincmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUpdateRunTests = flag.Bool("test.update-run-tests", false, "If set, replace expected run test results with actual results.")

func TestRunFile(t *testing.T) {
	srcDir, resultDir := filepath.Join("testdata", "in"), filepath.Join("testdata", "out")

	for _, name := range filetest.SourceFiles(t, srcDir, ".vlx") {
		t.Run(name, func(t *testing.T) {
			var buf, ebuf bytes.Buffer
			stdio := mainer.Stdio{
				Stdout: &buf,
				Stderr: &ebuf,
			}

			var c maincmd.Cmd
			code := c.Main([]string{"velox", filepath.Join(srcDir, name)}, stdio)
			filetest.DiffOutput(t, name, buf.String(), resultDir, testUpdateRunTests)
			filetest.DiffErrors(t, name, ebuf.String(), resultDir, testUpdateRunTests)

			// the exit code follows from the kind of diagnostics printed:
			// compile errors exit 65, runtime errors 70, clean runs 0
			want := mainer.Success
			if strings.Contains(ebuf.String(), "] Error") {
				want = mainer.ExitCode(65)
			} else if ebuf.Len() > 0 {
				want = mainer.ExitCode(70)
			}
			require.Equal(t, want, code)
		})
	}
}

func TestUsage(t *testing.T) {
	var buf, ebuf bytes.Buffer
	stdio := mainer.Stdio{Stdout: &buf, Stderr: &ebuf}

	var c maincmd.Cmd
	code := c.Main([]string{"velox", "one.vlx", "two.vlx"}, stdio)
	require.Equal(t, mainer.ExitCode(64), code)
	assert.Equal(t, "Usage: velox [script]\n", buf.String())
	assert.Empty(t, ebuf.String())
}

func TestMissingFile(t *testing.T) {
	var buf, ebuf bytes.Buffer
	stdio := mainer.Stdio{Stdout: &buf, Stderr: &ebuf}

	var c maincmd.Cmd
	code := c.Main([]string{"velox", filepath.Join("testdata", "nope.vlx")}, stdio)
	require.Equal(t, mainer.Failure, code)
	assert.Empty(t, buf.String())
	assert.NotEmpty(t, ebuf.String())
}

func TestRepl(t *testing.T) {
	in := strings.NewReader(`var a = 1;
print a + 2;
bad +;
print "ok";
`)
	var buf, ebuf bytes.Buffer
	stdio := mainer.Stdio{Stdin: in, Stdout: &buf, Stderr: &ebuf}

	var c maincmd.Cmd
	code := c.Main([]string{"velox"}, stdio)
	require.Equal(t, mainer.Success, code)

	// globals persist across lines, and the compile error on the third line
	// does not poison the fourth
	assert.Equal(t, "> > 3\n> > ok\n> ", buf.String())
	assert.Equal(t, "[line 1] Error at ';': Expect expression.\n", ebuf.String())
}

func TestPrintTokens(t *testing.T) {
	var buf, ebuf bytes.Buffer
	stdio := mainer.Stdio{Stdout: &buf, Stderr: &ebuf}

	var c maincmd.Cmd
	code := c.Main([]string{"velox", "--print-tokens", filepath.Join("testdata", "in", "forloop.vlx")}, stdio)
	require.Equal(t, mainer.Success, code)
	assert.Empty(t, ebuf.String())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, "var", lines[0])
	assert.Equal(t, "identifier total", lines[1])
	assert.Equal(t, "'='", lines[2])
	assert.Equal(t, "number literal 0 0", lines[3])
	assert.Equal(t, "';'", lines[4])
	assert.Equal(t, "end of file", lines[len(lines)-1])
}

func TestPrintAst(t *testing.T) {
	var buf, ebuf bytes.Buffer
	stdio := mainer.Stdio{Stdout: &buf, Stderr: &ebuf}

	var c maincmd.Cmd
	code := c.Main([]string{"velox", "--print-ast", filepath.Join("testdata", "in", "hello.vlx")}, stdio)
	require.Equal(t, mainer.Success, code)
	assert.Empty(t, ebuf.String())
	assert.Equal(t, `(print "hello, world!")
(print (+ 1 (* 2 3)))
(print (* (group (+ 1 2)) 3))
(print (/ 10 4))
(print (! nil))
`, buf.String())
}
