// Package filetest implements the golden-file harness used by the pipeline
// tests: source scripts live in a testdata input directory, and the expected
// outputs live next to them as golden files that can be regenerated with the
// update flags.
package filetest

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/kylelemons/godebug/diff"
)

var testUpdateAllTests = flag.Bool("test.update-all-tests", false, "If set, sets all test.update-*-tests.")

// SourceFiles returns the names of the regular files in dir with the
// specified extension (with or without the leading dot).
func SourceFiles(t *testing.T, dir, ext string) []string {
	t.Helper()

	if ext != "" && ext[0] != '.' {
		ext = "." + ext
	}

	dents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	var names []string
	for _, dent := range dents {
		if dent.Type().IsRegular() && filepath.Ext(dent.Name()) == ext {
			names = append(names, dent.Name())
		}
	}
	return names
}

// DiffOutput validates that output matches the golden file
// <resultDir>/<name>.want, or rewrites the golden file when the update flag
// is set.
func DiffOutput(t *testing.T, name, output, resultDir string, updateFlag *bool) {
	t.Helper()
	diffOrUpdate(t, "output", filepath.Join(resultDir, name+".want"), output, updateFlag)
}

// DiffErrors validates that the error output matches the golden file
// <resultDir>/<name>.err, or rewrites the golden file when the update flag
// is set.
func DiffErrors(t *testing.T, name, output, resultDir string, updateFlag *bool) {
	t.Helper()
	diffOrUpdate(t, "errors", filepath.Join(resultDir, name+".err"), output, updateFlag)
}

func diffOrUpdate(t *testing.T, label, goldFile, output string, updateFlag *bool) {
	t.Helper()

	if *updateFlag || *testUpdateAllTests {
		if err := os.WriteFile(goldFile, []byte(output), 0600); err != nil {
			t.Fatal(err)
		}
		return
	}

	wantb, err := os.ReadFile(goldFile)
	if err != nil && !os.IsNotExist(err) {
		t.Fatal(err)
	}

	if patch := diff.Diff(string(wantb), output); patch != "" {
		t.Errorf("diff %s:\n%s\n", label, patch)
	}
}
