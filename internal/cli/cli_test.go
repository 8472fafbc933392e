package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dbolivar25/cpp-tools/internal/toolchain"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ─── Test Helpers ───────────────────────────────────────────────────

type fakeResult struct {
	code   int
	stdout string
	err    error
}

// fakeRunner records every command and answers by program base name.
type fakeRunner struct {
	cmds    []toolchain.Command
	results map[string]fakeResult
}

func (f *fakeRunner) Run(_ context.Context, c toolchain.Command) (*toolchain.Result, error) {
	f.cmds = append(f.cmds, c)
	r := f.results[filepath.Base(c.Name)]
	if r.err != nil {
		return nil, r.err
	}
	if r.stdout != "" && c.Stdout != nil {
		io.WriteString(c.Stdout, r.stdout)
	}
	return &toolchain.Result{ExitCode: r.code}, nil
}

// argv returns each recorded command as program base name plus arguments.
func (f *fakeRunner) argv() [][]string {
	out := make([][]string, len(f.cmds))
	for i, c := range f.cmds {
		out[i] = append([]string{filepath.Base(c.Name)}, c.Args...)
	}
	return out
}

// setup isolates user config and installs fr as the command runner.
func setup(t *testing.T, fr *fakeRunner) {
	t.Helper()
	t.Setenv("CPP_TOOLS_HOME", t.TempDir())
	viper.Reset()

	prev := newRunner
	newRunner = func(*cobra.Command) toolchain.Runner { return fr }
	t.Cleanup(func() {
		newRunner = prev
		viper.Reset()
	})
}

// execute runs the root command with args and returns combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

// resetFlags restores every flag to its default between executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func writeFile(t *testing.T, path, content string, perm os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		t.Fatal(err)
	}
}

func mkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatal(err)
	}
}

// scaffoldedProject lays out a minimal existing project named foo.
func scaffoldedProject(t *testing.T, manifest string) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "CMakeLists.txt"), "project(foo CXX)\n", 0644)
	writeFile(t, filepath.Join(root, "src", "main.cpp"), "int main() {}\n", 0644)
	if manifest != "" {
		writeFile(t, filepath.Join(root, "cpp-tools.yaml"), manifest, 0644)
	}
	return root
}

func assertArgv(t *testing.T, fr *fakeRunner, want [][]string) {
	t.Helper()
	if diff := cmp.Diff(want, fr.argv()); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
}

func assertContains(t *testing.T, content, substr string) {
	t.Helper()
	if !strings.Contains(content, substr) {
		t.Errorf("output does not contain %q\ngot:\n%s", substr, content)
	}
}
