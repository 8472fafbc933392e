//go:build integration

package integration_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dbolivar25/cpp-tools/internal/toolchain"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir    string // CPP_TOOLS_HOME, holds config.yaml
	ProjectDir string // Parent directory new projects are created in
}

// setupTestEnv creates isolated temp directories and points CPP_TOOLS_HOME at
// one of them so user config never leaks into the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:    t.TempDir(),
		ProjectDir: t.TempDir(),
	}
	t.Setenv("CPP_TOOLS_HOME", env.HomeDir)
	return env
}

// requireToolchain skips the test unless every required tool is installed
// at a supported version.
func requireToolchain(t *testing.T) {
	t.Helper()
	for _, req := range toolchain.Requirements() {
		if req.Optional {
			continue
		}
		st := toolchain.Check(context.Background(), &toolchain.ExecRunner{}, req)
		if !st.Satisfied {
			t.Skipf("%s unavailable (%s): %v", req.Name, req.Constraint, st.Err)
		}
	}
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertDirExists fails the test if the directory does not exist.
func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory to exist: %s (error: %v)", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %s to be a directory, but it is a file", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("%s does not contain %q\ngot:\n%s", path, substr, data)
	}
}
