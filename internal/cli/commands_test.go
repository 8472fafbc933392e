package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/dbolivar25/cpp-tools/internal/project"
	"github.com/dbolivar25/cpp-tools/internal/toolchain"
	"github.com/google/go-cmp/cmp"
)

func TestInitConfigures(t *testing.T) {
	fr := &fakeRunner{}
	setup(t, fr)
	root := scaffoldedProject(t, "name: foo\nfile_ext: cpp\nbuild_dir: out\n")

	out, err := execute(t, "init", "-C", root)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	assertArgv(t, fr, [][]string{{"cmake", "-S", root, "-B", filepath.Join(root, "out")}})
	assertContains(t, out, "Configured")
}

func TestInitRootDirFlag(t *testing.T) {
	fr := &fakeRunner{}
	setup(t, fr)
	root := scaffoldedProject(t, "")

	if _, err := execute(t, "init", "-r", root, "-b", "cmake-out"); err != nil {
		t.Fatalf("init: %v", err)
	}
	assertArgv(t, fr, [][]string{{"cmake", "-S", root, "-B", filepath.Join(root, "cmake-out")}})
}

func TestInitWithoutCMakeLists(t *testing.T) {
	fr := &fakeRunner{}
	setup(t, fr)

	_, err := execute(t, "init", "-C", t.TempDir())
	if !errors.Is(err, project.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
	if len(fr.cmds) != 0 {
		t.Errorf("cmake should not run, got %v", fr.argv())
	}
}

func TestInitPropagatesToolFailure(t *testing.T) {
	setup(t, &fakeRunner{results: map[string]fakeResult{"cmake": {code: 1}}})
	root := scaffoldedProject(t, "")

	_, err := execute(t, "init", "-C", root)
	var exitErr *toolchain.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 1 {
		t.Fatalf("error = %v, want cmake ExitError", err)
	}
	if ExitCode(err) != 1 {
		t.Errorf("ExitCode = %d, want 1", ExitCode(err))
	}
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		flags    []string
		buildDir string
	}{
		{"builtin default", "", nil, "build"},
		{"manifest", "name: foo\nfile_ext: cpp\nbuild_dir: out\n", nil, "out"},
		{"flag beats manifest", "name: foo\nfile_ext: cpp\nbuild_dir: out\n", []string{"-b", "tmp/build"}, "tmp/build"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fr := &fakeRunner{}
			setup(t, fr)
			root := scaffoldedProject(t, tt.manifest)
			buildDir := filepath.Join(root, filepath.FromSlash(tt.buildDir))
			mkdir(t, buildDir)

			out, err := execute(t, append([]string{"build", "-C", root}, tt.flags...)...)
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			assertArgv(t, fr, [][]string{{"cmake", "--build", buildDir}})
			assertContains(t, out, "Build succeeded")
		})
	}
}

func TestBuildWithoutBuildDir(t *testing.T) {
	fr := &fakeRunner{}
	setup(t, fr)
	root := scaffoldedProject(t, "")

	_, err := execute(t, "build", "-C", root)
	if !errors.Is(err, project.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
	assertContains(t, err.Error(), "init")
}

func TestBuildInvalidManifest(t *testing.T) {
	setup(t, &fakeRunner{})
	root := scaffoldedProject(t, "name: foo\nfile_ext: rust\n")
	mkdir(t, filepath.Join(root, "build"))

	_, err := execute(t, "build", "-C", root)
	if !errors.Is(err, project.ErrInvalidOption) {
		t.Fatalf("error = %v, want ErrInvalidOption", err)
	}
}

// runnableProject returns a project whose executable foo already exists.
func runnableProject(t *testing.T) (root, execDir string) {
	t.Helper()
	root = scaffoldedProject(t, "name: foo\nfile_ext: cpp\n")
	mkdir(t, filepath.Join(root, "build"))
	execDir = filepath.Join(root, "bin")
	name := "foo"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	writeFile(t, filepath.Join(execDir, name), "#!/bin/sh\n", 0755)
	return root, execDir
}

func TestRunForwardsArgsAndExitCode(t *testing.T) {
	fr := &fakeRunner{results: map[string]fakeResult{"foo": {code: 7}}}
	setup(t, fr)
	root, execDir := runnableProject(t)

	_, err := execute(t, "run", "-C", root, "--", "a", "--flag", "b c")
	if ExitCode(err) != 7 {
		t.Fatalf("ExitCode = %d (err %v), want 7", ExitCode(err), err)
	}

	if len(fr.cmds) != 2 {
		t.Fatalf("expected build and run, got %v", fr.argv())
	}
	if diff := cmp.Diff([]string{"--build", filepath.Join(root, "build")}, fr.cmds[0].Args); diff != "" {
		t.Errorf("build args mismatch (-want +got):\n%s", diff)
	}
	exe := fr.cmds[1]
	if diff := cmp.Diff([]string{"a", "--flag", "b c"}, exe.Args); diff != "" {
		t.Errorf("program args mismatch (-want +got):\n%s", diff)
	}
	if exe.Dir != execDir {
		t.Errorf("program ran in %q, want %q", exe.Dir, execDir)
	}
}

func TestRunSuccess(t *testing.T) {
	fr := &fakeRunner{results: map[string]fakeResult{"foo": {stdout: "Hello, World!\n"}}}
	setup(t, fr)
	root, _ := runnableProject(t)

	out, err := execute(t, "run", "-C", root, "--no-build")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(fr.cmds) != 1 {
		t.Fatalf("--no-build should skip cmake, got %v", fr.argv())
	}
	assertContains(t, out, "Hello, World!")
}

func TestRunExecNameFallsBackToDirectory(t *testing.T) {
	fr := &fakeRunner{}
	setup(t, fr)
	parent := t.TempDir()
	root := filepath.Join(parent, "widget")
	writeFile(t, filepath.Join(root, "bin", "widget"), "#!/bin/sh\n", 0755)
	if runtime.GOOS == "windows" {
		t.Skip("executable naming differs on windows")
	}

	if _, err := execute(t, "run", "-C", root, "--no-build"); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := filepath.Base(fr.cmds[0].Name); got != "widget" {
		t.Errorf("ran %q, want widget", got)
	}
}

func TestRunExecNameFlag(t *testing.T) {
	fr := &fakeRunner{}
	setup(t, fr)
	root, execDir := runnableProject(t)
	writeFile(t, filepath.Join(execDir, "tool"), "#!/bin/sh\n", 0755)
	if runtime.GOOS == "windows" {
		t.Skip("executable naming differs on windows")
	}

	if _, err := execute(t, "run", "-C", root, "--no-build", "--exec-name", "tool"); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := fr.cmds[0].Name; got != filepath.Join(execDir, "tool") {
		t.Errorf("ran %q", got)
	}
}

func TestRunMissingExecutable(t *testing.T) {
	fr := &fakeRunner{}
	setup(t, fr)
	root := scaffoldedProject(t, "name: foo\nfile_ext: cpp\n")
	mkdir(t, filepath.Join(root, "build"))

	_, err := execute(t, "run", "-C", root)
	if !errors.Is(err, project.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
	if ExitCode(err) != 1 {
		t.Errorf("ExitCode = %d, want 1", ExitCode(err))
	}
	assertArgv(t, fr, [][]string{{"cmake", "--build", filepath.Join(root, "build")}})
}

func TestRunStopsOnBuildFailure(t *testing.T) {
	fr := &fakeRunner{results: map[string]fakeResult{"cmake": {code: 2}}}
	setup(t, fr)
	root, _ := runnableProject(t)

	_, err := execute(t, "run", "-C", root)
	if !errors.Is(err, toolchain.ErrToolFailure) {
		t.Fatalf("error = %v, want ErrToolFailure", err)
	}
	if ExitCode(err) != 1 {
		t.Errorf("ExitCode = %d, want 1", ExitCode(err))
	}
	if len(fr.cmds) != 1 {
		t.Errorf("program should not run after failed build, got %v", fr.argv())
	}
}

func TestFormatPassesSourceFiles(t *testing.T) {
	fr := &fakeRunner{}
	setup(t, fr)
	root := scaffoldedProject(t, "")
	src := filepath.Join(root, "src")
	writeFile(t, filepath.Join(src, "util", "math.hpp"), "", 0644)
	writeFile(t, filepath.Join(src, "notes.txt"), "", 0644)
	writeFile(t, filepath.Join(src, ".cache", "gen.cpp"), "", 0644)
	writeFile(t, filepath.Join(root, "include", "foo.h"), "", 0644)

	out, err := execute(t, "format", "-C", root)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	assertArgv(t, fr, [][]string{{
		"clang-format", "-i", "-style=file",
		filepath.Join(src, "main.cpp"),
		filepath.Join(src, "util", "math.hpp"),
	}})
	assertContains(t, out, "Formatted 2 file(s)")
}

func TestFormatStyleSources(t *testing.T) {
	fr := &fakeRunner{}
	setup(t, fr)
	t.Setenv("CPP_TOOLS_FORMAT_STYLE", "Google")
	root := scaffoldedProject(t, "")

	if _, err := execute(t, "format", "-C", root); err != nil {
		t.Fatalf("format: %v", err)
	}
	if got := fr.cmds[0].Args[1]; got != "-style=Google" {
		t.Errorf("style from env = %q", got)
	}

	fr.cmds = nil
	if _, err := execute(t, "format", "-C", root, "--style", "LLVM"); err != nil {
		t.Fatalf("format: %v", err)
	}
	if got := fr.cmds[0].Args[1]; got != "-style=LLVM" {
		t.Errorf("style from flag = %q", got)
	}
}

func TestFormatMissingSourceDir(t *testing.T) {
	fr := &fakeRunner{}
	setup(t, fr)

	_, err := execute(t, "format", "-C", t.TempDir())
	if !errors.Is(err, project.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestFormatNoFiles(t *testing.T) {
	fr := &fakeRunner{}
	setup(t, fr)
	root := t.TempDir()
	mkdir(t, filepath.Join(root, "src"))

	out, err := execute(t, "format", "-C", root)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if len(fr.cmds) != 0 {
		t.Errorf("clang-format should not run, got %v", fr.argv())
	}
	assertContains(t, out, "No C/C++ files")
}

func TestDoctorTools(t *testing.T) {
	fr := &fakeRunner{results: map[string]fakeResult{
		"cmake":        {stdout: "cmake version 3.28.1\n"},
		"clang-format": {err: fmt.Errorf("%w: clang-format", toolchain.ErrToolNotFound)},
		"git":          {stdout: "git version 2.43.0\n"},
		"cc":           {stdout: "cc (GCC) 13.2.0\n"},
		"c++":          {stdout: "c++ (GCC) 13.2.0\n"},
	}}
	setup(t, fr)

	out, err := execute(t, "doctor", "--check-tools")
	if err != nil {
		t.Fatalf("doctor: %v\n%s", err, out)
	}
	assertContains(t, out, "[ OK ] cmake 3.28.1")
	assertContains(t, out, "[WARN] clang-format not found")
	assertContains(t, out, "[ OK ] git 2.43.0")
}

func TestDoctorOutdatedCMake(t *testing.T) {
	fr := &fakeRunner{results: map[string]fakeResult{
		"cmake":        {stdout: "cmake version 3.10.2\n"},
		"clang-format": {stdout: "clang-format version 17.0.6\n"},
		"git":          {stdout: "git version 2.43.0\n"},
		"cc":           {stdout: "cc 13.2.0\n"},
		"c++":          {stdout: "c++ 13.2.0\n"},
	}}
	setup(t, fr)

	out, err := execute(t, "doctor", "--check-tools")
	if err == nil {
		t.Fatal("expected failure for outdated cmake")
	}
	assertContains(t, out, "[FAIL] cmake 3.10.2 does not satisfy >= 3.24")
}

func TestDoctorManifest(t *testing.T) {
	setup(t, &fakeRunner{})

	good := scaffoldedProject(t, "name: foo\nfile_ext: cpp\n")
	out, err := execute(t, "doctor", "--check-manifest", good)
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	assertContains(t, out, "[ OK ] Valid manifest: foo (cpp)")

	bad := filepath.Join(t.TempDir(), "cpp-tools.yaml")
	writeFile(t, bad, "name: foo\nfile_ext: rust\nsrc_dir: ../x\n", 0644)
	out, err = execute(t, "doctor", "--check-manifest", bad)
	if err == nil {
		t.Fatal("expected validation failure")
	}
	assertContains(t, out, "validation issue(s)")
	assertContains(t, out, "/file_ext")
}

func TestDoctorMissingManifest(t *testing.T) {
	setup(t, &fakeRunner{})
	_, err := execute(t, "doctor", "--check-manifest", filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("error = %v, want not-exist", err)
	}
}
