package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dbolivar25/cpp-tools/internal/platform"
	"github.com/dbolivar25/cpp-tools/internal/project"
	"github.com/dbolivar25/cpp-tools/internal/toolchain"
	"github.com/spf13/cobra"
)

var (
	runNoBuild  bool
	runExecName string
)

func init() {
	runCmd.Flags().BoolVar(&runNoBuild, "no-build", false, "Run the existing executable without rebuilding")
	runCmd.Flags().StringVar(&runExecName, "exec-name", "", "Executable name (default: project name)")
	addLayoutFlags(runCmd, project.KeyBuildDir, project.KeyExecDir)
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run [-- args...]",
	Short: "Build and run the project executable",
	Long: `Build the project, then run <root>/<exec-dir>/<name> from the executable
directory. Arguments after -- are passed to the program unchanged and its exit
code becomes the exit code of cpp-tools.

The executable name is taken from --exec-name, then the project manifest,
then the name of the project directory.

Examples:
  cpp-tools run
  cpp-tools run -- --input data.txt -v`,
	Args: cobra.ArbitraryArgs,
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}

	opts := layoutOptions(cmd)
	if runExecName != "" {
		opts[project.KeyName] = runExecName
	}
	cfg, err := resolveProject(root, opts, true)
	if err != nil {
		return err
	}

	runner := newRunner(cmd)
	if !runNoBuild {
		if err := buildProject(cmd.Context(), runner, root, cfg); err != nil {
			return err
		}
	}

	execDir := filepath.Join(root, filepath.FromSlash(cfg.ExecDir))
	path := filepath.Join(execDir, platform.ExecutableName(cfg.Name))
	ok, err := platform.IsExecutable(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: executable %s (%s)", project.ErrNotFound, path, hint("build"))
	case err != nil:
		return fmt.Errorf("%w: checking %s: %v", project.ErrIO, path, err)
	case !ok:
		return fmt.Errorf("%s is not an executable file", path)
	}

	exe := &toolchain.Executable{
		Runner: runner,
		Stdin:  cmd.InOrStdin(),
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	}
	logger.Debug("running executable", "path", path, "args", args)
	code, err := exe.Run(cmd.Context(), path, execDir, args)
	if err != nil {
		return fmt.Errorf("running %s: %w", cfg.Name, err)
	}
	if code != 0 {
		return &childExitError{name: cfg.Name, code: code}
	}
	return nil
}
