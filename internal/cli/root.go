package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dbolivar25/cpp-tools/internal/branding"
	"github.com/dbolivar25/cpp-tools/internal/config"
	"github.com/dbolivar25/cpp-tools/internal/toolchain"
	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	projectDir string
	verbose    bool
)

// logger is replaced in PersistentPreRunE once --verbose is known.
var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// appFS is the filesystem new projects are written to.
var appFS afero.Fs = afero.NewOsFs()

// newRunner builds the subprocess runner for a command. Tests swap it out.
var newRunner = func(cmd *cobra.Command) toolchain.Runner {
	return &toolchain.ExecRunner{
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
		Logger: logger,
	}
}

var (
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed, color.Bold)
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&projectDir, "project-dir", "C", ".", "Project root directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log external commands and file operations to stderr")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scaffolds C and C++ projects with a standard layout and CMake build,
then drives cmake, clang-format, and git for the usual build, run, and format loop.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		logger = newLogger(cmd.ErrOrStderr(), verbose)
		return nil
	},
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// childExitError carries the exit code of a program started by `run`. It is
// passed through as the CLI's own exit code without an error message.
type childExitError struct {
	name string
	code int
}

func (e *childExitError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.name, e.code)
}

// Execute runs the root command with build info injected via ldflags. Errors
// are printed once here; the caller maps the result through ExitCode.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	var ce *childExitError
	if err != nil && !errors.As(err, &ce) {
		errorColor.Fprint(rootCmd.ErrOrStderr(), "Error: ")
		rootCmd.PrintErrln(err)
	}
	return err
}

// ExitCode maps an Execute result to a process exit status: 0 on success,
// the child's status for `run`, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ce *childExitError
	if errors.As(err, &ce) {
		return ce.code
	}
	return 1
}
