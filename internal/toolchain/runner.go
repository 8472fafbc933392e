package toolchain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"syscall"
)

// Command describes one subprocess invocation.
type Command struct {
	Name string   // Program name or path, resolved through PATH.
	Args []string // Arguments, passed verbatim.
	Dir  string   // Working directory; empty means the current directory.
	Env  []string // Extra KEY=VALUE pairs appended to the inherited environment.

	Stdin  io.Reader // Defaults to nothing.
	Stdout io.Writer // Defaults to the runner's Stdout.
	Stderr io.Writer // Defaults to the runner's Stderr.
}

// String renders the command line for logs and error messages.
func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Result captures how a subprocess ended.
type Result struct {
	ExitCode int
}

// Runner executes commands. A non-zero exit is reported in Result, not as an
// error; the error return is for processes that could not be started.
type Runner interface {
	Run(ctx context.Context, cmd Command) (*Result, error)
}

// ExecRunner runs commands with os/exec, streaming output.
type ExecRunner struct {
	// Stdout and Stderr can be set for testing; defaults to os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

// Run starts cmd, waits for it, and returns its exit code. Canceling ctx kills
// the process.
func (r *ExecRunner) Run(ctx context.Context, c Command) (*Result, error) {
	bin, err := exec.LookPath(c.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrToolNotFound, c.Name, err)
	}

	cmd := exec.CommandContext(ctx, bin, c.Args...)
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}
	cmd.Stdin = c.Stdin
	cmd.Stdout = firstWriter(c.Stdout, r.Stdout, os.Stdout)
	cmd.Stderr = firstWriter(c.Stderr, r.Stderr, os.Stderr)

	r.logger().Debug("running command", "cmd", c.String(), "dir", c.Dir)

	err = cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitCode(exitErr)
			r.logger().Debug("command exited", "cmd", c.Name, "code", code)
			return &Result{ExitCode: code}, nil
		}
		return nil, fmt.Errorf("running %s: %w", c.Name, err)
	}

	r.logger().Debug("command exited", "cmd", c.Name, "code", 0)
	return &Result{ExitCode: 0}, nil
}

// exitCode reports a process killed by a signal as 128+signo, the shell
// convention, instead of the -1 os/exec returns.
func exitCode(err *exec.ExitError) int {
	if ws, ok := err.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return err.ExitCode()
}

func (r *ExecRunner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r.Logger
}

func firstWriter(ws ...io.Writer) io.Writer {
	for _, w := range ws {
		if w != nil {
			return w
		}
	}
	return io.Discard
}

// run executes cmd and converts a non-zero exit into an *ExitError.
func run(ctx context.Context, r Runner, tool string, cmd Command) error {
	res, err := r.Run(ctx, cmd)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return &ExitError{Tool: tool, Cmd: cmd.String(), Code: res.ExitCode}
	}
	return nil
}
