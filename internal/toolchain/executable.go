package toolchain

import (
	"context"
	"io"
)

// Executable runs a built program with pass-through arguments and streams.
type Executable struct {
	Runner Runner
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run starts the program at path with args in dir and returns its exit code.
// A non-zero code is not an error.
func (e *Executable) Run(ctx context.Context, path, dir string, args []string) (int, error) {
	res, err := e.Runner.Run(ctx, Command{
		Name:   path,
		Args:   args,
		Dir:    dir,
		Stdin:  e.Stdin,
		Stdout: e.Stdout,
		Stderr: e.Stderr,
	})
	if err != nil {
		return -1, err
	}
	return res.ExitCode, nil
}
