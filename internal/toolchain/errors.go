package toolchain

import (
	"errors"
	"fmt"
)

var (
	// ErrToolFailure indicates an external tool exited with a non-zero status.
	ErrToolFailure = errors.New("external tool failed")

	// ErrToolNotFound indicates the program is not on PATH.
	ErrToolNotFound = errors.New("tool not found")
)

// ExitError reports a subprocess that ran but exited non-zero.
type ExitError struct {
	Tool string
	Cmd  string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with code %d (%s)", e.Tool, e.Code, e.Cmd)
}

// Unwrap lets errors.Is(err, ErrToolFailure) match any ExitError.
func (e *ExitError) Unwrap() error { return ErrToolFailure }
