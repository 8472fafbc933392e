package project

import "errors"

// Sentinel errors shared by the resolver, scaffolder, and commands.
var (
	// ErrInvalidOption indicates a flag or config value failed validation.
	ErrInvalidOption = errors.New("invalid option")

	// ErrAlreadyExists indicates the scaffold target exists and is not empty.
	ErrAlreadyExists = errors.New("already exists")

	// ErrIO indicates a filesystem operation failed.
	ErrIO = errors.New("i/o error")

	// ErrNotFound indicates an expected directory, file, or executable is missing.
	ErrNotFound = errors.New("not found")
)
