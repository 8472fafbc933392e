// Package project resolves and validates the configuration of a C/C++
// project: its name, source language, and the directory layout used by every
// command. It also reads and writes the per-project manifest that "new"
// leaves at the project root so later commands agree on the same layout.
package project
