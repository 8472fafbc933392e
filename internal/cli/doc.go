// Package cli defines the Cobra command tree for the cpp-tools CLI. Each file
// in this package registers one top-level command (new, init, build, run,
// format, etc.) with the root command. Command implementations resolve the
// project layout and delegate to internal packages for scaffolding and
// external tool invocation.
package cli
