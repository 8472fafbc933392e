package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var versionPattern = regexp.MustCompile(`\d+\.\d+(?:\.\d+)?`)

// Requirement describes an external tool and the versions cpp-tools accepts.
type Requirement struct {
	Name       string // Display name, e.g. "cmake".
	Bin        string // Program to query.
	Constraint string // Semver constraint; empty accepts any version.
	Optional   bool   // Missing optional tools are warnings, not failures.
}

// Requirements returns the tools a full workflow needs. Bin values can be
// overridden by the caller before checking.
func Requirements() []Requirement {
	return []Requirement{
		{Name: "cmake", Bin: "cmake", Constraint: ">= 3.24"},
		{Name: "clang-format", Bin: "clang-format", Constraint: ">= 10", Optional: true},
		{Name: "git", Bin: "git", Constraint: ">= 2.0", Optional: true},
		{Name: "c compiler", Bin: "cc"},
		{Name: "c++ compiler", Bin: "c++"},
	}
}

// Status is the outcome of checking one Requirement.
type Status struct {
	Requirement
	Version   *semver.Version
	Found     bool
	Satisfied bool
	Err       error
}

// ParseVersion extracts the first dotted version number from tool output such
// as "cmake version 3.28.1" or "cc (GCC) 13.2.0".
func ParseVersion(output string) (*semver.Version, error) {
	match := versionPattern.FindString(output)
	if match == "" {
		return nil, fmt.Errorf("no version number in %q", firstLine(output))
	}
	return semver.NewVersion(match)
}

// Satisfies reports whether version meets constraint.
func Satisfies(version *semver.Version, constraint string) (bool, error) {
	if constraint == "" {
		return true, nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("parsing constraint %q: %w", constraint, err)
	}
	return c.Check(version), nil
}

// VersionOutput runs `<bin> --version` and returns its standard output.
func VersionOutput(ctx context.Context, r Runner, bin string) (string, error) {
	var out bytes.Buffer
	err := run(ctx, r, bin, Command{Name: bin, Args: []string{"--version"}, Stdout: &out, Stderr: &bytes.Buffer{}})
	if err != nil {
		return "", err
	}
	return out.String(), nil
}

// Check queries req.Bin and evaluates its version against req.Constraint.
func Check(ctx context.Context, r Runner, req Requirement) Status {
	st := Status{Requirement: req}

	out, err := VersionOutput(ctx, r, req.Bin)
	if err != nil {
		st.Found = !errors.Is(err, ErrToolNotFound)
		st.Err = err
		return st
	}
	st.Found = true

	v, err := ParseVersion(out)
	if err != nil {
		st.Err = err
		return st
	}
	st.Version = v

	ok, err := Satisfies(v, req.Constraint)
	if err != nil {
		st.Err = err
		return st
	}
	st.Satisfied = ok
	return st
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
