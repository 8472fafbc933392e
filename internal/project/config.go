package project

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Option keys. They double as the CLI flag names and the manifest keys.
const (
	KeyName       = "name"
	KeyExt        = "file_ext"
	KeySourceDir  = "src_dir"
	KeyIncludeDir = "include_dir"
	KeyBuildDir   = "build_dir"
	KeyExecDir    = "exec_dir"
)

// Ext is the source file extension, which also selects the language.
type Ext string

const (
	ExtCPP Ext = "cpp"
	ExtC   Ext = "c"
)

// ParseExt accepts "c" or "cpp" in any case, with or without a leading dot.
func ParseExt(s string) (Ext, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "cpp":
		return ExtCPP, nil
	case "c":
		return ExtC, nil
	}
	return "", fmt.Errorf("%w: valid file extensions are 'cpp' and 'c', got %q", ErrInvalidOption, s)
}

// Lang returns the CMake language identifier ("CXX" or "C").
func (e Ext) Lang() string {
	if e == ExtC {
		return "C"
	}
	return "CXX"
}

// Standard returns the language standard the generated build requests.
func (e Ext) Standard() string {
	if e == ExtC {
		return "17"
	}
	return "23"
}

// Config is a fully resolved project configuration. All directory fields are
// relative, slash-separated, and free of ".." elements.
type Config struct {
	Name       string
	Ext        Ext
	SourceDir  string
	IncludeDir string
	BuildDir   string
	ExecDir    string
}

// Dirs returns the project directories in creation order.
func (c *Config) Dirs() []string {
	return []string{c.SourceDir, c.IncludeDir, c.BuildDir, c.ExecDir}
}

// Options holds raw option values keyed by Key* constants. A missing key means
// the value was not supplied; a present empty value is rejected by Resolve.
type Options map[string]string

// Builtin returns the fixed defaults used when no other layer supplies a value.
func Builtin() Options {
	return Options{
		KeyExt:        string(ExtCPP),
		KeySourceDir:  "src",
		KeyIncludeDir: "include",
		KeyBuildDir:   "build",
		KeyExecDir:    "bin",
	}
}

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.+-]*$`)

// Resolve merges option layers, earliest first, and validates the result.
// The first layer that contains a key wins; Builtin is always consulted last.
func Resolve(layers ...Options) (*Config, error) {
	layers = append(layers, Builtin())
	lookup := func(key string) (string, bool) {
		for _, l := range layers {
			if v, ok := l[key]; ok {
				return v, true
			}
		}
		return "", false
	}

	name, ok := lookup(KeyName)
	if !ok {
		return nil, fmt.Errorf("%w: project name is required", ErrInvalidOption)
	}
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	rawExt, _ := lookup(KeyExt)
	ext, err := ParseExt(rawExt)
	if err != nil {
		return nil, err
	}

	cfg := &Config{Name: name, Ext: ext}
	for _, f := range []struct {
		key string
		dst *string
	}{
		{KeySourceDir, &cfg.SourceDir},
		{KeyIncludeDir, &cfg.IncludeDir},
		{KeyBuildDir, &cfg.BuildDir},
		{KeyExecDir, &cfg.ExecDir},
	} {
		v, _ := lookup(f.key)
		clean, err := CleanSegment(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.key, err)
		}
		*f.dst = clean
	}
	return cfg, nil
}

// ValidateName checks that name is usable as a directory name and CMake target.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: invalid project name %q: must match %s", ErrInvalidOption, name, namePattern)
	}
	return nil
}

// CleanSegment validates a project-relative directory and returns it in
// clean, slash-separated form.
func CleanSegment(s string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("%w: directory must not be empty", ErrInvalidOption)
	}
	slashed := strings.ReplaceAll(s, "\\", "/")
	if filepath.IsAbs(s) || strings.HasPrefix(slashed, "/") || filepath.VolumeName(s) != "" {
		return "", fmt.Errorf("%w: directory %q must be relative", ErrInvalidOption, s)
	}
	for _, part := range strings.Split(slashed, "/") {
		if part == ".." {
			return "", fmt.Errorf("%w: directory %q must not contain '..'", ErrInvalidOption, s)
		}
	}
	clean := filepath.ToSlash(filepath.Clean(filepath.FromSlash(slashed)))
	if clean == "." {
		return "", fmt.Errorf("%w: directory %q must name a subdirectory", ErrInvalidOption, s)
	}
	return clean, nil
}
