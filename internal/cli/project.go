package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/dbolivar25/cpp-tools/internal/branding"
	"github.com/dbolivar25/cpp-tools/internal/config"
	"github.com/dbolivar25/cpp-tools/internal/project"
	"github.com/spf13/cobra"
)

// layoutFlag maps a command-line flag to a project option key.
type layoutFlag struct {
	key   string
	name  string
	short string
	usage string
}

var layoutFlags = []layoutFlag{
	{project.KeyExt, "file-ext", "f", "Source file extension (c or cpp)"},
	{project.KeySourceDir, "src-dir", "s", "Source directory"},
	{project.KeyIncludeDir, "include-dir", "i", "Header directory"},
	{project.KeyBuildDir, "build-dir", "b", "CMake build directory"},
	{project.KeyExecDir, "exec-dir", "e", "Executable output directory"},
}

// addLayoutFlags registers the named layout flags on cmd. With no keys every
// layout flag is added.
func addLayoutFlags(cmd *cobra.Command, keys ...string) {
	defaults := project.Builtin()
	for _, f := range layoutFlags {
		if len(keys) > 0 && !slices.Contains(keys, f.key) {
			continue
		}
		cmd.Flags().StringP(f.name, f.short, defaults[f.key], f.usage)
	}
}

// layoutOptions returns the layout flags the user actually set. Flags left at
// their default fall through to the manifest and user config.
func layoutOptions(cmd *cobra.Command) project.Options {
	opts := project.Options{}
	for _, f := range layoutFlags {
		flag := cmd.Flags().Lookup(f.name)
		if flag == nil || !flag.Changed {
			continue
		}
		opts[f.key] = flag.Value.String()
	}
	return opts
}

// projectRoot returns the absolute project root from --project-dir.
func projectRoot() (string, error) {
	root, err := filepath.Abs(projectDir)
	if err != nil {
		return "", fmt.Errorf("resolving project directory %q: %w", projectDir, err)
	}
	return root, nil
}

// resolveProject resolves the configuration of the existing project at root.
// Precedence is explicit flags, the project manifest, user config, then
// built-in defaults. The project name falls back to the root's base name;
// when needName is false an unusable base name is replaced so commands that
// never use the name still work in any directory.
func resolveProject(root string, explicit project.Options, needName bool) (*project.Config, error) {
	layers := []project.Options{explicit}

	m, err := project.LoadManifest(root)
	switch {
	case err == nil:
		logger.Debug("loaded project manifest", "path", project.ManifestPath(root))
		layers = append(layers, m.Options())
	case errors.Is(err, project.ErrNotFound):
		logger.Debug("no project manifest", "root", root)
	default:
		return nil, err
	}

	layers = append(layers, config.Defaults(), project.Options{project.KeyName: fallbackName(root, needName)})

	cfg, err := project.Resolve(layers...)
	if err != nil {
		return nil, fmt.Errorf("resolving project at %s: %w", root, err)
	}
	return cfg, nil
}

func fallbackName(root string, needName bool) string {
	name := filepath.Base(root)
	if needName || project.ValidateName(name) == nil {
		return name
	}
	return "project"
}

// requirePath fails with ErrNotFound when path does not exist.
func requirePath(path, what, hint string) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if errors.Is(err, os.ErrNotExist) {
		if hint != "" {
			return fmt.Errorf("%w: %s %s (%s)", project.ErrNotFound, what, path, hint)
		}
		return fmt.Errorf("%w: %s %s", project.ErrNotFound, what, path)
	}
	return fmt.Errorf("%w: checking %s: %v", project.ErrIO, path, err)
}

// hint formats a suggestion to run another subcommand.
func hint(subcommand string) string {
	return fmt.Sprintf("run '%s %s' first", branding.CLIName(), subcommand)
}
