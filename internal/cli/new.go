package cli

import (
	"fmt"
	"path/filepath"

	"github.com/dbolivar25/cpp-tools/internal/branding"
	"github.com/dbolivar25/cpp-tools/internal/config"
	"github.com/dbolivar25/cpp-tools/internal/project"
	"github.com/dbolivar25/cpp-tools/internal/scaffold"
	"github.com/dbolivar25/cpp-tools/internal/toolchain"
	"github.com/spf13/cobra"
)

var (
	newName        string
	newNoGit       bool
	newNoConfigure bool
	newClangFormat bool
	newManifest    bool
)

func init() {
	newCmd.Flags().StringVarP(&newName, "name", "n", "", "Project name (alternative to the positional argument)")
	newCmd.Flags().BoolVar(&newNoGit, "no-git", false, "Skip git repository initialization")
	newCmd.Flags().BoolVar(&newNoConfigure, "no-configure", false, "Skip the initial cmake configure")
	newCmd.Flags().BoolVar(&newClangFormat, "clang-format", false, "Also write a .clang-format file (default: scaffold.clang_format config)")
	newCmd.Flags().BoolVar(&newManifest, "manifest", false, "Also write "+branding.ManifestFile()+" recording the layout (default: scaffold.manifest config)")
	addLayoutFlags(newCmd)
	rootCmd.AddCommand(newCmd)
}

var newCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a new C/C++ project",
	Long: `Create a new project directory with a hello-world source file, include,
build and executable directories, a CMakeLists.txt and .gitignore.

--clang-format adds a .clang-format file. --manifest adds cpp-tools.yaml so
later commands pick up a non-default layout without repeating flags.

The project is configured with cmake and committed to a fresh git repository.
Both steps are best-effort: a missing tool is reported as a warning.

Examples:
  cpp-tools new hello
  cpp-tools new hello -f c --src-dir source --manifest`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNew,
}

func runNew(cmd *cobra.Command, args []string) error {
	name, err := newProjectName(args)
	if err != nil {
		return err
	}

	opts := layoutOptions(cmd)
	opts[project.KeyName] = name

	cfg, err := project.Resolve(opts, config.Defaults())
	if err != nil {
		return err
	}

	parent, err := projectRoot()
	if err != nil {
		return err
	}
	root := filepath.Join(parent, cfg.Name)

	files, err := scaffold.Generate(cfg, scaffold.Extras{
		ClangFormat: boolOption(cmd, "clang-format", newClangFormat, config.KeyScaffoldClangFormat),
		Manifest:    boolOption(cmd, "manifest", newManifest, config.KeyScaffoldManifest),
	})
	if err != nil {
		return err
	}

	runner := newRunner(cmd)
	var vcs scaffold.VCS
	if !newNoGit {
		vcs = &toolchain.Git{
			Runner:  runner,
			Bin:     config.Tool(config.KeyToolGit, "git"),
			Message: config.Get(config.KeyCommitMessage),
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Creating %s project %s in %s\n", cfg.Ext.Lang(), cfg.Name, root)

	result, err := scaffold.New(appFS, vcs, logger).Write(cmd.Context(), root, cfg, files)
	if err != nil {
		return fmt.Errorf("creating project %s: %w", cfg.Name, err)
	}

	for _, f := range result.Files {
		fmt.Fprintf(out, "  %s\n", f)
	}
	for _, w := range result.Warnings {
		warnColor.Fprintf(out, "Warning: %s\n", w)
	}

	if !newNoConfigure {
		cm := &toolchain.CMake{Runner: runner, Bin: config.Tool(config.KeyToolCMake, "cmake")}
		if err := cm.Configure(cmd.Context(), root, filepath.Join(root, cfg.BuildDir)); err != nil {
			warnColor.Fprintf(out, "Warning: cmake configure failed: %v\n", err)
			fmt.Fprintf(out, "Run '%s init' inside the project once cmake is available.\n", cmd.Root().Name())
		}
	}

	successColor.Fprintf(out, "Created project %s\n", cfg.Name)
	return nil
}

// boolOption returns the flag value when the user set it, else the config key.
func boolOption(cmd *cobra.Command, flag string, value bool, key string) bool {
	if cmd.Flags().Changed(flag) {
		return value
	}
	return config.Bool(key)
}

// newProjectName picks the name from the positional argument or --name.
func newProjectName(args []string) (string, error) {
	switch {
	case len(args) == 1 && newName != "" && args[0] != newName:
		return "", fmt.Errorf("%w: project name given twice (%q and --name %q)", project.ErrInvalidOption, args[0], newName)
	case len(args) == 1:
		return args[0], nil
	case newName != "":
		return newName, nil
	default:
		return "", fmt.Errorf("%w: project name is required", project.ErrInvalidOption)
	}
}
