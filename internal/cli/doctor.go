package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dbolivar25/cpp-tools/internal/config"
	"github.com/dbolivar25/cpp-tools/internal/project"
	"github.com/dbolivar25/cpp-tools/internal/toolchain"
	"github.com/spf13/cobra"
)

var (
	checkTools    bool
	checkManifest string
)

func init() {
	doctorCmd.Flags().BoolVar(&checkTools, "check-tools", false, "Verify cmake, clang-format, git and compilers")
	doctorCmd.Flags().StringVar(&checkManifest, "check-manifest", "", "Validate a project manifest file or project directory")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the C/C++ toolchain",
	Long: `Run diagnostic checks on the tools cpp-tools drives and, optionally, on a
project manifest. Without flags all tool checks run, plus a manifest check when
the project directory contains one.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		runner := newRunner(cmd)

		if !checkTools && checkManifest == "" {
			toolErr := runToolCheck(cmd.Context(), out, runner)
			root, err := projectRoot()
			if err != nil {
				return err
			}
			if _, err := os.Stat(project.ManifestPath(root)); err == nil {
				if err := runManifestCheck(out, root); err != nil {
					return err
				}
			}
			return toolErr
		}

		if checkTools {
			if err := runToolCheck(cmd.Context(), out, runner); err != nil {
				return err
			}
		}
		if checkManifest != "" {
			if err := runManifestCheck(out, checkManifest); err != nil {
				return err
			}
		}
		return nil
	},
}

// configuredRequirements applies the tools.* config overrides.
func configuredRequirements() []toolchain.Requirement {
	reqs := toolchain.Requirements()
	for i := range reqs {
		switch reqs[i].Name {
		case "cmake":
			reqs[i].Bin = config.Tool(config.KeyToolCMake, reqs[i].Bin)
		case "clang-format":
			reqs[i].Bin = config.Tool(config.KeyToolClangFormat, reqs[i].Bin)
		case "git":
			reqs[i].Bin = config.Tool(config.KeyToolGit, reqs[i].Bin)
		}
	}
	return reqs
}

func runToolCheck(ctx context.Context, w io.Writer, runner toolchain.Runner) error {
	fmt.Fprintln(w, "Toolchain check:")
	failed := 0
	for _, req := range configuredRequirements() {
		st := toolchain.Check(ctx, runner, req)
		switch {
		case st.Satisfied:
			fmt.Fprintf(w, "  [ OK ] %s %s\n", st.Name, st.Version)
		case !st.Found && st.Optional:
			fmt.Fprintf(w, "  [WARN] %s not found (%s)\n", st.Name, st.Bin)
		case !st.Found:
			fmt.Fprintf(w, "  [MISS] %s not found (%s)\n", st.Name, st.Bin)
			failed++
		case st.Err != nil:
			fmt.Fprintf(w, "  [WARN] %s: %v\n", st.Name, st.Err)
		case st.Optional:
			fmt.Fprintf(w, "  [WARN] %s %s does not satisfy %s\n", st.Name, st.Version, st.Constraint)
		default:
			fmt.Fprintf(w, "  [FAIL] %s %s does not satisfy %s\n", st.Name, st.Version, st.Constraint)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d required tool(s) missing or outdated", failed)
	}
	return nil
}

// runManifestCheck validates the manifest at path. A directory is taken to
// be a project root.
func runManifestCheck(w io.Writer, path string) error {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = project.ManifestPath(path)
	}
	fmt.Fprintf(w, "Manifest validation: %s\n", filepath.Clean(path))

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return fmt.Errorf("reading manifest: %w", err)
	}

	result, err := project.Validate(data)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return fmt.Errorf("manifest validation failed: %w", err)
	}

	if result.Valid {
		m, err := project.ParseManifest(data)
		if err != nil {
			fmt.Fprintf(w, "  [ OK ] Valid manifest\n")
			return nil
		}
		fmt.Fprintf(w, "  [ OK ] Valid manifest: %s (%s)\n", m.Name, m.FileExt)
		return nil
	}

	fmt.Fprintf(w, "  [FAIL] %d validation issue(s):\n", len(result.Issues))
	for _, issue := range result.Issues {
		fmt.Fprintf(w, "    - %s\n", issue)
	}
	return fmt.Errorf("manifest %s has %d validation issue(s)", path, len(result.Issues))
}
