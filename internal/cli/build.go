package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dbolivar25/cpp-tools/internal/config"
	"github.com/dbolivar25/cpp-tools/internal/project"
	"github.com/dbolivar25/cpp-tools/internal/toolchain"
	"github.com/spf13/cobra"
)

func init() {
	addLayoutFlags(buildCmd, project.KeyBuildDir)
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Compile the project",
	Long:  `Run 'cmake --build <root>/<build-dir>' for a configured project.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := projectRoot()
		if err != nil {
			return err
		}
		cfg, err := resolveProject(root, layoutOptions(cmd), false)
		if err != nil {
			return err
		}
		if err := buildProject(cmd.Context(), newRunner(cmd), root, cfg); err != nil {
			return err
		}
		successColor.Fprintln(cmd.OutOrStdout(), "Build succeeded")
		return nil
	},
}

// buildProject runs the cmake build step. The build directory must exist.
func buildProject(ctx context.Context, runner toolchain.Runner, root string, cfg *project.Config) error {
	buildDir := filepath.Join(root, filepath.FromSlash(cfg.BuildDir))
	if err := requirePath(buildDir, "build directory", hint("init")); err != nil {
		return err
	}

	cm := &toolchain.CMake{Runner: runner, Bin: config.Tool(config.KeyToolCMake, "cmake")}
	if err := cm.Build(ctx, buildDir); err != nil {
		return fmt.Errorf("building %s: %w", cfg.Name, err)
	}
	return nil
}
