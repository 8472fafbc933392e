package cli

import (
	"fmt"
	"path/filepath"

	"github.com/dbolivar25/cpp-tools/internal/config"
	"github.com/dbolivar25/cpp-tools/internal/project"
	"github.com/dbolivar25/cpp-tools/internal/toolchain"
	"github.com/spf13/cobra"
)

var initRootDir string

func init() {
	initCmd.Flags().StringVarP(&initRootDir, "root-dir", "r", "", "Project root containing CMakeLists.txt (default: --project-dir)")
	addLayoutFlags(initCmd, project.KeyBuildDir)
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Configure the CMake build directory",
	Long: `Run 'cmake -S <root> -B <root>/<build-dir>' for an existing project.

Use this after cloning a project or when the build directory was removed.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}
	if initRootDir != "" {
		if root, err = filepath.Abs(initRootDir); err != nil {
			return fmt.Errorf("resolving root directory %q: %w", initRootDir, err)
		}
	}

	if err := requirePath(filepath.Join(root, "CMakeLists.txt"), "CMakeLists.txt", ""); err != nil {
		return err
	}

	cfg, err := resolveProject(root, layoutOptions(cmd), false)
	if err != nil {
		return err
	}
	buildDir := filepath.Join(root, filepath.FromSlash(cfg.BuildDir))

	cm := &toolchain.CMake{Runner: newRunner(cmd), Bin: config.Tool(config.KeyToolCMake, "cmake")}
	if err := cm.Configure(cmd.Context(), root, buildDir); err != nil {
		return fmt.Errorf("configuring %s: %w", root, err)
	}

	successColor.Fprintf(cmd.OutOrStdout(), "Configured %s\n", buildDir)
	return nil
}
