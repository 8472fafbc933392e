package cli

import (
	"fmt"
	"path/filepath"

	"github.com/dbolivar25/cpp-tools/internal/config"
	"github.com/dbolivar25/cpp-tools/internal/project"
	"github.com/dbolivar25/cpp-tools/internal/toolchain"
	"github.com/spf13/cobra"
)

var formatStyle string

func init() {
	formatCmd.Flags().StringVar(&formatStyle, "style", "", "clang-format style (default: format.style config, \"file\")")
	addLayoutFlags(formatCmd, project.KeySourceDir)
	rootCmd.AddCommand(formatCmd)
}

var formatCmd = &cobra.Command{
	Use:   "format",
	Short: "Format sources with clang-format",
	Long: `Run 'clang-format -i -style=file' over every C and C++ source and header
under the source directory. Hidden directories are skipped.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := projectRoot()
		if err != nil {
			return err
		}
		cfg, err := resolveProject(root, layoutOptions(cmd), false)
		if err != nil {
			return err
		}

		srcDir := filepath.Join(root, filepath.FromSlash(cfg.SourceDir))
		if err := requirePath(srcDir, "source directory", ""); err != nil {
			return err
		}

		files, err := toolchain.CollectSources(srcDir)
		if err != nil {
			return fmt.Errorf("%w: %v", project.ErrIO, err)
		}
		out := cmd.OutOrStdout()
		if len(files) == 0 {
			fmt.Fprintf(out, "No C/C++ files in %s\n", srcDir)
			return nil
		}

		style := formatStyle
		if style == "" {
			style = config.Get(config.KeyFormatStyle)
		}
		f := &toolchain.Formatter{
			Runner: newRunner(cmd),
			Bin:    config.Tool(config.KeyToolClangFormat, "clang-format"),
			Style:  style,
		}
		if err := f.Format(cmd.Context(), files); err != nil {
			return fmt.Errorf("formatting %s: %w", srcDir, err)
		}

		successColor.Fprintf(out, "Formatted %d file(s)\n", len(files))
		return nil
	},
}
