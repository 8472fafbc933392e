package cli

import (
	"fmt"

	"github.com/dbolivar25/cpp-tools/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long: `Read and write cpp-tools configuration stored at ~/.cpp-tools/config.yaml.

Keys:
  defaults.file_ext      default source extension for new projects (c or cpp)
  defaults.src_dir       default source directory
  defaults.include_dir   default header directory
  defaults.build_dir     default CMake build directory
  defaults.exec_dir      default executable directory
  tools.cmake            cmake binary
  tools.clang_format     clang-format binary
  tools.git              git binary
  format.style           clang-format -style value
  git.commit_message     message of the first commit in new projects
  scaffold.clang_format  write .clang-format in new projects (true/false)
  scaffold.manifest      write cpp-tools.yaml in new projects (true/false)

Every key can be overridden with a CPP_TOOLS_ environment variable, for example
CPP_TOOLS_DEFAULTS_SRC_DIR.`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), config.Get(args[0]))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file location",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), config.FilePath())
	},
}
