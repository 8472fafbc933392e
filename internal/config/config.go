package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dbolivar25/cpp-tools/internal/branding"
	"github.com/dbolivar25/cpp-tools/internal/project"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Keys understood by the CLI.
const (
	KeyDefaultExt        = "defaults.file_ext"
	KeyDefaultSourceDir  = "defaults.src_dir"
	KeyDefaultIncludeDir = "defaults.include_dir"
	KeyDefaultBuildDir   = "defaults.build_dir"
	KeyDefaultExecDir    = "defaults.exec_dir"
	KeyToolCMake         = "tools.cmake"
	KeyToolClangFormat   = "tools.clang_format"
	KeyToolGit           = "tools.git"
	KeyFormatStyle       = "format.style"
	KeyCommitMessage     = "git.commit_message"

	KeyScaffoldClangFormat = "scaffold.clang_format"
	KeyScaffoldManifest    = "scaffold.manifest"
)

// Dir returns the config directory. <PREFIX>_HOME overrides ~/.cpp-tools/.
func Dir() string {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault(KeyToolCMake, "cmake")
	viper.SetDefault(KeyToolClangFormat, "clang-format")
	viper.SetDefault(KeyToolGit, "git")
	viper.SetDefault(KeyFormatStyle, "file")
	viper.SetDefault(KeyCommitMessage, "Initial commit")

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Bool returns a boolean config value; unset keys and unparsable values are
// false.
func Bool(key string) bool {
	return viper.GetBool(key)
}

// Defaults returns the user's default project layout as a resolver layer.
// Only keys that are actually set appear in the result.
func Defaults() project.Options {
	opts := project.Options{}
	for optKey, cfgKey := range map[string]string{
		project.KeyExt:        KeyDefaultExt,
		project.KeySourceDir:  KeyDefaultSourceDir,
		project.KeyIncludeDir: KeyDefaultIncludeDir,
		project.KeyBuildDir:   KeyDefaultBuildDir,
		project.KeyExecDir:    KeyDefaultExecDir,
	} {
		if v := viper.GetString(cfgKey); v != "" {
			opts[optKey] = v
		}
	}
	return opts
}

// Tool returns the configured binary for key, or fallback when unset.
func Tool(key, fallback string) string {
	if v := viper.GetString(key); v != "" {
		return v
	}
	return fallback
}
