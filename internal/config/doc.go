// Package config manages user-level settings stored at ~/.cpp-tools/config.yaml.
// Values can be overridden through CPP_TOOLS_* environment variables, and
// supply the default directory layout, tool binaries, and format style used
// when a flag or project manifest does not.
package config
