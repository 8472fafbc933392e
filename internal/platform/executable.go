package platform

import (
	"os"
	"runtime"
	"strings"
)

// ExecutableName returns the file name a native build gives program name.
func ExecutableName(name string) string {
	return executableName(runtime.GOOS, name)
}

func executableName(goos, name string) string {
	if goos == "windows" && !strings.HasSuffix(strings.ToLower(name), ".exe") {
		return name + ".exe"
	}
	return name
}

// IsExecutable reports whether path is a regular file that can be run. On
// Windows any regular file qualifies.
func IsExecutable(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	if !info.Mode().IsRegular() {
		return false, nil
	}
	if runtime.GOOS == "windows" {
		return true, nil
	}
	return info.Mode().Perm()&0o111 != 0, nil
}
