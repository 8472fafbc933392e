package toolchain

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultFormatStyle makes clang-format read the project's .clang-format.
const DefaultFormatStyle = "file"

// sourceExts lists the file extensions handed to the formatter.
var sourceExts = map[string]bool{
	".c": true, ".cc": true, ".cpp": true, ".cxx": true, ".c++": true,
	".h": true, ".hh": true, ".hpp": true, ".hxx": true, ".h++": true,
	".inl": true, ".ipp": true, ".tpp": true,
}

// Formatter formats C/C++ sources in place with clang-format.
type Formatter struct {
	Runner Runner
	Bin    string // Defaults to "clang-format".
	Style  string // Defaults to DefaultFormatStyle.
}

// Format runs `clang-format -i -style=<style> <files...>`. It is a no-op for
// an empty file list.
func (f *Formatter) Format(ctx context.Context, files []string) error {
	if len(files) == 0 {
		return nil
	}
	bin := f.Bin
	if bin == "" {
		bin = "clang-format"
	}
	style := f.Style
	if style == "" {
		style = DefaultFormatStyle
	}

	args := append([]string{"-i", "-style=" + style}, files...)
	return run(ctx, f.Runner, "clang-format", Command{Name: bin, Args: args})
}

// CollectSources returns every C/C++ source and header under dir, sorted.
// Hidden directories are skipped.
func CollectSources(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && sourceExts[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("collecting sources in %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}
