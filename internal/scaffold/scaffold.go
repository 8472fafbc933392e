package scaffold

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/dbolivar25/cpp-tools/internal/project"
	"github.com/spf13/afero"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// VCS initializes version control in a freshly scaffolded project.
type VCS interface {
	Init(ctx context.Context, dir string) error
}

// Scaffolder writes generated files into a new project directory.
type Scaffolder struct {
	FS     afero.Fs
	VCS    VCS // nil skips version control
	Logger *slog.Logger
}

// Result holds the outcome of a scaffold run.
type Result struct {
	Root     string
	Dirs     []string
	Files    []string
	Warnings []string
}

// New returns a Scaffolder on fsys. A nil logger discards output.
func New(fsys afero.Fs, vcs VCS, logger *slog.Logger) *Scaffolder {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Scaffolder{FS: fsys, VCS: vcs, Logger: logger}
}

// Write creates the project directories under root and writes files into it.
// It refuses to touch a root that already exists and is not empty. Version
// control failures are returned as warnings; files already written stay.
func (s *Scaffolder) Write(ctx context.Context, root string, cfg *project.Config, files []File) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.checkTarget(root); err != nil {
		return nil, err
	}

	result := &Result{Root: root}

	if err := s.FS.MkdirAll(root, dirPerm); err != nil {
		return nil, fmt.Errorf("%w: creating %s: %v", project.ErrIO, root, err)
	}
	for _, dir := range cfg.Dirs() {
		full := filepath.Join(root, filepath.FromSlash(dir))
		if err := s.FS.MkdirAll(full, dirPerm); err != nil {
			return result, fmt.Errorf("%w: creating directory %s: %v", project.ErrIO, full, err)
		}
		s.Logger.Debug("created directory", "path", full)
		result.Dirs = append(result.Dirs, dir)
	}

	for _, f := range files {
		full := filepath.Join(root, filepath.FromSlash(f.Path))
		if err := s.FS.MkdirAll(filepath.Dir(full), dirPerm); err != nil {
			return result, fmt.Errorf("%w: creating directory for %s: %v", project.ErrIO, f.Path, err)
		}
		if err := afero.WriteFile(s.FS, full, f.Contents, filePerm); err != nil {
			return result, fmt.Errorf("%w: writing %s: %v", project.ErrIO, full, err)
		}
		s.Logger.Debug("wrote file", "path", full, "bytes", len(f.Contents))
		result.Files = append(result.Files, f.Path)
	}

	if s.VCS != nil {
		if err := s.VCS.Init(ctx, root); err != nil {
			s.Logger.Warn("version control init failed", "root", root, "err", err)
			result.Warnings = append(result.Warnings, fmt.Sprintf("version control not initialized: %v", err))
		}
	}

	return result, nil
}

// checkTarget fails with ErrAlreadyExists when root is a file or a non-empty
// directory.
func (s *Scaffolder) checkTarget(root string) error {
	exists, err := afero.Exists(s.FS, root)
	if err != nil {
		return fmt.Errorf("%w: checking %s: %v", project.ErrIO, root, err)
	}
	if !exists {
		return nil
	}

	isDir, err := afero.IsDir(s.FS, root)
	if err != nil {
		return fmt.Errorf("%w: checking %s: %v", project.ErrIO, root, err)
	}
	if !isDir {
		return fmt.Errorf("%w: %s is a file", project.ErrAlreadyExists, root)
	}

	empty, err := afero.IsEmpty(s.FS, root)
	if err != nil {
		return fmt.Errorf("%w: checking %s: %v", project.ErrIO, root, err)
	}
	if !empty {
		return fmt.Errorf("%w: project directory %s is not empty", project.ErrAlreadyExists, root)
	}
	return nil
}
