package project

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dbolivar25/cpp-tools/internal/branding"
	"go.yaml.in/yaml/v3"
)

// Manifest is the on-disk form of a Config, stored at the project root.
type Manifest struct {
	Name       string `yaml:"name" json:"name"`
	FileExt    string `yaml:"file_ext" json:"file_ext"`
	SourceDir  string `yaml:"src_dir,omitempty" json:"src_dir,omitempty"`
	IncludeDir string `yaml:"include_dir,omitempty" json:"include_dir,omitempty"`
	BuildDir   string `yaml:"build_dir,omitempty" json:"build_dir,omitempty"`
	ExecDir    string `yaml:"exec_dir,omitempty" json:"exec_dir,omitempty"`
}

// NewManifest captures cfg in manifest form.
func NewManifest(cfg *Config) *Manifest {
	return &Manifest{
		Name:       cfg.Name,
		FileExt:    string(cfg.Ext),
		SourceDir:  cfg.SourceDir,
		IncludeDir: cfg.IncludeDir,
		BuildDir:   cfg.BuildDir,
		ExecDir:    cfg.ExecDir,
	}
}

// Options returns the fields the manifest sets, for use as a Resolve layer.
func (m *Manifest) Options() Options {
	opts := Options{}
	for key, v := range map[string]string{
		KeyName:       m.Name,
		KeyExt:        m.FileExt,
		KeySourceDir:  m.SourceDir,
		KeyIncludeDir: m.IncludeDir,
		KeyBuildDir:   m.BuildDir,
		KeyExecDir:    m.ExecDir,
	} {
		if v != "" {
			opts[key] = v
		}
	}
	return opts
}

// ManifestPath returns the manifest location for a project rooted at root.
func ManifestPath(root string) string {
	return filepath.Join(root, branding.ManifestFile())
}

// MarshalManifest renders the manifest for cfg. The output is deterministic.
func MarshalManifest(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# Project settings read by %s. Flags still override these values.\n", branding.CLIName())
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(NewManifest(cfg)); err != nil {
		return nil, fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("marshaling manifest: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseManifest validates data against the manifest schema and decodes it.
func ParseManifest(data []byte) (*Manifest, error) {
	result, err := Validate(data)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		msgs := make([]string, 0, len(result.Issues))
		for _, issue := range result.Issues {
			msgs = append(msgs, issue.String())
		}
		return nil, fmt.Errorf("%w: manifest: %s", ErrInvalidOption, strings.Join(msgs, "; "))
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: parsing manifest: %v", ErrInvalidOption, err)
	}
	return &m, nil
}

// LoadManifest reads the manifest of the project at root. A missing manifest
// yields an error wrapping ErrNotFound.
func LoadManifest(root string) (*Manifest, error) {
	path := ManifestPath(root)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrIO, path, err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
