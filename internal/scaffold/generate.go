package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"path"
	"sync"
	"text/template"

	"github.com/dbolivar25/cpp-tools/internal/branding"
	"github.com/dbolivar25/cpp-tools/internal/project"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var (
	parsed    *template.Template
	parseOnce sync.Once
	parseErr  error
)

// File is one generated file. Path is slash-separated and relative to the
// project root.
type File struct {
	Path     string
	Contents []byte
}

// templateData holds all variables available to the embedded templates.
type templateData struct {
	Name       string
	Ext        string
	Lang       string // CMake language: "CXX" or "C"
	Standard   string // "23" or "17"
	SourceDir  string
	IncludeDir string
	BuildDir   string
	ExecDir    string
}

func newTemplateData(cfg *project.Config) templateData {
	return templateData{
		Name:       cfg.Name,
		Ext:        string(cfg.Ext),
		Lang:       cfg.Ext.Lang(),
		Standard:   cfg.Ext.Standard(),
		SourceDir:  cfg.SourceDir,
		IncludeDir: cfg.IncludeDir,
		BuildDir:   cfg.BuildDir,
		ExecDir:    cfg.ExecDir,
	}
}

func templates() (*template.Template, error) {
	parseOnce.Do(func() {
		parsed, parseErr = template.New("scaffold").
			Option("missingkey=error").
			ParseFS(templateFS, "templates/*.tmpl")
		if parseErr != nil {
			parseErr = fmt.Errorf("parsing templates: %w", parseErr)
		}
	})
	return parsed, parseErr
}

// planEntry maps an output path to the template that renders it.
type planEntry struct {
	out  string
	tmpl string
}

// Extras selects optional files beyond the source file, .gitignore and
// CMakeLists.txt.
type Extras struct {
	ClangFormat bool // .clang-format for `clang-format -style=file`
	Manifest    bool // project manifest recording the layout
}

// Generate returns the files of a new project in a fixed order: the main
// source, .gitignore, CMakeLists.txt, then any requested extras. It performs
// no filesystem access, and identical inputs yield identical output.
func Generate(cfg *project.Config, extras Extras) ([]File, error) {
	tmpl, err := templates()
	if err != nil {
		return nil, err
	}
	data := newTemplateData(cfg)

	plan := []planEntry{
		{path.Join(cfg.SourceDir, "main."+string(cfg.Ext)), "main." + string(cfg.Ext) + ".tmpl"},
		{".gitignore", "gitignore.tmpl"},
		{"CMakeLists.txt", "CMakeLists.txt.tmpl"},
	}
	if extras.ClangFormat {
		plan = append(plan, planEntry{".clang-format", "clang-format.tmpl"})
	}

	files := make([]File, 0, len(plan)+1)
	for _, p := range plan {
		var buf bytes.Buffer
		if err := tmpl.ExecuteTemplate(&buf, p.tmpl, data); err != nil {
			return nil, fmt.Errorf("executing template %s: %w", p.tmpl, err)
		}
		files = append(files, File{Path: p.out, Contents: buf.Bytes()})
	}

	if extras.Manifest {
		manifest, err := project.MarshalManifest(cfg)
		if err != nil {
			return nil, err
		}
		files = append(files, File{Path: branding.ManifestFile(), Contents: manifest})
	}

	return files, nil
}
