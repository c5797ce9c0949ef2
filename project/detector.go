// Package project locates the root of the project a source file belongs to,
// so annotated paths can be emitted root-relative.
package project

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/viant/afs"
	"golang.org/x/mod/modfile"
)

// Project describes a detected project root.
type Project struct {
	RootPath string // absolute path to the root directory
	Type     string // javascript, go, git or unknown
	Name     string // name extracted from package.json or go.mod
}

// Detector identifies project root folders by marker files. Frontend markers
// come first so a package.json wins over an enclosing repo's go.mod.
type Detector struct {
	markers []marker
}

type marker struct {
	file string
	kind string
}

// New creates a detector with the default marker set.
func New() *Detector {
	return &Detector{
		markers: []marker{
			{file: "package.json", kind: "javascript"},
			{file: "tsconfig.json", kind: "javascript"},
			{file: "go.mod", kind: "go"},
			{file: ".git", kind: "git"},
		},
	}
}

// Detect walks up from the given file or directory to the nearest marker and
// returns the project info. When no marker is found the start directory
// itself becomes the root with type "unknown".
func (d *Detector) Detect(path string) (*Project, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	startDir := absPath
	if info, err := os.Stat(absPath); err == nil && !info.IsDir() {
		startDir = filepath.Dir(absPath)
	}

	root, kind := d.findRoot(startDir)
	project := &Project{RootPath: startDir, Type: "unknown"}
	if root != "" {
		project.RootPath = root
		project.Type = kind
		project.Name = extractName(root, kind)
	}
	return project, nil
}

// RelPath returns the slash-separated path of file relative to root, falling
// back to the input when the file lies outside the root.
func RelPath(root, file string) string {
	rel, err := filepath.Rel(root, file)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(file)
	}
	return filepath.ToSlash(rel)
}

func (d *Detector) findRoot(startDir string) (string, string) {
	for dir := startDir; ; {
		for _, m := range d.markers {
			if _, err := os.Stat(filepath.Join(dir, m.file)); err == nil {
				return dir, m.kind
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ""
		}
		dir = parent
	}
}

var packageNamePattern = regexp.MustCompile(`"name"\s*:\s*"([^"]+)"`)

func extractName(root, kind string) string {
	switch kind {
	case "javascript":
		return jsPackageName(filepath.Join(root, "package.json"))
	case "go":
		return goModuleName(filepath.Join(root, "go.mod"))
	default:
		return filepath.Base(root)
	}
}

func jsPackageName(packageJSON string) string {
	fs := afs.New()
	content, err := fs.DownloadWithURL(context.Background(), packageJSON)
	if err != nil || len(content) == 0 {
		return filepath.Base(filepath.Dir(packageJSON))
	}
	matches := packageNamePattern.FindSubmatch(content)
	if len(matches) < 2 {
		return filepath.Base(filepath.Dir(packageJSON))
	}
	return string(matches[1])
}

func goModuleName(goModPath string) string {
	fs := afs.New()
	content, err := fs.DownloadWithURL(context.Background(), goModPath)
	if err != nil || len(content) == 0 {
		return filepath.Base(filepath.Dir(goModPath))
	}
	if mod, _ := modfile.Parse(goModPath, content, nil); mod != nil && mod.Module != nil {
		return mod.Module.Mod.Path
	}
	return filepath.Base(filepath.Dir(goModPath))
}
