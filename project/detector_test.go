package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectJavaScriptProject(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package.json"), `{"name": "my-app", "version": "1.0.0"}`)
	writeFile(t, filepath.Join(root, "src", "components", "Button.tsx"), "export const Button = () => <button />\n")

	detector := New()
	project, err := detector.Detect(filepath.Join(root, "src", "components", "Button.tsx"))
	assert.NoError(t, err)
	assert.Equal(t, root, project.RootPath)
	assert.Equal(t, "javascript", project.Type)
	assert.Equal(t, "my-app", project.Name)
}

func TestDetectGoProject(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "go.mod"), "module example.com/web\n\ngo 1.23\n")
	writeFile(t, filepath.Join(root, "ui", "App.jsx"), "export default () => <div />\n")

	detector := New()
	project, err := detector.Detect(filepath.Join(root, "ui", "App.jsx"))
	assert.NoError(t, err)
	assert.Equal(t, "go", project.Type)
	assert.Equal(t, "example.com/web", project.Name)
}

func TestDetectNoMarker(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "lone.tsx"), "export default () => <div />\n")

	// markers restricted so parent directories of the temp dir cannot match
	detector := &Detector{markers: []marker{{file: "definitely-not-present.json", kind: "javascript"}}}
	project, err := detector.Detect(filepath.Join(dir, "lone.tsx"))
	assert.NoError(t, err)
	assert.Equal(t, dir, project.RootPath)
	assert.Equal(t, "unknown", project.Type)
}

func TestRelPath(t *testing.T) {
	assert.Equal(t, "src/App.tsx", RelPath("/repo", "/repo/src/App.tsx"))
	assert.Equal(t, "/elsewhere/App.tsx", RelPath("/repo", "/elsewhere/App.tsx"))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	assert.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
