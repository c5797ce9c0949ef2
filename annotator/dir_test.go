package annotator

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/afs"
)

func TestFingerprint(t *testing.T) {
	src := []byte("export default () => <div />\n")
	a, err := Fingerprint(src, "App.jsx", Config{})
	assert.NoError(t, err)
	b, err := Fingerprint(src, "App.jsx", Config{})
	assert.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := Fingerprint(src, "Other.jsx", Config{})
	assert.NoError(t, err)
	assert.NotEqual(t, a, c)

	d, err := Fingerprint(src, "App.jsx", Config{AttributeName: "data-x"})
	assert.NoError(t, err)
	assert.NotEqual(t, a, d)
}

func TestCacheSeen(t *testing.T) {
	cache := NewCache()
	assert.False(t, cache.Seen(42))
	assert.True(t, cache.Seen(42))
	assert.False(t, cache.Seen(43))
}

func TestAnnotateDir(t *testing.T) {
	dir := t.TempDir()
	appPath := filepath.Join(dir, "src", "App.jsx")
	write(t, appPath, "export default () => <div />\n")
	write(t, filepath.Join(dir, "src", "util.js"), "export const n = 1\n")
	write(t, filepath.Join(dir, "node_modules", "dep", "index.jsx"), "export default () => <p />\n")

	fs := afs.New()
	cache := NewCache()
	cfg := Config{UseRelativePaths: true, RootDir: dir}

	results, err := AnnotateDir(context.Background(), fs, dir, cfg, cache, true)
	assert.NoError(t, err)
	if !assert.Len(t, results, 1) {
		return
	}
	assert.Equal(t, 1, results[0].Annotated)
	assert.True(t, results[0].Changed)

	annotated, err := os.ReadFile(appPath)
	assert.NoError(t, err)
	assert.Contains(t, string(annotated), `data-insp-path="src/App.jsx:1:21"`)

	// second run sees already-annotated content: nothing changes
	results, err = AnnotateDir(context.Background(), fs, dir, cfg, cache, true)
	assert.NoError(t, err)
	if assert.Len(t, results, 1) {
		assert.False(t, results[0].Changed)
		assert.False(t, results[0].CacheHit)
	}

	// third run hits the cache for the unchanged content
	results, err = AnnotateDir(context.Background(), fs, dir, cfg, cache, true)
	assert.NoError(t, err)
	if assert.Len(t, results, 1) {
		assert.True(t, results[0].CacheHit)
	}
}

func write(t *testing.T, path, content string) {
	t.Helper()
	assert.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
