package annotator

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
)

// FileResult reports one file of a batch run.
type FileResult struct {
	Path      string
	Annotated int
	Changed   bool
	CacheHit  bool
}

// markupExtensions are the file kinds a batch run annotates.
var markupExtensions = map[string]bool{
	".jsx": true,
	".tsx": true,
}

// skipDirs are directory names a batch run never descends into.
var skipDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"dist":         true,
	"build":        true,
}

// AnnotateDir walks a directory tree, annotates every JSX/TSX file and, when
// write is set, rewrites the changed files in place. Per-file problems are
// logged and skipped so a batch run never aborts half way; only the walk
// itself can fail.
func AnnotateDir(ctx context.Context, fs afs.Service, dir string, cfg Config, cache *Cache, write bool) ([]FileResult, error) {
	var results []FileResult
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if info.IsDir() {
			return !skipDirs[info.Name()], nil
		}
		if !markupExtensions[strings.ToLower(filepath.Ext(info.Name()))] {
			return true, nil
		}
		URL := url.Join(baseURL, parent, info.Name())
		result, err := annotateOne(ctx, fs, URL, cfg, cache, write)
		if err != nil {
			log.Printf("srcjump: %v", err)
			return true, nil
		}
		results = append(results, result)
		return true, nil
	}
	if err := fs.Walk(ctx, dir, visitor); err != nil {
		return nil, fmt.Errorf("failed to walk %v: %w", dir, err)
	}
	return results, nil
}

func annotateOne(ctx context.Context, fs afs.Service, URL string, cfg Config, cache *Cache, write bool) (FileResult, error) {
	src, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return FileResult{}, fmt.Errorf("failed to read %v: %w", URL, err)
	}
	// tokens carry plain paths, not file:// URLs
	filePath := localPath(URL)
	if cache != nil {
		fingerprint, err := Fingerprint(src, filePath, cfg)
		if err == nil && cache.Seen(fingerprint) {
			return FileResult{Path: filePath, CacheHit: true}, nil
		}
	}
	result, err := Annotate(ctx, src, filePath, cfg)
	if err != nil {
		return FileResult{}, fmt.Errorf("failed to annotate %v: %w", URL, err)
	}
	changed := !bytes.Equal(result.Code, src)
	if changed && write {
		if err := fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(result.Code)); err != nil {
			return FileResult{}, fmt.Errorf("failed to write %v: %w", URL, err)
		}
	}
	return FileResult{Path: filePath, Annotated: result.Annotated, Changed: changed}, nil
}

func localPath(URL string) string {
	if i := strings.Index(URL, "://"); i != -1 {
		return URL[i+len("://"):]
	}
	return URL
}
