// Package annotator stamps JSX/TSX markup elements with source location
// tokens at build time. Failures never fail the build: any file the
// annotator cannot handle is passed through unchanged.
package annotator

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"fortio.org/safecast"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/srcjump/srcjump/location"
)

// DefaultAttribute is the wire-contract attribute name shared with the
// runtime navigator.
const DefaultAttribute = "data-insp-path"

// LegacyDebugAttribute carries structured {fileName, lineNumber, columnNumber}
// as an embedded expression for frameworks that consume the classic JSX
// source convention.
const LegacyDebugAttribute = "__source"

// Config controls one annotation call. It is immutable for the duration of
// the call; the build pipeline owns one instance per file transform.
type Config struct {
	AttributeName         string         // defaults to DefaultAttribute
	UseRelativePaths      bool           // emit paths relative to RootDir
	RootDir               string         // base for relative paths; required when UseRelativePaths
	InjectLegacyDebugInfo bool           // additionally inject LegacyDebugAttribute
	Production            bool           // the invoking build is a production build
	ProductionEnabled     bool           // annotate production builds anyway
	Runtime               *RuntimeConfig // when set, prepend the bootstrap snippet
}

func (c Config) attribute() string {
	if c.AttributeName == "" {
		return DefaultAttribute
	}
	return c.AttributeName
}

// Result is the outcome of annotating one file.
type Result struct {
	Code      []byte
	Map       *SourceMap // nil when the file was passed through unchanged
	Annotated int        // elements that received a new attribute
}

// Annotate transforms one file's source text, appending a location attribute
// to every markup element that does not already carry one. The returned error
// is reserved for conditions that should fail the whole build; by design
// there are none, so it is always nil today and callers may ignore it.
func Annotate(ctx context.Context, src []byte, filePath string, cfg Config) (Result, error) {
	if cfg.Production && !cfg.ProductionEnabled {
		return Result{Code: src}, nil
	}

	lang := languageFor(filePath)
	parser := sitter.NewParser()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil || tree == nil {
		log.Printf("srcjump: parse failed for %s, leaving file unannotated: %v", filePath, err)
		return Result{Code: src}, nil
	}
	root := tree.RootNode()
	if root == nil || root.HasError() {
		log.Printf("srcjump: syntax errors in %s, leaving file unannotated", filePath)
		return Result{Code: src}, nil
	}

	run := &annotation{src: src, cfg: cfg, filePath: annotatedPath(filePath, cfg)}
	run.visit(root)

	prelude, preludeOffset := "", 0
	if cfg.Runtime != nil && !cfg.Production && !hasBootstrap(src) {
		prelude = bootstrapSnippet(cfg.Runtime)
		preludeOffset = directiveEnd(src)
	}
	if len(run.edits) == 0 && prelude == "" {
		return Result{Code: src}, nil
	}

	code, srcMap := apply(src, filePath, run.edits, prelude, preludeOffset)
	return Result{Code: code, Map: srcMap, Annotated: run.annotated}, nil
}

// annotatedPath computes the file path stored inside tokens.
func annotatedPath(filePath string, cfg Config) string {
	if cfg.UseRelativePaths && cfg.RootDir != "" {
		if rel, err := filepath.Rel(cfg.RootDir, filePath); err == nil && !strings.HasPrefix(rel, "..") {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(filePath)
}

func languageFor(filePath string) *sitter.Language {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".ts", ".mts", ".cts":
		return typescript.GetLanguage()
	case ".js", ".jsx", ".mjs", ".cjs":
		return javascript.GetLanguage()
	default:
		// .tsx and anything else: the tsx grammar accepts the widest dialect
		return tsx.GetLanguage()
	}
}

// edit is a single in-line insertion; insertions never add or remove lines so
// original line numbers survive annotation.
type edit struct {
	offset int
	text   string
}

type annotation struct {
	src       []byte
	cfg       Config
	filePath  string
	edits     []edit
	annotated int
}

func (a *annotation) visit(node *sitter.Node) {
	switch node.Type() {
	case "jsx_opening_element", "jsx_self_closing_element":
		a.annotateElement(node)
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		a.visit(node.NamedChild(i))
	}
}

func (a *annotation) annotateElement(node *sitter.Node) {
	// fragments (<>) take no attributes
	if node.ChildByFieldName("name") == nil {
		return
	}
	offset, ok := insertionOffset(node)
	if !ok {
		return
	}
	line, err := safecast.Conv[int](node.StartPoint().Row)
	if err != nil {
		return
	}
	column, err := safecast.Conv[int](node.StartPoint().Column)
	if err != nil {
		return
	}
	token := location.Encode(a.filePath, line+1, column)

	if !hasAttribute(node, a.src, a.cfg.attribute()) {
		attr := fmt.Sprintf("%s=%q", a.cfg.attribute(), token)
		a.edits = append(a.edits, edit{offset: offset, text: padded(a.src, offset, attr)})
		a.annotated++
	}
	if a.cfg.InjectLegacyDebugInfo && !hasAttribute(node, a.src, LegacyDebugAttribute) {
		attr := fmt.Sprintf("%s={{fileName: %s, lineNumber: %d, columnNumber: %d}}",
			LegacyDebugAttribute, strconv.Quote(a.filePath), line+1, column)
		a.edits = append(a.edits, edit{offset: offset, text: padded(a.src, offset, attr)})
	}
}

// insertionOffset returns the byte offset just before the element's closing
// "/>" or ">" token.
func insertionOffset(node *sitter.Node) (int, bool) {
	for i := int(node.ChildCount()) - 1; i >= 0; i-- {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case ">", "/":
			offset, err := safecast.Conv[int](child.StartByte())
			if err != nil {
				return 0, false
			}
			if child.Type() == ">" && i > 0 {
				// self-closing elements close with separate "/" ">" tokens
				if prev := node.Child(i - 1); prev != nil && prev.Type() == "/" {
					offset, err = safecast.Conv[int](prev.StartByte())
					if err != nil {
						return 0, false
					}
				}
			}
			return offset, true
		}
	}
	return 0, false
}

func hasAttribute(node *sitter.Node, src []byte, name string) bool {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() != "jsx_attribute" {
			continue
		}
		if key := child.NamedChild(0); key != nil && key.Content(src) == name {
			return true
		}
	}
	return false
}

// padded keeps attribute insertions readable: a leading space after a
// non-space byte, a trailing space when the insertion point already follows
// whitespace (e.g. before " />").
func padded(src []byte, offset int, attr string) string {
	if offset > 0 && (src[offset-1] == ' ' || src[offset-1] == '\t') {
		return attr + " "
	}
	return " " + attr
}

// apply materializes the insertions plus an optional prelude (inserted at a
// line boundary) and builds the matching source map. All attribute edits are
// in-line, so only the prelude shifts line numbers.
func apply(src []byte, filePath string, edits []edit, prelude string, preludeOffset int) ([]byte, *SourceMap) {
	sort.SliceStable(edits, func(i, j int) bool { return edits[i].offset < edits[j].offset })

	var buf bytes.Buffer
	buf.Grow(len(src) + len(prelude) + len(edits)*48)
	last := 0
	preludePending := prelude != ""
	for _, e := range edits {
		if preludePending && preludeOffset <= e.offset {
			buf.Write(src[last:preludeOffset])
			buf.WriteString(prelude)
			last = preludeOffset
			preludePending = false
		}
		buf.Write(src[last:e.offset])
		buf.WriteString(e.text)
		last = e.offset
	}
	if preludePending {
		buf.Write(src[last:preludeOffset])
		buf.WriteString(prelude)
		last = preludeOffset
	}
	buf.Write(src[last:])

	srcMap := buildSourceMap(src, filePath, edits, preludeOffset, strings.Count(prelude, "\n"))
	return buf.Bytes(), srcMap
}
