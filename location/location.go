// Package location implements the codec for source location tokens, the wire
// contract shared by the build-time annotator and the runtime navigator.
package location

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// tokenPattern anchors the token grammar "<file>:<line>:<column>". The file
// group is greedy, so the rightmost two all-digit groups are taken as line and
// column and colons inside the file path (e.g. drive letters) are preserved.
var tokenPattern = regexp.MustCompile(`^(.*):(\d+):(\d+)$`)

// PathDisplay selects how a token is rendered in tooltips.
type PathDisplay string

const (
	PathDisplayAbsolute PathDisplay = "absolute"
	PathDisplayRelative PathDisplay = "relative"
)

// Location identifies the source origin of a markup element.
type Location struct {
	File   string // path, absolute or root-relative
	Line   int    // 1-based
	Column int    // 0-based
	Raw    string // canonical wire form
}

// String returns the canonical token form.
func (l *Location) String() string {
	return l.Raw
}

// Encode produces the canonical token for a (file, line, column) triple.
func Encode(file string, line, column int) string {
	return fmt.Sprintf("%s:%d:%d", file, line, column)
}

// Decode parses a location token. It returns nil, never an error, on empty
// input, a non-matching shape, or non-numeric line/column.
func Decode(token string) *Location {
	m := tokenPattern.FindStringSubmatch(token)
	if m == nil || m[1] == "" {
		return nil
	}
	line, err := strconv.Atoi(m[2])
	if err != nil {
		return nil
	}
	column, err := strconv.Atoi(m[3])
	if err != nil {
		return nil
	}
	return &Location{File: m[1], Line: line, Column: column, Raw: token}
}

// DisplayPath returns the cosmetic rendering of a token for hover tooltips.
// In relative mode it keeps only the last two path segments, so
// "/a/app/components/Button.tsx:10:5" becomes "components/Button.tsx:10:5".
// Malformed tokens yield "".
func DisplayPath(token string, mode PathDisplay) string {
	loc := Decode(token)
	if loc == nil {
		return ""
	}
	if mode != PathDisplayRelative {
		return loc.Raw
	}
	return fmt.Sprintf("%s:%d:%d", shortFile(loc.File), loc.Line, loc.Column)
}

// shortFile keeps the parent directory and base name of a path. Windows
// separators are normalized so the tooltip form is uniform across platforms.
func shortFile(file string) string {
	normalized := strings.ReplaceAll(file, "\\", "/")
	segments := strings.Split(normalized, "/")
	kept := make([]string, 0, 2)
	for i := len(segments) - 1; i >= 0 && len(kept) < 2; i-- {
		if segments[i] == "" {
			continue
		}
		kept = append(kept, segments[i])
	}
	if len(kept) == 0 {
		return normalized
	}
	// reverse back to path order
	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}
	return strings.Join(kept, "/")
}
