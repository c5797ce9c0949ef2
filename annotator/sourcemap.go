package annotator

import (
	"bytes"
	"sort"
	"strings"
)

// SourceMap is a standard source-map v3 document. Because every attribute
// edit is an in-line insertion, mappings stay on their original line; only a
// prepended bootstrap snippet shifts lines, which shows up as unmapped
// generated lines.
type SourceMap struct {
	Version  int      `json:"version"`
	File     string   `json:"file,omitempty"`
	Sources  []string `json:"sources"`
	Names    []string `json:"names"`
	Mappings string   `json:"mappings"`
}

// buildSourceMap maps the annotated output back to the input. edits must be
// sorted by offset; preludeOffset is a line-start byte offset and
// preludeLines the number of generated lines inserted there.
func buildSourceMap(src []byte, filePath string, edits []edit, preludeOffset, preludeLines int) *SourceMap {
	starts := lineStarts(src)
	preludeAt := sort.SearchInts(starts, preludeOffset)

	var mappings strings.Builder
	enc := vlqState{}
	editIdx := 0
	firstLine := true

	writeLine := func(segments []segment) {
		if !firstLine {
			mappings.WriteByte(';')
		}
		firstLine = false
		enc.prevGenCol = 0
		for i, seg := range segments {
			if i > 0 {
				mappings.WriteByte(',')
			}
			enc.encode(&mappings, seg)
		}
	}

	for lineNo := range starts {
		if preludeLines > 0 && lineNo == preludeAt {
			for i := 0; i < preludeLines; i++ {
				writeLine(nil)
			}
		}
		end := len(src)
		if lineNo+1 < len(starts) {
			end = starts[lineNo+1]
		}

		segments := []segment{{genCol: 0, srcLine: lineNo, srcCol: 0}}
		shift := 0
		for editIdx < len(edits) && edits[editIdx].offset < end {
			e := edits[editIdx]
			col := e.offset - starts[lineNo]
			shift += len(e.text)
			segments = append(segments, segment{genCol: col + shift, srcLine: lineNo, srcCol: col})
			editIdx++
		}
		writeLine(segments)
	}

	return &SourceMap{
		Version:  3,
		File:     filePath,
		Sources:  []string{filePath},
		Names:    []string{},
		Mappings: mappings.String(),
	}
}

func lineStarts(src []byte) []int {
	starts := []int{0}
	for {
		i := bytes.IndexByte(src[starts[len(starts)-1]:], '\n')
		if i < 0 {
			return starts
		}
		starts = append(starts, starts[len(starts)-1]+i+1)
	}
}

type segment struct {
	genCol  int
	srcLine int
	srcCol  int
}

// vlqState encodes 4-field segments with the source-map delta convention:
// generated column resets per line, source line/column deltas persist across
// lines.
type vlqState struct {
	prevGenCol  int
	prevSrcLine int
	prevSrcCol  int
}

func (s *vlqState) encode(out *strings.Builder, seg segment) {
	writeVLQ(out, seg.genCol-s.prevGenCol)
	writeVLQ(out, 0) // single source
	writeVLQ(out, seg.srcLine-s.prevSrcLine)
	writeVLQ(out, seg.srcCol-s.prevSrcCol)
	s.prevGenCol = seg.genCol
	s.prevSrcLine = seg.srcLine
	s.prevSrcCol = seg.srcCol
}

const base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

func writeVLQ(out *strings.Builder, value int) {
	v := value << 1
	if value < 0 {
		v = (-value << 1) | 1
	}
	for {
		digit := v & 0x1f
		v >>= 5
		if v > 0 {
			digit |= 0x20
		}
		out.WriteByte(base64Alphabet[digit])
		if v == 0 {
			return
		}
	}
}
