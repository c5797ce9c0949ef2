package annotator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteVLQ(t *testing.T) {
	testCases := []struct {
		value  int
		expect string
	}{
		{value: 0, expect: "A"},
		{value: 1, expect: "C"},
		{value: -1, expect: "D"},
		{value: 16, expect: "gB"},
		{value: 123, expect: "2H"},
	}
	for _, tc := range testCases {
		var out strings.Builder
		writeVLQ(&out, tc.value)
		assert.Equal(t, tc.expect, out.String(), "value %d", tc.value)
	}
}

func TestLineStarts(t *testing.T) {
	assert.Equal(t, []int{0}, lineStarts([]byte("abc")))
	assert.Equal(t, []int{0, 4}, lineStarts([]byte("abc\ndef")))
	assert.Equal(t, []int{0, 4, 8}, lineStarts([]byte("abc\ndef\n")))
	assert.Equal(t, []int{0}, lineStarts(nil))
}

func TestBuildSourceMapColumnShift(t *testing.T) {
	src := []byte("ab\ncd\n")
	// insert 3 bytes at offset 4 (line 1, column 1)
	edits := []edit{{offset: 4, text: "XYZ"}}
	m := buildSourceMap(src, "f.jsx", edits, 0, 0)

	// line 0 identity, line 1: identity start plus a post-insertion segment,
	// trailing empty line
	assert.Equal(t, "AAAA;AACA,IAAC;AACD", m.Mappings)
}
