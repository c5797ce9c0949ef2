package location

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	testCases := []struct {
		name   string
		file   string
		line   int
		column int
	}{
		{name: "absolute path", file: "/a/b/Button.tsx", line: 3, column: 5},
		{name: "root-relative path", file: "src/components/App.jsx", line: 120, column: 0},
		{name: "drive letter path", file: `C:\Users\me\app\Button.tsx`, line: 7, column: 12},
		{name: "path with embedded colon", file: "/tmp/b:c/Button.tsx", line: 1, column: 0},
		{name: "column zero", file: "/x.tsx", line: 1, column: 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			token := Encode(tc.file, tc.line, tc.column)
			loc := Decode(token)
			if !assert.NotNil(t, loc) {
				return
			}
			assert.Equal(t, tc.file, loc.File)
			assert.Equal(t, tc.line, loc.Line)
			assert.Equal(t, tc.column, loc.Column)
			assert.Equal(t, token, loc.Raw)
		})
	}
}

func TestDecodeRejects(t *testing.T) {
	testCases := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "no colons", token: "no-colons"},
		{name: "non-numeric line", token: "file.txt:abc:3"},
		{name: "non-numeric column", token: "file.txt:3:abc"},
		{name: "single colon", token: "file.txt:3"},
		{name: "missing file", token: ":3:5"},
		{name: "trailing colon", token: "file.txt:3:5:"},
		{name: "negative line", token: "file.txt:-3:5"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Nil(t, Decode(tc.token))
		})
	}
}

func TestDecodeTakesRightmostNumericGroups(t *testing.T) {
	loc := Decode("/srv/app:2000/pages/index.tsx:42:8")
	if !assert.NotNil(t, loc) {
		return
	}
	assert.Equal(t, "/srv/app:2000/pages/index.tsx", loc.File)
	assert.Equal(t, 42, loc.Line)
	assert.Equal(t, 8, loc.Column)
}

func TestDisplayPath(t *testing.T) {
	token := "/Users/me/app/components/Button.tsx:10:5"

	assert.Equal(t, "components/Button.tsx:10:5", DisplayPath(token, PathDisplayRelative))
	assert.Equal(t, token, DisplayPath(token, PathDisplayAbsolute))
	assert.Equal(t, "", DisplayPath("not-a-token", PathDisplayRelative))
}

func TestDisplayPathShortForms(t *testing.T) {
	testCases := []struct {
		name   string
		token  string
		expect string
	}{
		{name: "bare file name", token: "Button.tsx:1:0", expect: "Button.tsx:1:0"},
		{name: "single directory", token: "src/App.jsx:2:4", expect: "src/App.jsx:2:4"},
		{name: "windows separators", token: `C:\app\components\Button.tsx:7:12`, expect: "components/Button.tsx:7:12"},
		{name: "root file", token: "/index.tsx:9:1", expect: "index.tsx:9:1"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, DisplayPath(tc.token, PathDisplayRelative))
		})
	}
}
