package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/srcjump/srcjump/location"
)

func TestResolvePresets(t *testing.T) {
	testCases := []struct {
		name    string
		target  Target
		expect  string
		handler string
	}{
		{name: "default preset", target: Target{Preset: VSCode}, expect: "vscode", handler: "vscode://file/{file}:{line}:{column}"},
		{name: "alternate preset", target: Target{Preset: Cursor}, expect: "cursor", handler: "cursor://file/{file}:{line}:{column}"},
		{name: "unknown falls back to default", target: ParseTarget("emacs-on-a-boat"), expect: "vscode", handler: "vscode://file/{file}:{line}:{column}"},
		{name: "empty falls back to default", target: Target{}, expect: "vscode", handler: "vscode://file/{file}:{line}:{column}"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resolved := Resolve(tc.target)
			assert.Equal(t, tc.expect, resolved.Name)
			assert.Equal(t, tc.handler, resolved.Handler)
			assert.True(t, resolved.UseAbsolutePath)
		})
	}
}

func TestResolveCustom(t *testing.T) {
	relative := false
	resolved := Resolve(Target{Custom: &Custom{Handler: "myeditor://open/{file}#{line}"}})
	assert.Equal(t, "custom", resolved.Name)
	assert.Equal(t, "myeditor://open/{file}#{line}", resolved.Handler)
	assert.True(t, resolved.UseAbsolutePath)

	resolved = Resolve(Target{Custom: &Custom{Handler: "x://{file}", UseAbsolutePath: &relative}})
	assert.False(t, resolved.UseAbsolutePath)

	// empty custom handler falls back to the default preset
	resolved = Resolve(Target{Custom: &Custom{}})
	assert.Equal(t, "vscode", resolved.Name)
}

func TestBuildURI(t *testing.T) {
	loc := location.Decode("/a/b/Button.tsx:3:5")
	uri := BuildURI(Resolve(Target{Preset: VSCode}), loc)
	assert.Equal(t, "vscode://file//a/b/Button.tsx:3:5", uri)
}

func TestBuildURIEscapesFile(t *testing.T) {
	loc := location.Decode("/my app/src/Button.tsx:12:4")
	uri := BuildURI(Resolve(Target{Preset: VSCode}), loc)
	assert.Equal(t, "vscode://file//my%20app/src/Button.tsx:12:4", uri)
}

func TestBuildURISubstitutesEveryOccurrence(t *testing.T) {
	resolved := Resolve(Target{Custom: &Custom{Handler: "e://{file}?f={file}&l={line}&l2={line}&c={column}"}})
	loc := location.Decode("src/App.jsx:7:2")
	assert.Equal(t, "e://src/App.jsx?f=src/App.jsx&l=7&l2=7&c=2", BuildURI(resolved, loc))
}

func TestDispatchUsesPlatformOpener(t *testing.T) {
	var gotArgs []string
	original := launch
	launch = func(name string, args ...string) error {
		gotArgs = append([]string{name}, args...)
		return nil
	}
	defer func() { launch = original }()

	loc := location.Decode("/a/b/Button.tsx:3:5")
	err := Dispatch(Target{Preset: VSCode}, loc)
	assert.NoError(t, err)
	if len(gotArgs) > 0 {
		assert.Equal(t, "vscode://file//a/b/Button.tsx:3:5", gotArgs[len(gotArgs)-1])
	}
}
