// Package editor maps editor identifiers to protocol URI templates and
// dispatches location tokens to the platform's URI-open mechanism.
package editor

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/srcjump/srcjump/location"
)

// Preset identifies a built-in editor entry.
type Preset string

const (
	VSCode         Preset = "vscode"
	VSCodeInsiders Preset = "vscode-insiders"
	Cursor         Preset = "cursor"
	WebStorm       Preset = "webstorm"
	Sublime        Preset = "sublime"
	Atom           Preset = "atom"
	Zed            Preset = "zed"

	// DefaultPreset is used for unknown or empty targets.
	DefaultPreset = VSCode
)

// Custom carries a caller-supplied URI template. UseAbsolutePath defaults to
// true when left nil.
type Custom struct {
	Handler         string `json:"handler" yaml:"handler"`
	UseAbsolutePath *bool  `json:"useAbsolutePath,omitempty" yaml:"useAbsolutePath,omitempty"`
}

// Target selects an editor: a preset name, or a custom template when Custom
// is set. The zero value resolves to the default preset.
type Target struct {
	Preset Preset
	Custom *Custom
}

// ParseTarget builds a preset target from a plain identifier string.
func ParseTarget(name string) Target {
	return Target{Preset: Preset(strings.ToLower(strings.TrimSpace(name)))}
}

// Resolved is a dispatch-ready editor entry.
type Resolved struct {
	Name            string
	Handler         string
	UseAbsolutePath bool
}

var presets = map[Preset]Resolved{
	VSCode:         {Name: string(VSCode), Handler: "vscode://file/{file}:{line}:{column}", UseAbsolutePath: true},
	VSCodeInsiders: {Name: string(VSCodeInsiders), Handler: "vscode-insiders://file/{file}:{line}:{column}", UseAbsolutePath: true},
	Cursor:         {Name: string(Cursor), Handler: "cursor://file/{file}:{line}:{column}", UseAbsolutePath: true},
	WebStorm:       {Name: string(WebStorm), Handler: "webstorm://open?file={file}&line={line}&column={column}", UseAbsolutePath: true},
	Sublime:        {Name: string(Sublime), Handler: "subl://open?url=file://{file}&line={line}&column={column}", UseAbsolutePath: true},
	Atom:           {Name: string(Atom), Handler: "atom://core/open/file?filename={file}&line={line}&column={column}", UseAbsolutePath: true},
	Zed:            {Name: string(Zed), Handler: "zed://file/{file}:{line}:{column}", UseAbsolutePath: true},
}

// Presets lists the known preset identifiers in stable order.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, string(name))
	}
	sort.Strings(names)
	return names
}

// Resolve turns a target into a dispatch-ready entry. Unknown preset names
// fall back to the default preset; a custom target is used verbatim unless its
// handler is empty.
func Resolve(target Target) Resolved {
	if target.Custom != nil && target.Custom.Handler != "" {
		resolved := Resolved{
			Name:            "custom",
			Handler:         target.Custom.Handler,
			UseAbsolutePath: true,
		}
		if target.Custom.UseAbsolutePath != nil {
			resolved.UseAbsolutePath = *target.Custom.UseAbsolutePath
		}
		return resolved
	}
	if entry, ok := presets[target.Preset]; ok {
		return entry
	}
	return presets[DefaultPreset]
}

// BuildURI substitutes the location into every occurrence of the {file},
// {line} and {column} placeholders of the resolved handler template. The file
// is percent-encoded per path segment so separators survive.
func BuildURI(resolved Resolved, loc *location.Location) string {
	uri := strings.ReplaceAll(resolved.Handler, "{file}", escapeFile(loc.File))
	uri = strings.ReplaceAll(uri, "{line}", strconv.Itoa(loc.Line))
	uri = strings.ReplaceAll(uri, "{column}", strconv.Itoa(loc.Column))
	return uri
}

// Dispatch resolves the target, builds the URI and hands it to the platform
// opener.
func Dispatch(target Target, loc *location.Location) error {
	return Open(BuildURI(Resolve(target), loc))
}

func escapeFile(file string) string {
	segments := strings.Split(file, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}
