package annotator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
)

// FlagName is the well-known global slot the bootstrap snippet writes and the
// runtime navigator reads. It is set at most once per page load.
const FlagName = "__SRCJUMP_CONFIG__"

// RuntimeConfig is serialized into the bootstrap snippet. Editor is either a
// preset name (string) or a {handler, useAbsolutePath} object, mirroring the
// runtime side of the contract.
type RuntimeConfig struct {
	Editor             any               `json:"editor,omitempty" yaml:"editor,omitempty"`
	EnabledByDefault   bool              `json:"enabledByDefault,omitempty" yaml:"enabledByDefault,omitempty"`
	TooltipPathDisplay string            `json:"tooltipPathDisplay,omitempty" yaml:"tooltipPathDisplay,omitempty"`
	ShowInstructions   *bool             `json:"showInstructions,omitempty" yaml:"showInstructions,omitempty"`
	Styles             map[string]string `json:"styles,omitempty" yaml:"styles,omitempty"`
}

// bootstrapSnippet renders the one-line guarded assignment. The guard keeps
// the first emitted copy authoritative when many annotated files execute at
// load time.
func bootstrapSnippet(cfg *RuntimeConfig) string {
	serialized, err := json.Marshal(cfg)
	if err != nil {
		// RuntimeConfig is plain data; marshal cannot fail in practice
		serialized = []byte("{}")
	}
	return fmt.Sprintf(
		";if (typeof globalThis !== \"undefined\" && typeof globalThis.%s === \"undefined\") { globalThis.%s = %s; }\n",
		FlagName, FlagName, serialized)
}

// hasBootstrap reports whether a bootstrap snippet is already present near
// the top of the file, so re-annotation stays a no-op.
func hasBootstrap(src []byte) bool {
	head := src
	if len(head) > 2048 {
		head = head[:2048]
	}
	return bytes.Contains(head, []byte(FlagName))
}

var directivePattern = regexp.MustCompile(`^(?:#![^\n]*\n)?\s*(['"])use client['"];?[ \t]*\r?\n`)

// directiveEnd returns the byte offset just past a leading client-context
// directive, or 0 when the file does not start with one. The snippet must
// land after the directive or the directive stops being one.
func directiveEnd(src []byte) int {
	if m := directivePattern.FindIndex(src); m != nil {
		return m[1]
	}
	return 0
}
