package navigator

import (
	"encoding/json"
	"fmt"

	"github.com/srcjump/srcjump/editor"
	"github.com/srcjump/srcjump/location"
)

// DefaultAttribute is the location attribute the navigator reads; it must
// match what the annotator wrote.
const DefaultAttribute = "data-insp-path"

// TooltipAttribute holds the derived display path shown in hover tooltips.
// It is purely cosmetic and never consumed for navigation.
const TooltipAttribute = "data-tooltip-path"

// Config is the runtime highlight configuration. Pointer fields distinguish
// "not set" from an explicit false so the merge keeps override-wins-on-present
// semantics.
type Config struct {
	Editor             editor.Target
	AttributeName      string
	EnabledByDefault   *bool
	TooltipPathDisplay location.PathDisplay
	ShowInstructions   *bool
	Styles             map[string]string
}

func (c Config) attribute() string {
	if c.AttributeName == "" {
		return DefaultAttribute
	}
	return c.AttributeName
}

func (c Config) enabledByDefault() bool {
	return c.EnabledByDefault != nil && *c.EnabledByDefault
}

func (c Config) showInstructions() bool {
	return c.ShowInstructions == nil || *c.ShowInstructions
}

// Merge combines a base configuration with an override; override keys win
// when present. The merge is shallow except Styles, which is merged key-wise.
func Merge(base, override Config) Config {
	merged := base
	if override.Editor.Preset != "" || override.Editor.Custom != nil {
		merged.Editor = override.Editor
	}
	if override.AttributeName != "" {
		merged.AttributeName = override.AttributeName
	}
	if override.EnabledByDefault != nil {
		merged.EnabledByDefault = override.EnabledByDefault
	}
	if override.TooltipPathDisplay != "" {
		merged.TooltipPathDisplay = override.TooltipPathDisplay
	}
	if override.ShowInstructions != nil {
		merged.ShowInstructions = override.ShowInstructions
	}
	if len(override.Styles) > 0 {
		styles := make(map[string]string, len(base.Styles)+len(override.Styles))
		for k, v := range base.Styles {
			styles[k] = v
		}
		for k, v := range override.Styles {
			styles[k] = v
		}
		merged.Styles = styles
	}
	return merged
}

// configJSON mirrors the serialized form of the process-wide config flag the
// annotator's bootstrap snippet writes.
type configJSON struct {
	Editor             json.RawMessage   `json:"editor,omitempty"`
	EnabledByDefault   *bool             `json:"enabledByDefault,omitempty"`
	TooltipPathDisplay string            `json:"tooltipPathDisplay,omitempty"`
	ShowInstructions   *bool             `json:"showInstructions,omitempty"`
	Styles             map[string]string `json:"styles,omitempty"`
}

// ConfigFromJSON parses the serialized flag contract: editor is either a
// preset name or a {handler, useAbsolutePath} object.
func ConfigFromJSON(data []byte) (Config, error) {
	var raw configJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("failed to parse navigator config: %w", err)
	}
	cfg := Config{
		EnabledByDefault:   raw.EnabledByDefault,
		TooltipPathDisplay: location.PathDisplay(raw.TooltipPathDisplay),
		ShowInstructions:   raw.ShowInstructions,
		Styles:             raw.Styles,
	}
	if len(raw.Editor) > 0 {
		var preset string
		if err := json.Unmarshal(raw.Editor, &preset); err == nil {
			cfg.Editor = editor.ParseTarget(preset)
		} else {
			var custom editor.Custom
			if err := json.Unmarshal(raw.Editor, &custom); err != nil {
				return Config{}, fmt.Errorf("failed to parse editor target: %w", err)
			}
			cfg.Editor = editor.Target{Custom: &custom}
		}
	}
	return cfg, nil
}
