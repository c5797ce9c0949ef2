package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"

	"github.com/srcjump/srcjump/annotator"
)

// configFileName is looked up in the annotation target's project root.
const configFileName = ".srcjump.yaml"

// fileConfig is the optional on-disk configuration; flags override it.
type fileConfig struct {
	Attribute     string                   `yaml:"attribute,omitempty"`
	RelativePaths *bool                    `yaml:"relativePaths,omitempty"`
	Root          string                   `yaml:"root,omitempty"`
	LegacySource  *bool                    `yaml:"legacySource,omitempty"`
	Runtime       *annotator.RuntimeConfig `yaml:"runtime,omitempty"`
}

// loadFileConfig reads .srcjump.yaml from dir; a missing file yields an empty
// config, a malformed one an error.
func loadFileConfig(ctx context.Context, dir string) (fileConfig, error) {
	var cfg fileConfig
	path := filepath.Join(dir, configFileName)
	if _, err := os.Stat(path); err != nil {
		return cfg, nil
	}
	fs := afs.New()
	content, err := fs.DownloadWithURL(ctx, path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read %v: %w", path, err)
	}
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %v: %w", path, err)
	}
	return cfg, nil
}
