package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srcjump/srcjump/annotator"
	"github.com/srcjump/srcjump/project"
)

func TestRunVersion(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	err := runVersion(cmd, nil)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "srcjump v")
	assert.Contains(t, output, "Commit:")
	assert.Contains(t, output, "Go version:")
	assert.Contains(t, output, "OS/Arch:")
}

func TestRunDecode(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	err := runDecode(cmd, []string{"src/App.tsx:12:4"})
	require.NoError(t, err)
	output := buf.String()
	assert.Contains(t, output, "File:   src/App.tsx")
	assert.Contains(t, output, "Line:   12")
	assert.Contains(t, output, "Column: 4")
}

func TestRunDecodeMalformed(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	err := runDecode(cmd, []string{"not a token"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed location token")
}

func TestLoadFileConfig(t *testing.T) {
	dir := t.TempDir()
	content := `attribute: data-loc
relativePaths: true
runtime:
  enabledByDefault: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte(content), 0644))

	cfg, err := loadFileConfig(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, "data-loc", cfg.Attribute)
	require.NotNil(t, cfg.RelativePaths)
	assert.True(t, *cfg.RelativePaths)
	require.NotNil(t, cfg.Runtime)
	assert.True(t, cfg.Runtime.EnabledByDefault)
}

func TestLoadFileConfigMissing(t *testing.T) {
	cfg, err := loadFileConfig(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, fileConfig{}, cfg)
}

func TestBuildConfigFlagsWin(t *testing.T) {
	annotateAttribute = "data-flag"
	annotateRelative = true
	defer func() {
		annotateAttribute = ""
		annotateRelative = false
	}()

	relative := false
	fileCfg := fileConfig{Attribute: "data-file", RelativePaths: &relative}
	proj := &project.Project{RootPath: "/workspace/app"}

	cfg := buildConfig(fileCfg, proj)
	assert.Equal(t, "data-flag", cfg.AttributeName)
	assert.True(t, cfg.UseRelativePaths)
	assert.Equal(t, "/workspace/app", cfg.RootDir, "detected root backs relative paths when no root is given")
}

func TestBuildConfigFileDefaults(t *testing.T) {
	fileCfg := fileConfig{Attribute: "data-file", Root: "/elsewhere"}
	proj := &project.Project{RootPath: "/workspace/app"}

	cfg := buildConfig(fileCfg, proj)
	assert.Equal(t, "data-file", cfg.AttributeName)
	assert.False(t, cfg.UseRelativePaths)
	assert.Equal(t, "/elsewhere", cfg.RootDir)
	assert.Equal(t, annotator.Config{AttributeName: "data-file", RootDir: "/elsewhere"}, cfg)
}
