package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/srcjump/srcjump/editor"
	"github.com/srcjump/srcjump/location"
)

var openEditor string

var openCmd = &cobra.Command{
	Use:   "open TOKEN",
	Short: "Open a location token in the configured editor",
	Long: `Open decodes a {file}:{line}:{column} token and launches the editor at
that exact position, the same jump the runtime overlay performs on click.`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

func init() {
	openCmd.Flags().StringVar(&openEditor, "editor", string(editor.DefaultPreset),
		"Editor preset ("+strings.Join(editor.Presets(), ", ")+") or a custom URI template")
}

func runOpen(cmd *cobra.Command, args []string) error {
	loc := location.Decode(args[0])
	if loc == nil {
		return fmt.Errorf("malformed location token: %q", args[0])
	}
	target := editor.ParseTarget(openEditor)
	if strings.Contains(openEditor, "{file}") {
		target = editor.Target{Custom: &editor.Custom{Handler: openEditor}}
	}
	uri := editor.BuildURI(editor.Resolve(target), loc)
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Opening %s\n", uri)
	}
	return editor.Open(uri)
}
