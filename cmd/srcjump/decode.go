package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/srcjump/srcjump/location"
)

var decodeCmd = &cobra.Command{
	Use:   "decode TOKEN",
	Short: "Decode a location token into file, line and column",
	Long: `Decode parses a token of the form {file}:{line}:{column}, as emitted by
annotate, and prints its parts. The file portion may itself contain colons,
so the rightmost two numeric fields always win.`,
	Args: cobra.ExactArgs(1),
	RunE: runDecode,
}

func runDecode(cmd *cobra.Command, args []string) error {
	loc := location.Decode(args[0])
	if loc == nil {
		return fmt.Errorf("malformed location token: %q", args[0])
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "File:   %s\n", loc.File)
	fmt.Fprintf(out, "Line:   %d\n", loc.Line)
	fmt.Fprintf(out, "Column: %d\n", loc.Column)
	return nil
}
