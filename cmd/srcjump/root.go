package main

import (
	"github.com/spf13/cobra"
)

var quiet bool

var rootCmd = &cobra.Command{
	Use:   "srcjump",
	Short: "srcjump - click-to-source annotation for JSX/TSX",
	Long: `srcjump stamps every JSX/TSX markup element with its originating
file:line:column so a runtime overlay can jump from a rendered element
straight to the source line in your editor.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")

	rootCmd.AddCommand(annotateCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
