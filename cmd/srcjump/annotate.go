package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"github.com/viant/afs/file"

	"github.com/srcjump/srcjump/annotator"
	"github.com/srcjump/srcjump/project"
)

var (
	annotateAttribute  string
	annotateRelative   bool
	annotateRoot       string
	annotateLegacy     bool
	annotateProduction bool
	annotateWrite      bool
	annotateMap        bool
)

var annotateCmd = &cobra.Command{
	Use:   "annotate [target]",
	Short: "Annotate JSX/TSX sources with location attributes",
	Long: `Annotate walks a file or directory tree and stamps every markup element
with a ` + annotator.DefaultAttribute + ` attribute. Already-annotated elements are
left untouched, so re-running is always safe.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnnotate,
}

func init() {
	annotateCmd.Flags().StringVar(&annotateAttribute, "attribute", "", "Attribute name (default "+annotator.DefaultAttribute+")")
	annotateCmd.Flags().BoolVar(&annotateRelative, "relative", false, "Emit project-root-relative paths")
	annotateCmd.Flags().StringVar(&annotateRoot, "root", "", "Project root for relative paths (default: detected)")
	annotateCmd.Flags().BoolVar(&annotateLegacy, "legacy-source", false, "Additionally inject the __source debug attribute")
	annotateCmd.Flags().BoolVar(&annotateProduction, "production", false, "Treat this run as a production build (skips annotation)")
	annotateCmd.Flags().BoolVarP(&annotateWrite, "write", "w", false, "Rewrite files in place instead of printing")
	annotateCmd.Flags().BoolVar(&annotateMap, "map", false, "Emit a .map source map next to each written file")
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("target does not exist: %s", target)
	}
	ctx := cmd.Context()

	proj, err := project.New().Detect(target)
	if err != nil {
		return fmt.Errorf("failed to detect project root: %w", err)
	}
	fileCfg, err := loadFileConfig(ctx, proj.RootPath)
	if err != nil {
		return err
	}
	cfg := buildConfig(fileCfg, proj)

	if !info.IsDir() {
		return annotateFile(ctx, cmd, target, cfg)
	}
	return annotateTree(ctx, cmd, target, cfg)
}

// buildConfig folds the file config under the flags; flags win when set.
func buildConfig(fileCfg fileConfig, proj *project.Project) annotator.Config {
	cfg := annotator.Config{
		AttributeName:         fileCfg.Attribute,
		UseRelativePaths:      fileCfg.RelativePaths != nil && *fileCfg.RelativePaths,
		RootDir:               fileCfg.Root,
		InjectLegacyDebugInfo: fileCfg.LegacySource != nil && *fileCfg.LegacySource,
		Production:            annotateProduction,
		Runtime:               fileCfg.Runtime,
	}
	if annotateAttribute != "" {
		cfg.AttributeName = annotateAttribute
	}
	if annotateRelative {
		cfg.UseRelativePaths = true
	}
	if annotateRoot != "" {
		cfg.RootDir = annotateRoot
	}
	if annotateLegacy {
		cfg.InjectLegacyDebugInfo = true
	}
	if cfg.UseRelativePaths && cfg.RootDir == "" {
		cfg.RootDir = proj.RootPath
	}
	return cfg
}

func annotateFile(ctx context.Context, cmd *cobra.Command, target string, cfg annotator.Config) error {
	fs := afs.New()
	src, err := fs.DownloadWithURL(ctx, target)
	if err != nil {
		return fmt.Errorf("failed to read %v: %w", target, err)
	}
	result, err := annotator.Annotate(ctx, src, target, cfg)
	if err != nil {
		return err
	}
	if !annotateWrite {
		_, err = cmd.OutOrStdout().Write(result.Code)
		return err
	}
	if !bytes.Equal(result.Code, src) {
		if err := fs.Upload(ctx, target, file.DefaultFileOsMode, bytes.NewReader(result.Code)); err != nil {
			return fmt.Errorf("failed to write %v: %w", target, err)
		}
	}
	if annotateMap && result.Map != nil {
		serialized, err := json.Marshal(result.Map)
		if err != nil {
			return err
		}
		if err := fs.Upload(ctx, target+".map", file.DefaultFileOsMode, bytes.NewReader(serialized)); err != nil {
			return fmt.Errorf("failed to write source map: %w", err)
		}
	}
	printSummary(cmd, []annotator.FileResult{{Path: target, Annotated: result.Annotated, Changed: !bytes.Equal(result.Code, src)}})
	return nil
}

func annotateTree(ctx context.Context, cmd *cobra.Command, target string, cfg annotator.Config) error {
	if !annotateWrite {
		return fmt.Errorf("annotating a directory requires --write")
	}
	results, err := annotator.AnnotateDir(ctx, afs.New(), target, cfg, annotator.NewCache(), true)
	if err != nil {
		return err
	}
	printSummary(cmd, results)
	return nil
}

var (
	changedColor = color.New(color.FgHiGreen)
	skippedColor = color.New(color.FgYellow)
)

func printSummary(cmd *cobra.Command, results []annotator.FileResult) {
	if quiet {
		return
	}
	out := cmd.OutOrStdout()
	changed, elements := 0, 0
	for _, r := range results {
		switch {
		case r.CacheHit:
			skippedColor.Fprintf(out, "  cached   %s\n", r.Path)
		case r.Changed:
			changedColor.Fprintf(out, "  stamped  %s (%d elements)\n", r.Path, r.Annotated)
			changed++
			elements += r.Annotated
		default:
			skippedColor.Fprintf(out, "  skipped  %s\n", r.Path)
		}
	}
	fmt.Fprintf(out, "%d file(s) changed, %d element(s) annotated\n", changed, elements)
}
