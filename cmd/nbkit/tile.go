package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	nbkit "github.com/alnah/go-nbkit"
	"github.com/alnah/go-nbkit/internal/imaging"
)

// runTile assembles a directory of images into a single tiled PDF.
func runTile(ctx context.Context, positionalArgs []string, flags *tileFlags, env *Environment) error {
	cfg, err := loadCommandConfig(flags.common, env)
	if err != nil {
		return err
	}

	if len(positionalArgs) == 0 {
		return fmt.Errorf("%w: image directory required", ErrNoInput)
	}
	inputDir := positionalArgs[0]

	paths, err := imaging.ListImages(inputDir)
	if err != nil {
		return fmt.Errorf("listing images: %w", err)
	}

	pageData, err := buildPageSettings(flags.page, cfg)
	if err != nil {
		return err
	}
	marginData, err := buildMargins(flags.margins, cfg.Tile.Margins, nbkit.DefaultTileMargins())
	if err != nil {
		return err
	}

	sliceCount := flags.slices
	if sliceCount == 0 {
		sliceCount = cfg.Tile.Slices
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = filepath.Join(inputDir, "output.pdf")
	}

	tiler := nbkit.NewTiler()
	result, err := tiler.Tile(ctx, paths, nbkit.TileOptions{
		Page:    pageData,
		Margins: marginData,
		Slices:  sliceCount,
	})
	if err != nil {
		return err
	}

	for _, skipped := range result.Skipped {
		fmt.Fprintf(env.Stderr, "warning: skipped %s (not a decodable image)\n", skipped)
	}
	if sliceCount > 0 && result.SliceCount > sliceCount {
		fmt.Fprintf(env.Stderr, "note: slice count raised from %d to %d so every slice fits a page\n", sliceCount, result.SliceCount)
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	// #nosec G306 -- PDFs are meant to be readable
	if err := os.WriteFile(outputPath, result.PDF, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s: %d image(s), %d slice(s), %d page(s)\n",
			outputPath, result.ImageCount, result.SliceCount, result.PageCount)
	}

	return nil
}
