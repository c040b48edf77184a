package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	nbkit "github.com/alnah/go-nbkit"
	"github.com/alnah/go-nbkit/internal/assets"
	"github.com/alnah/go-nbkit/internal/config"
	"github.com/alnah/go-nbkit/internal/fileutil"
)

// ErrInvalidWorkerCount indicates an out-of-range --workers value.
var ErrInvalidWorkerCount = errors.New("invalid worker count")

// FileToConvert represents a single notebook to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Duration   time.Duration
}

// conversionParams groups parameters shared across the batch.
type conversionParams struct {
	css     string
	page    *nbkit.PageSettings
	margins *nbkit.Margins
}

// runConvert orchestrates notebook-to-PDF conversion for a file or a
// directory of notebooks.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	cfg, err := loadCommandConfig(flags.common, env)
	if err != nil {
		return err
	}

	// Resolve input path
	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}

	// Resolve output directory
	outputDir := resolveOutputDir(flags.output, cfg)

	// Discover notebooks to convert
	files, err := discoverNotebooks(inputPath, outputDir)
	if err != nil {
		return fmt.Errorf("discovering notebooks: %w", err)
	}

	if len(files) == 0 {
		return fmt.Errorf("no notebooks found in %s", inputPath)
	}

	// Resolve extra CSS content
	cssContent, err := resolveCSSContent(flags.assets, cfg, env)
	if err != nil {
		return err
	}

	// Build page settings and margins
	pageData, err := buildPageSettings(flags.page, cfg)
	if err != nil {
		return err
	}
	marginData, err := buildMargins(flags.margins, cfg.Convert.Margins, nbkit.DefaultConvertMargins())
	if err != nil {
		return err
	}

	params := &conversionParams{
		css:     cssContent,
		page:    pageData,
		margins: marginData,
	}

	// Build converter options
	var opts []nbkit.Option
	if flags.timeout != "" {
		d, err := time.ParseDuration(flags.timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: invalid timeout %q", ErrUsage, flags.timeout)
		}
		opts = append(opts, nbkit.WithTimeout(d))
	}

	poolSize := resolvePoolSize(flags.workers)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", poolSize)
	}
	pool := NewConverterPool(poolSize, func() PDFConverter {
		return nbkit.NewConverter(opts...)
	})
	defer pool.Close()

	// Convert files
	results := convertBatch(ctx, pool, files, params)

	// Print results
	failedCount := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if failedCount > 0 {
		return fmt.Errorf("%d conversion(s) failed", failedCount)
	}

	return nil
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir determines the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// resolveCSSContent resolves extra CSS appended after the embedded print
// style. Priority: --style file path > --style name or config style name
// (via asset loader). Empty means no extra CSS.
func resolveCSSContent(flags assetFlags, cfg *config.Config, env *Environment) (string, error) {
	if flags.noStyle {
		return "", nil
	}

	loader := env.AssetLoader
	basePath := flags.assetPath
	if basePath == "" {
		basePath = cfg.Assets.BasePath
	}
	if basePath != "" {
		resolver, err := assets.NewAssetResolver(basePath)
		if err != nil {
			return "", err
		}
		loader = resolver
	}

	styleName := flags.style
	if styleName == "" {
		styleName = cfg.CSS.Style
	}
	if styleName == "" {
		return "", nil
	}

	// A path loads directly; a bare name goes through the asset loader.
	if fileutil.IsFilePath(styleName) {
		content, err := os.ReadFile(styleName) // #nosec G304 -- user-provided path
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrReadCSS, err)
		}
		return string(content), nil
	}

	return loader.LoadStyle(styleName)
}

// discoverNotebooks finds all notebooks to convert.
func discoverNotebooks(inputPath, outputDir string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !strings.EqualFold(filepath.Ext(inputPath), ".ipynb") {
			return nil, fmt.Errorf("%w: got %q", nbkit.ErrNotebookExtension, filepath.Ext(inputPath))
		}
		outPath := resolveOutputPath(inputPath, outputDir, "")
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".ipynb") {
			return nil
		}
		outPath := resolveOutputPath(path, outputDir, inputPath)
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath})
		return nil
	})

	return files, err
}

// resolveOutputPath determines the PDF output path for a notebook.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), ext)

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base+".pdf")
	}

	if strings.HasSuffix(outputDir, ".pdf") {
		return outputDir
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			relDir := filepath.Dir(relPath)
			return filepath.Join(outputDir, relDir, base+".pdf")
		}
	}

	return filepath.Join(outputDir, base+".pdf")
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, MaxPoolSize)
	}
	return nil
}

// convertBatch processes notebooks concurrently using the converter pool.
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := pool.Size()
	if concurrency > len(files) {
		concurrency = len(files)
	}

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv := pool.Acquire()
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile processes a single notebook and returns the result.
func convertFile(ctx context.Context, conv PDFConverter, f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}

	nb, err := nbkit.ReadNotebook(f.InputPath)
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadNotebook, err)
		result.Duration = time.Since(start)
		return result
	}

	outDir := filepath.Dir(f.OutputPath)
	if err := os.MkdirAll(outDir, dirPermissions); err != nil {
		result.Err = fmt.Errorf("creating output directory: %w", err)
		result.Duration = time.Since(start)
		return result
	}

	title := strings.TrimSuffix(filepath.Base(f.InputPath), filepath.Ext(f.InputPath))
	pdfBytes, err := conv.Convert(ctx, nbkit.ConvertInput{
		Notebook: nb,
		Title:    title,
		CSS:      params.css,
		Page:     params.page,
		Margins:  params.margins,
	})
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	// #nosec G306 -- PDFs are meant to be readable
	if err := os.WriteFile(f.OutputPath, pdfBytes, filePermissions); err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrWriteOutput, err)
		result.Duration = time.Since(start)
		return result
	}

	result.Duration = time.Since(start)
	return result
}

// printResults outputs conversion results using the environment writers.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	var succeeded, failed int

	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		succeeded++
		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", succeeded, failed)
	}

	return failed
}
