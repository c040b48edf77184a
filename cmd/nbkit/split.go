package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	nbkit "github.com/alnah/go-nbkit"
)

// runSplit splits a notebook into multiple notebooks by cell count.
// The plan comes from --counts (explicit) or --files (even distribution);
// exactly one of the two must be given on the command line or in config.
func runSplit(positionalArgs []string, flags *splitFlags, env *Environment) error {
	cfg, err := loadCommandConfig(flags.common, env)
	if err != nil {
		return err
	}

	if len(positionalArgs) == 0 {
		return fmt.Errorf("%w: notebook path required", ErrNoInput)
	}
	inputPath := positionalArgs[0]

	nb, err := nbkit.ReadNotebook(inputPath)
	if err != nil {
		return err
	}
	totalCells := len(nb.Cells)

	// Merge flags over config
	counts := flags.counts
	if counts == "" {
		counts = cfg.Split.Counts
	}
	numFiles := flags.files
	if numFiles == 0 {
		numFiles = cfg.Split.Files
	}

	plan, err := buildPlan(counts, numFiles, totalCells, flags.common.quiet, env)
	if err != nil {
		return err
	}

	outputDir := flags.output
	if outputDir == "" {
		outputDir = cfg.Output.DefaultDir
	}
	if outputDir == "" {
		outputDir = "."
	}

	parts, leftover := nbkit.ApplyPlan(nb, plan)
	if leftover > 0 {
		fmt.Fprintf(env.Stderr, "warning: %d cell(s) not covered by the plan\n", leftover)
	}

	for i, part := range parts {
		outPath := filepath.Join(outputDir, strconv.Itoa(i+1)+".ipynb")
		if err := part.Write(outPath); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		if !flags.common.quiet {
			fmt.Fprintf(env.Stdout, "Created %s (%d cells)\n", outPath, len(part.Cells))
		}
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "\nSplit %d cells into %d file(s)\n", totalCells, len(parts))
	}

	return nil
}

// buildPlan derives the distribution plan from explicit counts or an
// even split, reconciling explicit counts against the cell total.
func buildPlan(counts string, numFiles, totalCells int, quiet bool, env *Environment) ([]int, error) {
	if counts != "" {
		requested, err := nbkit.ParseCounts(counts)
		if err != nil {
			return nil, err
		}
		if len(requested) == 0 {
			return nil, fmt.Errorf("%w: empty counts", nbkit.ErrInvalidCounts)
		}
		plan := nbkit.ReconcilePlan(requested, totalCells)
		if !quiet && !plansEqual(requested, plan) {
			fmt.Fprintf(env.Stderr, "note: counts adjusted from %v to %v to match %d cells\n", requested, plan, totalCells)
		}
		return plan, nil
	}

	if numFiles > 0 {
		return nbkit.EvenPlan(totalCells, numFiles)
	}

	return nil, fmt.Errorf("%w: either --counts or --files is required", ErrUsage)
}

// plansEqual reports whether two plans have identical entries.
func plansEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
