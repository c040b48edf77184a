package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// marginUnset detects whether a margin flag was explicitly set.
// Since 0 is a valid margin, we use an out-of-range sentinel.
const marginUnset = -1.0

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// pageFlags holds page layout flags.
type pageFlags struct {
	size        string
	orientation string
}

// marginFlags holds the four page margins in millimeters.
// Values stay at marginUnset until explicitly given.
type marginFlags struct {
	left   float64
	right  float64
	top    float64
	bottom float64
}

// set reports whether any margin flag was explicitly given.
func (m *marginFlags) set() bool {
	return m.left != marginUnset || m.right != marginUnset ||
		m.top != marginUnset || m.bottom != marginUnset
}

// assetFlags holds styling flags for the convert command.
type assetFlags struct {
	style     string // CSS style name or file path
	assetPath string // Override asset directory
	noStyle   bool   // Disable extra CSS styling
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common  commonFlags
	output  string
	workers int
	timeout string
	page    pageFlags
	margins marginFlags
	assets  assetFlags
}

// splitFlags holds all flags for the split command.
type splitFlags struct {
	common commonFlags
	output string
	files  int
	counts string
}

// tileFlags holds all flags for the tile command.
type tileFlags struct {
	common  commonFlags
	output  string
	page    pageFlags
	margins marginFlags
	slices  int
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: a3, a4, a5, letter, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
}

// addMarginFlags adds margin flags to a FlagSet.
func addMarginFlags(fs *flag.FlagSet, f *marginFlags) {
	fs.Float64Var(&f.left, "margin-left", marginUnset, "left margin in mm")
	fs.Float64Var(&f.right, "margin-right", marginUnset, "right margin in mm")
	fs.Float64Var(&f.top, "margin-top", marginUnset, "top margin in mm")
	fs.Float64Var(&f.bottom, "margin-bottom", marginUnset, "bottom margin in mm")
}

// addAssetFlags adds styling flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "CSS style name or file path")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.BoolVar(&f.noStyle, "no-style", false, "skip extra CSS styling")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")

	addCommonFlags(fs, &f.common)
	addPageFlags(fs, &f.page)
	addMarginFlags(fs, &f.margins)
	addAssetFlags(fs, &f.assets)

	fs.Usage = func() { printConvertUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// parseSplitFlags parses split command flags and returns positional args.
func parseSplitFlags(args []string) (*splitFlags, []string, error) {
	fs := flag.NewFlagSet("split", flag.ContinueOnError)
	f := &splitFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output directory (default: current directory)")
	fs.IntVarP(&f.files, "files", "n", 0, "number of output files (even distribution)")
	fs.StringVar(&f.counts, "counts", "", "explicit comma-separated cell counts (trailing comma = remainder file)")

	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printSplitUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// parseTileFlags parses tile command flags and returns positional args.
func parseTileFlags(args []string) (*tileFlags, []string, error) {
	fs := flag.NewFlagSet("tile", flag.ContinueOnError)
	f := &tileFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output PDF path")
	fs.IntVarP(&f.slices, "slices", "s", 0, "slice count (0 = computed minimum)")

	addCommonFlags(fs, &f.common)
	addPageFlags(fs, &f.page)
	addMarginFlags(fs, &f.margins)

	fs.Usage = func() { printTileUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
