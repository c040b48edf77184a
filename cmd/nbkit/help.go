package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: nbkit <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert Jupyter notebooks to PDF")
	fmt.Fprintln(w, "  split      Split a notebook into several notebooks by cell count")
	fmt.Fprintln(w, "  tile       Assemble a directory of images into a tiled PDF")
	fmt.Fprintln(w, "  doctor     Check the environment for PDF conversion")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'nbkit help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: nbkit convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert Jupyter notebooks to PDF.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Notebook file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <dur>       PDF generation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: a3, a4, a5, letter, legal")
	fmt.Fprintln(w, "      --orientation <s>     Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin-left <f>     Left margin in mm")
	fmt.Fprintln(w, "      --margin-right <f>    Right margin in mm")
	fmt.Fprintln(w, "      --margin-top <f>      Top margin in mm")
	fmt.Fprintln(w, "      --margin-bottom <f>   Bottom margin in mm")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <s>           CSS style name or file path")
	fmt.Fprintln(w, "      --asset-path <path>   Custom asset directory")
	fmt.Fprintln(w, "      --no-style            Skip extra CSS styling")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
}

// printSplitUsage prints usage for the split command.
func printSplitUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: nbkit split <notebook> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Split a notebook into several notebooks by cell count.")
	fmt.Fprintln(w, "Output files are named 1.ipynb, 2.ipynb, and so on.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  notebook    Notebook file to split")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Distribution (one required):")
	fmt.Fprintln(w, "  -n, --files <n>           Split into n files with even cell counts")
	fmt.Fprintln(w, "      --counts <s>          Explicit comma-separated cell counts")
	fmt.Fprintln(w, "                            A trailing comma adds a file for the remaining cells")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: current directory)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
}

// printTileUsage prints usage for the tile command.
func printTileUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: nbkit tile <directory> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Assemble all images in a directory into one tiled PDF.")
	fmt.Fprintln(w, "Images are ordered by the numeric runs in their file names,")
	fmt.Fprintln(w, "merged into a vertical strip, and sliced across pages.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  directory    Directory containing the images")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output PDF path (default: <directory>/output.pdf)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Layout:")
	fmt.Fprintln(w, "  -s, --slices <n>          Slice count (0 = computed minimum)")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: a3, a4, a5, letter, legal")
	fmt.Fprintln(w, "      --orientation <s>     Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin-left <f>     Left margin in mm")
	fmt.Fprintln(w, "      --margin-right <f>    Right margin in mm")
	fmt.Fprintln(w, "      --margin-top <f>      Top margin in mm")
	fmt.Fprintln(w, "      --margin-bottom <f>   Bottom margin in mm")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "split":
		printSplitUsage(env.Stdout)
	case "tile":
		printTileUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: nbkit doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check Chrome availability and environment for PDF conversion.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: nbkit version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: nbkit help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
