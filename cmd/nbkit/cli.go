package main

import (
	"context"
	"errors"
	"fmt"

	nbkit "github.com/alnah/go-nbkit"
	"github.com/alnah/go-nbkit/internal/config"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage        = errors.New("invalid usage")
	ErrNoInput      = errors.New("no input specified")
	ErrReadNotebook = errors.New("failed to read notebook file")
	ErrReadCSS      = errors.New("failed to read CSS file")
	ErrWriteOutput  = errors.New("failed to write output file")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// run dispatches to a subcommand.
func run(ctx context.Context, args []string, env *Environment) error {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return fmt.Errorf("%w: missing command", ErrUsage)
	}

	command := args[1]
	rest := args[2:]

	switch command {
	case "convert":
		flags, positional, err := parseConvertFlags(rest)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUsage, err)
		}
		return runConvert(ctx, positional, flags, env)
	case "split":
		flags, positional, err := parseSplitFlags(rest)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUsage, err)
		}
		return runSplit(positional, flags, env)
	case "tile":
		flags, positional, err := parseTileFlags(rest)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUsage, err)
		}
		return runTile(ctx, positional, flags, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "version":
		fmt.Fprintf(env.Stdout, "nbkit %s\n", Version)
		return nil
	case "help", "--help", "-h":
		runHelp(rest, env)
		return nil
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: unknown command %q", ErrUsage, command)
	}
}

// loadCommandConfig loads the config named by the common flags, or keeps
// the environment default when no config is requested.
func loadCommandConfig(common commonFlags, env *Environment) (*config.Config, error) {
	if common.config == "" {
		return env.Config, nil
	}
	cfg, err := config.LoadConfig(common.config)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// buildPageSettings merges page flags over config. Returns nil when
// neither specifies anything, which means library defaults (A4 portrait).
func buildPageSettings(flags pageFlags, cfg *config.Config) (*nbkit.PageSettings, error) {
	hasFlags := flags.size != "" || flags.orientation != ""
	hasConfig := cfg.Page.Size != "" || cfg.Page.Orientation != ""

	if !hasFlags && !hasConfig {
		return nil, nil
	}

	ps := &nbkit.PageSettings{
		Size:        cfg.Page.Size,
		Orientation: cfg.Page.Orientation,
	}

	// CLI flags override config
	if flags.size != "" {
		ps.Size = flags.size
	}
	if flags.orientation != "" {
		ps.Orientation = flags.orientation
	}

	// Apply defaults
	if ps.Size == "" {
		ps.Size = nbkit.PageSizeA4
	}
	if ps.Orientation == "" {
		ps.Orientation = nbkit.OrientationPortrait
	}

	if err := ps.Validate(); err != nil {
		return nil, err
	}

	return ps, nil
}

// buildMargins merges margin flags over config margins over the given
// defaults. Returns nil when nothing was specified so the library
// applies its own per-operation defaults.
func buildMargins(flags marginFlags, cfgMargins *config.MarginsConfig, defaults *nbkit.Margins) (*nbkit.Margins, error) {
	if !flags.set() && cfgMargins == nil {
		return nil, nil
	}

	m := *defaults
	if cfgMargins != nil {
		m = nbkit.Margins{
			Left:   cfgMargins.Left,
			Right:  cfgMargins.Right,
			Top:    cfgMargins.Top,
			Bottom: cfgMargins.Bottom,
		}
	}

	// CLI flags override config
	if flags.left != marginUnset {
		m.Left = flags.left
	}
	if flags.right != marginUnset {
		m.Right = flags.right
	}
	if flags.top != marginUnset {
		m.Top = flags.top
	}
	if flags.bottom != marginUnset {
		m.Bottom = flags.bottom
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return &m, nil
}
