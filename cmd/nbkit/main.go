package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"

	nbkit "github.com/alnah/go-nbkit"
	"github.com/alnah/go-nbkit/internal/assets"
	"github.com/alnah/go-nbkit/internal/config"
	"github.com/alnah/go-nbkit/internal/hints"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Configure GOMAXPROCS quietly; errors only mean the GOMAXPROCS env
	// var is invalid, in which case Go runtime defaults apply.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	env := DefaultEnv()

	ctx, stop := notifyContext(context.Background())
	defer stop()

	err := run(ctx, os.Args, env)
	if err != nil {
		fmt.Fprintf(env.Stderr, "%v%s\n", err, hintFor(err))
	}
	os.Exit(exitCodeFor(err))
}

// hintFor returns an actionable hint for common failures, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, nbkit.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, nbkit.ErrPageLoad):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(nil)
	case errors.Is(err, assets.ErrStyleNotFound):
		return hints.ForStyleNotFound([]string{assets.DefaultStyleName})
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}
