package main

import (
	"errors"
	"os"

	nbkit "github.com/alnah/go-nbkit"
	"github.com/alnah/go-nbkit/internal/assets"
	"github.com/alnah/go-nbkit/internal/config"
)

// Exit codes for the nbkit CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, nbkit.ErrBrowserConnect) ||
		errors.Is(err, nbkit.ErrPageCreate) ||
		errors.Is(err, nbkit.ErrPageLoad) ||
		errors.Is(err, nbkit.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadNotebook) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidField) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, nbkit.ErrNotebookExtension) ||
		errors.Is(err, nbkit.ErrMalformedNotebook) ||
		errors.Is(err, nbkit.ErrMissingField) ||
		errors.Is(err, nbkit.ErrInvalidFileCount) ||
		errors.Is(err, nbkit.ErrInvalidCounts) ||
		errors.Is(err, nbkit.ErrNoImages) ||
		errors.Is(err, nbkit.ErrInvalidPageSize) ||
		errors.Is(err, nbkit.ErrInvalidOrientation) ||
		errors.Is(err, nbkit.ErrInvalidMargins) {
		return ExitUsage
	}

	return ExitGeneral
}
