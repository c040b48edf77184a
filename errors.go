package nbkit

import "errors"

// Sentinel errors for library operations.
var (
	// Notebook parsing and validation errors.
	ErrNotebookExtension = errors.New("file must have .ipynb extension")
	ErrMalformedNotebook = errors.New("notebook is not valid JSON")
	ErrMissingField      = errors.New("notebook missing required field")
	ErrNilNotebook       = errors.New("notebook cannot be nil")

	// Distribution plan errors.
	ErrInvalidFileCount = errors.New("invalid file count")
	ErrInvalidCounts    = errors.New("counts must be comma-separated positive integers")

	// Image tiling errors.
	ErrNoImages   = errors.New("no images could be loaded")
	ErrEmptyStrip = errors.New("merged strip has zero height")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargins     = errors.New("invalid margins")

	// PDF rendering errors.
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
)
