package nbkit

import (
	"fmt"
	"strings"
	"time"
)

// Page size constants.
const (
	PageSizeA3     = "a3"
	PageSizeA4     = "a4"
	PageSizeA5     = "a5"
	PageSizeLetter = "letter"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// pageDimensions maps a page size to its portrait dimensions in millimeters.
var pageDimensions = map[string][2]float64{
	PageSizeA3:     {297, 420},
	PageSizeA4:     {210, 297},
	PageSizeA5:     {148, 210},
	PageSizeLetter: {215.9, 279.4},
	PageSizeLegal:  {215.9, 355.6},
}

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string // "a3", "a4", "a5", "letter", "legal"
	Orientation string // "portrait", "landscape"
}

// DefaultPageSettings returns A4 portrait.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeA4,
		Orientation: OrientationPortrait,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
// Does not mutate - uses case-insensitive comparison.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	if _, ok := pageDimensions[strings.ToLower(p.Size)]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	switch strings.ToLower(p.Orientation) {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	return nil
}

// Dimensions returns the page width and height in millimeters, with
// width and height swapped for landscape orientation.
func (p *PageSettings) Dimensions() (width, height float64) {
	settings := p
	if settings == nil {
		settings = DefaultPageSettings()
	}
	dims, ok := pageDimensions[strings.ToLower(settings.Size)]
	if !ok {
		dims = pageDimensions[PageSizeA4]
	}
	width, height = dims[0], dims[1]
	if strings.ToLower(settings.Orientation) == OrientationLandscape {
		width, height = height, width
	}
	return width, height
}

// Margins are page margins in millimeters.
type Margins struct {
	Left   float64
	Right  float64
	Top    float64
	Bottom float64
}

// DefaultTileMargins returns the tiler defaults: side margins only, so
// slices can butt against the top and bottom page edges.
func DefaultTileMargins() *Margins {
	return &Margins{Left: 15, Right: 15}
}

// DefaultConvertMargins returns the notebook converter defaults (2cm
// on every side).
func DefaultConvertMargins() *Margins {
	return &Margins{Left: 20, Right: 20, Top: 20, Bottom: 20}
}

// Validate checks that all margins are non-negative.
// Returns nil if m is nil (nil means use defaults).
func (m *Margins) Validate() error {
	if m == nil {
		return nil
	}
	if m.Left < 0 || m.Right < 0 || m.Top < 0 || m.Bottom < 0 {
		return fmt.Errorf("%w: margins must be non-negative", ErrInvalidMargins)
	}
	return nil
}

// Horizontal returns the combined left and right margin.
func (m *Margins) Horizontal() float64 { return m.Left + m.Right }

// Vertical returns the combined top and bottom margin.
func (m *Margins) Vertical() float64 { return m.Top + m.Bottom }

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout time.Duration
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 60 * time.Second

// WithTimeout sets the PDF rendering timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("nbkit: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}
