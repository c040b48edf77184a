package nbkit

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/alnah/go-nbkit/internal/imaging"
)

// TileOptions configures a tiling run.
type TileOptions struct {
	Page    *PageSettings // nil = A4 portrait
	Margins *Margins      // nil = DefaultTileMargins
	Slices  int           // 0 = use the computed minimum; values below the minimum are clamped up
}

// TileResult reports what a tiling run produced.
type TileResult struct {
	PDF        []byte
	ImageCount int      // images successfully decoded
	SliceCount int      // bands the strip was cut into
	MinSlices  int      // computed floor; SliceCount >= MinSlices always holds
	PageCount  int      // pages in the output PDF
	Skipped    []string // paths that failed to decode
}

// Tiler assembles an ordered set of images into a single tiled PDF:
// merge into one vertical strip, scale the strip to the printable
// page width, cut it into near-equal horizontal bands, and lay the
// bands onto pages top to bottom.
type Tiler struct{}

// NewTiler creates a Tiler.
func NewTiler() *Tiler {
	return &Tiler{}
}

// Tile runs the full tiling pipeline over paths, in order.
// Files that fail to decode are skipped and reported in the result;
// the run fails only when no image loads at all.
//
// A band taller than one page is placed alone on its page and
// overflows the bottom margin. Bands are atomic placement units and
// are never split across pages.
func (t *Tiler) Tile(ctx context.Context, paths []string, opts TileOptions) (*TileResult, error) {
	if err := opts.Page.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Margins.Validate(); err != nil {
		return nil, err
	}

	margins := opts.Margins
	if margins == nil {
		margins = DefaultTileMargins()
	}
	pageWidth, pageHeight := opts.Page.Dimensions()
	if margins.Horizontal() >= pageWidth || margins.Vertical() >= pageHeight {
		return nil, fmt.Errorf("%w: margins leave no printable area", ErrInvalidMargins)
	}

	images, skipped := imaging.Load(paths)
	if len(images) == 0 {
		return nil, fmt.Errorf("%w (%d file(s) skipped)", ErrNoImages, len(skipped))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	strip := imaging.MergeVertical(images)
	if strip.Bounds().Dy() == 0 {
		return nil, ErrEmptyStrip
	}

	targetWidth := imaging.MMToPixels(pageWidth - margins.Horizontal())
	scaled := imaging.ScaleToWidth(strip, targetWidth)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	availHeight := imaging.MMToPixels(pageHeight - margins.Vertical())
	minSlices := imaging.MinSlices(scaled.Bounds().Dy(), availHeight)

	sliceCount := opts.Slices
	if sliceCount < minSlices {
		// Never clip content: a request below the floor is raised to it.
		sliceCount = minSlices
	}

	bands := imaging.SliceBands(scaled, sliceCount)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdfBytes, pageCount, err := paginate(bands, opts.Page, margins)
	if err != nil {
		return nil, err
	}

	return &TileResult{
		PDF:        pdfBytes,
		ImageCount: len(images),
		SliceCount: sliceCount,
		MinSlices:  minSlices,
		PageCount:  pageCount,
		Skipped:    skipped,
	}, nil
}

// paginate lays bands onto PDF pages. Each band is scaled so its
// width fills the printable width exactly; the vertical cursor starts
// at the top margin and a new page begins whenever the next band
// would cross the bottom margin.
func paginate(bands []*image.NRGBA, page *PageSettings, margins *Margins) ([]byte, int, error) {
	pdf := fpdf.New(orientationCode(page), "mm", sizeCode(page), "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	pageCount := 1

	pageWidth, pageHeight := pdf.GetPageSize()
	availWidth := pageWidth - margins.Horizontal()
	bottomLimit := pageHeight - margins.Bottom

	y := margins.Top
	for i, band := range bands {
		bandWidth := band.Bounds().Dx()
		bandHeight := band.Bounds().Dy()
		if bandHeight == 0 {
			continue
		}

		// Per-band ratio keeps the aspect ratio while pinning the
		// rendered width to the printable width.
		heightMM := float64(bandHeight) * availWidth / float64(bandWidth)

		if y+heightMM > bottomLimit && y > margins.Top {
			pdf.AddPage()
			pageCount++
			y = margins.Top
		}

		var buf bytes.Buffer
		if err := png.Encode(&buf, band); err != nil {
			return nil, 0, fmt.Errorf("%w: encoding slice %d: %v", ErrPDFGeneration, i+1, err)
		}

		name := fmt.Sprintf("slice-%d", i+1)
		imgOpts := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(name, imgOpts, &buf)
		pdf.ImageOptions(name, margins.Left, y, availWidth, heightMM, false, imgOpts, 0, "")
		y += heightMM
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	return out.Bytes(), pageCount, nil
}

// sizeCode maps a page size to the fpdf size string.
func sizeCode(page *PageSettings) string {
	size := PageSizeA4
	if page != nil && page.Size != "" {
		size = strings.ToLower(page.Size)
	}
	switch size {
	case PageSizeA3:
		return "A3"
	case PageSizeA5:
		return "A5"
	case PageSizeLetter:
		return "Letter"
	case PageSizeLegal:
		return "Legal"
	default:
		return "A4"
	}
}

// orientationCode maps an orientation to the fpdf orientation string.
func orientationCode(page *PageSettings) string {
	if page != nil && strings.ToLower(page.Orientation) == OrientationLandscape {
		return "L"
	}
	return "P"
}
