package imaging

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
)

// Resolution is the raster resolution used when mapping physical page
// dimensions to pixels, in pixels per inch.
const Resolution = 300

const mmPerInch = 25.4

// MMToPixels converts a length in millimeters to pixels at Resolution.
func MMToPixels(mm float64) int {
	return int(math.Round(mm * Resolution / mmPerInch))
}

// ScaleToWidth uniformly scales img so its width becomes targetWidth,
// preserving aspect ratio. Dimensions round to the nearest pixel with
// a minimum of 1. Uses Catmull-Rom resampling for quality comparable
// to Lanczos.
func ScaleToWidth(img image.Image, targetWidth int) *image.NRGBA {
	srcW := img.Bounds().Dx()
	if srcW < 1 {
		srcW = 1
	}
	ratio := float64(targetWidth) / float64(srcW)

	w := int(math.Round(float64(img.Bounds().Dx()) * ratio))
	h := int(math.Round(float64(img.Bounds().Dy()) * ratio))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}

// MinSlices returns the smallest number of horizontal bands needed so
// that no band is taller than availHeight pixels. This is the floor
// below which page content would be clipped. Always at least 1.
func MinSlices(stripHeight, availHeight int) int {
	if stripHeight <= 0 || availHeight <= 0 {
		return 1
	}
	n := (stripHeight + availHeight - 1) / availHeight
	if n < 1 {
		n = 1
	}
	return n
}
