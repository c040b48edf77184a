package imaging

import (
	"image"
	"image/color"
	"image/draw"
)

// MergeVertical stacks images top to bottom on a white canvas sized
// to (max width, sum of heights). Narrower images are centered
// horizontally. Returns nil for an empty input.
func MergeVertical(images []image.Image) *image.NRGBA {
	if len(images) == 0 {
		return nil
	}

	maxWidth, totalHeight := 0, 0
	for _, img := range images {
		if w := img.Bounds().Dx(); w > maxWidth {
			maxWidth = w
		}
		totalHeight += img.Bounds().Dy()
	}

	strip := image.NewNRGBA(image.Rect(0, 0, maxWidth, totalHeight))
	draw.Draw(strip, strip.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	y := 0
	for _, img := range images {
		w, h := img.Bounds().Dx(), img.Bounds().Dy()
		x := (maxWidth - w) / 2
		draw.Draw(strip, image.Rect(x, y, x+w, y+h), img, img.Bounds().Min, draw.Src)
		y += h
	}
	return strip
}
