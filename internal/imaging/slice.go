package imaging

import "image"

// SliceBands partitions strip into exactly n horizontal bands whose
// heights sum to the strip height. The first height%n bands are one
// pixel taller than the rest; the final band's bottom edge is pinned
// to the strip height so no row is lost or duplicated.
func SliceBands(strip *image.NRGBA, n int) []*image.NRGBA {
	if strip == nil || n <= 0 {
		return nil
	}

	height := strip.Bounds().Dy()
	width := strip.Bounds().Dx()
	base := height / n
	remainder := height % n

	bands := make([]*image.NRGBA, 0, n)
	top := 0
	for i := 0; i < n; i++ {
		bottom := top + base
		if i < remainder {
			bottom++
		}
		if i == n-1 {
			bottom = height
		}
		bands = append(bands, strip.SubImage(image.Rect(0, top, width, bottom)).(*image.NRGBA))
		top = bottom
	}
	return bands
}
