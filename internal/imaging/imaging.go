// Package imaging implements the raster mechanics behind image
// tiling: discovery and numeric ordering of image files, tolerant
// decoding, vertical merging, scale-to-width resampling and exact
// band partitioning.
package imaging

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	// Decoders for the supported input formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
)

// validExtensions lists the image file extensions considered for tiling.
var validExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".gif":  true,
}

// ListImages returns the image files in dir, ordered by the numeric
// key extracted from each filename. Non-image files and
// subdirectories are ignored.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading image directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if validExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}

	SortByName(paths)
	return paths, nil
}

// SortByName stable-sorts paths by the number formed by concatenating
// all digit runs in each filename, so "10.jpg" sorts after "2.jpg"
// and "page3_part12.png" keys as 312. Filenames without digits key
// as zero; ties keep their original order.
func SortByName(paths []string) {
	sort.SliceStable(paths, func(i, j int) bool {
		return lessNumeric(digitKey(filepath.Base(paths[i])), digitKey(filepath.Base(paths[j])))
	})
}

// digitKey concatenates every digit run in name, trimmed of leading
// zeros. An empty result means "no digits".
func digitKey(name string) string {
	var b strings.Builder
	for _, r := range name {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return strings.TrimLeft(b.String(), "0")
}

// lessNumeric compares two digit strings as arbitrary-precision
// numbers: a shorter string (fewer significant digits) is smaller,
// equal lengths compare lexicographically.
func lessNumeric(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

// Load decodes each path in order. Files that cannot be opened or
// decoded are skipped and reported in the second return value, so a
// single corrupt file never aborts a run.
func Load(paths []string) (images []image.Image, skipped []string) {
	for _, path := range paths {
		img, err := decode(path)
		if err != nil {
			skipped = append(skipped, path)
			continue
		}
		images = append(images, img)
	}
	return images, skipped
}

func decode(path string) (image.Image, error) {
	f, err := os.Open(path) // #nosec G304 -- discovered path
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}
