package nbkit

// Notes:
// - The rod-backed renderer needs a real Chrome and is not exercised here
// - buildPDFOptions is pure and covers the mm to inch conversion Chrome needs

import (
	"math"
	"testing"
)

const floatTolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

// ---------------------------------------------------------------------------
// TestBuildPDFOptions - Millimeter to inch conversion
// ---------------------------------------------------------------------------

func TestBuildPDFOptions(t *testing.T) {
	t.Parallel()

	t.Run("nil options use a4 portrait with default margins", func(t *testing.T) {
		t.Parallel()

		got := buildPDFOptions(nil)

		if !almostEqual(*got.PaperWidth, 210.0/25.4) {
			t.Errorf("PaperWidth = %v, want %v", *got.PaperWidth, 210.0/25.4)
		}
		if !almostEqual(*got.PaperHeight, 297.0/25.4) {
			t.Errorf("PaperHeight = %v, want %v", *got.PaperHeight, 297.0/25.4)
		}
		want := DefaultConvertMargins().Top / 25.4
		if !almostEqual(*got.MarginTop, want) {
			t.Errorf("MarginTop = %v, want %v", *got.MarginTop, want)
		}
		if !got.PrintBackground {
			t.Error("PrintBackground = false, want true")
		}
	})

	t.Run("landscape letter with explicit margins", func(t *testing.T) {
		t.Parallel()

		opts := &pdfOptions{
			Page:    &PageSettings{Size: "letter", Orientation: "landscape"},
			Margins: &Margins{Left: 10, Right: 20, Top: 5, Bottom: 15},
		}
		got := buildPDFOptions(opts)

		if !almostEqual(*got.PaperWidth, 279.4/25.4) {
			t.Errorf("PaperWidth = %v, want %v", *got.PaperWidth, 279.4/25.4)
		}
		if !almostEqual(*got.PaperHeight, 215.9/25.4) {
			t.Errorf("PaperHeight = %v, want %v", *got.PaperHeight, 215.9/25.4)
		}
		if !almostEqual(*got.MarginLeft, 10.0/25.4) {
			t.Errorf("MarginLeft = %v, want %v", *got.MarginLeft, 10.0/25.4)
		}
		if !almostEqual(*got.MarginRight, 20.0/25.4) {
			t.Errorf("MarginRight = %v, want %v", *got.MarginRight, 20.0/25.4)
		}
		if !almostEqual(*got.MarginTop, 5.0/25.4) {
			t.Errorf("MarginTop = %v, want %v", *got.MarginTop, 5.0/25.4)
		}
		if !almostEqual(*got.MarginBottom, 15.0/25.4) {
			t.Errorf("MarginBottom = %v, want %v", *got.MarginBottom, 15.0/25.4)
		}
	})

	t.Run("zero margins pass through", func(t *testing.T) {
		t.Parallel()

		got := buildPDFOptions(&pdfOptions{Margins: &Margins{}})
		if *got.MarginTop != 0 || *got.MarginLeft != 0 {
			t.Errorf("zero margins not preserved: top=%v left=%v", *got.MarginTop, *got.MarginLeft)
		}
	})
}

// ---------------------------------------------------------------------------
// TestFloatPtr - Pointer helper
// ---------------------------------------------------------------------------

func TestFloatPtr(t *testing.T) {
	t.Parallel()

	p := floatPtr(3.5)
	if p == nil || *p != 3.5 {
		t.Errorf("floatPtr(3.5) = %v", p)
	}
}
