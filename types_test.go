package nbkit_test

import (
	"errors"
	"testing"
	"time"

	nbkit "github.com/alnah/go-nbkit"
)

// ---------------------------------------------------------------------------
// TestPageSettingsValidate - Page size and orientation validation
// ---------------------------------------------------------------------------

func TestPageSettingsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		page    *nbkit.PageSettings
		wantErr error
	}{
		{
			name:    "nil means defaults",
			page:    nil,
			wantErr: nil,
		},
		{
			name:    "a4 portrait",
			page:    &nbkit.PageSettings{Size: "a4", Orientation: "portrait"},
			wantErr: nil,
		},
		{
			name:    "uppercase accepted",
			page:    &nbkit.PageSettings{Size: "A4", Orientation: "Landscape"},
			wantErr: nil,
		},
		{
			name:    "letter landscape",
			page:    &nbkit.PageSettings{Size: "letter", Orientation: "landscape"},
			wantErr: nil,
		},
		{
			name:    "unknown size",
			page:    &nbkit.PageSettings{Size: "tabloid", Orientation: "portrait"},
			wantErr: nbkit.ErrInvalidPageSize,
		},
		{
			name:    "unknown orientation",
			page:    &nbkit.PageSettings{Size: "a4", Orientation: "diagonal"},
			wantErr: nbkit.ErrInvalidOrientation,
		},
		{
			name:    "empty size",
			page:    &nbkit.PageSettings{Size: "", Orientation: "portrait"},
			wantErr: nbkit.ErrInvalidPageSize,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.page.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestPageSettingsDimensions - Millimeter dimensions with orientation swap
// ---------------------------------------------------------------------------

func TestPageSettingsDimensions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		page       *nbkit.PageSettings
		wantWidth  float64
		wantHeight float64
	}{
		{
			name:       "nil defaults to a4 portrait",
			page:       nil,
			wantWidth:  210,
			wantHeight: 297,
		},
		{
			name:       "a4 portrait",
			page:       &nbkit.PageSettings{Size: "a4", Orientation: "portrait"},
			wantWidth:  210,
			wantHeight: 297,
		},
		{
			name:       "a4 landscape swaps",
			page:       &nbkit.PageSettings{Size: "a4", Orientation: "landscape"},
			wantWidth:  297,
			wantHeight: 210,
		},
		{
			name:       "a3 portrait",
			page:       &nbkit.PageSettings{Size: "a3", Orientation: "portrait"},
			wantWidth:  297,
			wantHeight: 420,
		},
		{
			name:       "letter portrait",
			page:       &nbkit.PageSettings{Size: "letter", Orientation: "portrait"},
			wantWidth:  215.9,
			wantHeight: 279.4,
		},
		{
			name:       "legal landscape",
			page:       &nbkit.PageSettings{Size: "legal", Orientation: "landscape"},
			wantWidth:  355.6,
			wantHeight: 215.9,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w, h := tt.page.Dimensions()
			if w != tt.wantWidth || h != tt.wantHeight {
				t.Errorf("Dimensions() = (%v, %v), want (%v, %v)", w, h, tt.wantWidth, tt.wantHeight)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestMarginsValidate - Non-negative margin enforcement
// ---------------------------------------------------------------------------

func TestMarginsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		margins *nbkit.Margins
		wantErr error
	}{
		{
			name:    "nil means defaults",
			margins: nil,
			wantErr: nil,
		},
		{
			name:    "all zero is valid",
			margins: &nbkit.Margins{},
			wantErr: nil,
		},
		{
			name:    "positive margins",
			margins: &nbkit.Margins{Left: 15, Right: 15, Top: 10, Bottom: 10},
			wantErr: nil,
		},
		{
			name:    "negative left",
			margins: &nbkit.Margins{Left: -1},
			wantErr: nbkit.ErrInvalidMargins,
		},
		{
			name:    "negative bottom",
			margins: &nbkit.Margins{Bottom: -0.1},
			wantErr: nbkit.ErrInvalidMargins,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.margins.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestMarginHelpers - Combined margin accessors and defaults
// ---------------------------------------------------------------------------

func TestMarginHelpers(t *testing.T) {
	t.Parallel()

	m := &nbkit.Margins{Left: 15, Right: 10, Top: 5, Bottom: 3}
	if got := m.Horizontal(); got != 25 {
		t.Errorf("Horizontal() = %v, want 25", got)
	}
	if got := m.Vertical(); got != 8 {
		t.Errorf("Vertical() = %v, want 8", got)
	}

	tile := nbkit.DefaultTileMargins()
	if tile.Left != 15 || tile.Right != 15 || tile.Top != 0 || tile.Bottom != 0 {
		t.Errorf("DefaultTileMargins() = %+v, want 15mm sides only", tile)
	}

	conv := nbkit.DefaultConvertMargins()
	if conv.Left != 20 || conv.Right != 20 || conv.Top != 20 || conv.Bottom != 20 {
		t.Errorf("DefaultConvertMargins() = %+v, want 20mm all around", conv)
	}
}

// ---------------------------------------------------------------------------
// TestWithTimeout - Option validation
// ---------------------------------------------------------------------------

func TestWithTimeout(t *testing.T) {
	t.Parallel()

	t.Run("positive duration accepted", func(t *testing.T) {
		t.Parallel()

		opt := nbkit.WithTimeout(30 * time.Second)
		if opt == nil {
			t.Fatal("WithTimeout returned nil option")
		}
	})

	t.Run("zero duration panics", func(t *testing.T) {
		t.Parallel()

		defer func() {
			if recover() == nil {
				t.Error("expected panic for zero duration")
			}
		}()
		nbkit.WithTimeout(0)
	})

	t.Run("negative duration panics", func(t *testing.T) {
		t.Parallel()

		defer func() {
			if recover() == nil {
				t.Error("expected panic for negative duration")
			}
		}()
		nbkit.WithTimeout(-time.Second)
	})
}
