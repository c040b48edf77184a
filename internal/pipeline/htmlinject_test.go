package pipeline_test

import (
	"context"
	"strings"
	"testing"

	"github.com/alnah/go-nbkit/internal/pipeline"
)

// ---------------------------------------------------------------------------
// TestInjectCSS - Style block placement
// ---------------------------------------------------------------------------

func TestInjectCSS(t *testing.T) {
	t.Parallel()

	injector := &pipeline.CSSInjection{}

	tests := []struct {
		name string
		html string
		css  string
		want func(t *testing.T, got string)
	}{
		{
			name: "inserted before closing head",
			html: "<html><head><title>t</title></head><body></body></html>",
			css:  "body { margin: 0; }",
			want: func(t *testing.T, got string) {
				idx := strings.Index(got, "<style>body { margin: 0; }</style>")
				headIdx := strings.Index(got, "</head>")
				if idx == -1 {
					t.Fatalf("style block missing: %s", got)
				}
				if idx > headIdx {
					t.Errorf("style block not inside head: %s", got)
				}
			},
		},
		{
			name: "inserted after body when no head",
			html: `<html><body class="x"><p>hi</p></body></html>`,
			css:  "p { color: blue; }",
			want: func(t *testing.T, got string) {
				wantStr := `<body class="x"><style>p { color: blue; }</style>`
				if !strings.Contains(got, wantStr) {
					t.Errorf("style not after body tag: %s", got)
				}
			},
		},
		{
			name: "prepended when neither head nor body",
			html: "<p>fragment</p>",
			css:  "p {}",
			want: func(t *testing.T, got string) {
				if !strings.HasPrefix(got, "<style>p {}</style>") {
					t.Errorf("style not prepended: %s", got)
				}
			},
		},
		{
			name: "empty CSS leaves HTML untouched",
			html: "<html><head></head></html>",
			css:  "",
			want: func(t *testing.T, got string) {
				if got != "<html><head></head></html>" {
					t.Errorf("HTML changed: %s", got)
				}
			},
		},
		{
			name: "uppercase head matched",
			html: "<HTML><HEAD></HEAD><BODY></BODY></HTML>",
			css:  "b {}",
			want: func(t *testing.T, got string) {
				if !strings.Contains(got, "<style>b {}</style></HEAD>") {
					t.Errorf("style not inserted before uppercase head close: %s", got)
				}
			},
		},
		{
			name: "closing style sequences are escaped",
			html: "<html><head></head></html>",
			css:  "p {} </style><script>alert(1)</script>",
			want: func(t *testing.T, got string) {
				if strings.Contains(got, "</style><script>") {
					t.Errorf("style block broken out of: %s", got)
				}
				if !strings.Contains(got, `<\/style>`) {
					t.Errorf("closing sequence not escaped: %s", got)
				}
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := injector.InjectCSS(context.Background(), tt.html, tt.css)
			tt.want(t, got)
		})
	}
}

// ---------------------------------------------------------------------------
// TestInjectCSS_CancelledContext - No-op on cancellation
// ---------------------------------------------------------------------------

func TestInjectCSS_CancelledContext(t *testing.T) {
	t.Parallel()

	injector := &pipeline.CSSInjection{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	html := "<html><head></head></html>"
	got := injector.InjectCSS(ctx, html, "body {}")
	if got != html {
		t.Errorf("InjectCSS with cancelled context = %s, want unchanged HTML", got)
	}
}
