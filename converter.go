package nbkit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alnah/go-nbkit/internal/assets"
	"github.com/alnah/go-nbkit/internal/pipeline"
)

// ConvertInput holds everything needed to render a notebook to PDF.
type ConvertInput struct {
	Notebook *Notebook
	Title    string        // document title; empty = generic title
	CSS      string        // extra CSS appended after the print style; may be empty
	Page     *PageSettings // nil = A4 portrait
	Margins  *Margins      // nil = DefaultConvertMargins
}

// Converter orchestrates the notebook-to-PDF pipeline: cells to HTML,
// CSS injection, then headless Chrome printing.
type Converter struct {
	cfg          converterConfig
	exporter     pipeline.HTMLExporter
	cssInjector  pipeline.CSSInjector
	pdfConverter pdfConverter
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithTimeout).
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		cfg:         converterConfig{timeout: defaultTimeout},
		exporter:    pipeline.NewNotebookExporter(),
		cssInjector: &pipeline.CSSInjection{},
	}

	for _, opt := range opts {
		opt(c)
	}

	// Create PDF converter if not injected (e.g., by tests)
	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout)
	}

	return c
}

// Convert runs the full pipeline and returns the PDF as bytes.
// The context is used for cancellation and timeout.
func (c *Converter) Convert(ctx context.Context, input ConvertInput) ([]byte, error) {
	if err := c.validateInput(input); err != nil {
		return nil, err
	}

	// Export cells to HTML
	htmlContent, err := c.exporter.ExportHTML(ctx, pipeline.ExportInput{
		Title:    input.Title,
		Cells:    input.Notebook.Cells,
		Language: kernelLanguage(input.Notebook),
	})
	if err != nil {
		return nil, fmt.Errorf("exporting to HTML: %w", err)
	}

	// Build combined CSS (print style + user CSS)
	cssContent, err := assets.LoadStyle(assets.DefaultStyleName)
	if err != nil {
		return nil, fmt.Errorf("loading print style: %w", err)
	}
	cssContent += input.CSS

	// Inject CSS
	htmlContent = c.cssInjector.InjectCSS(ctx, htmlContent, cssContent)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Convert to PDF
	pdfBytes, err := c.pdfConverter.ToPDF(ctx, htmlContent, &pdfOptions{
		Page:    input.Page,
		Margins: input.Margins,
	})
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}

	return pdfBytes, nil
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// validateInput checks that required fields are present and valid.
func (c *Converter) validateInput(input ConvertInput) error {
	if input.Notebook == nil {
		return ErrNilNotebook
	}
	if err := input.Page.Validate(); err != nil {
		return err
	}
	if err := input.Margins.Validate(); err != nil {
		return err
	}
	return nil
}

// notebookMetadata is the subset of notebook metadata used to pick a
// syntax highlighting language.
type notebookMetadata struct {
	Kernelspec struct {
		Language string `json:"language"`
	} `json:"kernelspec"`
	LanguageInfo struct {
		Name string `json:"name"`
	} `json:"language_info"`
}

// kernelLanguage extracts the kernel language from notebook metadata.
// Returns empty when the notebook does not declare one.
func kernelLanguage(nb *Notebook) string {
	if len(nb.Metadata) == 0 {
		return ""
	}
	var meta notebookMetadata
	if err := json.Unmarshal(nb.Metadata, &meta); err != nil {
		return ""
	}
	if meta.Kernelspec.Language != "" {
		return meta.Kernelspec.Language
	}
	return meta.LanguageInfo.Name
}
