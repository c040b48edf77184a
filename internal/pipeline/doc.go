// Package pipeline implements the notebook-to-HTML conversion pipeline.
//
// This package handles the HTML stages of notebook conversion:
//   - Notebook cell rendering (markdown via Goldmark, code via Chroma)
//   - Cell output rendering (streams, rich MIME bundles, errors)
//   - CSS injection into HTML documents
//
// PDF generation is handled separately by the root nbkit package using
// headless Chrome (go-rod). This separation keeps the pipeline focused on
// document structure and content, while PDF rendering handles page layout,
// margins, and browser-based rendering concerns.
package pipeline
