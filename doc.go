// Package nbkit provides tooling for Jupyter notebooks and related
// document workflows: converting notebooks to PDF through headless
// Chrome, splitting a notebook into smaller notebooks by cell count,
// and assembling a folder of images into a single tiled PDF.
//
// The three entry points are independent:
//
//   - Converter renders a Notebook to PDF (HTML export + browser print).
//   - EvenPlan / ParseCounts / ReconcilePlan / ApplyPlan compute and
//     apply a cell distribution plan for splitting.
//   - Tiler merges, scales, slices and paginates images into a PDF.
//
// All operations are synchronous; the conversion and tiling pipelines
// accept a context.Context for cancellation. None of them keeps state
// between calls except the Converter, which holds a browser instance
// until Close is called.
package nbkit
