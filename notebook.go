package nbkit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Notebook is a parsed Jupyter notebook. Cells are kept as raw JSON
// and never interpreted: splitting only counts and slices them.
// Metadata is preserved verbatim so split outputs keep kernel and
// language information.
type Notebook struct {
	Cells       []json.RawMessage
	Metadata    json.RawMessage
	Format      int
	FormatMinor int
}

// notebookJSON mirrors the required top-level shape of an .ipynb file.
// Pointer fields distinguish "absent" from zero values during validation.
type notebookJSON struct {
	Cells       *[]json.RawMessage `json:"cells"`
	Metadata    json.RawMessage    `json:"metadata,omitempty"`
	Format      *int               `json:"nbformat"`
	FormatMinor *int               `json:"nbformat_minor"`
}

// ReadNotebook reads and parses a notebook file.
// The file must have an .ipynb extension (case-insensitive).
func ReadNotebook(path string) (*Notebook, error) {
	if !strings.EqualFold(filepath.Ext(path), ".ipynb") {
		return nil, fmt.Errorf("%w: got %q", ErrNotebookExtension, filepath.Ext(path))
	}

	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, fmt.Errorf("reading notebook: %w", err)
	}

	nb, err := ParseNotebook(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return nb, nil
}

// ParseNotebook parses notebook JSON and validates the required
// top-level fields (cells, nbformat, nbformat_minor). Validation runs
// before any distribution logic touches the document.
func ParseNotebook(data []byte) (*Notebook, error) {
	var raw notebookJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedNotebook, err)
	}

	if raw.Cells == nil {
		return nil, fmt.Errorf("%w: cells", ErrMissingField)
	}
	if raw.Format == nil {
		return nil, fmt.Errorf("%w: nbformat", ErrMissingField)
	}
	if raw.FormatMinor == nil {
		return nil, fmt.Errorf("%w: nbformat_minor", ErrMissingField)
	}

	metadata := raw.Metadata
	if len(metadata) == 0 {
		metadata = json.RawMessage(`{}`)
	}

	return &Notebook{
		Cells:       *raw.Cells,
		Metadata:    metadata,
		Format:      *raw.Format,
		FormatMinor: *raw.FormatMinor,
	}, nil
}

// Marshal serializes the notebook with the same top-level shape as the
// input, two-space indented.
func (nb *Notebook) Marshal() ([]byte, error) {
	cells := nb.Cells
	if cells == nil {
		cells = []json.RawMessage{}
	}
	doc := notebookJSON{
		Cells:       &cells,
		Metadata:    nb.Metadata,
		Format:      &nb.Format,
		FormatMinor: &nb.FormatMinor,
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("marshaling notebook: %w", err)
	}
	return buf.Bytes(), nil
}

// Write serializes the notebook to path, creating parent directories.
func (nb *Notebook) Write(path string) error {
	data, err := nb.Marshal()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	// #nosec G306 -- notebooks are meant to be readable
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing notebook: %w", err)
	}
	return nil
}
