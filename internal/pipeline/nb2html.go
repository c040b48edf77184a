package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLExport indicates notebook HTML export failed.
var ErrHTMLExport = errors.New("HTML export failed")

// ExportInput carries the notebook content an exporter needs. Cells
// stay raw until export time; the exporter is the only place that
// interprets cell internals.
type ExportInput struct {
	Title    string
	Cells    []json.RawMessage
	Language string // kernel language, e.g. "python"; empty = autodetect per cell
}

// HTMLExporter abstracts notebook to HTML conversion.
type HTMLExporter interface {
	ExportHTML(ctx context.Context, input ExportInput) (string, error)
}

// htmlShell wraps the exported cell fragments in a complete HTML5 document.
const htmlShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
<div class="container">
%s</div>
</body>
</html>`

// cellJSON is the subset of the notebook cell schema the exporter reads.
type cellJSON struct {
	CellType string       `json:"cell_type"`
	Source   multiline    `json:"source"`
	Outputs  []outputJSON `json:"outputs"`
}

// outputJSON is the subset of the cell output schema the exporter reads.
type outputJSON struct {
	OutputType string               `json:"output_type"`
	Text       multiline            `json:"text"`
	Data       map[string]multiline `json:"data"`
	EName      string               `json:"ename"`
	EValue     string               `json:"evalue"`
	Traceback  []string             `json:"traceback"`
}

// multiline decodes the notebook convention of storing text either as
// a single string or as an array of line fragments.
type multiline string

func (m *multiline) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*m = multiline(s)
		return nil
	}
	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		return err
	}
	*m = multiline(strings.Join(lines, ""))
	return nil
}

// NotebookExporter converts notebook cells to HTML: markdown cells
// through goldmark, code cells through chroma with the kernel
// language, and code outputs as preformatted text, embedded images or
// raw HTML depending on their MIME type.
type NotebookExporter struct {
	md        goldmark.Markdown
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewNotebookExporter creates an exporter with GFM markdown rendering
// and inline-styled syntax highlighting.
func NewNotebookExporter() *NotebookExporter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(false),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithXHTML(),
		),
	)

	style := styles.Get("github")
	if style == nil {
		style = styles.Fallback
	}

	return &NotebookExporter{
		md:        md,
		style:     style,
		// Inline styles keep the document standalone: no external stylesheet
		// has to survive the temp-file round trip to the browser.
		formatter: chromahtml.New(chromahtml.WithClasses(false)),
	}
}

// ExportHTML renders the notebook to a standalone HTML5 document.
// Cells that fail to parse render as plain preformatted text rather
// than aborting the document. Supports context cancellation via the
// goroutine + select pattern since the renderers are not context-aware.
func (e *NotebookExporter) ExportHTML(ctx context.Context, input ExportInput) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		doc, err := e.export(input)
		done <- result{html: doc, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

func (e *NotebookExporter) export(input ExportInput) (string, error) {
	var body strings.Builder

	for i, raw := range input.Cells {
		var cell cellJSON
		if err := json.Unmarshal(raw, &cell); err != nil {
			body.WriteString("<div class=\"cell\"><pre>" + html.EscapeString(string(raw)) + "</pre></div>\n")
			continue
		}

		switch cell.CellType {
		case "markdown":
			rendered, err := e.renderMarkdown(string(cell.Source))
			if err != nil {
				return "", fmt.Errorf("%w: cell %d: %v", ErrHTMLExport, i+1, err)
			}
			body.WriteString("<div class=\"cell markdown-cell\">\n" + rendered + "</div>\n")
		case "code":
			rendered, err := e.renderCode(string(cell.Source), input.Language)
			if err != nil {
				return "", fmt.Errorf("%w: cell %d: %v", ErrHTMLExport, i+1, err)
			}
			body.WriteString("<div class=\"cell code-cell\">\n" + rendered)
			for _, out := range cell.Outputs {
				body.WriteString(renderOutput(out))
			}
			body.WriteString("</div>\n")
		default:
			// Raw and unknown cell types pass through as preformatted text.
			body.WriteString("<div class=\"cell raw-cell\"><pre>" + html.EscapeString(string(cell.Source)) + "</pre></div>\n")
		}
	}

	title := input.Title
	if title == "" {
		title = "Notebook"
	}
	return fmt.Sprintf(htmlShell, html.EscapeString(title), body.String()), nil
}

// renderMarkdown converts a markdown cell body to an HTML fragment.
func (e *NotebookExporter) renderMarkdown(source string) (string, error) {
	var buf strings.Builder
	if err := e.md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// renderCode highlights a code cell body with the kernel language.
func (e *NotebookExporter) renderCode(source, language string) (string, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(source)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	buf.WriteString("<div class=\"input\">")
	if err := e.formatter.Format(&buf, e.style, iterator); err != nil {
		return "", err
	}
	buf.WriteString("</div>\n")
	return buf.String(), nil
}

// ansiEscapes matches terminal color sequences in error tracebacks.
var ansiEscapes = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// renderOutput converts one code-cell output to HTML. Rich MIME
// bundles prefer images, then HTML, then plain text.
func renderOutput(out outputJSON) string {
	switch out.OutputType {
	case "stream":
		return "<div class=\"output\"><pre>" + html.EscapeString(string(out.Text)) + "</pre></div>\n"
	case "error":
		trace := ansiEscapes.ReplaceAllString(strings.Join(out.Traceback, "\n"), "")
		if trace == "" {
			trace = out.EName + ": " + out.EValue
		}
		return "<div class=\"output error\"><pre>" + html.EscapeString(trace) + "</pre></div>\n"
	case "execute_result", "display_data":
		return renderData(out.Data)
	default:
		return ""
	}
}

// renderData picks the richest representation from a MIME bundle.
func renderData(data map[string]multiline) string {
	for _, mime := range []string{"image/png", "image/jpeg"} {
		if b64, ok := data[mime]; ok {
			payload := strings.TrimSpace(string(b64))
			return fmt.Sprintf("<div class=\"output\"><img src=\"data:%s;base64,%s\" /></div>\n", mime, payload)
		}
	}
	if fragment, ok := data["text/html"]; ok {
		return "<div class=\"output\">" + string(fragment) + "</div>\n"
	}
	if text, ok := data["text/plain"]; ok {
		return "<div class=\"output\"><pre>" + html.EscapeString(string(text)) + "</pre></div>\n"
	}
	return ""
}
