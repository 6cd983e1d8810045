package report

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
)

// Output formats.
const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// Format returns the report body in the requested output format.
func (r *Report) Format(format string) (string, error) {
	switch format {
	case FormatMarkdown, "":
		return r.Markdown, nil
	case FormatHTML:
		return ToHTML(r.Markdown)
	default:
		return "", fmt.Errorf("unsupported report format: %s", format)
	}
}

// ToHTML converts a Markdown report to an HTML fragment.
func ToHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to convert report to html: %w", err)
	}
	return buf.String(), nil
}
