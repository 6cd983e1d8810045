package report

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sha1n/gdoc-comments/internal/domain"
)

const (
	// DefaultDateLayout is the timestamp layout used when none is configured.
	DefaultDateLayout = "2006-01-02 15:04:05"

	// MaxExcerptLength is the number of characters of a quoted excerpt kept
	// before truncation.
	MaxExcerptLength = 100

	truncationMarker = "..."
)

var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// Renderer formats enriched comments as a Markdown report.
type Renderer struct {
	layout   string
	location *time.Location
}

// NewRenderer creates a renderer that prints timestamps with layout in loc.
// Empty layout and nil loc fall back to DefaultDateLayout and time.Local.
func NewRenderer(layout string, loc *time.Location) *Renderer {
	if layout == "" {
		layout = DefaultDateLayout
	}
	if loc == nil {
		loc = time.Local
	}
	return &Renderer{
		layout:   layout,
		location: loc,
	}
}

// Render builds the report for documentName. Comments are written in the
// order given; callers sort them first.
func (r *Renderer) Render(documentName string, comments []domain.EnrichedComment) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Comments from %s\n\n", documentName)

	for _, c := range comments {
		r.writeComment(&sb, c)
	}

	return sb.String()
}

func (r *Renderer) writeComment(sb *strings.Builder, c domain.EnrichedComment) {
	if c.QuotedExcerpt == nil {
		slog.Debug("Comment has no quoted excerpt", "comment_id", c.ID)
	}

	fmt.Fprintf(sb, "* Line %d \"%s\"\n", c.LineNumber, CleanExcerpt(c.Excerpt()))
	fmt.Fprintf(sb, ". * %s, %s: %s\n", c.Author, r.FormatTime(c.CreatedAt), c.Text)

	for _, reply := range c.Replies {
		if strings.TrimSpace(reply.Text) == "" {
			continue
		}
		fmt.Fprintf(sb, "  * %s, %s: %s\n", reply.Author, r.FormatTime(reply.CreatedAt), reply.Text)
	}

	if c.Resolved {
		fmt.Fprintf(sb, ". * RESOLVED at %s", r.FormatTime(c.ModifiedAt))
	}

	sb.WriteString("\n")
}

// FormatTime renders t in the renderer's layout and location.
func (r *Renderer) FormatTime(t time.Time) string {
	return t.In(r.location).Format(r.layout)
}

// CleanExcerpt collapses line breaks to spaces, trims surrounding whitespace
// and truncates the result to MaxExcerptLength characters, appending "..."
// when anything was cut.
func CleanExcerpt(s string) string {
	s = strings.TrimSpace(lineBreaks.Replace(s))
	if utf8.RuneCountInString(s) <= MaxExcerptLength {
		return s
	}
	runes := []rune(s)
	return string(runes[:MaxExcerptLength]) + truncationMarker
}
