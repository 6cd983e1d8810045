package report

import (
	"strconv"
	"strings"

	"github.com/sha1n/gdoc-comments/internal/domain"
	"github.com/tidwall/gjson"
)

// AnchorSegmentField is the anchor JSON field holding the structural segment.
const AnchorSegmentField = "segment"

// ResolveLine returns the line number a comment anchor points at.
// Anchors that are empty, malformed, lack an integer segment, or reference
// a segment missing from idx resolve to domain.DefaultLine.
func ResolveLine(anchor string, idx domain.LineIndex) int {
	segment, ok := anchorSegment(anchor)
	if !ok {
		return domain.DefaultLine
	}
	if line, ok := idx.Line(segment); ok {
		return line
	}
	return domain.DefaultLine
}

// anchorSegment extracts the segment field, which may be encoded either as a
// JSON integer literal or as a string of digits.
func anchorSegment(anchor string) (int, bool) {
	anchor = strings.TrimSpace(anchor)
	if anchor == "" || !gjson.Valid(anchor) {
		return 0, false
	}

	value := gjson.Get(anchor, AnchorSegmentField)
	if !value.Exists() {
		return 0, false
	}

	var raw string
	switch value.Type {
	case gjson.String:
		raw = strings.TrimSpace(value.Str)
	case gjson.Number:
		// Raw keeps the literal, so 2.0 or 1e3 are rejected rather than
		// coerced to an integer.
		raw = value.Raw
	default:
		return 0, false
	}

	if !isDigits(raw) {
		return 0, false
	}
	segment, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return segment, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Enrich resolves the line number of every comment against idx.
func Enrich(comments []domain.Comment, idx domain.LineIndex) []domain.EnrichedComment {
	enriched := make([]domain.EnrichedComment, 0, len(comments))
	for _, c := range comments {
		enriched = append(enriched, domain.EnrichedComment{
			Comment:    c,
			LineNumber: ResolveLine(c.Anchor, idx),
		})
	}
	return enriched
}
