package domain

// StructuralItem is one element of a document's ordered body content
// (paragraph, table, section break, ...).
type StructuralItem struct {
	// Position is the item's index in the document body sequence.
	Position int `json:"position"`

	// Paragraph reports whether the item is a paragraph. Only paragraphs
	// are counted when assigning line numbers.
	Paragraph bool `json:"paragraph"`
}

// Document is the structural view of a hosted document.
type Document struct {
	ID    string           `json:"id"`
	Name  string           `json:"name"`
	Items []StructuralItem `json:"items"`
}

// LineIndex maps a 1-based structural segment (position+1) to the
// paragraph-counted line number. Non-paragraph segments have no entry.
type LineIndex map[int]int

// Line returns the line number recorded for segment, if any.
func (idx LineIndex) Line(segment int) (int, bool) {
	line, ok := idx[segment]
	return line, ok
}
