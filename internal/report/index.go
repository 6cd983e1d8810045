package report

import "github.com/sha1n/gdoc-comments/internal/domain"

// BuildLineIndex assigns sequential line numbers, starting at 1, to the
// paragraph items of a document body. Entries are keyed by the item's
// 1-based segment (position+1), which is how comment anchors refer to body
// elements. Non-paragraph items are skipped and have no entry.
func BuildLineIndex(items []domain.StructuralItem) domain.LineIndex {
	idx := make(domain.LineIndex)
	line := 1
	for _, item := range items {
		if !item.Paragraph {
			continue
		}
		idx[item.Position+1] = line
		line++
	}
	return idx
}
