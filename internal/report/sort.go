package report

import (
	"cmp"
	"slices"

	"github.com/sha1n/gdoc-comments/internal/domain"
)

// SortByLine orders comments by ascending line number in place. Comments on
// the same line keep their relative input order.
func SortByLine(comments []domain.EnrichedComment) {
	slices.SortStableFunc(comments, func(a, b domain.EnrichedComment) int {
		return cmp.Compare(a.LineNumber, b.LineNumber)
	})
}
