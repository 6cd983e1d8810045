package domain

import "time"

// DefaultLine is the line number assigned to comments whose anchor cannot
// be resolved.
const DefaultLine = 1

// Reply is a response nested under a Comment.
type Reply struct {
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment is a comment thread attached to a document.
type Comment struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	Author     string    `json:"author"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`

	// QuotedExcerpt is the document text the comment was made on. Nil when
	// the source did not supply one (file-level comments).
	QuotedExcerpt *string `json:"quoted_excerpt,omitempty"`

	// Anchor is the raw anchor reference as returned by the comment source.
	// Empty when the comment is not anchored.
	Anchor string `json:"anchor,omitempty"`

	Resolved bool    `json:"resolved"`
	Replies  []Reply `json:"replies,omitempty"`
}

// Excerpt returns the quoted excerpt, or the empty string when absent.
func (c Comment) Excerpt() string {
	if c.QuotedExcerpt == nil {
		return ""
	}
	return *c.QuotedExcerpt
}

// EnrichedComment is a Comment with its resolved line number.
type EnrichedComment struct {
	Comment
	LineNumber int `json:"line_number"`
}
