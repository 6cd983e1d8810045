package domain

import "testing"

func TestComment_Excerpt(t *testing.T) {
	quote := "hello world"

	tests := []struct {
		name    string
		comment Comment
		want    string
	}{
		{name: "present", comment: Comment{QuotedExcerpt: &quote}, want: "hello world"},
		{name: "absent", comment: Comment{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.comment.Excerpt(); got != tt.want {
				t.Errorf("Excerpt() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEnrichedComment_EmbedsComment(t *testing.T) {
	ec := EnrichedComment{
		Comment:    Comment{ID: "c1", Author: "Ann"},
		LineNumber: 3,
	}

	if ec.ID != "c1" || ec.Author != "Ann" {
		t.Errorf("Expected embedded fields to be promoted, got %+v", ec)
	}
	if ec.LineNumber != 3 {
		t.Errorf("Expected line 3, got %d", ec.LineNumber)
	}
}

func TestLineIndex_Line(t *testing.T) {
	idx := LineIndex{1: 1, 3: 2}

	if line, ok := idx.Line(3); !ok || line != 2 {
		t.Errorf("Line(3) = %d, %v; want 2, true", line, ok)
	}
	if _, ok := idx.Line(2); ok {
		t.Error("Expected no entry for segment 2")
	}

	var empty LineIndex
	if _, ok := empty.Line(1); ok {
		t.Error("Expected nil index to have no entries")
	}
}
