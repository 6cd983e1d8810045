package gdocs

import (
	"errors"
	"testing"
)

func TestParseDocumentID(t *testing.T) {
	tests := []struct {
		name    string
		ref     string
		want    string
		wantErr bool
	}{
		{name: "bare id", ref: "1AbC_d-9", want: "1AbC_d-9"},
		{name: "padded id", ref: "  1AbC  ", want: "1AbC"},
		{name: "edit url", ref: "https://docs.google.com/document/d/1AbC_d-9/edit#heading=h.x", want: "1AbC_d-9"},
		{name: "user scoped url", ref: "https://docs.google.com/document/u/1/d/abc123/edit", want: "abc123"},
		{name: "no scheme", ref: "docs.google.com/document/d/abc123", want: "abc123"},
		{name: "drive file url", ref: "https://drive.google.com/file/d/xyz789/view", want: "xyz789"},
		{name: "open url", ref: "https://drive.google.com/open?id=xyz789", want: "xyz789"},
		{name: "empty", ref: "", wantErr: true},
		{name: "invalid characters", ref: "abc def", wantErr: true},
		{name: "url without id", ref: "https://docs.google.com/document/", wantErr: true},
		{name: "open url with bad id", ref: "https://drive.google.com/open?id=a%20b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDocumentID(tt.ref)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error for %q, got %q", tt.ref, got)
				}
				if !errors.Is(err, ErrInvalidDocumentID) {
					t.Errorf("Expected ErrInvalidDocumentID, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseDocumentID(%q) = %q, want %q", tt.ref, got, tt.want)
			}
		})
	}
}
