package gdocs

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// ErrInvalidDocumentID is returned for references that are neither a
// document ID nor a recognizable document URL.
var ErrInvalidDocumentID = errors.New("invalid document reference")

var (
	documentIDPattern   = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	documentPathPattern = regexp.MustCompile(`/(?:document|file)/(?:u/\d+/)?d/([A-Za-z0-9_-]+)`)
)

// ParseDocumentID accepts a bare document ID or a Docs/Drive URL such as
// https://docs.google.com/document/d/<id>/edit and returns the ID.
func ParseDocumentID(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%w: empty reference", ErrInvalidDocumentID)
	}

	if !strings.Contains(ref, "/") {
		if !documentIDPattern.MatchString(ref) {
			return "", fmt.Errorf("%w: %q", ErrInvalidDocumentID, ref)
		}
		return ref, nil
	}

	if !strings.Contains(ref, "://") {
		ref = "https://" + ref
	}

	u, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidDocumentID, err)
	}

	if m := documentPathPattern.FindStringSubmatch(u.Path); m != nil {
		return m[1], nil
	}

	if id := u.Query().Get("id"); id != "" && documentIDPattern.MatchString(id) {
		return id, nil
	}

	return "", fmt.Errorf("%w: no document id in %q", ErrInvalidDocumentID, ref)
}
