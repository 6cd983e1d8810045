package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sha1n/gdoc-comments/internal/domain"
	"github.com/sourcegraph/conc/pool"
)

// Source names reported by FetchError.
const (
	SourceContent  = "document content"
	SourceComments = "comments"
)

// ContentSource provides the structural content of a document.
type ContentSource interface {
	GetDocument(ctx context.Context, documentID string) (*domain.Document, error)
}

// CommentSource provides the comments attached to a document.
type CommentSource interface {
	ListComments(ctx context.Context, documentID string) ([]domain.Comment, error)
}

// FetchError reports a failure of one of the external sources. StatusCode
// holds the HTTP status of an API failure and is 0 otherwise.
type FetchError struct {
	Source     string
	DocumentID string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s of document %s: %v", e.Source, e.DocumentID, e.Err)
}

// asFetchError wraps err in a FetchError unless a source already did.
func asFetchError(source, documentID string, err error) error {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return err
	}
	return &FetchError{Source: source, DocumentID: documentID, Err: err}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Report is a generated comments report.
type Report struct {
	DocumentID   string
	DocumentName string
	Comments     []domain.EnrichedComment
	Markdown     string
}

// Generator correlates document structure with comments and renders the
// result.
type Generator struct {
	content  ContentSource
	comments CommentSource
	renderer *Renderer
}

// NewGenerator creates a generator. A nil renderer uses the default layout
// and local time zone.
func NewGenerator(content ContentSource, comments CommentSource, renderer *Renderer) *Generator {
	if renderer == nil {
		renderer = NewRenderer("", nil)
	}
	return &Generator{
		content:  content,
		comments: comments,
		renderer: renderer,
	}
}

// Generate builds the report for documentID, titled with the document name
// returned by the content source.
func (g *Generator) Generate(ctx context.Context, documentID string) (*Report, error) {
	return g.GenerateNamed(ctx, documentID, "")
}

// GenerateNamed builds the report for documentID. A non-empty documentName
// overrides the name returned by the content source.
func (g *Generator) GenerateNamed(ctx context.Context, documentID, documentName string) (*Report, error) {
	doc, comments, err := g.fetch(ctx, documentID)
	if err != nil {
		return nil, err
	}

	if documentName == "" {
		documentName = doc.Name
	}

	idx := BuildLineIndex(doc.Items)
	enriched := Enrich(comments, idx)
	SortByLine(enriched)

	slog.Debug("Correlated comments",
		"document_id", documentID,
		"items", len(doc.Items),
		"paragraphs", len(idx),
		"comments", len(enriched))

	return &Report{
		DocumentID:   documentID,
		DocumentName: documentName,
		Comments:     enriched,
		Markdown:     g.renderer.Render(documentName, enriched),
	}, nil
}

// fetch retrieves the document and its comments concurrently. The first
// failure cancels the other request.
func (g *Generator) fetch(ctx context.Context, documentID string) (*domain.Document, []domain.Comment, error) {
	var (
		doc      *domain.Document
		comments []domain.Comment
	)

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		d, err := g.content.GetDocument(ctx, documentID)
		if err != nil {
			return asFetchError(SourceContent, documentID, err)
		}
		doc = d
		return nil
	})
	p.Go(func(ctx context.Context) error {
		c, err := g.comments.ListComments(ctx, documentID)
		if err != nil {
			return asFetchError(SourceComments, documentID, err)
		}
		comments = c
		return nil
	})

	if err := p.Wait(); err != nil {
		return nil, nil, err
	}

	if doc == nil {
		doc = &domain.Document{ID: documentID}
	}
	return doc, comments, nil
}
