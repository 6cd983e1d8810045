package gdocs

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sha1n/gdoc-comments/internal/domain"
	"github.com/sha1n/gdoc-comments/internal/report"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/googleapi"
)

// DefaultDocsEndpoint is the Google Docs API base URL.
const DefaultDocsEndpoint = "https://docs.googleapis.com"

// docsFields limits the document response to what line indexing needs.
const docsFields googleapi.Field = "documentId,title,body.content(startIndex,paragraph(paragraphStyle(namedStyleType)))"

// DocsClient reads document structure from the Google Docs API.
type DocsClient struct {
	service *docs.Service
}

// NewDocsClient creates a Docs API client for the API host at endpoint.
// httpClient is expected to authorize its requests (see NewHTTPClient).
func NewDocsClient(ctx context.Context, endpoint string, httpClient *http.Client) (*DocsClient, error) {
	service, err := docs.NewService(ctx, serviceOptions(basePath(endpoint, ""), httpClient)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create docs service: %w", err)
	}
	return &DocsClient{service: service}, nil
}

// GetDocument fetches the title and body structure of a document.
func (c *DocsClient) GetDocument(ctx context.Context, documentID string) (*domain.Document, error) {
	doc, err := c.service.Documents.Get(documentID).
		Fields(docsFields).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fetchError(report.SourceContent, documentID, err)
	}

	return toDocument(documentID, doc), nil
}

func toDocument(documentID string, doc *docs.Document) *domain.Document {
	var content []*docs.StructuralElement
	if doc.Body != nil {
		content = doc.Body.Content
	}

	items := make([]domain.StructuralItem, len(content))
	for i, el := range content {
		items[i] = domain.StructuralItem{
			Position:  i,
			Paragraph: el != nil && el.Paragraph != nil,
		}
	}

	id := doc.DocumentId
	if id == "" {
		id = documentID
	}

	return &domain.Document{
		ID:    id,
		Name:  doc.Title,
		Items: items,
	}
}
