package gdocs

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"time"

	"github.com/sha1n/gdoc-comments/internal/domain"
	"github.com/sha1n/gdoc-comments/internal/report"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
)

const (
	// DefaultDriveEndpoint is the Google Drive API base URL.
	DefaultDriveEndpoint = "https://www.googleapis.com"

	// CommentsPageSize is the largest page the comments endpoint serves.
	CommentsPageSize = 100

	driveServicePath = "drive/v3/"
)

const commentFields googleapi.Field = "nextPageToken," +
	"comments(id,content,author(displayName),createdTime,modifiedTime," +
	"quotedFileContent(value),anchor,resolved," +
	"replies(content,author(displayName),createdTime))"

// DriveClient lists document comments through the Google Drive API.
type DriveClient struct {
	service *drive.Service
}

// NewDriveClient creates a Drive API client for the API host at endpoint.
// httpClient is expected to authorize its requests (see NewHTTPClient).
func NewDriveClient(ctx context.Context, endpoint string, httpClient *http.Client) (*DriveClient, error) {
	service, err := drive.NewService(ctx, serviceOptions(basePath(endpoint, driveServicePath), httpClient)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return &DriveClient{service: service}, nil
}

// ListComments returns the comments of a document, including their replies.
// Only the first page is read.
func (c *DriveClient) ListComments(ctx context.Context, documentID string) ([]domain.Comment, error) {
	list, err := c.service.Comments.List(documentID).
		Fields(commentFields).
		PageSize(CommentsPageSize).
		IncludeDeleted(false).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fetchError(report.SourceComments, documentID, err)
	}

	if list.NextPageToken != "" {
		slog.Warn("Document has more comments than a single page, remaining pages are not read",
			"document_id", documentID, "page_size", CommentsPageSize)
	}

	comments := make([]domain.Comment, 0, len(list.Comments))
	for _, dc := range list.Comments {
		if dc == nil {
			continue
		}
		comments = append(comments, toComment(dc))
	}
	return comments, nil
}

func toComment(dc *drive.Comment) domain.Comment {
	// Quoted content is served as text/html.
	var excerpt *string
	if dc.QuotedFileContent != nil {
		value := html.UnescapeString(dc.QuotedFileContent.Value)
		excerpt = &value
	}

	replies := make([]domain.Reply, 0, len(dc.Replies))
	for _, r := range dc.Replies {
		if r == nil {
			continue
		}
		replies = append(replies, domain.Reply{
			Text:      r.Content,
			Author:    displayName(r.Author),
			CreatedAt: parseTime(r.CreatedTime),
		})
	}

	return domain.Comment{
		ID:            dc.Id,
		Text:          dc.Content,
		Author:        displayName(dc.Author),
		CreatedAt:     parseTime(dc.CreatedTime),
		ModifiedAt:    parseTime(dc.ModifiedTime),
		QuotedExcerpt: excerpt,
		Anchor:        dc.Anchor,
		Resolved:      dc.Resolved,
		Replies:       replies,
	}
}

func displayName(u *drive.User) string {
	if u == nil {
		return ""
	}
	return u.DisplayName
}

// parseTime reads an RFC 3339 timestamp. Missing or malformed values give
// the zero time.
func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		slog.Debug("Unparsable timestamp", "value", value, "error", err)
		return time.Time{}
	}
	return t
}
