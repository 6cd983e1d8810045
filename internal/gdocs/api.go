package gdocs

import (
	"errors"
	"net/http"
	"strings"

	"github.com/sha1n/gdoc-comments/internal/report"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// serviceOptions points a generated API service at endpoint and sends its
// requests through httpClient, which carries the credentials.
func serviceOptions(endpoint string, httpClient *http.Client) []option.ClientOption {
	return []option.ClientOption{
		option.WithHTTPClient(httpClient),
		option.WithEndpoint(endpoint),
	}
}

// basePath joins an API host with the service path. The generated services
// resolve request paths relative to it, so it must end with a slash.
func basePath(endpoint, servicePath string) string {
	return strings.TrimRight(endpoint, "/") + "/" + servicePath
}

// fetchError wraps a failed API call, keeping the HTTP status of
// googleapi errors.
func fetchError(source, documentID string, err error) error {
	fetchErr := &report.FetchError{Source: source, DocumentID: documentID, Err: err}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		fetchErr.StatusCode = apiErr.Code
	}
	return fetchErr
}
