package gdocs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/sha1n/gdoc-comments/internal/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// ErrNoCredentials is returned when no Google credential can be found.
var ErrNoCredentials = errors.New("no google credentials available")

// Scopes are the read-only OAuth scopes needed to read document structure
// and comments.
var Scopes = []string{
	"https://www.googleapis.com/auth/documents.readonly",
	"https://www.googleapis.com/auth/drive.readonly",
}

// NewTokenSource returns the credential provider selected by settings:
// a static access token, a credentials JSON file, or Application Default
// Credentials, in that order.
func NewTokenSource(ctx context.Context, settings *config.GoogleSettings) (oauth2.TokenSource, error) {
	if settings.AccessToken != "" {
		return oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: settings.AccessToken,
			TokenType:   "Bearer",
		}), nil
	}

	if settings.CredentialsFile != "" {
		data, err := os.ReadFile(settings.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials file: %w", err)
		}
		creds, err := google.CredentialsFromJSON(ctx, data, Scopes...)
		if err != nil {
			return nil, fmt.Errorf("failed to parse credentials file: %w", err)
		}
		return creds.TokenSource, nil
	}

	ts, err := google.DefaultTokenSource(ctx, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoCredentials, err)
	}
	return ts, nil
}

// NewHTTPClient returns an HTTP client that attaches a bearer token from ts
// to every request.
func NewHTTPClient(ctx context.Context, ts oauth2.TokenSource, timeout time.Duration) *http.Client {
	client := oauth2.NewClient(ctx, ts)
	client.Timeout = timeout
	return client
}

// NewClients builds the Docs and Drive clients for settings.
func NewClients(ctx context.Context, settings *config.GoogleSettings) (*DocsClient, *DriveClient, error) {
	ts, err := NewTokenSource(ctx, settings)
	if err != nil {
		return nil, nil, err
	}

	httpClient := NewHTTPClient(ctx, ts, settings.RequestTimeout)

	docsClient, err := NewDocsClient(ctx, settings.DocsEndpoint, httpClient)
	if err != nil {
		return nil, nil, err
	}
	driveClient, err := NewDriveClient(ctx, settings.DriveEndpoint, httpClient)
	if err != nil {
		return nil, nil, err
	}
	return docsClient, driveClient, nil
}
