package app

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/gdoc-comments/internal/config"
)

func newTestSSEServer(t *testing.T, authSettings config.AuthSettings) *http.Server {
	t.Helper()

	impl := &mcp.Implementation{Name: "test", Version: "1.0"}
	server := mcp.NewServer(impl, nil)

	settings := &config.Settings{
		Host: "localhost",
		Port: 8080,
		Auth: authSettings,
	}

	srv, err := NewSSEServer(server, settings, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	return srv
}

var basicAuth = config.AuthSettings{
	Type: config.AuthTypeBasic,
	Basic: config.BasicAuthSettings{
		Username: "admin",
		Password: "secret",
	},
}

func TestNewSSEServer_Addr(t *testing.T) {
	srv := newTestSSEServer(t, config.AuthSettings{Type: config.AuthTypeNone})
	if srv.Addr != "localhost:8080" {
		t.Errorf("Expected addr 'localhost:8080', got '%s'", srv.Addr)
	}
}

func TestNewSSEServer_AuthTypes(t *testing.T) {
	for _, settings := range []config.AuthSettings{
		{Type: config.AuthTypeNone},
		basicAuth,
		{Type: config.AuthTypeAPIKey, APIKeys: []string{"key1", "key2"}},
	} {
		if srv := newTestSSEServer(t, settings); srv.Handler == nil {
			t.Errorf("Expected handler for auth type %q", settings.Type)
		}
	}
}

func TestNewSSEServer_InvalidAuth(t *testing.T) {
	server := mcp.NewServer(&mcp.Implementation{Name: "test", Version: "1.0"}, nil)

	settings := &config.Settings{
		Host: "localhost",
		Port: 9090,
		Auth: config.AuthSettings{
			Type: config.AuthTypeBasic,
			// Missing username and password
		},
	}

	_, err := NewSSEServer(server, settings, slog.Default())
	if err == nil {
		t.Error("Expected error for invalid auth settings")
	}
}

func TestNewSSEServer_HealthEndpoint(t *testing.T) {
	srv := newTestSSEServer(t, config.AuthSettings{Type: config.AuthTypeNone})

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
	if rec.Body.String() != "ok" {
		t.Errorf("Expected body 'ok', got '%s'", rec.Body.String())
	}
	if rec.Header().Get("Content-Type") != "text/plain; charset=utf-8" {
		t.Errorf("Expected Content-Type 'text/plain; charset=utf-8', got '%s'", rec.Header().Get("Content-Type"))
	}
}

func TestNewSSEServer_HealthEndpointBypassesAuth(t *testing.T) {
	srv := newTestSSEServer(t, basicAuth)

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200 for /health without auth, got %d", rec.Code)
	}
}

func TestNewSSEServer_SSEEndpointRequiresAuth(t *testing.T) {
	srv := newTestSSEServer(t, basicAuth)

	req := httptest.NewRequest("GET", "/sse", nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 for /sse without auth, got %d", rec.Code)
	}
}

func TestNewSSEServer_UnknownRoute(t *testing.T) {
	srv := newTestSSEServer(t, config.AuthSettings{Type: config.AuthTypeNone})

	req := httptest.NewRequest("GET", "/nope", nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}
