package auth

import (
	"crypto/subtle"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sha1n/gdoc-comments/internal/config"
)

// APIKeyHeader is the header carrying an API key. A bearer Authorization
// header is accepted as well.
const APIKeyHeader = "X-API-Key"

// NewMiddleware creates a new authentication middleware based on settings.
// Rejected requests are logged to logger.
func NewMiddleware(settings config.AuthSettings, logger *slog.Logger) (func(http.Handler) http.Handler, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch settings.Type {
	case config.AuthTypeNone, "":
		return func(next http.Handler) http.Handler {
			return next
		}, nil
	case config.AuthTypeBasic:
		if settings.Basic.Username == "" || settings.Basic.Password == "" {
			return nil, fmt.Errorf("basic auth requires non-empty username and password")
		}
		return basicAuthMiddleware(settings.Basic, logger), nil
	case config.AuthTypeAPIKey:
		if len(settings.APIKeys) == 0 {
			return nil, fmt.Errorf("apikey auth requires at least one API key")
		}
		return apiKeyMiddleware(settings.APIKeys, logger), nil
	default:
		return nil, fmt.Errorf("unknown auth type: %s", settings.Type)
	}
}

func basicAuthMiddleware(settings config.BasicAuthSettings, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			userMatch := subtle.ConstantTimeCompare([]byte(user), []byte(settings.Username)) == 1
			passMatch := subtle.ConstantTimeCompare([]byte(pass), []byte(settings.Password)) == 1
			if !ok || !userMatch || !passMatch {
				logger.Warn("Rejected request", "auth", config.AuthTypeBasic, "path", r.URL.Path, "remote", r.RemoteAddr)
				w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func apiKeyMiddleware(apiKeys []string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !validAPIKey(requestAPIKey(r), apiKeys) {
				logger.Warn("Rejected request", "auth", config.AuthTypeAPIKey, "path", r.URL.Path, "remote", r.RemoteAddr)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requestAPIKey returns the key from the X-API-Key header, falling back to
// a bearer Authorization header.
func requestAPIKey(r *http.Request) string {
	if key := r.Header.Get(APIKeyHeader); key != "" {
		return key
	}
	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

func validAPIKey(key string, apiKeys []string) bool {
	if key == "" {
		return false
	}
	valid := false
	for _, validKey := range apiKeys {
		if subtle.ConstantTimeCompare([]byte(key), []byte(validKey)) == 1 {
			valid = true
		}
	}
	return valid
}
