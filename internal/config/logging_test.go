package config

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/sha1n/gdoc-comments/internal/report"
)

func TestLog(t *testing.T) {
	// Just verify it doesn't panic
	s := &Settings{
		Transport: "sse",
		Auth:      AuthSettings{Type: AuthTypeNone},
	}
	Log(s)
	LogServer(s)
}

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "warn")

	logger.Info("hidden")
	logger.Warn("shown")

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Error("Expected info message to be filtered at warn level")
	}
	if !strings.Contains(output, "shown") {
		t.Error("Expected warn message in output")
	}
}

func TestNewLogger_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "chatty")

	logger.Debug("debug")
	logger.Info("info")

	output := buf.String()
	if strings.Contains(output, "msg=debug") {
		t.Error("Expected debug message to be filtered")
	}
	if !strings.Contains(output, "msg=info") {
		t.Error("Expected info message in output")
	}
}

func TestLogWithLogger_AccessTokenMasked(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	s := &Settings{
		Google: GoogleSettings{AccessToken: "ya29.secret"},
		Report: ReportSettings{Format: report.FormatHTML, Timezone: "UTC"},
	}

	LogWithLogger(s, logger)

	output := buf.String()
	if strings.Contains(output, "ya29.secret") {
		t.Error("Access token should be masked, not shown in plain text")
	}
	if !strings.Contains(output, "****") {
		t.Error("Expected masked access token in log output")
	}
	if !strings.Contains(output, "html") {
		t.Error("Expected report format in log output")
	}
}

func TestLogWithLogger_CredentialSources(t *testing.T) {
	tests := []struct {
		name   string
		google GoogleSettings
		want   string
	}{
		{name: "credentials file", google: GoogleSettings{CredentialsFile: "/tmp/creds.json"}, want: "/tmp/creds.json"},
		{name: "application default", google: GoogleSettings{}, want: "application default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			LogWithLogger(&Settings{Google: tt.google}, logger)

			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("Expected %q in log output, got: %s", tt.want, buf.String())
			}
		})
	}
}

func TestLogServerWithLogger_StdioTransport(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	s := &Settings{
		Transport: "stdio",
		Host:      "localhost",
		Port:      8080,
		Auth:      AuthSettings{Type: AuthTypeNone},
	}

	LogServerWithLogger(s, logger)

	output := buf.String()
	if !strings.Contains(output, "transport") {
		t.Error("Expected 'transport' in log output")
	}
	// stdio transport should not log host/port
	if strings.Contains(output, "Config: host") {
		t.Error("Expected no 'host' in log output for stdio transport")
	}
}

func TestLogServerWithLogger_SSETransport(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	s := &Settings{
		Transport: "sse",
		Host:      "localhost",
		Port:      8080,
		Auth:      AuthSettings{Type: AuthTypeNone},
		Search:    SearchSettings{MaxResults: 7},
	}

	LogServerWithLogger(s, logger)

	output := buf.String()
	for _, want := range []string{"Config: host", "Config: port", "search.max_results"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in log output", want)
		}
	}
}

func TestLogServerWithLogger_BasicAuth(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	s := &Settings{
		Transport: "stdio",
		Auth: AuthSettings{
			Type: AuthTypeBasic,
			Basic: BasicAuthSettings{
				Username: "admin",
				Password: "secret",
			},
		},
	}

	LogServerWithLogger(s, logger)

	output := buf.String()
	if !strings.Contains(output, "admin") {
		t.Error("Expected username in log output")
	}
	if !strings.Contains(output, "****") {
		t.Error("Expected masked password in log output")
	}
	if strings.Contains(output, "secret") {
		t.Error("Password should be masked, not shown in plain text")
	}
}

func TestLogServerWithLogger_APIKeyAuth(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	s := &Settings{
		Transport: "stdio",
		Auth: AuthSettings{
			Type:    AuthTypeAPIKey,
			APIKeys: []string{"key1", "key2", "key3"},
		},
	}

	LogServerWithLogger(s, logger)

	output := buf.String()
	if !strings.Contains(output, "count=3") {
		t.Errorf("Expected 'count=3' in log output, got: %s", output)
	}
}

func TestSettingsLogValue(t *testing.T) {
	s := Settings{
		Transport: "sse",
		Host:      "localhost",
		Port:      8080,
		Auth: AuthSettings{
			Type:    AuthTypeAPIKey,
			APIKeys: []string{"key1"},
		},
		Google: GoogleSettings{AccessToken: "tok", RequestTimeout: time.Second},
	}

	val := SettingsLogValue(s)
	if val.Kind() != slog.KindGroup {
		t.Errorf("Expected group kind, got %v", val.Kind())
	}

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	logger.Info("settings", "settings", val)
	if strings.Contains(buf.String(), "key1") || strings.Contains(buf.String(), "=tok") {
		t.Errorf("Expected secrets to be masked, got: %s", buf.String())
	}
}

func TestSettings_LogValuer(t *testing.T) {
	s := &Settings{
		Auth:   AuthSettings{Type: AuthTypeBasic, Basic: BasicAuthSettings{Username: "admin", Password: "hunter2"}},
		Google: GoogleSettings{AccessToken: "secret-token"},
		Search: SearchSettings{MaxResults: 7},
	}

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	logger.Info("Resolved settings", slog.Any("settings", s))

	out := buf.String()
	if strings.Contains(out, "secret-token") || strings.Contains(out, "hunter2") {
		t.Errorf("Expected secrets to be masked, got: %s", out)
	}
	if !strings.Contains(out, "settings.google.access_token=****") {
		t.Errorf("Expected masked access token, got: %s", out)
	}
	if !strings.Contains(out, "settings.search.max_results=7") {
		t.Errorf("Expected search settings, got: %s", out)
	}
}

func TestGoogleSettingsLogValue_NoToken(t *testing.T) {
	val := GoogleSettingsLogValue(GoogleSettings{CredentialsFile: "creds.json"})
	if val.Kind() != slog.KindGroup {
		t.Errorf("Expected group kind, got %v", val.Kind())
	}
	for _, attr := range val.Group() {
		if attr.Key == "access_token" && attr.Value.String() != "" {
			t.Errorf("Expected empty access token, got %q", attr.Value.String())
		}
	}
}

func TestAuthSettingsLogValue(t *testing.T) {
	s := AuthSettings{
		Type:    AuthTypeAPIKey,
		APIKeys: []string{"key1", "key2"},
		Basic: BasicAuthSettings{
			Username: "user",
			Password: "pass",
		},
	}

	val := AuthSettingsLogValue(s)
	if val.Kind() != slog.KindGroup {
		t.Errorf("Expected group kind, got %v", val.Kind())
	}
}

func TestBasicAuthSettingsLogValue(t *testing.T) {
	s := BasicAuthSettings{
		Username: "admin",
		Password: "secret",
	}

	val := BasicAuthSettingsLogValue(s)
	if val.Kind() != slog.KindGroup {
		t.Errorf("Expected group kind, got %v", val.Kind())
	}
}
