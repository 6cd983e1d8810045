package config

import (
	"context"
	"io"
	"log/slog"
)

const masked = "****"

// NewLogger creates a text logger writing to w at the configured level.
// Unknown levels fall back to info.
func NewLogger(w io.Writer, level string) *slog.Logger {
	lvl, _ := ParseLogLevel(level)
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// Log logs the resolved report settings in a granular way, skipping irrelevant ones
func Log(s *Settings) {
	LogWithLogger(s, slog.Default())
}

// LogWithLogger logs the resolved report settings using the provided logger
func LogWithLogger(s *Settings, logger *slog.Logger) {
	ctx := context.Background()
	logger.InfoContext(ctx, "Config: log_level", "value", s.LogLevel)

	switch {
	case s.Google.AccessToken != "":
		logger.InfoContext(ctx, "Config: google.access_token", "value", masked)
	case s.Google.CredentialsFile != "":
		logger.InfoContext(ctx, "Config: google.credentials_file", "value", s.Google.CredentialsFile)
	default:
		logger.InfoContext(ctx, "Config: google.credentials", "value", "application default")
	}
	logger.DebugContext(ctx, "Config: google.docs_endpoint", "value", s.Google.DocsEndpoint)
	logger.DebugContext(ctx, "Config: google.drive_endpoint", "value", s.Google.DriveEndpoint)
	logger.DebugContext(ctx, "Config: google.request_timeout", "value", s.Google.RequestTimeout)

	logger.InfoContext(ctx, "Config: report.format", "value", s.Report.Format)
	logger.InfoContext(ctx, "Config: report.timezone", "value", s.Report.Timezone)
	logger.DebugContext(ctx, "Config: report.date_layout", "value", s.Report.DateLayout)
}

// LogServer logs the resolved server settings
func LogServer(s *Settings) {
	LogServerWithLogger(s, slog.Default())
}

// LogServerWithLogger logs the resolved server settings using the provided logger
func LogServerWithLogger(s *Settings, logger *slog.Logger) {
	ctx := context.Background()
	logger.InfoContext(ctx, "Config: transport", "value", s.Transport)
	if s.Transport == TransportSSE {
		logger.InfoContext(ctx, "Config: host", "value", s.Host)
		logger.InfoContext(ctx, "Config: port", "value", s.Port)
	}

	logger.InfoContext(ctx, "Config: auth.type", "value", s.Auth.Type)
	switch s.Auth.Type {
	case AuthTypeBasic:
		logger.InfoContext(ctx, "Config: auth.basic.username", "value", s.Auth.Basic.Username)
		logger.InfoContext(ctx, "Config: auth.basic.password", "value", masked)
	case AuthTypeAPIKey:
		logger.InfoContext(ctx, "Config: auth.api_keys", "count", len(s.Auth.APIKeys))
	}

	logger.InfoContext(ctx, "Config: search.max_results", "value", s.Search.MaxResults)
}

// AuthSettingsLogValue returns a slog.Value for AuthSettings with masked data
func AuthSettingsLogValue(s AuthSettings) slog.Value {
	keys := make([]string, len(s.APIKeys))
	for i := range s.APIKeys {
		keys[i] = masked
	}
	return slog.GroupValue(
		slog.String("type", s.Type),
		slog.Any("basic", BasicAuthSettingsLogValue(s.Basic)),
		slog.Any("api_keys", keys),
	)
}

// BasicAuthSettingsLogValue returns a slog.Value for BasicAuthSettings with masked data
func BasicAuthSettingsLogValue(s BasicAuthSettings) slog.Value {
	return slog.GroupValue(
		slog.String("username", s.Username),
		slog.String("password", masked),
	)
}

// GoogleSettingsLogValue returns a slog.Value for GoogleSettings with masked data
func GoogleSettingsLogValue(s GoogleSettings) slog.Value {
	token := ""
	if s.AccessToken != "" {
		token = masked
	}
	return slog.GroupValue(
		slog.String("access_token", token),
		slog.String("credentials_file", s.CredentialsFile),
		slog.String("docs_endpoint", s.DocsEndpoint),
		slog.String("drive_endpoint", s.DriveEndpoint),
		slog.Duration("request_timeout", s.RequestTimeout),
	)
}

// LogValue implements slog.LogValuer so settings never log secrets.
func (s Settings) LogValue() slog.Value {
	return SettingsLogValue(s)
}

// SettingsLogValue returns a slog.Value for Settings with masked data
func SettingsLogValue(s Settings) slog.Value {
	return slog.GroupValue(
		slog.String("transport", s.Transport),
		slog.String("host", s.Host),
		slog.Int("port", s.Port),
		slog.String("log_level", s.LogLevel),
		slog.Any("auth", AuthSettingsLogValue(s.Auth)),
		slog.Any("google", GoogleSettingsLogValue(s.Google)),
		slog.Group("report",
			slog.String("format", s.Report.Format),
			slog.String("timezone", s.Report.Timezone),
			slog.String("date_layout", s.Report.DateLayout),
			slog.String("output", s.Report.Output),
		),
		slog.Group("search",
			slog.Int("max_results", s.Search.MaxResults),
		),
	)
}
