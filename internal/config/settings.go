package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sha1n/gdoc-comments/internal/report"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of all environment variables read by LoadSettings.
const EnvPrefix = "GDOC_COMMENTS"

// Auth type constants
const (
	AuthTypeNone   = "none"
	AuthTypeBasic  = "basic"
	AuthTypeAPIKey = "apikey"
)

// Transport constants
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// LocalTimezone selects the host's local time zone for report timestamps.
const LocalTimezone = "Local"

// StdoutOutput writes the report to standard output instead of a file.
const StdoutOutput = "-"

// AuthSettings configuration for authentication of the SSE transport
type AuthSettings struct {
	Type    string            `mapstructure:"type"` // AuthTypeNone, AuthTypeBasic, or AuthTypeAPIKey
	Basic   BasicAuthSettings `mapstructure:"basic"`
	APIKeys []string          `mapstructure:"api_keys"`
}

// BasicAuthSettings configuration for basic auth
type BasicAuthSettings struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// GoogleSettings configuration for the Google Docs and Drive APIs
type GoogleSettings struct {
	AccessToken     string        `mapstructure:"access_token"`
	CredentialsFile string        `mapstructure:"credentials_file"`
	DocsEndpoint    string        `mapstructure:"docs_endpoint"`
	DriveEndpoint   string        `mapstructure:"drive_endpoint"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
}

// ReportSettings configuration for report rendering and output
type ReportSettings struct {
	DateLayout string `mapstructure:"date_layout"`
	Timezone   string `mapstructure:"timezone"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
}

// Location resolves the configured time zone.
func (r ReportSettings) Location() (*time.Location, error) {
	if r.Timezone == "" || r.Timezone == LocalTimezone {
		return time.Local, nil
	}
	return time.LoadLocation(r.Timezone)
}

// SearchSettings configuration for comment search
type SearchSettings struct {
	MaxResults int `mapstructure:"max_results"`
}

// Settings application settings
type Settings struct {
	Transport string         `mapstructure:"transport"`
	Host      string         `mapstructure:"host"`
	Port      int            `mapstructure:"port"`
	LogLevel  string         `mapstructure:"log_level"`
	Auth      AuthSettings   `mapstructure:"auth"`
	Google    GoogleSettings `mapstructure:"google"`
	Report    ReportSettings `mapstructure:"report"`
	Search    SearchSettings `mapstructure:"search"`
}

// flagBindings maps settings keys to CLI flag names.
var flagBindings = map[string]string{
	"transport":               "transport",
	"host":                    "host",
	"port":                    "port",
	"log_level":               "log-level",
	"auth.type":               "auth-type",
	"auth.basic.username":     "auth-basic-username",
	"auth.basic.password":     "auth-basic-password",
	"auth.api_keys":           "auth-api-keys",
	"google.access_token":     "access-token",
	"google.credentials_file": "credentials-file",
	"google.docs_endpoint":    "docs-endpoint",
	"google.drive_endpoint":   "drive-endpoint",
	"google.request_timeout":  "request-timeout",
	"report.date_layout":      "date-layout",
	"report.timezone":         "timezone",
	"report.format":           "format",
	"report.output":           "output",
	"search.max_results":      "search-max-results",
}

// LoadSettings loads settings from environment variables and optional .env file
func LoadSettings() (*Settings, error) {
	return LoadSettingsWithFlags(nil)
}

// LoadSettingsWithFlags loads settings with optional CLI flag overrides.
// Priority: CLI flags > environment variables > .env file > defaults.
// If flags is nil, only env vars and defaults are used.
func LoadSettingsWithFlags(flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()

	// Default values
	v.SetDefault("transport", TransportStdio)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", 8080)
	v.SetDefault("log_level", "info")
	v.SetDefault("auth.type", AuthTypeNone)

	v.SetDefault("google.docs_endpoint", "https://docs.googleapis.com")
	v.SetDefault("google.drive_endpoint", "https://www.googleapis.com")
	v.SetDefault("google.request_timeout", 30*time.Second)

	v.SetDefault("report.date_layout", "2006-01-02 15:04:05")
	v.SetDefault("report.timezone", LocalTimezone)
	v.SetDefault("report.format", report.FormatMarkdown)
	v.SetDefault("report.output", "comments.md")

	v.SetDefault("search.max_results", 20)

	// Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind every key explicitly so nested keys unmarshal from env vars
	for key := range flagBindings {
		_ = v.BindEnv(key, envName(key))
	}

	// Bind CLI flags if provided (highest priority). Flags that a command
	// does not register are skipped.
	if flags != nil {
		for key, name := range flagBindings {
			if f := flags.Lookup(name); f != nil {
				_ = v.BindPFlag(key, f)
			}
		}
	}

	// Helper to look for .env file
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // Ignore error if .env doesn't exist

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, err
	}

	// Handle explicit parsing of API keys if provided via env var as comma-separated string
	apiKeysEnv := os.Getenv(envName("auth.api_keys"))
	if apiKeysEnv != "" {
		if len(settings.Auth.APIKeys) == 0 || (len(settings.Auth.APIKeys) == 1 && strings.Contains(settings.Auth.APIKeys[0], ",")) {
			settings.Auth.APIKeys = strings.Split(apiKeysEnv, ",")
		}
	}

	// Trim spaces from API keys
	for i := range settings.Auth.APIKeys {
		settings.Auth.APIKeys[i] = strings.TrimSpace(settings.Auth.APIKeys[i])
	}
	settings.Auth.APIKeys = filterEmptyStrings(settings.Auth.APIKeys)

	settings.Google.CredentialsFile = expandHomeDir(settings.Google.CredentialsFile)
	settings.LogLevel = strings.ToLower(strings.TrimSpace(settings.LogLevel))
	settings.Report.Format = strings.ToLower(strings.TrimSpace(settings.Report.Format))

	return &settings, nil
}

// envName returns the environment variable bound to a settings key
func envName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// expandHomeDir expands ~ to the user's home directory
func expandHomeDir(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}
	return path
}

// filterEmptyStrings removes empty strings from a slice
func filterEmptyStrings(s []string) []string {
	var result []string
	for _, str := range s {
		if str != "" {
			result = append(result, str)
		}
	}
	return result
}

// ParseLogLevel converts a configured level name to a slog.Level.
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s", level)
	}
}

// ValidateSettings checks the full configuration of the MCP server.
// Returns an error if the settings contain mutually exclusive or incomplete config.
func ValidateSettings(s *Settings) error {
	// Validate transport type
	switch s.Transport {
	case TransportStdio, TransportSSE:
		// valid
	default:
		return errors.New("transport must be 'stdio' or 'sse', got: " + s.Transport)
	}

	if err := ValidateReportSettings(s); err != nil {
		return err
	}

	if err := validateAuthSettings(&s.Auth); err != nil {
		return err
	}

	if s.Search.MaxResults <= 0 {
		return errors.New("search-max-results must be positive")
	}

	return nil
}

// ValidateReportSettings checks only what a one-shot report export uses:
// log level, Google access and report output. Server settings are ignored.
func ValidateReportSettings(s *Settings) error {
	if _, err := ParseLogLevel(s.LogLevel); err != nil {
		return err
	}

	if err := validateGoogleSettings(&s.Google); err != nil {
		return err
	}

	return validateReportSettings(&s.Report)
}

func validateAuthSettings(a *AuthSettings) error {
	hasBasicCreds := a.Basic.Username != "" || a.Basic.Password != ""
	hasAPIKeys := len(a.APIKeys) > 0

	switch a.Type {
	case AuthTypeNone, "":
		if hasBasicCreds || hasAPIKeys {
			return errors.New("auth-type 'none' is incompatible with auth credentials")
		}
	case AuthTypeBasic:
		if hasAPIKeys {
			return errors.New("auth-type 'basic' is mutually exclusive with auth-api-keys")
		}
		if a.Basic.Username == "" || a.Basic.Password == "" {
			return errors.New("auth-type 'basic' requires both username and password")
		}
	case AuthTypeAPIKey:
		if hasBasicCreds {
			return errors.New("auth-type 'apikey' is mutually exclusive with basic auth credentials")
		}
		if !hasAPIKeys {
			return errors.New("auth-type 'apikey' requires at least one API key")
		}
	default:
		return errors.New("unknown auth-type: " + a.Type)
	}
	return nil
}

func validateGoogleSettings(g *GoogleSettings) error {
	if g.AccessToken != "" && g.CredentialsFile != "" {
		return errors.New("access-token is mutually exclusive with credentials-file")
	}
	if g.DocsEndpoint == "" {
		return errors.New("docs-endpoint cannot be empty")
	}
	if g.DriveEndpoint == "" {
		return errors.New("drive-endpoint cannot be empty")
	}
	if g.RequestTimeout <= 0 {
		return errors.New("request-timeout must be positive")
	}
	return nil
}

func validateReportSettings(r *ReportSettings) error {
	switch r.Format {
	case report.FormatMarkdown, report.FormatHTML:
		// valid
	default:
		return errors.New("format must be 'markdown' or 'html', got: " + r.Format)
	}
	if strings.TrimSpace(r.DateLayout) == "" {
		return errors.New("date-layout cannot be empty")
	}
	if _, err := r.Location(); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", r.Timezone, err)
	}
	if r.Output == "" {
		return errors.New("output cannot be empty")
	}
	return nil
}
