package app

import "github.com/spf13/pflag"

// RegisterCommonFlags registers the flags shared by every command
func RegisterCommonFlags(flags *pflag.FlagSet) {
	flags.StringP("log-level", "l", "", "Log level: debug, info, warn, or error")
	flags.String("access-token", "", "OAuth2 access token for the Google APIs")
	flags.String("credentials-file", "", "Service account or authorized user JSON credentials file")
	flags.String("docs-endpoint", "", "Google Docs API base URL")
	flags.String("drive-endpoint", "", "Google Drive API base URL")
	flags.Duration("request-timeout", 0, "Timeout of a single Google API request")
	flags.String("date-layout", "", "Go time layout used for comment timestamps")
	flags.String("timezone", "", "IANA time zone for comment timestamps, or Local")
}

// RegisterReportFlags registers the flags of the report command
func RegisterReportFlags(flags *pflag.FlagSet) {
	flags.StringP("output", "o", "", "Output file, or - for stdout")
	flags.StringP("format", "f", "", "Output format: markdown or html")
	flags.StringP("document-name", "n", "", "Title used in the report header (defaults to the document title)")
}

// RegisterServeFlags registers the flags of the serve command
func RegisterServeFlags(flags *pflag.FlagSet) {
	flags.StringP("transport", "t", "", "Transport type: stdio or sse")
	flags.StringP("host", "H", "", "Host for SSE transport")
	flags.IntP("port", "p", 0, "Port for SSE transport")
	flags.StringP("auth-type", "a", "", "Authentication type: none, basic, or apikey")
	flags.StringP("auth-basic-username", "u", "", "Basic auth username")
	flags.StringP("auth-basic-password", "P", "", "Basic auth password")
	flags.StringSliceP("auth-api-keys", "k", nil, "API keys (comma-separated)")
	flags.Int("search-max-results", 0, "Maximum number of comments returned by a search")
}
