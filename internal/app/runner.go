package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/gdoc-comments/internal/config"
	"github.com/sha1n/gdoc-comments/internal/gdocs"
	mcputil "github.com/sha1n/gdoc-comments/internal/mcp"
	"github.com/sha1n/gdoc-comments/internal/report"
	"github.com/spf13/pflag"
)

// ServerName is the MCP implementation name advertised to clients
const ServerName = "gdoc-comments"

// RunParams contains dependencies for the run functions
type RunParams struct {
	LoadSettings      func(*pflag.FlagSet) (*config.Settings, error)
	ValidSettings     func(*config.Settings) error
	NewGenerator      func(context.Context, *config.Settings) (*report.Generator, error)
	StartSSEServer    func(*mcp.Server, *config.Settings) error
	CreateServer      func(*config.Settings, *report.Generator, string) (*mcp.Server, error)
	CustomIOTransport mcp.Transport // Optional: for testing with custom IO
	Stdout            io.Writer     // Optional: defaults to os.Stdout
	Stderr            io.Writer     // Optional: defaults to os.Stderr
}

// DefaultRunParams returns production dependencies
func DefaultRunParams() RunParams {
	return RunParams{
		LoadSettings:   config.LoadSettingsWithFlags,
		ValidSettings:  config.ValidateSettings,
		NewGenerator:   NewReportGenerator,
		StartSSEServer: StartSSEServer,
		CreateServer:   CreateMCPServer,
	}
}

// DefaultReportRunParams returns production dependencies for a report
// export. Only the settings a report uses are validated, so server settings
// left in the environment cannot fail an export.
func DefaultReportRunParams() RunParams {
	params := DefaultRunParams()
	params.ValidSettings = config.ValidateReportSettings
	return params
}

// RunReportWithDeps exports the comments report of ref, a document ID or URL
func RunReportWithDeps(ctx context.Context, params RunParams, flags *pflag.FlagSet, ref string) error {
	settings, err := setup(params, flags)
	if err != nil {
		return err
	}
	config.Log(settings)

	documentID, err := gdocs.ParseDocumentID(ref)
	if err != nil {
		return err
	}

	generator, err := params.NewGenerator(ctx, settings)
	if err != nil {
		return err
	}

	rep, err := generator.GenerateNamed(ctx, documentID, stringFlag(flags, "document-name"))
	if err != nil {
		return err
	}

	body, err := rep.Format(settings.Report.Format)
	if err != nil {
		return err
	}

	if err := writeReport(settings.Report.Output, body, params.Stdout); err != nil {
		return err
	}

	slog.Info("Comments exported",
		"document_id", documentID,
		"comments", len(rep.Comments),
		"path", settings.Report.Output)
	return nil
}

// RunServeWithDeps executes the MCP server with the provided dependencies
func RunServeWithDeps(ctx context.Context, params RunParams, flags *pflag.FlagSet, version string) error {
	settings, err := setup(params, flags)
	if err != nil {
		return err
	}

	slog.Info("Starting gdoc-comments MCP server", "version", version)
	config.Log(settings)
	config.LogServer(settings)

	generator, err := params.NewGenerator(ctx, settings)
	if err != nil {
		return err
	}

	mcpServer, err := params.CreateServer(settings, generator, version)
	if err != nil {
		return err
	}

	if settings.Transport == config.TransportStdio {
		// Use custom transport if provided (for testing), otherwise use stdio
		transport := params.CustomIOTransport
		if transport == nil {
			transport = &mcp.StdioTransport{}
		}
		return mcpServer.Run(ctx, transport)
	}

	slog.Info("Starting SSE server", "host", settings.Host, "port", settings.Port)
	return params.StartSSEServer(mcpServer, settings)
}

// setup loads and validates settings and installs the default logger.
// Logs always go to stderr so they never mix with a report or stdio
// protocol traffic on stdout.
func setup(params RunParams, flags *pflag.FlagSet) (*config.Settings, error) {
	settings, err := params.LoadSettings(flags)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	if err := params.ValidSettings(settings); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	stderr := params.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	slog.SetDefault(config.NewLogger(stderr, settings.LogLevel))
	slog.Debug("Resolved settings", slog.Any("settings", settings))

	return settings, nil
}

// NewReportGenerator creates a generator backed by the Google Docs and
// Drive APIs.
func NewReportGenerator(ctx context.Context, settings *config.Settings) (*report.Generator, error) {
	docs, drive, err := gdocs.NewClients(ctx, &settings.Google)
	if err != nil {
		return nil, fmt.Errorf("failed to create google clients: %w", err)
	}

	loc, err := settings.Report.Location()
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", settings.Report.Timezone, err)
	}

	return report.NewGenerator(docs, drive, report.NewRenderer(settings.Report.DateLayout, loc)), nil
}

// CreateMCPServer creates the MCP server with registered tools
func CreateMCPServer(settings *config.Settings, generator *report.Generator, version string) (*mcp.Server, error) {
	cfg := mcputil.ServerConfig{
		Name:       ServerName,
		Version:    version,
		MaxResults: settings.Search.MaxResults,
	}
	// Avoid wrapping a nil pointer in a non-nil interface
	if generator != nil {
		cfg.Generator = generator
	}
	return mcputil.CreateServer(cfg), nil
}

func writeReport(output, body string, stdout io.Writer) error {
	if output == config.StdoutOutput {
		if stdout == nil {
			stdout = os.Stdout
		}
		_, err := io.WriteString(stdout, body)
		return err
	}

	if err := os.WriteFile(output, []byte(body), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func stringFlag(flags *pflag.FlagSet, name string) string {
	if flags == nil {
		return ""
	}
	value, _ := flags.GetString(name)
	return value
}
