package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ServerConfig contains configuration for creating an MCP server
type ServerConfig struct {
	Name       string
	Version    string
	Generator  ReportGenerator
	MaxResults int
}

// CreateServer creates and configures the MCP server. Comment tools are
// registered only when a generator is configured.
func CreateServer(cfg ServerConfig) *mcp.Server {
	s := mcp.NewServer(&mcp.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, nil)

	if cfg.Generator != nil {
		RegisterReportTool(s, cfg.Generator)
		RegisterSearchTool(s, cfg.Generator, cfg.MaxResults)
	}

	return s
}
