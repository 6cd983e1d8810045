package mcp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/gdoc-comments/internal/gdocs"
	"github.com/sha1n/gdoc-comments/internal/report"
)

// ReportGenerator produces comment reports for documents.
type ReportGenerator interface {
	GenerateNamed(ctx context.Context, documentID, documentName string) (*report.Report, error)
}

// ReportArgument defines report parameters.
type ReportArgument struct {
	Document     string `json:"document" jsonschema:"Document ID or Google Docs URL"`
	DocumentName string `json:"document_name,omitempty" jsonschema:"Title used in the report header (defaults to the document title)"`
	Format       string `json:"format,omitempty" jsonschema:"Output format: markdown (default) or html"`
}

// ReportHandler handles the comments report MCP tool.
type ReportHandler struct {
	generator ReportGenerator
}

// NewReportHandler creates a new report handler.
func NewReportHandler(generator ReportGenerator) *ReportHandler {
	return &ReportHandler{
		generator: generator,
	}
}

// Handle generates the report and returns it as text.
func (h *ReportHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args ReportArgument) (*mcp.CallToolResult, any, error) {
	documentID, err := gdocs.ParseDocumentID(args.Document)
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}

	rep, err := h.generator.GenerateNamed(ctx, documentID, args.DocumentName)
	if err != nil {
		slog.Error("Report generation failed", "document_id", documentID, "error", err)
		return errorResult(fmt.Sprintf("Failed to generate report: %s", err)), nil, nil
	}

	body, err := rep.Format(args.Format)
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: body},
		},
	}, nil, nil
}

// GetToolDefinition returns the MCP tool definition.
func (h *ReportHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "comments_report",
		Description: "Export the comments of a Google Docs document as a report ordered by paragraph position",
	}
}

// RegisterReportTool registers the report tool with an MCP server.
func RegisterReportTool(server *mcp.Server, generator ReportGenerator) {
	handler := NewReportHandler(generator)
	mcp.AddTool(server, handler.GetToolDefinition(), handler.Handle)
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
		IsError: true,
	}
}
