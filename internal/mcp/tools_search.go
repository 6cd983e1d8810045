package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/gdoc-comments/internal/gdocs"
	"github.com/sha1n/gdoc-comments/internal/search"
)

// SearchArgument defines search parameters.
type SearchArgument struct {
	Document string `json:"document" jsonschema:"Document ID or Google Docs URL"`
	Query    string `json:"query" jsonschema:"Search query matched against comment text, quoted text, replies and authors"`
	Resolved *bool  `json:"resolved,omitempty" jsonschema:"Only return resolved (true) or unresolved (false) comments"`
}

// SearchHandler handles the comment search MCP tool.
type SearchHandler struct {
	generator  ReportGenerator
	maxResults int
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(generator ReportGenerator, maxResults int) *SearchHandler {
	if maxResults <= 0 {
		maxResults = 20
	}
	return &SearchHandler{
		generator:  generator,
		maxResults: maxResults,
	}
}

// Handle fetches the document's comments, indexes them and returns the
// formatted matches.
func (h *SearchHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args SearchArgument) (*mcp.CallToolResult, any, error) {
	// Validate query
	if strings.TrimSpace(args.Query) == "" {
		return errorResult("Query cannot be empty"), nil, nil
	}

	documentID, err := gdocs.ParseDocumentID(args.Document)
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}

	rep, err := h.generator.GenerateNamed(ctx, documentID, "")
	if err != nil {
		slog.Error("Fetching comments failed", "document_id", documentID, "error", err)
		return errorResult(fmt.Sprintf("Failed to fetch comments: %s", err)), nil, nil
	}

	idx, err := search.NewIndex(h.maxResults)
	if err != nil {
		return errorResult(fmt.Sprintf("Failed to create index: %s", err)), nil, nil
	}
	defer func() {
		if err := idx.Close(); err != nil {
			slog.Error("Failed to close comment index", "error", err)
		}
	}()

	if err := idx.Add(documentID, rep.Comments); err != nil {
		return errorResult(fmt.Sprintf("Failed to index comments: %s", err)), nil, nil
	}

	indexed, err := idx.Count()
	if err != nil {
		return errorResult(fmt.Sprintf("Failed to count indexed comments: %s", err)), nil, nil
	}
	slog.Debug("Indexed comments", "document_id", documentID, "comments", len(rep.Comments), "indexed", indexed)

	results, err := idx.Search(search.Query{
		Text:       args.Query,
		DocumentID: documentID,
		Resolved:   args.Resolved,
	})
	if err != nil {
		return errorResult(fmt.Sprintf("Search failed: %s", err)), nil, nil
	}

	return h.formatResults(results, rep.DocumentName, args.Query), nil, nil
}

// formatResults formats search results for MCP response.
func (h *SearchHandler) formatResults(results *search.Results, documentName, queryStr string) *mcp.CallToolResult {
	if results.Total == 0 {
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("No comments found for query: %s", queryStr)},
			},
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d comments in '%s' for '%s':\n\n", results.Total, documentName, queryStr)

	for i, hit := range results.Hits {
		status := ""
		if hit.Resolved {
			status = " (resolved)"
		}
		fmt.Fprintf(&sb, "### %d. Line %d, %s%s\n", i+1, hit.Line, hit.Author, status)
		fmt.Fprintf(&sb, "**Score**: %.4f\n\n", hit.Score)

		if hit.Excerpt != "" {
			fmt.Fprintf(&sb, "> %s\n\n", strings.ReplaceAll(hit.Excerpt, "\n", " "))
		}

		for _, fragment := range hit.Fragments {
			sb.WriteString(fragment)
			sb.WriteString("\n")
		}

		sb.WriteString("\n")
	}

	if results.Total > uint64(len(results.Hits)) {
		fmt.Fprintf(&sb, "... and %d more results\n", results.Total-uint64(len(results.Hits)))
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: sb.String()},
		},
	}
}

// GetToolDefinition returns the MCP tool definition.
func (h *SearchHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "search_comments",
		Description: "Search the comments of a Google Docs document using full-text search",
	}
}

// RegisterSearchTool registers the search tool with an MCP server.
func RegisterSearchTool(server *mcp.Server, generator ReportGenerator, maxResults int) {
	handler := NewSearchHandler(generator, maxResults)
	mcp.AddTool(server, handler.GetToolDefinition(), handler.Handle)
}
