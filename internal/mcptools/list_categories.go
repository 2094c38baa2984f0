package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"hrmaturity-backend/internal/catalog"
)

// ListCategoriesTool handles the list_categories MCP tool.
type ListCategoriesTool struct {
	svc *catalog.Service
}

// NewListCategoriesTool creates a ListCategoriesTool.
func NewListCategoriesTool(svc *catalog.Service) *ListCategoriesTool {
	return &ListCategoriesTool{svc: svc}
}

// Definition returns the MCP tool definition for list_categories.
func (t *ListCategoriesTool) Definition() mcp.Tool {
	return mcp.NewTool("list_categories",
		mcp.WithDescription("List the assessment categories with their questions and answer options (1-5)."),
		mcp.WithString("category_id",
			mcp.Description("Only return this category"),
		),
	)
}

// Handle processes the list_categories tool call.
func (t *ListCategoriesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if id := strings.TrimSpace(req.GetString("category_id", "")); id != "" {
		cat, err := t.svc.Category(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("category %q: %v", id, err)), nil
		}
		return jsonResult(cat)
	}
	c, err := t.svc.Catalog(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load questions: %v", err)), nil
	}
	return jsonResult(c.Categories)
}
