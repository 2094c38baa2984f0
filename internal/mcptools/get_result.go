package mcptools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"hrmaturity-backend/internal/assessments"
	"hrmaturity-backend/internal/report"
)

// GetResultTool handles the get_result MCP tool.
type GetResultTool struct {
	svc *assessments.Service
}

// NewGetResultTool creates a GetResultTool.
func NewGetResultTool(svc *assessments.Service) *GetResultTool {
	return &GetResultTool{svc: svc}
}

// Definition returns the MCP tool definition for get_result.
func (t *GetResultTool) Definition() mcp.Tool {
	return mcp.NewTool("get_result",
		mcp.WithDescription("Fetch a stored assessment result by id, as JSON or as a Markdown report."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Result id returned by submit_assessment"),
		),
		mcp.WithString("format",
			mcp.Description("json (default) or markdown"),
			mcp.Enum("json", "markdown"),
		),
	)
}

// Handle processes the get_result tool call.
func (t *GetResultTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("'id' is required"), nil
	}
	res, err := t.svc.Get(ctx, id)
	if errors.Is(err, assessments.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("result %q not found", id)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to fetch result: %v", err)), nil
	}

	if req.GetString("format", "json") == "markdown" {
		md, err := report.Markdown(t.svc.ReportInput(ctx, res))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(md), nil
	}
	return jsonResult(res)
}
