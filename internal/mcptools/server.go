// Package mcptools exposes the questionnaire to MCP clients.
//
// Each tool is a struct with its services injected through a constructor,
// Definition() returning the mcp.Tool schema and Handle() serving calls.
package mcptools

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"hrmaturity-backend/internal/assessments"
	"hrmaturity-backend/internal/catalog"
)

// NewServer builds an MCP server with the questionnaire tools registered.
func NewServer(version string, questions *catalog.Service, results *assessments.Service) *server.MCPServer {
	s := server.NewMCPServer(
		"hrmaturity",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions("Assess HR maturity: list the question catalog, submit answers for analysis, then read stored results."),
	)

	listTool := NewListCategoriesTool(questions)
	s.AddTool(listTool.Definition(), listTool.Handle)

	submitTool := NewSubmitAssessmentTool(results)
	s.AddTool(submitTool.Definition(), submitTool.Handle)

	getTool := NewGetResultTool(results)
	s.AddTool(getTool.Definition(), getTool.Handle)

	return s
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(raw)), nil
}
