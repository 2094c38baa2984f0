package mcptools

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/mark3labs/mcp-go/mcp"

	"hrmaturity-backend/internal/assessments"
	"hrmaturity-backend/internal/catalog"
)

// SubmitAssessmentTool handles the submit_assessment MCP tool.
type SubmitAssessmentTool struct {
	svc *assessments.Service
}

// NewSubmitAssessmentTool creates a SubmitAssessmentTool.
func NewSubmitAssessmentTool(svc *assessments.Service) *SubmitAssessmentTool {
	return &SubmitAssessmentTool{svc: svc}
}

// Definition returns the MCP tool definition for submit_assessment.
func (t *SubmitAssessmentTool) Definition() mcp.Tool {
	return mcp.NewTool("submit_assessment",
		mcp.WithDescription("Submit questionnaire answers for an organization. The answers are analyzed and the stored result is returned."),
		mcp.WithString("organization_name",
			mcp.Required(),
			mcp.Description("Organization being assessed"),
		),
		mcp.WithObject("answers",
			mcp.Required(),
			mcp.Description("Map of question id to selected option value (1-5)"),
		),
		mcp.WithObject("comments",
			mcp.Description("Optional map of question id to free-text comment"),
		),
	)
}

// Handle processes the submit_assessment tool call.
func (t *SubmitAssessmentTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	answers, err := answersArg(args["answers"])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	comments, err := commentsArg(args["comments"])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, _, err := t.svc.Submit(ctx, assessments.Submission{
		OrganizationName: req.GetString("organization_name", ""),
		Answers:          answers,
		Comments:         comments,
	})
	if errors.Is(err, assessments.ErrMissingFields) {
		return mcp.NewToolResultError("'organization_name' and 'answers' are required"), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to submit assessment: %v", err)), nil
	}
	return jsonResult(res)
}

// answersArg converts a JSON object of numbers. JSON numbers arrive as float64.
func answersArg(v any) (catalog.Answers, error) {
	if v == nil {
		return nil, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, errors.New("'answers' must be an object")
	}
	out := make(catalog.Answers, len(m))
	for id, raw := range m {
		f, ok := raw.(float64)
		if !ok || f != math.Trunc(f) {
			return nil, fmt.Errorf("answer for %q must be an integer", id)
		}
		out[id] = int(f)
	}
	return out, nil
}

func commentsArg(v any) (catalog.Comments, error) {
	if v == nil {
		return nil, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, errors.New("'comments' must be an object")
	}
	out := make(catalog.Comments, len(m))
	for id, raw := range m {
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("comment for %q must be a string", id)
		}
		out[id] = s
	}
	return out, nil
}
