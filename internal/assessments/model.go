package assessments

import (
	"encoding/json"

	"hrmaturity-backend/internal/analysis"
	"hrmaturity-backend/internal/catalog"
)

// Result is a stored submission together with its analysis. Once appended it is
// never modified.
type Result struct {
	ID               string           `json:"id"`
	OrganizationName string           `json:"organizationName"`
	SubmittedAt      string           `json:"submittedAt"`
	Answers          catalog.Answers  `json:"answers"`
	Comments         catalog.Comments `json:"comments"`
	Analysis         json.RawMessage  `json:"analysis"`
}

// Summary is the list projection of a Result. It never carries answers or comments.
type Summary struct {
	ID               string  `json:"id"`
	OrganizationName string  `json:"organizationName"`
	SubmittedAt      string  `json:"submittedAt"`
	OverallScore     float64 `json:"overallScore"`
	MaturityLevel    string  `json:"maturityLevel"`
}

// Summarize projects a Result for listing. Missing analysis fields become 0 and
// "Unknown".
func Summarize(r Result) Summary {
	score, level := analysis.SummaryFields(r.Analysis)
	return Summary{
		ID:               r.ID,
		OrganizationName: r.OrganizationName,
		SubmittedAt:      r.SubmittedAt,
		OverallScore:     score,
		MaturityLevel:    level,
	}
}

// Submission is the client input for a new assessment.
type Submission struct {
	OrganizationName string           `json:"organizationName"`
	Answers          catalog.Answers  `json:"answers"`
	Comments         catalog.Comments `json:"comments"`
}
