package analysis

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"hrmaturity-backend/internal/catalog"
)

var (
	//go:embed prompts/analysis_system.txt
	analysisSystemPrompt string
	//go:embed prompts/analysis.tmpl
	analysisPromptRaw string
	//go:embed prompts/recommendations_system.txt
	recommendationsSystemPrompt string
	//go:embed prompts/recommendations.tmpl
	recommendationsPromptRaw string
)

var (
	analysisTemplate        = template.Must(template.New("analysis").Parse(analysisPromptRaw))
	recommendationsTemplate = template.Must(template.New("recommendations").Funcs(template.FuncMap{
		"join": strings.Join,
	}).Parse(recommendationsPromptRaw))
)

// AnswerDetail is one answered question as presented to the model.
type AnswerDetail struct {
	QuestionID string  `json:"questionId"`
	Question   string  `json:"question"`
	Answer     int     `json:"answer"`
	AnswerText string  `json:"answerText"`
	Comment    *string `json:"comment"`
}

// CategoryAnswers groups answered questions under their category.
type CategoryAnswers struct {
	CategoryID          string         `json:"categoryId"`
	CategoryName        string         `json:"categoryName"`
	CategoryDescription string         `json:"categoryDescription"`
	Answers             []AnswerDetail `json:"answers"`
}

// FormatAnswers walks the catalog in order and keeps questions answered with a non-zero
// value. Categories without answers are omitted.
func FormatAnswers(c catalog.Catalog, answers catalog.Answers, comments catalog.Comments) []CategoryAnswers {
	out := []CategoryAnswers{}
	for _, cat := range c.Categories {
		var details []AnswerDetail
		for _, q := range cat.Questions {
			v := answers[q.ID]
			if v == 0 {
				continue
			}
			text, ok := q.OptionText(v)
			if !ok {
				text = fmt.Sprintf("Level %d", v)
			}
			var comment *string
			if cm := comments[q.ID]; cm != "" {
				comment = &cm
			}
			details = append(details, AnswerDetail{
				QuestionID: q.ID,
				Question:   q.Text,
				Answer:     v,
				AnswerText: text,
				Comment:    comment,
			})
		}
		if len(details) == 0 {
			continue
		}
		out = append(out, CategoryAnswers{
			CategoryID:          cat.ID,
			CategoryName:        cat.Name,
			CategoryDescription: cat.Description,
			Answers:             details,
		})
	}
	return out
}

type baselineRow struct {
	ID    string
	Score float64
}

// BuildAnalysisPrompt renders the analysis instruction for a submission.
func BuildAnalysisPrompt(c catalog.Catalog, answers catalog.Answers, comments catalog.Comments) (string, error) {
	formatted, err := json.MarshalIndent(FormatAnswers(c, answers, comments), "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode assessment data: %w", err)
	}

	baseline := catalog.BaselineScores(c, answers)
	rows := make([]baselineRow, 0, len(baseline.Categories))
	for _, cat := range c.Categories {
		if score, ok := baseline.Categories[cat.ID]; ok {
			rows = append(rows, baselineRow{ID: cat.ID, Score: score})
		}
	}

	var sb strings.Builder
	err = analysisTemplate.Execute(&sb, struct {
		AssessmentJSON string
		Baseline       catalog.Baseline
		BaselineRows   []baselineRow
	}{
		AssessmentJSON: string(formatted),
		Baseline:       baseline,
		BaselineRows:   rows,
	})
	if err != nil {
		return "", fmt.Errorf("render analysis prompt: %w", err)
	}
	return sb.String(), nil
}

// BuildRecommendationsPrompt renders the recommendation instruction.
func BuildRecommendationsPrompt(current []string, org OrganizationContext) (string, error) {
	focus := make([]string, 0, len(org.FocusAreas))
	for _, f := range org.FocusAreas {
		if strings.TrimSpace(f) != "" {
			focus = append(focus, f)
		}
	}
	data := struct {
		Current       []string
		MaturityLevel string
		FocusAreas    string
		Industry      string
	}{
		Current:       current,
		MaturityLevel: orDefault(org.MaturityLevel, UnknownMaturity),
		FocusAreas:    orDefault(strings.Join(focus, ", "), "General"),
		Industry:      orDefault(org.Industry, "General"),
	}

	var sb strings.Builder
	if err := recommendationsTemplate.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render recommendations prompt: %w", err)
	}
	return sb.String(), nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
