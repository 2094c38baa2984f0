package assessments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hrmaturity-backend/internal/analysis"
	"hrmaturity-backend/internal/catalog"
	"hrmaturity-backend/internal/report"
	"hrmaturity-backend/internal/shared/metrics"
	"hrmaturity-backend/internal/shared/telemetry"
	"hrmaturity-backend/internal/shared/util"
)

const appendAttempts = 3

// Service runs the submission flow and reads stored results.
type Service struct {
	Repo     Repo
	Catalog  catalog.Repo
	Analyzer *analysis.Analyzer
	IDs      *IDGenerator
}

// NewService constructs a Service.
func NewService(repo Repo, questions catalog.Repo, analyzer *analysis.Analyzer) *Service {
	return &Service{Repo: repo, Catalog: questions, Analyzer: analyzer, IDs: NewIDGenerator()}
}

// Submit analyzes a submission and appends the result. A failing completion service
// never fails the submission; the fallback analysis is stored instead.
func (s *Service) Submit(ctx context.Context, sub Submission) (Result, analysis.Source, error) {
	if strings.TrimSpace(sub.OrganizationName) == "" || sub.Answers == nil {
		return Result{}, "", ErrMissingFields
	}
	comments := sub.Comments
	if comments == nil {
		comments = catalog.Comments{}
	}

	res, source, err := s.submit(ctx, sub.OrganizationName, sub.Answers, comments)
	if err != nil {
		metrics.IncSubmissionsFailed()
		telemetry.Error("assessment.submit_failed", map[string]any{
			"organization": sub.OrganizationName,
			"err":          err,
		})
		return Result{}, "", err
	}
	metrics.IncSubmissions()
	telemetry.Info("assessment.submitted", map[string]any{
		"result_id":    res.ID,
		"organization": res.OrganizationName,
		"answers":      len(res.Answers),
		"source":       string(source),
	})
	return res, source, nil
}

func (s *Service) submit(ctx context.Context, org string, answers catalog.Answers, comments catalog.Comments) (Result, analysis.Source, error) {
	questions, err := s.Catalog.Load(ctx)
	if err != nil {
		return Result{}, "", fmt.Errorf("load catalog: %w", err)
	}
	prompt, err := analysis.BuildAnalysisPrompt(questions, answers, comments)
	if err != nil {
		return Result{}, "", err
	}
	outcome := s.Analyzer.Analyze(ctx, prompt)

	for attempt := 1; ; attempt++ {
		id, at := s.IDs.Next()
		res := Result{
			ID:               id,
			OrganizationName: org,
			SubmittedAt:      util.ISOTimestamp(at),
			Answers:          answers,
			Comments:         comments,
			Analysis:         outcome.Analysis,
		}
		err := s.Repo.Append(ctx, res)
		if err == nil {
			return res, outcome.Source, nil
		}
		if !errors.Is(err, ErrDuplicateID) || attempt >= appendAttempts {
			return Result{}, "", fmt.Errorf("append result: %w", err)
		}
	}
}

// Get returns one stored result.
func (s *Service) Get(ctx context.Context, id string) (Result, error) {
	return s.Repo.GetByID(ctx, id)
}

// Summaries returns every stored result projected for listing, in append order.
func (s *Service) Summaries(ctx context.Context) ([]Summary, error) {
	results, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Summary, 0, len(results))
	for _, r := range results {
		out = append(out, Summarize(r))
	}
	return out, nil
}

// ReportInput assembles report content for a stored result. The baseline is computed
// against the current catalog; without a catalog the report omits it.
func (s *Service) ReportInput(ctx context.Context, res Result) report.Input {
	in := report.Input{
		ResultID:         res.ID,
		OrganizationName: res.OrganizationName,
		SubmittedAt:      res.SubmittedAt,
		Analysis:         analysis.View(res.Analysis),
	}
	questions, err := s.Catalog.Load(ctx)
	if err != nil {
		telemetry.Warn("report.catalog_unavailable", map[string]any{"result_id": res.ID, "err": err})
		return in
	}
	in.Catalog = questions
	in.Baseline = catalog.BaselineScores(questions, res.Answers)
	return in
}
