// Package report renders a stored assessment result as Markdown, HTML or terminal text.
package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"text/template"

	"github.com/charmbracelet/glamour"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"hrmaturity-backend/internal/analysis"
	"hrmaturity-backend/internal/catalog"
)

//go:embed templates/report.md.tmpl
var markdownTemplate string

var tmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"score": formatScore,
	"inc":   func(i int) int { return i + 1 },
}).Parse(markdownTemplate))

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// Input is everything a report shows.
type Input struct {
	ResultID         string
	OrganizationName string
	SubmittedAt      string
	Analysis         analysis.Analysis
	Catalog          catalog.Catalog
	Baseline         catalog.Baseline
}

type categoryRow struct {
	Name     string
	Score    string
	Baseline string
}

type view struct {
	Input
	Categories []categoryRow
	Answered   int
}

// Markdown renders the report source.
func Markdown(in Input) (string, error) {
	v := view{Input: in, Categories: categoryRows(in), Answered: in.Baseline.Answered}
	v.OrganizationName = escapeInline(in.OrganizationName)
	if v.Analysis.MaturityLevel == "" {
		v.Analysis.MaturityLevel = analysis.UnknownMaturity
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, v); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return buf.String(), nil
}

// HTML renders the report as a standalone HTML page. Raw HTML in the source is
// dropped by the renderer.
func HTML(in Input) ([]byte, error) {
	md, err := Markdown(in)
	if err != nil {
		return nil, err
	}
	var body bytes.Buffer
	if err := markdown.Convert([]byte(md), &body); err != nil {
		return nil, fmt.Errorf("convert report: %w", err)
	}
	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n<title>HR Maturity Report</title>\n</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}

// Terminal renders the report for a terminal. style is a glamour standard style name
// ("dark", "light", "notty"); empty picks one from the environment.
func Terminal(in Input, style string, width int) (string, error) {
	md, err := Markdown(in)
	if err != nil {
		return "", err
	}
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("terminal renderer: %w", err)
	}
	return r.Render(md)
}

// categoryRows lists catalog categories in order, then any extra categories the
// analysis scored, alphabetically.
func categoryRows(in Input) []categoryRow {
	var rows []categoryRow
	seen := map[string]bool{}
	for _, cat := range in.Catalog.Categories {
		seen[cat.ID] = true
		rows = append(rows, categoryRow{
			Name:     escapeInline(cat.Name),
			Score:    lookupScore(in.Analysis.CategoryScores, cat.ID),
			Baseline: lookupScore(in.Baseline.Categories, cat.ID),
		})
	}
	var extra []string
	for id := range in.Analysis.CategoryScores {
		if !seen[id] {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	for _, id := range extra {
		rows = append(rows, categoryRow{
			Name:     escapeInline(id),
			Score:    lookupScore(in.Analysis.CategoryScores, id),
			Baseline: "-",
		})
	}
	return rows
}

func lookupScore(scores map[string]float64, id string) string {
	v, ok := scores[id]
	if !ok {
		return "-"
	}
	return formatScore(v)
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

var inlineEscaper = strings.NewReplacer("|", `\|`, "\n", " ", "\r", " ")

func escapeInline(s string) string {
	return inlineEscaper.Replace(s)
}
