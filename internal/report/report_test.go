package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrmaturity-backend/internal/analysis"
	"hrmaturity-backend/internal/catalog"
)

func testInput(t *testing.T) Input {
	t.Helper()
	c, err := catalog.Seed(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	answers := catalog.Answers{"p1": 3, "p2": 4}
	return Input{
		ResultID:         "1767225600000",
		OrganizationName: "Acme | Co",
		SubmittedAt:      "2026-01-01T00:00:00.000Z",
		Analysis:         analysis.DefaultFallbacks().Analysis,
		Catalog:          c,
		Baseline:         catalog.BaselineScores(c, answers),
	}
}

func TestMarkdownIncludesScoresAndBaseline(t *testing.T) {
	md, err := Markdown(testInput(t))
	require.NoError(t, err)

	assert.Contains(t, md, `# HR Maturity Assessment: Acme \| Co`)
	assert.Contains(t, md, "**Overall score:** 3.2 / 5")
	assert.Contains(t, md, "| People & Skills | 3.5 | 3.5 |")
	assert.Contains(t, md, "| Processes | 2.8 | - |")
	assert.Contains(t, md, "| systems-technology | 3.0 | - |")
	assert.Contains(t, md, "- Good foundation in digital literacy")
	assert.Contains(t, md, "### Automate routine HR processes")
	assert.Contains(t, md, "1. Conduct detailed AI readiness assessment")
	assert.Contains(t, md, "weighted mean of 2 submitted answers")
}

func TestMarkdownDefaultsMaturityLevel(t *testing.T) {
	in := testInput(t)
	in.Analysis = analysis.Analysis{}
	md, err := Markdown(in)
	require.NoError(t, err)
	assert.Contains(t, md, "**Maturity level:** Unknown")
	assert.NotContains(t, md, "## Strengths")
}

func TestHTMLRendersTableAndDropsRawHTML(t *testing.T) {
	in := testInput(t)
	in.OrganizationName = "<script>alert(1)</script>"
	page, err := HTML(in)
	require.NoError(t, err)

	html := string(page)
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<h2>Strengths</h2>")
	assert.NotContains(t, html, "<script>")
}

func TestTerminalRendersPlainStyle(t *testing.T) {
	out, err := Terminal(testInput(t), "notty", 100)
	require.NoError(t, err)
	assert.Contains(t, out, "Strengths")
	assert.Contains(t, out, "Develop data governance framework")
}
