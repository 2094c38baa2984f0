package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrmaturity-backend/internal/assessments"
	"hrmaturity-backend/internal/bootstrap"
	"hrmaturity-backend/internal/catalog"
	"hrmaturity-backend/internal/shared/config"
)

// testLoader builds services over a temp data dir shared by every command in a test.
func testLoader(t *testing.T) AppLoader {
	t.Helper()
	cfg := config.Config{
		Version:         "test",
		DataDir:         t.TempDir(),
		ObjectStoreType: "local",
		ResultStore:     "document",
		Completion:      config.CompletionConfig{Provider: "lab45", Model: "gpt-4", Timeout: time.Second},
	}
	return func(ctx context.Context) (*bootstrap.App, error) {
		return bootstrap.BuildServices(ctx, cfg)
	}
}

func run(t *testing.T, load AppLoader, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand(load)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(t.Context())
	return out.String(), err
}

func submit(t *testing.T, load AppLoader, org string) assessments.Result {
	t.Helper()
	app, err := load(t.Context())
	require.NoError(t, err)
	defer app.Close()
	res, _, err := app.AssessmentService.Submit(t.Context(), assessments.Submission{
		OrganizationName: org,
		Answers:          catalog.Answers{"p1": 3, "h1": 4},
	})
	require.NoError(t, err)
	return res
}

func TestCatalogExportAndValidate(t *testing.T) {
	load := testLoader(t)

	out, err := run(t, load, "catalog", "export")
	require.NoError(t, err)
	var c catalog.Catalog
	require.NoError(t, json.Unmarshal([]byte(out), &c))
	assert.Equal(t, "default", c.ID)

	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(out), 0o644))
	out, err = run(t, load, "catalog", "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "ok: 5 categories, 8 questions")
}

func TestCatalogValidateRejectsBadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	body := `{"id":"x","categories":[{"id":"a","name":"A","questions":[{"id":"q","category":"b","options":[{"value":9,"text":"?"}]}]}]}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	_, err := run(t, testLoader(t), "catalog", "validate", path)
	assert.ErrorIs(t, err, catalog.ErrInvalidCatalog)
}

func TestResultsListAndShow(t *testing.T) {
	load := testLoader(t)

	out, err := run(t, load, "results", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No results stored.")

	first := submit(t, load, "Acme")
	submit(t, load, "Globex")

	out, err = run(t, load, "results", "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "ORGANIZATION")
	assert.Contains(t, lines[1], "Acme")
	assert.Contains(t, lines[1], "3.2")
	assert.Contains(t, lines[2], "Globex")

	out, err = run(t, load, "results", "show", first.ID, "--markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "# HR Maturity Assessment: Acme")
	assert.Contains(t, out, "| People & Skills | 3.5 | 3.0 |")

	out, err = run(t, load, "results", "show", first.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Strengths")

	_, err = run(t, load, "results", "show", "missing")
	assert.ErrorIs(t, err, assessments.ErrNotFound)
}

func TestPromptPrintsAndRuns(t *testing.T) {
	load := testLoader(t)
	path := filepath.Join(t.TempDir(), "submission.json")
	body := `{"organizationName":"Acme","answers":{"a1":2},"comments":{"a1":"pilot only"}}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	out, err := run(t, load, "prompt", path)
	require.NoError(t, err)
	assert.Contains(t, out, "pilot only")
	assert.Contains(t, out, "AI Adoption")

	outPath := filepath.Join(t.TempDir(), "analysis.json")
	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand(load)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"prompt", path, "--run", "--out", outPath})
	require.NoError(t, cmd.ExecuteContext(t.Context()))

	assert.Contains(t, stderr.String(), "source: fallback")
	assert.Contains(t, stdout.String(), `"overallScore": 3.2`)
	assert.FileExists(t, outPath)
}
