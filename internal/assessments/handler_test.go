package assessments

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fallbackMaturity = "Transitioning - Moving from traditional to modern HR practices"

func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestSubmitMissingFieldsDoesNotAppend(t *testing.T) {
	repo := NewMemoryRepo()
	provider := &stubProvider{err: errors.New("unreachable")}
	r := newTestRouter(newTestService(t, repo, provider))

	bodies := []string{
		"",
		`{"organizationName":"Acme"}`,
		`{"answers":{"p1":3}}`,
		`{"organizationName":"","answers":{"p1":3}}`,
		`{"organizationName":"Acme","answers":null}`,
		`{"organizationName":"Acme","answers":{"p1":"three"}}`,
		`{"organizationName":`,
	}
	for _, body := range bodies {
		resp := doRequest(r, http.MethodPost, "/api/submit-assessment", body)
		assert.Equal(t, http.StatusBadRequest, resp.Code, body)
		assert.JSONEq(t, `{"error":"Missing required fields"}`, resp.Body.String(), body)
	}

	stored, err := repo.List(t.Context())
	require.NoError(t, err)
	assert.Empty(t, stored)
	assert.Zero(t, provider.calls)
}

func TestSubmitUnreachableServiceStoresFallback(t *testing.T) {
	repo := NewMemoryRepo()
	r := newTestRouter(newTestService(t, repo, &stubProvider{err: errors.New("dial tcp: connection refused")}))

	resp := doRequest(r, http.MethodPost, "/api/submit-assessment", `{"organizationName":"Acme","answers":{"p1":3,"a1":2}}`)
	require.Equal(t, http.StatusOK, resp.Code)

	var payload struct {
		Success bool `json:"success"`
		Result  struct {
			ID       string            `json:"id"`
			Comments map[string]string `json:"comments"`
			Analysis struct {
				OverallScore  float64 `json:"overallScore"`
				MaturityLevel string  `json:"maturityLevel"`
			} `json:"analysis"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &payload))
	assert.True(t, payload.Success)
	assert.NotEmpty(t, payload.Result.ID)
	assert.Equal(t, map[string]string{}, payload.Result.Comments)
	assert.Equal(t, 3.2, payload.Result.Analysis.OverallScore)
	assert.Equal(t, fallbackMaturity, payload.Result.Analysis.MaturityLevel)

	stored, err := repo.List(t.Context())
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestSubmitThenGetRoundTrips(t *testing.T) {
	analysisDoc := `{"overallScore":4.1,"categoryScores":{"people-skills":4},"maturityLevel":"Advanced","custom":{"kept":true}}`
	provider := &stubProvider{body: `{"choices":[{"message":{"content":` + quote(analysisDoc) + `}}]}`}
	r := newTestRouter(newTestService(t, NewMemoryRepo(), provider))

	body := `{"organizationName":"Acme","answers":{"p1":3,"pr2":5},"comments":{"p1":"remote first"}}`
	submitResp := doRequest(r, http.MethodPost, "/api/submit-assessment", body)
	require.Equal(t, http.StatusOK, submitResp.Code)

	var submitted struct {
		Result map[string]any `json:"result"`
	}
	require.NoError(t, json.Unmarshal(submitResp.Body.Bytes(), &submitted))
	id, _ := submitted.Result["id"].(string)
	require.NotEmpty(t, id)

	getResp := doRequest(r, http.MethodGet, "/api/results/"+id, "")
	require.Equal(t, http.StatusOK, getResp.Code)
	var fetched map[string]any
	require.NoError(t, json.Unmarshal(getResp.Body.Bytes(), &fetched))

	if diff := cmp.Diff(submitted.Result, fetched); diff != "" {
		t.Fatalf("round trip mismatch (-submitted +fetched):\n%s", diff)
	}
	assert.Equal(t, map[string]any{"p1": float64(3), "pr2": float64(5)}, fetched["answers"])
	assert.Equal(t, map[string]any{"p1": "remote first"}, fetched["comments"])

	var wantAnalysis map[string]any
	require.NoError(t, json.Unmarshal([]byte(analysisDoc), &wantAnalysis))
	assert.Equal(t, wantAnalysis, fetched["analysis"])
}

func TestListOmitsAnswers(t *testing.T) {
	repo := NewMemoryRepo()
	svc := newTestService(t, repo, &stubProvider{err: errors.New("down")})
	r := newTestRouter(svc)

	for _, org := range []string{"Acme", "Globex"} {
		resp := doRequest(r, http.MethodPost, "/api/submit-assessment", `{"organizationName":"`+org+`","answers":{"p1":2}}`)
		require.Equal(t, http.StatusOK, resp.Code)
	}
	require.NoError(t, repo.Append(t.Context(), Result{
		ID:               "1",
		OrganizationName: "Bare",
		SubmittedAt:      "2026-01-01T00:00:00.000Z",
		Answers:          map[string]int{"p1": 1},
		Analysis:         json.RawMessage(`{}`),
	}))

	resp := doRequest(r, http.MethodGet, "/api/results", "")
	require.Equal(t, http.StatusOK, resp.Code)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))
	require.Len(t, list, 3)
	for _, entry := range list {
		assert.NotContains(t, entry, "answers")
		assert.NotContains(t, entry, "comments")
		assert.NotContains(t, entry, "analysis")
	}
	assert.Equal(t, "Acme", list[0]["organizationName"])
	assert.Equal(t, 3.2, list[0]["overallScore"])
	assert.Equal(t, "Bare", list[2]["organizationName"])
	assert.Equal(t, float64(0), list[2]["overallScore"])
	assert.Equal(t, "Unknown", list[2]["maturityLevel"])
}

func TestGetUnknownResult(t *testing.T) {
	r := newTestRouter(newTestService(t, NewMemoryRepo(), &stubProvider{}))
	resp := doRequest(r, http.MethodGet, "/api/results/404", "")
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.JSONEq(t, `{"error":"Result not found"}`, resp.Body.String())
}

func TestStoreFailures(t *testing.T) {
	r := newTestRouter(newTestService(t, failingRepo{err: errors.New("disk gone")}, &stubProvider{err: errors.New("down")}))

	resp := doRequest(r, http.MethodGet, "/api/results", "")
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.JSONEq(t, `{"error":"Failed to fetch results"}`, resp.Body.String())

	resp = doRequest(r, http.MethodGet, "/api/results/1", "")
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.JSONEq(t, `{"error":"Failed to fetch result"}`, resp.Body.String())

	resp = doRequest(r, http.MethodPost, "/api/submit-assessment", `{"organizationName":"Acme","answers":{}}`)
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.JSONEq(t, `{"error":"Failed to submit assessment"}`, resp.Body.String())
}

func TestReportRendersHTML(t *testing.T) {
	repo := NewMemoryRepo()
	r := newTestRouter(newTestService(t, repo, &stubProvider{err: errors.New("down")}))

	submitResp := doRequest(r, http.MethodPost, "/api/submit-assessment", `{"organizationName":"Initech","answers":{"p1":4}}`)
	require.Equal(t, http.StatusOK, submitResp.Code)
	stored, err := repo.List(t.Context())
	require.NoError(t, err)
	require.Len(t, stored, 1)

	resp := doRequest(r, http.MethodGet, "/api/results/"+stored[0].ID+"/report", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, resp.Body.String(), "Initech")
	assert.Contains(t, resp.Body.String(), "<table>")

	resp = doRequest(r, http.MethodGet, "/api/results/missing/report", "")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func quote(s string) string {
	raw, _ := json.Marshal(s)
	return string(raw)
}
