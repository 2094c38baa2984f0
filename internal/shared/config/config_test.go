package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "COMPLETION_MODEL", "RESULT_STORE", "COMPLETION_PROVIDER", "CORS_ALLOW_ORIGINS", "ALLOWED_ORIGINS", "CONFIG_FILE", "LAB45_API_KEY"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, "document", cfg.ResultStore)
	assert.Equal(t, "lab45", cfg.Completion.Provider)
	assert.Equal(t, "gpt-4", cfg.Completion.Model)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowOrigin)
	assert.Equal(t, 120*time.Second, cfg.Completion.Timeout)
	assert.False(t, cfg.Completion.Configured())
}

func TestLoadProviderKeySelection(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("COMPLETION_PROVIDER", "OpenAI")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("LAB45_API_KEY", "lab-key")
	t.Setenv("COMPLETION_MODEL", "")

	cfg := Load()

	assert.Equal(t, "openai", cfg.Completion.Provider)
	assert.Equal(t, "sk-test", cfg.Completion.APIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.Completion.Model)
	assert.True(t, cfg.Completion.Configured())
}

func TestLoadSubmitRateLimit(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	cases := []struct {
		raw  string
		want int
	}{
		{raw: "", want: 30},
		{raw: "0", want: 0},
		{raw: "12", want: 12},
		{raw: "-5", want: 30},
		{raw: "lots", want: 30},
	}
	for _, tc := range cases {
		t.Run("value="+tc.raw, func(t *testing.T) {
			t.Setenv("RATE_LIMIT_SUBMIT_PER_MIN", tc.raw)
			assert.Equal(t, tc.want, Load().SubmitRatePerMin)
		})
	}
}

func TestLoadAppliesYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `
server:
  port: "9090"
storage:
  resultStore: sqlite
  sqlitePath: /tmp/results.db
completion:
  provider: gemini
  timeoutSeconds: 15
fallbackFile: /etc/fallbacks.yaml
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("PORT", "")
	t.Setenv("COMPLETION_MODEL", "")

	cfg := Load()

	assert.True(t, cfg.FileOverridesUsed)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "sqlite", cfg.ResultStore)
	assert.Equal(t, "/tmp/results.db", cfg.SQLitePath)
	assert.Equal(t, "gemini", cfg.Completion.Provider)
	assert.Equal(t, "g-key", cfg.Completion.APIKey)
	assert.Equal(t, "gemini-2.0-flash", cfg.Completion.Model)
	assert.Equal(t, 15*time.Second, cfg.Completion.Timeout)
	assert.Equal(t, "/etc/fallbacks.yaml", cfg.FallbackFile)
}

func TestNormalizeResultStore(t *testing.T) {
	tests := map[string]string{
		"":         "document",
		"pg":       "postgres",
		"Postgres": "postgres",
		"sqlite":   "sqlite",
		"memory":   "memory",
		"bogus":    "document",
	}
	for in, want := range tests {
		if got := normalizeResultStore(in); got != want {
			t.Fatalf("normalizeResultStore(%q) = %q, want %q", in, got, want)
		}
	}
}
