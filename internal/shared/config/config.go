package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration.
type Config struct {
	Port              string
	Env               string
	Version           string
	CORSAllowOrigin   []string
	DataDir           string
	ObjectStoreType   string
	AWSRegion         string
	S3Bucket          string
	S3Prefix          string
	ResultStore       string
	DatabaseURL       string
	SQLitePath        string
	Completion        CompletionConfig
	FallbackFile      string
	AdminToken        string
	SubmitRatePerMin  int
	ConfigFile        string
	FileOverridesUsed bool
}

// CompletionConfig selects and parameterizes the remote completion service.
type CompletionConfig struct {
	Provider string
	Model    string
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

// Configured reports whether the completion provider has credentials.
func (c CompletionConfig) Configured() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// fileConfig mirrors the optional YAML config file. Only non-empty values override
// the environment.
type fileConfig struct {
	Server struct {
		Port        string   `yaml:"port"`
		CORSOrigins []string `yaml:"corsOrigins"`
	} `yaml:"server"`
	Storage struct {
		DataDir     string `yaml:"dataDir"`
		ObjectStore string `yaml:"objectStore"`
		ResultStore string `yaml:"resultStore"`
		S3Bucket    string `yaml:"s3Bucket"`
		S3Prefix    string `yaml:"s3Prefix"`
		SQLitePath  string `yaml:"sqlitePath"`
	} `yaml:"storage"`
	Completion struct {
		Provider       string `yaml:"provider"`
		Model          string `yaml:"model"`
		Endpoint       string `yaml:"endpoint"`
		TimeoutSeconds int    `yaml:"timeoutSeconds"`
	} `yaml:"completion"`
	FallbackFile string `yaml:"fallbackFile"`
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	provider := normalizeProvider(getEnv("COMPLETION_PROVIDER", "lab45"))
	cfg := Config{
		Port:            getEnv("PORT", "3001"),
		Env:             normalizeEnv(getEnv("ENV", "dev")),
		Version:         getEnv("APP_VERSION", "1.0.0"),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", getEnv("ALLOWED_ORIGINS", "http://localhost:3000"))),
		DataDir:         getEnv("DATA_DIR", "./data"),
		ObjectStoreType: normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		AWSRegion:       getEnv("AWS_REGION", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", ""),
		ResultStore:     normalizeResultStore(getEnv("RESULT_STORE", "document")),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		SQLitePath:      getEnv("SQLITE_PATH", ""),
		Completion: CompletionConfig{
			Provider: provider,
			Model:    getEnv("COMPLETION_MODEL", defaultModelFor(provider)),
			Endpoint: getEnv("COMPLETION_ENDPOINT", ""),
			APIKey:   apiKeyFor(provider),
			Timeout:  time.Duration(getEnvInt("COMPLETION_TIMEOUT_SECONDS", 120)) * time.Second,
		},
		FallbackFile:     getEnv("FALLBACK_FILE", ""),
		AdminToken:       getEnv("ADMIN_TOKEN", ""),
		SubmitRatePerMin: getEnvNonNegInt("RATE_LIMIT_SUBMIT_PER_MIN", 30),
		ConfigFile:       getEnv("CONFIG_FILE", ""),
	}

	if cfg.ConfigFile != "" {
		if err := cfg.applyFile(cfg.ConfigFile); err != nil {
			fmt.Fprintf(os.Stderr, "config: ignoring %s: %v\n", cfg.ConfigFile, err)
		}
	}
	return cfg
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}

	override := func(dst *string, v string) {
		if strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	override(&c.Port, fc.Server.Port)
	if len(fc.Server.CORSOrigins) > 0 {
		c.CORSAllowOrigin = fc.Server.CORSOrigins
	}
	override(&c.DataDir, fc.Storage.DataDir)
	if fc.Storage.ObjectStore != "" {
		c.ObjectStoreType = normalizeStoreType(fc.Storage.ObjectStore)
	}
	if fc.Storage.ResultStore != "" {
		c.ResultStore = normalizeResultStore(fc.Storage.ResultStore)
	}
	override(&c.S3Bucket, fc.Storage.S3Bucket)
	override(&c.S3Prefix, fc.Storage.S3Prefix)
	override(&c.SQLitePath, fc.Storage.SQLitePath)
	if fc.Completion.Provider != "" {
		c.Completion.Provider = normalizeProvider(fc.Completion.Provider)
		c.Completion.APIKey = apiKeyFor(c.Completion.Provider)
		if os.Getenv("COMPLETION_MODEL") == "" {
			c.Completion.Model = defaultModelFor(c.Completion.Provider)
		}
	}
	override(&c.Completion.Model, fc.Completion.Model)
	override(&c.Completion.Endpoint, fc.Completion.Endpoint)
	if fc.Completion.TimeoutSeconds > 0 {
		c.Completion.Timeout = time.Duration(fc.Completion.TimeoutSeconds) * time.Second
	}
	override(&c.FallbackFile, fc.FallbackFile)
	c.FileOverridesUsed = true
	return nil
}

func apiKeyFor(provider string) string {
	switch provider {
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	case "gemini":
		return os.Getenv("GEMINI_API_KEY")
	default:
		return os.Getenv("LAB45_API_KEY")
	}
}

func defaultModelFor(provider string) string {
	switch provider {
	case "gemini":
		return "gemini-2.0-flash"
	case "openai":
		return "gpt-4o-mini"
	default:
		return "gpt-4"
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

// getEnvNonNegInt is getEnvInt for settings where 0 means off.
func getEnvNonNegInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}

func normalizeResultStore(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "postgres", "pg":
		return "postgres"
	case "sqlite":
		return "sqlite"
	case "memory":
		return "memory"
	default:
		return "document"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "openai":
		return "openai"
	case "gemini", "google":
		return "gemini"
	default:
		return "lab45"
	}
}
