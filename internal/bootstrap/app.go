package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"hrmaturity-backend/internal/analysis"
	"hrmaturity-backend/internal/assessments"
	"hrmaturity-backend/internal/catalog"
	"hrmaturity-backend/internal/completion"
	"hrmaturity-backend/internal/completion/gemini"
	"hrmaturity-backend/internal/completion/lab45"
	"hrmaturity-backend/internal/completion/openai"
	"hrmaturity-backend/internal/health"
	"hrmaturity-backend/internal/shared/config"
	"hrmaturity-backend/internal/shared/server"
	"hrmaturity-backend/internal/shared/storage/db"
	"hrmaturity-backend/internal/shared/storage/object"
	localstore "hrmaturity-backend/internal/shared/storage/object/local"
	s3store "hrmaturity-backend/internal/shared/storage/object/s3"
	"hrmaturity-backend/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config                config.Config
	Router                *gin.Engine
	DB                    *sql.DB
	Store                 object.DocumentStore
	Provider              completion.Provider
	Fallbacks             analysis.Fallbacks
	CatalogRepo           *catalog.DocumentRepo
	ResultsRepo           assessments.Repo
	CatalogService        *catalog.Service
	AssessmentService     *assessments.Service
	Recommender           *analysis.Recommender
	HealthHandler         *health.Handler
	CatalogHandler        *catalog.Handler
	AssessmentHandler     *assessments.Handler
	RecommendationHandler *analysis.Handler

	closers []func()
}

// Build prepares dependencies, seeds the catalog when missing and wires routes.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	app, err := BuildServices(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.Router = server.NewRouter(server.RouterDeps{
		Config:                app.Config,
		HealthHandler:         app.HealthHandler,
		CatalogHandler:        app.CatalogHandler,
		AssessmentHandler:     app.AssessmentHandler,
		RecommendationHandler: app.RecommendationHandler,
	})
	return app, nil
}

// BuildServices prepares everything except the HTTP router. The CLI and MCP server
// share it with the API.
func BuildServices(ctx context.Context, cfg config.Config) (*App, error) {
	app := &App{Config: cfg}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.Store = store

	app.CatalogRepo = catalog.NewDocumentRepo(store)
	if _, err := app.CatalogRepo.EnsureSeeded(ctx); err != nil {
		return nil, fmt.Errorf("seed catalog: %w", err)
	}

	results, err := app.buildResults(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.ResultsRepo = results

	fallbacks, err := analysis.LoadFallbacks(cfg.FallbackFile)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Fallbacks = fallbacks

	provider, err := buildProvider(ctx, cfg.Completion)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Provider = provider

	analyzer := analysis.NewAnalyzer(provider, cfg.Completion.Model, fallbacks)
	app.CatalogService = catalog.NewService(app.CatalogRepo)
	app.AssessmentService = assessments.NewService(results, app.CatalogRepo, analyzer)
	app.Recommender = analysis.NewRecommender(provider, cfg.Completion.Model, fallbacks)

	app.HealthHandler = health.NewHandler(health.NewService(cfg.Version, cfg.Completion.Configured()))
	app.CatalogHandler = catalog.NewHandler(app.CatalogService)
	app.AssessmentHandler = assessments.NewHandler(app.AssessmentService)
	app.RecommendationHandler = analysis.NewHandler(app.Recommender)

	telemetry.Info("bootstrap.ready", map[string]any{
		"object_store":         cfg.ObjectStoreType,
		"result_store":         cfg.ResultStore,
		"completion_provider":  cfg.Completion.Provider,
		"completion_model":     cfg.Completion.Model,
		"completion_available": cfg.Completion.Configured(),
	})
	return app, nil
}

// Close stops background writers and closes the database.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.DocumentStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.DataDir), nil
	}
}

func (a *App) buildResults(ctx context.Context) (assessments.Repo, error) {
	switch a.Config.ResultStore {
	case "postgres":
		if strings.TrimSpace(a.Config.DatabaseURL) == "" {
			return nil, fmt.Errorf("RESULT_STORE=postgres requires DATABASE_URL")
		}
		conn, err := db.Connect(ctx, a.Config.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			return nil, err
		}
		if err := a.attachDB(ctx, conn, db.DialectPostgres); err != nil {
			return nil, err
		}
		return &assessments.PGRepo{DB: conn}, nil
	case "sqlite":
		path := a.Config.SQLitePath
		if strings.TrimSpace(path) == "" {
			path = filepath.Join(a.Config.DataDir, "results.db")
		}
		conn, err := db.OpenSQLite(ctx, path)
		if err != nil {
			return nil, err
		}
		if err := a.attachDB(ctx, conn, db.DialectSQLite); err != nil {
			return nil, err
		}
		return &assessments.SQLiteRepo{DB: conn}, nil
	case "memory":
		return assessments.NewMemoryRepo(), nil
	default:
		repo := assessments.NewDocumentRepo(a.Store)
		a.closers = append(a.closers, repo.Close)
		if err := repo.Init(ctx); err != nil {
			return nil, fmt.Errorf("init results document: %w", err)
		}
		return repo, nil
	}
}

func (a *App) attachDB(ctx context.Context, conn *sql.DB, dialect string) error {
	a.DB = conn
	a.closers = append(a.closers, func() { _ = conn.Close() })
	if err := db.RunMigrations(ctx, conn, dialect); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func buildProvider(ctx context.Context, cfg config.CompletionConfig) (completion.Provider, error) {
	if !cfg.Configured() {
		telemetry.Warn("completion.unconfigured", map[string]any{"provider": cfg.Provider})
		return completion.Placeholder{}, nil
	}
	switch cfg.Provider {
	case "openai":
		return openai.NewClient(cfg.APIKey, cfg.Model, cfg.Endpoint, cfg.Timeout)
	case "gemini":
		return gemini.NewClient(ctx, cfg.APIKey, cfg.Model, cfg.Endpoint, cfg.Timeout)
	default:
		return lab45.NewClient(cfg.APIKey, cfg.Model, cfg.Endpoint, cfg.Timeout)
	}
}
