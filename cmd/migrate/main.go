package main

// Run database migrations for the configured result store:
//   go run ./cmd/migrate

import (
	"context"
	"database/sql"
	"log"
	"os"
	"path/filepath"

	"hrmaturity-backend/internal/shared/config"
	"hrmaturity-backend/internal/shared/storage/db"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	var (
		sqlDB   *sql.DB
		dialect string
		err     error
	)
	switch cfg.ResultStore {
	case "sqlite":
		path := cfg.SQLitePath
		if path == "" {
			path = filepath.Join(cfg.DataDir, "results.db")
		}
		dialect = db.DialectSQLite
		sqlDB, err = db.OpenSQLite(ctx, path)
	default:
		dialect = db.DialectPostgres
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
	}
	if err != nil {
		log.Printf("failed to connect database: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB, dialect); err != nil {
		log.Printf("failed to run migrations: %v", err)
		os.Exit(1)
	}
	log.Printf("migrations applied (%s)", dialect)
}
