package main

import (
	"context"
	"log"

	"ecostat/app"
	"ecostat/internal"
	"ecostat/internal/config"
	"ecostat/internal/errors"
	"ecostat/internal/migration"
	"ecostat/ui"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// initDatabase initializes the PostgreSQL database connection
func initDatabase(appConfig *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	migrator := migration.NewRunner()
	if err := migrator.Run(context.Background(), db); err != nil {
		return nil, errors.Wrap(err, "database migration failed")
	}

	return db, nil
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewDefaultLogger()

	// Persistence is optional for the UI; the walkthroughs run fully
	// in memory.
	if appConfig.Database.Enabled {
		db, err := initDatabase(appConfig)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer db.Close()
		logger.Info("database connected and schema applied")
	}

	fish := app.NewFishSurveyService(appConfig.Analysis, logger)
	water := app.NewWaterQualityService(appConfig.Analysis, logger)

	server := ui.NewServer(appConfig.Server, fish, water, logger)
	if err := server.Run(appConfig.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
