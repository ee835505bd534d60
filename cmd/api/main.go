package main

import (
	"context"
	"log"
	"net/http"

	"ecostat/adapters/postgres"
	"ecostat/app"
	"ecostat/internal"
	"ecostat/internal/api"
	"ecostat/internal/config"
	"ecostat/internal/migration"
	"ecostat/ports"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewDefaultLogger()

	var analyses ports.AnalysisRepository
	var datasets ports.DatasetRepository
	if appConfig.Database.Enabled {
		db, err := sqlx.Connect("postgres", appConfig.Database.URL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := migration.NewRunner().Run(context.Background(), db); err != nil {
			log.Fatalf("Database migration failed: %v", err)
		}

		analyses = postgres.NewAnalysisRepository(db)
		datasets = postgres.NewDatasetRepository(db)
		logger.Info("database connected and schema applied")
	} else {
		logger.Warn("DATABASE_URL not set, analyses will not be persisted")
	}

	fish := app.NewFishSurveyService(appConfig.Analysis, logger)
	water := app.NewWaterQualityService(appConfig.Analysis, logger)
	handler := api.NewHandler(fish, water, analyses, datasets, appConfig.Analysis, logger)

	addr := ":" + appConfig.Server.Port
	logger.Info("JSON API listening on %s", addr)
	if err := http.ListenAndServe(addr, handler.Router()); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
