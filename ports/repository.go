// Package ports defines the interfaces between the application services
// and their adapters.
package ports

import (
	"context"
	"encoding/json"

	"ecostat/domain/core"
	"ecostat/domain/dataset"
)

// DatasetRepository persists generated synthetic tables
type DatasetRepository interface {
	Save(ctx context.Context, table *dataset.Table) error
	GetByID(ctx context.Context, id core.DatasetID) (*dataset.Table, error)
	List(ctx context.Context, limit, offset int) ([]*dataset.Table, error)
}

// Analysis kinds stored by the analysis repository
const (
	AnalysisKindFishSurvey   = "fish_survey"
	AnalysisKindWaterQuality = "water_quality"
	AnalysisKindBootstrap    = "bootstrap"
)

// AnalysisRecord is a stored walkthrough or ad-hoc analysis result.
// Payload holds the full report JSON; Kind selects its shape.
type AnalysisRecord struct {
	ID        core.AnalysisID `json:"id"`
	Kind      string          `json:"kind"`
	Seed      int64           `json:"seed"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt core.Timestamp  `json:"created_at"`
}

// AnalysisRepository persists analysis results
type AnalysisRepository interface {
	Save(ctx context.Context, record *AnalysisRecord) error
	GetByID(ctx context.Context, id core.AnalysisID) (*AnalysisRecord, error)
	ListByKind(ctx context.Context, kind string, limit, offset int) ([]*AnalysisRecord, error)
}
