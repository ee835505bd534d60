package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"ecostat/domain/core"
	"ecostat/domain/dataset"
	"ecostat/ports"

	"github.com/jmoiron/sqlx"
)

// datasetRepository implements the DatasetRepository interface
type datasetRepository struct {
	db *sqlx.DB
}

// NewDatasetRepository creates a new dataset repository
func NewDatasetRepository(db *sqlx.DB) ports.DatasetRepository {
	return &datasetRepository{db: db}
}

// Save inserts a generated table, replacing any previous row with the same ID
func (r *datasetRepository) Save(ctx context.Context, table *dataset.Table) error {
	payload, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("failed to marshal dataset: %w", err)
	}

	query := `INSERT INTO datasets (id, name, seed, payload, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET name = $2, seed = $3, payload = $4`

	_, err = r.db.ExecContext(ctx, query,
		table.ID.String(), table.Name, table.Seed, payload, table.CreatedAt.Time())
	if err != nil {
		return fmt.Errorf("failed to save dataset: %w", err)
	}

	return nil
}

// GetByID retrieves a dataset by its ID
func (r *datasetRepository) GetByID(ctx context.Context, id core.DatasetID) (*dataset.Table, error) {
	query := `SELECT payload FROM datasets WHERE id = $1`

	var payload []byte
	err := r.db.QueryRowContext(ctx, query, id.String()).Scan(&payload)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, core.NewNotFoundError("dataset", id.String())
		}
		return nil, fmt.Errorf("failed to get dataset: %w", err)
	}

	var table dataset.Table
	if err := json.Unmarshal(payload, &table); err != nil {
		return nil, fmt.Errorf("failed to unmarshal dataset: %w", err)
	}

	return &table, nil
}

// List returns stored datasets, newest first
func (r *datasetRepository) List(ctx context.Context, limit, offset int) ([]*dataset.Table, error) {
	query := `SELECT payload FROM datasets ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list datasets: %w", err)
	}
	defer rows.Close()

	var tables []*dataset.Table
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan dataset row: %w", err)
		}
		var table dataset.Table
		if err := json.Unmarshal(payload, &table); err != nil {
			return nil, fmt.Errorf("failed to unmarshal dataset: %w", err)
		}
		tables = append(tables, &table)
	}

	return tables, rows.Err()
}
