package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"ecostat/domain/core"
	"ecostat/ports"

	"github.com/jmoiron/sqlx"
)

// analysisRepository implements the AnalysisRepository interface
type analysisRepository struct {
	db *sqlx.DB
}

// NewAnalysisRepository creates a new analysis repository
func NewAnalysisRepository(db *sqlx.DB) ports.AnalysisRepository {
	return &analysisRepository{db: db}
}

// Save inserts a new analysis record
func (r *analysisRepository) Save(ctx context.Context, record *ports.AnalysisRecord) error {
	query := `INSERT INTO analyses (id, kind, seed, payload, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query,
		record.ID.String(), record.Kind, record.Seed, []byte(record.Payload), record.CreatedAt.Time())
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}

	return nil
}

// GetByID retrieves an analysis record by its ID
func (r *analysisRepository) GetByID(ctx context.Context, id core.AnalysisID) (*ports.AnalysisRecord, error) {
	query := `SELECT id, kind, seed, payload, created_at FROM analyses WHERE id = $1`

	record, err := scanRecord(r.db.QueryRowxContext(ctx, query, id.String()))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, core.NewNotFoundError("analysis", id.String())
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	return record, nil
}

// ListByKind returns analyses of one kind, newest first
func (r *analysisRepository) ListByKind(ctx context.Context, kind string, limit, offset int) ([]*ports.AnalysisRecord, error) {
	query := `SELECT id, kind, seed, payload, created_at
		FROM analyses WHERE kind = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryxContext(ctx, query, kind, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var records []*ports.AnalysisRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis row: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// rowScanner covers both sqlx.Row and sqlx.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (*ports.AnalysisRecord, error) {
	var (
		id        string
		kind      string
		seed      int64
		payload   []byte
		createdAt sql.NullTime
	)
	if err := row.Scan(&id, &kind, &seed, &payload, &createdAt); err != nil {
		return nil, err
	}

	record := &ports.AnalysisRecord{
		ID:      core.AnalysisID(id),
		Kind:    kind,
		Seed:    seed,
		Payload: payload,
	}
	if createdAt.Valid {
		record.CreatedAt = core.NewTimestamp(createdAt.Time)
	}
	return record, nil
}
