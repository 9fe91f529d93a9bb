package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rmercier/mission-docs/internal/models"
	"go.uber.org/zap"
)

// MissionTypeRepository handles mission type database operations
type MissionTypeRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMissionTypeRepository creates a new mission type repository
func NewMissionTypeRepository(db *sql.DB, logger *zap.Logger) *MissionTypeRepository {
	return &MissionTypeRepository{
		db:     db,
		logger: logger,
	}
}

// GetByID retrieves a mission type by ID, nil when not found
func (r *MissionTypeRepository) GetByID(ctx context.Context, id string) (*models.MissionType, error) {
	query := `SELECT id, nom, description FROM mission_types WHERE id = ?`

	var t models.MissionType
	err := r.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Nom, &t.Description)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get mission type", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get mission type: %w", err)
	}

	return &t, nil
}

// Create inserts a mission type record
func (r *MissionTypeRepository) Create(ctx context.Context, t *models.MissionType) error {
	query := `INSERT INTO mission_types (id, nom, description) VALUES (?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, t.ID, t.Nom, t.Description)
	if err != nil {
		r.logger.Error("Failed to create mission type", zap.String("id", t.ID), zap.Error(err))
		return fmt.Errorf("failed to create mission type: %w", err)
	}

	return nil
}
