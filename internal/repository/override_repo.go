package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// OverrideRepository stores operator-supplied tag values per mission. These
// feed the resolver on later generation runs; owning entity records are never
// mutated by the generation path.
type OverrideRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOverrideRepository creates a new tag override repository
func NewOverrideRepository(db *sql.DB, logger *zap.Logger) *OverrideRepository {
	return &OverrideRepository{
		db:     db,
		logger: logger,
	}
}

// GetByMission retrieves all persisted overrides of a mission
func (r *OverrideRepository) GetByMission(ctx context.Context, missionID string) (map[string]string, error) {
	query := `SELECT tag, value FROM mission_tag_overrides WHERE mission_id = ?`

	rows, err := r.db.QueryContext(ctx, query, missionID)
	if err != nil {
		r.logger.Error("Failed to get tag overrides", zap.String("mission_id", missionID), zap.Error(err))
		return nil, fmt.Errorf("failed to get tag overrides: %w", err)
	}
	defer rows.Close()

	overrides := make(map[string]string)
	for rows.Next() {
		var tag, value string
		if err := rows.Scan(&tag, &value); err != nil {
			return nil, fmt.Errorf("failed to scan tag override: %w", err)
		}
		overrides[tag] = value
	}

	return overrides, rows.Err()
}

// Upsert stores overrides for a mission, replacing existing values per tag
func (r *OverrideRepository) Upsert(ctx context.Context, missionID string, overrides map[string]string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	for tag, value := range overrides {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO mission_tag_overrides (mission_id, tag, value)
			VALUES (?, ?, ?)
			ON CONFLICT(mission_id, tag) DO UPDATE SET value = excluded.value
		`, missionID, tag, value); err != nil {
			_ = tx.Rollback()
			r.logger.Error("Failed to upsert tag override",
				zap.String("mission_id", missionID),
				zap.String("tag", tag),
				zap.Error(err))
			return fmt.Errorf("failed to upsert tag override: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tag overrides: %w", err)
	}

	return nil
}
