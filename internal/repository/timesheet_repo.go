package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rmercier/mission-docs/internal/models"
	"go.uber.org/zap"
)

// TimesheetRepository handles timesheet database operations
type TimesheetRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewTimesheetRepository creates a new timesheet repository
func NewTimesheetRepository(db *sql.DB, logger *zap.Logger) *TimesheetRepository {
	return &TimesheetRepository{
		db:     db,
		logger: logger,
	}
}

// GetByMissionID retrieves the timesheet of a mission, nil when none exists
func (r *TimesheetRepository) GetByMissionID(ctx context.Context, missionID string) (*models.FeuilleTemps, error) {
	query := `
		SELECT id, mission_id, heures_total, date_debut, date_fin, detail
		FROM feuilles_temps
		WHERE mission_id = ?
	`

	var t models.FeuilleTemps
	var dateDebut, dateFin sql.NullTime

	err := r.db.QueryRowContext(ctx, query, missionID).Scan(
		&t.ID,
		&t.MissionID,
		&t.HeuresTotal,
		&dateDebut,
		&dateFin,
		&t.Detail,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get timesheet", zap.String("mission_id", missionID), zap.Error(err))
		return nil, fmt.Errorf("failed to get timesheet: %w", err)
	}

	if dateDebut.Valid {
		t.DateDebut = &dateDebut.Time
	}
	if dateFin.Valid {
		t.DateFin = &dateFin.Time
	}

	return &t, nil
}

// Create inserts a timesheet record
func (r *TimesheetRepository) Create(ctx context.Context, t *models.FeuilleTemps) error {
	query := `
		INSERT INTO feuilles_temps (id, mission_id, heures_total, date_debut, date_fin, detail)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.MissionID, t.HeuresTotal,
		nullableTime(t.DateDebut), nullableTime(t.DateFin), t.Detail,
	)
	if err != nil {
		r.logger.Error("Failed to create timesheet", zap.String("id", t.ID), zap.Error(err))
		return fmt.Errorf("failed to create timesheet: %w", err)
	}

	return nil
}
