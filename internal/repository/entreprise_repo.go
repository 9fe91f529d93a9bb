package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rmercier/mission-docs/internal/models"
	"go.uber.org/zap"
)

// EntrepriseRepository handles client company database operations
type EntrepriseRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewEntrepriseRepository creates a new company repository
func NewEntrepriseRepository(db *sql.DB, logger *zap.Logger) *EntrepriseRepository {
	return &EntrepriseRepository{
		db:     db,
		logger: logger,
	}
}

// GetByID retrieves a company by ID, nil when not found
func (r *EntrepriseRepository) GetByID(ctx context.Context, id string) (*models.Entreprise, error) {
	query := `
		SELECT id, nom, adresse, code_postal, ville, pays, siret, code_ape,
			tva_intracommunautaire, telephone, site_web
		FROM entreprises
		WHERE id = ?
	`

	var e models.Entreprise
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&e.ID,
		&e.Nom,
		&e.Adresse,
		&e.CodePostal,
		&e.Ville,
		&e.Pays,
		&e.Siret,
		&e.CodeAPE,
		&e.TVAIntracom,
		&e.Telephone,
		&e.SiteWeb,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get company", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	return &e, nil
}

// Create inserts a company record
func (r *EntrepriseRepository) Create(ctx context.Context, e *models.Entreprise) error {
	query := `
		INSERT INTO entreprises (
			id, nom, adresse, code_postal, ville, pays, siret, code_ape,
			tva_intracommunautaire, telephone, site_web
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.Nom, e.Adresse, e.CodePostal, e.Ville, e.Pays, e.Siret,
		e.CodeAPE, e.TVAIntracom, e.Telephone, e.SiteWeb,
	)
	if err != nil {
		r.logger.Error("Failed to create company", zap.String("id", e.ID), zap.Error(err))
		return fmt.Errorf("failed to create company: %w", err)
	}

	return nil
}
