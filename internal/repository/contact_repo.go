package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rmercier/mission-docs/internal/models"
	"go.uber.org/zap"
)

// ContactRepository handles client contact database operations
type ContactRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *sql.DB, logger *zap.Logger) *ContactRepository {
	return &ContactRepository{
		db:     db,
		logger: logger,
	}
}

// GetByID retrieves a contact by ID, nil when not found
func (r *ContactRepository) GetByID(ctx context.Context, id string) (*models.Contact, error) {
	query := `
		SELECT id, civilite, nom, prenom, email, telephone, fonction
		FROM contacts
		WHERE id = ?
	`

	var c models.Contact
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID,
		&c.Civilite,
		&c.Nom,
		&c.Prenom,
		&c.Email,
		&c.Telephone,
		&c.Fonction,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get contact", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	return &c, nil
}

// Create inserts a contact record
func (r *ContactRepository) Create(ctx context.Context, c *models.Contact) error {
	query := `
		INSERT INTO contacts (id, civilite, nom, prenom, email, telephone, fonction)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.Civilite, c.Nom, c.Prenom, c.Email, c.Telephone, c.Fonction,
	)
	if err != nil {
		r.logger.Error("Failed to create contact", zap.String("id", c.ID), zap.Error(err))
		return fmt.Errorf("failed to create contact: %w", err)
	}

	return nil
}
