package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rmercier/mission-docs/internal/models"
	"go.uber.org/zap"
)

// UtilisateurRepository handles student member database operations
type UtilisateurRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUtilisateurRepository creates a new user repository
func NewUtilisateurRepository(db *sql.DB, logger *zap.Logger) *UtilisateurRepository {
	return &UtilisateurRepository{
		db:     db,
		logger: logger,
	}
}

// GetByID retrieves a user by ID, nil when not found
func (r *UtilisateurRepository) GetByID(ctx context.Context, id string) (*models.Utilisateur, error) {
	query := `
		SELECT id, nom, prenom, email, telephone, date_naissance, lieu_naissance,
			adresse, code_postal, ville, numero_secu, ecole, niveau_etudes, nationalite
		FROM utilisateurs
		WHERE id = ?
	`

	var u models.Utilisateur
	var dateNaissance sql.NullTime

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&u.ID,
		&u.Nom,
		&u.Prenom,
		&u.Email,
		&u.Telephone,
		&dateNaissance,
		&u.LieuNaissance,
		&u.Adresse,
		&u.CodePostal,
		&u.Ville,
		&u.NumeroSecu,
		&u.Ecole,
		&u.NiveauEtudes,
		&u.Nationalite,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get user", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if dateNaissance.Valid {
		u.DateNaissance = &dateNaissance.Time
	}

	return &u, nil
}

// Create inserts a user record
func (r *UtilisateurRepository) Create(ctx context.Context, u *models.Utilisateur) error {
	query := `
		INSERT INTO utilisateurs (
			id, nom, prenom, email, telephone, date_naissance, lieu_naissance,
			adresse, code_postal, ville, numero_secu, ecole, niveau_etudes, nationalite
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.Nom, u.Prenom, u.Email, u.Telephone,
		nullableTime(u.DateNaissance), u.LieuNaissance, u.Adresse,
		u.CodePostal, u.Ville, u.NumeroSecu, u.Ecole, u.NiveauEtudes, u.Nationalite,
	)
	if err != nil {
		r.logger.Error("Failed to create user", zap.String("id", u.ID), zap.Error(err))
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}
