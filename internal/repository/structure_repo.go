package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rmercier/mission-docs/internal/models"
	"go.uber.org/zap"
)

// StructureRepository handles structure and member database operations
type StructureRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewStructureRepository creates a new structure repository
func NewStructureRepository(db *sql.DB, logger *zap.Logger) *StructureRepository {
	return &StructureRepository{
		db:     db,
		logger: logger,
	}
}

// GetByID retrieves a structure by ID, nil when not found
func (r *StructureRepository) GetByID(ctx context.Context, id string) (*models.Structure, error) {
	query := `
		SELECT id, nom, sigle, adresse, code_postal, ville, email, telephone,
			siret, numero_urssaf, site_web
		FROM structures
		WHERE id = ?
	`

	var s models.Structure
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID,
		&s.Nom,
		&s.Sigle,
		&s.Adresse,
		&s.CodePostal,
		&s.Ville,
		&s.Email,
		&s.Telephone,
		&s.Siret,
		&s.NumeroURSSAF,
		&s.SiteWeb,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get structure", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get structure: %w", err)
	}

	return &s, nil
}

// ListMembers retrieves all members of a structure
func (r *StructureRepository) ListMembers(ctx context.Context, structureID string) ([]*models.StructureMember, error) {
	query := `
		SELECT id, structure_id, prenom, nom, display_name, role, role_group, mandat
		FROM structure_members
		WHERE structure_id = ?
		ORDER BY nom, prenom
	`

	rows, err := r.db.QueryContext(ctx, query, structureID)
	if err != nil {
		r.logger.Error("Failed to list structure members",
			zap.String("structure_id", structureID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list structure members: %w", err)
	}
	defer rows.Close()

	var members []*models.StructureMember
	for rows.Next() {
		var m models.StructureMember
		var mandat sql.NullString

		err := rows.Scan(
			&m.ID,
			&m.StructureID,
			&m.Prenom,
			&m.Nom,
			&m.DisplayName,
			&m.Role,
			&m.RoleGroup,
			&mandat,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan structure member: %w", err)
		}

		if mandat.Valid {
			m.Mandat = &mandat.String
		}

		members = append(members, &m)
	}

	return members, rows.Err()
}

// Create inserts a structure record
func (r *StructureRepository) Create(ctx context.Context, s *models.Structure) error {
	query := `
		INSERT INTO structures (
			id, nom, sigle, adresse, code_postal, ville, email, telephone,
			siret, numero_urssaf, site_web
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.Nom, s.Sigle, s.Adresse, s.CodePostal, s.Ville, s.Email,
		s.Telephone, s.Siret, s.NumeroURSSAF, s.SiteWeb,
	)
	if err != nil {
		r.logger.Error("Failed to create structure", zap.String("id", s.ID), zap.Error(err))
		return fmt.Errorf("failed to create structure: %w", err)
	}

	return nil
}

// AddMember inserts a structure member record
func (r *StructureRepository) AddMember(ctx context.Context, m *models.StructureMember) error {
	query := `
		INSERT INTO structure_members (
			id, structure_id, prenom, nom, display_name, role, role_group, mandat
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.StructureID, m.Prenom, m.Nom, m.DisplayName, m.Role,
		m.RoleGroup, nullableString(m.Mandat),
	)
	if err != nil {
		r.logger.Error("Failed to add structure member", zap.String("id", m.ID), zap.Error(err))
		return fmt.Errorf("failed to add structure member: %w", err)
	}

	return nil
}
