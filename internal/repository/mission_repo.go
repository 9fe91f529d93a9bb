package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rmercier/mission-docs/internal/models"
	"go.uber.org/zap"
)

// MissionRepository handles mission database operations
type MissionRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMissionRepository creates a new mission repository
func NewMissionRepository(db *sql.DB, logger *zap.Logger) *MissionRepository {
	return &MissionRepository{
		db:     db,
		logger: logger,
	}
}

// GetByID retrieves a mission by ID, nil when not found
func (r *MissionRepository) GetByID(ctx context.Context, id string) (*models.Mission, error) {
	query := `
		SELECT id, numero, titre, description, lieu, structure_id, contact_id,
			entreprise_id, type_id, charge_id, etudiant_id, taux_horaire,
			nb_heures, acompte, nb_etudiants, duree_semaines, date_debut,
			date_fin, date_signature, date_paiement, created_at
		FROM missions
		WHERE id = ?
	`

	var m models.Mission
	var dateDebut, dateFin, dateSignature, datePaiement sql.NullTime

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&m.ID,
		&m.Numero,
		&m.Titre,
		&m.Description,
		&m.Lieu,
		&m.StructureID,
		&m.ContactID,
		&m.EntrepriseID,
		&m.TypeID,
		&m.ChargeID,
		&m.EtudiantID,
		&m.TauxHoraire,
		&m.NbHeures,
		&m.Acompte,
		&m.NbEtudiants,
		&m.DureeSemaines,
		&dateDebut,
		&dateFin,
		&dateSignature,
		&datePaiement,
		&m.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get mission", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get mission: %w", err)
	}

	if dateDebut.Valid {
		m.DateDebut = &dateDebut.Time
	}
	if dateFin.Valid {
		m.DateFin = &dateFin.Time
	}
	if dateSignature.Valid {
		m.DateSignature = &dateSignature.Time
	}
	if datePaiement.Valid {
		m.DatePaiement = &datePaiement.Time
	}

	return &m, nil
}

// Create inserts a mission record
func (r *MissionRepository) Create(ctx context.Context, m *models.Mission) error {
	query := `
		INSERT INTO missions (
			id, numero, titre, description, lieu, structure_id, contact_id,
			entreprise_id, type_id, charge_id, etudiant_id, taux_horaire,
			nb_heures, acompte, nb_etudiants, duree_semaines, date_debut,
			date_fin, date_signature, date_paiement, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.Numero,
		m.Titre,
		m.Description,
		m.Lieu,
		m.StructureID,
		m.ContactID,
		m.EntrepriseID,
		m.TypeID,
		m.ChargeID,
		m.EtudiantID,
		m.TauxHoraire,
		m.NbHeures,
		m.Acompte,
		m.NbEtudiants,
		m.DureeSemaines,
		nullableTime(m.DateDebut),
		nullableTime(m.DateFin),
		nullableTime(m.DateSignature),
		nullableTime(m.DatePaiement),
		m.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create mission", zap.String("id", m.ID), zap.Error(err))
		return fmt.Errorf("failed to create mission: %w", err)
	}

	return nil
}
