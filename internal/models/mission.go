package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Mission represents a study mission sold to a client company.
// Monetary fields are stored as decimals; the expense ledger lives in the
// mission_expense_fields flat-field set, not on this record.
type Mission struct {
	ID            string          `json:"id"`
	Numero        string          `json:"numero"`
	Titre         string          `json:"titre"`
	Description   string          `json:"description"`
	Lieu          string          `json:"lieu"`
	StructureID   string          `json:"structure_id"`
	ContactID     string          `json:"contact_id"`
	EntrepriseID  string          `json:"entreprise_id"`
	TypeID        string          `json:"type_id"`
	ChargeID      string          `json:"charge_id"`   // staff member assigned to the mission
	EtudiantID    string          `json:"etudiant_id"` // applicant, for student-specific documents
	TauxHoraire   decimal.Decimal `json:"taux_horaire"`
	NbHeures      decimal.Decimal `json:"nb_heures"`
	Acompte       decimal.Decimal `json:"acompte"`
	NbEtudiants   int             `json:"nb_etudiants"`
	DureeSemaines int             `json:"duree_semaines"`
	DateDebut     *time.Time      `json:"date_debut,omitempty"`
	DateFin       *time.Time      `json:"date_fin,omitempty"`
	DateSignature *time.Time      `json:"date_signature,omitempty"`
	DatePaiement  *time.Time      `json:"date_paiement,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// MissionType describes the category of a mission (étude, audit, développement...).
type MissionType struct {
	ID          string `json:"id"`
	Nom         string `json:"nom"`
	Description string `json:"description"`
}
