package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeuilleTemps records the hours worked on a mission. Detail is an authored
// multi-line breakdown rendered as-is into documents.
type FeuilleTemps struct {
	ID          string          `json:"id"`
	MissionID   string          `json:"mission_id"`
	HeuresTotal decimal.Decimal `json:"heures_total"`
	DateDebut   *time.Time      `json:"date_debut,omitempty"`
	DateFin     *time.Time      `json:"date_fin,omitempty"`
	Detail      string          `json:"detail"`
}
