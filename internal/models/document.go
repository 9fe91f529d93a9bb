package models

import "time"

// Document types. PC, LM and NF have dedicated file naming conventions; any
// other type falls back to "{type}_{missionNumber}.pdf".
const (
	DocTypePropositionCommerciale = "PC"
	DocTypeLettreMission          = "LM"
	DocTypeNoteFrais              = "NF"
)

// StudentSpecificDocType reports whether documents of this type are keyed on
// the applicant in addition to the mission (one current document per student).
func StudentSpecificDocType(docType string) bool {
	return docType == DocTypeLettreMission
}

// GeneratedDocument is the metadata record of one generated PDF. A new
// generation supersedes the previous record of the same (mission, type
// [, applicant]) instead of versioning it.
type GeneratedDocument struct {
	ID           string    `json:"id"`
	MissionID    string    `json:"mission_id"`
	DocumentType string    `json:"document_type"`
	ApplicantID  string    `json:"applicant_id,omitempty"` // student-specific types only
	FileName     string    `json:"file_name"`
	BlobRef      string    `json:"blob_ref"`
	Version      int       `json:"version"`
	CreatedAt    time.Time `json:"created_at"`
	CreatedBy    string    `json:"created_by"`
	Tags         string    `json:"tags"` // JSON array of resolved tag ids
	IsValid      bool      `json:"is_valid"`
}
