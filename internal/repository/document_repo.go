package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rmercier/mission-docs/internal/models"
	"go.uber.org/zap"
)

// DocumentRepository handles generated document metadata records
type DocumentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewDocumentRepository creates a new generated document repository
func NewDocumentRepository(db *sql.DB, logger *zap.Logger) *DocumentRepository {
	return &DocumentRepository{
		db:     db,
		logger: logger,
	}
}

// FindCurrent retrieves the current document of a (mission, type) pair, nil
// when none exists. For student-specific types the applicant is part of the
// key and must be passed; for the others it is ignored.
func (r *DocumentRepository) FindCurrent(ctx context.Context, missionID, documentType, applicantID string) (*models.GeneratedDocument, error) {
	query := `
		SELECT id, mission_id, document_type, applicant_id, file_name, blob_ref,
			version, created_at, created_by, tags, is_valid
		FROM generated_documents
		WHERE mission_id = ? AND document_type = ?
	`
	args := []interface{}{missionID, documentType}

	if models.StudentSpecificDocType(documentType) {
		query += ` AND applicant_id = ?`
		args = append(args, applicantID)
	}

	var d models.GeneratedDocument
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&d.ID,
		&d.MissionID,
		&d.DocumentType,
		&d.ApplicantID,
		&d.FileName,
		&d.BlobRef,
		&d.Version,
		&d.CreatedAt,
		&d.CreatedBy,
		&d.Tags,
		&d.IsValid,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to find current document",
			zap.String("mission_id", missionID),
			zap.String("document_type", documentType),
			zap.Error(err))
		return nil, fmt.Errorf("failed to find current document: %w", err)
	}

	return &d, nil
}

// Create inserts a generated document record
func (r *DocumentRepository) Create(ctx context.Context, d *models.GeneratedDocument) error {
	query := `
		INSERT INTO generated_documents (
			id, mission_id, document_type, applicant_id, file_name, blob_ref,
			version, created_at, created_by, tags, is_valid
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		d.ID,
		d.MissionID,
		d.DocumentType,
		d.ApplicantID,
		d.FileName,
		d.BlobRef,
		d.Version,
		d.CreatedAt,
		d.CreatedBy,
		d.Tags,
		d.IsValid,
	)
	if err != nil {
		r.logger.Error("Failed to create document record", zap.String("id", d.ID), zap.Error(err))
		return fmt.Errorf("failed to create document record: %w", err)
	}

	return nil
}

// Delete removes a generated document record
func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM generated_documents WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("Failed to delete document record", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete document record: %w", err)
	}

	return nil
}
