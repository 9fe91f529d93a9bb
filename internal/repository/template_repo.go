package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/rmercier/mission-docs/internal/models"
	"go.uber.org/zap"
)

// TemplateRepository handles document template database operations. Field
// layouts are stored as a JSON column and decoded on read.
type TemplateRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewTemplateRepository creates a new template repository
func NewTemplateRepository(db *sql.DB, logger *zap.Logger) *TemplateRepository {
	return &TemplateRepository{
		db:     db,
		logger: logger,
	}
}

// FindByTypeAndStructure retrieves the template assigned to a document type
// for a structure, nil when none is configured
func (r *TemplateRepository) FindByTypeAndStructure(ctx context.Context, documentType, structureID string) (*models.Template, error) {
	query := `
		SELECT id, nom, document_type, structure_id, asset_ref, fields
		FROM templates
		WHERE document_type = ? AND structure_id = ?
	`

	var t models.Template
	var fieldsJSON string

	err := r.db.QueryRowContext(ctx, query, documentType, structureID).Scan(
		&t.ID,
		&t.Nom,
		&t.DocumentType,
		&t.StructureID,
		&t.AssetRef,
		&fieldsJSON,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to find template",
			zap.String("document_type", documentType),
			zap.String("structure_id", structureID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to find template: %w", err)
	}

	if err := json.Unmarshal([]byte(fieldsJSON), &t.Fields); err != nil {
		return nil, fmt.Errorf("failed to decode template fields: %w", err)
	}

	return &t, nil
}

// Create inserts a template record
func (r *TemplateRepository) Create(ctx context.Context, t *models.Template) error {
	fieldsJSON, err := json.Marshal(t.Fields)
	if err != nil {
		return fmt.Errorf("failed to encode template fields: %w", err)
	}

	query := `
		INSERT INTO templates (id, nom, document_type, structure_id, asset_ref, fields)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		t.ID, t.Nom, t.DocumentType, t.StructureID, t.AssetRef, string(fieldsJSON),
	)
	if err != nil {
		r.logger.Error("Failed to create template", zap.String("id", t.ID), zap.Error(err))
		return fmt.Errorf("failed to create template: %w", err)
	}

	return nil
}
