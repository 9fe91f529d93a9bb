package docgen

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rmercier/mission-docs/internal/models"
	"github.com/rmercier/mission-docs/internal/storage"
	"go.uber.org/zap"
)

// DocumentStore is the metadata side of the recorder, satisfied by the
// repository package.
type DocumentStore interface {
	FindCurrent(ctx context.Context, missionID, documentType, applicantID string) (*models.GeneratedDocument, error)
	Create(ctx context.Context, d *models.GeneratedDocument) error
	Delete(ctx context.Context, id string) error
}

// Recorder persists generated document bytes and their metadata record,
// superseding the previous document of the same key.
type Recorder struct {
	documents DocumentStore
	blobs     storage.BlobStore
	logger    *zap.Logger
}

// NewRecorder creates a new generated-document recorder
func NewRecorder(documents DocumentStore, blobs storage.BlobStore, logger *zap.Logger) *Recorder {
	return &Recorder{
		documents: documents,
		blobs:     blobs,
		logger:    logger,
	}
}

// Persist supersedes any current document of the same (mission, type
// [, applicant]) key and stores the new bytes and record. A blob write
// failure is degraded: no record is created, nil is returned without error
// and the caller still delivers the bytes it holds.
func (r *Recorder) Persist(ctx context.Context, mission *models.Mission, documentType, applicantID, fileName string, content []byte, createdBy string, tagIDs []string) (*models.GeneratedDocument, error) {
	previous, err := r.documents.FindCurrent(ctx, mission.ID, documentType, applicantID)
	if err != nil {
		return nil, err
	}

	version := 1
	if previous != nil {
		version = previous.Version + 1
		if err := r.blobs.Delete(previous.BlobRef); err != nil {
			// The record still goes away; an orphaned blob is the lesser
			// evil next to two "current" documents.
			r.logger.Warn("Failed to delete superseded blob",
				zap.String("blob_ref", previous.BlobRef),
				zap.Error(err))
		}
		if err := r.documents.Delete(ctx, previous.ID); err != nil {
			return nil, err
		}
		r.logger.Info("Previous document superseded",
			zap.String("mission_id", mission.ID),
			zap.String("document_type", documentType),
			zap.String("previous_id", previous.ID))
	}

	blobRef := storage.DocumentRef(mission.ID, fileName)
	if err := r.blobs.Write(blobRef, content); err != nil {
		r.logger.Warn("Blob write failed, delivering without record",
			zap.String("mission_id", mission.ID),
			zap.String("document_type", documentType),
			zap.Error(err))
		return nil, nil
	}

	tagsJSON, err := json.Marshal(tagIDs)
	if err != nil {
		return nil, err
	}

	record := &models.GeneratedDocument{
		ID:           uuid.New().String(),
		MissionID:    mission.ID,
		DocumentType: documentType,
		ApplicantID:  applicantID,
		FileName:     fileName,
		BlobRef:      blobRef,
		Version:      version,
		CreatedAt:    time.Now().UTC(),
		CreatedBy:    createdBy,
		Tags:         string(tagsJSON),
		IsValid:      true,
	}
	if err := r.documents.Create(ctx, record); err != nil {
		return nil, err
	}

	r.logger.Info("Document recorded",
		zap.String("mission_id", mission.ID),
		zap.String("document_type", documentType),
		zap.String("file_name", fileName),
		zap.Int("version", version))

	return record, nil
}
