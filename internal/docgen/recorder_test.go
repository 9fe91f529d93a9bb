package docgen

import (
	"context"
	"errors"
	"testing"

	"github.com/rmercier/mission-docs/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeDocumentStore struct {
	current *models.GeneratedDocument
	created []*models.GeneratedDocument
	deleted []string
}

func (s *fakeDocumentStore) FindCurrent(_ context.Context, _, _, _ string) (*models.GeneratedDocument, error) {
	return s.current, nil
}

func (s *fakeDocumentStore) Create(_ context.Context, d *models.GeneratedDocument) error {
	s.created = append(s.created, d)
	return nil
}

func (s *fakeDocumentStore) Delete(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type fakeBlobStore struct {
	blobs       map[string][]byte
	deleted     []string
	failWrites  bool
	failDeletes bool
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{blobs: make(map[string][]byte)}
}

func (s *fakeBlobStore) Read(ref string) ([]byte, error) {
	content, ok := s.blobs[ref]
	if !ok {
		return nil, errors.New("blob not found")
	}
	return content, nil
}

func (s *fakeBlobStore) Write(ref string, content []byte) error {
	if s.failWrites {
		return errors.New("blob store unavailable")
	}
	s.blobs[ref] = content
	return nil
}

func (s *fakeBlobStore) Delete(ref string) error {
	if s.failDeletes {
		return errors.New("blob store unavailable")
	}
	s.deleted = append(s.deleted, ref)
	delete(s.blobs, ref)
	return nil
}

func testMission() *models.Mission {
	return &models.Mission{ID: "mission-1", Numero: "M-042", EtudiantID: "user-etudiant"}
}

func TestRecorderPersist(t *testing.T) {
	content := []byte("%PDF-1.4 fake")

	t.Run("first generation creates a v1 record", func(t *testing.T) {
		docs := &fakeDocumentStore{}
		blobs := newFakeBlobStore()
		recorder := NewRecorder(docs, blobs, zap.NewNop())

		record, err := recorder.Persist(context.Background(), testMission(),
			models.DocTypePropositionCommerciale, "", "PC_M-042.pdf", content, "operator", []string{"mission_numero"})
		require.NoError(t, err)
		require.NotNil(t, record)

		assert.Equal(t, 1, record.Version)
		assert.Equal(t, "PC_M-042.pdf", record.FileName)
		assert.True(t, record.IsValid)
		assert.Equal(t, content, blobs.blobs[record.BlobRef])
		require.Len(t, docs.created, 1)
		assert.Empty(t, docs.deleted)
	})

	t.Run("regeneration supersedes the previous document", func(t *testing.T) {
		docs := &fakeDocumentStore{current: &models.GeneratedDocument{
			ID: "old-doc", BlobRef: "missions/mission-1/documents/PC_M-042.pdf", Version: 3,
		}}
		blobs := newFakeBlobStore()
		blobs.blobs["missions/mission-1/documents/PC_M-042.pdf"] = []byte("old")
		recorder := NewRecorder(docs, blobs, zap.NewNop())

		record, err := recorder.Persist(context.Background(), testMission(),
			models.DocTypePropositionCommerciale, "", "PC_M-042.pdf", content, "operator", nil)
		require.NoError(t, err)
		require.NotNil(t, record)

		assert.Equal(t, []string{"old-doc"}, docs.deleted)
		assert.Contains(t, blobs.deleted, "missions/mission-1/documents/PC_M-042.pdf")
		assert.Equal(t, 4, record.Version)
		assert.Equal(t, content, blobs.blobs[record.BlobRef])
	})

	t.Run("superseded blob failure does not block the new document", func(t *testing.T) {
		docs := &fakeDocumentStore{current: &models.GeneratedDocument{ID: "old-doc", BlobRef: "gone", Version: 1}}
		blobs := newFakeBlobStore()
		blobs.failDeletes = true
		recorder := NewRecorder(docs, blobs, zap.NewNop())

		record, err := recorder.Persist(context.Background(), testMission(),
			models.DocTypePropositionCommerciale, "", "PC_M-042.pdf", content, "operator", nil)
		require.NoError(t, err)
		require.NotNil(t, record)
		assert.Equal(t, []string{"old-doc"}, docs.deleted)
	})

	t.Run("blob write failure degrades to deliver without record", func(t *testing.T) {
		docs := &fakeDocumentStore{}
		blobs := newFakeBlobStore()
		blobs.failWrites = true
		recorder := NewRecorder(docs, blobs, zap.NewNop())

		record, err := recorder.Persist(context.Background(), testMission(),
			models.DocTypePropositionCommerciale, "", "PC_M-042.pdf", content, "operator", nil)
		require.NoError(t, err, "blob failure must not fail the generation")
		assert.Nil(t, record)
		assert.Empty(t, docs.created)
	})
}

func TestFileName(t *testing.T) {
	mission := &models.Mission{Numero: "M-042"}
	etudiant := &models.Utilisateur{Nom: "Moreau", Prenom: "Lucie"}

	tests := []struct {
		name       string
		docType    string
		etudiant   *models.Utilisateur
		expenseRef string
		want       string
	}{
		{"commercial proposal", models.DocTypePropositionCommerciale, nil, "", "PC_M-042.pdf"},
		{"assignment letter uppercases the applicant", models.DocTypeLettreMission, etudiant, "", "LM_MOREAU_M-042.pdf"},
		{"assignment letter without applicant", models.DocTypeLettreMission, nil, "", "LM_M-042.pdf"},
		{"expense note with ref", models.DocTypeNoteFrais, nil, "NF7", "NF_NF7_M-042.pdf"},
		{"expense note without ref", models.DocTypeNoteFrais, nil, "", "NF_M-042.pdf"},
		{"unknown type falls back", "AV", nil, "", "AV_M-042.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(tt.docType, mission, tt.etudiant, tt.expenseRef))
		})
	}
}
