package docgen

import (
	"context"
	"testing"

	"github.com/rmercier/mission-docs/internal/gateway"
	"github.com/rmercier/mission-docs/internal/models"
	"github.com/rmercier/mission-docs/internal/tags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeTemplateStore struct {
	template *models.Template
}

func (s *fakeTemplateStore) FindByTypeAndStructure(_ context.Context, _, _ string) (*models.Template, error) {
	return s.template, nil
}

type fakeFieldStore struct {
	fields map[string]string
}

func (s *fakeFieldStore) ExpenseFields(_ context.Context, _ string) (map[string]string, error) {
	return s.fields, nil
}

func (s *fakeFieldStore) ReplaceExpenseFields(_ context.Context, _ string, fields map[string]string) error {
	s.fields = fields
	return nil
}

type fakeOverrideStore struct {
	persisted map[string]string
	upserted  map[string]string
}

func (s *fakeOverrideStore) GetByMission(_ context.Context, _ string) (map[string]string, error) {
	return s.persisted, nil
}

func (s *fakeOverrideStore) Upsert(_ context.Context, _ string, overrides map[string]string) error {
	s.upserted = overrides
	return nil
}

type nilSource struct{}

func (nilSource) GetByID(_ context.Context, _ string) (*models.Contact, error) { return nil, nil }

type nilEntrepriseSource struct{}

func (nilEntrepriseSource) GetByID(_ context.Context, _ string) (*models.Entreprise, error) {
	return nil, nil
}

type nilStructureSource struct{}

func (nilStructureSource) GetByID(_ context.Context, _ string) (*models.Structure, error) {
	return nil, nil
}

func (nilStructureSource) ListMembers(_ context.Context, _ string) ([]*models.StructureMember, error) {
	return nil, nil
}

type nilUserSource struct{}

func (nilUserSource) GetByID(_ context.Context, _ string) (*models.Utilisateur, error) {
	return nil, nil
}

type nilTypeSource struct{}

func (nilTypeSource) GetByID(_ context.Context, _ string) (*models.MissionType, error) {
	return nil, nil
}

type nilTimesheetSource struct{}

func (nilTimesheetSource) GetByMissionID(_ context.Context, _ string) (*models.FeuilleTemps, error) {
	return nil, nil
}

func emptyGateway() *gateway.Gateway {
	return gateway.New(
		nilSource{},
		nilEntrepriseSource{},
		nilStructureSource{},
		nilUserSource{},
		nilTypeSource{},
		nilTimesheetSource{},
		zap.NewNop(),
	)
}

func newTestGenerator(templates TemplateStore, overrides OverrideStore) *Generator {
	blobs := newFakeBlobStore()
	return NewGenerator(
		emptyGateway(),
		templates,
		&fakeFieldStore{fields: map[string]string{}},
		overrides,
		blobs,
		NewRecorder(&fakeDocumentStore{}, blobs, zap.NewNop()),
		zap.NewNop(),
	)
}

func TestDetectMissing(t *testing.T) {
	template := &models.Template{
		ID:           "tpl-1",
		DocumentType: models.DocTypePropositionCommerciale,
		Fields: []models.TemplateField{
			{Kind: models.FieldKindBound, BoundTagID: "mission_numero"},
			{Kind: models.FieldKindRaw, RawText: "Client : <entreprise_nom>"},
		},
	}
	overrides := &fakeOverrideStore{}
	generator := newTestGenerator(&fakeTemplateStore{template: template}, overrides)
	mission := &models.Mission{ID: "mission-1", Numero: "M-042", StructureID: "struct-1"}

	report, err := generator.DetectMissing(context.Background(), mission, models.DocTypePropositionCommerciale)
	require.NoError(t, err)

	require.Len(t, report.Items, 1, "numero is set, company is not")
	assert.Equal(t, "entreprise_nom", report.Items[0].Tag)
	assert.NotNil(t, report.Bundle, "bundle is returned for reuse by the generation pass")
}

func TestDetectMissingHonorsPersistedOverrides(t *testing.T) {
	template := &models.Template{
		ID:     "tpl-1",
		Fields: []models.TemplateField{{Kind: models.FieldKindBound, BoundTagID: "entreprise_nom"}},
	}
	overrides := &fakeOverrideStore{persisted: map[string]string{"entreprise_nom": "ACME SAS"}}
	generator := newTestGenerator(&fakeTemplateStore{template: template}, overrides)
	mission := &models.Mission{ID: "mission-1", StructureID: "struct-1"}

	report, err := generator.DetectMissing(context.Background(), mission, models.DocTypePropositionCommerciale)
	require.NoError(t, err)
	assert.Empty(t, report.Items)
}

func TestDetectMissingWithoutTemplate(t *testing.T) {
	generator := newTestGenerator(&fakeTemplateStore{}, &fakeOverrideStore{})
	mission := &models.Mission{ID: "mission-1", StructureID: "struct-1"}

	_, err := generator.DetectMissing(context.Background(), mission, models.DocTypePropositionCommerciale)
	require.ErrorIs(t, err, ErrTemplateNotConfigured)
}

func TestGenerateRejectsConcurrentRun(t *testing.T) {
	generator := newTestGenerator(&fakeTemplateStore{}, &fakeOverrideStore{})
	mission := &models.Mission{ID: "mission-1", StructureID: "struct-1"}

	require.True(t, generator.acquire(mission.ID))

	_, err := generator.Generate(context.Background(), mission, models.DocTypePropositionCommerciale, Options{})
	require.ErrorIs(t, err, ErrGenerationInProgress)

	// A different mission is not serialized against it
	assert.True(t, generator.acquire("mission-2"))
	generator.release("mission-2")

	// Releasing frees the slot
	generator.release(mission.ID)
	assert.True(t, generator.acquire(mission.ID))
	generator.release(mission.ID)
}

func TestGenerateBlockedOnMissingData(t *testing.T) {
	template := &models.Template{
		ID:       "tpl-1",
		AssetRef: "templates/pc.pdf",
		Fields:   []models.TemplateField{{Kind: models.FieldKindBound, BoundTagID: "entreprise_nom"}},
	}
	mission := &models.Mission{ID: "mission-1", Numero: "M-042", StructureID: "struct-1"}

	t.Run("missing data stops the run with the structured list", func(t *testing.T) {
		generator := newTestGenerator(&fakeTemplateStore{template: template}, &fakeOverrideStore{})

		_, err := generator.Generate(context.Background(), mission, models.DocTypePropositionCommerciale, Options{})
		require.ErrorIs(t, err, ErrMissingData)

		var missing *MissingDataError
		require.ErrorAs(t, err, &missing)
		require.Len(t, missing.Items, 1)
		assert.Equal(t, "entreprise_nom", missing.Items[0].Tag)
	})

	t.Run("ad-hoc overrides clear the gate", func(t *testing.T) {
		generator := newTestGenerator(&fakeTemplateStore{template: template}, &fakeOverrideStore{})

		_, err := generator.Generate(context.Background(), mission, models.DocTypePropositionCommerciale, Options{
			Overrides: map[string]string{"entreprise_nom": "ACME SAS"},
		})
		// Past the gate; the fake blob store has no asset to draw on
		require.ErrorIs(t, err, ErrTemplateAsset)
	})

	t.Run("force generates with placeholders", func(t *testing.T) {
		generator := newTestGenerator(&fakeTemplateStore{template: template}, &fakeOverrideStore{})

		_, err := generator.Generate(context.Background(), mission, models.DocTypePropositionCommerciale, Options{Force: true})
		require.ErrorIs(t, err, ErrTemplateAsset)
	})
}

func TestGenerateMissingAssetFailsBeforeDrawing(t *testing.T) {
	template := &models.Template{ID: "tpl-1", AssetRef: "templates/absent.pdf"}
	generator := newTestGenerator(&fakeTemplateStore{template: template}, &fakeOverrideStore{})
	mission := &models.Mission{ID: "mission-1", StructureID: "struct-1"}

	_, err := generator.Generate(context.Background(), mission, models.DocTypePropositionCommerciale, Options{})
	require.ErrorIs(t, err, ErrTemplateAsset)
}

func TestMergeOverrides(t *testing.T) {
	t.Run("run overrides win over persisted ones", func(t *testing.T) {
		overrides := &fakeOverrideStore{persisted: map[string]string{
			"entreprise_nom": "Ancien nom",
			"contact_nom":    "Durand",
		}}
		generator := newTestGenerator(&fakeTemplateStore{}, overrides)

		merged, err := generator.mergeOverrides(context.Background(), "mission-1", Options{
			Overrides: map[string]string{"entreprise_nom": "ACME SAS"},
		})
		require.NoError(t, err)

		assert.Equal(t, "ACME SAS", merged["entreprise_nom"])
		assert.Equal(t, "Durand", merged["contact_nom"])
		assert.Nil(t, overrides.upserted, "not persisted unless asked")
	})

	t.Run("persists when asked", func(t *testing.T) {
		overrides := &fakeOverrideStore{}
		generator := newTestGenerator(&fakeTemplateStore{}, overrides)

		adHoc := map[string]string{"entreprise_nom": "ACME SAS"}
		_, err := generator.mergeOverrides(context.Background(), "mission-1", Options{
			Overrides:        adHoc,
			PersistOverrides: true,
		})
		require.NoError(t, err)
		assert.Equal(t, adHoc, overrides.upserted)
	})
}

func TestResolveFields(t *testing.T) {
	generator := newTestGenerator(&fakeTemplateStore{}, &fakeOverrideStore{})
	values := map[string]string{"mission_numero": "M-042"}

	template := &models.Template{Fields: []models.TemplateField{
		{Kind: models.FieldKindBound, BoundTagID: "mission_numero"},
		{Kind: models.FieldKindBound, BoundTagID: "balise_mystere"},
		{Kind: models.FieldKindRaw, RawText: "Mission <mission_numero>"},
	}}

	fields := generator.resolveFields(template, values)
	require.Len(t, fields, 3)
	assert.Equal(t, "M-042", fields[0].Text)
	assert.Equal(t, tags.UnknownPlaceholder("balise_mystere"), fields[1].Text)
	assert.Equal(t, "Mission M-042", fields[2].Text)
}

func TestUsedTags(t *testing.T) {
	template := &models.Template{Fields: []models.TemplateField{
		{Kind: models.FieldKindBound, BoundTagID: "mission_numero"},
		{Kind: models.FieldKindRaw, RawText: "<entreprise_nom> / <mission_numero>"},
	}}

	assert.Equal(t, []string{"mission_numero", "entreprise_nom"}, usedTags(template))
}
