package docgen

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rmercier/mission-docs/internal/gateway"
	"github.com/rmercier/mission-docs/internal/ledger"
	"github.com/rmercier/mission-docs/internal/missingdata"
	"github.com/rmercier/mission-docs/internal/models"
	"github.com/rmercier/mission-docs/internal/pdf"
	"github.com/rmercier/mission-docs/internal/storage"
	"github.com/rmercier/mission-docs/internal/tags"
	"go.uber.org/zap"
)

// Template and override sources, satisfied by the repository package
type (
	TemplateStore interface {
		FindByTypeAndStructure(ctx context.Context, documentType, structureID string) (*models.Template, error)
	}
	OverrideStore interface {
		GetByMission(ctx context.Context, missionID string) (map[string]string, error)
		Upsert(ctx context.Context, missionID string, overrides map[string]string) error
	}
)

// Options customizes one generation run.
type Options struct {
	CreatedBy string
	// Force generates even when required data is missing; absent tags
	// render as visible "non disponible" placeholders.
	Force bool
	// Overrides are operator-supplied values for this run; they win over
	// both entity data and previously persisted overrides.
	Overrides map[string]string
	// PersistOverrides stores the run's ad-hoc overrides for later runs of
	// the same mission.
	PersistOverrides bool
	// ExpenseRef feeds the expense-note naming convention.
	ExpenseRef string
	// Bundle reuses the entity fetch of a preceding detection pass.
	Bundle *gateway.Bundle
}

// Result is what a generation run delivers. Record is nil when the blob
// store was unavailable and the bytes are delivered without being recorded.
type Result struct {
	FileName string
	Content  []byte
	Record   *models.GeneratedDocument
}

// Report is a pre-flight detection result, carrying the fetched bundle so
// the generation pass that follows can reuse it.
type Report struct {
	Items  []missingdata.Item
	Bundle *gateway.Bundle
}

// Generator orchestrates the full pipeline: entity fetch, ledger totals, tag
// resolution, missing-data detection, rendering and recording. At most one
// generation runs per mission at a time; concurrent requests for distinct
// missions proceed independently.
type Generator struct {
	gateway   *gateway.Gateway
	templates TemplateStore
	fields    ledger.FieldStore
	overrides OverrideStore
	blobs     storage.BlobStore
	detector  *missingdata.Detector
	resolver  *tags.Resolver
	renderer  *pdf.Renderer
	recorder  *Recorder
	logger    *zap.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewGenerator creates a new document generator
func NewGenerator(
	gw *gateway.Gateway,
	templates TemplateStore,
	fields ledger.FieldStore,
	overrides OverrideStore,
	blobs storage.BlobStore,
	recorder *Recorder,
	logger *zap.Logger,
) *Generator {
	return &Generator{
		gateway:   gw,
		templates: templates,
		fields:    fields,
		overrides: overrides,
		blobs:     blobs,
		detector:  missingdata.NewDetector(logger),
		resolver:  tags.NewResolver(logger),
		renderer:  pdf.NewRenderer(logger),
		recorder:  recorder,
		logger:    logger,
	}
}

// DetectMissing runs the pre-flight pass: it reports every tag the template
// needs that the mission cannot provide, so the operator can cancel, supply
// values or generate with placeholders.
func (g *Generator) DetectMissing(ctx context.Context, mission *models.Mission, documentType string) (*Report, error) {
	template, err := g.template(ctx, mission, documentType)
	if err != nil {
		return nil, err
	}

	data, bundle, err := g.assemble(ctx, mission, documentType, nil)
	if err != nil {
		return nil, err
	}

	persisted, err := g.overrides.GetByMission(ctx, mission.ID)
	if err != nil {
		return nil, err
	}

	items := g.detector.Detect(template, data, persisted)
	return &Report{Items: items, Bundle: bundle}, nil
}

// Generate runs the full pipeline and returns the rendered document. When
// required data is missing and Force is unset, it stops with a
// MissingDataError listing the tags so the operator can decide.
func (g *Generator) Generate(ctx context.Context, mission *models.Mission, documentType string, opts Options) (*Result, error) {
	if !g.acquire(mission.ID) {
		g.logger.Warn("Concurrent generation rejected",
			zap.String("mission_id", mission.ID),
			zap.String("document_type", documentType))
		return nil, ErrGenerationInProgress
	}
	defer g.release(mission.ID)

	template, err := g.template(ctx, mission, documentType)
	if err != nil {
		return nil, err
	}

	data, bundle, err := g.assemble(ctx, mission, documentType, opts.Bundle)
	if err != nil {
		return nil, err
	}

	merged, err := g.mergeOverrides(ctx, mission.ID, opts)
	if err != nil {
		return nil, err
	}

	if !opts.Force {
		if items := g.detector.Detect(template, data, merged); len(items) > 0 {
			g.logger.Info("Generation blocked on missing data",
				zap.String("mission_id", mission.ID),
				zap.String("document_type", documentType),
				zap.Int("missing", len(items)))
			return nil, &MissingDataError{Items: items}
		}
	}

	asset, err := g.blobs.Read(template.AssetRef)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateAsset, template.AssetRef)
	}
	pageCount, err := pdf.Inspect(asset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateAsset, err)
	}

	values := g.resolver.Resolve(data, merged)
	fields := g.resolveFields(template, values)

	content, err := g.renderer.Render(asset, pageCount, fields)
	if err != nil {
		return nil, err
	}

	applicantID := ""
	if models.StudentSpecificDocType(documentType) {
		applicantID = mission.EtudiantID
	}
	fileName := FileName(documentType, mission, bundle.Etudiant, opts.ExpenseRef)

	record, err := g.recorder.Persist(ctx, mission, documentType, applicantID, fileName, content, opts.CreatedBy, usedTags(template))
	if err != nil {
		return nil, err
	}

	g.logger.Info("Document generated",
		zap.String("mission_id", mission.ID),
		zap.String("document_type", documentType),
		zap.String("file_name", fileName),
		zap.Bool("recorded", record != nil))

	return &Result{FileName: fileName, Content: content, Record: record}, nil
}

func (g *Generator) acquire(missionID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.inFlight == nil {
		g.inFlight = make(map[string]struct{})
	}
	if _, busy := g.inFlight[missionID]; busy {
		return false
	}
	g.inFlight[missionID] = struct{}{}
	return true
}

func (g *Generator) release(missionID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inFlight, missionID)
}

func (g *Generator) template(ctx context.Context, mission *models.Mission, documentType string) (*models.Template, error) {
	template, err := g.templates.FindByTypeAndStructure(ctx, documentType, mission.StructureID)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, fmt.Errorf("%w: %s/%s", ErrTemplateNotConfigured, documentType, mission.StructureID)
	}
	return template, nil
}

// assemble fetches the entity bundle and the mission's expense ledger and
// builds the resolver input.
func (g *Generator) assemble(ctx context.Context, mission *models.Mission, documentType string, reuse *gateway.Bundle) (*tags.Data, *gateway.Bundle, error) {
	bundle, err := g.gateway.FetchAll(ctx, mission, gateway.Options{
		IncludeApplicant: models.StudentSpecificDocType(documentType),
		Reuse:            reuse,
	})
	if err != nil {
		return nil, nil, err
	}

	led, err := ledger.Load(ctx, g.fields, mission.ID, g.logger)
	if err != nil {
		return nil, nil, err
	}

	data := &tags.Data{
		Bundle: bundle,
		Lines:  led.Lines(),
		Totals: led.Totals(mission.TauxHoraire, mission.NbHeures),
		Now:    time.Now(),
	}
	return data, bundle, nil
}

// mergeOverrides layers the run's ad-hoc values over the mission's persisted
// ones, persisting the ad-hoc set when the operator asked for it.
func (g *Generator) mergeOverrides(ctx context.Context, missionID string, opts Options) (map[string]string, error) {
	persisted, err := g.overrides.GetByMission(ctx, missionID)
	if err != nil {
		return nil, err
	}

	merged := make(map[string]string, len(persisted)+len(opts.Overrides))
	for tag, value := range persisted {
		merged[tag] = value
	}
	for tag, value := range opts.Overrides {
		merged[tag] = value
	}

	if opts.PersistOverrides && len(opts.Overrides) > 0 {
		if err := g.overrides.Upsert(ctx, missionID, opts.Overrides); err != nil {
			return nil, err
		}
	}
	return merged, nil
}

// resolveFields turns the template layout into drawable fields: bound fields
// take their tag's resolved value, raw fields go through text substitution.
func (g *Generator) resolveFields(template *models.Template, values map[string]string) []pdf.Field {
	fields := make([]pdf.Field, 0, len(template.Fields))
	for _, tf := range template.Fields {
		var text string
		switch tf.Kind {
		case models.FieldKindBound:
			if value, ok := values[tf.BoundTagID]; ok {
				text = value
			} else if tf.BoundTagID != "" {
				g.logger.Warn("Unknown tag bound to field", zap.String("tag", tf.BoundTagID))
				text = tags.UnknownPlaceholder(tf.BoundTagID)
			}
		default:
			text = g.resolver.Substitute(tf.RawText, values)
		}
		fields = append(fields, pdf.Field{TemplateField: tf, Text: text})
	}
	return fields
}

// usedTags lists every tag the template references, for the document record.
func usedTags(template *models.Template) []string {
	seen := make(map[string]bool)
	var ids []string
	add := func(id string) {
		if id == "" || seen[id] {
			return
		}
		seen[id] = true
		ids = append(ids, id)
	}
	for _, tf := range template.Fields {
		if tf.Kind == models.FieldKindBound {
			add(tf.BoundTagID)
			continue
		}
		for _, id := range tags.Extract(tf.RawText) {
			add(id)
		}
	}
	return ids
}
