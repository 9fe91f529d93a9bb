package missingdata

import (
	"github.com/rmercier/mission-docs/internal/models"
	"github.com/rmercier/mission-docs/internal/tags"
	"go.uber.org/zap"
)

// Item is one piece of data a template needs and the mission cannot provide.
type Item struct {
	Tag      string `json:"tag"`
	Label    string `json:"label"`
	Category string `json:"category"`
}

// Detector scans a template's fields against a mission's data and reports
// what generation would have to render as a placeholder. Detection is
// read-only: running it twice over the same inputs yields the same report.
type Detector struct {
	logger *zap.Logger
}

// NewDetector creates a new missing-data detector
func NewDetector(logger *zap.Logger) *Detector {
	return &Detector{logger: logger}
}

// Detect walks every field of the template and returns the tags that would
// resolve to a placeholder, deduplicated in first-seen order. Overridden tags
// are satisfied by the override; optional tags are never reported. Tags
// outside the registry are reported under the unknown-tag category so the
// operator can fix the template rather than the mission.
func (det *Detector) Detect(template *models.Template, d *tags.Data, overrides map[string]string) []Item {
	var items []Item
	seen := make(map[string]bool)

	report := func(tag string) {
		if seen[tag] {
			return
		}
		seen[tag] = true

		spec, ok := tags.Lookup(tag)
		if !ok {
			items = append(items, Item{
				Tag:      tag,
				Label:    tag,
				Category: tags.CategoryInconnue,
			})
			return
		}
		if spec.Optional {
			return
		}
		if override, has := overrides[tag]; has && override != "" {
			return
		}
		if spec.Present(d) {
			return
		}
		items = append(items, Item{
			Tag:      spec.ID,
			Label:    spec.Label,
			Category: spec.Category,
		})
	}

	for _, field := range template.Fields {
		switch field.Kind {
		case models.FieldKindBound:
			if field.BoundTagID != "" {
				report(field.BoundTagID)
			}
		default:
			for _, tag := range tags.Extract(field.RawText) {
				report(tag)
			}
		}
	}

	if len(items) > 0 {
		det.logger.Debug("Missing data detected",
			zap.String("template_id", template.ID),
			zap.Int("count", len(items)))
	}
	return items
}

// Group splits a report by category, categories ordered by first appearance.
func Group(items []Item) map[string][]Item {
	grouped := make(map[string][]Item)
	for _, item := range items {
		grouped[item.Category] = append(grouped[item.Category], item)
	}
	return grouped
}
