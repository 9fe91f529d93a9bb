package models

// Text alignment values for template fields.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"

	VAlignTop    = "top"
	VAlignMiddle = "middle"
	VAlignBottom = "bottom"
)

// Field kinds: a raw field carries authored text (which may embed tags),
// a bound field references a single tag of the registry.
const (
	FieldKindRaw   = "raw"
	FieldKindBound = "bound"
)

// TemplateField is one authored rectangle on a template page. Coordinates are
// PDF points with the origin at the bottom-left of the page; Y is the bottom
// edge of the box. Immutable at generation time.
type TemplateField struct {
	Page       int     `json:"page"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	FontSize   float64 `json:"font_size"`
	Bold       bool    `json:"bold"`
	TextAlign  string  `json:"text_align"`
	VertAlign  string  `json:"vertical_align"`
	LineHeight float64 `json:"line_height"`
	Kind       string  `json:"kind"`
	RawText    string  `json:"raw_text,omitempty"`
	BoundTagID string  `json:"bound_tag_id,omitempty"`
}

// Template pairs a PDF asset with its authored field layout. Templates are
// assigned per (document type, structure); missions of a structure share them.
type Template struct {
	ID           string          `json:"id"`
	Nom          string          `json:"nom"`
	DocumentType string          `json:"document_type"`
	StructureID  string          `json:"structure_id"`
	AssetRef     string          `json:"asset_ref"` // blob store path of the template PDF
	Fields       []TemplateField `json:"fields"`
}
