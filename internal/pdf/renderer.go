package pdf

import (
	"bytes"
	"fmt"
	"io"

	"github.com/phpdave11/gofpdf"
	"github.com/phpdave11/gofpdf/contrib/gofpdi"
	"github.com/rmercier/mission-docs/internal/models"
	"go.uber.org/zap"
)

// fontFamily is a core font, so documents need no embedded font files and
// text encodes as CP1252.
const fontFamily = "Helvetica"

// Field pairs a template rectangle with the text resolved for it.
type Field struct {
	models.TemplateField
	Text string
}

// Renderer produces the final document: each page of the template asset is
// imported as a background and the resolved fields are composed on top.
type Renderer struct {
	compositor *Compositor
	logger     *zap.Logger
}

// NewRenderer creates a new template renderer
func NewRenderer(logger *zap.Logger) *Renderer {
	return &Renderer{
		compositor: NewCompositor(logger),
		logger:     logger,
	}
}

// Render draws the fields over the template asset and returns the resulting
// PDF bytes. pageCount is the asset's page count as reported by Inspect.
func (r *Renderer) Render(asset []byte, pageCount int, fields []Field) ([]byte, error) {
	doc := gofpdf.NewCustom(&gofpdf.InitType{UnitStr: "pt"})
	doc.SetAutoPageBreak(false, 0)

	importer := gofpdi.NewImporter()
	var rs io.ReadSeeker = bytes.NewReader(asset)

	byPage := make(map[int][]Field, pageCount)
	for _, f := range fields {
		byPage[f.Page] = append(byPage[f.Page], f)
	}

	canvas := &fpdfCanvas{doc: doc, translate: doc.UnicodeTranslatorFromDescriptor("")}

	for page := 1; page <= pageCount; page++ {
		background := importer.ImportPageFromStream(doc, &rs, page, "/MediaBox")
		box := importer.GetPageSizes()[page]["/MediaBox"]
		width, height := box["w"], box["h"]

		doc.AddPageFormat("P", gofpdf.SizeType{Wd: width, Ht: height})
		importer.UseImportedTemplate(doc, background, 0, 0, width, height)

		canvas.pageHeight = height
		for _, f := range byPage[page] {
			r.compositor.DrawField(canvas, f.TemplateField, f.Text)
		}
	}

	if doc.Err() {
		return nil, fmt.Errorf("render document: %w", doc.Error())
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("write document: %w", err)
	}

	r.logger.Debug("Document rendered",
		zap.Int("pages", pageCount),
		zap.Int("fields", len(fields)),
		zap.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}

// fpdfCanvas adapts gofpdf to the Canvas interface. Field coordinates use a
// bottom-left origin while gofpdf's origin is top-left, so y is flipped
// against the page height.
type fpdfCanvas struct {
	doc        *gofpdf.Fpdf
	translate  func(string) string
	pageHeight float64
}

func (c *fpdfCanvas) setFont(size float64, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	c.doc.SetFont(fontFamily, style, size)
}

func (c *fpdfCanvas) StringWidth(text string, fontSize float64, bold bool) float64 {
	c.setFont(fontSize, bold)
	return c.doc.GetStringWidth(c.translate(text))
}

func (c *fpdfCanvas) DrawText(text string, x, y, fontSize float64, bold bool) error {
	c.setFont(fontSize, bold)
	c.doc.Text(x, c.pageHeight-y, c.translate(text))
	if c.doc.Err() {
		// gofpdf latches its error state; clear it so one failed line
		// does not turn every following draw into a failure too.
		err := c.doc.Error()
		c.doc.ClearError()
		return err
	}
	return nil
}
