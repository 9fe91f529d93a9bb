package pdf

import (
	"strings"

	"github.com/rmercier/mission-docs/internal/models"
	"go.uber.org/zap"
)

// Canvas is the drawing surface the compositor writes to. The production
// implementation wraps gofpdf; tests use a recording fake.
type Canvas interface {
	// StringWidth measures a string at the current page's active font size.
	StringWidth(text string, fontSize float64, bold bool) float64
	// DrawText places a single line with its baseline at (x, y), PDF point
	// coordinates with a bottom-left origin.
	DrawText(text string, x, y, fontSize float64, bold bool) error
}

// Vertical fitting constants, in fractions of the line height. ascentShare
// compensates for the font ascent so middle-anchored text sits visually
// centered rather than too high.
const (
	ascentShare     = 0.30
	topMarginShare  = 0.20
	halfBottomShare = 0.50
)

// Compositor wraps, aligns and clamps resolved text inside template field
// boxes. It never draws outside a field's rectangle.
type Compositor struct {
	logger *zap.Logger
}

// NewCompositor creates a new text compositor
func NewCompositor(logger *zap.Logger) *Compositor {
	return &Compositor{logger: logger}
}

// DrawField renders text into the field's box on the given canvas. Text is
// sanitized, split on authored line breaks, greedily wrapped to the box
// width, anchored per the field's vertical alignment and clamped line by
// line. Lines that would overflow the box are not drawn. Per-line draw
// errors retry once with an ASCII fallback, then skip the line.
func (c *Compositor) DrawField(canvas Canvas, field models.TemplateField, text string) {
	text = Sanitize(text)
	if strings.TrimSpace(text) == "" {
		return
	}

	lineHeight := field.LineHeight
	if lineHeight <= 0 {
		lineHeight = field.FontSize * 1.2
	}

	lines := c.wrap(canvas, text, field.Width, field.FontSize, field.Bold)
	if len(lines) == 0 {
		return
	}

	boxBottom := field.Y
	boxTop := field.Y + field.Height
	minY := boxBottom + lineHeight*halfBottomShare
	maxY := boxTop - lineHeight*topMarginShare

	// y of the first line's baseline, per the vertical anchor.
	blockHeight := float64(len(lines)-1) * lineHeight
	var y float64
	switch field.VertAlign {
	case models.VAlignBottom:
		y = boxBottom + lineHeight*halfBottomShare + blockHeight
	case models.VAlignMiddle:
		y = (boxBottom+boxTop)/2 + blockHeight/2 - lineHeight*ascentShare
	default: // top
		y = boxTop - lineHeight
	}
	if y > maxY {
		y = maxY
	}
	if y < minY {
		y = minY
	}

	for i, line := range lines {
		lineY := y - float64(i)*lineHeight
		if lineY < minY {
			c.logger.Debug("Field overflow, truncating",
				zap.Int("drawn", i),
				zap.Int("total", len(lines)))
			break
		}

		x := c.horizontal(canvas, line, field)
		if err := canvas.DrawText(line, x, lineY, field.FontSize, field.Bold); err != nil {
			fallback := SanitizeASCII(line)
			x = c.horizontal(canvas, fallback, field)
			if err := canvas.DrawText(fallback, x, lineY, field.FontSize, field.Bold); err != nil {
				c.logger.Warn("Line skipped after encoding retry",
					zap.Error(err))
			}
		}
	}
}

// wrap splits on authored newlines, then greedily packs words so no line
// exceeds the box width. A single word wider than the box stays on its own
// line rather than being broken mid-word.
func (c *Compositor) wrap(canvas Canvas, text string, width, fontSize float64, bold bool) []string {
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		current := words[0]
		for _, word := range words[1:] {
			candidate := current + " " + word
			if canvas.StringWidth(candidate, fontSize, bold) > width {
				lines = append(lines, current)
				current = word
				continue
			}
			current = candidate
		}
		lines = append(lines, current)
	}
	return lines
}

// horizontal computes the line's x origin from the field's alignment and the
// measured width of that specific line, clamped inside the box.
func (c *Compositor) horizontal(canvas Canvas, line string, field models.TemplateField) float64 {
	lineWidth := canvas.StringWidth(line, field.FontSize, field.Bold)
	var x float64
	switch field.TextAlign {
	case models.AlignCenter:
		x = field.X + (field.Width-lineWidth)/2
	case models.AlignRight:
		x = field.X + field.Width - lineWidth
	default:
		x = field.X
	}
	if x < field.X {
		x = field.X
	}
	if max := field.X + field.Width - lineWidth; x > max && max >= field.X {
		x = max
	}
	return x
}
