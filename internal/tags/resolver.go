package tags

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Resolver turns the registry plus one mission's data into concrete tag
// values and substitutes them into authored template text.
type Resolver struct {
	logger *zap.Logger
}

// NewResolver creates a new tag resolver
func NewResolver(logger *zap.Logger) *Resolver {
	return &Resolver{logger: logger}
}

// MissingPlaceholder is the in-document marker for a known tag whose source
// data is absent.
func MissingPlaceholder(label string) string {
	return fmt.Sprintf("[%s non disponible]", label)
}

// UnknownPlaceholder is the in-document marker for a tag outside the
// registry.
func UnknownPlaceholder(tag string) string {
	return fmt.Sprintf("[Information %q non disponible]", tag)
}

// Resolve computes a value for every registered tag. Operator overrides win
// over entity data; absent data yields a visible placeholder so a generated
// document never silently drops a field. Optional tags resolve to "" when
// their slot is unset.
func (r *Resolver) Resolve(d *Data, overrides map[string]string) map[string]string {
	values := make(map[string]string, len(registry))
	for _, spec := range registry {
		if override, ok := overrides[spec.ID]; ok && override != "" {
			values[spec.ID] = override
			continue
		}
		if !spec.Present(d) {
			if spec.Optional {
				values[spec.ID] = ""
			} else {
				values[spec.ID] = MissingPlaceholder(spec.Label)
			}
			continue
		}
		values[spec.ID] = spec.Format(d)
	}
	return values
}

// Substitute replaces every tag literal in text with its resolved value.
// Tags outside the registry get an explicit unknown-tag placeholder, and the
// occurrence is logged so the template author can fix it. Substitution runs
// per authored line so the expense-skeleton cleanup always judges a line
// against the text it came from, even when a resolved value spans lines.
func (r *Resolver) Substitute(text string, values map[string]string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		substituted := r.substituteLine(line, values)
		if hasExpenseTag(line) && onlyBoilerplate(substituted) {
			continue
		}
		kept = append(kept, substituted)
	}
	return collapseBlankRuns(strings.Join(kept, "\n"))
}

func (r *Resolver) substituteLine(line string, values map[string]string) string {
	return tagPattern.ReplaceAllStringFunc(line, func(match string) string {
		id := match[1 : len(match)-1]
		if value, ok := values[id]; ok {
			return value
		}
		r.logger.Warn("Unknown tag in template text", zap.String("tag", id))
		return UnknownPlaceholder(id)
	})
}

// boilerplateTokens are the unit and separator fragments an expense line is
// made of once its tags resolve empty.
var boilerplateTokens = map[string]bool{
	"€": true, "EUR": true, "HT": true, "TTC": true, "TVA": true,
	":": true, "-": true, "%": true, ",": true, ".": true, "x": true,
}

// collapseBlankRuns reduces runs of three or more blank lines to two, the
// second half of the layout cleanup for unset optional slots.
func collapseBlankRuns(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blanks := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			blanks++
			if blanks > 2 {
				continue
			}
		} else {
			blanks = 0
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// hasExpenseTag reports whether the authored line referenced an expense
// slot. A filled slot keeps real text on the line after substitution, so
// combined with onlyBoilerplate this only fires for unset slots.
func hasExpenseTag(original string) bool {
	for _, id := range Extract(original) {
		if spec, ok := Lookup(id); ok && spec.Category == CategoryDepenses {
			return true
		}
	}
	return false
}

// onlyBoilerplate reports whether a substituted line carries nothing but
// units and separators. Tokens made purely of punctuation (a bare ":" or
// "-" between two vanished values) count as boilerplate too.
func onlyBoilerplate(line string) bool {
	for _, f := range strings.Fields(line) {
		tok := strings.Trim(f, ",.:;-")
		if tok == "" {
			continue
		}
		if !boilerplateTokens[tok] {
			return false
		}
	}
	return true
}
