package pdf

import "strings"

// Typographic punctuation mapped to its plain equivalent. Everything in the
// replacement set must encode in CP1252, which the core fonts use.
var typographic = map[rune]string{
	'‘': "'", // left single quote
	'’': "'", // right single quote
	'‚': "'",
	'“': `"`, // left double quote
	'”': `"`, // right double quote
	'„': `"`,
	'–': "-", // en dash
	'—': "-", // em dash
	'…': "...",
	' ': " ", // no-break space
	' ': " ", // narrow no-break space
	' ': " ",
	'•': "-",
}

// Sanitize prepares a string for measuring and drawing with a Latin-1 core
// font: typographic punctuation becomes plain punctuation, Latin-1 letters
// and the euro sign pass through, anything else becomes a space.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n' || r == '\t':
			b.WriteRune(r)
		case typographic[r] != "":
			b.WriteString(typographic[r])
		case r == '€':
			b.WriteRune(r)
		case r < 0x20:
			b.WriteRune(' ')
		case r <= 0xFF:
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return b.String()
}

// SanitizeASCII is the aggressive fallback used when drawing a sanitized
// line still fails: accented Latin-1 letters are folded to their base ASCII
// letter and everything else non-ASCII becomes a space.
func SanitizeASCII(s string) string {
	s = Sanitize(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r < 0x80:
			b.WriteRune(r)
		case r == '€':
			b.WriteString("EUR")
		default:
			if folded, ok := asciiFold[r]; ok {
				b.WriteRune(folded)
			} else {
				b.WriteRune(' ')
			}
		}
	}
	return b.String()
}

var asciiFold = map[rune]rune{
	'à': 'a', 'â': 'a', 'ä': 'a', 'á': 'a', 'ã': 'a',
	'é': 'e', 'è': 'e', 'ê': 'e', 'ë': 'e',
	'î': 'i', 'ï': 'i', 'í': 'i', 'ì': 'i',
	'ô': 'o', 'ö': 'o', 'ó': 'o', 'ò': 'o', 'õ': 'o',
	'ù': 'u', 'û': 'u', 'ü': 'u', 'ú': 'u',
	'ç': 'c', 'ñ': 'n', 'ÿ': 'y',
	'À': 'A', 'Â': 'A', 'Ä': 'A', 'Á': 'A', 'Ã': 'A',
	'É': 'E', 'È': 'E', 'Ê': 'E', 'Ë': 'E',
	'Î': 'I', 'Ï': 'I', 'Í': 'I', 'Ì': 'I',
	'Ô': 'O', 'Ö': 'O', 'Ó': 'O', 'Ò': 'O', 'Õ': 'O',
	'Ù': 'U', 'Û': 'U', 'Ü': 'U', 'Ú': 'U',
	'Ç': 'C', 'Ñ': 'N',
}
