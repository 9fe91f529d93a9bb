package ledger

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Flat-field name prefixes on the mission record. Line N is stored as
// nomdepenseN / tvadepenseN / totaldepenseN; the absence of both nomdepenseN
// and totaldepenseN terminates the ledger.
const (
	fieldNom   = "nomdepense"
	fieldTVA   = "tvadepense"
	fieldTotal = "totaldepense"
)

// DecodeFields reads the flat numbered fields into an ordered line list.
// Decoded lines are persisted by definition.
func DecodeFields(fields map[string]string) ([]Line, error) {
	var lines []Line

	for n := 1; ; n++ {
		suffix := strconv.Itoa(n)
		nom, hasNom := fields[fieldNom+suffix]
		total, hasTotal := fields[fieldTotal+suffix]
		if !hasNom && !hasTotal {
			break
		}

		montant, err := decimal.NewFromString(total)
		if err != nil {
			return nil, fmt.Errorf("invalid amount for expense line %d: %w", n, err)
		}

		taux := decimal.Zero
		if raw, ok := fields[fieldTVA+suffix]; ok && raw != "" {
			taux, err = decimal.NewFromString(raw)
			if err != nil {
				return nil, fmt.Errorf("invalid VAT rate for expense line %d: %w", n, err)
			}
		}

		lines = append(lines, Line{
			Index:     n,
			Nom:       nom,
			TauxTVA:   taux,
			MontantHT: montant,
			Persisted: true,
		})
	}

	return lines, nil
}

// EncodeFields serializes persisted lines to the flat numbered convention.
// Draft lines are skipped; indices are taken from the lines, which the ledger
// keeps contiguous.
func EncodeFields(lines []Line) map[string]string {
	fields := make(map[string]string, len(lines)*3)

	for _, line := range lines {
		if !line.Persisted {
			continue
		}
		suffix := strconv.Itoa(line.Index)
		fields[fieldNom+suffix] = line.Nom
		fields[fieldTVA+suffix] = line.TauxTVA.String()
		fields[fieldTotal+suffix] = line.MontantHT.String()
	}

	return fields
}
