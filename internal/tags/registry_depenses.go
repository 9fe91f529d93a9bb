package tags

import (
	"fmt"

	"github.com/rmercier/mission-docs/internal/ledger"
)

// Expense slot tags. Templates carry four fixed slots; slots beyond the
// mission's actual expense lines resolve to "" and the compositor drops the
// boilerplate around them. Optional by construction, never reported missing.

func expenseLine(d *Data, slot int) (ledger.Line, bool) {
	idx := slot - 1
	if idx < 0 || idx >= len(d.Lines) {
		return ledger.Line{}, false
	}
	return d.Lines[idx], true
}

func expenseSpecs(slot int) []Spec {
	present := func(d *Data) bool {
		_, ok := expenseLine(d, slot)
		return ok
	}
	return []Spec{
		{
			ID:       fmt.Sprintf("depense%d_nom", slot),
			Label:    fmt.Sprintf("Nom de la dépense %d", slot),
			Category: CategoryDepenses,
			Optional: true,
			Present:  present,
			Format: func(d *Data) string {
				line, ok := expenseLine(d, slot)
				if !ok {
					return ""
				}
				return line.Nom
			},
		},
		{
			ID:       fmt.Sprintf("depense%d_tva", slot),
			Label:    fmt.Sprintf("Taux de TVA de la dépense %d", slot),
			Category: CategoryDepenses,
			Optional: true,
			Present:  present,
			Format: func(d *Data) string {
				line, ok := expenseLine(d, slot)
				if !ok {
					return ""
				}
				return fmtNumber(line.TauxTVA)
			},
		},
		{
			ID:       fmt.Sprintf("depense%d_prix", slot),
			Label:    fmt.Sprintf("Prix HT de la dépense %d", slot),
			Category: CategoryDepenses,
			Optional: true,
			Present:  present,
			Format: func(d *Data) string {
				line, ok := expenseLine(d, slot)
				if !ok {
					return ""
				}
				return fmtMoney(line.MontantHT)
			},
		},
	}
}

func init() {
	for slot := 1; slot <= 4; slot++ {
		register(expenseSpecs(slot)...)
	}
}
