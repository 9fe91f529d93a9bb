package ledger

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Validation and sequencing errors surfaced to the operator
var (
	ErrLineNotFound      = errors.New("expense line not found")
	ErrNameRequired      = errors.New("expense line name is required")
	ErrAmountNotPositive = errors.New("expense line amount must be positive")
	ErrPriorUnsaved      = errors.New("previous expense lines must be saved first")
)

// Line is one cost item of a mission's expense ledger. Persisted lines always
// occupy indices 1..k with no holes; drafts only exist at the tail.
type Line struct {
	Index     int             `json:"index"` // 1-based sequence index
	Nom       string          `json:"nom"`
	TauxTVA   decimal.Decimal `json:"taux_tva"` // percent
	MontantHT decimal.Decimal `json:"montant_ht"`
	Persisted bool            `json:"persisted"`
}

// Totals are the mission amounts derived from the hourly rate, the worked
// hours and the expense lines. Recomputed on every change, never stored.
type Totals struct {
	MissionHT  decimal.Decimal `json:"mission_ht"`
	DepensesHT decimal.Decimal `json:"depenses_ht"`
	TotalHT    decimal.Decimal `json:"total_ht"`
	TVA        decimal.Decimal `json:"tva"`
	TotalTTC   decimal.Decimal `json:"total_ttc"`
}

// missionVATRate is the fixed VAT rate applied to the hourly part.
var missionVATRate = decimal.NewFromFloat(0.20)

var hundred = decimal.NewFromInt(100)

// ComputeTotals derives mission totals. The VAT sum is rounded to 2 decimal
// places (standard rounding); per-line VAT amounts are not rounded
// individually.
func ComputeTotals(tauxHoraire, nbHeures decimal.Decimal, lines []Line) Totals {
	missionHT := tauxHoraire.Mul(nbHeures)

	depensesHT := decimal.Zero
	vat := missionHT.Mul(missionVATRate)
	for _, line := range lines {
		depensesHT = depensesHT.Add(line.MontantHT)
		vat = vat.Add(line.MontantHT.Mul(line.TauxTVA).Div(hundred))
	}
	vat = vat.Round(2)

	totalHT := missionHT.Add(depensesHT)

	return Totals{
		MissionHT:  missionHT,
		DepensesHT: depensesHT,
		TotalHT:    totalHT,
		TVA:        vat,
		TotalTTC:   totalHT.Add(vat),
	}
}
