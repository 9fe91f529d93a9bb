package export

import (
	"bytes"
	"fmt"

	"github.com/rmercier/mission-docs/internal/ledger"
	"github.com/rmercier/mission-docs/internal/models"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const sheetName = "Dépenses"

// LedgerExporter writes a mission's expense ledger and totals to an Excel
// workbook, for the treasurer's bookkeeping outside the application.
type LedgerExporter struct {
	logger *zap.Logger
}

// NewLedgerExporter creates a new ledger exporter
func NewLedgerExporter(logger *zap.Logger) *LedgerExporter {
	return &LedgerExporter{logger: logger}
}

// Export builds the workbook and returns its bytes.
func (e *LedgerExporter) Export(mission *models.Mission, lines []ledger.Line, totals ledger.Totals) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	e.setCell(f, "A1", "Mission")
	e.setCell(f, "B1", mission.Numero)
	e.setCell(f, "A2", "Titre")
	e.setCell(f, "B2", mission.Titre)

	e.setCell(f, "A4", "N°")
	e.setCell(f, "B4", "Dépense")
	e.setCell(f, "C4", "TVA (%)")
	e.setCell(f, "D4", "Montant HT")

	row := 5
	for _, line := range lines {
		if !line.Persisted {
			continue
		}
		e.setCell(f, fmt.Sprintf("A%d", row), line.Index)
		e.setCell(f, fmt.Sprintf("B%d", row), line.Nom)
		e.setCell(f, fmt.Sprintf("C%d", row), line.TauxTVA.InexactFloat64())
		e.setCell(f, fmt.Sprintf("D%d", row), line.MontantHT.InexactFloat64())
		row++
	}

	row++
	e.setCell(f, fmt.Sprintf("C%d", row), "Heures HT")
	e.setCell(f, fmt.Sprintf("D%d", row), totals.MissionHT.InexactFloat64())
	row++
	e.setCell(f, fmt.Sprintf("C%d", row), "Dépenses HT")
	e.setCell(f, fmt.Sprintf("D%d", row), totals.DepensesHT.InexactFloat64())
	row++
	e.setCell(f, fmt.Sprintf("C%d", row), "Total HT")
	e.setCell(f, fmt.Sprintf("D%d", row), totals.TotalHT.InexactFloat64())
	row++
	e.setCell(f, fmt.Sprintf("C%d", row), "TVA")
	e.setCell(f, fmt.Sprintf("D%d", row), totals.TVA.InexactFloat64())
	row++
	e.setCell(f, fmt.Sprintf("C%d", row), "Total TTC")
	e.setCell(f, fmt.Sprintf("D%d", row), totals.TotalTTC.InexactFloat64())

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	e.logger.Info("Ledger exported",
		zap.String("mission_id", mission.ID),
		zap.Int("line_count", len(lines)))

	return buf.Bytes(), nil
}

// setCell sets a cell value, logging instead of failing on error
func (e *LedgerExporter) setCell(f *excelize.File, cell string, value interface{}) {
	if err := f.SetCellValue(sheetName, cell, value); err != nil {
		e.logger.Warn("Failed to set cell value",
			zap.String("cell", cell),
			zap.Error(err))
	}
}
