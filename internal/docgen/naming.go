package docgen

import (
	"fmt"
	"strings"

	"github.com/rmercier/mission-docs/internal/models"
)

// FileName builds the output file name per document type. etudiant is the
// applicant for student-specific documents and expenseRef identifies the
// expense note; either may be empty, in which case the corresponding segment
// is dropped.
func FileName(documentType string, mission *models.Mission, etudiant *models.Utilisateur, expenseRef string) string {
	switch documentType {
	case models.DocTypePropositionCommerciale:
		return fmt.Sprintf("PC_%s.pdf", mission.Numero)
	case models.DocTypeLettreMission:
		if etudiant != nil && etudiant.Nom != "" {
			return fmt.Sprintf("LM_%s_%s.pdf", strings.ToUpper(etudiant.Nom), mission.Numero)
		}
		return fmt.Sprintf("LM_%s.pdf", mission.Numero)
	case models.DocTypeNoteFrais:
		if expenseRef != "" {
			return fmt.Sprintf("NF_%s_%s.pdf", expenseRef, mission.Numero)
		}
		return fmt.Sprintf("NF_%s.pdf", mission.Numero)
	default:
		return fmt.Sprintf("%s_%s.pdf", documentType, mission.Numero)
	}
}
