package docgen

import (
	"errors"
	"fmt"

	"github.com/rmercier/mission-docs/internal/missingdata"
)

var (
	// ErrTemplateNotConfigured means no template is assigned to the
	// (document type, structure) pair; an operator has to upload one.
	ErrTemplateNotConfigured = errors.New("no template configured for this document type and structure")

	// ErrTemplateAsset means the assigned template's PDF asset is missing
	// or unreadable. Generation aborts before any drawing.
	ErrTemplateAsset = errors.New("template asset missing or unreadable")

	// ErrMissingData means the template references data the mission cannot
	// provide and the run was not forced.
	ErrMissingData = errors.New("mission is missing data the template requires")

	// ErrGenerationInProgress rejects a generation request while another
	// one is outstanding for the same mission.
	ErrGenerationInProgress = errors.New("generation already in progress for this mission")
)

// MissingDataError carries the structured list of unavailable tags so the
// operator can cancel, supply values or force the run.
type MissingDataError struct {
	Items []missingdata.Item
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("%v: %d tag(s)", ErrMissingData, len(e.Items))
}

func (e *MissingDataError) Unwrap() error { return ErrMissingData }
