package ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// FieldStore is the storage boundary of the ledger: the flat numbered field
// set of one mission, cleared and rewritten as a whole.
type FieldStore interface {
	ExpenseFields(ctx context.Context, missionID string) (map[string]string, error)
	ReplaceExpenseFields(ctx context.Context, missionID string, fields map[string]string) error
}

// Ledger holds the ordered expense lines of one mission in memory and
// serializes them through the flat-field convention at the storage boundary.
// It is not safe for concurrent use; callers scope one Ledger per request.
type Ledger struct {
	missionID string
	lines     []Line
	store     FieldStore
	logger    *zap.Logger
}

// Load reads the mission's flat fields and builds its ledger
func Load(ctx context.Context, store FieldStore, missionID string, logger *zap.Logger) (*Ledger, error) {
	fields, err := store.ExpenseFields(ctx, missionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load expense fields: %w", err)
	}

	lines, err := DecodeFields(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to decode expense fields: %w", err)
	}

	logger.Debug("Expense ledger loaded",
		zap.String("mission_id", missionID),
		zap.Int("line_count", len(lines)))

	return &Ledger{
		missionID: missionID,
		lines:     lines,
		store:     store,
		logger:    logger,
	}, nil
}

// Lines returns a copy of the current line list
func (l *Ledger) Lines() []Line {
	out := make([]Line, len(l.lines))
	copy(out, l.lines)
	return out
}

// AddDraft appends an empty draft line at the tail and returns its index
func (l *Ledger) AddDraft() int {
	index := len(l.lines) + 1
	l.lines = append(l.lines, Line{Index: index})
	return index
}

// SetLine updates the values of a line in memory. Persisted lines may only be
// edited when every line before them is persisted, which the contiguity
// invariant already guarantees.
func (l *Ledger) SetLine(index int, nom string, tauxTVA, montantHT decimal.Decimal) error {
	pos := index - 1
	if pos < 0 || pos >= len(l.lines) {
		return ErrLineNotFound
	}

	l.lines[pos].Nom = nom
	l.lines[pos].TauxTVA = tauxTVA
	l.lines[pos].MontantHT = montantHT
	return nil
}

// SaveLine validates and persists the line at the given index, rewriting the
// full flat-field set. It fails without mutation unless the line has a
// non-empty name, a positive amount and every line before it is persisted.
func (l *Ledger) SaveLine(ctx context.Context, index int) error {
	pos := index - 1
	if pos < 0 || pos >= len(l.lines) {
		return ErrLineNotFound
	}

	line := l.lines[pos]
	if line.Nom == "" {
		return ErrNameRequired
	}
	if !line.MontantHT.IsPositive() {
		return ErrAmountNotPositive
	}
	for i := 0; i < pos; i++ {
		if !l.lines[i].Persisted {
			return ErrPriorUnsaved
		}
	}

	l.lines[pos].Persisted = true
	if err := l.rewrite(ctx); err != nil {
		l.lines[pos].Persisted = false
		return err
	}

	l.logger.Info("Expense line saved",
		zap.String("mission_id", l.missionID),
		zap.Int("index", index))

	return nil
}

// DeleteLine removes the line at the given index. A draft is dropped from
// memory only; a persisted line triggers renumbering of all subsequent lines
// and a full flat-field rewrite.
func (l *Ledger) DeleteLine(ctx context.Context, index int) error {
	pos := index - 1
	if pos < 0 || pos >= len(l.lines) {
		return ErrLineNotFound
	}

	wasPersisted := l.lines[pos].Persisted
	l.lines = append(l.lines[:pos], l.lines[pos+1:]...)
	l.renumber()

	if !wasPersisted {
		return nil
	}

	if err := l.rewrite(ctx); err != nil {
		return err
	}

	l.logger.Info("Expense line deleted",
		zap.String("mission_id", l.missionID),
		zap.Int("index", index),
		zap.Int("remaining", len(l.lines)))

	return nil
}

// Reorder moves a line from one index to another. The new order is committed
// to storage only when every line is persisted; otherwise the reorder stays
// in memory and committed is false.
func (l *Ledger) Reorder(ctx context.Context, from, to int) (committed bool, err error) {
	fromPos, toPos := from-1, to-1
	if fromPos < 0 || fromPos >= len(l.lines) || toPos < 0 || toPos >= len(l.lines) {
		return false, ErrLineNotFound
	}
	if fromPos == toPos {
		return l.allPersisted(), nil
	}

	moved := l.lines[fromPos]
	l.lines = append(l.lines[:fromPos], l.lines[fromPos+1:]...)

	rest := make([]Line, 0, len(l.lines)+1)
	rest = append(rest, l.lines[:toPos]...)
	rest = append(rest, moved)
	rest = append(rest, l.lines[toPos:]...)
	l.lines = rest
	l.renumber()

	if !l.allPersisted() {
		return false, nil
	}

	if err := l.rewrite(ctx); err != nil {
		return false, err
	}

	l.logger.Info("Expense ledger reordered",
		zap.String("mission_id", l.missionID),
		zap.Int("from", from),
		zap.Int("to", to))

	return true, nil
}

// Totals computes the mission totals from the current lines
func (l *Ledger) Totals(tauxHoraire, nbHeures decimal.Decimal) Totals {
	return ComputeTotals(tauxHoraire, nbHeures, l.lines)
}

func (l *Ledger) allPersisted() bool {
	for _, line := range l.lines {
		if !line.Persisted {
			return false
		}
	}
	return true
}

func (l *Ledger) renumber() {
	for i := range l.lines {
		l.lines[i].Index = i + 1
	}
}

func (l *Ledger) rewrite(ctx context.Context) error {
	if err := l.store.ReplaceExpenseFields(ctx, l.missionID, EncodeFields(l.lines)); err != nil {
		l.logger.Error("Failed to rewrite expense fields",
			zap.String("mission_id", l.missionID),
			zap.Error(err))
		return fmt.Errorf("failed to rewrite expense fields: %w", err)
	}
	return nil
}
