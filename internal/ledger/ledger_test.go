package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeFieldStore keeps the flat fields in memory and records rewrites.
type fakeFieldStore struct {
	fields   map[string]string
	rewrites int
	failNext bool
}

func (s *fakeFieldStore) ExpenseFields(_ context.Context, _ string) (map[string]string, error) {
	out := make(map[string]string, len(s.fields))
	for k, v := range s.fields {
		out[k] = v
	}
	return out, nil
}

func (s *fakeFieldStore) ReplaceExpenseFields(_ context.Context, _ string, fields map[string]string) error {
	if s.failNext {
		s.failNext = false
		return errors.New("storage unavailable")
	}
	s.rewrites++
	s.fields = fields
	return nil
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func loadTestLedger(t *testing.T, store *fakeFieldStore) *Ledger {
	t.Helper()
	led, err := Load(context.Background(), store, "mission-1", zap.NewNop())
	require.NoError(t, err)
	return led
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name        string
		tauxHoraire string
		nbHeures    string
		lines       []Line
		missionHT   string
		depensesHT  string
		totalHT     string
		tva         string
		totalTTC    string
	}{
		{
			name:        "hours only",
			tauxHoraire: "40",
			nbHeures:    "8",
			missionHT:   "320",
			depensesHT:  "0",
			totalHT:     "320",
			tva:         "64",
			totalTTC:    "384",
		},
		{
			name:        "one expense line at reduced rate",
			tauxHoraire: "50",
			nbHeures:    "10",
			lines: []Line{
				{Index: 1, Nom: "Transport", TauxTVA: dec("10"), MontantHT: dec("20"), Persisted: true},
			},
			missionHT:  "500",
			depensesHT: "20",
			totalHT:    "520",
			tva:        "102",
			totalTTC:   "622",
		},
		{
			name:        "vat rounded once over all lines",
			tauxHoraire: "0",
			nbHeures:    "0",
			lines: []Line{
				{Index: 1, Nom: "A", TauxTVA: dec("5.5"), MontantHT: dec("10.01"), Persisted: true},
				{Index: 2, Nom: "B", TauxTVA: dec("5.5"), MontantHT: dec("10.01"), Persisted: true},
			},
			missionHT:  "0",
			depensesHT: "20.02",
			totalHT:    "20.02",
			// per-line VAT is 0.550550, unrounded; the sum 1.1011 rounds to 1.10
			tva:      "1.10",
			totalTTC: "21.12",
		},
		{
			name:        "no rate means expense-only totals",
			tauxHoraire: "0",
			nbHeures:    "12",
			lines: []Line{
				{Index: 1, Nom: "Impression", TauxTVA: dec("20"), MontantHT: dec("35"), Persisted: true},
			},
			missionHT:  "0",
			depensesHT: "35",
			totalHT:    "35",
			tva:        "7",
			totalTTC:   "42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := ComputeTotals(dec(tt.tauxHoraire), dec(tt.nbHeures), tt.lines)

			assert.True(t, totals.MissionHT.Equal(dec(tt.missionHT)), "MissionHT = %s", totals.MissionHT)
			assert.True(t, totals.DepensesHT.Equal(dec(tt.depensesHT)), "DepensesHT = %s", totals.DepensesHT)
			assert.True(t, totals.TotalHT.Equal(dec(tt.totalHT)), "TotalHT = %s", totals.TotalHT)
			assert.True(t, totals.TVA.Equal(dec(tt.tva)), "TVA = %s", totals.TVA)
			assert.True(t, totals.TotalTTC.Equal(dec(tt.totalTTC)), "TotalTTC = %s", totals.TotalTTC)

			// Derived identities hold for every input
			assert.True(t, totals.TotalTTC.Equal(totals.TotalHT.Add(totals.TVA)))
			assert.True(t, totals.TotalHT.Equal(totals.MissionHT.Add(totals.DepensesHT)))
		})
	}
}

func TestDecodeFieldsStopsAtGap(t *testing.T) {
	fields := map[string]string{
		"nomdepense1": "Transport", "tvadepense1": "10", "totaldepense1": "20",
		"nomdepense2": "Hôtel", "tvadepense2": "20", "totaldepense2": "120.50",
		// line 4 is unreachable: line 3 is absent
		"nomdepense4": "Fantôme", "totaldepense4": "99",
	}

	lines, err := DecodeFields(fields)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	assert.Equal(t, "Transport", lines[0].Nom)
	assert.Equal(t, 1, lines[0].Index)
	assert.True(t, lines[0].Persisted)
	assert.Equal(t, "Hôtel", lines[1].Nom)
	assert.True(t, lines[1].MontantHT.Equal(dec("120.50")))
}

func TestDecodeFieldsInvalidAmount(t *testing.T) {
	_, err := DecodeFields(map[string]string{
		"nomdepense1": "Transport", "totaldepense1": "abc",
	})
	require.Error(t, err)
}

func TestEncodeFieldsSkipsDrafts(t *testing.T) {
	fields := EncodeFields([]Line{
		{Index: 1, Nom: "Transport", TauxTVA: dec("10"), MontantHT: dec("20"), Persisted: true},
		{Index: 2, Nom: "Brouillon", TauxTVA: dec("20"), MontantHT: dec("5")},
	})

	assert.Equal(t, "Transport", fields["nomdepense1"])
	assert.Equal(t, "20", fields["totaldepense1"])
	assert.NotContains(t, fields, "nomdepense2")
}

func TestSaveLineValidation(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(l *Ledger)
		index   int
		wantErr error
	}{
		{
			name: "empty name rejected",
			prepare: func(l *Ledger) {
				l.AddDraft()
				_ = l.SetLine(1, "", dec("20"), dec("10"))
			},
			index:   1,
			wantErr: ErrNameRequired,
		},
		{
			name: "zero amount rejected",
			prepare: func(l *Ledger) {
				l.AddDraft()
				_ = l.SetLine(1, "Transport", dec("20"), dec("0"))
			},
			index:   1,
			wantErr: ErrAmountNotPositive,
		},
		{
			name: "save blocked while a prior line is unsaved",
			prepare: func(l *Ledger) {
				l.AddDraft()
				l.AddDraft()
				_ = l.SetLine(1, "Transport", dec("20"), dec("10"))
				_ = l.SetLine(2, "Hôtel", dec("10"), dec("80"))
			},
			index:   2,
			wantErr: ErrPriorUnsaved,
		},
		{
			name:    "unknown index",
			prepare: func(l *Ledger) {},
			index:   3,
			wantErr: ErrLineNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeFieldStore{fields: map[string]string{}}
			led := loadTestLedger(t, store)
			tt.prepare(led)

			err := led.SaveLine(context.Background(), tt.index)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, store.rewrites, "failed save must not touch storage")
		})
	}
}

func TestSaveLineRollsBackFlagOnStoreFailure(t *testing.T) {
	store := &fakeFieldStore{fields: map[string]string{}, failNext: true}
	led := loadTestLedger(t, store)
	led.AddDraft()
	require.NoError(t, led.SetLine(1, "Transport", dec("20"), dec("10")))

	err := led.SaveLine(context.Background(), 1)
	require.Error(t, err)
	assert.False(t, led.Lines()[0].Persisted)

	// Same line saves cleanly once storage recovers
	require.NoError(t, led.SaveLine(context.Background(), 1))
	assert.True(t, led.Lines()[0].Persisted)
}

func TestDeleteLineRenumbers(t *testing.T) {
	store := &fakeFieldStore{fields: map[string]string{
		"nomdepense1": "Transport", "tvadepense1": "10", "totaldepense1": "20",
		"nomdepense2": "Hôtel", "tvadepense2": "20", "totaldepense2": "120",
		"nomdepense3": "Repas", "tvadepense3": "10", "totaldepense3": "45",
	}}
	led := loadTestLedger(t, store)

	require.NoError(t, led.DeleteLine(context.Background(), 2))

	lines := led.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"Transport", "Repas"}, []string{lines[0].Nom, lines[1].Nom})
	assert.Equal(t, 1, lines[0].Index)
	assert.Equal(t, 2, lines[1].Index)

	// Storage was rewritten with contiguous indices
	assert.Equal(t, "Repas", store.fields["nomdepense2"])
	assert.NotContains(t, store.fields, "nomdepense3")
}

func TestDeleteDraftLineStaysLocal(t *testing.T) {
	store := &fakeFieldStore{fields: map[string]string{
		"nomdepense1": "Transport", "tvadepense1": "10", "totaldepense1": "20",
	}}
	led := loadTestLedger(t, store)
	led.AddDraft()

	require.NoError(t, led.DeleteLine(context.Background(), 2))
	assert.Equal(t, 0, store.rewrites, "dropping a draft must not touch storage")
	assert.Len(t, led.Lines(), 1)
}

func TestReorder(t *testing.T) {
	t.Run("commits when all lines are persisted", func(t *testing.T) {
		store := &fakeFieldStore{fields: map[string]string{
			"nomdepense1": "Transport", "tvadepense1": "10", "totaldepense1": "20",
			"nomdepense2": "Hôtel", "tvadepense2": "20", "totaldepense2": "120",
		}}
		led := loadTestLedger(t, store)

		committed, err := led.Reorder(context.Background(), 2, 1)
		require.NoError(t, err)
		assert.True(t, committed)
		assert.Equal(t, "Hôtel", store.fields["nomdepense1"])
		assert.Equal(t, "Transport", store.fields["nomdepense2"])
	})

	t.Run("stays local while a draft exists", func(t *testing.T) {
		store := &fakeFieldStore{fields: map[string]string{
			"nomdepense1": "Transport", "tvadepense1": "10", "totaldepense1": "20",
		}}
		led := loadTestLedger(t, store)
		led.AddDraft()
		require.NoError(t, led.SetLine(2, "Hôtel", dec("20"), dec("120")))

		committed, err := led.Reorder(context.Background(), 2, 1)
		require.NoError(t, err)
		assert.False(t, committed)
		assert.Equal(t, 0, store.rewrites)

		// In-memory order changed and indices stayed contiguous
		lines := led.Lines()
		assert.Equal(t, "Hôtel", lines[0].Nom)
		assert.Equal(t, 1, lines[0].Index)
		assert.Equal(t, 2, lines[1].Index)
	})
}

// Contiguity holds across any completed add/save/delete/reorder sequence.
func TestContiguityInvariant(t *testing.T) {
	store := &fakeFieldStore{fields: map[string]string{}}
	led := loadTestLedger(t, store)
	ctx := context.Background()

	for i, nom := range []string{"Transport", "Hôtel", "Repas", "Impression"} {
		led.AddDraft()
		require.NoError(t, led.SetLine(i+1, nom, dec("20"), dec("10")))
		require.NoError(t, led.SaveLine(ctx, i+1))
	}
	require.NoError(t, led.DeleteLine(ctx, 2))
	_, err := led.Reorder(ctx, 3, 1)
	require.NoError(t, err)
	require.NoError(t, led.DeleteLine(ctx, 1))

	for i, line := range led.Lines() {
		assert.Equal(t, i+1, line.Index)
		assert.True(t, line.Persisted)
	}

	reloaded := loadTestLedger(t, store)
	assert.Equal(t, led.Lines(), reloaded.Lines())
}
