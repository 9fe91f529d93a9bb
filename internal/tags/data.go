package tags

import (
	"time"

	"github.com/rmercier/mission-docs/internal/gateway"
	"github.com/rmercier/mission-docs/internal/ledger"
)

// Data is everything a tag can draw from: the entity bundle of the run, the
// mission's expense lines, the derived totals and the generation clock.
type Data struct {
	*gateway.Bundle
	Lines  []ledger.Line
	Totals ledger.Totals
	Now    time.Time
}
