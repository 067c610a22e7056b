package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// DisplayTimeLayout formats the last-known-good time in the status line.
const DisplayTimeLayout = "Jan 2, 2006, 3:04:05 PM"

// Status is the information shown in the catalog's status line.
type Status struct {
	Provenance    Provenance `json:"provenance"`
	LastUpdated   *time.Time `json:"lastUpdated,omitempty"`
	ImportedCount int        `json:"importedCount"`
	Summary       string     `json:"summary"`
}

// Status reports provenance, the last-known-good timestamp and the number of
// imported decks.
func (c *Catalog) Status(ctx context.Context, p Provenance) Status {
	st := Status{
		Provenance:    p,
		ImportedCount: len(c.records.ImportedDecks(ctx)),
	}
	if at, ok := c.records.LastKnownGoodAt(ctx); ok {
		local := at.In(c.loc)
		st.LastUpdated = &local
	}
	st.Summary = summarize(st)
	return st
}

// StatusSummary is the one-line form of Status.
func (c *Catalog) StatusSummary(ctx context.Context, p Provenance) string {
	return c.Status(ctx, p).Summary
}

func summarize(st Status) string {
	var b strings.Builder
	switch st.Provenance {
	case ProvenanceOnline:
		b.WriteString("Loaded latest built-in decks (online).")
	case ProvenanceOfflineCache:
		b.WriteString("Offline: using last saved built-in decks.")
	default:
		b.WriteString("No built-in decks loaded yet.")
	}
	if st.LastUpdated != nil {
		fmt.Fprintf(&b, " Last built-in update: %s.", st.LastUpdated.Format(DisplayTimeLayout))
	}
	if st.ImportedCount > 0 {
		fmt.Fprintf(&b, " Imported decks on device: %d.", st.ImportedCount)
	}
	return b.String()
}
