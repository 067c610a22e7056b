package catalog

import "github.com/phrazzld/vocab-study/internal/domain"

// Origin says which half of the catalog a deck belongs to.
type Origin string

const (
	OriginImported Origin = "imported"
	OriginBuiltin  Origin = "builtin"
)

// Entry is one deck in a Listing.
type Entry struct {
	Deck   domain.Deck
	Origin Origin
}

// Listing is the combined catalog: imported decks first, then built-in decks.
type Listing []Entry

// Decks returns the decks in listing order.
func (l Listing) Decks() []domain.Deck {
	decks := make([]domain.Deck, len(l))
	for i, e := range l {
		decks[i] = e.Deck
	}
	return decks
}

// Find returns the first deck with id. An imported deck shadows a built-in
// deck with the same id.
func (l Listing) Find(id string) (Entry, bool) {
	for _, e := range l {
		if e.Deck.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}
