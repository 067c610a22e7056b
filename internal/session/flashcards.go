package session

import (
	"github.com/phrazzld/vocab-study/internal/domain"
	"github.com/phrazzld/vocab-study/internal/shuffle"
)

// EmptyFlashcardsMessage is shown for a deck without cards.
const EmptyFlashcardsMessage = "No flashcards in this deck."

// Direction is a navigation step through the cards.
type Direction int

const (
	Prev Direction = -1
	Next Direction = 1
)

// Flashcards walks the cards of one deck. The current card shows its front
// (the word) until flipped to its back (the meaning).
type Flashcards struct {
	deckID    string
	deckTitle string
	cards     []domain.Card
	position  int
	revealed  bool
}

// NewFlashcards starts a pass over a copy of the deck's cards, shuffled
// with src when shuffled is true.
func NewFlashcards(deck domain.Deck, shuffled bool, src shuffle.Source) *Flashcards {
	cards := append([]domain.Card(nil), deck.Cards...)
	if shuffled {
		shuffle.InPlace(src, cards)
	}
	return &Flashcards{
		deckID:    deck.ID,
		deckTitle: deck.Title,
		cards:     cards,
	}
}

// Flip toggles between the front and back of the current card.
func (f *Flashcards) Flip() {
	if len(f.cards) == 0 {
		return
	}
	f.revealed = !f.revealed
}

// Advance moves by dir, clamped to the first and last card, and always turns
// the card face down, even when the move is clamped away.
func (f *Flashcards) Advance(dir Direction) {
	if len(f.cards) == 0 {
		return
	}
	f.position = clamp(f.position+int(dir), 0, len(f.cards)-1)
	f.revealed = false
}

// Current returns the card at the current position.
func (f *Flashcards) Current() (domain.Card, bool) {
	if len(f.cards) == 0 {
		return domain.Card{}, false
	}
	return f.cards[f.position], true
}

// Face returns the text currently showing: the word, or the meaning once flipped.
func (f *Flashcards) Face() string {
	card, ok := f.Current()
	if !ok {
		return ""
	}
	if f.revealed {
		return card.Back()
	}
	return card.Front()
}

// Position is the 1-based number of the current card, 0 for an empty deck.
func (f *Flashcards) Position() int {
	if len(f.cards) == 0 {
		return 0
	}
	return f.position + 1
}

// Len is the number of cards in the pass.
func (f *Flashcards) Len() int { return len(f.cards) }

// Revealed reports whether the current card shows its back.
func (f *Flashcards) Revealed() bool { return f.revealed }

// AtFirst and AtLast drive the enabled state of the navigation controls.
func (f *Flashcards) AtFirst() bool { return f.position == 0 }

func (f *Flashcards) AtLast() bool { return len(f.cards) == 0 || f.position == len(f.cards)-1 }

// DeckID identifies the deck the session runs over.
func (f *Flashcards) DeckID() string { return f.deckID }

// FlashcardsSnapshot is the render state of a flashcard session.
type FlashcardsSnapshot struct {
	DeckID       string `json:"deckId"`
	DeckTitle    string `json:"deckTitle"`
	Position     int    `json:"position"`
	Total        int    `json:"total"`
	Front        string `json:"front,omitempty"`
	Back         string `json:"back,omitempty"`
	Showing      string `json:"showing,omitempty"`
	Revealed     bool   `json:"revealed"`
	AtFirst      bool   `json:"atFirst"`
	AtLast       bool   `json:"atLast"`
	EmptyMessage string `json:"emptyMessage,omitempty"`
}

// Snapshot captures the session for rendering.
func (f *Flashcards) Snapshot() FlashcardsSnapshot {
	s := FlashcardsSnapshot{
		DeckID:    f.deckID,
		DeckTitle: f.deckTitle,
		Position:  f.Position(),
		Total:     len(f.cards),
		Revealed:  f.revealed,
		AtFirst:   f.AtFirst(),
		AtLast:    f.AtLast(),
	}
	card, ok := f.Current()
	if !ok {
		s.EmptyMessage = EmptyFlashcardsMessage
		return s
	}
	s.Front = card.Front()
	s.Back = card.Back()
	s.Showing = f.Face()
	return s
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
