package service

import (
	"github.com/google/uuid"

	"github.com/phrazzld/vocab-study/internal/catalog"
	"github.com/phrazzld/vocab-study/internal/importer"
	"github.com/phrazzld/vocab-study/internal/session"
)

// Empty-state texts.
const (
	NoDecksMessage         = "No decks available yet. (Try importing a deck in Parent Mode.)"
	NoImportedDecksMessage = "No imported decks yet."
)

// DeckSummary is one row of the deck picker.
type DeckSummary struct {
	ID                  string         `json:"id"`
	Title               string         `json:"title"`
	Origin              catalog.Origin `json:"origin"`
	Cards               int            `json:"cards"`
	DefinitionQuestions int            `json:"definitionQuestions"`
	UsageQuestions      int            `json:"usageQuestions"`
}

// CatalogView is the deck picker with its status line.
type CatalogView struct {
	Decks        []DeckSummary  `json:"decks"`
	Status       catalog.Status `json:"status"`
	Shuffle      bool           `json:"shuffle"`
	EmptyMessage string         `json:"emptyMessage,omitempty"`
}

// FlashcardsView is a flashcard session as rendered.
type FlashcardsView struct {
	SessionID uuid.UUID `json:"sessionId"`
	session.FlashcardsSnapshot
}

// QuizView is a quiz session as rendered.
type QuizView struct {
	SessionID uuid.UUID `json:"sessionId"`
	Restarted bool      `json:"restarted,omitempty"`
	session.QuizSnapshot
}

// ImportedView lists the imported decks for management.
type ImportedView struct {
	Decks        []importer.Summary `json:"decks"`
	EmptyMessage string             `json:"emptyMessage,omitempty"`
}

func summarize(listing catalog.Listing) []DeckSummary {
	out := make([]DeckSummary, len(listing))
	for i, e := range listing {
		out[i] = DeckSummary{
			ID:                  e.Deck.ID,
			Title:               e.Deck.Title,
			Origin:              e.Origin,
			Cards:               len(e.Deck.Cards),
			DefinitionQuestions: len(e.Deck.DefinitionMCQs),
			UsageQuestions:      len(e.Deck.UsageMCQs),
		}
	}
	return out
}
