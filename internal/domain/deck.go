package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Deck-specific validation errors
var (
	// ErrDeckIDMissing is returned when a deck document has no string id.
	ErrDeckIDMissing = errors.New("deck id must be a string")

	// ErrDeckTitleMissing is returned when a deck document has no string title.
	ErrDeckTitleMissing = errors.New("deck title must be a string")

	// ErrDeckNotObject is returned when a deck document is not a JSON object.
	ErrDeckNotObject = errors.New("deck must be a JSON object")

	// ErrFeedNotArray is returned when the built-in deck feed is not a JSON array.
	ErrFeedNotArray = errors.New("deck feed must be a JSON array of decks")
)

// Deck is a named collection of flashcards and two multiple-choice question
// sets. ID is the merge and upsert key. Decks are values: once loaded they are
// replaced wholesale, never patched.
type Deck struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Cards          []Card     `json:"cards"`
	DefinitionMCQs []Question `json:"definitionMCQs"`
	UsageMCQs      []Question `json:"usageMCQs"`
}

// Questions returns the question set used by the given quiz mode.
func (d Deck) Questions(mode QuizMode) []Question {
	switch mode {
	case QuizModeDefinition:
		return d.DefinitionMCQs
	case QuizModeUsage:
		return d.UsageMCQs
	default:
		return nil
	}
}

// UnmarshalJSON decodes a deck document. The id and title must be JSON
// strings; the card and question sets fall back to empty when they are
// missing or not arrays.
func (d *Deck) UnmarshalJSON(data []byte) error {
	deck, err := decodeDeck(data)
	if err != nil {
		return err
	}
	*d = deck
	return nil
}

func decodeDeck(data []byte) (Deck, error) {
	obj, ok := decodeObject(data)
	if !ok {
		return Deck{}, NewValidationError("", "deck must be a JSON object", ErrDeckNotObject)
	}

	id, ok := strictStringField(obj, "id")
	if !ok {
		return Deck{}, NewValidationError("id", "must be a string", ErrDeckIDMissing)
	}
	title, ok := strictStringField(obj, "title")
	if !ok {
		return Deck{}, NewValidationError("title", "must be a string", ErrDeckTitleMissing)
	}

	deck := Deck{
		ID:             id,
		Title:          title,
		Cards:          []Card{},
		DefinitionMCQs: []Question{},
		UsageMCQs:      []Question{},
	}

	if items, ok := arrayField(obj, "cards"); ok {
		deck.Cards = make([]Card, len(items))
		for i, item := range items {
			_ = deck.Cards[i].UnmarshalJSON(item)
		}
	}
	deck.DefinitionMCQs = questionsField(obj, "definitionMCQs")
	deck.UsageMCQs = questionsField(obj, "usageMCQs")

	return deck, nil
}

func questionsField(obj map[string]json.RawMessage, key string) []Question {
	items, ok := arrayField(obj, key)
	if !ok {
		return []Question{}
	}
	questions := make([]Question, len(items))
	for i, item := range items {
		_ = questions[i].UnmarshalJSON(item)
	}
	return questions
}

// ParseDeckDocument parses an imported deck file. The document is either a
// single deck object or an array of deck objects. Every deck must validate;
// the first invalid deck rejects the whole document.
func ParseDeckDocument(data []byte) ([]Deck, error) {
	if items, ok := decodeArray(data); ok {
		return decodeDecks(items)
	}

	if !json.Valid(data) {
		return nil, NewValidationError("", "document is not valid JSON", ErrInvalidFormat)
	}

	deck, err := decodeDeck(data)
	if err != nil {
		return nil, err
	}
	return []Deck{deck}, nil
}

// ParseDeckFeed parses the built-in deck feed, which must be a JSON array of
// valid decks.
func ParseDeckFeed(data []byte) ([]Deck, error) {
	items, ok := decodeArray(data)
	if !ok {
		return nil, NewValidationError("", "feed body is not a JSON array", ErrFeedNotArray)
	}
	return decodeDecks(items)
}

func decodeDecks(items []json.RawMessage) ([]Deck, error) {
	decks := make([]Deck, 0, len(items))
	for i, item := range items {
		deck, err := decodeDeck(item)
		if err != nil {
			return nil, fmt.Errorf("deck %d: %w", i, err)
		}
		decks = append(decks, deck)
	}
	return decks, nil
}
