package domain

// Card is a single flashcard: a word on the front and its meaning on the back.
// Cards have no identity beyond their position in a deck.
type Card struct {
	Word    string `json:"word"`
	Meaning string `json:"meaning"`
}

// Front returns the text shown before the card is flipped.
func (c Card) Front() string {
	return c.Word
}

// Back returns the text shown after the card is flipped.
func (c Card) Back() string {
	return c.Meaning
}

// UnmarshalJSON decodes a card leniently. Entries that are not objects, or
// fields that are not strings, decode to empty text instead of failing the
// whole deck.
func (c *Card) UnmarshalJSON(data []byte) error {
	obj, ok := decodeObject(data)
	if !ok {
		*c = Card{}
		return nil
	}

	*c = Card{
		Word:    stringField(obj, "word"),
		Meaning: stringField(obj, "meaning"),
	}
	return nil
}
