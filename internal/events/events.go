package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TypeImportedDecksChanged is emitted after any change to the imported-deck record.
const TypeImportedDecksChanged = "imported_decks.changed"

// Event is a typed notification with a JSON payload.
type Event struct {
	ID        uuid.UUID       `json:"id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// UnmarshalPayload decodes the payload into v.
func (e *Event) UnmarshalPayload(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// NewEvent builds an event of eventType carrying payload as JSON.
func NewEvent(eventType string, payload any) (*Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   raw,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// ImportedDecksChanged is the payload of TypeImportedDecksChanged.
type ImportedDecksChanged struct {
	// Action is one of "import", "delete" or "delete_all".
	Action  string   `json:"action"`
	DeckIDs []string `json:"deck_ids,omitempty"`
	// Total is the number of imported decks after the change.
	Total int `json:"total"`
}

// Handler processes events.
type Handler interface {
	HandleEvent(ctx context.Context, event *Event) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, event *Event) error

// HandleEvent calls f.
func (f HandlerFunc) HandleEvent(ctx context.Context, event *Event) error {
	return f(ctx, event)
}

// Emitter publishes events.
type Emitter interface {
	EmitEvent(ctx context.Context, event *Event) error
}
