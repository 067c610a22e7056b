// Package importer applies user-supplied deck files to the device's
// imported-deck record.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/phrazzld/vocab-study/internal/domain"
	"github.com/phrazzld/vocab-study/internal/events"
	"github.com/phrazzld/vocab-study/internal/platform/metrics"
)

// User-facing outcome messages.
const (
	SuccessMessage = "Imported deck successfully."
	FailureMessage = "Import failed. Make sure the file is valid JSON in the expected format."
)

// MaxDocumentBytes bounds the size of an imported document.
const MaxDocumentBytes = 8 << 20

// ErrImportRejected wraps every reason a document was not applied.
var ErrImportRejected = errors.New("import rejected")

// Records is the part of the persistent store the manager reads and writes.
// *store.DeckStore implements it.
type Records interface {
	ImportedDecks(ctx context.Context) []domain.Deck
	SetImportedDecks(ctx context.Context, decks []domain.Deck) error
}

// Result describes an applied import.
type Result struct {
	Imported int      `json:"imported"`
	Added    int      `json:"added"`
	Replaced int      `json:"replaced"`
	DeckIDs  []string `json:"deckIds"`
	Message  string   `json:"message"`
}

// Summary is the management view of one imported deck.
type Summary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Manager validates deck documents and upserts them into Records. Callers
// must not run two mutations concurrently: each is a read-modify-write of the
// whole record.
type Manager struct {
	records Records
	emitter events.Emitter
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewManager creates a Manager. emitter and m may be nil.
func NewManager(records Records, emitter events.Emitter, m *metrics.Metrics, logger *slog.Logger) (*Manager, error) {
	if records == nil {
		return nil, errors.New("records cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		records: records,
		emitter: emitter,
		metrics: m,
		logger:  logger.With(slog.String("component", "import_manager")),
	}, nil
}

// ImportDocument parses raw as one deck or an array of decks and upserts each
// by id: an existing deck is replaced where it stands, a new deck goes to the
// front. A single invalid deck rejects the whole document and nothing is
// written.
func (m *Manager) ImportDocument(ctx context.Context, raw []byte) (Result, error) {
	decks, err := domain.ParseDeckDocument(raw)
	if err != nil {
		m.metrics.DeckImport(false)
		m.logger.InfoContext(ctx, "rejected deck document", slog.String("reason", err.Error()))
		return Result{}, fmt.Errorf("%w: %w", ErrImportRejected, err)
	}

	current := m.records.ImportedDecks(ctx)
	updated, added, replaced := upsert(current, decks)

	if err := m.records.SetImportedDecks(ctx, updated); err != nil {
		m.metrics.DeckImport(false)
		return Result{}, fmt.Errorf("failed to save imported decks: %w", err)
	}

	ids := make([]string, len(decks))
	for i, d := range decks {
		ids[i] = d.ID
	}
	m.metrics.DeckImport(true)
	m.logger.InfoContext(ctx, "imported decks",
		slog.Int("added", added),
		slog.Int("replaced", replaced),
		slog.Any("deck_ids", ids))
	m.emit(ctx, events.ImportedDecksChanged{Action: "import", DeckIDs: ids, Total: len(updated)})

	return Result{
		Imported: len(decks),
		Added:    added,
		Replaced: replaced,
		DeckIDs:  ids,
		Message:  SuccessMessage,
	}, nil
}

// ImportReader reads a document from r and imports it.
func (m *Manager) ImportReader(ctx context.Context, r io.Reader) (Result, error) {
	raw, err := io.ReadAll(io.LimitReader(r, MaxDocumentBytes+1))
	if err != nil {
		return Result{}, fmt.Errorf("failed to read deck document: %w", err)
	}
	if len(raw) > MaxDocumentBytes {
		m.metrics.DeckImport(false)
		return Result{}, fmt.Errorf("%w: document larger than %d bytes", ErrImportRejected, MaxDocumentBytes)
	}
	return m.ImportDocument(ctx, raw)
}

// ImportFile imports the document stored at path.
func (m *Manager) ImportFile(ctx context.Context, path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open deck document: %w", err)
	}
	defer f.Close()
	return m.ImportReader(ctx, f)
}

// List returns the imported decks, newest first.
func (m *Manager) List(ctx context.Context) []Summary {
	decks := m.records.ImportedDecks(ctx)
	out := make([]Summary, len(decks))
	for i, d := range decks {
		out[i] = Summary{ID: d.ID, Title: d.Title}
	}
	return out
}

// DeleteImported removes every imported deck with id. It reports whether
// anything was removed; an unknown id is not an error.
func (m *Manager) DeleteImported(ctx context.Context, id string) (bool, error) {
	current := m.records.ImportedDecks(ctx)
	kept := make([]domain.Deck, 0, len(current))
	for _, d := range current {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	if len(kept) == len(current) {
		return false, nil
	}

	if err := m.records.SetImportedDecks(ctx, kept); err != nil {
		return false, fmt.Errorf("failed to save imported decks: %w", err)
	}
	m.logger.InfoContext(ctx, "deleted imported deck", slog.String("deck_id", id))
	m.emit(ctx, events.ImportedDecksChanged{Action: "delete", DeckIDs: []string{id}, Total: len(kept)})
	return true, nil
}

// DeleteAllImported clears the imported-deck record. Confirmation is the
// caller's responsibility.
func (m *Manager) DeleteAllImported(ctx context.Context) error {
	if err := m.records.SetImportedDecks(ctx, []domain.Deck{}); err != nil {
		return fmt.Errorf("failed to clear imported decks: %w", err)
	}
	m.logger.InfoContext(ctx, "deleted all imported decks")
	m.emit(ctx, events.ImportedDecksChanged{Action: "delete_all", Total: 0})
	return nil
}

func (m *Manager) emit(ctx context.Context, payload events.ImportedDecksChanged) {
	if m.emitter == nil {
		return
	}
	event, err := events.NewEvent(events.TypeImportedDecksChanged, payload)
	if err != nil {
		m.logger.ErrorContext(ctx, "failed to build event", slog.String("error", err.Error()))
		return
	}
	if err := m.emitter.EmitEvent(ctx, event); err != nil {
		m.logger.WarnContext(ctx, "imported decks changed handler failed", slog.String("error", err.Error()))
	}
}

// upsert applies incoming to current in order. Each deck replaces the first
// deck with its id in place, or is prepended when its id is new.
func upsert(current, incoming []domain.Deck) (out []domain.Deck, added, replaced int) {
	out = append([]domain.Deck(nil), current...)
	for _, d := range incoming {
		idx := -1
		for i := range out {
			if out[i].ID == d.ID {
				idx = i
				break
			}
		}
		if idx >= 0 {
			out[idx] = d
			replaced++
			continue
		}
		out = append([]domain.Deck{d}, out...)
		added++
	}
	return out, added, replaced
}
