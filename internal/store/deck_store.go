package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/vocab-study/internal/domain"
)

// Storage keys of the three deck records.
const (
	KeyImportedDecks     = "vocabStudyImportedDecks_v2"
	KeyLastBuiltinDecks  = "vocabStudyLastBuiltinDecks_v2"
	KeyLastBuiltinLoaded = "vocabStudyLastBuiltinLoadedAt_v2"
)

// TimestampLayout is the ISO-8601 form used for the last-known-good timestamp.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// DeckStore reads and writes the deck records kept in a KV: the imported
// decks, the last-known-good built-in decks and the time they were fetched.
//
// Reads never fail. Missing, unparsable or unreadable data yields the record's
// default (no decks, no timestamp) and is logged. Writes always replace the
// whole record.
type DeckStore struct {
	kv     KV
	prefix string
	logger *slog.Logger
}

// NewDeckStore creates a DeckStore over kv. Every key is prefixed with prefix,
// which lets several profiles share one backend.
func NewDeckStore(kv KV, prefix string, logger *slog.Logger) *DeckStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &DeckStore{
		kv:     kv,
		prefix: prefix,
		logger: logger.With(slog.String("component", "deck_store")),
	}
}

func (s *DeckStore) key(name string) string {
	return s.prefix + name
}

// ImportedDecks returns the imported decks, newest first.
func (s *DeckStore) ImportedDecks(ctx context.Context) []domain.Deck {
	return s.readDecks(ctx, KeyImportedDecks)
}

// SetImportedDecks replaces the imported-deck record.
func (s *DeckStore) SetImportedDecks(ctx context.Context, decks []domain.Deck) error {
	raw, err := encodeDecks(decks)
	if err != nil {
		return NewStoreError("imported_decks", "write", "failed to encode decks", err)
	}
	if err := s.kv.Set(ctx, s.key(KeyImportedDecks), raw); err != nil {
		return NewStoreError("imported_decks", "write", "backend rejected write",
			fmt.Errorf("%w: %v", ErrWriteFailed, err))
	}
	return nil
}

// LastKnownGood returns the most recently fetched built-in decks.
func (s *DeckStore) LastKnownGood(ctx context.Context) []domain.Deck {
	return s.readDecks(ctx, KeyLastBuiltinDecks)
}

// LastKnownGoodAt returns when the last-known-good decks were fetched.
func (s *DeckStore) LastKnownGoodAt(ctx context.Context) (time.Time, bool) {
	raw, err := s.kv.Get(ctx, s.key(KeyLastBuiltinLoaded))
	if err != nil {
		if !IsNotFoundError(err) {
			s.logger.WarnContext(ctx, "failed to read last-known-good timestamp", slog.String("error", err.Error()))
		}
		return time.Time{}, false
	}
	at, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		s.logger.WarnContext(ctx, "ignoring unparsable last-known-good timestamp", slog.String("value", raw))
		return time.Time{}, false
	}
	return at, true
}

// SetLastKnownGood stores decks as the last-known-good built-in set together
// with the time they were fetched. Both keys are written in one batch, so
// the timestamp always describes the decks stored with it.
func (s *DeckStore) SetLastKnownGood(ctx context.Context, decks []domain.Deck, at time.Time) error {
	raw, err := encodeDecks(decks)
	if err != nil {
		return NewStoreError("last_builtin_decks", "write", "failed to encode decks", err)
	}
	err = s.kv.SetMany(ctx,
		Entry{Key: s.key(KeyLastBuiltinDecks), Value: raw},
		Entry{Key: s.key(KeyLastBuiltinLoaded), Value: at.UTC().Format(TimestampLayout)},
	)
	if err != nil {
		return NewStoreError("last_builtin_decks", "write", "backend rejected write",
			fmt.Errorf("%w: %v", ErrWriteFailed, err))
	}
	return nil
}

func (s *DeckStore) readDecks(ctx context.Context, name string) []domain.Deck {
	raw, err := s.kv.Get(ctx, s.key(name))
	if err != nil {
		if !IsNotFoundError(err) {
			s.logger.WarnContext(ctx, "failed to read deck record",
				slog.String("record", name),
				slog.String("error", err.Error()))
		}
		return []domain.Deck{}
	}

	decks, ok := decodeDecks(raw)
	if !ok {
		s.logger.WarnContext(ctx, "ignoring corrupt deck record", slog.String("record", name))
		return []domain.Deck{}
	}
	return decks
}

func decodeDecks(raw string) ([]domain.Deck, bool) {
	trimmed := bytes.TrimSpace([]byte(raw))
	switch string(trimmed) {
	case "", "null", "undefined":
		return nil, false
	}
	if trimmed[0] != '[' {
		return nil, false
	}
	var decks []domain.Deck
	if err := json.Unmarshal(trimmed, &decks); err != nil {
		return nil, false
	}
	return decks, true
}

func encodeDecks(decks []domain.Deck) (string, error) {
	if decks == nil {
		decks = []domain.Deck{}
	}
	raw, err := json.Marshal(decks)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
