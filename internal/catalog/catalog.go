package catalog

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/phrazzld/vocab-study/internal/domain"
	"github.com/phrazzld/vocab-study/internal/platform/metrics"
)

// Provenance tells where the active built-in decks came from.
type Provenance string

const (
	ProvenanceOnline       Provenance = "online"
	ProvenanceOfflineCache Provenance = "offline-cache"
	ProvenanceEmpty        Provenance = "empty"
)

// FeedFetcher returns the current built-in decks from their published source.
type FeedFetcher interface {
	Fetch(ctx context.Context) ([]domain.Deck, error)
}

// DeckRecords is the slice of the persistent store the catalog needs.
// *store.DeckStore implements it.
type DeckRecords interface {
	ImportedDecks(ctx context.Context) []domain.Deck
	LastKnownGood(ctx context.Context) []domain.Deck
	LastKnownGoodAt(ctx context.Context) (time.Time, bool)
	SetLastKnownGood(ctx context.Context, decks []domain.Deck, at time.Time) error
}

// LoadResult is the outcome of Catalog.Load.
type LoadResult struct {
	Decks      []domain.Deck
	Provenance Provenance
}

// Catalog merges built-in decks with imported decks.
//
// The built-in half is whatever the last Load produced. The imported half is
// re-read from the store on every Rebuild, so imports and deletions show up
// without any invalidation call.
type Catalog struct {
	feed    FeedFetcher
	records DeckRecords
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
	loc     *time.Location

	mu      sync.RWMutex
	builtin []domain.Deck
}

// Option customizes a Catalog.
type Option func(*Catalog)

// WithClock replaces time.Now as the source of last-known-good timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Catalog) { c.now = now }
}

// WithLocation sets the zone used to display timestamps in the status line.
func WithLocation(loc *time.Location) Option {
	return func(c *Catalog) { c.loc = loc }
}

// WithMetrics records every load in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Catalog) { c.metrics = m }
}

// New creates a Catalog. The built-in half starts empty until Load runs.
func New(feed FeedFetcher, records DeckRecords, logger *slog.Logger, opts ...Option) (*Catalog, error) {
	if feed == nil {
		return nil, errors.New("feed cannot be nil")
	}
	if records == nil {
		return nil, errors.New("deck records cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	c := &Catalog{
		feed:    feed,
		records: records,
		logger:  logger.With(slog.String("component", "catalog")),
		now:     time.Now,
		loc:     time.Local,
		builtin: []domain.Deck{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Load fetches the built-in feed, falling back to the last-known-good record
// when the feed is unavailable. It always produces a result.
func (c *Catalog) Load(ctx context.Context) LoadResult {
	result := c.load(ctx)

	c.mu.Lock()
	c.builtin = result.Decks
	c.mu.Unlock()

	c.metrics.CatalogLoaded(string(result.Provenance))
	c.logger.InfoContext(ctx, "built-in decks loaded",
		slog.String("provenance", string(result.Provenance)),
		slog.Int("decks", len(result.Decks)))
	return result
}

func (c *Catalog) load(ctx context.Context) LoadResult {
	decks, err := c.feed.Fetch(ctx)
	if err == nil {
		if err := c.records.SetLastKnownGood(ctx, decks, c.now()); err != nil {
			c.logger.WarnContext(ctx, "failed to save last-known-good decks",
				slog.String("error", err.Error()))
		}
		return LoadResult{Decks: decks, Provenance: ProvenanceOnline}
	}

	c.logger.WarnContext(ctx, "deck feed unavailable, using saved decks",
		slog.String("error", err.Error()))

	cached := c.records.LastKnownGood(ctx)
	if len(cached) > 0 {
		return LoadResult{Decks: cached, Provenance: ProvenanceOfflineCache}
	}
	return LoadResult{Decks: []domain.Deck{}, Provenance: ProvenanceEmpty}
}

// Rebuild returns imported decks followed by the built-in decks from the
// last Load, each group in its own order.
func (c *Catalog) Rebuild(ctx context.Context) Listing {
	imported := c.records.ImportedDecks(ctx)

	c.mu.RLock()
	builtin := c.builtin
	c.mu.RUnlock()

	listing := make(Listing, 0, len(imported)+len(builtin))
	for _, d := range imported {
		listing = append(listing, Entry{Deck: d, Origin: OriginImported})
	}
	for _, d := range builtin {
		listing = append(listing, Entry{Deck: d, Origin: OriginBuiltin})
	}
	return listing
}
