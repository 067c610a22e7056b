package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/vocab-study/internal/domain"
	"github.com/phrazzld/vocab-study/internal/platform/metrics"
	"github.com/phrazzld/vocab-study/internal/store"
)

// mockFeed is a FeedFetcher driven by a function field.
type mockFeed struct {
	FetchFn func(ctx context.Context) ([]domain.Deck, error)
}

func (m *mockFeed) Fetch(ctx context.Context) ([]domain.Deck, error) {
	return m.FetchFn(ctx)
}

func feedOf(decks ...domain.Deck) *mockFeed {
	return &mockFeed{FetchFn: func(context.Context) ([]domain.Deck, error) { return decks, nil }}
}

func failingFeed() *mockFeed {
	return &mockFeed{FetchFn: func(context.Context) ([]domain.Deck, error) {
		return nil, errors.New("deck feed: unexpected status 500")
	}}
}

func deck(id string) domain.Deck {
	return domain.Deck{
		ID:             id,
		Title:          "Deck " + id,
		Cards:          []domain.Card{},
		DefinitionMCQs: []domain.Question{},
		UsageMCQs:      []domain.Question{},
	}
}

var fixedNow = time.Date(2026, 5, 1, 12, 30, 0, 0, time.UTC)

func newCatalog(t *testing.T, feed FeedFetcher, records *store.DeckStore) *Catalog {
	t.Helper()
	c, err := New(feed, records, nil,
		WithClock(func() time.Time { return fixedNow }),
		WithLocation(time.UTC))
	require.NoError(t, err)
	return c
}

func TestNew_RequiresDependencies(t *testing.T) {
	t.Parallel()
	records := store.NewDeckStore(store.NewMemoryKV(), "", nil)

	_, err := New(nil, records, nil)
	assert.Error(t, err)
	_, err = New(feedOf(), nil, nil)
	assert.Error(t, err)
}

func TestLoad_OnlineSavesLastKnownGood(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	records := store.NewDeckStore(store.NewMemoryKV(), "", nil)
	c := newCatalog(t, feedOf(deck("b1"), deck("b2")), records)

	result := c.Load(ctx)

	assert.Equal(t, ProvenanceOnline, result.Provenance)
	assert.Equal(t, []domain.Deck{deck("b1"), deck("b2")}, result.Decks)
	assert.Equal(t, result.Decks, records.LastKnownGood(ctx))
	at, ok := records.LastKnownGoodAt(ctx)
	require.True(t, ok)
	assert.True(t, fixedNow.Equal(at))
}

func TestLoad_Fallback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		saved    []domain.Deck
		wantProv Provenance
		want     []domain.Deck
	}{
		{
			name:     "saved decks give offline-cache",
			saved:    []domain.Deck{deck("old1"), deck("old2")},
			wantProv: ProvenanceOfflineCache,
			want:     []domain.Deck{deck("old1"), deck("old2")},
		},
		{
			name:     "nothing saved gives empty",
			wantProv: ProvenanceEmpty,
			want:     []domain.Deck{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			records := store.NewDeckStore(store.NewMemoryKV(), "", nil)
			if tc.saved != nil {
				require.NoError(t, records.SetLastKnownGood(ctx, tc.saved, fixedNow.Add(-time.Hour)))
			}

			c := newCatalog(t, failingFeed(), records)
			result := c.Load(ctx)

			assert.Equal(t, tc.wantProv, result.Provenance)
			assert.Equal(t, tc.want, result.Decks)
		})
	}
}

func TestLoad_HTTP500UsesSavedDecks(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	records := store.NewDeckStore(store.NewMemoryKV(), "", nil)
	saved := []domain.Deck{deck("cached")}
	require.NoError(t, records.SetLastKnownGood(ctx, saved, fixedNow))

	c := newCatalog(t, NewHTTPFeed(srv.URL, time.Second, nil), records)
	result := c.Load(ctx)

	assert.Equal(t, ProvenanceOfflineCache, result.Provenance)
	assert.Equal(t, saved, result.Decks)
}

func TestLoad_PersistFailureKeepsOnline(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	records := store.NewDeckStore(rejectingKV{store.NewMemoryKV()}, "", nil)
	c := newCatalog(t, feedOf(deck("b1")), records)

	result := c.Load(ctx)
	assert.Equal(t, ProvenanceOnline, result.Provenance)
	assert.Len(t, result.Decks, 1)
}

// rejectingKV accepts reads but fails every write.
type rejectingKV struct{ *store.MemoryKV }

func (rejectingKV) SetMany(context.Context, ...store.Entry) error { return errors.New("quota exceeded") }

func TestRebuild_ImportedFirst(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	records := store.NewDeckStore(store.NewMemoryKV(), "", nil)
	require.NoError(t, records.SetImportedDecks(ctx, []domain.Deck{deck("i2"), deck("i1")}))

	c := newCatalog(t, feedOf(deck("b1"), deck("b2")), records)
	assert.Len(t, c.Rebuild(ctx), 2, "no built-in decks before Load")

	c.Load(ctx)
	listing := c.Rebuild(ctx)

	ids := make([]string, 0, len(listing))
	for _, e := range listing {
		ids = append(ids, e.Deck.ID)
	}
	assert.Equal(t, []string{"i2", "i1", "b1", "b2"}, ids)
	assert.Equal(t, OriginImported, listing[0].Origin)
	assert.Equal(t, OriginBuiltin, listing[3].Origin)

	// Imports made behind the catalog's back are picked up.
	require.NoError(t, records.SetImportedDecks(ctx, nil))
	assert.Equal(t, []domain.Deck{deck("b1"), deck("b2")}, c.Rebuild(ctx).Decks())
}

func TestListingFind_ImportedShadowsBuiltin(t *testing.T) {
	t.Parallel()
	shadow := deck("dup")
	shadow.Title = "Mine"
	listing := Listing{
		{Deck: shadow, Origin: OriginImported},
		{Deck: deck("dup"), Origin: OriginBuiltin},
	}

	e, ok := listing.Find("dup")
	require.True(t, ok)
	assert.Equal(t, "Mine", e.Deck.Title)
	assert.Equal(t, OriginImported, e.Origin)

	_, ok = listing.Find("missing")
	assert.False(t, ok)
}

func TestStatusSummary(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	records := store.NewDeckStore(store.NewMemoryKV(), "", nil)
	c := newCatalog(t, feedOf(), records)

	assert.Equal(t, "No built-in decks loaded yet.", c.StatusSummary(ctx, ProvenanceEmpty))

	require.NoError(t, records.SetLastKnownGood(ctx, []domain.Deck{deck("b")}, fixedNow))
	require.NoError(t, records.SetImportedDecks(ctx, []domain.Deck{deck("i1"), deck("i2")}))

	assert.Equal(t,
		"Loaded latest built-in decks (online). Last built-in update: May 1, 2026, 12:30:00 PM. Imported decks on device: 2.",
		c.StatusSummary(ctx, ProvenanceOnline))
	assert.Equal(t,
		"Offline: using last saved built-in decks. Last built-in update: May 1, 2026, 12:30:00 PM. Imported decks on device: 2.",
		c.StatusSummary(ctx, ProvenanceOfflineCache))

	st := c.Status(ctx, ProvenanceOnline)
	assert.Equal(t, 2, st.ImportedCount)
	require.NotNil(t, st.LastUpdated)
	assert.True(t, fixedNow.Equal(*st.LastUpdated))
}

func TestStatusSummary_UsesDisplayLocation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	records := store.NewDeckStore(store.NewMemoryKV(), "", nil)
	require.NoError(t, records.SetLastKnownGood(ctx, []domain.Deck{deck("b")}, fixedNow))

	c, err := New(feedOf(), records, nil, WithLocation(time.FixedZone("PDT", -7*3600)))
	require.NoError(t, err)

	assert.Equal(t,
		"Offline: using last saved built-in decks. Last built-in update: May 1, 2026, 5:30:00 AM.",
		c.StatusSummary(ctx, ProvenanceOfflineCache))
}

func TestLoad_RecordsMetrics(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	records := store.NewDeckStore(store.NewMemoryKV(), "", nil)
	m := metrics.New(prometheus.NewRegistry())

	c, err := New(failingFeed(), records, nil, WithMetrics(m))
	require.NoError(t, err)
	assert.NotPanics(t, func() { c.Load(ctx) })
}
