package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/vocab-study/internal/domain"
)

// maxFeedBytes bounds how much of a feed response is read.
const maxFeedBytes = 16 << 20

// HTTPFeed fetches the built-in deck feed over HTTP, bypassing caches.
type HTTPFeed struct {
	url        string
	httpClient *http.Client
	log        *slog.Logger
}

var _ FeedFetcher = (*HTTPFeed)(nil)

// NewHTTPFeed creates a feed reading url with the given request timeout.
func NewHTTPFeed(url string, timeout time.Duration, logger *slog.Logger) *HTTPFeed {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPFeed{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "deck_feed"),
	}
}

// Fetch requests a fresh copy of the feed and parses it. Any status other
// than 200 and any body that is not an array of valid decks is an error.
func (f *HTTPFeed) Fetch(ctx context.Context) ([]domain.Deck, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("deck feed: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache, no-store")
	req.Header.Set("Pragma", "no-cache")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("deck feed: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("deck feed: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, fmt.Errorf("deck feed: read body: %w", err)
	}

	decks, err := domain.ParseDeckFeed(body)
	if err != nil {
		return nil, fmt.Errorf("deck feed: %w", err)
	}

	f.log.DebugContext(ctx, "deck feed response",
		slog.Int("status", resp.StatusCode),
		slog.Int("decks", len(decks)))
	return decks, nil
}
