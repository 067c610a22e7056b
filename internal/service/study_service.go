package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/phrazzld/vocab-study/internal/catalog"
	"github.com/phrazzld/vocab-study/internal/domain"
	"github.com/phrazzld/vocab-study/internal/events"
	"github.com/phrazzld/vocab-study/internal/importer"
	"github.com/phrazzld/vocab-study/internal/platform/logger"
	"github.com/phrazzld/vocab-study/internal/platform/metrics"
	"github.com/phrazzld/vocab-study/internal/session"
	"github.com/phrazzld/vocab-study/internal/shuffle"
)

// DeckCatalog is the catalog behaviour the controller depends on.
// *catalog.Catalog implements it.
type DeckCatalog interface {
	Load(ctx context.Context) catalog.LoadResult
	Rebuild(ctx context.Context) catalog.Listing
	Status(ctx context.Context, p catalog.Provenance) catalog.Status
}

// DeckImporter is the import behaviour the controller depends on.
// *importer.Manager implements it.
type DeckImporter interface {
	ImportDocument(ctx context.Context, raw []byte) (importer.Result, error)
	List(ctx context.Context) []importer.Summary
	DeleteImported(ctx context.Context, id string) (bool, error)
	DeleteAllImported(ctx context.Context) error
}

// StudyService is the application controller.
type StudyService interface {
	// Startup loads the built-in decks and builds the first catalog.
	Startup(ctx context.Context) CatalogView
	// Refresh re-fetches the built-in decks.
	Refresh(ctx context.Context) CatalogView
	Catalog(ctx context.Context) CatalogView
	Status(ctx context.Context) catalog.Status

	Shuffle() bool
	SetShuffle(on bool)

	StartFlashcards(ctx context.Context, deckID string) (FlashcardsView, error)
	Flip(ctx context.Context, sessionID uuid.UUID) (FlashcardsView, error)
	Advance(ctx context.Context, sessionID uuid.UUID, dir session.Direction) (FlashcardsView, error)

	StartQuiz(ctx context.Context, deckID string, mode domain.QuizMode) (QuizView, error)
	Answer(ctx context.Context, sessionID uuid.UUID, choice int) (QuizView, error)
	NextQuestion(ctx context.Context, sessionID uuid.UUID) (QuizView, error)

	// LeaveSession discards the active session, if any.
	LeaveSession(ctx context.Context)

	ImportDocument(ctx context.Context, raw []byte) (importer.Result, error)
	ImportedDecks(ctx context.Context) ImportedView
	DeleteImported(ctx context.Context, id string) (bool, error)
	DeleteAllImported(ctx context.Context) error

	events.Handler
}

// Option customizes the study service.
type Option func(*studyServiceImpl)

// WithShuffleSource sets the randomness used by new sessions.
func WithShuffleSource(src shuffle.Source) Option {
	return func(s *studyServiceImpl) { s.src = src }
}

// WithMetrics records session and answer metrics in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *studyServiceImpl) { s.metrics = m }
}

const (
	kindFlashcards = "flashcards"
	kindQuiz       = "quiz"
)

type activeSession struct {
	id         uuid.UUID
	flashcards *session.Flashcards
	quiz       *session.Quiz
}

func (a *activeSession) kind() string {
	if a.quiz != nil {
		return kindQuiz
	}
	return kindFlashcards
}

type studyServiceImpl struct {
	catalog  DeckCatalog
	importer DeckImporter
	src      shuffle.Source
	metrics  *metrics.Metrics
	logger   *slog.Logger

	// stale is set by imported_decks.changed events, which may arrive while
	// mu is held by the action that caused them.
	stale atomic.Bool

	mu         sync.Mutex
	provenance catalog.Provenance
	listing    catalog.Listing
	shuffle    bool
	active     *activeSession
}

var _ StudyService = (*studyServiceImpl)(nil)

// NewStudyService creates the controller. shuffleOn is the initial shuffle
// preference.
func NewStudyService(
	cat DeckCatalog,
	imp DeckImporter,
	shuffleOn bool,
	logger *slog.Logger,
	opts ...Option,
) (StudyService, error) {
	if cat == nil {
		return nil, NewStudyServiceError("create", "deck catalog cannot be nil", nil)
	}
	if imp == nil {
		return nil, NewStudyServiceError("create", "deck importer cannot be nil", nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &studyServiceImpl{
		catalog:    cat,
		importer:   imp,
		src:        shuffle.Default(),
		logger:     logger.With(slog.String("component", "study_service")),
		provenance: catalog.ProvenanceEmpty,
		listing:    catalog.Listing{},
		shuffle:    shuffleOn,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *studyServiceImpl) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}

func (s *studyServiceImpl) Startup(ctx context.Context) CatalogView {
	return s.Refresh(ctx)
}

func (s *studyServiceImpl) Refresh(ctx context.Context) CatalogView {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := s.catalog.Load(ctx)
	s.provenance = result.Provenance
	s.rebuildLocked(ctx)
	return s.catalogViewLocked(ctx)
}

func (s *studyServiceImpl) Catalog(ctx context.Context) CatalogView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshListingLocked(ctx)
	return s.catalogViewLocked(ctx)
}

func (s *studyServiceImpl) Status(ctx context.Context) catalog.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Status(ctx, s.provenance)
}

func (s *studyServiceImpl) Shuffle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shuffle
}

// SetShuffle applies to sessions started afterwards.
func (s *studyServiceImpl) SetShuffle(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shuffle = on
}

func (s *studyServiceImpl) StartFlashcards(ctx context.Context, deckID string) (FlashcardsView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deck, err := s.findDeckLocked(ctx, deckID)
	if err != nil {
		return FlashcardsView{}, err
	}

	active := &activeSession{id: uuid.New(), flashcards: session.NewFlashcards(deck, s.shuffle, s.src)}
	s.replaceActiveLocked(active)
	s.log(ctx).InfoContext(ctx, "started flashcards",
		slog.String("deck_id", deck.ID),
		slog.String("session_id", active.id.String()),
		slog.Int("cards", active.flashcards.Len()))
	return flashcardsView(active), nil
}

func (s *studyServiceImpl) Flip(ctx context.Context, sessionID uuid.UUID) (FlashcardsView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active, err := s.flashcardsLocked(sessionID)
	if err != nil {
		return FlashcardsView{}, err
	}
	active.flashcards.Flip()
	return flashcardsView(active), nil
}

func (s *studyServiceImpl) Advance(ctx context.Context, sessionID uuid.UUID, dir session.Direction) (FlashcardsView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active, err := s.flashcardsLocked(sessionID)
	if err != nil {
		return FlashcardsView{}, err
	}
	active.flashcards.Advance(dir)
	return flashcardsView(active), nil
}

func (s *studyServiceImpl) StartQuiz(ctx context.Context, deckID string, mode domain.QuizMode) (QuizView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deck, err := s.findDeckLocked(ctx, deckID)
	if err != nil {
		return QuizView{}, err
	}
	quiz, err := session.NewQuiz(deck, mode, s.shuffle, s.src)
	if err != nil {
		return QuizView{}, err
	}

	active := &activeSession{id: uuid.New(), quiz: quiz}
	s.replaceActiveLocked(active)
	s.log(ctx).InfoContext(ctx, "started quiz",
		slog.String("deck_id", deck.ID),
		slog.String("mode", string(mode)),
		slog.String("session_id", active.id.String()),
		slog.Int("questions", quiz.Len()))
	return quizView(active, false), nil
}

func (s *studyServiceImpl) Answer(ctx context.Context, sessionID uuid.UUID, choice int) (QuizView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active, err := s.quizLocked(sessionID)
	if err != nil {
		return QuizView{}, err
	}

	wasLocked := active.quiz.Locked()
	outcome, err := active.quiz.Answer(choice)
	if err != nil {
		return QuizView{}, domain.NewValidationError("choice", err.Error(), err)
	}
	if !wasLocked && active.quiz.Locked() {
		s.metrics.QuizAnswer(outcome.Correct)
	}
	return quizView(active, false), nil
}

func (s *studyServiceImpl) NextQuestion(ctx context.Context, sessionID uuid.UUID) (QuizView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active, err := s.quizLocked(sessionID)
	if err != nil {
		return QuizView{}, err
	}
	restarted := active.quiz.AdvanceOrRestart()
	if restarted {
		s.log(ctx).DebugContext(ctx, "quiz restarted",
			slog.String("session_id", active.id.String()),
			slog.Int("pass", active.quiz.Pass()))
	}
	return quizView(active, restarted), nil
}

func (s *studyServiceImpl) LeaveSession(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceActiveLocked(nil)
}

func (s *studyServiceImpl) ImportDocument(ctx context.Context, raw []byte) (importer.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.importer.ImportDocument(ctx, raw)
	if err != nil {
		if errors.Is(err, importer.ErrImportRejected) {
			return importer.Result{}, err
		}
		return importer.Result{}, NewStudyServiceError("import", "failed to save imported decks", err)
	}
	s.rebuildLocked(ctx)
	return result, nil
}

func (s *studyServiceImpl) ImportedDecks(ctx context.Context) ImportedView {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := ImportedView{Decks: s.importer.List(ctx)}
	if len(view.Decks) == 0 {
		view.EmptyMessage = NoImportedDecksMessage
	}
	return view
}

func (s *studyServiceImpl) DeleteImported(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.importer.DeleteImported(ctx, id)
	if err != nil {
		return false, NewStudyServiceError("delete imported", "failed to save imported decks", err)
	}
	s.rebuildLocked(ctx)
	return removed, nil
}

func (s *studyServiceImpl) DeleteAllImported(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.importer.DeleteAllImported(ctx); err != nil {
		return NewStudyServiceError("delete all imported", "failed to clear imported decks", err)
	}
	s.rebuildLocked(ctx)
	return nil
}

// HandleEvent marks the listing for rebuild when the imported decks change.
// It does not take mu, so it is safe to call from inside an action.
func (s *studyServiceImpl) HandleEvent(ctx context.Context, event *events.Event) error {
	if event.Type == events.TypeImportedDecksChanged {
		s.stale.Store(true)
	}
	return nil
}

func (s *studyServiceImpl) refreshListingLocked(ctx context.Context) {
	if s.stale.Load() {
		s.rebuildLocked(ctx)
	}
}

func (s *studyServiceImpl) rebuildLocked(ctx context.Context) {
	s.stale.Store(false)
	s.listing = s.catalog.Rebuild(ctx)
}

func (s *studyServiceImpl) catalogViewLocked(ctx context.Context) CatalogView {
	view := CatalogView{
		Decks:   summarize(s.listing),
		Status:  s.catalog.Status(ctx, s.provenance),
		Shuffle: s.shuffle,
	}
	if len(view.Decks) == 0 {
		view.EmptyMessage = NoDecksMessage
	}
	return view
}

func (s *studyServiceImpl) findDeckLocked(ctx context.Context, id string) (domain.Deck, error) {
	s.refreshListingLocked(ctx)
	entry, ok := s.listing.Find(id)
	if !ok {
		return domain.Deck{}, ErrDeckNotFound
	}
	return entry.Deck, nil
}

func (s *studyServiceImpl) replaceActiveLocked(next *activeSession) {
	if s.active != nil {
		s.metrics.SessionClosed(s.active.kind())
	}
	s.active = next
	if next != nil {
		s.metrics.SessionOpened(next.kind())
	}
}

func (s *studyServiceImpl) flashcardsLocked(id uuid.UUID) (*activeSession, error) {
	if s.active == nil || s.active.id != id || s.active.flashcards == nil {
		return nil, ErrStaleSession
	}
	return s.active, nil
}

func (s *studyServiceImpl) quizLocked(id uuid.UUID) (*activeSession, error) {
	if s.active == nil || s.active.id != id || s.active.quiz == nil {
		return nil, ErrStaleSession
	}
	return s.active, nil
}

func flashcardsView(a *activeSession) FlashcardsView {
	return FlashcardsView{SessionID: a.id, FlashcardsSnapshot: a.flashcards.Snapshot()}
}

func quizView(a *activeSession, restarted bool) QuizView {
	return QuizView{SessionID: a.id, Restarted: restarted, QuizSnapshot: a.quiz.Snapshot()}
}
