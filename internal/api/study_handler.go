package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/vocab-study/internal/api/shared"
	"github.com/phrazzld/vocab-study/internal/domain"
	"github.com/phrazzld/vocab-study/internal/platform/logger"
	"github.com/phrazzld/vocab-study/internal/service"
	"github.com/phrazzld/vocab-study/internal/session"
)

// StudyHandler serves the catalog, settings and study-session routes.
type StudyHandler struct {
	svc    service.StudyService
	logger *slog.Logger
}

// NewStudyHandler creates a StudyHandler.
func NewStudyHandler(svc service.StudyService, logger *slog.Logger) *StudyHandler {
	if svc == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("study service cannot be nil for StudyHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &StudyHandler{
		svc:    svc,
		logger: logger.With(slog.String("component", "study_handler")),
	}
}

// GetCatalog handles GET /api/catalog.
func (h *StudyHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.svc.Catalog(r.Context()))
}

// RefreshCatalog handles POST /api/catalog/refresh. Feed failures are not
// errors; the returned status says where the decks came from.
func (h *StudyHandler) RefreshCatalog(w http.ResponseWriter, r *http.Request) {
	view := h.svc.Refresh(r.Context())
	logger.FromContextOrDefault(r.Context(), h.logger).InfoContext(r.Context(), "catalog refreshed",
		slog.String("provenance", string(view.Status.Provenance)),
		slog.Int("decks", len(view.Decks)))
	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// GetSettings handles GET /api/settings.
func (h *StudyHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, SettingsResponse{Shuffle: h.svc.Shuffle()})
}

// UpdateSettings handles PUT /api/settings.
func (h *StudyHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleMalformedRequest(w, r, err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	h.svc.SetShuffle(*req.Shuffle)
	shared.RespondWithJSON(w, r, http.StatusOK, SettingsResponse{Shuffle: h.svc.Shuffle()})
}

// StartFlashcards handles POST /api/decks/{id}/flashcards.
func (h *StudyHandler) StartFlashcards(w http.ResponseWriter, r *http.Request) {
	deckID, err := getDeckID(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	view, err := h.svc.StartFlashcards(r.Context(), deckID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, view)
}

// Flip handles POST /api/flashcards/{session}/flip.
func (h *StudyHandler) Flip(w http.ResponseWriter, r *http.Request) {
	id, err := getSessionID(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	view, err := h.svc.Flip(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// Advance handles POST /api/flashcards/{session}/advance.
func (h *StudyHandler) Advance(w http.ResponseWriter, r *http.Request) {
	id, err := getSessionID(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	var req AdvanceRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleMalformedRequest(w, r, err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	view, err := h.svc.Advance(r.Context(), id, session.Direction(req.Direction))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// StartQuiz handles POST /api/decks/{id}/quiz.
func (h *StudyHandler) StartQuiz(w http.ResponseWriter, r *http.Request) {
	deckID, err := getDeckID(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	var req StartQuizRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleMalformedRequest(w, r, err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	mode, err := domain.ParseQuizMode(req.Mode)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	view, err := h.svc.StartQuiz(r.Context(), deckID, mode)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, view)
}

// Answer handles POST /api/quiz/{session}/answer. Answering a question that
// is already answered returns the locked view unchanged.
func (h *StudyHandler) Answer(w http.ResponseWriter, r *http.Request) {
	id, err := getSessionID(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	var req AnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleMalformedRequest(w, r, err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	view, err := h.svc.Answer(r.Context(), id, *req.Choice)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// NextQuestion handles POST /api/quiz/{session}/next.
func (h *StudyHandler) NextQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := getSessionID(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	view, err := h.svc.NextQuestion(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// LeaveSession handles DELETE /api/session.
func (h *StudyHandler) LeaveSession(w http.ResponseWriter, r *http.Request) {
	h.svc.LeaveSession(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
