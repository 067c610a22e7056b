package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/phrazzld/vocab-study/internal/domain"
	"github.com/phrazzld/vocab-study/internal/service"
)

// getSessionID parses the {session} path parameter. A malformed id can never
// name the active session, so it is reported as stale.
func getSessionID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "session"))
	if err != nil {
		return uuid.Nil, service.ErrStaleSession
	}
	return id, nil
}

// getDeckID returns the {id} path parameter. Deck ids are free-form strings.
func getDeckID(r *http.Request) (string, error) {
	id := chi.URLParam(r, "id")
	if strings.TrimSpace(id) == "" {
		return "", domain.NewValidationError("id", "is required", domain.ErrValidation)
	}
	return id, nil
}
