package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/phrazzld/vocab-study/internal/api/shared"
	"github.com/phrazzld/vocab-study/internal/importer"
	"github.com/phrazzld/vocab-study/internal/platform/logger"
	"github.com/phrazzld/vocab-study/internal/service"
)

// ImportFormField is the multipart field that carries an uploaded deck file.
const ImportFormField = "file"

// ImportHandler serves the imported-deck management routes.
type ImportHandler struct {
	svc    service.StudyService
	logger *slog.Logger
}

// NewImportHandler creates an ImportHandler.
func NewImportHandler(svc service.StudyService, logger *slog.Logger) *ImportHandler {
	if svc == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("study service cannot be nil for ImportHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ImportHandler{
		svc:    svc,
		logger: logger.With(slog.String("component", "import_handler")),
	}
}

// ListImports handles GET /api/imports.
func (h *ImportHandler) ListImports(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.svc.ImportedDecks(r.Context()))
}

// CreateImport handles POST /api/imports. The document is either the raw
// request body or the "file" part of a multipart form.
func (h *ImportHandler) CreateImport(w http.ResponseWriter, r *http.Request) {
	raw, err := readDocument(w, r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	result, err := h.svc.ImportDocument(r.Context(), raw)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	logger.FromContextOrDefault(r.Context(), h.logger).InfoContext(r.Context(), "decks imported",
		slog.Int("imported", result.Imported),
		slog.Any("deck_ids", result.DeckIDs))
	shared.RespondWithJSON(w, r, http.StatusCreated, ImportResponse{Result: result})
}

// DeleteImport handles DELETE /api/imports/{id}. Deleting an unknown id is
// not an error.
func (h *ImportHandler) DeleteImport(w http.ResponseWriter, r *http.Request) {
	id, err := getDeckID(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	removed, err := h.svc.DeleteImported(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, DeleteImportResponse{ID: id, Removed: removed})
}

// DeleteAllImports handles DELETE /api/imports?confirm=true.
func (h *ImportHandler) DeleteAllImports(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("confirm") != "true" {
		HandleAPIError(w, r, ErrConfirmationRequired)
		return
	}
	if err := h.svc.DeleteAllImported(r.Context()); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func readDocument(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	// Room for multipart framing around a maximum-size document.
	r.Body = http.MaxBytesReader(w, r.Body, importer.MaxDocumentBytes+64<<10)

	var src io.Reader = r.Body
	if mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mediaType == "multipart/form-data" {
		file, _, err := r.FormFile(ImportFormField)
		if err != nil {
			return nil, tooLargeOr(err, fmt.Errorf("%w: missing %q form file", importer.ErrImportRejected, ImportFormField))
		}
		defer file.Close()
		src = file
	}

	raw, err := io.ReadAll(io.LimitReader(src, importer.MaxDocumentBytes+1))
	if err != nil {
		return nil, tooLargeOr(err, fmt.Errorf("failed to read deck document: %w", err))
	}
	if len(raw) > importer.MaxDocumentBytes {
		return nil, fmt.Errorf("%w: document larger than %d bytes", importer.ErrImportRejected, importer.MaxDocumentBytes)
	}
	return raw, nil
}

func tooLargeOr(err, fallback error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return fmt.Errorf("%w: request body larger than %d bytes", importer.ErrImportRejected, tooLarge.Limit)
	}
	return fallback
}
