package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/vocab-study/internal/api/shared"
	"github.com/phrazzld/vocab-study/internal/domain"
	"github.com/phrazzld/vocab-study/internal/importer"
	"github.com/phrazzld/vocab-study/internal/service"
	"github.com/phrazzld/vocab-study/internal/session"
)

// ErrConfirmationRequired is returned when deleting every imported deck
// without confirm=true.
var ErrConfirmationRequired = errors.New("confirmation required")

// MapErrorToStatusCode maps internal errors to HTTP status codes.
func MapErrorToStatusCode(err error) int {
	var verr *domain.ValidationError
	var fieldErrs validator.ValidationErrors

	switch {
	case errors.Is(err, service.ErrDeckNotFound):
		return http.StatusNotFound

	case errors.Is(err, service.ErrStaleSession):
		return http.StatusConflict

	case errors.Is(err, importer.ErrImportRejected),
		errors.Is(err, domain.ErrInvalidQuizMode),
		errors.Is(err, session.ErrChoiceOutOfRange),
		errors.Is(err, shared.ErrEmptyBody),
		errors.Is(err, ErrConfirmationRequired),
		errors.As(err, &verr),
		errors.As(err, &fieldErrs):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err that never
// includes internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var fieldErrs validator.ValidationErrors
	var verr *domain.ValidationError

	switch {
	case errors.Is(err, importer.ErrImportRejected):
		return importer.FailureMessage
	case errors.Is(err, service.ErrDeckNotFound):
		return "Deck not found"
	case errors.Is(err, service.ErrStaleSession):
		return "Session is no longer active"
	case errors.Is(err, domain.ErrInvalidQuizMode):
		return "Invalid quiz mode"
	case errors.Is(err, session.ErrChoiceOutOfRange):
		return "Choice out of range"
	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"
	case errors.Is(err, ErrConfirmationRequired):
		return "Deleting all imported decks requires confirm=true"
	case errors.As(err, &fieldErrs):
		return SanitizeValidationError(fieldErrs)
	case errors.As(err, &verr):
		if verr.Field != "" {
			return "Invalid " + verr.Field
		}
		return "Invalid request"
	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError describes the first failed field of a struct
// validation without echoing the submitted value.
func SanitizeValidationError(errs validator.ValidationErrors) string {
	if len(errs) == 0 {
		return "Validation error"
	}
	fe := errs[0]
	return "Invalid " + strings.ToLower(fe.Field()) + ": " + validationTagMessage(fe.Tag())
}

func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "oneof":
		return "invalid value"
	case "min":
		return "too small"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the response for err. Import rejections are logged at
// WARN because they are the one failure the learner is told about.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	var opts []shared.ResponseOption
	if errors.Is(err, importer.ErrImportRejected) {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err, opts...)
}

// HandleMalformedRequest writes a 400 for a body that could not be decoded.
func HandleMalformedRequest(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, shared.ErrEmptyBody) {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
}
