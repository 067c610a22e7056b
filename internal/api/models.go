package api

import "github.com/phrazzld/vocab-study/internal/importer"

// SettingsRequest is the body of PUT /api/settings.
type SettingsRequest struct {
	Shuffle *bool `json:"shuffle" validate:"required"`
}

// SettingsResponse reports the study settings.
type SettingsResponse struct {
	Shuffle bool `json:"shuffle"`
}

// AdvanceRequest is the body of POST /api/flashcards/{session}/advance.
type AdvanceRequest struct {
	Direction int `json:"direction" validate:"oneof=-1 1"`
}

// StartQuizRequest is the body of POST /api/decks/{id}/quiz.
type StartQuizRequest struct {
	Mode string `json:"mode" validate:"required"`
}

// AnswerRequest is the body of POST /api/quiz/{session}/answer.
type AnswerRequest struct {
	Choice *int `json:"choice" validate:"required"`
}

// ImportResponse reports an applied import.
type ImportResponse struct {
	importer.Result
}

// DeleteImportResponse reports the outcome of deleting one imported deck.
type DeleteImportResponse struct {
	ID      string `json:"id"`
	Removed bool   `json:"removed"`
}
