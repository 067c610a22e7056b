package api

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the study and import routes on r, which is expected
// to be the /api sub-router.
func RegisterRoutes(r chi.Router, study *StudyHandler, imports *ImportHandler) {
	r.Get("/catalog", study.GetCatalog)
	r.Post("/catalog/refresh", study.RefreshCatalog)

	r.Get("/settings", study.GetSettings)
	r.Put("/settings", study.UpdateSettings)

	r.Post("/decks/{id}/flashcards", study.StartFlashcards)
	r.Post("/flashcards/{session}/flip", study.Flip)
	r.Post("/flashcards/{session}/advance", study.Advance)

	r.Post("/decks/{id}/quiz", study.StartQuiz)
	r.Post("/quiz/{session}/answer", study.Answer)
	r.Post("/quiz/{session}/next", study.NextQuestion)

	r.Delete("/session", study.LeaveSession)

	r.Get("/imports", imports.ListImports)
	r.Post("/imports", imports.CreateImport)
	r.Delete("/imports", imports.DeleteAllImports)
	r.Delete("/imports/{id}", imports.DeleteImport)
}
