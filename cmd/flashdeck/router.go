package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/flashdeck/internal/api"
	apiMiddleware "github.com/phrazzld/flashdeck/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(apiMiddleware.RequestLogger)
	r.Use(middleware.Recoverer)

	r.NotFound(api.NotFound)
	r.MethodNotAllowed(api.MethodNotAllowed)

	flashcardHandler := api.NewFlashcardHandler(app.pipeline, app.logger)
	r.Post("/generate-flashcards", flashcardHandler.GenerateFlashcards)

	if app.decks != nil {
		deckHandler := api.NewDeckHandler(app.decks, app.logger)
		r.Route("/decks", deckHandler.Routes)
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
