package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/recall-app/recall-api/internal/api/middleware"
	"github.com/recall-app/recall-api/internal/api/shared"
	"github.com/recall-app/recall-api/internal/service"
	"github.com/recall-app/recall-api/internal/store"
)

// RouterConfig bundles the handlers' dependencies.
type RouterConfig struct {
	DeckService   service.DeckService
	SettingsStore store.SettingsStore
}

// NewRouter builds the HTTP router with all application routes and
// middleware attached.
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.TraceMiddleware)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(120 * time.Second))

	generationHandler := NewGenerationHandler(cfg.DeckService)
	deckHandler := NewDeckHandler(cfg.DeckService)
	cardHandler := NewCardHandler(cfg.DeckService)
	settingsHandler := NewSettingsHandler(cfg.SettingsStore)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/decks", func(r chi.Router) {
			r.Get("/", deckHandler.ListDecks)
			r.Post("/generate", generationHandler.GenerateDeck)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", deckHandler.GetDeck)
				r.Delete("/", deckHandler.DeleteDeck)
				r.Get("/cards", deckHandler.ListCards)
				r.Post("/reset", deckHandler.ResetDeck)
			})
		})

		r.Route("/cards", func(r chi.Router) {
			r.Get("/hard", cardHandler.ListHard)
			r.Patch("/{id}/status", cardHandler.UpdateStatus)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", settingsHandler.GetSettings)
			r.Put("/", settingsHandler.UpdateSettings)
		})
	})

	return r
}
