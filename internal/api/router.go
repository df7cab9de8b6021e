package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/palime/palime-api/internal/api/middleware"
)

// Handlers bundles the API handlers for route registration.
type Handlers struct {
	Items  *ItemHandler
	Decks  *DeckHandler
	Study  *StudyHandler
	Export *ExportHandler
}

// NewRouter creates the application router with all routes and middleware.
func NewRouter(h Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Trace)

	r.Route("/api", func(r chi.Router) {
		// Item endpoints
		r.Post("/items", h.Items.CreateItem)
		r.Get("/items", h.Items.ListItems)
		r.Get("/items/{id}", h.Items.GetItem)
		r.Put("/items/{id}", h.Items.UpdateItem)
		r.Delete("/items/{id}", h.Items.DeleteItem)
		r.Get("/items/{id}/decks", h.Items.GetItemDecks)
		r.Put("/items/{id}/decks", h.Items.UpdateItemDecks)

		// Deck endpoints
		r.Post("/decks", h.Decks.CreateDeck)
		r.Get("/decks", h.Decks.ListDecks)
		r.Get("/decks/{id}", h.Decks.GetDeck)
		r.Put("/decks/{id}", h.Decks.RenameDeck)
		r.Delete("/decks/{id}", h.Decks.DeleteDeck)
		r.Put("/decks/{id}/direction", h.Decks.SetDirection)
		r.Get("/decks/{id}/items", h.Decks.ListItems)
		r.Post("/decks/{id}/items", h.Decks.AddItems)
		r.Delete("/decks/{id}/items/{itemID}", h.Decks.RemoveItem)

		// Study session endpoints
		r.Post("/study/sessions", h.Study.StartSession)
		r.Get("/study/sessions/{id}", h.Study.GetSession)
		r.Post("/study/sessions/{id}/answer", h.Study.SubmitAnswer)
		r.Post("/study/sessions/{id}/mark-correct", h.Study.MarkCorrect)
		r.Put("/study/sessions/{id}/settings", h.Study.UpdateSettings)
		r.Delete("/study/sessions/{id}", h.Study.EndSession)

		// Backup endpoints
		r.Get("/export", h.Export.Export)
		r.Post("/import", h.Export.Import)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}
