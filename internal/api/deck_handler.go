package api

import (
	"log/slog"
	"net/http"

	"github.com/palime/palime-api/internal/api/shared"
	"github.com/palime/palime-api/internal/domain"
	"github.com/palime/palime-api/internal/platform/logger"
	"github.com/palime/palime-api/internal/service"
	"github.com/palime/palime-api/internal/store"
)

// DeckHandler handles deck management HTTP requests.
type DeckHandler struct {
	decks  service.DeckService
	logger *slog.Logger
}

// NewDeckHandler creates a new DeckHandler.
func NewDeckHandler(decks service.DeckService, log *slog.Logger) *DeckHandler {
	if decks == nil {
		panic("deckHandler: service cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &DeckHandler{
		decks:  decks,
		logger: log.With(slog.String("component", "deck_handler")),
	}
}

// CreateDeck handles POST /decks requests.
func (h *DeckHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	var req CreateDeckRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	deck, err := h.decks.CreateDeck(r.Context(), req.Name)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, deck)
}

// ListDecks handles GET /decks requests. A non-empty q query parameter
// searches by name; sort selects the ordering and defaults to name.
func (h *DeckHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	query := r.URL.Query().Get("q")
	sort := store.DeckSort(r.URL.Query().Get("sort"))

	var decks []*domain.DeckWithCount
	var err error
	if query != "" {
		decks, err = h.decks.SearchDecks(r.Context(), query, sort)
	} else {
		decks, err = h.decks.ListDecks(r.Context(), sort)
	}
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list decks")
		return
	}

	log.Debug("decks listed", slog.Int("count", len(decks)), slog.String("query", query))
	if decks == nil {
		decks = []*domain.DeckWithCount{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, decks)
}

// GetDeck handles GET /decks/{id} requests.
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathID(w, r, "id")
	if !ok {
		return
	}

	deck, err := h.decks.GetDeck(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, deck)
}

// RenameDeck handles PUT /decks/{id} requests.
func (h *DeckHandler) RenameDeck(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathID(w, r, "id")
	if !ok {
		return
	}
	var req RenameDeckRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.decks.RenameDeck(r.Context(), id, req.Name); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	deck, err := h.decks.GetDeck(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, deck)
}

// DeleteDeck handles DELETE /decks/{id} requests.
func (h *DeckHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.decks.DeleteDeck(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetDirection handles PUT /decks/{id}/direction requests.
func (h *DeckHandler) SetDirection(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathID(w, r, "id")
	if !ok {
		return
	}
	var req SetDeckDirectionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	direction := domain.StudyDirection(req.StudyDirection)
	if err := h.decks.SetStudyDirection(r.Context(), id, direction); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	deck, err := h.decks.GetDeck(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, deck)
}

// ListItems handles GET /decks/{id}/items requests. With missing=true it
// instead returns the items not yet in the deck, for the add-items picker.
func (h *DeckHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathID(w, r, "id")
	if !ok {
		return
	}

	var items []*domain.Item
	var err error
	if r.URL.Query().Get("missing") == "true" {
		items, err = h.decks.ListMissingItems(r.Context(), id)
	} else {
		items, err = h.decks.ListDeckItems(r.Context(), id)
	}
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if items == nil {
		items = []*domain.Item{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, items)
}

// AddItems handles POST /decks/{id}/items requests.
func (h *DeckHandler) AddItems(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathID(w, r, "id")
	if !ok {
		return
	}
	var req AddDeckItemsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.decks.AddItemsToDeck(r.Context(), id, req.ItemIDs); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	deck, err := h.decks.GetDeck(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, deck)
}

// RemoveItem handles DELETE /decks/{id}/items/{itemID} requests.
func (h *DeckHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	deckID, ok := getPathID(w, r, "id")
	if !ok {
		return
	}
	itemID, ok := getPathID(w, r, "itemID")
	if !ok {
		return
	}

	if err := h.decks.RemoveItemFromDeck(r.Context(), deckID, itemID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
