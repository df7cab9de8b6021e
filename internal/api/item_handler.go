package api

import (
	"log/slog"
	"net/http"

	"github.com/palime/palime-api/internal/api/shared"
	"github.com/palime/palime-api/internal/domain"
	"github.com/palime/palime-api/internal/platform/logger"
	"github.com/palime/palime-api/internal/service"
)

// ItemHandler handles vocabulary item HTTP requests.
type ItemHandler struct {
	items  service.ItemService
	logger *slog.Logger
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(items service.ItemService, log *slog.Logger) *ItemHandler {
	if items == nil {
		panic("itemHandler: service cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &ItemHandler{
		items:  items,
		logger: log.With(slog.String("component", "item_handler")),
	}
}

// CreateItem handles POST /items requests.
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req CreateItemRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	item := &domain.Item{
		Type:    domain.ItemType(req.Type),
		Pali:    req.Pali,
		Meaning: req.Meaning,
		Notes:   req.Notes,
	}
	if err := h.items.CreateItem(r.Context(), item, req.DeckIDs); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, item)
}

// ListItems handles GET /items requests. A non-empty q query parameter
// switches from listing to searching.
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	query := r.URL.Query().Get("q")
	var items []*domain.Item
	var err error
	if query != "" {
		items, err = h.items.SearchItems(r.Context(), query)
	} else {
		items, err = h.items.ListItems(r.Context())
	}
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list items")
		return
	}

	log.Debug("items listed", slog.Int("count", len(items)), slog.String("query", query))
	if items == nil {
		items = []*domain.Item{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, items)
}

// GetItem handles GET /items/{id} requests.
func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathID(w, r, "id")
	if !ok {
		return
	}

	item, err := h.items.GetItem(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, item)
}

// UpdateItem handles PUT /items/{id} requests.
func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathID(w, r, "id")
	if !ok {
		return
	}
	var req UpdateItemRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	item := &domain.Item{
		ID:      id,
		Type:    domain.ItemType(req.Type),
		Pali:    req.Pali,
		Meaning: req.Meaning,
		Notes:   req.Notes,
	}
	if err := h.items.UpdateItem(r.Context(), item); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	updated, err := h.items.GetItem(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, updated)
}

// DeleteItem handles DELETE /items/{id} requests.
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.items.DeleteItem(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetItemDecks handles GET /items/{id}/decks requests.
func (h *ItemHandler) GetItemDecks(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathID(w, r, "id")
	if !ok {
		return
	}

	decks, err := h.items.DecksForItem(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if decks == nil {
		decks = []*domain.Deck{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, decks)
}

// UpdateItemDecks handles PUT /items/{id}/decks requests.
func (h *ItemHandler) UpdateItemDecks(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathID(w, r, "id")
	if !ok {
		return
	}
	var req UpdateItemDecksRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.items.UpdateItemDecks(r.Context(), id, req.DeckIDs); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	decks, err := h.items.DecksForItem(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, decks)
}
