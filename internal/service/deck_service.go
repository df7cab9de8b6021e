package service

import (
	"context"
	"log/slog"

	"github.com/palime/palime-api/internal/domain"
	"github.com/palime/palime-api/internal/platform/logger"
	"github.com/palime/palime-api/internal/store"
)

// DeckService provides deck management operations and enforces the
// reserved-deck rules: the system-owned "All" deck cannot be renamed,
// deleted, or have members removed, though its study direction preference
// may change.
type DeckService interface {
	// CreateDeck creates a deck with the given (trimmed) name.
	CreateDeck(ctx context.Context, name string) (*domain.Deck, error)

	// GetDeck retrieves a deck with its item count.
	GetDeck(ctx context.Context, id int64) (*domain.DeckWithCount, error)

	// ListDecks returns all decks with item counts in the given order.
	ListDecks(ctx context.Context, sort store.DeckSort) ([]*domain.DeckWithCount, error)

	// SearchDecks returns decks whose name matches the query.
	SearchDecks(ctx context.Context, query string, sort store.DeckSort) ([]*domain.DeckWithCount, error)

	// RenameDeck sets a deck's name. The default deck cannot be renamed.
	RenameDeck(ctx context.Context, id int64, name string) error

	// DeleteDeck removes a deck; its items survive in their other decks.
	// The default deck cannot be deleted.
	DeleteDeck(ctx context.Context, id int64) error

	// SetStudyDirection sets a deck's study direction preference. Allowed
	// on any deck, the default deck included.
	SetStudyDirection(ctx context.Context, id int64, direction domain.StudyDirection) error

	// ListDeckItems returns the items that are members of the deck.
	ListDeckItems(ctx context.Context, deckID int64) ([]*domain.Item, error)

	// ListMissingItems returns the items not yet in the deck, the
	// candidates for AddItemsToDeck.
	ListMissingItems(ctx context.Context, deckID int64) ([]*domain.Item, error)

	// AddItemsToDeck adds items to a deck, skipping existing memberships.
	AddItemsToDeck(ctx context.Context, deckID int64, itemIDs []int64) error

	// RemoveItemFromDeck removes one item from a deck. Items cannot be
	// removed from the default deck.
	RemoveItemFromDeck(ctx context.Context, deckID, itemID int64) error
}

// deckServiceImpl implements the DeckService interface.
type deckServiceImpl struct {
	decks  store.DeckStore
	logger *slog.Logger
}

// NewDeckService creates a new DeckService. It panics if the store is nil.
func NewDeckService(decks store.DeckStore, log *slog.Logger) DeckService {
	if decks == nil {
		panic("deckService: store cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &deckServiceImpl{
		decks:  decks,
		logger: log.With(slog.String("component", "deck_service")),
	}
}

// CreateDeck implements DeckService.CreateDeck.
func (s *deckServiceImpl) CreateDeck(ctx context.Context, name string) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	trimmed, err := domain.ValidateDeckName(name)
	if err != nil {
		return nil, err
	}

	taken, err := s.decks.NameExists(ctx, trimmed, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, store.ErrDeckNameTaken
	}

	deck := &domain.Deck{Name: trimmed}
	if err := s.decks.Create(ctx, deck); err != nil {
		return nil, err
	}

	log.Info("deck created", slog.Int64("deck_id", deck.ID), slog.String("name", deck.Name))
	return deck, nil
}

// GetDeck implements DeckService.GetDeck.
func (s *deckServiceImpl) GetDeck(ctx context.Context, id int64) (*domain.DeckWithCount, error) {
	return s.decks.GetByID(ctx, id)
}

// ListDecks implements DeckService.ListDecks.
func (s *deckServiceImpl) ListDecks(
	ctx context.Context,
	sort store.DeckSort,
) ([]*domain.DeckWithCount, error) {
	if !sort.IsValid() {
		sort = store.DeckSortNameAsc
	}
	return s.decks.List(ctx, sort)
}

// SearchDecks implements DeckService.SearchDecks.
func (s *deckServiceImpl) SearchDecks(
	ctx context.Context,
	query string,
	sort store.DeckSort,
) ([]*domain.DeckWithCount, error) {
	if !sort.IsValid() {
		sort = store.DeckSortNameAsc
	}
	return s.decks.Search(ctx, query, sort)
}

// RenameDeck implements DeckService.RenameDeck. The reserved-deck check
// runs before any store access so a forbidden rename never touches the
// database.
func (s *deckServiceImpl) RenameDeck(ctx context.Context, id int64, name string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if id == domain.DefaultDeckID {
		return domain.ErrDefaultDeckImmutable
	}
	trimmed, err := domain.ValidateDeckName(name)
	if err != nil {
		return err
	}
	taken, err := s.decks.NameExists(ctx, trimmed, id)
	if err != nil {
		return err
	}
	if taken {
		return store.ErrDeckNameTaken
	}
	if err := s.decks.Rename(ctx, id, trimmed); err != nil {
		return err
	}

	log.Info("deck renamed", slog.Int64("deck_id", id), slog.String("name", trimmed))
	return nil
}

// DeleteDeck implements DeckService.DeleteDeck.
func (s *deckServiceImpl) DeleteDeck(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if id == domain.DefaultDeckID {
		return domain.ErrDefaultDeckImmutable
	}
	if err := s.decks.Delete(ctx, id); err != nil {
		return err
	}

	log.Info("deck deleted", slog.Int64("deck_id", id))
	return nil
}

// SetStudyDirection implements DeckService.SetStudyDirection.
func (s *deckServiceImpl) SetStudyDirection(
	ctx context.Context,
	id int64,
	direction domain.StudyDirection,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !direction.IsValid() {
		return domain.ErrInvalidDirection
	}
	if err := s.decks.SetStudyDirection(ctx, id, direction); err != nil {
		return err
	}

	log.Info("deck study direction set",
		slog.Int64("deck_id", id),
		slog.String("direction", string(direction)))
	return nil
}

// ListDeckItems implements DeckService.ListDeckItems.
func (s *deckServiceImpl) ListDeckItems(ctx context.Context, deckID int64) ([]*domain.Item, error) {
	if _, err := s.decks.GetByID(ctx, deckID); err != nil {
		return nil, err
	}
	return s.decks.ListItems(ctx, deckID)
}

// ListMissingItems implements DeckService.ListMissingItems.
func (s *deckServiceImpl) ListMissingItems(ctx context.Context, deckID int64) ([]*domain.Item, error) {
	if _, err := s.decks.GetByID(ctx, deckID); err != nil {
		return nil, err
	}
	return s.decks.ListMissingItems(ctx, deckID)
}

// AddItemsToDeck implements DeckService.AddItemsToDeck. Adding to the
// default deck is permitted; it already contains every item, so the adds
// are no-ops.
func (s *deckServiceImpl) AddItemsToDeck(ctx context.Context, deckID int64, itemIDs []int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(itemIDs) == 0 {
		return nil
	}
	if _, err := s.decks.GetByID(ctx, deckID); err != nil {
		return err
	}
	if err := s.decks.AddItems(ctx, deckID, itemIDs); err != nil {
		return err
	}

	log.Info("items added to deck",
		slog.Int64("deck_id", deckID),
		slog.Int("item_count", len(itemIDs)))
	return nil
}

// RemoveItemFromDeck implements DeckService.RemoveItemFromDeck.
func (s *deckServiceImpl) RemoveItemFromDeck(ctx context.Context, deckID, itemID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if deckID == domain.DefaultDeckID {
		return domain.ErrDefaultDeckImmutable
	}

	removed, err := s.decks.RemoveItem(ctx, deckID, itemID)
	if err != nil {
		return err
	}
	if !removed {
		// Removing a membership that does not exist is not an error;
		// the end state is what the caller asked for.
		log.Debug("membership already absent",
			slog.Int64("deck_id", deckID),
			slog.Int64("item_id", itemID))
		return nil
	}

	log.Info("item removed from deck",
		slog.Int64("deck_id", deckID),
		slog.Int64("item_id", itemID))
	return nil
}
