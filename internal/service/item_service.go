package service

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/palime/palime-api/internal/domain"
	"github.com/palime/palime-api/internal/platform/logger"
	"github.com/palime/palime-api/internal/store"
)

// ItemService provides vocabulary item operations. Creating an item also
// creates its review states and deck memberships, so every new item is
// immediately studyable from the "All" deck.
type ItemService interface {
	// CreateItem creates an item, its two initial review states, and its
	// deck memberships in a single transaction. The item always joins the
	// default deck; deckIDs lists additional decks to join.
	CreateItem(ctx context.Context, item *domain.Item, deckIDs []int64) error

	// GetItem retrieves an item by its ID.
	GetItem(ctx context.Context, id int64) (*domain.Item, error)

	// ListItems returns all items ordered by Pali text.
	ListItems(ctx context.Context) ([]*domain.Item, error)

	// SearchItems returns items matching the query by Pali text or meaning.
	SearchItems(ctx context.Context, query string) ([]*domain.Item, error)

	// UpdateItem modifies an item's editable fields.
	UpdateItem(ctx context.Context, item *domain.Item) error

	// DeleteItem removes an item; its review states and deck memberships
	// cascade with it.
	DeleteItem(ctx context.Context, id int64) error

	// DecksForItem returns the decks the item belongs to.
	DecksForItem(ctx context.Context, itemID int64) ([]*domain.Deck, error)

	// UpdateItemDecks replaces the item's deck memberships with the given
	// set. Membership in the default deck is preserved regardless of the
	// input.
	UpdateItemDecks(ctx context.Context, itemID int64, deckIDs []int64) error
}

// itemServiceImpl implements the ItemService interface.
type itemServiceImpl struct {
	db      *sql.DB
	items   store.ItemStore
	reviews store.ReviewStore
	decks   store.DeckStore
	logger  *slog.Logger
	now     func() time.Time
}

// NewItemService creates a new ItemService. It panics if db or any store is
// nil; wiring errors should fail at startup, not at first use.
func NewItemService(
	db *sql.DB,
	items store.ItemStore,
	reviews store.ReviewStore,
	decks store.DeckStore,
	log *slog.Logger,
) ItemService {
	if db == nil {
		panic("itemService: db cannot be nil")
	}
	if items == nil || reviews == nil || decks == nil {
		panic("itemService: stores cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &itemServiceImpl{
		db:      db,
		items:   items,
		reviews: reviews,
		decks:   decks,
		logger:  log.With(slog.String("component", "item_service")),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// CreateItem implements ItemService.CreateItem.
func (s *itemServiceImpl) CreateItem(ctx context.Context, item *domain.Item, deckIDs []int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := item.Validate(); err != nil {
		return err
	}

	memberships := dedupeWithDefault(deckIDs)
	now := s.now()

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txItems := s.items.WithTx(tx)
		txReviews := s.reviews.WithTx(tx)
		txDecks := s.decks.WithTx(tx)

		if err := txItems.Create(ctx, item); err != nil {
			return NewServiceError("create_item", "failed to save item", err)
		}
		if err := txReviews.CreateForItem(ctx, item.ID, now); err != nil {
			return NewServiceError("create_item", "failed to create review states", err)
		}
		if err := txDecks.AddItems(ctx, domain.DefaultDeckID, []int64{item.ID}); err != nil {
			return NewServiceError("create_item", "failed to add item to default deck", err)
		}
		for _, deckID := range memberships {
			if deckID == domain.DefaultDeckID {
				continue
			}
			if err := txDecks.AddItems(ctx, deckID, []int64{item.ID}); err != nil {
				return NewServiceError("create_item", "failed to add item to deck", err)
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to create item",
			slog.String("error", err.Error()),
			slog.String("pali", item.Pali))
		return err
	}

	log.Info("item created",
		slog.Int64("item_id", item.ID),
		slog.String("pali", item.Pali),
		slog.Int("deck_count", len(memberships)))
	return nil
}

// GetItem implements ItemService.GetItem.
func (s *itemServiceImpl) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	return s.items.GetByID(ctx, id)
}

// ListItems implements ItemService.ListItems.
func (s *itemServiceImpl) ListItems(ctx context.Context) ([]*domain.Item, error) {
	return s.items.List(ctx)
}

// SearchItems implements ItemService.SearchItems.
func (s *itemServiceImpl) SearchItems(ctx context.Context, query string) ([]*domain.Item, error) {
	return s.items.Search(ctx, query)
}

// UpdateItem implements ItemService.UpdateItem.
func (s *itemServiceImpl) UpdateItem(ctx context.Context, item *domain.Item) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := item.Validate(); err != nil {
		return err
	}
	if err := s.items.Update(ctx, item); err != nil {
		return err
	}

	log.Info("item updated", slog.Int64("item_id", item.ID))
	return nil
}

// DeleteItem implements ItemService.DeleteItem.
func (s *itemServiceImpl) DeleteItem(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.items.Delete(ctx, id); err != nil {
		return err
	}

	log.Info("item deleted", slog.Int64("item_id", id))
	return nil
}

// DecksForItem implements ItemService.DecksForItem.
func (s *itemServiceImpl) DecksForItem(ctx context.Context, itemID int64) ([]*domain.Deck, error) {
	if _, err := s.items.GetByID(ctx, itemID); err != nil {
		return nil, err
	}
	return s.decks.ListForItem(ctx, itemID)
}

// UpdateItemDecks implements ItemService.UpdateItemDecks.
func (s *itemServiceImpl) UpdateItemDecks(ctx context.Context, itemID int64, deckIDs []int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.items.GetByID(ctx, itemID); err != nil {
		return err
	}

	memberships := dedupeWithDefault(deckIDs)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txDecks := s.decks.WithTx(tx)

		if err := txDecks.ClearItemDecks(ctx, itemID); err != nil {
			return NewServiceError("update_item_decks", "failed to clear memberships", err)
		}
		for _, deckID := range memberships {
			if err := txDecks.AddItems(ctx, deckID, []int64{itemID}); err != nil {
				return NewServiceError("update_item_decks", "failed to add membership", err)
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to update item decks",
			slog.String("error", err.Error()),
			slog.Int64("item_id", itemID))
		return err
	}

	log.Info("item decks updated",
		slog.Int64("item_id", itemID),
		slog.Int("deck_count", len(memberships)))
	return nil
}

// dedupeWithDefault returns the deck ID set with duplicates removed and the
// default deck always included, preserving input order after the default.
func dedupeWithDefault(deckIDs []int64) []int64 {
	result := []int64{domain.DefaultDeckID}
	seen := map[int64]bool{domain.DefaultDeckID: true}
	for _, id := range deckIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, id)
	}
	return result
}
