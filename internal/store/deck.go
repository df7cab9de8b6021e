package store

import (
	"context"
	"database/sql"

	"github.com/palime/palime-api/internal/domain"
)

// DeckSort identifies an ordering for deck listings.
type DeckSort string

// Possible deck sort orders
const (
	DeckSortNameAsc  DeckSort = "name_asc"
	DeckSortNameDesc DeckSort = "name_desc"
	DeckSortDateAsc  DeckSort = "date_asc"
	DeckSortDateDesc DeckSort = "date_desc"
	DeckSortSizeAsc  DeckSort = "count_asc"
	DeckSortSizeDesc DeckSort = "count_desc"
)

// IsValid reports whether s is a known sort order.
func (s DeckSort) IsValid() bool {
	switch s {
	case DeckSortNameAsc, DeckSortNameDesc, DeckSortDateAsc,
		DeckSortDateDesc, DeckSortSizeAsc, DeckSortSizeDesc:
		return true
	default:
		return false
	}
}

// DeckStore defines the interface for deck persistence and deck-item
// membership management. Reserved-deck rules (the "All" deck cannot be
// renamed, deleted, or shrunk) are enforced at the service layer; the
// store is a plain record store.
type DeckStore interface {
	// Create inserts a new deck, filling in its generated ID and creation
	// timestamp. Returns ErrDeckNameTaken if a deck with the same name
	// exists (case-insensitively).
	Create(ctx context.Context, deck *domain.Deck) error

	// GetByID retrieves a deck with its item count.
	// Returns ErrDeckNotFound if the deck does not exist.
	GetByID(ctx context.Context, id int64) (*domain.DeckWithCount, error)

	// List returns all decks with item counts in the given order.
	List(ctx context.Context, sort DeckSort) ([]*domain.DeckWithCount, error)

	// Search returns decks whose name contains the query,
	// case-insensitively, in the given order.
	Search(ctx context.Context, query string, sort DeckSort) ([]*domain.DeckWithCount, error)

	// NameExists reports whether a deck with the name exists,
	// case-insensitively, excluding the deck with excludeID (pass 0 to
	// exclude none).
	NameExists(ctx context.Context, name string, excludeID int64) (bool, error)

	// Rename sets a deck's name.
	// Returns ErrDeckNotFound if the deck does not exist and
	// ErrDeckNameTaken on a case-insensitive name collision.
	Rename(ctx context.Context, id int64, name string) error

	// Delete removes a deck; memberships go with it by cascade, items stay.
	// Returns ErrDeckNotFound if the deck does not exist.
	Delete(ctx context.Context, id int64) error

	// SetStudyDirection sets the deck's study direction preference.
	// Returns ErrDeckNotFound if the deck does not exist.
	SetStudyDirection(ctx context.Context, id int64, direction domain.StudyDirection) error

	// AddItems adds the items to the deck, ignoring memberships that
	// already exist.
	AddItems(ctx context.Context, deckID int64, itemIDs []int64) error

	// RemoveItem removes one item from the deck. It reports whether a
	// membership row was actually removed.
	RemoveItem(ctx context.Context, deckID, itemID int64) (bool, error)

	// ListForItem returns the decks an item belongs to, ordered by name.
	ListForItem(ctx context.Context, itemID int64) ([]*domain.Deck, error)

	// ListItems returns the items that are members of the deck, ordered by
	// pali text.
	ListItems(ctx context.Context, deckID int64) ([]*domain.Item, error)

	// ListMissingItems returns the items that are NOT members of the deck,
	// ordered by pali text. Backs the add-items picker.
	ListMissingItems(ctx context.Context, deckID int64) ([]*domain.Item, error)

	// ClearItemDecks removes all of an item's deck memberships. Used with
	// AddItems inside a transaction to replace an item's deck set.
	ClearItemDecks(ctx context.Context, itemID int64) error

	// WithTx returns a DeckStore bound to the given transaction.
	WithTx(tx *sql.Tx) DeckStore
}
