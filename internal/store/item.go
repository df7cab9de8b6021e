package store

import (
	"context"
	"database/sql"

	"github.com/palime/palime-api/internal/domain"
)

// ItemStore defines the interface for item persistence.
type ItemStore interface {
	// Create inserts a new item, filling in its generated ID and creation
	// timestamp. It does not create review states or deck memberships;
	// coordinated creation is a service-layer concern and must run inside
	// a transaction via WithTx.
	Create(ctx context.Context, item *domain.Item) error

	// GetByID retrieves an item by its unique ID.
	// Returns ErrItemNotFound if the item does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Item, error)

	// List returns all items ordered by Pali text, case-insensitively.
	List(ctx context.Context) ([]*domain.Item, error)

	// Search returns items whose Pali text or meaning contains the query,
	// case-insensitively, ordered by Pali text.
	Search(ctx context.Context, query string) ([]*domain.Item, error)

	// Update modifies an existing item's editable fields.
	// Returns ErrItemNotFound if the item does not exist.
	Update(ctx context.Context, item *domain.Item) error

	// Delete removes an item. Review states and deck memberships are
	// removed by schema-level cascade.
	// Returns ErrItemNotFound if the item does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns an ItemStore bound to the given transaction.
	WithTx(tx *sql.Tx) ItemStore
}
