package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/palime/palime-api/internal/domain"
	"github.com/palime/palime-api/internal/platform/logger"
	"github.com/palime/palime-api/internal/store"
)

// ItemStore implements the store.ItemStore interface using a SQLite
// database as the storage backend.
type ItemStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewItemStore creates a SQLite implementation of the ItemStore interface.
// The database handle (or transaction) is managed by the caller. A nil
// logger falls back to the default logger.
func NewItemStore(db store.DBTX, log *slog.Logger) *ItemStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &ItemStore{
		db:     db,
		logger: log.With(slog.String("component", "item_store")),
	}
}

var _ store.ItemStore = (*ItemStore)(nil)

// WithTx implements store.ItemStore.WithTx.
func (s *ItemStore) WithTx(tx *sql.Tx) store.ItemStore {
	return &ItemStore{db: tx, logger: s.logger}
}

// Create implements store.ItemStore.Create.
func (s *ItemStore) Create(ctx context.Context, item *domain.Item) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := item.Validate(); err != nil {
		log.Warn("item validation failed during create", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO items (type, pali, meaning, notes, created_at) VALUES (?, ?, ?, ?, ?)`,
		item.Type,
		item.Pali,
		item.Meaning,
		notesToNull(item.Notes),
		formatTime(item.CreatedAt),
	)
	if err != nil {
		log.Error("failed to create item", slog.String("error", err.Error()))
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted item id: %w", err)
	}
	item.ID = id

	log.Debug("item created",
		slog.Int64("item_id", item.ID),
		slog.String("type", string(item.Type)))
	return nil
}

// GetByID implements store.ItemStore.GetByID.
func (s *ItemStore) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, type, pali, meaning, notes, created_at FROM items WHERE id = ?`, id)

	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

// List implements store.ItemStore.List.
func (s *ItemStore) List(ctx context.Context) ([]*domain.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, type, pali, meaning, notes, created_at
		 FROM items ORDER BY pali COLLATE NOCASE`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return scanItems(rows)
}

// Search implements store.ItemStore.Search.
func (s *ItemStore) Search(ctx context.Context, query string) ([]*domain.Item, error) {
	pattern := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, type, pali, meaning, notes, created_at
		 FROM items
		 WHERE pali LIKE ? COLLATE NOCASE OR meaning LIKE ? COLLATE NOCASE
		 ORDER BY pali COLLATE NOCASE`,
		pattern, pattern)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return scanItems(rows)
}

// Update implements store.ItemStore.Update.
func (s *ItemStore) Update(ctx context.Context, item *domain.Item) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := item.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE items SET type = ?, pali = ?, meaning = ?, notes = ? WHERE id = ?`,
		item.Type, item.Pali, item.Meaning, notesToNull(item.Notes), item.ID)
	if err != nil {
		log.Error("failed to update item",
			slog.String("error", err.Error()),
			slog.Int64("item_id", item.ID))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return store.ErrItemNotFound
	}
	return nil
}

// Delete implements store.ItemStore.Delete. Review states and deck
// memberships are removed by ON DELETE CASCADE.
func (s *ItemStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete item",
			slog.String("error", err.Error()),
			slog.Int64("item_id", id))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return store.ErrItemNotFound
	}

	log.Debug("item deleted", slog.Int64("item_id", id))
	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning code.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row rowScanner) (*domain.Item, error) {
	var item domain.Item
	var notes sql.NullString
	var createdAt string

	if err := row.Scan(&item.ID, &item.Type, &item.Pali, &item.Meaning, &notes, &createdAt); err != nil {
		return nil, err
	}
	if notes.Valid {
		item.Notes = notes.String
	}

	created, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	item.CreatedAt = created
	return &item, nil
}

func scanItems(rows *sql.Rows) ([]*domain.Item, error) {
	var items []*domain.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func notesToNull(notes string) sql.NullString {
	return sql.NullString{String: notes, Valid: notes != ""}
}
