package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/palime/palime-api/internal/domain"
	"github.com/palime/palime-api/internal/platform/logger"
	"github.com/palime/palime-api/internal/store"
)

// DeckStore implements the store.DeckStore interface using a SQLite
// database as the storage backend.
type DeckStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewDeckStore creates a SQLite implementation of the DeckStore interface.
func NewDeckStore(db store.DBTX, log *slog.Logger) *DeckStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &DeckStore{
		db:     db,
		logger: log.With(slog.String("component", "deck_store")),
	}
}

var _ store.DeckStore = (*DeckStore)(nil)

// WithTx implements store.DeckStore.WithTx.
func (s *DeckStore) WithTx(tx *sql.Tx) store.DeckStore {
	return &DeckStore{db: tx, logger: s.logger}
}

// sortClause maps a deck sort order to its ORDER BY clause. The sort value
// is validated before use; it is never interpolated from user input.
func sortClause(sort store.DeckSort) string {
	switch sort {
	case store.DeckSortNameDesc:
		return "d.name COLLATE NOCASE DESC"
	case store.DeckSortDateAsc:
		return "d.created_at ASC"
	case store.DeckSortDateDesc:
		return "d.created_at DESC"
	case store.DeckSortSizeAsc:
		return "item_count ASC, d.name COLLATE NOCASE ASC"
	case store.DeckSortSizeDesc:
		return "item_count DESC, d.name COLLATE NOCASE ASC"
	default:
		return "d.name COLLATE NOCASE ASC"
	}
}

// Create implements store.DeckStore.Create.
func (s *DeckStore) Create(ctx context.Context, deck *domain.Deck) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if deck.StudyDirection == "" {
		deck.StudyDirection = domain.StudyRandom
	}
	if deck.CreatedAt.IsZero() {
		deck.CreatedAt = time.Now().UTC()
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO decks (name, study_direction, created_at) VALUES (?, ?, ?)`,
		deck.Name, deck.StudyDirection, formatTime(deck.CreatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			log.Warn("duplicate deck name on create", slog.String("name", deck.Name))
			return store.ErrDeckNameTaken
		}
		log.Error("failed to create deck", slog.String("error", err.Error()))
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted deck id: %w", err)
	}
	deck.ID = id

	log.Debug("deck created", slog.Int64("deck_id", deck.ID), slog.String("name", deck.Name))
	return nil
}

const deckWithCountQuery = `
	SELECT d.id, d.name, d.study_direction, d.created_at, COUNT(di.item_id) AS item_count
	FROM decks d
	LEFT JOIN deck_items di ON d.id = di.deck_id
`

// GetByID implements store.DeckStore.GetByID.
func (s *DeckStore) GetByID(ctx context.Context, id int64) (*domain.DeckWithCount, error) {
	row := s.db.QueryRowContext(ctx, deckWithCountQuery+` WHERE d.id = ? GROUP BY d.id`, id)

	deck, err := scanDeckWithCount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrDeckNotFound
		}
		return nil, err
	}
	return deck, nil
}

// List implements store.DeckStore.List.
func (s *DeckStore) List(ctx context.Context, sort store.DeckSort) ([]*domain.DeckWithCount, error) {
	query := deckWithCountQuery + ` GROUP BY d.id ORDER BY ` + sortClause(sort)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return scanDecksWithCount(rows)
}

// Search implements store.DeckStore.Search.
func (s *DeckStore) Search(
	ctx context.Context,
	query string,
	sort store.DeckSort,
) ([]*domain.DeckWithCount, error) {
	pattern := "%" + query + "%"
	q := deckWithCountQuery +
		` WHERE d.name LIKE ? COLLATE NOCASE GROUP BY d.id ORDER BY ` + sortClause(sort)
	rows, err := s.db.QueryContext(ctx, q, pattern)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return scanDecksWithCount(rows)
}

// NameExists implements store.DeckStore.NameExists.
func (s *DeckStore) NameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM decks WHERE name = ? COLLATE NOCASE AND id != ? LIMIT 1`,
		strings.TrimSpace(name), excludeID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Rename implements store.DeckStore.Rename.
func (s *DeckStore) Rename(ctx context.Context, id int64, name string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `UPDATE decks SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrDeckNameTaken
		}
		log.Error("failed to rename deck",
			slog.String("error", err.Error()),
			slog.Int64("deck_id", id))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return store.ErrDeckNotFound
	}
	return nil
}

// Delete implements store.DeckStore.Delete. Membership rows go with the
// deck via ON DELETE CASCADE; items themselves remain.
func (s *DeckStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM decks WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete deck",
			slog.String("error", err.Error()),
			slog.Int64("deck_id", id))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return store.ErrDeckNotFound
	}

	log.Debug("deck deleted", slog.Int64("deck_id", id))
	return nil
}

// SetStudyDirection implements store.DeckStore.SetStudyDirection.
func (s *DeckStore) SetStudyDirection(
	ctx context.Context,
	id int64,
	direction domain.StudyDirection,
) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE decks SET study_direction = ? WHERE id = ?`, direction, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return store.ErrDeckNotFound
	}
	return nil
}

// AddItems implements store.DeckStore.AddItems.
func (s *DeckStore) AddItems(ctx context.Context, deckID int64, itemIDs []int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	for _, itemID := range itemIDs {
		_, err := s.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO deck_items (deck_id, item_id) VALUES (?, ?)`,
			deckID, itemID)
		if err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: deck %d or item %d not found",
					store.ErrInvalidEntity, deckID, itemID)
			}
			log.Error("failed to add item to deck",
				slog.String("error", err.Error()),
				slog.Int64("deck_id", deckID),
				slog.Int64("item_id", itemID))
			return err
		}
	}
	return nil
}

// RemoveItem implements store.DeckStore.RemoveItem.
func (s *DeckStore) RemoveItem(ctx context.Context, deckID, itemID int64) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM deck_items WHERE deck_id = ? AND item_id = ?`, deckID, itemID)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected > 0, nil
}

// ListForItem implements store.DeckStore.ListForItem.
func (s *DeckStore) ListForItem(ctx context.Context, itemID int64) ([]*domain.Deck, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT d.id, d.name, d.study_direction, d.created_at
		 FROM decks d
		 INNER JOIN deck_items di ON d.id = di.deck_id
		 WHERE di.item_id = ?
		 ORDER BY d.name COLLATE NOCASE`,
		itemID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var decks []*domain.Deck
	for rows.Next() {
		deck, err := scanDeck(rows)
		if err != nil {
			return nil, err
		}
		decks = append(decks, deck)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return decks, nil
}

// ListItems implements store.DeckStore.ListItems.
func (s *DeckStore) ListItems(ctx context.Context, deckID int64) ([]*domain.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT i.id, i.type, i.pali, i.meaning, i.notes, i.created_at
		 FROM items i
		 INNER JOIN deck_items di ON i.id = di.item_id
		 WHERE di.deck_id = ?
		 ORDER BY i.pali COLLATE NOCASE`,
		deckID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return scanItems(rows)
}

// ListMissingItems implements store.DeckStore.ListMissingItems.
func (s *DeckStore) ListMissingItems(ctx context.Context, deckID int64) ([]*domain.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT i.id, i.type, i.pali, i.meaning, i.notes, i.created_at
		 FROM items i
		 WHERE i.id NOT IN (SELECT item_id FROM deck_items WHERE deck_id = ?)
		 ORDER BY i.pali COLLATE NOCASE`,
		deckID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return scanItems(rows)
}

// ClearItemDecks implements store.DeckStore.ClearItemDecks.
func (s *DeckStore) ClearItemDecks(ctx context.Context, itemID int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM deck_items WHERE item_id = ?`, itemID)
	return err
}

func scanDeck(row rowScanner) (*domain.Deck, error) {
	var deck domain.Deck
	var direction string
	var createdAt string

	if err := row.Scan(&deck.ID, &deck.Name, &direction, &createdAt); err != nil {
		return nil, err
	}
	deck.StudyDirection = domain.ParseStudyDirection(direction)

	created, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	deck.CreatedAt = created
	return &deck, nil
}

func scanDeckWithCount(row rowScanner) (*domain.DeckWithCount, error) {
	var deck domain.DeckWithCount
	var direction string
	var createdAt string

	if err := row.Scan(&deck.ID, &deck.Name, &direction, &createdAt, &deck.ItemCount); err != nil {
		return nil, err
	}
	deck.StudyDirection = domain.ParseStudyDirection(direction)

	created, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	deck.CreatedAt = created
	return &deck, nil
}

func scanDecksWithCount(rows *sql.Rows) ([]*domain.DeckWithCount, error) {
	var decks []*domain.DeckWithCount
	for rows.Next() {
		deck, err := scanDeckWithCount(rows)
		if err != nil {
			return nil, err
		}
		decks = append(decks, deck)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return decks, nil
}
