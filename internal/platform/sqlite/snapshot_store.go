package sqlite

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/palime/palime-api/internal/domain"
	"github.com/palime/palime-api/internal/platform/logger"
	"github.com/palime/palime-api/internal/store"
)

// SnapshotStore implements the store.SnapshotStore interface for full
// database export and import.
type SnapshotStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewSnapshotStore creates a SQLite implementation of the SnapshotStore
// interface.
func NewSnapshotStore(db store.DBTX, log *slog.Logger) *SnapshotStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &SnapshotStore{
		db:     db,
		logger: log.With(slog.String("component", "snapshot_store")),
	}
}

var _ store.SnapshotStore = (*SnapshotStore)(nil)

// WithTx implements store.SnapshotStore.WithTx.
func (s *SnapshotStore) WithTx(tx *sql.Tx) store.SnapshotStore {
	return &SnapshotStore{db: tx, logger: s.logger}
}

// Export implements store.SnapshotStore.Export.
func (s *SnapshotStore) Export(ctx context.Context) (*store.Snapshot, error) {
	snapshot := &store.Snapshot{}

	items, err := s.exportItems(ctx)
	if err != nil {
		return nil, err
	}
	snapshot.Items = items

	states, err := s.exportReviewStates(ctx)
	if err != nil {
		return nil, err
	}
	snapshot.ReviewStates = states

	decks, err := s.exportDecks(ctx)
	if err != nil {
		return nil, err
	}
	snapshot.Decks = decks

	memberships, err := s.exportMemberships(ctx)
	if err != nil {
		return nil, err
	}
	snapshot.DeckItems = memberships

	return snapshot, nil
}

// Import implements store.SnapshotStore.Import. All existing rows are
// replaced; row IDs from the snapshot are preserved so references between
// tables stay intact.
func (s *SnapshotStore) Import(ctx context.Context, snapshot *store.Snapshot) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Children first so foreign keys never dangle mid-import.
	for _, table := range []string{"deck_items", "study_states", "items", "decks"} {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return err
		}
	}

	for i := range snapshot.Items {
		item := &snapshot.Items[i]
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO items (id, type, pali, meaning, notes, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
			item.ID, item.Type, item.Pali, item.Meaning,
			notesToNull(item.Notes), formatTime(item.CreatedAt))
		if err != nil {
			return err
		}
	}

	for i := range snapshot.Decks {
		deck := &snapshot.Decks[i]
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO decks (id, name, study_direction, created_at) VALUES (?, ?, ?, ?)`,
			deck.ID, deck.Name, deck.StudyDirection, formatTime(deck.CreatedAt))
		if err != nil {
			return err
		}
	}

	for i := range snapshot.ReviewStates {
		state := &snapshot.ReviewStates[i]
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO study_states (id, item_id, direction, interval, ease, due, suspended)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			state.ID, state.ItemID, state.Direction, state.Interval,
			state.Ease, formatTime(state.Due), boolToInt(state.Suspended))
		if err != nil {
			return err
		}
	}

	for _, membership := range snapshot.DeckItems {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO deck_items (deck_id, item_id) VALUES (?, ?)`,
			membership.DeckID, membership.ItemID)
		if err != nil {
			return err
		}
	}

	log.Info("snapshot imported",
		slog.Int("items", len(snapshot.Items)),
		slog.Int("decks", len(snapshot.Decks)),
		slog.Int("review_states", len(snapshot.ReviewStates)))
	return nil
}

func (s *SnapshotStore) exportItems(ctx context.Context) ([]domain.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, type, pali, meaning, notes, created_at FROM items ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	items := []domain.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (s *SnapshotStore) exportReviewStates(ctx context.Context) ([]domain.ReviewState, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, item_id, direction, interval, ease, due, suspended
		 FROM study_states ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	states := []domain.ReviewState{}
	for rows.Next() {
		var state domain.ReviewState
		var due string
		var suspended int
		err := rows.Scan(&state.ID, &state.ItemID, &state.Direction,
			&state.Interval, &state.Ease, &due, &suspended)
		if err != nil {
			return nil, err
		}
		dueTime, err := parseTime(due)
		if err != nil {
			return nil, err
		}
		state.Due = dueTime
		state.Suspended = suspended != 0
		states = append(states, state)
	}
	return states, rows.Err()
}

func (s *SnapshotStore) exportDecks(ctx context.Context) ([]domain.Deck, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, study_direction, created_at FROM decks ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	decks := []domain.Deck{}
	for rows.Next() {
		deck, err := scanDeck(rows)
		if err != nil {
			return nil, err
		}
		decks = append(decks, *deck)
	}
	return decks, rows.Err()
}

func (s *SnapshotStore) exportMemberships(ctx context.Context) ([]domain.DeckMembership, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT deck_id, item_id FROM deck_items ORDER BY deck_id, item_id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	memberships := []domain.DeckMembership{}
	for rows.Next() {
		var m domain.DeckMembership
		if err := rows.Scan(&m.DeckID, &m.ItemID); err != nil {
			return nil, err
		}
		memberships = append(memberships, m)
	}
	return memberships, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
