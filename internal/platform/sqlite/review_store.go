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

// ReviewStore implements the store.ReviewStore interface using a SQLite
// database as the storage backend.
type ReviewStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewReviewStore creates a SQLite implementation of the ReviewStore
// interface.
func NewReviewStore(db store.DBTX, log *slog.Logger) *ReviewStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &ReviewStore{
		db:     db,
		logger: log.With(slog.String("component", "review_store")),
	}
}

var _ store.ReviewStore = (*ReviewStore)(nil)

// WithTx implements store.ReviewStore.WithTx.
func (s *ReviewStore) WithTx(tx *sql.Tx) store.ReviewStore {
	return &ReviewStore{db: tx, logger: s.logger}
}

// CreateForItem implements store.ReviewStore.CreateForItem.
func (s *ReviewStore) CreateForItem(ctx context.Context, itemID int64, now time.Time) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	for _, direction := range domain.Directions {
		state := domain.NewReviewState(itemID, direction, now)
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO study_states (item_id, direction, interval, ease, due, suspended)
			 VALUES (?, ?, ?, ?, ?, 0)`,
			state.ItemID, state.Direction, state.Interval, state.Ease, formatTime(state.Due))
		if err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: item %d not found", store.ErrInvalidEntity, itemID)
			}
			log.Error("failed to create review state",
				slog.String("error", err.Error()),
				slog.Int64("item_id", itemID),
				slog.String("direction", string(direction)))
			return err
		}
	}
	return nil
}

// GetByID implements store.ReviewStore.GetByID.
func (s *ReviewStore) GetByID(ctx context.Context, id int64) (*domain.ReviewState, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, item_id, direction, interval, ease, due, suspended
		 FROM study_states WHERE id = ?`, id)

	var state domain.ReviewState
	var due string
	var suspended int
	err := row.Scan(&state.ID, &state.ItemID, &state.Direction,
		&state.Interval, &state.Ease, &due, &suspended)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrReviewStateNotFound
		}
		return nil, err
	}

	dueTime, err := parseTime(due)
	if err != nil {
		return nil, err
	}
	state.Due = dueTime
	state.Suspended = suspended != 0
	return &state, nil
}

const studyCardQuery = `
	SELECT
		ss.id AS review_state_id,
		ss.item_id,
		ss.direction,
		i.pali,
		i.meaning,
		i.type,
		ss.interval,
		ss.ease,
		ss.due
	FROM study_states ss
	JOIN items i ON ss.item_id = i.id
	JOIN deck_items di ON i.id = di.item_id
	WHERE di.deck_id = ?
	  AND ss.suspended = 0
`

// GetDueCards implements store.ReviewStore.GetDueCards.
func (s *ReviewStore) GetDueCards(
	ctx context.Context,
	deckID int64,
	direction *domain.Direction,
	now time.Time,
) ([]domain.StudyCard, error) {
	query := studyCardQuery + ` AND ss.due <= ?`
	args := []interface{}{deckID, formatTime(now)}
	if direction != nil {
		query += ` AND ss.direction = ?`
		args = append(args, *direction)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return scanStudyCards(rows)
}

// GetAllCards implements store.ReviewStore.GetAllCards.
func (s *ReviewStore) GetAllCards(
	ctx context.Context,
	deckID int64,
	direction *domain.Direction,
) ([]domain.StudyCard, error) {
	query := studyCardQuery
	args := []interface{}{deckID}
	if direction != nil {
		query += ` AND ss.direction = ?`
		args = append(args, *direction)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return scanStudyCards(rows)
}

// UpdateReviewState implements store.ReviewStore.UpdateReviewState. A
// missing row yields zero affected rows, not an error; grading a card whose
// state was concurrently deleted is a silent no-op.
func (s *ReviewStore) UpdateReviewState(
	ctx context.Context,
	id int64,
	interval int,
	ease float64,
	due time.Time,
) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`UPDATE study_states SET interval = ?, ease = ?, due = ? WHERE id = ?`,
		interval, ease, formatTime(due), id)
	if err != nil {
		log.Error("failed to update review state",
			slog.String("error", err.Error()),
			slog.Int64("review_state_id", id))
		return 0, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	log.Debug("review state updated",
		slog.Int64("review_state_id", id),
		slog.Int("interval", interval),
		slog.Float64("ease", ease),
		slog.Int64("rows_affected", affected))
	return affected, nil
}

func scanStudyCards(rows *sql.Rows) ([]domain.StudyCard, error) {
	var cards []domain.StudyCard
	for rows.Next() {
		var card domain.StudyCard
		var due string
		err := rows.Scan(&card.ReviewStateID, &card.ItemID, &card.Direction,
			&card.Pali, &card.Meaning, &card.Type, &card.Interval, &card.Ease, &due)
		if err != nil {
			return nil, err
		}
		dueTime, err := parseTime(due)
		if err != nil {
			return nil, err
		}
		card.Due = dueTime
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return cards, nil
}
