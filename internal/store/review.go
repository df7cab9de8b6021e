package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/palime/palime-api/internal/domain"
)

// ReviewStore defines the interface for review-state persistence and the
// card selection queries that drive study sessions.
type ReviewStore interface {
	// CreateForItem inserts the two initial review states for an item, one
	// per direction, both immediately due. It must run in the same
	// transaction as the item insert.
	CreateForItem(ctx context.Context, itemID int64, now time.Time) error

	// GetByID retrieves a review state by its unique ID.
	// Returns ErrReviewStateNotFound if it does not exist.
	GetByID(ctx context.Context, id int64) (*domain.ReviewState, error)

	// GetDueCards returns the study cards of the deck whose review states
	// are due (due <= now) and not suspended. A non-nil direction filter
	// restricts results to that direction. Row order carries no meaning;
	// the session sequencer owns randomization.
	GetDueCards(ctx context.Context, deckID int64, direction *domain.Direction, now time.Time) ([]domain.StudyCard, error)

	// GetAllCards is GetDueCards without the due-timestamp filter, used
	// for endless mode and for telling an empty deck apart from one with
	// nothing currently due.
	GetAllCards(ctx context.Context, deckID int64, direction *domain.Direction) ([]domain.StudyCard, error)

	// UpdateReviewState persists a graded review's new interval, ease, and
	// due timestamp. It returns the number of rows affected; zero means
	// the review state no longer exists, which callers treat as a silent
	// no-op rather than an error.
	UpdateReviewState(ctx context.Context, id int64, interval int, ease float64, due time.Time) (int64, error)

	// WithTx returns a ReviewStore bound to the given transaction.
	WithTx(tx *sql.Tx) ReviewStore
}
