package store

import (
	"context"
	"database/sql"

	"github.com/palime/palime-api/internal/domain"
)

// Snapshot is a full copy of the database contents, used by export and
// import. Rows keep their stored IDs so a round trip preserves identity.
type Snapshot struct {
	Items        []domain.Item           `json:"items"`
	ReviewStates []domain.ReviewState    `json:"study_states"`
	Decks        []domain.Deck           `json:"decks"`
	DeckItems    []domain.DeckMembership `json:"deck_items"`
}

// SnapshotStore reads and restores full-database snapshots.
type SnapshotStore interface {
	// Export reads every row of every table.
	Export(ctx context.Context) (*Snapshot, error)

	// Import replaces the entire database contents with the snapshot.
	// It must run inside a transaction via WithTx so a failed import
	// leaves the previous contents intact.
	Import(ctx context.Context, snapshot *Snapshot) error

	// WithTx returns a SnapshotStore bound to the given transaction.
	WithTx(tx *sql.Tx) SnapshotStore
}
