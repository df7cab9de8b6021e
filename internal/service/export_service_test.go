package service

import (
	"context"
	"testing"

	"github.com/palime/palime-api/internal/domain"
	"github.com/palime/palime-api/internal/platform/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportImportRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// Source database with an item and a custom deck.
	srcDB := newTestDB(t)
	srcItems := NewItemService(srcDB,
		sqlite.NewItemStore(srcDB, nil),
		sqlite.NewReviewStore(srcDB, nil),
		sqlite.NewDeckStore(srcDB, nil), nil)
	srcDecks := NewDeckService(sqlite.NewDeckStore(srcDB, nil), nil)
	srcExport := NewExportService(srcDB, sqlite.NewSnapshotStore(srcDB, nil), sqlite.SchemaVersion, nil)

	deck, err := srcDecks.CreateDeck(ctx, "Travel")
	require.NoError(t, err)
	item := &domain.Item{Type: domain.ItemTypeWord, Pali: "magga", Meaning: "path"}
	require.NoError(t, srcItems.CreateItem(ctx, item, []int64{deck.ID}))

	data, err := srcExport.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, sqlite.SchemaVersion, data.SchemaVersion)
	assert.False(t, data.ExportedAt.IsZero())
	assert.Len(t, data.Items, 1)
	assert.Len(t, data.ReviewStates, 2)
	assert.Len(t, data.Decks, 2)
	assert.Len(t, data.DeckItems, 2)

	// Restore into a database that already holds conflicting data.
	dstDB := newTestDB(t)
	dstItems := NewItemService(dstDB,
		sqlite.NewItemStore(dstDB, nil),
		sqlite.NewReviewStore(dstDB, nil),
		sqlite.NewDeckStore(dstDB, nil), nil)
	dstExport := NewExportService(dstDB, sqlite.NewSnapshotStore(dstDB, nil), sqlite.SchemaVersion, nil)

	stale := &domain.Item{Type: domain.ItemTypeWord, Pali: "old", Meaning: "stale"}
	require.NoError(t, dstItems.CreateItem(ctx, stale, nil))

	require.NoError(t, dstExport.Import(ctx, data))

	restored, err := dstItems.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, restored, 1)
	assert.Equal(t, "magga", restored[0].Pali)
	assert.Equal(t, item.ID, restored[0].ID, "imported rows keep their IDs")

	roundTripped, err := dstExport.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, data.Snapshot, roundTripped.Snapshot)
}

func TestImportRejectsSchemaMismatch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := newTestDB(t)
	export := NewExportService(db, sqlite.NewSnapshotStore(db, nil), sqlite.SchemaVersion, nil)

	data, err := export.Export(ctx)
	require.NoError(t, err)

	data.SchemaVersion = sqlite.SchemaVersion + 1
	err = export.Import(ctx, data)
	assert.ErrorIs(t, err, ErrSchemaVersionMismatch)

	// The failed import left the seeded default deck intact.
	snapshot, err := export.Export(ctx)
	require.NoError(t, err)
	assert.Len(t, snapshot.Decks, 1)
}
