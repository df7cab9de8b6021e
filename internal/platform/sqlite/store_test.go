package sqlite

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/palime/palime-api/internal/domain"
	"github.com/palime/palime-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, MigrateUp(db))
	return db
}

// createTestItem inserts an item with both review states and membership in
// the default deck, mirroring what the item service does in production.
func createTestItem(t *testing.T, db *sql.DB, pali, meaning string) *domain.Item {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	item := &domain.Item{Type: domain.ItemTypeWord, Pali: pali, Meaning: meaning}
	require.NoError(t, NewItemStore(db, nil).Create(ctx, item))
	require.NoError(t, NewReviewStore(db, nil).CreateForItem(ctx, item.ID, now))
	require.NoError(t, NewDeckStore(db, nil).AddItems(ctx, domain.DefaultDeckID, []int64{item.ID}))
	return item
}

func TestItemStoreCRUD(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	ctx := context.Background()
	items := NewItemStore(db, nil)

	item := &domain.Item{
		Type:    domain.ItemTypeWord,
		Pali:    "dhamma",
		Meaning: "teaching",
		Notes:   "central term",
	}
	require.NoError(t, items.Create(ctx, item))
	require.NotZero(t, item.ID)

	got, err := items.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "dhamma", got.Pali)
	assert.Equal(t, "central term", got.Notes)
	assert.False(t, got.CreatedAt.IsZero())

	got.Meaning = "doctrine, teaching"
	require.NoError(t, items.Update(ctx, got))
	got, err = items.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "doctrine, teaching", got.Meaning)

	require.NoError(t, items.Delete(ctx, item.ID))
	_, err = items.GetByID(ctx, item.ID)
	assert.ErrorIs(t, err, store.ErrItemNotFound)
}

func TestItemStoreNotFound(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	ctx := context.Background()
	items := NewItemStore(db, nil)

	_, err := items.GetByID(ctx, 999)
	assert.ErrorIs(t, err, store.ErrItemNotFound)

	err = items.Update(ctx, &domain.Item{
		ID: 999, Type: domain.ItemTypeWord, Pali: "x", Meaning: "y",
	})
	assert.ErrorIs(t, err, store.ErrItemNotFound)

	assert.ErrorIs(t, items.Delete(ctx, 999), store.ErrItemNotFound)
}

func TestItemStoreRejectsInvalidItem(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	ctx := context.Background()
	items := NewItemStore(db, nil)

	err := items.Create(ctx, &domain.Item{Type: "verb", Pali: "x", Meaning: "y"})
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
	assert.ErrorIs(t, err, domain.ErrInvalidItemType)
}

func TestItemStoreListAndSearch(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	ctx := context.Background()
	items := NewItemStore(db, nil)

	for _, seed := range []struct{ pali, meaning string }{
		{"mettā", "loving-kindness"},
		{"dhamma", "teaching"},
		{"Anicca", "impermanence"},
	} {
		require.NoError(t, items.Create(ctx, &domain.Item{
			Type: domain.ItemTypeWord, Pali: seed.pali, Meaning: seed.meaning,
		}))
	}

	all, err := items.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Anicca", all[0].Pali, "list is ordered by pali case-insensitively")

	found, err := items.Search(ctx, "KIND")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "mettā", found[0].Pali)

	found, err = items.Search(ctx, "dham")
	require.NoError(t, err)
	require.Len(t, found, 1)
}

func TestItemDeleteCascades(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	ctx := context.Background()
	item := createTestItem(t, db, "sati", "mindfulness")

	require.NoError(t, NewItemStore(db, nil).Delete(ctx, item.ID))

	var count int
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM study_states WHERE item_id = ?`, item.ID).Scan(&count))
	assert.Zero(t, count, "review states cascade with the item")

	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM deck_items WHERE item_id = ?`, item.ID).Scan(&count))
	assert.Zero(t, count, "deck memberships cascade with the item")
}

func TestReviewStoreCreatesBothDirections(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	ctx := context.Background()
	item := createTestItem(t, db, "dukkha", "suffering")

	cards, err := NewReviewStore(db, nil).GetAllCards(ctx, domain.DefaultDeckID, nil)
	require.NoError(t, err)
	require.Len(t, cards, 2)

	directions := map[domain.Direction]bool{}
	for _, card := range cards {
		directions[card.Direction] = true
		assert.Equal(t, item.ID, card.ItemID)
		assert.Equal(t, 0, card.Interval)
		assert.Equal(t, domain.DefaultEase, card.Ease)
	}
	assert.Len(t, directions, 2, "one review state per direction")
}

func TestReviewStoreDueFiltering(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	ctx := context.Background()
	reviews := NewReviewStore(db, nil)
	item := createTestItem(t, db, "khanti", "patience")
	now := time.Now().UTC()

	due, err := reviews.GetDueCards(ctx, domain.DefaultDeckID, nil, now)
	require.NoError(t, err)
	assert.Len(t, due, 2, "new states are due immediately")

	// Push one direction into the future; it must drop out of the due set
	// but stay in the endless set.
	first := due[0]
	affected, err := reviews.UpdateReviewState(ctx, first.ReviewStateID, 3, 2.5, now.AddDate(0, 0, 3))
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	due, err = reviews.GetDueCards(ctx, domain.DefaultDeckID, nil, now)
	require.NoError(t, err)
	assert.Len(t, due, 1)

	all, err := reviews.GetAllCards(ctx, domain.DefaultDeckID, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// Suspended states are excluded from both selections.
	_, err = db.ExecContext(ctx,
		`UPDATE study_states SET suspended = 1 WHERE item_id = ?`, item.ID)
	require.NoError(t, err)

	due, err = reviews.GetDueCards(ctx, domain.DefaultDeckID, nil, now)
	require.NoError(t, err)
	assert.Empty(t, due)

	all, err = reviews.GetAllCards(ctx, domain.DefaultDeckID, nil)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestReviewStoreDirectionFilter(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	ctx := context.Background()
	reviews := NewReviewStore(db, nil)
	createTestItem(t, db, "paññā", "wisdom")

	direction := domain.DirectionPaliToMeaning
	cards, err := reviews.GetAllCards(ctx, domain.DefaultDeckID, &direction)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, domain.DirectionPaliToMeaning, cards[0].Direction)
	assert.Equal(t, "paññā", cards[0].Prompt())
	assert.Equal(t, "wisdom", cards[0].Answer())
}

func TestReviewStoreDeckScoping(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	ctx := context.Background()
	decks := NewDeckStore(db, nil)
	reviews := NewReviewStore(db, nil)

	inDeck := createTestItem(t, db, "viriya", "energy")
	createTestItem(t, db, "saddhā", "faith")

	deck := &domain.Deck{Name: "Faculties"}
	require.NoError(t, decks.Create(ctx, deck))
	require.NoError(t, decks.AddItems(ctx, deck.ID, []int64{inDeck.ID}))

	cards, err := reviews.GetAllCards(ctx, deck.ID, nil)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	for _, card := range cards {
		assert.Equal(t, inDeck.ID, card.ItemID, "only members of the deck are selected")
	}
}

func TestUpdateReviewStateMissingRowIsNoop(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	ctx := context.Background()

	affected, err := NewReviewStore(db, nil).UpdateReviewState(
		ctx, 12345, 1, 2.5, time.Now().UTC())
	require.NoError(t, err, "a missing review state is not an error")
	assert.Zero(t, affected)
}

func TestDeckStoreCreateAndNameCollision(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	ctx := context.Background()
	decks := NewDeckStore(db, nil)

	deck := &domain.Deck{Name: "Suttas"}
	require.NoError(t, decks.Create(ctx, deck))
	require.NotZero(t, deck.ID)
	assert.Equal(t, domain.StudyRandom, deck.StudyDirection)

	err := decks.Create(ctx, &domain.Deck{Name: "suttas"})
	assert.ErrorIs(t, err, store.ErrDeckNameTaken, "deck names are unique case-insensitively")

	exists, err := decks.NameExists(ctx, "SUTTAS", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = decks.NameExists(ctx, "Suttas", deck.ID)
	require.NoError(t, err)
	assert.False(t, exists, "excludeID skips the deck's own row")
}

func TestDeckStoreRenameAndDelete(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	ctx := context.Background()
	decks := NewDeckStore(db, nil)

	deck := &domain.Deck{Name: "Verbs"}
	require.NoError(t, decks.Create(ctx, deck))
	other := &domain.Deck{Name: "Nouns"}
	require.NoError(t, decks.Create(ctx, other))

	require.NoError(t, decks.Rename(ctx, deck.ID, "Roots"))
	got, err := decks.GetByID(ctx, deck.ID)
	require.NoError(t, err)
	assert.Equal(t, "Roots", got.Name)

	assert.ErrorIs(t, decks.Rename(ctx, deck.ID, "nouns"), store.ErrDeckNameTaken)
	assert.ErrorIs(t, decks.Rename(ctx, 999, "X"), store.ErrDeckNotFound)

	item := createTestItem(t, db, "gam", "to go")
	require.NoError(t, decks.AddItems(ctx, deck.ID, []int64{item.ID}))

	require.NoError(t, decks.Delete(ctx, deck.ID))
	_, err = decks.GetByID(ctx, deck.ID)
	assert.ErrorIs(t, err, store.ErrDeckNotFound)

	// Memberships cascade with the deck; the item itself survives.
	_, err = NewItemStore(db, nil).GetByID(ctx, item.ID)
	assert.NoError(t, err)
}

func TestDeckStoreListSortsAndCounts(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	ctx := context.Background()
	decks := NewDeckStore(db, nil)

	item := createTestItem(t, db, "bala", "power")
	big := &domain.Deck{Name: "zeta"}
	require.NoError(t, decks.Create(ctx, big))
	require.NoError(t, decks.AddItems(ctx, big.ID, []int64{item.ID}))
	require.NoError(t, decks.Create(ctx, &domain.Deck{Name: "alpha"}))

	byName, err := decks.List(ctx, store.DeckSortNameAsc)
	require.NoError(t, err)
	require.Len(t, byName, 3) // includes the seeded All deck
	assert.Equal(t, "All", byName[0].Name)
	assert.Equal(t, "alpha", byName[1].Name)
	assert.Equal(t, 1, byName[0].ItemCount)

	bySize, err := decks.List(ctx, store.DeckSortSizeDesc)
	require.NoError(t, err)
	assert.Equal(t, 1, bySize[0].ItemCount)
	assert.Equal(t, 0, bySize[2].ItemCount)
}

func TestDeckStoreSearch(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	ctx := context.Background()
	decks := NewDeckStore(db, nil)

	require.NoError(t, decks.Create(ctx, &domain.Deck{Name: "Daily practice"}))
	require.NoError(t, decks.Create(ctx, &domain.Deck{Name: "Grammar"}))

	found, err := decks.Search(ctx, "PRACT", store.DeckSortNameAsc)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Daily practice", found[0].Name)
}

func TestDeckStoreMembership(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	ctx := context.Background()
	decks := NewDeckStore(db, nil)

	item := createTestItem(t, db, "sīla", "virtue")
	deck := &domain.Deck{Name: "Ethics"}
	require.NoError(t, decks.Create(ctx, deck))

	require.NoError(t, decks.AddItems(ctx, deck.ID, []int64{item.ID}))
	// Adding again is idempotent.
	require.NoError(t, decks.AddItems(ctx, deck.ID, []int64{item.ID}))

	memberOf, err := decks.ListForItem(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, memberOf, 2)
	assert.Equal(t, "All", memberOf[0].Name)
	assert.Equal(t, "Ethics", memberOf[1].Name)

	removed, err := decks.RemoveItem(ctx, deck.ID, item.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = decks.RemoveItem(ctx, deck.ID, item.ID)
	require.NoError(t, err)
	assert.False(t, removed, "removing a missing membership reports false")
}

func TestDeckStoreListItemsAndMissingItems(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	ctx := context.Background()
	decks := NewDeckStore(db, nil)

	viriya := createTestItem(t, db, "viriya", "energy")
	anicca := createTestItem(t, db, "Anicca", "impermanence")
	khanti := createTestItem(t, db, "khanti", "patience")

	deck := &domain.Deck{Name: "Perfections"}
	require.NoError(t, decks.Create(ctx, deck))
	require.NoError(t, decks.AddItems(ctx, deck.ID, []int64{viriya.ID, khanti.ID}))

	// Members come back ordered by pali, case-insensitively.
	members, err := decks.ListItems(ctx, deck.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "khanti", members[0].Pali)
	assert.Equal(t, "viriya", members[1].Pali)

	missing, err := decks.ListMissingItems(ctx, deck.ID)
	require.NoError(t, err)
	require.Len(t, missing, 1)
	assert.Equal(t, anicca.ID, missing[0].ID)

	// The default deck holds everything, so nothing is missing from it.
	missing, err = decks.ListMissingItems(ctx, domain.DefaultDeckID)
	require.NoError(t, err)
	assert.Empty(t, missing)

	// A freshly created deck has no members and everything missing.
	empty := &domain.Deck{Name: "Fresh"}
	require.NoError(t, decks.Create(ctx, empty))
	members, err = decks.ListItems(ctx, empty.ID)
	require.NoError(t, err)
	assert.Empty(t, members)
	missing, err = decks.ListMissingItems(ctx, empty.ID)
	require.NoError(t, err)
	assert.Len(t, missing, 3)
}

func TestDeckStoreSetStudyDirection(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	ctx := context.Background()
	decks := NewDeckStore(db, nil)

	require.NoError(t, decks.SetStudyDirection(ctx, domain.DefaultDeckID, domain.StudyPaliFirst))
	got, err := decks.GetByID(ctx, domain.DefaultDeckID)
	require.NoError(t, err)
	assert.Equal(t, domain.StudyPaliFirst, got.StudyDirection)

	assert.ErrorIs(t,
		decks.SetStudyDirection(ctx, 999, domain.StudyRandom),
		store.ErrDeckNotFound)
}

func TestSnapshotRoundTrip(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	ctx := context.Background()
	snapshots := NewSnapshotStore(db, nil)

	createTestItem(t, db, "nibbāna", "extinguishing")
	deck := &domain.Deck{Name: "Goal"}
	require.NoError(t, NewDeckStore(db, nil).Create(ctx, deck))

	exported, err := snapshots.Export(ctx)
	require.NoError(t, err)
	assert.Len(t, exported.Items, 1)
	assert.Len(t, exported.ReviewStates, 2)
	assert.Len(t, exported.Decks, 2)
	assert.Len(t, exported.DeckItems, 1)

	// Import into a fresh database and re-export; the contents must match.
	db2 := newTestDB(t)
	snapshots2 := NewSnapshotStore(db2, nil)
	require.NoError(t, store.RunInTransaction(ctx, db2, func(ctx context.Context, tx *sql.Tx) error {
		return snapshots2.WithTx(tx).Import(ctx, exported)
	}))

	reimported, err := snapshots2.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, exported, reimported)
}
