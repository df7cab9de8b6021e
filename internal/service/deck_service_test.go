package service

import (
	"context"
	"testing"

	"github.com/palime/palime-api/internal/domain"
	"github.com/palime/palime-api/internal/platform/sqlite"
	"github.com/palime/palime-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spyDeckStore counts mutating calls so tests can assert the service
// rejected an operation before touching the store.
type spyDeckStore struct {
	store.DeckStore
	mutations int
}

func (s *spyDeckStore) Create(ctx context.Context, deck *domain.Deck) error {
	s.mutations++
	return s.DeckStore.Create(ctx, deck)
}

func (s *spyDeckStore) Rename(ctx context.Context, id int64, name string) error {
	s.mutations++
	return s.DeckStore.Rename(ctx, id, name)
}

func (s *spyDeckStore) Delete(ctx context.Context, id int64) error {
	s.mutations++
	return s.DeckStore.Delete(ctx, id)
}

func (s *spyDeckStore) RemoveItem(ctx context.Context, deckID, itemID int64) (bool, error) {
	s.mutations++
	return s.DeckStore.RemoveItem(ctx, deckID, itemID)
}

func newDeckFixture(t *testing.T) (DeckService, *spyDeckStore) {
	t.Helper()
	db := newTestDB(t)
	spy := &spyDeckStore{DeckStore: sqlite.NewDeckStore(db, nil)}
	return NewDeckService(spy, nil), spy
}

func TestCreateDeckNameRules(t *testing.T) {
	t.Parallel()
	deckSvc, _ := newDeckFixture(t)
	ctx := context.Background()

	deck, err := deckSvc.CreateDeck(ctx, "  Suttas  ")
	require.NoError(t, err)
	assert.Equal(t, "Suttas", deck.Name, "names are trimmed before storage")

	_, err = deckSvc.CreateDeck(ctx, "   ")
	assert.ErrorIs(t, err, domain.ErrDeckNameEmpty)

	_, err = deckSvc.CreateDeck(ctx, "all")
	assert.ErrorIs(t, err, domain.ErrDeckNameReserved)

	_, err = deckSvc.CreateDeck(ctx, "suttas")
	assert.ErrorIs(t, err, store.ErrDeckNameTaken)
}

func TestDuplicateNamesRejectedBeforeStore(t *testing.T) {
	t.Parallel()
	deckSvc, spy := newDeckFixture(t)
	ctx := context.Background()

	_, err := deckSvc.CreateDeck(ctx, "Suttas")
	require.NoError(t, err)
	other, err := deckSvc.CreateDeck(ctx, "Vinaya")
	require.NoError(t, err)
	written := spy.mutations

	_, err = deckSvc.CreateDeck(ctx, " SUTTAS ")
	assert.ErrorIs(t, err, store.ErrDeckNameTaken)

	err = deckSvc.RenameDeck(ctx, other.ID, "suttas")
	assert.ErrorIs(t, err, store.ErrDeckNameTaken)

	assert.Equal(t, written, spy.mutations, "collisions are caught before any write")

	// A deck may keep its own name under a different casing.
	require.NoError(t, deckSvc.RenameDeck(ctx, other.ID, "VINAYA"))
}

func TestListDeckItems(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	itemStore := sqlite.NewItemStore(db, nil)
	reviewStore := sqlite.NewReviewStore(db, nil)
	deckStore := sqlite.NewDeckStore(db, nil)
	items := NewItemService(db, itemStore, reviewStore, deckStore, nil)
	deckSvc := NewDeckService(deckStore, nil)
	ctx := context.Background()

	deck, err := deckSvc.CreateDeck(ctx, "Roots")
	require.NoError(t, err)

	bhava := &domain.Item{Type: domain.ItemTypeRoot, Pali: "bhava", Meaning: "becoming"}
	require.NoError(t, items.CreateItem(ctx, bhava, []int64{deck.ID}))
	gacchati := &domain.Item{Type: domain.ItemTypeWord, Pali: "gacchati", Meaning: "goes"}
	require.NoError(t, items.CreateItem(ctx, gacchati, nil))

	members, err := deckSvc.ListDeckItems(ctx, deck.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "bhava", members[0].Pali)

	// The picker offers exactly the items the deck lacks.
	missing, err := deckSvc.ListMissingItems(ctx, deck.ID)
	require.NoError(t, err)
	require.Len(t, missing, 1)
	assert.Equal(t, "gacchati", missing[0].Pali)

	_, err = deckSvc.ListDeckItems(ctx, 999)
	assert.ErrorIs(t, err, store.ErrDeckNotFound)
	_, err = deckSvc.ListMissingItems(ctx, 999)
	assert.ErrorIs(t, err, store.ErrDeckNotFound)
}

func TestDefaultDeckIsProtected(t *testing.T) {
	t.Parallel()
	deckSvc, spy := newDeckFixture(t)
	ctx := context.Background()

	err := deckSvc.RenameDeck(ctx, domain.DefaultDeckID, "Everything")
	assert.ErrorIs(t, err, domain.ErrDefaultDeckImmutable)

	err = deckSvc.DeleteDeck(ctx, domain.DefaultDeckID)
	assert.ErrorIs(t, err, domain.ErrDefaultDeckImmutable)

	err = deckSvc.RemoveItemFromDeck(ctx, domain.DefaultDeckID, 1)
	assert.ErrorIs(t, err, domain.ErrDefaultDeckImmutable)

	assert.Zero(t, spy.mutations, "rejected operations never reach the store")

	got, err := deckSvc.GetDeck(ctx, domain.DefaultDeckID)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultDeckName, got.Name)
}

func TestDefaultDeckDirectionIsChangeable(t *testing.T) {
	t.Parallel()
	deckSvc, _ := newDeckFixture(t)
	ctx := context.Background()

	require.NoError(t,
		deckSvc.SetStudyDirection(ctx, domain.DefaultDeckID, domain.StudyMeaningFirst))

	got, err := deckSvc.GetDeck(ctx, domain.DefaultDeckID)
	require.NoError(t, err)
	assert.Equal(t, domain.StudyMeaningFirst, got.StudyDirection)

	err = deckSvc.SetStudyDirection(ctx, domain.DefaultDeckID, "sideways")
	assert.ErrorIs(t, err, domain.ErrInvalidDirection)
}

func TestRenameDeck(t *testing.T) {
	t.Parallel()
	deckSvc, _ := newDeckFixture(t)
	ctx := context.Background()

	deck, err := deckSvc.CreateDeck(ctx, "Old name")
	require.NoError(t, err)

	require.NoError(t, deckSvc.RenameDeck(ctx, deck.ID, " New name "))
	got, err := deckSvc.GetDeck(ctx, deck.ID)
	require.NoError(t, err)
	assert.Equal(t, "New name", got.Name)

	err = deckSvc.RenameDeck(ctx, deck.ID, "ALL")
	assert.ErrorIs(t, err, domain.ErrDeckNameReserved)
}

func TestAddItemsToUnknownDeck(t *testing.T) {
	t.Parallel()
	deckSvc, _ := newDeckFixture(t)
	ctx := context.Background()

	err := deckSvc.AddItemsToDeck(ctx, 999, []int64{1})
	assert.ErrorIs(t, err, store.ErrDeckNotFound)

	// An empty item list is a no-op even for an unknown deck.
	assert.NoError(t, deckSvc.AddItemsToDeck(ctx, 999, nil))
}

func TestRemoveMissingMembershipIsNoop(t *testing.T) {
	t.Parallel()
	deckSvc, _ := newDeckFixture(t)
	ctx := context.Background()

	deck, err := deckSvc.CreateDeck(ctx, "Sparse")
	require.NoError(t, err)

	assert.NoError(t, deckSvc.RemoveItemFromDeck(ctx, deck.ID, 12345))
}

func TestListDecksFallsBackToNameSort(t *testing.T) {
	t.Parallel()
	deckSvc, _ := newDeckFixture(t)
	ctx := context.Background()

	_, err := deckSvc.CreateDeck(ctx, "Beta")
	require.NoError(t, err)

	decks, err := deckSvc.ListDecks(ctx, "bogus_sort")
	require.NoError(t, err)
	require.Len(t, decks, 2)
	assert.Equal(t, domain.DefaultDeckName, decks[0].Name)
}
