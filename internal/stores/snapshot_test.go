package stores

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cardbox.db")
	snaps, err := OpenSnapshots(path)
	require.NoError(t, err)
	defer snaps.Close()

	_, found, err := snaps.Load()
	require.NoError(t, err)
	assert.False(t, found)

	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	want := SeedSnapshot(now)
	require.NoError(t, snaps.Save(want))

	got, found, err := snaps.Load()
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, len(want.Cards), len(got.Cards))
	assert.Equal(t, len(want.Decks), len(got.Decks))
	assert.Equal(t, "card-1", got.Cards[0].ID)
	assert.Equal(t, "Spanish Basics", got.Decks[0].Name)
	assert.True(t, got.Cards[0].NextReviewAt.Equal(now))
}

func TestSnapshotOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cardbox.db")
	snaps, err := OpenSnapshots(path)
	require.NoError(t, err)
	defer snaps.Close()

	now := time.Now()
	require.NoError(t, snaps.Save(SeedSnapshot(now)))
	require.NoError(t, snaps.Save(Snapshot{Decks: []Deck{{ID: "only", Name: "Only"}}}))

	got, found, err := snaps.Load()
	require.NoError(t, err)
	require.True(t, found)
	assert.Len(t, got.Decks, 1)
	assert.Empty(t, got.Cards)
}

func TestSnapshotKeysIsolated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cardbox.db")
	a, err := OpenSnapshotsWithKey(path, "key-a")
	require.NoError(t, err)
	defer a.Close()
	b, err := OpenSnapshotsWithKey(path, "key-b")
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, a.Save(Snapshot{Decks: []Deck{{ID: "a"}}}))

	_, found, err := b.Load()
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStorePersistsThroughSnapshotter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cardbox.db")
	snaps, err := OpenSnapshots(path)
	require.NoError(t, err)
	defer snaps.Close()

	s := New(snaps)
	deck := s.AddDeck("D", "", "#000000")
	_, ok := s.AddCard(deck.ID, CardContent{Front: "q", Back: "a"})
	require.True(t, ok)

	got, found, err := snaps.Load()
	require.NoError(t, err)
	require.True(t, found)
	assert.Len(t, got.Decks, 1)
	assert.Len(t, got.Cards, 1)
	assert.Equal(t, 1, got.Decks[0].CardCount)
}
