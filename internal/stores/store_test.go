package stores

import (
	"testing"
	"time"

	"github.com/matryer/is"
)

type FakeNower struct{ fakenow time.Time }

func (f FakeNower) Now() time.Time {
	return f.fakenow
}

var t0 = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestStore() *Store {
	s := New(nil)
	s.Nower = FakeNower{fakenow: t0}
	return s
}

func TestAddCardMaintainsDeckCount(t *testing.T) {
	is := is.New(t)
	s := newTestStore()

	deck := s.AddDeck("Spanish", "basics", "#F59E0B")
	is.Equal(deck.CardCount, 0)

	card, ok := s.AddCard(deck.ID, CardContent{Front: "Hola", Back: "Hello"})
	is.True(ok)
	is.Equal(card.BoxLevel, 1)
	is.Equal(card.Difficulty, DifficultyNew)
	is.Equal(card.NextReviewAt, t0)
	is.Equal(card.ReviewCount, 0)
	is.Equal(card.CorrectCount, 0)

	got, ok := s.Deck(deck.ID)
	is.True(ok)
	is.Equal(got.CardCount, 1)

	is.True(s.DeleteCard(card.ID))
	got, _ = s.Deck(deck.ID)
	is.Equal(got.CardCount, 0)
}

func TestAddCardUnknownDeck(t *testing.T) {
	is := is.New(t)
	s := newTestStore()
	_, ok := s.AddCard("nope", CardContent{Front: "x"})
	is.True(!ok)
}

func TestDeleteDeckCascades(t *testing.T) {
	is := is.New(t)
	s := newTestStore()

	keep := s.AddDeck("Keep", "", "#111111")
	drop := s.AddDeck("Drop", "", "#222222")
	kept, _ := s.AddCard(keep.ID, CardContent{Front: "a"})
	s.AddCard(drop.ID, CardContent{Front: "b"})
	s.AddCard(drop.ID, CardContent{Front: "c"})

	is.True(s.DeleteDeck(drop.ID))

	cards := s.Cards()
	is.Equal(len(cards), 1)
	is.Equal(cards[0].ID, kept.ID)
	_, ok := s.Deck(drop.ID)
	is.True(!ok)

	is.True(!s.DeleteDeck(drop.ID)) // already gone
}

func TestApplyReviewCounters(t *testing.T) {
	is := is.New(t)
	s := newTestStore()
	deck := s.AddDeck("D", "", "#000000")
	card, _ := s.AddCard(deck.ID, CardContent{Front: "q", Back: "a"})

	due := t0.AddDate(0, 0, 3)
	updated, ok := s.ApplyReview(card.ID, 2, DifficultyNew, due, true)
	is.True(ok)
	is.Equal(updated.BoxLevel, 2)
	is.Equal(updated.ReviewCount, 1)
	is.Equal(updated.CorrectCount, 1)
	is.Equal(updated.NextReviewAt, due)

	updated, ok = s.ApplyReview(card.ID, 1, DifficultyHard, due, false)
	is.True(ok)
	is.Equal(updated.ReviewCount, 2)
	is.Equal(updated.CorrectCount, 1)
	is.Equal(updated.Difficulty, DifficultyHard)

	_, ok = s.ApplyReview("unknown", 1, DifficultyHard, due, false)
	is.True(!ok)
}

func TestUpdateCardContentLeavesScheduling(t *testing.T) {
	is := is.New(t)
	s := newTestStore()
	deck := s.AddDeck("D", "", "#000000")
	card, _ := s.AddCard(deck.ID, CardContent{Front: "old", Back: "old"})
	s.ApplyReview(card.ID, 3, DifficultyMedium, t0.AddDate(0, 0, 7), true)

	is.True(s.UpdateCardContent(card.ID, CardContent{Front: "new", Back: "new", Tags: []string{"t"}}))
	got, _ := s.Card(card.ID)
	is.Equal(got.Front, "new")
	is.Equal(got.BoxLevel, 3)
	is.Equal(got.ReviewCount, 1)
}

func TestMoveCardToBox(t *testing.T) {
	is := is.New(t)
	s := newTestStore()
	deck := s.AddDeck("D", "", "#000000")
	card, _ := s.AddCard(deck.ID, CardContent{Front: "q"})

	is.True(s.MoveCardToBox(card.ID, 4))
	got, _ := s.Card(card.ID)
	is.Equal(got.BoxLevel, 4)
	is.Equal(got.NextReviewAt, t0) // due date untouched
	is.Equal(got.ReviewCount, 0)

	is.True(!s.MoveCardToBox("unknown", 2))
}

func TestUpdateDeck(t *testing.T) {
	is := is.New(t)
	s := newTestStore()
	deck := s.AddDeck("Old", "old", "#000000")
	s.AddCard(deck.ID, CardContent{Front: "q"})

	is.True(s.UpdateDeck(deck.ID, "New", "new", "#FFFFFF"))
	got, _ := s.Deck(deck.ID)
	is.Equal(got.Name, "New")
	is.Equal(got.CardCount, 1) // cached count survives edits

	is.True(!s.UpdateDeck("unknown", "x", "", ""))
}

func TestAppendSessionRollsDailyStats(t *testing.T) {
	is := is.New(t)
	s := newTestStore()
	deck := s.AddDeck("D", "", "#000000")

	end := t0.Add(10 * time.Minute)
	s.AppendSession(StudySession{
		ID: "s1", DeckID: deck.ID, StartedAt: t0, EndedAt: &end,
		CardsReviewed: 4, CorrectAnswers: 3,
	}, 60000)

	stats := s.DailyStats()
	is.Equal(len(stats), 1)
	is.Equal(stats[0].Date, "2025-03-10")
	is.Equal(stats[0].CardsReviewed, 4)
	is.Equal(stats[0].CorrectRate, 0.75)
	is.Equal(stats[0].TimeSpent, int64(60000))
	is.Equal(stats[0].Streak, 1)

	d, _ := s.Deck(deck.ID)
	is.True(d.LastStudied != nil)

	// Same day merges.
	s.AppendSession(StudySession{
		ID: "s2", DeckID: AllDecks, StartedAt: t0.Add(time.Hour), EndedAt: &end,
		CardsReviewed: 4, CorrectAnswers: 1,
	}, 30000)
	stats = s.DailyStats()
	is.Equal(len(stats), 1)
	is.Equal(stats[0].CardsReviewed, 8)
	is.Equal(stats[0].CorrectRate, 0.5)
	is.Equal(stats[0].TimeSpent, int64(90000))

	// Next day extends the streak.
	day2 := t0.AddDate(0, 0, 1)
	s.AppendSession(StudySession{
		ID: "s3", DeckID: AllDecks, StartedAt: day2, EndedAt: &end,
		CardsReviewed: 1, CorrectAnswers: 1,
	}, 1000)
	stats = s.DailyStats()
	is.Equal(len(stats), 2)
	is.Equal(stats[1].Streak, 2)
}

func TestSeedSnapshotShape(t *testing.T) {
	is := is.New(t)
	snap := SeedSnapshot(t0)
	is.Equal(len(snap.Decks), 2)
	is.Equal(len(snap.Cards), 9)
	counts := map[string]int{}
	for _, c := range snap.Cards {
		counts[c.DeckID]++
		is.True(c.BoxLevel >= 1 && c.BoxLevel <= 5)
		is.True(c.CorrectCount <= c.ReviewCount)
	}
	for _, d := range snap.Decks {
		is.Equal(d.CardCount, counts[d.ID]) // cached count matches membership
	}
}
