package stores

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Nower abstracts the clock so tests can pin "now".
type Nower interface {
	Now() time.Time
}

// RealNower is the wall clock.
type RealNower struct{}

func (r RealNower) Now() time.Time {
	return time.Now()
}

// Snapshotter is the durable side channel the store writes through after
// each mutation. Persistence is best effort: failures are logged and
// swallowed, never surfaced to the mutating caller.
type Snapshotter interface {
	Save(snap Snapshot) error
}

// Store holds all cards, decks, session history and daily stats for the
// single local user. All mutation goes through methods that replace records
// whole under the store mutex, so readers never observe a half-updated
// record.
type Store struct {
	mu         sync.Mutex
	cards      []Card
	decks      []Deck
	sessions   []StudySession
	dailyStats []DailyStats

	Nower Nower
	snap  Snapshotter
}

// New returns an empty store. snap may be nil for a purely in-memory store.
func New(snap Snapshotter) *Store {
	return &Store{Nower: RealNower{}, snap: snap}
}

// NewFromSnapshot restores a store from a previously persisted snapshot.
func NewFromSnapshot(snapshot Snapshot, snap Snapshotter) *Store {
	s := New(snap)
	s.cards = append(s.cards, snapshot.Cards...)
	s.decks = append(s.decks, snapshot.Decks...)
	s.sessions = append(s.sessions, snapshot.Sessions...)
	s.dailyStats = append(s.dailyStats, snapshot.DailyStats...)
	return s
}

// persist writes the current state through the snapshot side channel.
// Callers must hold s.mu.
func (s *Store) persist() {
	if s.snap == nil {
		return
	}
	if err := s.snap.Save(s.snapshotLocked()); err != nil {
		log.Err(err).Msg("snapshot-save-failed")
	}
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Cards:      append([]Card(nil), s.cards...),
		Decks:      append([]Deck(nil), s.decks...),
		Sessions:   append([]StudySession(nil), s.sessions...),
		DailyStats: append([]DailyStats(nil), s.dailyStats...),
	}
}

// Snapshot returns a copy of the full store state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// AddDeck creates a new, empty deck.
func (s *Store) AddDeck(name, description, color string) Deck {
	s.mu.Lock()
	defer s.mu.Unlock()
	deck := Deck{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		Color:       color,
		CreatedAt:   s.Nower.Now(),
	}
	s.decks = append(s.decks, deck)
	s.persist()
	return deck
}

// UpdateDeck edits a deck's user-facing fields. Returns false for an
// unknown id.
func (s *Store) UpdateDeck(id, name, description, color string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.decks {
		if s.decks[i].ID != id {
			continue
		}
		deck := s.decks[i]
		deck.Name = name
		deck.Description = description
		deck.Color = color
		s.decks[i] = deck
		s.persist()
		return true
	}
	return false
}

// DeleteDeck removes a deck and cascades to every card referencing it.
func (s *Store) DeleteDeck(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	found := false
	decks := s.decks[:0]
	for _, d := range s.decks {
		if d.ID == id {
			found = true
			continue
		}
		decks = append(decks, d)
	}
	if !found {
		return false
	}
	s.decks = decks
	cards := s.cards[:0]
	for _, c := range s.cards {
		if c.DeckID == id {
			continue
		}
		cards = append(cards, c)
	}
	s.cards = cards
	s.persist()
	return true
}

// AddCard creates a card in the given deck. New cards start in box 1 with
// difficulty "new" and are due immediately. Returns false if the deck does
// not exist.
func (s *Store) AddCard(deckID string, content CardContent) (Card, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	deckIdx := -1
	for i := range s.decks {
		if s.decks[i].ID == deckID {
			deckIdx = i
			break
		}
	}
	if deckIdx == -1 {
		return Card{}, false
	}
	now := s.Nower.Now()
	card := Card{
		ID:           uuid.New().String(),
		Front:        content.Front,
		Back:         content.Back,
		DeckID:       deckID,
		BoxLevel:     1,
		Difficulty:   DifficultyNew,
		NextReviewAt: now,
		CreatedAt:    now,
		Hints:        content.Hints,
		Tags:         content.Tags,
	}
	s.cards = append(s.cards, card)
	deck := s.decks[deckIdx]
	deck.CardCount++
	s.decks[deckIdx] = deck
	s.persist()
	return card, true
}

// UpdateCardContent edits a card's content fields, leaving its scheduling
// state untouched.
func (s *Store) UpdateCardContent(id string, content CardContent) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cards {
		if s.cards[i].ID != id {
			continue
		}
		card := s.cards[i]
		card.Front = content.Front
		card.Back = content.Back
		card.Hints = content.Hints
		card.Tags = content.Tags
		s.cards[i] = card
		s.persist()
		return true
	}
	return false
}

// DeleteCard removes a card and decrements its deck's cached count.
func (s *Store) DeleteCard(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cards {
		if s.cards[i].ID != id {
			continue
		}
		deckID := s.cards[i].DeckID
		s.cards = append(s.cards[:i], s.cards[i+1:]...)
		for j := range s.decks {
			if s.decks[j].ID == deckID {
				deck := s.decks[j]
				deck.CardCount--
				s.decks[j] = deck
				break
			}
		}
		s.persist()
		return true
	}
	return false
}

// ApplyReview writes a scheduler outcome back onto a card: new box level,
// difficulty and due time, plus the review counters. Returns the updated
// snapshot, or false if the card id is unknown.
func (s *Store) ApplyReview(id string, boxLevel int, difficulty Difficulty, nextReviewAt time.Time, wasCorrect bool) (Card, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cards {
		if s.cards[i].ID != id {
			continue
		}
		card := s.cards[i]
		card.BoxLevel = boxLevel
		card.Difficulty = difficulty
		card.NextReviewAt = nextReviewAt
		card.ReviewCount++
		if wasCorrect {
			card.CorrectCount++
		}
		s.cards[i] = card
		s.persist()
		return card, true
	}
	return Card{}, false
}

// MoveCardToBox places a card in the given box directly, without touching
// its due date or counters. Used by the box-browsing flow.
func (s *Store) MoveCardToBox(id string, boxLevel int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cards {
		if s.cards[i].ID != id {
			continue
		}
		card := s.cards[i]
		card.BoxLevel = boxLevel
		s.cards[i] = card
		s.persist()
		return true
	}
	return false
}

// Card returns a card by id.
func (s *Store) Card(id string) (Card, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cards {
		if s.cards[i].ID == id {
			return s.cards[i], true
		}
	}
	return Card{}, false
}

// Deck returns a deck by id.
func (s *Store) Deck(id string) (Deck, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.decks {
		if s.decks[i].ID == id {
			return s.decks[i], true
		}
	}
	return Deck{}, false
}

// Cards returns all cards in creation order.
func (s *Store) Cards() []Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Card(nil), s.cards...)
}

// Decks returns all decks in creation order.
func (s *Store) Decks() []Deck {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Deck(nil), s.decks...)
}

// Sessions returns the finalized session history.
func (s *Store) Sessions() []StudySession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]StudySession(nil), s.sessions...)
}

// DailyStats returns the per-day aggregates, oldest first.
func (s *Store) DailyStats() []DailyStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]DailyStats(nil), s.dailyStats...)
}

// AppendSession finalizes a session into history and rolls its numbers into
// the day's stats. If the session was deck-scoped, the deck's lastStudied
// timestamp is stamped as well.
func (s *Store) AppendSession(session StudySession, timeSpentMs int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = append(s.sessions, session)
	s.rollDailyStats(session, timeSpentMs)
	if session.DeckID != AllDecks {
		for i := range s.decks {
			if s.decks[i].ID == session.DeckID {
				deck := s.decks[i]
				t := s.Nower.Now()
				deck.LastStudied = &t
				s.decks[i] = deck
				break
			}
		}
	}
	s.persist()
}

const dailyStatsDateLayout = "2006-01-02"

// rollDailyStats merges a finished session into the entry for its calendar
// day, creating it if needed. Streak counts consecutive days with at least
// one finished session. Callers must hold s.mu.
func (s *Store) rollDailyStats(session StudySession, timeSpentMs int64) {
	day := session.StartedAt.Format(dailyStatsDateLayout)
	for i := range s.dailyStats {
		if s.dailyStats[i].Date != day {
			continue
		}
		stat := s.dailyStats[i]
		total := stat.CardsReviewed + session.CardsReviewed
		if total > 0 {
			correct := stat.CorrectRate*float64(stat.CardsReviewed) + float64(session.CorrectAnswers)
			stat.CorrectRate = correct / float64(total)
		}
		stat.CardsReviewed = total
		stat.TimeSpent += timeSpentMs
		s.dailyStats[i] = stat
		return
	}
	streak := 1
	prevDay := session.StartedAt.AddDate(0, 0, -1).Format(dailyStatsDateLayout)
	for i := range s.dailyStats {
		if s.dailyStats[i].Date == prevDay {
			streak = s.dailyStats[i].Streak + 1
			break
		}
	}
	rate := 0.0
	if session.CardsReviewed > 0 {
		rate = float64(session.CorrectAnswers) / float64(session.CardsReviewed)
	}
	s.dailyStats = append(s.dailyStats, DailyStats{
		Date:          day,
		CardsReviewed: session.CardsReviewed,
		CorrectRate:   rate,
		TimeSpent:     timeSpentMs,
		Streak:        streak,
	})
}
