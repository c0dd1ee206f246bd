package stores

import (
	"time"
)

// Difficulty is the coarse classification a card carries alongside its box
// level. It is derived by the scheduler on review, never set directly by
// the study flow.
type Difficulty string

const (
	DifficultyNew      Difficulty = "new"
	DifficultyHard     Difficulty = "hard"
	DifficultyMedium   Difficulty = "medium"
	DifficultyEasy     Difficulty = "easy"
	DifficultyMastered Difficulty = "mastered"
)

// Card is a single flashcard. The JSON tags match the persisted blob layout
// of the original web client so a snapshot file is interchangeable with it.
type Card struct {
	ID           string     `json:"id"`
	Front        string     `json:"front"`
	Back         string     `json:"back"`
	DeckID       string     `json:"deckId"`
	BoxLevel     int        `json:"boxLevel"`
	Difficulty   Difficulty `json:"difficulty"`
	NextReviewAt time.Time  `json:"nextReviewAt"`
	CreatedAt    time.Time  `json:"createdAt"`
	ReviewCount  int        `json:"reviewCount"`
	CorrectCount int        `json:"correctCount"`
	Hints        []string   `json:"hints,omitempty"`
	Tags         []string   `json:"tags,omitempty"`
}

// Accuracy returns the card's running accuracy in [0,1]. A card that has
// never been reviewed reports 0.
func (c Card) Accuracy() float64 {
	if c.ReviewCount == 0 {
		return 0
	}
	return float64(c.CorrectCount) / float64(c.ReviewCount)
}

// Deck groups cards for organization and study scoping. CardCount is a
// cached count of live cards referencing the deck; it is maintained
// incrementally on every membership mutation, never recomputed.
type Deck struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Color       string     `json:"color"`
	CardCount   int        `json:"cardCount"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastStudied *time.Time `json:"lastStudied,omitempty"`
}

// AllDecks is the sentinel DeckID on a StudySession that was not scoped to
// a single deck.
const AllDecks = "all"

// StudySession records one bounded study run. EndedAt is nil while the
// session is open; at most one session is open at a time.
type StudySession struct {
	ID             string     `json:"id"`
	DeckID         string     `json:"deckId"`
	StartedAt      time.Time  `json:"startedAt"`
	EndedAt        *time.Time `json:"endedAt,omitempty"`
	CardsReviewed  int        `json:"cardsReviewed"`
	CorrectAnswers int        `json:"correctAnswers"`
	HintsUsed      int        `json:"hintsUsed"`
}

// DailyStats aggregates one calendar day of reviewing. Date is formatted
// as 2006-01-02 in the local zone.
type DailyStats struct {
	Date          string  `json:"date"`
	CardsReviewed int     `json:"cardsReviewed"`
	CorrectRate   float64 `json:"correctRate"`
	TimeSpent     int64   `json:"timeSpent"`
	Streak        int     `json:"streak"`
}

// CardContent carries the user-editable fields of a card, separate from its
// scheduling state.
type CardContent struct {
	Front string
	Back  string
	Hints []string
	Tags  []string
}
