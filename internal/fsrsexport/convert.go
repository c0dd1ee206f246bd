// Package fsrsexport converts Leitner cardbox state into FSRS cards so a
// cardbox snapshot can be migrated into an FSRS-based scheduler.
package fsrsexport

import (
	"time"

	"github.com/open-spaced-repetition/go-fsrs/v3"

	"github.com/mindcolony/cardbox/internal/scheduler"
	"github.com/mindcolony/cardbox/internal/stores"
)

// Provenance records the cardbox state a converted card came from, kept
// next to the FSRS card so the conversion can be audited or redone.
type Provenance struct {
	ExportedAt  time.Time `json:"exported_at"`
	CardID      string    `json:"card_id"`
	DeckID      string    `json:"deck_id"`
	BoxAtExport int       `json:"box_at_export"`
	NumCorrect  int       `json:"num_correct"`
	NumReviews  int       `json:"num_reviews"`
}

// Entry is one exported card.
type Entry struct {
	Front      string     `json:"front"`
	Back       string     `json:"back"`
	DeckName   string     `json:"deck_name"`
	Card       fsrs.Card  `json:"card"`
	Provenance Provenance `json:"provenance"`
}

// Convert maps one cardbox card onto an FSRS card.
//
// FSRS stability is proxied by the card's current box interval: a card the
// schedule trusts for 14 days behaves like one with two weeks of
// stability. Never-correct cards get a small floor so the first FSRS
// review cannot produce a degenerate interval. FSRS difficulty is derived
// from the miss/hit counts and clamped to FSRS's [1,10] range.
func Convert(card stores.Card, now time.Time) (fsrs.Card, Provenance) {
	incorrect := card.ReviewCount - card.CorrectCount

	state := fsrs.Review
	if card.ReviewCount == 0 {
		state = fsrs.New
	}

	stability := float64(scheduler.IntervalDays(card.BoxLevel))
	if card.CorrectCount == 0 {
		stability = 0.2
	}

	due := card.NextReviewAt
	if due.IsZero() {
		due = now
	}

	out := fsrs.Card{
		Due:        due,
		Stability:  stability,
		Difficulty: max(min(float64(5+incorrect)-0.5*float64(card.CorrectCount), 10), 1),
		Reps:       uint64(card.ReviewCount),
		Lapses:     uint64(incorrect),
		State:      state,
		LastReview: card.CreatedAt,
	}
	prov := Provenance{
		ExportedAt:  now,
		CardID:      card.ID,
		DeckID:      card.DeckID,
		BoxAtExport: card.BoxLevel,
		NumCorrect:  card.CorrectCount,
		NumReviews:  card.ReviewCount,
	}
	return out, prov
}

// ExportSnapshot converts every card in a snapshot, resolving deck names
// for display. Cards referencing an unknown deck are exported with an
// empty deck name rather than dropped.
func ExportSnapshot(snap stores.Snapshot, now time.Time) []Entry {
	deckNames := make(map[string]string, len(snap.Decks))
	for _, d := range snap.Decks {
		deckNames[d.ID] = d.Name
	}
	entries := make([]Entry, 0, len(snap.Cards))
	for _, c := range snap.Cards {
		card, prov := Convert(c, now)
		entries = append(entries, Entry{
			Front:      c.Front,
			Back:       c.Back,
			DeckName:   deckNames[c.DeckID],
			Card:       card,
			Provenance: prov,
		})
	}
	return entries
}
