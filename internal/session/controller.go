// Package session coordinates one study run: a snapshot of the due set,
// review submissions routed through the scheduler, and the accumulating
// StudySession record.
package session

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mindcolony/cardbox/internal/clues"
	"github.com/mindcolony/cardbox/internal/scheduler"
	"github.com/mindcolony/cardbox/internal/stores"
)

// State is where the controller sits in its lifecycle.
type State int

const (
	// Idle means no session is open.
	Idle State = iota
	// Active means a session is open and cards remain in the queue.
	Active
	// Complete means the queue snapshot has been fully consumed but the
	// session has not been finalized yet.
	Complete
)

// Controller runs study sessions against a store. At most one session is
// open at a time; the due set is snapshotted when the session starts and
// never re-queried, so a card reviewed mid-session does not reappear even
// if its new due time would qualify again.
type Controller struct {
	store  *stores.Store
	ranker *clues.Ranker
	Nower  stores.Nower

	scope     stores.Scope
	queue     []stores.Card
	cursor    int
	current   *stores.StudySession
	elapsedMs int64
}

// NewController wires a controller to its store and clue ranker. The
// ranker may be nil when the caller never displays clues.
func NewController(store *stores.Store, ranker *clues.Ranker) *Controller {
	return &Controller{store: store, ranker: ranker, Nower: stores.RealNower{}}
}

// State reports the controller's lifecycle position.
func (c *Controller) State() State {
	if c.current == nil {
		return Idle
	}
	if c.cursor >= len(c.queue) {
		return Complete
	}
	return Active
}

// Start opens a session for the given scope. If a session is already open,
// it is reused as-is regardless of scope (single-session invariant). ok is
// false when nothing is due and no session was created.
func (c *Controller) Start(scope stores.Scope) (stores.StudySession, bool) {
	if c.current != nil {
		return *c.current, true
	}
	now := c.Nower.Now()
	queue := c.store.ListDueCards(scope, now)
	if len(queue) == 0 {
		return stores.StudySession{}, false
	}
	c.scope = scope
	c.queue = queue
	c.cursor = 0
	c.elapsedMs = 0
	sess := stores.StudySession{
		ID:        uuid.New().String(),
		DeckID:    scope.Key(),
		StartedAt: now,
	}
	c.current = &sess
	log.Info().Str("session", sess.ID).Str("scope", sess.DeckID).
		Int("queued", len(queue)).Msg("session-started")
	return sess, true
}

// Current returns the card under the cursor, from the snapshot taken at
// session start. ok is false outside the Active state.
func (c *Controller) Current() (stores.Card, bool) {
	if c.State() != Active {
		return stores.Card{}, false
	}
	return c.queue[c.cursor], true
}

// Queue returns the session's due-set snapshot.
func (c *Controller) Queue() []stores.Card {
	return append([]stores.Card(nil), c.queue...)
}

// Position returns the cursor and snapshot length for progress display.
func (c *Controller) Position() (cursor, total int) {
	return c.cursor, len(c.queue)
}

// Session returns the open session record, if any.
func (c *Controller) Session() (stores.StudySession, bool) {
	if c.current == nil {
		return stores.StudySession{}, false
	}
	return *c.current, true
}

// Clues returns the ranked advisory clues for the card under the cursor.
// Display only; generating clues never mutates state.
func (c *Controller) Clues() []clues.Clue {
	card, ok := c.Current()
	if !ok || c.ranker == nil {
		return nil
	}
	var deck *stores.Deck
	if d, ok := c.store.Deck(card.DeckID); ok {
		deck = &d
	}
	return c.ranker.Generate(clues.Context{
		Card:     card,
		Deck:     deck,
		AllCards: c.store.Cards(),
		AllDecks: c.store.Decks(),
	})
}

// SubmitReview scores the card under review: the scheduler computes the new
// box, difficulty and due time, the store persists them along with the
// review counters, and the session's totals and cursor advance. hintsUsed
// is the number of explicit hint interactions plus clues shown at answer
// time. A card id that is no longer in the store fails silently: the queue
// slot is consumed but nothing else changes.
func (c *Controller) SubmitReview(cardID string, wasCorrect bool, elapsedMs int64, hintsUsed int) (stores.Card, bool) {
	if c.State() != Active {
		return stores.Card{}, false
	}
	card, ok := c.store.Card(cardID)
	if !ok {
		log.Debug().Str("card", cardID).Msg("review-for-missing-card")
		c.cursor++
		return stores.Card{}, false
	}
	now := c.Nower.Now()
	res := scheduler.Advance(card, wasCorrect, now)
	updated, ok := c.store.ApplyReview(cardID, res.BoxLevel, res.Difficulty, res.NextReviewAt, wasCorrect)
	if !ok {
		c.cursor++
		return stores.Card{}, false
	}
	c.current.CardsReviewed++
	if wasCorrect {
		c.current.CorrectAnswers++
	}
	c.current.HintsUsed += hintsUsed
	c.elapsedMs += elapsedMs
	c.cursor++
	log.Info().Str("card", cardID).Bool("correct", wasCorrect).
		Int("box", res.BoxLevel).Str("difficulty", string(res.Difficulty)).
		Time("next-scheduled", res.NextReviewAt).Msg("card-scored")
	return updated, true
}

// End finalizes the open session: stamps endedAt, appends it to history
// (rolling daily stats and the deck's lastStudied along the way) and
// returns to Idle. ok is false when no session is open.
func (c *Controller) End() (stores.StudySession, bool) {
	if c.current == nil {
		return stores.StudySession{}, false
	}
	sess := *c.current
	t := c.Nower.Now()
	sess.EndedAt = &t
	c.store.AppendSession(sess, c.elapsedMs)
	log.Info().Str("session", sess.ID).Int("reviewed", sess.CardsReviewed).
		Int("correct", sess.CorrectAnswers).Msg("session-ended")
	c.reset()
	return sess, true
}

// Restart re-enters the session against the same due-set snapshot with all
// counters zeroed. No history entry is written until the session is ended.
func (c *Controller) Restart() bool {
	if c.current == nil {
		return false
	}
	c.cursor = 0
	c.elapsedMs = 0
	c.current.CardsReviewed = 0
	c.current.CorrectAnswers = 0
	c.current.HintsUsed = 0
	return true
}

// Abandon discards the open session without finalizing it into history.
func (c *Controller) Abandon() {
	if c.current != nil {
		log.Info().Str("session", c.current.ID).Msg("session-abandoned")
	}
	c.reset()
}

func (c *Controller) reset() {
	c.current = nil
	c.queue = nil
	c.cursor = 0
	c.elapsedMs = 0
}
