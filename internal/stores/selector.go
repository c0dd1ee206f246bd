package stores

import "time"

// ScopeKind selects which due-set query a study run uses.
type ScopeKind int

const (
	// ScopeAll selects every card due by the end of the current local
	// calendar day, across all decks.
	ScopeAll ScopeKind = iota
	// ScopeBox selects every card sitting in one box, ignoring due dates
	// entirely.
	ScopeBox
	// ScopeDeck selects cards of one deck that are due strictly by "now".
	// This is deliberately tighter than ScopeAll's end-of-day cutoff; the
	// two semantics ship as-is from the original design and must not be
	// unified.
	ScopeDeck
)

// Scope is a due-set filter. Construct with AllDue, ByBox or ByDeck.
type Scope struct {
	Kind     ScopeKind
	BoxLevel int
	DeckID   string
}

func AllDue() Scope {
	return Scope{Kind: ScopeAll}
}

func ByBox(level int) Scope {
	return Scope{Kind: ScopeBox, BoxLevel: level}
}

func ByDeck(deckID string) Scope {
	return Scope{Kind: ScopeDeck, DeckID: deckID}
}

// Key returns the scope identifier recorded on a StudySession: the deck id
// for deck scopes, the sentinel "all" otherwise.
func (sc Scope) Key() string {
	if sc.Kind == ScopeDeck {
		return sc.DeckID
	}
	return AllDecks
}

// endOfDay is the inclusive upper bound of now's local calendar day.
func endOfDay(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), now.Location())
}

// ListDueCards returns the cards eligible for study under the given scope
// at time now, in stable creation order. An empty result is not an error.
func (s *Store) ListDueCards(scope Scope, now time.Time) []Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Card
	switch scope.Kind {
	case ScopeBox:
		for _, c := range s.cards {
			if c.BoxLevel == scope.BoxLevel {
				out = append(out, c)
			}
		}
	case ScopeDeck:
		for _, c := range s.cards {
			if c.DeckID == scope.DeckID && !c.NextReviewAt.After(now) {
				out = append(out, c)
			}
		}
	default:
		cutoff := endOfDay(now)
		for _, c := range s.cards {
			if !c.NextReviewAt.After(cutoff) {
				out = append(out, c)
			}
		}
	}
	return out
}
