// Package clues produces the advisory hints shown during study. Each clue
// comes from one of a fixed set of generators and carries a relevance
// weight; the ranker boosts and orders them per card state. Clues are
// ephemeral: generated fresh per display, never stored.
package clues

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mindcolony/cardbox/internal/stores"
)

// Type identifies which generator produced a clue.
type Type string

const (
	TypeGraph      Type = "graph"
	TypeSemantic   Type = "semantic"
	TypeRAG        Type = "rag"
	TypeDifficulty Type = "difficulty"
	TypeBox        Type = "box"
	TypeCluster    Type = "cluster"
)

// Clue is one advisory hint. Weight is the adjusted relevance in [0,1].
type Clue struct {
	ID       string  `json:"id"`
	Text     string  `json:"text"`
	Type     Type    `json:"type"`
	Weight   float64 `json:"weight"`
	Expanded string  `json:"expanded,omitempty"`
}

// Context is everything a generator may look at: the card under review,
// its deck (nil when unknown), and the full corpus.
type Context struct {
	Card     stores.Card
	Deck     *stores.Deck
	AllCards []stores.Card
	AllDecks []stores.Deck
}

// Ranker runs the generators and orders their output. The random pick used
// by the semantic generator is injectable so tests can pin it.
type Ranker struct {
	intN func(n int) int
}

// NewRanker returns a ranker using the shared random source.
func NewRanker() *Ranker {
	return &Ranker{intN: rand.Intn}
}

// NewRankerWithRand returns a ranker with a caller-supplied random pick,
// for deterministic tests.
func NewRankerWithRand(intN func(n int) int) *Ranker {
	return &Ranker{intN: intN}
}

const maxRelatedCards = 3

func (r *Ranker) graphClue(ctx Context) (Clue, bool) {
	var related []string
	for _, c := range ctx.AllCards {
		if c.DeckID != ctx.Card.DeckID || c.ID == ctx.Card.ID {
			continue
		}
		related = append(related, c.Front)
		if len(related) == maxRelatedCards {
			break
		}
	}
	if len(related) == 0 {
		return Clue{}, false
	}
	return Clue{
		ID:       fmt.Sprintf("graph-%s", ctx.Card.ID),
		Text:     "Related to: " + strings.Join(related, ", "),
		Type:     TypeGraph,
		Weight:   0.7,
		Expanded: "These concepts share connections in your knowledge graph.",
	}, true
}

var semanticHints = []string{
	"Think about the context where you'd use this.",
	"Consider similar words or concepts you already know.",
	"Try to visualize what this represents.",
	"Connect this to a real-world example.",
	"Break it down into smaller parts.",
}

func (r *Ranker) semanticClue(ctx Context) (Clue, bool) {
	return Clue{
		ID:     fmt.Sprintf("semantic-%s", ctx.Card.ID),
		Text:   semanticHints[r.intN(len(semanticHints))],
		Type:   TypeSemantic,
		Weight: 0.6,
	}, true
}

func (r *Ranker) ragClue(ctx Context) (Clue, bool) {
	text := "This concept appears in foundational learning materials."
	if ctx.Deck != nil {
		switch ctx.Deck.Name {
		case "Japanese Basics":
			text = "Japanese vocabulary often connects to cultural concepts."
		case "Spanish Verbs":
			text = "Spanish verb conjugations follow predictable patterns."
		}
	}
	return Clue{
		ID:       fmt.Sprintf("rag-%s", ctx.Card.ID),
		Text:     text,
		Type:     TypeRAG,
		Weight:   0.5,
		Expanded: "Generated from your learning materials and related sources.",
	}, true
}

func (r *Ranker) difficultyClue(ctx Context) (Clue, bool) {
	accuracy := ctx.Card.Accuracy() * 100
	var text string
	switch ctx.Card.Difficulty {
	case stores.DifficultyNew:
		text = "This is new material. Take your time to understand it."
	case stores.DifficultyHard:
		text = fmt.Sprintf("You've found this challenging (%.0f%% accuracy). Focus on building connections.", accuracy)
	case stores.DifficultyMedium:
		text = "You're making progress. Keep reinforcing this concept."
	case stores.DifficultyEasy:
		text = "You're doing well with this! Quick review should suffice."
	case stores.DifficultyMastered:
		text = "Almost mastered! Just a quick refresher."
	}
	return Clue{
		ID:     fmt.Sprintf("difficulty-%s", ctx.Card.ID),
		Text:   text,
		Type:   TypeDifficulty,
		Weight: 0.4,
	}, true
}

var boxMessages = [...]string{
	1: "New card - First encounter. Build initial memory.",
	2: "Learning stage - Short-term memory forming.",
	3: "Familiar - Transitioning to long-term memory.",
	4: "Well-known - Strong memory trace established.",
	5: "Mastered - Deep learning achieved.",
}

func (r *Ranker) boxClue(ctx Context) (Clue, bool) {
	level := ctx.Card.BoxLevel
	if level < 1 || level >= len(boxMessages) {
		// Unknown levels fall back to the box-1 message.
		level = 1
	}
	return Clue{
		ID:     fmt.Sprintf("box-%s", ctx.Card.ID),
		Text:   boxMessages[level],
		Type:   TypeBox,
		Weight: 0.3,
	}, true
}

const weakAccuracyThreshold = 0.5

func (r *Ranker) clusterClue(ctx Context) (Clue, bool) {
	misses := 0
	for _, c := range ctx.AllCards {
		if c.DeckID != ctx.Card.DeckID {
			continue
		}
		// A never-reviewed card is not yet known to be weak.
		accuracy := 1.0
		if c.ReviewCount > 0 {
			accuracy = c.Accuracy()
		}
		if accuracy < weakAccuracyThreshold {
			misses++
		}
	}
	if misses < 2 {
		return Clue{}, false
	}
	return Clue{
		ID:       fmt.Sprintf("cluster-%s", ctx.Card.ID),
		Text:     fmt.Sprintf("This belongs to a cluster where you missed %d cards. Pay extra attention.", misses),
		Type:     TypeCluster,
		Weight:   0.65,
		Expanded: "Focusing on weak clusters accelerates overall learning.",
	}, true
}

// Generate runs every generator in declaration order and returns the
// surviving clues ranked by adjusted weight, descending. Ties keep
// generator order. Read-only; never mutates any store state.
func (r *Ranker) Generate(ctx Context) []Clue {
	generators := []func(Context) (Clue, bool){
		r.graphClue,
		r.semanticClue,
		r.ragClue,
		r.difficultyClue,
		r.boxClue,
		r.clusterClue,
	}
	var out []Clue
	for _, gen := range generators {
		if clue, ok := gen(ctx); ok {
			out = append(out, clue)
		}
	}
	return rank(out, ctx.Card)
}

// rank applies the card-state boosts, clamps weights to 1.0 and sorts
// descending with a stable tiebreak.
func rank(list []Clue, card stores.Card) []Clue {
	for i := range list {
		w := list[i].Weight
		if list[i].Type == TypeGraph && card.Difficulty == stores.DifficultyHard {
			w += 0.2
		}
		if list[i].Type == TypeDifficulty && card.Difficulty == stores.DifficultyNew {
			w += 0.15
		}
		if list[i].Type == TypeCluster && card.ReviewCount > 0 && card.Accuracy() < weakAccuracyThreshold {
			w += 0.25
		}
		if w > 1 {
			w = 1
		}
		list[i].Weight = w
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Weight > list[j].Weight
	})
	return list
}

// RecordFeedback logs a helpful/not-helpful signal on a displayed clue.
// Telemetry only for now: the signal is not fed back into ranking weights.
func RecordFeedback(cardID, clueID string, helpful bool) {
	log.Info().Str("card", cardID).Str("clue", clueID).
		Bool("helpful", helpful).Msg("clue-feedback")
}
