// Package scheduler implements the Leitner box transition rules: which box
// a card moves to after a review, how its difficulty label evolves, and
// when it is next due.
package scheduler

import (
	"time"

	"github.com/mindcolony/cardbox/internal/stores"
)

const (
	MinBoxLevel = 1
	MaxBoxLevel = 5
)

// intervals maps a card's new box level to the number of calendar days
// until its next review. Index 0 is unused since box levels start at 1.
// Note that a card demoted after a miss waits out the interval of the box
// it lands in, so dropping to box 1 means due tomorrow, not immediately.
var intervals = [MaxBoxLevel + 1]int{0, 1, 3, 7, 14, 30}

// Result is the outcome of advancing a card: the caller persists it.
type Result struct {
	BoxLevel     int
	Difficulty   stores.Difficulty
	NextReviewAt time.Time
}

func clampBox(level int) int {
	if level < MinBoxLevel {
		return MinBoxLevel
	}
	if level > MaxBoxLevel {
		return MaxBoxLevel
	}
	return level
}

// Advance computes a card's next scheduling state for one review outcome.
// It is pure: nothing is mutated, and it is total over its inputs (an
// out-of-range box level on the card is clamped rather than rejected).
//
// A correct answer promotes one box, capped at 5; difficulty becomes easy
// at box 4 and above, medium at exactly box 3, and is otherwise carried
// forward unchanged. An incorrect answer demotes one box, floored at 1,
// and always marks the card hard.
func Advance(card stores.Card, wasCorrect bool, now time.Time) Result {
	box := clampBox(card.BoxLevel)
	difficulty := card.Difficulty
	if wasCorrect {
		box = clampBox(box + 1)
		if box >= 4 {
			difficulty = stores.DifficultyEasy
		} else if box == 3 {
			difficulty = stores.DifficultyMedium
		}
	} else {
		box = clampBox(box - 1)
		difficulty = stores.DifficultyHard
	}
	return Result{
		BoxLevel:     box,
		Difficulty:   difficulty,
		NextReviewAt: now.AddDate(0, 0, intervals[box]),
	}
}

// IntervalDays returns the review interval, in days, for a box level.
// Out-of-range levels are clamped.
func IntervalDays(level int) int {
	return intervals[clampBox(level)]
}
