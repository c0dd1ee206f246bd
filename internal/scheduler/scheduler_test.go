package scheduler

import (
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/mindcolony/cardbox/internal/stores"
)

var testNow = time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)

func cardAt(box int, difficulty stores.Difficulty) stores.Card {
	return stores.Card{ID: "c", BoxLevel: box, Difficulty: difficulty}
}

func TestAdvanceStaysInRange(t *testing.T) {
	is := is.New(t)
	for box := MinBoxLevel; box <= MaxBoxLevel; box++ {
		for _, correct := range []bool{true, false} {
			res := Advance(cardAt(box, stores.DifficultyNew), correct, testNow)
			is.True(res.BoxLevel >= MinBoxLevel)
			is.True(res.BoxLevel <= MaxBoxLevel)
		}
	}
}

func TestAdvanceClampsAtBoundaries(t *testing.T) {
	is := is.New(t)

	res := Advance(cardAt(5, stores.DifficultyEasy), true, testNow)
	is.Equal(res.BoxLevel, 5) // correct at the top stays at the top

	res = Advance(cardAt(1, stores.DifficultyNew), false, testNow)
	is.Equal(res.BoxLevel, 1) // incorrect at the bottom stays at the bottom

	// Repeated boundary reviews never escape the range.
	card := cardAt(5, stores.DifficultyEasy)
	for i := 0; i < 10; i++ {
		r := Advance(card, true, testNow)
		is.Equal(r.BoxLevel, 5)
		card.BoxLevel = r.BoxLevel
		card.Difficulty = r.Difficulty
	}
}

func TestAdvanceClampsBadInput(t *testing.T) {
	is := is.New(t)
	// Out-of-range box levels are a bug elsewhere; defend by clamping.
	res := Advance(cardAt(99, stores.DifficultyNew), true, testNow)
	is.Equal(res.BoxLevel, 5)
	res = Advance(cardAt(-3, stores.DifficultyNew), false, testNow)
	is.Equal(res.BoxLevel, 1)
}

func TestIncorrectAlwaysHard(t *testing.T) {
	is := is.New(t)
	for box := MinBoxLevel; box <= MaxBoxLevel; box++ {
		for _, d := range []stores.Difficulty{
			stores.DifficultyNew, stores.DifficultyHard, stores.DifficultyMedium,
			stores.DifficultyEasy, stores.DifficultyMastered,
		} {
			res := Advance(cardAt(box, d), false, testNow)
			is.Equal(res.Difficulty, stores.DifficultyHard)
		}
	}
}

func TestCorrectDifficultyByResultingBox(t *testing.T) {
	is := is.New(t)

	// Reaching box 4 or 5 yields easy.
	res := Advance(cardAt(3, stores.DifficultyMedium), true, testNow)
	is.Equal(res.BoxLevel, 4)
	is.Equal(res.Difficulty, stores.DifficultyEasy)

	res = Advance(cardAt(5, stores.DifficultyEasy), true, testNow)
	is.Equal(res.Difficulty, stores.DifficultyEasy)

	// Reaching exactly box 3 yields medium.
	res = Advance(cardAt(2, stores.DifficultyHard), true, testNow)
	is.Equal(res.BoxLevel, 3)
	is.Equal(res.Difficulty, stores.DifficultyMedium)

	// Landing in box 2 carries the prior difficulty forward.
	res = Advance(cardAt(1, stores.DifficultyHard), true, testNow)
	is.Equal(res.BoxLevel, 2)
	is.Equal(res.Difficulty, stores.DifficultyHard)

	res = Advance(cardAt(1, stores.DifficultyNew), true, testNow)
	is.Equal(res.Difficulty, stores.DifficultyNew)
}

func TestNextReviewIntervals(t *testing.T) {
	is := is.New(t)

	// Box 3 answered correctly: box 4, due in 7 days.
	res := Advance(cardAt(3, stores.DifficultyMedium), true, testNow)
	is.Equal(res.NextReviewAt, testNow.AddDate(0, 0, 7))

	// Box 1 missed: stays in box 1, due in 1 day (not immediately; the
	// demoted card waits out the interval of the box it lands in).
	res = Advance(cardAt(1, stores.DifficultyNew), false, testNow)
	is.Equal(res.BoxLevel, 1)
	is.Equal(res.Difficulty, stores.DifficultyHard)
	is.Equal(res.NextReviewAt, testNow.AddDate(0, 0, 1))

	// Top box answered correctly: monthly.
	res = Advance(cardAt(5, stores.DifficultyEasy), true, testNow)
	is.Equal(res.NextReviewAt, testNow.AddDate(0, 0, 30))
}

func TestIntervalDays(t *testing.T) {
	is := is.New(t)
	is.Equal(IntervalDays(1), 1)
	is.Equal(IntervalDays(2), 3)
	is.Equal(IntervalDays(3), 7)
	is.Equal(IntervalDays(4), 14)
	is.Equal(IntervalDays(5), 30)
	is.Equal(IntervalDays(0), 1)  // clamped
	is.Equal(IntervalDays(42), 30) // clamped
}

func TestBoxMetadata(t *testing.T) {
	is := is.New(t)
	boxes := Boxes()
	is.Equal(len(boxes), 5)
	is.Equal(boxes[0].Name, "New")
	is.Equal(boxes[4].Name, "Mastered")
	is.Equal(Box(3).Spacing, "Weekly")
	is.Equal(Box(-1).Level, 1)
	is.Equal(Box(9).Level, 5)
}
