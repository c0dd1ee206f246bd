package stores

import "time"

// SeedSnapshot returns the starter content shipped with a fresh install:
// two small decks with every card due immediately. Ids are fixed so
// repeated seeding is idempotent at the blob level.
func SeedSnapshot(now time.Time) Snapshot {
	decks := []Deck{
		{ID: "deck-1", Name: "Spanish Basics", Description: "Essential Spanish vocabulary", Color: "#F59E0B", CardCount: 5, CreatedAt: now},
		{ID: "deck-2", Name: "JavaScript Fundamentals", Description: "Core JS concepts", Color: "#3B82F6", CardCount: 4, CreatedAt: now},
	}
	cards := []Card{
		{ID: "card-1", Front: "Hola", Back: "Hello", DeckID: "deck-1", BoxLevel: 1, Difficulty: DifficultyNew, NextReviewAt: now, CreatedAt: now, Hints: []string{"Common greeting", "Used any time of day"}, Tags: []string{"greetings"}},
		{ID: "card-2", Front: "Gracias", Back: "Thank you", DeckID: "deck-1", BoxLevel: 1, Difficulty: DifficultyNew, NextReviewAt: now, CreatedAt: now, Hints: []string{"Express gratitude", "Very common word"}, Tags: []string{"polite"}},
		{ID: "card-3", Front: "Buenos días", Back: "Good morning", DeckID: "deck-1", BoxLevel: 2, Difficulty: DifficultyHard, NextReviewAt: now, CreatedAt: now, ReviewCount: 3, CorrectCount: 1, Hints: []string{"Morning greeting", "Used until noon"}, Tags: []string{"greetings", "time"}},
		{ID: "card-4", Front: "Por favor", Back: "Please", DeckID: "deck-1", BoxLevel: 3, Difficulty: DifficultyMedium, NextReviewAt: now, CreatedAt: now, ReviewCount: 5, CorrectCount: 4, Hints: []string{"Polite request"}, Tags: []string{"polite"}},
		{ID: "card-5", Front: "Adiós", Back: "Goodbye", DeckID: "deck-1", BoxLevel: 4, Difficulty: DifficultyEasy, NextReviewAt: now, CreatedAt: now, ReviewCount: 8, CorrectCount: 7, Hints: []string{"Farewell expression"}, Tags: []string{"greetings"}},
		{ID: "card-6", Front: "What is a closure?", Back: "A function that has access to variables from its outer scope", DeckID: "deck-2", BoxLevel: 1, Difficulty: DifficultyNew, NextReviewAt: now, CreatedAt: now, Hints: []string{"Think about scope", "Functions remember their environment"}, Tags: []string{"functions", "scope"}},
		{ID: "card-7", Front: "What does === mean?", Back: "Strict equality (checks both value and type)", DeckID: "deck-2", BoxLevel: 2, Difficulty: DifficultyHard, NextReviewAt: now, CreatedAt: now, ReviewCount: 2, CorrectCount: 1, Hints: []string{"Compare with ==", "Type coercion"}, Tags: []string{"operators"}},
		{ID: "card-8", Front: "What is hoisting?", Back: "JavaScript's behavior of moving declarations to the top of their scope", DeckID: "deck-2", BoxLevel: 3, Difficulty: DifficultyMedium, NextReviewAt: now, CreatedAt: now, ReviewCount: 4, CorrectCount: 3, Hints: []string{"var vs let/const", "Declaration vs initialization"}, Tags: []string{"scope", "variables"}},
		{ID: "card-9", Front: "What is the event loop?", Back: "Mechanism that handles async operations by checking the call stack and task queue", DeckID: "deck-2", BoxLevel: 1, Difficulty: DifficultyNew, NextReviewAt: now, CreatedAt: now, Hints: []string{"Async JavaScript", "Single-threaded"}, Tags: []string{"async"}},
	}
	return Snapshot{Cards: cards, Decks: decks}
}
