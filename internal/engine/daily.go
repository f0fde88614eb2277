package engine

import "math/rand/v2"

// DailySuggestions is the number of daily challenges offered per draw.
const DailySuggestions = 3

// DailyChallenge is a suggested quest that has not been stored yet.
type DailyChallenge struct {
	Title      string
	Difficulty Difficulty
}

var dailyPool = [...]DailyChallenge{
	{"Complete 3 focused work sessions", DifficultyMedium},
	{"Write a journal entry about today", DifficultyEasy},
	{"Clean up 10 lines of old code", DifficultyEasy},
	{"Reach out to someone you haven't spoken to", DifficultyEasy},
	{"Read for 30 minutes", DifficultyEasy},
	{"Exercise for 20 minutes", DifficultyMedium},
	{"Review your open quests and prioritize", DifficultyTrivial},
	{"Write a helpful Brain note about something you learned", DifficultyTrivial},
	{"Push one commit to a project", DifficultyMedium},
	{"Delete 5 things you no longer need (files, apps, notes)", DifficultyTrivial},
}

// DailyPool returns a copy of the fixed challenge pool.
func DailyPool() []DailyChallenge {
	out := make([]DailyChallenge, len(dailyPool))
	copy(out, dailyPool[:])
	return out
}

// SampleDailyChallenges draws DailySuggestions distinct challenges from the pool.
func SampleDailyChallenges(rng *rand.Rand) []DailyChallenge {
	pool := DailyPool()
	n := min(DailySuggestions, len(pool))
	// Partial Fisher-Yates: the first n slots end up a uniform sample.
	for i := 0; i < n; i++ {
		j := i + rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}
