package engine

import "math"

const (
	// MinLevelXP is the floor on the XP needed to clear any single level.
	MinLevelXP = 100

	// LevelCurveCoef and LevelCurveExp shape XP_req(level) = 100 * level^1.5.
	LevelCurveCoef = 100.0
	LevelCurveExp  = 1.5

	// PenaltyRate is the share of base XP lost when a quest fails.
	PenaltyRate = 0.1
)

var baseXP = map[Difficulty]int{
	DifficultyTrivial:   10,
	DifficultyEasy:      25,
	DifficultyMedium:    50,
	DifficultyHard:      100,
	DifficultyEpic:      250,
	DifficultyLegendary: 500,
}

var streakBonusXP = map[Difficulty]int{
	DifficultyTrivial:   2,
	DifficultyEasy:      5,
	DifficultyMedium:    10,
	DifficultyHard:      20,
	DifficultyEpic:      50,
	DifficultyLegendary: 100,
}

// BaseXP returns the base reward for a tier. Unknown tiers fall back to medium;
// callers validate with ParseDifficulty first.
func BaseXP(d Difficulty) int {
	if v, ok := baseXP[d]; ok {
		return v
	}
	return baseXP[DifficultyMedium]
}

// StreakBonusXP returns the per-streak-day bonus for a tier.
func StreakBonusXP(d Difficulty) int {
	if v, ok := streakBonusXP[d]; ok {
		return v
	}
	return streakBonusXP[DifficultyMedium]
}

// XPForLevel returns the XP required to advance from level to level+1.
func XPForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	req := int(math.Floor(LevelCurveCoef * math.Pow(float64(level), LevelCurveExp)))
	if req < MinLevelXP {
		return MinLevelXP
	}
	return req
}

// LevelProgress is a position on the leveling ladder.
type LevelProgress struct {
	Level       int
	XPIntoLevel int
	XPForNext   int
}

// LevelFromXP walks the cumulative thresholds from level 1 and stops at the first
// level whose threshold would overshoot totalXP.
func LevelFromXP(totalXP int) LevelProgress {
	if totalXP < 0 {
		totalXP = 0
	}
	level := 1
	accumulated := 0
	for {
		needed := XPForLevel(level)
		if accumulated+needed > totalXP {
			return LevelProgress{Level: level, XPIntoLevel: totalXP - accumulated, XPForNext: needed}
		}
		accumulated += needed
		level++
	}
}

// CalculateXP computes the reward for a completed quest. The result is never below 1,
// whatever the multiplier.
func CalculateXP(d Difficulty, streakDays int, multiplier float64) int {
	if streakDays < 0 {
		streakDays = 0
	}
	if multiplier < 0 || math.IsNaN(multiplier) {
		multiplier = 0
	}
	raw := float64(BaseXP(d)+StreakBonusXP(d)*streakDays) * multiplier
	xp := int(math.Round(raw))
	if xp < 1 {
		return 1
	}
	return xp
}

// CalculateXPPenalty returns the XP lost when a quest of tier d fails.
func CalculateXPPenalty(d Difficulty) int {
	return int(math.Floor(float64(BaseXP(d)) * PenaltyRate))
}
