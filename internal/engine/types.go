package engine

import "strings"

type Difficulty string

const (
	DifficultyTrivial   Difficulty = "trivial"
	DifficultyEasy      Difficulty = "easy"
	DifficultyMedium    Difficulty = "medium"
	DifficultyHard      Difficulty = "hard"
	DifficultyEpic      Difficulty = "epic"
	DifficultyLegendary Difficulty = "legendary"
)

// Difficulties lists every tier from easiest to hardest.
var Difficulties = []Difficulty{
	DifficultyTrivial,
	DifficultyEasy,
	DifficultyMedium,
	DifficultyHard,
	DifficultyEpic,
	DifficultyLegendary,
}

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyTrivial, DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyEpic, DifficultyLegendary:
		return true
	default:
		return false
	}
}

// ParseDifficulty accepts a tier name in any case.
func ParseDifficulty(input string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(input)))
	if !d.IsValid() {
		return "", ValidationError{Field: "difficulty", Reason: "must be one of " + joinDifficulties()}
	}
	return d, nil
}

func joinDifficulties() string {
	names := make([]string, len(Difficulties))
	for i, d := range Difficulties {
		names[i] = string(d)
	}
	return strings.Join(names, ", ")
}

type QuestStatus string

const (
	StatusActive    QuestStatus = "active"
	StatusCompleted QuestStatus = "completed"
	StatusFailed    QuestStatus = "failed"
	StatusArchived  QuestStatus = "archived"
)

func (s QuestStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusFailed, StatusArchived:
		return true
	default:
		return false
	}
}

// ParseStatusFilter maps user input to a status filter. "all" and "" mean no filter.
func ParseStatusFilter(input string) (QuestStatus, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" || s == "all" {
		return "", nil
	}
	st := QuestStatus(s)
	if !st.IsValid() {
		return "", ValidationError{Field: "status", Reason: "must be active, completed, failed, archived or all"}
	}
	return st, nil
}
