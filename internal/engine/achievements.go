package engine

import (
	"time"

	"synthevix/internal/storage"
)

// ConditionType names the aggregate an achievement is measured against.
type ConditionType string

const (
	ConditionQuestsCompleted ConditionType = "quests_completed"
	ConditionQuestsPerDay    ConditionType = "quests_per_day"
	ConditionStreakDays      ConditionType = "streak_days"
	ConditionLevel           ConditionType = "level"
	ConditionBrainEntries    ConditionType = "brain_entries"
	ConditionMoodStreak      ConditionType = "mood_streak"
	ConditionCodingStreak    ConditionType = "coding_streak"
	ConditionAllAchievements ConditionType = "all_achievements"
)

// Achievement is one entry of the fixed catalog.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Emoji       string
	Condition   ConditionType
	Threshold   int
	XPReward    int
}

var catalog = [...]Achievement{
	{"first_blood", "First Blood", "Complete your first quest", "🔥", ConditionQuestsCompleted, 1, 50},
	{"speed_demon", "Speed Demon", "Complete 5 quests in one day", "⚡", ConditionQuestsPerDay, 5, 100},
	{"iron_will", "Iron Will", "Maintain a 7-day streak", "💪", ConditionStreakDays, 7, 200},
	{"legendary_hero", "Legendary Hero", "Reach Level 25", "🌟", ConditionLevel, 25, 500},
	{"scholar", "Scholar", "Add 50 Brain entries", "🧠", ConditionBrainEntries, 50, 150},
	{"zen_master", "Zen Master", "Log mood for 30 consecutive days", "🌈", ConditionMoodStreak, 30, 300},
	{"code_machine", "Code Machine", "Maintain a 14-day coding streak", "🚀", ConditionCodingStreak, 14, 250},
	{"completionist", "Completionist", "Unlock all other achievements", "🏆", ConditionAllAchievements, 7, 1000},
}

// Catalog returns a copy of the achievement table in its fixed order.
func Catalog() []Achievement {
	out := make([]Achievement, len(catalog))
	copy(out, catalog[:])
	return out
}

// AchievementByID looks an entry up in the catalog.
func AchievementByID(id string) (Achievement, bool) {
	for _, a := range catalog {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}

func catalogRows() []storage.AchievementRow {
	rows := make([]storage.AchievementRow, len(catalog))
	for i, a := range catalog {
		rows[i] = storage.AchievementRow{
			ID:             a.ID,
			Name:           a.Name,
			Description:    a.Description,
			Emoji:          a.Emoji,
			ConditionType:  string(a.Condition),
			ConditionValue: a.Threshold,
			XPReward:       a.XPReward,
		}
	}
	return rows
}

// Aggregates is the snapshot every unlock condition is checked against.
type Aggregates struct {
	QuestsCompletedTotal      int
	QuestsCompletedToday      int
	CurrentStreakDays         int
	Level                     int
	BrainEntryCount           int
	MoodLogStreakDays         int
	CodingStreakDays          int
	AchievementsUnlockedCount int
}

// Value returns the aggregate a condition reads. Unknown conditions read as 0.
func (a Aggregates) Value(c ConditionType) int {
	switch c {
	case ConditionQuestsCompleted:
		return a.QuestsCompletedTotal
	case ConditionQuestsPerDay:
		return a.QuestsCompletedToday
	case ConditionStreakDays:
		return a.CurrentStreakDays
	case ConditionLevel:
		return a.Level
	case ConditionBrainEntries:
		return a.BrainEntryCount
	case ConditionMoodStreak:
		return a.MoodLogStreakDays
	case ConditionCodingStreak:
		return a.CodingStreakDays
	case ConditionAllAchievements:
		return a.AchievementsUnlockedCount
	default:
		return 0
	}
}

// EvaluateAchievements returns the entries of achievements, in order, that are not in
// unlocked and whose condition agg meets. It does not mutate its inputs.
func EvaluateAchievements(achievements []Achievement, unlocked map[string]bool, agg Aggregates) []Achievement {
	var out []Achievement
	for _, a := range achievements {
		if unlocked[a.ID] {
			continue
		}
		if agg.Value(a.Condition) >= a.Threshold {
			out = append(out, a)
		}
	}
	return out
}

// AchievementStatus pairs a catalog entry with its unlock record, if any.
type AchievementStatus struct {
	Achievement
	Unlocked   bool
	UnlockedAt *time.Time
}
