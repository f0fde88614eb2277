package storage

import "time"

const (
	dayLayout  = "2006-01-02"
	timeLayout = "2006-01-02T15:04:05.000Z07:00"
)

type Quest struct {
	ID          int64
	Title       string
	Description *string
	Difficulty  string
	Status      string
	XPEarned    int
	DueDate     *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
}

// Profile is the single player row (id = 1).
type Profile struct {
	Username      string
	TotalXP       int
	Level         int
	CurrentStreak int
	LongestStreak int
	StreakShields int
	LastQuestDate *time.Time
}

// AchievementRow mirrors the seeded achievements reference table.
type AchievementRow struct {
	ID             string
	Name           string
	Description    string
	Emoji          string
	ConditionType  string
	ConditionValue int
	XPReward       int
}

type UnlockRecord struct {
	AchievementID string
	UnlockedAt    time.Time
}

// FormatDay renders a calendar day the way day columns store it.
func FormatDay(d time.Time) string {
	return d.Format(dayLayout)
}

// ParseDay parses a stored day column into a UTC midnight time.
func ParseDay(s string) (time.Time, error) {
	return time.Parse(dayLayout, s)
}

// Timestamps are stored as fixed-width UTC text so they sort lexically.
func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}
