package engine

import "time"

const (
	// ShieldMilestone awards one shield every time the streak reaches a multiple of it.
	ShieldMilestone = 7

	// shieldGraceGap is the day gap a single shield can bridge.
	shieldGraceGap = 2
)

// StreakState is the streak portion of the profile.
type StreakState struct {
	LastQuestDate *time.Time
	Current       int
	Longest       int
	Shields       int
}

// StreakChange reports what a transition did besides the new state.
type StreakChange struct {
	State         StreakState
	ShieldsUsed   int
	ShieldsEarned int
}

// AdvanceStreak applies one quest completion on today. Both today and the stored
// last date are calendar days (midnight UTC); see DayOf.
func AdvanceStreak(s StreakState, today time.Time) StreakChange {
	next := s
	change := StreakChange{}

	moved := true
	if s.LastQuestDate == nil {
		next.Current = 1
	} else {
		switch gap := DaysBetween(*s.LastQuestDate, today); {
		case gap <= 0:
			// Same day, or a clock that went backwards: nothing advances.
			moved = false
		case gap == 1:
			next.Current++
		case gap == shieldGraceGap && s.Shields > 0:
			next.Current++
			next.Shields--
			change.ShieldsUsed = 1
		default:
			next.Current = 1
		}
	}

	if next.Current > next.Longest {
		next.Longest = next.Current
	}
	// Every completion made while the streak sits on a milestone earns a shield.
	if next.Current > 0 && next.Current%ShieldMilestone == 0 {
		next.Shields++
		change.ShieldsEarned = 1
	}
	if moved {
		day := today
		next.LastQuestDate = &day
	}

	change.State = next
	return change
}

// DayOf maps an instant to its streak day: the local calendar date of t shifted back
// by resetHour hours, returned as midnight UTC.
func DayOf(t time.Time, resetHour int) time.Time {
	shifted := t.Add(-time.Duration(resetHour) * time.Hour)
	y, m, d := shifted.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns whole calendar days from a to b; both must come from DayOf or ParseDay.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// ConsecutiveDays counts the run of days ending today (or yesterday, while today is
// still open). days must be newest first; duplicates and future days are skipped.
func ConsecutiveDays(days []time.Time, today time.Time) int {
	count := 0
	var last *time.Time
	for i := range days {
		d := days[i]
		if d.After(today) {
			continue
		}
		if last != nil && d.Equal(*last) {
			continue
		}
		if last == nil {
			if gap := DaysBetween(d, today); gap > 1 {
				return 0
			}
		} else if DaysBetween(d, *last) != 1 {
			return count
		}
		count++
		last = &days[i]
	}
	return count
}
