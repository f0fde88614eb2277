package engine

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

func TestAdvanceStreak(t *testing.T) {
	d0 := day(2026, 3, 10)
	cases := []struct {
		name         string
		in           StreakState
		today        time.Time
		wantCurrent  int
		wantLongest  int
		wantShields  int
		wantUsed     int
		wantEarned   int
		wantLastDate time.Time
	}{
		{
			name:        "first completion",
			in:          StreakState{},
			today:       d0,
			wantCurrent: 1, wantLongest: 1, wantLastDate: d0,
		},
		{
			name:        "same day unchanged",
			in:          StreakState{LastQuestDate: ptr(d0), Current: 3, Longest: 5},
			today:       d0,
			wantCurrent: 3, wantLongest: 5, wantLastDate: d0,
		},
		{
			name:        "next day",
			in:          StreakState{LastQuestDate: ptr(d0), Current: 3, Longest: 3},
			today:       d0.AddDate(0, 0, 1),
			wantCurrent: 4, wantLongest: 4, wantLastDate: d0.AddDate(0, 0, 1),
		},
		{
			name:        "one skipped day with shield",
			in:          StreakState{LastQuestDate: ptr(d0), Current: 8, Longest: 8, Shields: 1},
			today:       d0.AddDate(0, 0, 2),
			wantCurrent: 9, wantLongest: 9, wantShields: 0, wantUsed: 1, wantLastDate: d0.AddDate(0, 0, 2),
		},
		{
			name:        "one skipped day without shield",
			in:          StreakState{LastQuestDate: ptr(d0), Current: 8, Longest: 8},
			today:       d0.AddDate(0, 0, 2),
			wantCurrent: 1, wantLongest: 8, wantLastDate: d0.AddDate(0, 0, 2),
		},
		{
			name:        "two skipped days resets even with shields",
			in:          StreakState{LastQuestDate: ptr(d0), Current: 8, Longest: 8, Shields: 2},
			today:       d0.AddDate(0, 0, 3),
			wantCurrent: 1, wantLongest: 8, wantShields: 2, wantLastDate: d0.AddDate(0, 0, 3),
		},
		{
			name:        "reaching a milestone earns a shield",
			in:          StreakState{LastQuestDate: ptr(d0), Current: 6, Longest: 6},
			today:       d0.AddDate(0, 0, 1),
			wantCurrent: 7, wantLongest: 7, wantShields: 1, wantEarned: 1, wantLastDate: d0.AddDate(0, 0, 1),
		},
		{
			name:        "shield used and earned in one step",
			in:          StreakState{LastQuestDate: ptr(d0), Current: 13, Longest: 13, Shields: 1},
			today:       d0.AddDate(0, 0, 2),
			wantCurrent: 14, wantLongest: 14, wantShields: 1, wantUsed: 1, wantEarned: 1, wantLastDate: d0.AddDate(0, 0, 2),
		},
		{
			name:        "second completion on milestone day earns again",
			in:          StreakState{LastQuestDate: ptr(d0), Current: 7, Longest: 7, Shields: 1},
			today:       d0,
			wantCurrent: 7, wantLongest: 7, wantShields: 2, wantEarned: 1, wantLastDate: d0,
		},
		{
			name:        "same day off a milestone earns nothing",
			in:          StreakState{LastQuestDate: ptr(d0), Current: 8, Longest: 8, Shields: 1},
			today:       d0,
			wantCurrent: 8, wantLongest: 8, wantShields: 1, wantLastDate: d0,
		},
		{
			name:        "clock moved backwards",
			in:          StreakState{LastQuestDate: ptr(d0), Current: 4, Longest: 4},
			today:       d0.AddDate(0, 0, -1),
			wantCurrent: 4, wantLongest: 4, wantLastDate: d0,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := AdvanceStreak(c.in, c.today)
			s := got.State
			if s.Current != c.wantCurrent || s.Longest != c.wantLongest || s.Shields != c.wantShields {
				t.Fatalf("state = %+v, want current=%d longest=%d shields=%d", s, c.wantCurrent, c.wantLongest, c.wantShields)
			}
			if got.ShieldsUsed != c.wantUsed || got.ShieldsEarned != c.wantEarned {
				t.Fatalf("used=%d earned=%d, want %d/%d", got.ShieldsUsed, got.ShieldsEarned, c.wantUsed, c.wantEarned)
			}
			if s.LastQuestDate == nil || !s.LastQuestDate.Equal(c.wantLastDate) {
				t.Fatalf("last date = %v, want %v", s.LastQuestDate, c.wantLastDate)
			}
			if s.Current > s.Longest {
				t.Fatalf("current %d exceeds longest %d", s.Current, s.Longest)
			}
		})
	}
}

func TestAdvanceStreakDoesNotMutateInput(t *testing.T) {
	d0 := day(2026, 3, 10)
	in := StreakState{LastQuestDate: ptr(d0), Current: 2, Longest: 2}
	_ = AdvanceStreak(in, d0.AddDate(0, 0, 1))
	if in.Current != 2 || !in.LastQuestDate.Equal(d0) {
		t.Fatalf("input mutated: %+v", in)
	}
}

func TestDayOf(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	cases := []struct {
		at        time.Time
		resetHour int
		want      time.Time
	}{
		{time.Date(2026, 3, 10, 2, 0, 0, 0, loc), 4, day(2026, 3, 9)},
		{time.Date(2026, 3, 10, 4, 0, 0, 0, loc), 4, day(2026, 3, 10)},
		{time.Date(2026, 3, 10, 23, 59, 0, 0, loc), 0, day(2026, 3, 10)},
		{time.Date(2026, 3, 10, 0, 30, 0, 0, loc), 0, day(2026, 3, 10)},
	}
	for _, c := range cases {
		if got := DayOf(c.at, c.resetHour); !got.Equal(c.want) {
			t.Fatalf("DayOf(%v, %d)=%v, want %v", c.at, c.resetHour, got, c.want)
		}
	}
}

func TestConsecutiveDays(t *testing.T) {
	today := day(2026, 3, 10)
	cases := []struct {
		name string
		days []time.Time
		want int
	}{
		{"empty", nil, 0},
		{"today only", []time.Time{today}, 1},
		{"run ending yesterday", []time.Time{today.AddDate(0, 0, -1), today.AddDate(0, 0, -2)}, 2},
		{"run broken", []time.Time{today, today.AddDate(0, 0, -1), today.AddDate(0, 0, -3)}, 2},
		{"stale", []time.Time{today.AddDate(0, 0, -2), today.AddDate(0, 0, -3)}, 0},
		{"duplicates and future skipped", []time.Time{today.AddDate(0, 0, 1), today, today, today.AddDate(0, 0, -1)}, 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ConsecutiveDays(c.days, today); got != c.want {
				t.Fatalf("ConsecutiveDays=%d, want %d", got, c.want)
			}
		})
	}
}
