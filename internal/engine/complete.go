package engine

import (
	"context"
	"math"
	"time"

	"synthevix/internal/storage"
)

type CompleteResult struct {
	QuestID         int64
	XPEarned        int
	LeveledUp       bool
	OldLevel        int
	NewLevel        int
	NewStreak       int
	ShieldsUsed     int
	ShieldsEarned   int
	NewAchievements []Achievement
	AchievementXP   int
}

type FailResult struct {
	QuestID   int64
	XPPenalty int
}

// loadActive returns the quest if it exists and is still active.
func loadActive(ctx context.Context, r storage.Repos, id int64) (*storage.Quest, error) {
	q, err := r.Quests.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, NotFoundError{Kind: "quest", ID: id}
	}
	if QuestStatus(q.Status) != StatusActive {
		return nil, InvalidStateError{QuestID: id, Status: QuestStatus(q.Status)}
	}
	return q, nil
}

// deriveLevel re-derives the level from XP without ever lowering it.
func deriveLevel(p *storage.Profile) {
	if l := LevelFromXP(p.TotalXP).Level; l > p.Level {
		p.Level = l
	}
}

// CompleteQuest completes an active quest: the streak advances, XP is computed against
// the new streak and any achievements the completion qualifies for are unlocked. All of
// it commits or none of it does.
func (s *Service) CompleteQuest(ctx context.Context, id int64, multiplier float64) (*CompleteResult, error) {
	if multiplier < 0 || math.IsNaN(multiplier) || math.IsInf(multiplier, 0) {
		return nil, ValidationError{Field: "multiplier", Reason: "must be a finite number >= 0"}
	}

	now := s.now()
	today := s.Today()
	var res *CompleteResult

	err := storage.InTx(ctx, s.db, func(r storage.Repos) error {
		q, err := loadActive(ctx, r, id)
		if err != nil {
			return err
		}
		p, err := r.Profiles.GetOrCreate(ctx)
		if err != nil {
			return err
		}

		change := AdvanceStreak(StreakState{
			LastQuestDate: p.LastQuestDate,
			Current:       p.CurrentStreak,
			Longest:       p.LongestStreak,
			Shields:       p.StreakShields,
		}, today)

		xp := CalculateXP(Difficulty(q.Difficulty), change.State.Current, multiplier)
		ok, err := r.Quests.MarkCompleted(ctx, id, xp, now, today)
		if err != nil {
			return err
		}
		if !ok {
			return InvalidStateError{QuestID: id, Status: StatusCompleted}
		}

		oldLevel := p.Level
		p.TotalXP += xp
		p.CurrentStreak = change.State.Current
		p.LongestStreak = change.State.Longest
		p.StreakShields = change.State.Shields
		p.LastQuestDate = change.State.LastQuestDate
		deriveLevel(p)

		unlocked, rewardXP, err := s.unlockAchievements(ctx, r, p, today, now)
		if err != nil {
			return err
		}
		if err := r.Profiles.Update(ctx, p); err != nil {
			return err
		}

		res = &CompleteResult{
			QuestID:         id,
			XPEarned:        xp,
			OldLevel:        oldLevel,
			NewLevel:        p.Level,
			LeveledUp:       p.Level > oldLevel,
			NewStreak:       p.CurrentStreak,
			ShieldsUsed:     change.ShieldsUsed,
			ShieldsEarned:   change.ShieldsEarned,
			NewAchievements: unlocked,
			AchievementXP:   rewardXP,
		}
		return nil
	})
	if err != nil {
		return nil, classify("complete quest", err)
	}

	s.logger.Info("quest completed",
		"quest_id", id,
		"xp", res.XPEarned,
		"level", res.NewLevel,
		"streak", res.NewStreak,
		"shields_used", res.ShieldsUsed,
		"shields_earned", res.ShieldsEarned,
		"achievements", len(res.NewAchievements),
	)
	return res, nil
}

// FailQuest fails an active quest and applies the XP penalty, clamped so total XP
// stays >= 0. Streak, level and achievements are untouched.
func (s *Service) FailQuest(ctx context.Context, id int64) (*FailResult, error) {
	var res *FailResult

	err := storage.InTx(ctx, s.db, func(r storage.Repos) error {
		q, err := loadActive(ctx, r, id)
		if err != nil {
			return err
		}
		p, err := r.Profiles.GetOrCreate(ctx)
		if err != nil {
			return err
		}

		ok, err := r.Quests.MarkFailed(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return InvalidStateError{QuestID: id, Status: StatusFailed}
		}

		penalty := CalculateXPPenalty(Difficulty(q.Difficulty))
		p.TotalXP -= penalty
		if p.TotalXP < 0 {
			p.TotalXP = 0
		}
		if err := r.Profiles.Update(ctx, p); err != nil {
			return err
		}
		res = &FailResult{QuestID: id, XPPenalty: penalty}
		return nil
	})
	if err != nil {
		return nil, classify("fail quest", err)
	}

	s.logger.Info("quest failed", "quest_id", id, "penalty", res.XPPenalty)
	return res, nil
}

// CheckAchievements runs a standalone evaluation pass, unlocking anything the current
// aggregates already satisfy.
func (s *Service) CheckAchievements(ctx context.Context) ([]Achievement, error) {
	now := s.now()
	today := s.Today()
	var unlocked []Achievement

	err := storage.InTx(ctx, s.db, func(r storage.Repos) error {
		p, err := r.Profiles.GetOrCreate(ctx)
		if err != nil {
			return err
		}
		got, rewardXP, err := s.unlockAchievements(ctx, r, p, today, now)
		if err != nil {
			return err
		}
		unlocked = got
		if rewardXP == 0 {
			return nil
		}
		return r.Profiles.Update(ctx, p)
	})
	if err != nil {
		return nil, classify("check achievements", err)
	}
	return unlocked, nil
}

// unlockAchievements evaluates the catalog against a snapshot taken before any unlock
// of this pass, records each new unlock and folds its reward into p.
func (s *Service) unlockAchievements(ctx context.Context, r storage.Repos, p *storage.Profile, today, now time.Time) ([]Achievement, int, error) {
	have, err := r.Achievements.UnlockedIDs(ctx)
	if err != nil {
		return nil, 0, err
	}
	agg, err := gatherAggregates(ctx, r, p, today, len(have))
	if err != nil {
		return nil, 0, err
	}

	var (
		unlocked []Achievement
		rewardXP int
	)
	for _, a := range EvaluateAchievements(Catalog(), have, agg) {
		inserted, err := r.Achievements.InsertUnlock(ctx, a.ID, now)
		if err != nil {
			return nil, 0, err
		}
		if !inserted {
			continue
		}
		unlocked = append(unlocked, a)
		rewardXP += a.XPReward
		s.logger.Info("achievement unlocked", "achievement", a.ID, "xp", a.XPReward)
	}

	p.TotalXP += rewardXP
	deriveLevel(p)
	return unlocked, rewardXP, nil
}

func gatherAggregates(ctx context.Context, r storage.Repos, p *storage.Profile, today time.Time, unlockedCount int) (Aggregates, error) {
	agg := Aggregates{
		CurrentStreakDays:         p.CurrentStreak,
		Level:                     p.Level,
		AchievementsUnlockedCount: unlockedCount,
	}
	var err error
	if agg.QuestsCompletedTotal, err = r.Activity.CountCompleted(ctx); err != nil {
		return agg, err
	}
	if agg.QuestsCompletedToday, err = r.Activity.CountCompletedOn(ctx, today); err != nil {
		return agg, err
	}
	if agg.BrainEntryCount, err = r.Activity.CountBrainEntries(ctx); err != nil {
		return agg, err
	}

	moodDays, err := r.Activity.MoodDays(ctx)
	if err != nil {
		return agg, err
	}
	agg.MoodLogStreakDays = ConsecutiveDays(moodDays, today)

	codingDays, err := r.Activity.CodingDays(ctx)
	if err != nil {
		return agg, err
	}
	agg.CodingStreakDays = ConsecutiveDays(codingDays, today)
	return agg, nil
}
