package engine

import (
	"context"
	"time"

	"synthevix/internal/storage"
)

// DefaultListLimit caps list and history queries when the caller passes no limit.
const DefaultListLimit = 50

type AddQuestInput struct {
	Title       string
	Difficulty  Difficulty
	Description *string
	DueDate     *time.Time
}

func (s *Service) AddQuest(ctx context.Context, in AddQuestInput) (int64, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return 0, err
	}
	if !in.Difficulty.IsValid() {
		return 0, ValidationError{Field: "difficulty", Reason: "must be one of " + joinDifficulties()}
	}

	id, err := storage.NewQuestRepo(s.db).Insert(ctx, storage.QuestInsert{
		Title:       title,
		Description: optionalText(in.Description),
		Difficulty:  string(in.Difficulty),
		DueDate:     in.DueDate,
		CreatedAt:   s.now(),
	})
	if err != nil {
		return 0, classify("add quest", err)
	}
	s.logger.Info("quest added", "quest_id", id, "difficulty", in.Difficulty)
	return id, nil
}

// ListQuests lists quests newest first. An empty status lists all of them.
func (s *Service) ListQuests(ctx context.Context, status QuestStatus, limit int) ([]storage.Quest, error) {
	if status != "" && !status.IsValid() {
		return nil, ValidationError{Field: "status", Reason: "unknown status " + string(status)}
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	quests, err := storage.NewQuestRepo(s.db).List(ctx, string(status), limit)
	return quests, classify("list quests", err)
}

// GetQuestHistory returns completed and failed quests. last is a duration filter such
// as "2w"; empty means unbounded and malformed input falls back to DefaultHistoryDays.
func (s *Service) GetQuestHistory(ctx context.Context, last string, limit int) ([]storage.Quest, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	var since time.Time
	if last != "" {
		since = s.now().AddDate(0, 0, -ParseDurationDays(last))
	}
	quests, err := storage.NewQuestRepo(s.db).History(ctx, since, limit)
	return quests, classify("quest history", err)
}

// GetProfile returns the profile, creating the default row if it is missing.
func (s *Service) GetProfile(ctx context.Context) (*storage.Profile, error) {
	p, err := storage.NewProfileRepo(s.db).GetOrCreate(ctx)
	if err != nil {
		return nil, classify("get profile", err)
	}
	return p, nil
}

// GenerateDailyQuests suggests DailySuggestions distinct challenges; nothing is stored.
func (s *Service) GenerateDailyQuests() []DailyChallenge {
	return SampleDailyChallenges(s.rng)
}

// Achievements returns the catalog with each entry's unlock state.
func (s *Service) Achievements(ctx context.Context) ([]AchievementStatus, error) {
	unlocks, err := storage.NewAchievementRepo(s.db).Unlocks(ctx)
	if err != nil {
		return nil, classify("achievements", err)
	}
	at := make(map[string]time.Time, len(unlocks))
	for _, u := range unlocks {
		at[u.AchievementID] = u.UnlockedAt
	}

	out := make([]AchievementStatus, 0, len(catalog))
	for _, a := range Catalog() {
		st := AchievementStatus{Achievement: a}
		if t, ok := at[a.ID]; ok {
			st.Unlocked = true
			st.UnlockedAt = &t
		}
		out = append(out, st)
	}
	return out, nil
}
