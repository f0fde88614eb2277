package storage

import (
	"context"
	"fmt"
	"time"
)

type AchievementRepo struct {
	db Querier
}

func NewAchievementRepo(db Querier) *AchievementRepo {
	return &AchievementRepo{db: db}
}

// Seed upserts the reference rows so catalog edits reach existing databases.
func (r *AchievementRepo) Seed(ctx context.Context, rows []AchievementRow) error {
	for _, a := range rows {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO achievements (id, name, description, emoji, condition_type, condition_value, xp_reward)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				name = excluded.name,
				description = excluded.description,
				emoji = excluded.emoji,
				condition_type = excluded.condition_type,
				condition_value = excluded.condition_value,
				xp_reward = excluded.xp_reward
		`, a.ID, a.Name, a.Description, a.Emoji, a.ConditionType, a.ConditionValue, a.XPReward)
		if err != nil {
			return fmt.Errorf("achievement seed %s: %w", a.ID, err)
		}
	}
	return nil
}

func (r *AchievementRepo) UnlockedIDs(ctx context.Context) (map[string]bool, error) {
	unlocks, err := r.Unlocks(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(unlocks))
	for _, u := range unlocks {
		out[u.AchievementID] = true
	}
	return out, nil
}

func (r *AchievementRepo) Unlocks(ctx context.Context) ([]UnlockRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT achievement_id, unlocked_at FROM user_achievements ORDER BY unlocked_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("unlock list: %w", err)
	}
	defer rows.Close()

	var out []UnlockRecord
	for rows.Next() {
		var (
			u  UnlockRecord
			at string
		)
		if err := rows.Scan(&u.AchievementID, &at); err != nil {
			return nil, fmt.Errorf("unlock scan: %w", err)
		}
		t, err := parseTime(at)
		if err != nil {
			return nil, fmt.Errorf("unlock %s unlocked_at: %w", u.AchievementID, err)
		}
		u.UnlockedAt = t
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unlock rows: %w", err)
	}
	return out, nil
}

// InsertUnlock records an unlock. It reports false if the achievement was already unlocked.
func (r *AchievementRepo) InsertUnlock(ctx context.Context, id string, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO user_achievements (achievement_id, unlocked_at) VALUES (?, ?)
		ON CONFLICT(achievement_id) DO NOTHING
	`, id, formatTime(at))
	if err != nil {
		return false, fmt.Errorf("unlock insert %s: %w", id, err)
	}
	return affectedOne(res, "unlock insert")
}
