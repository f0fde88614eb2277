package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const ProfileID = 1

type ProfileRepo struct {
	db Querier
}

func NewProfileRepo(db Querier) *ProfileRepo {
	return &ProfileRepo{db: db}
}

func (r *ProfileRepo) Get(ctx context.Context) (*Profile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT username, total_xp, level, current_streak, longest_streak, streak_shields, last_quest_date
		FROM user_profile WHERE id = ?
	`, ProfileID)

	var (
		p        Profile
		lastDate sql.NullString
	)
	if err := row.Scan(&p.Username, &p.TotalXP, &p.Level, &p.CurrentStreak, &p.LongestStreak, &p.StreakShields, &lastDate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("profile get: %w", err)
	}
	if lastDate.Valid {
		d, err := ParseDay(lastDate.String)
		if err != nil {
			return nil, fmt.Errorf("profile last_quest_date: %w", err)
		}
		p.LastQuestDate = &d
	}
	return &p, nil
}

func (r *ProfileRepo) GetOrCreate(ctx context.Context) (*Profile, error) {
	p, err := r.Get(ctx)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}

	if _, err := r.db.ExecContext(ctx, `INSERT OR IGNORE INTO user_profile (id) VALUES (?)`, ProfileID); err != nil {
		return nil, fmt.Errorf("profile insert: %w", err)
	}
	return r.Get(ctx)
}

func (r *ProfileRepo) Update(ctx context.Context, p *Profile) error {
	var lastDate *string
	if p.LastQuestDate != nil {
		s := FormatDay(*p.LastQuestDate)
		lastDate = &s
	}
	_, err := r.db.ExecContext(ctx, `
		UPDATE user_profile
		SET username = ?, total_xp = ?, level = ?, current_streak = ?, longest_streak = ?,
			streak_shields = ?, last_quest_date = ?
		WHERE id = ?
	`, p.Username, p.TotalXP, p.Level, p.CurrentStreak, p.LongestStreak, p.StreakShields, lastDate, ProfileID)
	if err != nil {
		return fmt.Errorf("profile update: %w", err)
	}
	return nil
}
