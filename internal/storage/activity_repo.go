package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ActivityRepo serves the aggregate queries the achievement checks read, plus the
// small writers the Brain, Cosmos and Forge commands use to feed them.
type ActivityRepo struct {
	db Querier
}

func NewActivityRepo(db Querier) *ActivityRepo {
	return &ActivityRepo{db: db}
}

func (r *ActivityRepo) CountCompleted(ctx context.Context) (int, error) {
	return r.count(ctx, "count completed", `SELECT COUNT(*) FROM quests WHERE status = 'completed'`)
}

func (r *ActivityRepo) CountCompletedOn(ctx context.Context, day time.Time) (int, error) {
	return r.count(ctx, "count completed on", `SELECT COUNT(*) FROM quests WHERE status = 'completed' AND completed_on = ?`, FormatDay(day))
}

func (r *ActivityRepo) CountBrainEntries(ctx context.Context) (int, error) {
	return r.count(ctx, "count brain entries", `SELECT COUNT(*) FROM brain_entries`)
}

// MoodDays returns the distinct days with a mood log, newest first.
func (r *ActivityRepo) MoodDays(ctx context.Context) ([]time.Time, error) {
	return r.days(ctx, "mood days", `SELECT DISTINCT logged_on FROM mood_logs ORDER BY logged_on DESC`)
}

// CodingDays returns the days with at least one commit, newest first.
func (r *ActivityRepo) CodingDays(ctx context.Context) ([]time.Time, error) {
	return r.days(ctx, "coding days", `SELECT date FROM coding_streaks WHERE commits > 0 ORDER BY date DESC`)
}

func (r *ActivityRepo) InsertBrainEntry(ctx context.Context, kind string, title *string, content string, at time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO brain_entries (type, title, content, created_at) VALUES (?, ?, ?, ?)
	`, kind, title, content, formatTime(at))
	if err != nil {
		return 0, fmt.Errorf("brain insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("brain last insert id: %w", err)
	}
	return id, nil
}

func (r *ActivityRepo) InsertMoodLog(ctx context.Context, mood int, energy *int, note *string, at time.Time, day time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO mood_logs (mood, energy, note, logged_at, logged_on) VALUES (?, ?, ?, ?, ?)
	`, mood, energy, note, formatTime(at), FormatDay(day))
	if err != nil {
		return 0, fmt.Errorf("mood insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("mood last insert id: %w", err)
	}
	return id, nil
}

// AddCodingDay adds commits to a day, merging the repo list.
func (r *ActivityRepo) AddCodingDay(ctx context.Context, day time.Time, commits int, repos []string) error {
	key := FormatDay(day)

	var existing string
	err := r.db.QueryRowContext(ctx, `SELECT repos FROM coding_streaks WHERE date = ?`, key).Scan(&existing)
	var merged []string
	switch {
	case err == nil:
		if err := json.Unmarshal([]byte(existing), &merged); err != nil {
			return fmt.Errorf("coding day repos: %w", err)
		}
	case !errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("coding day get: %w", err)
	}
	seen := make(map[string]bool, len(merged))
	for _, repo := range merged {
		seen[repo] = true
	}
	for _, repo := range repos {
		if repo != "" && !seen[repo] {
			merged = append(merged, repo)
			seen[repo] = true
		}
	}
	if merged == nil {
		merged = []string{}
	}
	data, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("marshal repos: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO coding_streaks (date, commits, repos) VALUES (?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET commits = commits + excluded.commits, repos = excluded.repos
	`, key, commits, string(data))
	if err != nil {
		return fmt.Errorf("coding day upsert: %w", err)
	}
	return nil
}

func (r *ActivityRepo) count(ctx context.Context, op string, query string, args ...any) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

func (r *ActivityRepo) days(ctx context.Context, op string, query string) ([]time.Time, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []time.Time
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		d, err := ParseDay(s)
		if err != nil {
			return nil, fmt.Errorf("%s parse %q: %w", op, s, err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s rows: %w", op, err)
	}
	return out, nil
}
