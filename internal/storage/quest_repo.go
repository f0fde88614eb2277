package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

type QuestRepo struct {
	db Querier
}

func NewQuestRepo(db Querier) *QuestRepo {
	return &QuestRepo{db: db}
}

type QuestInsert struct {
	Title       string
	Description *string
	Difficulty  string
	DueDate     *time.Time
	CreatedAt   time.Time
}

const questColumns = `id, title, description, difficulty, status, xp_earned, due_date, completed_at, created_at`

func (r *QuestRepo) Insert(ctx context.Context, in QuestInsert) (int64, error) {
	var due *string
	if in.DueDate != nil {
		s := FormatDay(*in.DueDate)
		due = &s
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO quests (title, description, difficulty, status, due_date, created_at)
		VALUES (?, ?, ?, 'active', ?, ?)
	`, in.Title, in.Description, in.Difficulty, due, formatTime(in.CreatedAt))
	if err != nil {
		return 0, fmt.Errorf("quest insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("quest last insert id: %w", err)
	}
	return id, nil
}

// Get returns nil, nil when no quest has the id.
func (r *QuestRepo) Get(ctx context.Context, id int64) (*Quest, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+questColumns+` FROM quests WHERE id = ?`, id)
	q, err := scanQuest(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return q, nil
}

// MarkCompleted moves an active quest to completed. It reports false when the quest was
// no longer active, which callers treat as a lost race.
func (r *QuestRepo) MarkCompleted(ctx context.Context, id int64, xp int, completedAt time.Time, day time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE quests
		SET status = 'completed', xp_earned = ?, completed_at = ?, completed_on = ?
		WHERE id = ? AND status = 'active'
	`, xp, formatTime(completedAt), FormatDay(day), id)
	if err != nil {
		return false, fmt.Errorf("quest mark completed: %w", err)
	}
	return affectedOne(res, "quest mark completed")
}

func (r *QuestRepo) MarkFailed(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE quests SET status = 'failed' WHERE id = ? AND status = 'active'`, id)
	if err != nil {
		return false, fmt.Errorf("quest mark failed: %w", err)
	}
	return affectedOne(res, "quest mark failed")
}

// List returns quests newest first. An empty status lists every quest.
func (r *QuestRepo) List(ctx context.Context, status string, limit int) ([]Quest, error) {
	query := `SELECT ` + questColumns + ` FROM quests`
	var args []any
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)
	return r.query(ctx, "quest list", query, args...)
}

// History returns completed and failed quests created at or after since (zero means no bound).
func (r *QuestRepo) History(ctx context.Context, since time.Time, limit int) ([]Quest, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + questColumns + ` FROM quests WHERE status IN ('completed', 'failed')`)
	var args []any
	if !since.IsZero() {
		sb.WriteString(` AND created_at >= ?`)
		args = append(args, formatTime(since))
	}
	sb.WriteString(` ORDER BY created_at DESC, id DESC LIMIT ?`)
	args = append(args, limit)
	return r.query(ctx, "quest history", sb.String(), args...)
}

func (r *QuestRepo) query(ctx context.Context, op string, query string, args ...any) ([]Quest, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []Quest
	for rows.Next() {
		q, err := scanQuest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s rows: %w", op, err)
	}
	return out, nil
}

func affectedOne(res sql.Result, op string) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s rows affected: %w", op, err)
	}
	return n == 1, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanQuest(row scanner) (*Quest, error) {
	var (
		q           Quest
		description sql.NullString
		dueDate     sql.NullString
		completedAt sql.NullString
		createdAt   string
	)
	if err := row.Scan(&q.ID, &q.Title, &description, &q.Difficulty, &q.Status, &q.XPEarned, &dueDate, &completedAt, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("quest scan: %w", err)
	}

	if description.Valid {
		v := description.String
		q.Description = &v
	}
	if dueDate.Valid {
		v, err := ParseDay(dueDate.String)
		if err != nil {
			return nil, fmt.Errorf("quest %d due date: %w", q.ID, err)
		}
		q.DueDate = &v
	}
	if completedAt.Valid {
		v, err := parseTime(completedAt.String)
		if err != nil {
			return nil, fmt.Errorf("quest %d completed_at: %w", q.ID, err)
		}
		q.CompletedAt = &v
	}
	created, err := parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("quest %d created_at: %w", q.ID, err)
	}
	q.CreatedAt = created
	return &q, nil
}
