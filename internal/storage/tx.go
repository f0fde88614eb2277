package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// Querier is satisfied by both *sql.DB and *sql.Tx, so every repository can run
// inside or outside a transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Repos bundles the repositories bound to one Querier.
type Repos struct {
	Quests       *QuestRepo
	Profiles     *ProfileRepo
	Achievements *AchievementRepo
	Activity     *ActivityRepo
}

func NewRepos(q Querier) Repos {
	return Repos{
		Quests:       NewQuestRepo(q),
		Profiles:     NewProfileRepo(q),
		Achievements: NewAchievementRepo(q),
		Activity:     NewActivityRepo(q),
	}
}

// WithTx runs fn inside a SQL transaction.
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	committed = true
	return nil
}

// InTx is WithTx with the repositories already bound to the transaction.
func InTx(ctx context.Context, db *sql.DB, fn func(r Repos) error) error {
	return WithTx(ctx, db, func(tx *sql.Tx) error {
		return fn(NewRepos(tx))
	})
}
