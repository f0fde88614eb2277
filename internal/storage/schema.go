package storage

import (
	"context"
	"database/sql"
	"fmt"
)

const schemaVersion = 1

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS quests (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			description TEXT,
			difficulty TEXT NOT NULL
				CHECK(difficulty IN ('trivial','easy','medium','hard','epic','legendary')),
			status TEXT NOT NULL DEFAULT 'active'
				CHECK(status IN ('active','completed','failed','archived')),
			xp_earned INTEGER NOT NULL DEFAULT 0,
			due_date TEXT,
			completed_at TEXT,
			completed_on TEXT,
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS user_profile (
			id INTEGER PRIMARY KEY CHECK(id = 1),
			username TEXT NOT NULL DEFAULT 'Commander',
			total_xp INTEGER NOT NULL DEFAULT 0 CHECK(total_xp >= 0),
			level INTEGER NOT NULL DEFAULT 1,
			current_streak INTEGER NOT NULL DEFAULT 0,
			longest_streak INTEGER NOT NULL DEFAULT 0,
			streak_shields INTEGER NOT NULL DEFAULT 0,
			last_quest_date TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS achievements (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL,
			emoji TEXT,
			condition_type TEXT NOT NULL,
			condition_value INTEGER NOT NULL,
			xp_reward INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS user_achievements (
			achievement_id TEXT PRIMARY KEY REFERENCES achievements(id),
			unlocked_at TEXT NOT NULL
		);`,
		// Aggregate sources owned by the Brain, Cosmos and Forge modules.
		`CREATE TABLE IF NOT EXISTS brain_entries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			type TEXT NOT NULL CHECK(type IN ('note','journal','snippet','bookmark')),
			title TEXT,
			content TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS mood_logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mood INTEGER NOT NULL CHECK(mood BETWEEN 1 AND 6),
			energy INTEGER CHECK(energy BETWEEN 1 AND 10),
			note TEXT,
			logged_at TEXT NOT NULL,
			logged_on TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS coding_streaks (
			date TEXT PRIMARY KEY,
			commits INTEGER NOT NULL DEFAULT 0,
			repos TEXT NOT NULL DEFAULT '[]'
		);`,
		`CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);`,
		`CREATE INDEX IF NOT EXISTS idx_quests_status ON quests(status);`,
		`CREATE INDEX IF NOT EXISTS idx_quests_completed_on ON quests(completed_on);`,
		`CREATE INDEX IF NOT EXISTS idx_mood_logs_logged_on ON mood_logs(logged_on);`,
		`INSERT OR IGNORE INTO user_profile (id) VALUES (1);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	if _, err := db.ExecContext(ctx, `INSERT OR IGNORE INTO schema_version (version) VALUES (?)`, schemaVersion); err != nil {
		return fmt.Errorf("migrate version: %w", err)
	}
	return nil
}
