// Package backup decides when the store is due for a copy and keeps the backup
// directory pruned.
package backup

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	cronlib "github.com/robfig/cron/v3"

	"synthevix/internal/storage"
)

// stampLayout matches the timestamp in storage.BackupFileName.
const stampLayout = "20060102_150405"

// scheduleParser accepts 5-field cron expressions and @daily style descriptors.
var scheduleParser = cronlib.NewParser(
	cronlib.Minute | cronlib.Hour | cronlib.Dom | cronlib.Month | cronlib.Dow | cronlib.Descriptor,
)

// ParseSchedule validates a backup schedule expression.
func ParseSchedule(expr string) (cronlib.Schedule, error) {
	sched, err := scheduleParser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("parse backup schedule %q: %w", expr, err)
	}
	return sched, nil
}

// Due reports whether a backup is owed: never backed up, or the schedule fired at
// least once between last and now.
func Due(sched cronlib.Schedule, last, now time.Time) bool {
	if last.IsZero() {
		return true
	}
	return !sched.Next(last).After(now)
}

// Latest returns the newest backup in dir and when it was taken. ok is false when
// the directory holds none.
func Latest(dir string) (path string, at time.Time, ok bool, err error) {
	names, err := list(dir)
	if err != nil || len(names) == 0 {
		return "", time.Time{}, false, err
	}
	name := names[0]
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, storage.BackupPrefix), ".db")
	if len(stamp) > len(stampLayout) {
		stamp = stamp[:len(stampLayout)]
	}
	at, err = time.ParseInLocation(stampLayout, stamp, time.Local)
	if err != nil {
		return "", time.Time{}, false, fmt.Errorf("parse backup name %s: %w", name, err)
	}
	return filepath.Join(dir, name), at, true, nil
}

// Prune removes all but the keep newest backups. keep <= 0 keeps everything.
func Prune(dir string, keep int) ([]string, error) {
	if keep <= 0 {
		return nil, nil
	}
	names, err := list(dir)
	if err != nil {
		return nil, err
	}
	var removed []string
	for i := keep; i < len(names); i++ {
		p := filepath.Join(dir, names[i])
		if err := os.Remove(p); err != nil {
			return removed, fmt.Errorf("remove backup: %w", err)
		}
		removed = append(removed, p)
	}
	return removed, nil
}

// list returns backup file names newest first. The timestamped names sort
// chronologically.
func list(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read backup dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		n := e.Name()
		if e.IsDir() || !strings.HasPrefix(n, storage.BackupPrefix) || !strings.HasSuffix(n, ".db") {
			continue
		}
		names = append(names, n)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

type Config struct {
	Dir      string
	Schedule string
	Keep     int
	Logger   *slog.Logger
	Now      func() time.Time
}

// Manager runs scheduled backups of one database.
type Manager struct {
	dir    string
	sched  cronlib.Schedule
	keep   int
	logger *slog.Logger
	now    func() time.Time
}

// NewManager validates cfg. An empty schedule yields a manager that never runs
// automatically but can still take manual backups.
func NewManager(cfg Config) (*Manager, error) {
	m := &Manager{
		dir:    cfg.Dir,
		keep:   cfg.Keep,
		logger: cfg.Logger,
		now:    cfg.Now,
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	if m.now == nil {
		m.now = time.Now
	}
	if strings.TrimSpace(cfg.Schedule) != "" {
		sched, err := ParseSchedule(cfg.Schedule)
		if err != nil {
			return nil, err
		}
		m.sched = sched
	}
	return m, nil
}

// Run takes a backup now and prunes old ones.
func (m *Manager) Run(ctx context.Context, db *sql.DB) (string, error) {
	path, err := storage.Backup(ctx, db, m.dir, m.now())
	if err != nil {
		return "", err
	}
	m.logger.Info("backup written", "path", path)

	removed, err := Prune(m.dir, m.keep)
	if err != nil {
		return path, err
	}
	if len(removed) > 0 {
		m.logger.Info("old backups pruned", "count", len(removed))
	}
	return path, nil
}

// MaybeRun takes a backup only when the schedule says one is due.
func (m *Manager) MaybeRun(ctx context.Context, db *sql.DB) (string, bool, error) {
	if m.sched == nil {
		return "", false, nil
	}
	_, last, _, err := Latest(m.dir)
	if err != nil {
		return "", false, err
	}
	if !Due(m.sched, last, m.now()) {
		m.logger.Debug("backup not due", "last", last)
		return "", false, nil
	}
	path, err := m.Run(ctx, db)
	if err != nil {
		return "", false, err
	}
	return path, true, nil
}

var sqliteHeader = []byte("SQLite format 3\x00")

// CheckFile verifies that path exists and starts with the SQLite header.
func CheckFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open backup: %w", err)
	}
	defer f.Close()

	head := make([]byte, len(sqliteHeader))
	if _, err := io.ReadFull(f, head); err != nil || !bytes.Equal(head, sqliteHeader) {
		return fmt.Errorf("%s is not a SQLite database", path)
	}
	return nil
}

// Staged is a backup copied next to the database, waiting to replace it. The copy
// lives outside the backup directory, so pruning cannot remove it.
type Staged struct {
	path   string
	dbPath string
	done   bool
}

// Stage copies src to a temporary file beside dbPath. Call Commit to swap it in
// once the database is closed, or Discard to drop it.
func Stage(src, dbPath string) (*Staged, error) {
	if err := CheckFile(src); err != nil {
		return nil, err
	}
	in, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("open backup: %w", err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	tmp := dbPath + ".restore"
	out, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create restore file: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(tmp)
		return nil, fmt.Errorf("copy backup: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(tmp)
		return nil, fmt.Errorf("close restore file: %w", err)
	}
	return &Staged{path: tmp, dbPath: dbPath}, nil
}

// Commit replaces the database with the staged copy. The database must be closed.
// Stale WAL sidecar files are removed so they are not replayed over the restored data.
func (s *Staged) Commit() error {
	if s.done {
		return fmt.Errorf("restore already finished")
	}
	for _, side := range []string{s.dbPath + "-wal", s.dbPath + "-shm"} {
		if err := os.Remove(side); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", filepath.Base(side), err)
		}
	}
	if err := os.Rename(s.path, s.dbPath); err != nil {
		return fmt.Errorf("replace database: %w", err)
	}
	s.done = true
	return nil
}

// Discard removes the staged copy unless it was committed.
func (s *Staged) Discard() {
	if s == nil || s.done {
		return
	}
	_ = os.Remove(s.path)
	s.done = true
}

// Restore replaces the closed database at dbPath with src in one step.
func Restore(src, dbPath string) error {
	staged, err := Stage(src, dbPath)
	if err != nil {
		return err
	}
	defer staged.Discard()
	return staged.Commit()
}
