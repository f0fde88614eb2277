package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const BackupPrefix = "data_"

// BackupFileName returns the timestamped file name for a backup taken at t.
func BackupFileName(t time.Time) string {
	return BackupPrefix + t.Format("20060102_150405") + ".db"
}

// Backup writes an online-consistent copy of the database into dir and returns its path.
// Same-second copies get a two-digit suffix so names keep sorting by age.
func Backup(ctx context.Context, db *sql.DB, dir string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}
	dest := filepath.Join(dir, BackupFileName(now))
	for n := 1; fileExists(dest); n++ {
		if n > 99 {
			return "", fmt.Errorf("backup destination already exists: %s", dest)
		}
		dest = filepath.Join(dir, fmt.Sprintf("%s_%02d.db", strings.TrimSuffix(BackupFileName(now), ".db"), n))
	}
	if _, err := db.ExecContext(ctx, `VACUUM INTO ?`, dest); err != nil {
		return "", fmt.Errorf("backup (VACUUM INTO): %w", err)
	}
	return dest, nil
}

func fileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
