package storage

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestDB(t *testing.T) (*sql.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.db")
	db, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, path
}

func seedAchievement(t *testing.T, db *sql.DB, id string) {
	t.Helper()
	err := NewAchievementRepo(db).Seed(context.Background(), []AchievementRow{{
		ID: id, Name: id, Description: id, ConditionType: "quests_completed", ConditionValue: 1, XPReward: 10,
	}})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	db, path := openTestDB(t)
	ctx := context.Background()

	if _, err := NewQuestRepo(db).Insert(ctx, QuestInsert{Title: "keep me", Difficulty: "easy", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	_ = db.Close()

	again, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer again.Close()

	quests, err := NewQuestRepo(again).List(ctx, "", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(quests) != 1 || quests[0].Title != "keep me" {
		t.Fatalf("data lost across reopen: %+v", quests)
	}
	p, err := NewProfileRepo(again).Get(ctx)
	if err != nil || p == nil {
		t.Fatalf("profile missing after reopen: %v", err)
	}
	if p.Level != 1 || p.TotalXP != 0 || p.Username != "Commander" {
		t.Fatalf("unexpected default profile %+v", p)
	}
}

func TestQuestTransitionsOnlyFromActive(t *testing.T) {
	db, _ := openTestDB(t)
	ctx := context.Background()
	repo := NewQuestRepo(db)

	now := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)
	id, err := repo.Insert(ctx, QuestInsert{Title: "t", Difficulty: "hard", CreatedAt: now})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	ok, err := repo.MarkCompleted(ctx, id, 120, now, now)
	if err != nil || !ok {
		t.Fatalf("first complete: ok=%v err=%v", ok, err)
	}
	if ok, _ := repo.MarkCompleted(ctx, id, 120, now, now); ok {
		t.Fatal("second complete should report false")
	}
	if ok, _ := repo.MarkFailed(ctx, id); ok {
		t.Fatal("fail after complete should report false")
	}

	q, err := repo.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if q.Status != "completed" || q.XPEarned != 120 || !q.CompletedAt.Equal(now) || !q.CreatedAt.Equal(now) {
		t.Fatalf("unexpected quest %+v", q)
	}

	n, err := NewActivityRepo(db).CountCompletedOn(ctx, now)
	if err != nil || n != 1 {
		t.Fatalf("count completed on: n=%d err=%v", n, err)
	}
	if n, _ := NewActivityRepo(db).CountCompletedOn(ctx, now.AddDate(0, 0, 1)); n != 0 {
		t.Fatalf("expected no completions the next day, got %d", n)
	}

	missing, err := repo.Get(ctx, 999)
	if err != nil || missing != nil {
		t.Fatalf("expected nil, nil for a missing quest, got %v, %v", missing, err)
	}
}

func TestRejectsUnknownDifficulty(t *testing.T) {
	db, _ := openTestDB(t)
	_, err := NewQuestRepo(db).Insert(context.Background(), QuestInsert{Title: "t", Difficulty: "mythic", CreatedAt: time.Now()})
	if err == nil {
		t.Fatal("expected CHECK constraint failure")
	}
}

func TestInsertUnlockOnce(t *testing.T) {
	db, _ := openTestDB(t)
	ctx := context.Background()
	seedAchievement(t, db, "first_blood")
	repo := NewAchievementRepo(db)

	at := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	if ok, err := repo.InsertUnlock(ctx, "first_blood", at); err != nil || !ok {
		t.Fatalf("first insert: ok=%v err=%v", ok, err)
	}
	if ok, err := repo.InsertUnlock(ctx, "first_blood", at.Add(time.Hour)); err != nil || ok {
		t.Fatalf("second insert: ok=%v err=%v", ok, err)
	}

	unlocks, err := repo.Unlocks(ctx)
	if err != nil {
		t.Fatalf("unlocks: %v", err)
	}
	if len(unlocks) != 1 || !unlocks[0].UnlockedAt.Equal(at) {
		t.Fatalf("unexpected unlocks %+v", unlocks)
	}

	// Unseeded ids violate the foreign key.
	if _, err := repo.InsertUnlock(ctx, "nope", at); err == nil {
		t.Fatal("expected foreign key failure")
	}
}

func TestInTxRollsBack(t *testing.T) {
	db, _ := openTestDB(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := InTx(ctx, db, func(r Repos) error {
		p, err := r.Profiles.GetOrCreate(ctx)
		if err != nil {
			return err
		}
		p.TotalXP = 500
		if err := r.Profiles.Update(ctx, p); err != nil {
			return err
		}
		if _, err := r.Quests.Insert(ctx, QuestInsert{Title: "ghost", Difficulty: "easy", CreatedAt: time.Now()}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	p, err := NewProfileRepo(db).Get(ctx)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if p.TotalXP != 0 {
		t.Fatalf("profile update leaked: %d", p.TotalXP)
	}
	if n, _ := NewActivityRepo(db).count(ctx, "quests", `SELECT COUNT(*) FROM quests`); n != 0 {
		t.Fatalf("quest insert leaked: %d rows", n)
	}
}

func TestTotalXPCannotGoNegative(t *testing.T) {
	db, _ := openTestDB(t)
	ctx := context.Background()
	repo := NewProfileRepo(db)

	p, err := repo.GetOrCreate(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	p.TotalXP = -1
	if err := repo.Update(ctx, p); err == nil {
		t.Fatal("expected CHECK constraint failure")
	}
}

func TestProfileRoundTripsLastQuestDate(t *testing.T) {
	db, _ := openTestDB(t)
	ctx := context.Background()
	repo := NewProfileRepo(db)

	p, err := repo.GetOrCreate(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	day := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)
	p.LastQuestDate = &day
	p.CurrentStreak, p.LongestStreak, p.StreakShields = 3, 9, 1
	if err := repo.Update(ctx, p); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.LastQuestDate == nil || !got.LastQuestDate.Equal(day) {
		t.Fatalf("last quest date %v, want %v", got.LastQuestDate, day)
	}
	if got.CurrentStreak != 3 || got.LongestStreak != 9 || got.StreakShields != 1 {
		t.Fatalf("unexpected streak fields %+v", got)
	}
}

func TestCodingDaysAccumulate(t *testing.T) {
	db, _ := openTestDB(t)
	ctx := context.Background()
	repo := NewActivityRepo(db)

	d1 := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)
	steps := []struct {
		day     time.Time
		commits int
		repos   []string
	}{
		{d1, 2, []string{"api"}},
		{d1, 3, []string{"api", "web"}},
		{d2, 0, nil},
	}
	for _, s := range steps {
		if err := repo.AddCodingDay(ctx, s.day, s.commits, s.repos); err != nil {
			t.Fatalf("add coding day: %v", err)
		}
	}

	var (
		commits int
		repos   string
	)
	if err := db.QueryRowContext(ctx, `SELECT commits, repos FROM coding_streaks WHERE date = ?`, FormatDay(d1)).Scan(&commits, &repos); err != nil {
		t.Fatalf("select: %v", err)
	}
	if commits != 5 || repos != `["api","web"]` {
		t.Fatalf("got commits=%d repos=%s", commits, repos)
	}

	days, err := repo.CodingDays(ctx)
	if err != nil {
		t.Fatalf("coding days: %v", err)
	}
	// A zero-commit day is not a coding day.
	if len(days) != 1 || !days[0].Equal(d1) {
		t.Fatalf("unexpected coding days %v", days)
	}
}

func TestMoodDaysAreDistinctNewestFirst(t *testing.T) {
	db, _ := openTestDB(t)
	ctx := context.Background()
	repo := NewActivityRepo(db)

	d1 := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	for _, d := range []time.Time{d1, d1, d1.AddDate(0, 0, 2)} {
		if _, err := repo.InsertMoodLog(ctx, 4, nil, nil, d.Add(8*time.Hour), d); err != nil {
			t.Fatalf("insert mood: %v", err)
		}
	}
	days, err := repo.MoodDays(ctx)
	if err != nil {
		t.Fatalf("mood days: %v", err)
	}
	if len(days) != 2 || !days[0].Equal(d1.AddDate(0, 0, 2)) || !days[1].Equal(d1) {
		t.Fatalf("unexpected mood days %v", days)
	}
}

func TestBackupWritesDistinctFiles(t *testing.T) {
	db, _ := openTestDB(t)
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "backups")
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.Local)

	first, err := Backup(ctx, db, dir, now)
	if err != nil {
		t.Fatalf("backup: %v", err)
	}
	if filepath.Base(first) != "data_20260501_100000.db" {
		t.Fatalf("unexpected name %s", first)
	}
	second, err := Backup(ctx, db, dir, now)
	if err != nil {
		t.Fatalf("second backup: %v", err)
	}
	if second == first || filepath.Base(second) != "data_20260501_100000_01.db" {
		t.Fatalf("expected suffixed name, got %s", second)
	}

	copyDB, err := Open(ctx, first)
	if err != nil {
		t.Fatalf("open backup: %v", err)
	}
	defer copyDB.Close()
	if p, err := NewProfileRepo(copyDB).Get(ctx); err != nil || p == nil {
		t.Fatalf("backup is missing the profile: %v", err)
	}
	if _, err := os.Stat(second); err != nil {
		t.Fatalf("stat second backup: %v", err)
	}
}
