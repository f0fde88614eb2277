package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"synthevix/internal/engine"
	"synthevix/internal/storage"
)

type fakeService struct {
	completed []int64
	failed    []int64
}

func (f *fakeService) GetProfile(context.Context) (*storage.Profile, error) {
	return &storage.Profile{Username: "Commander", Level: 1}, nil
}

func (f *fakeService) ListQuests(context.Context, engine.QuestStatus, int) ([]storage.Quest, error) {
	return []storage.Quest{
		{ID: 3, Title: "Write report", Difficulty: "hard", Status: "active"},
		{ID: 1, Title: "Water plants", Difficulty: "trivial", Status: "active"},
	}, nil
}

func (f *fakeService) CompleteQuest(_ context.Context, id int64, _ float64) (*engine.CompleteResult, error) {
	f.completed = append(f.completed, id)
	return &engine.CompleteResult{QuestID: id, XPEarned: 10, NewStreak: 1, OldLevel: 1, NewLevel: 1}, nil
}

func (f *fakeService) FailQuest(_ context.Context, id int64) (*engine.FailResult, error) {
	f.failed = append(f.failed, id)
	return &engine.FailResult{QuestID: id, XPPenalty: 5}, nil
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// step applies msg and runs the returned command once, feeding its message back.
func step(t *testing.T, m boardModel, msg tea.Msg) boardModel {
	t.Helper()
	next, cmd := m.Update(msg)
	bm := next.(boardModel)
	if cmd != nil {
		if out := cmd(); out != nil {
			if _, quit := out.(tea.QuitMsg); !quit {
				next, _ = bm.Update(out)
				bm = next.(boardModel)
			}
		}
	}
	return bm
}

func loadedModel(t *testing.T, svc *fakeService) boardModel {
	t.Helper()
	m := newBoardModel(context.Background(), svc, 1.0)
	return step(t, m, m.Init()())
}

func TestBoardLoadsAndRenders(t *testing.T) {
	m := loadedModel(t, &fakeService{})
	if m.loading || len(m.quests) != 2 {
		t.Fatalf("expected two loaded quests, got loading=%v quests=%d", m.loading, len(m.quests))
	}
	view := m.View()
	if !strings.Contains(view, "#3 Write report") || !strings.Contains(view, "Commander") {
		t.Fatalf("view missing content:\n%s", view)
	}
}

func TestBoardCompleteSelected(t *testing.T) {
	svc := &fakeService{}
	m := loadedModel(t, svc)
	m = step(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = step(t, m, runes("c"))

	if len(svc.completed) != 1 || svc.completed[0] != 1 {
		t.Fatalf("expected quest 1 completed, got %v", svc.completed)
	}
	if !strings.Contains(m.lastLog, "Completed 1: +10 XP") {
		t.Fatalf("unexpected log %q", m.lastLog)
	}
}

func TestBoardFailNeedsConfirmation(t *testing.T) {
	svc := &fakeService{}
	m := loadedModel(t, svc)

	m = step(t, m, runes("f"))
	if len(svc.failed) != 0 {
		t.Fatalf("first press must not fail the quest")
	}
	if m.confirmFail != 3 {
		t.Fatalf("expected pending confirmation for quest 3, got %d", m.confirmFail)
	}

	m = step(t, m, runes("j"))
	if m.confirmFail != 0 {
		t.Fatalf("any other key should cancel confirmation")
	}

	m = step(t, m, runes("f"))
	m = step(t, m, runes("f"))
	if len(svc.failed) != 1 || svc.failed[0] != 1 {
		t.Fatalf("expected quest 1 failed, got %v", svc.failed)
	}
}

func TestBoardSelectionStaysInRange(t *testing.T) {
	m := loadedModel(t, &fakeService{})
	for i := 0; i < 5; i++ {
		m = step(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.selected != 1 {
		t.Fatalf("expected selection clamped to 1, got %d", m.selected)
	}
	for i := 0; i < 5; i++ {
		m = step(t, m, runes("k"))
	}
	if m.selected != 0 {
		t.Fatalf("expected selection clamped to 0, got %d", m.selected)
	}
}
