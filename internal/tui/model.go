package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"synthevix/internal/engine"
	"synthevix/internal/storage"
	"synthevix/internal/ui"
)

// boardLimit caps how many active quests the board loads.
const boardLimit = 100

type questService interface {
	GetProfile(ctx context.Context) (*storage.Profile, error)
	ListQuests(ctx context.Context, status engine.QuestStatus, limit int) ([]storage.Quest, error)
	CompleteQuest(ctx context.Context, id int64, multiplier float64) (*engine.CompleteResult, error)
	FailQuest(ctx context.Context, id int64) (*engine.FailResult, error)
}

type boardModel struct {
	ctx        context.Context
	svc        questService
	keys       keyMap
	multiplier float64

	width  int
	height int

	profile *storage.Profile
	quests  []storage.Quest

	selected    int
	confirmFail int64

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	profile *storage.Profile
	quests  []storage.Quest
	err     error
}

type completedMsg struct {
	id  int64
	res *engine.CompleteResult
	err error
}

type failedMsg struct {
	id  int64
	res *engine.FailResult
	err error
}

func newBoardModel(ctx context.Context, svc questService, multiplier float64) boardModel {
	return boardModel{
		ctx:        ctx,
		svc:        svc,
		keys:       defaultKeyMap(),
		multiplier: multiplier,
		loading:    true,
		lastLog:    "Loading…",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		p, err := m.svc.GetProfile(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		quests, err := m.svc.ListQuests(m.ctx, engine.StatusActive, boardLimit)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{profile: p, quests: quests}
	}
}

func (m boardModel) completeCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.CompleteQuest(m.ctx, id, m.multiplier)
		return completedMsg{id: id, res: res, err: err}
	}
}

func (m boardModel) failCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.FailQuest(m.ctx, id)
		return failedMsg{id: id, res: res, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.profile = msg.profile
		m.quests = msg.quests
		m.clampSelection()
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case completedMsg:
		if msg.err != nil {
			m.lastLog = "Complete failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = completionLog(msg.res)
		return m, m.loadCmd()
	case failedMsg:
		if msg.err != nil {
			m.lastLog = "Fail failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = fmt.Sprintf("Quest %d failed: -%d XP", msg.id, msg.res.XPPenalty)
		return m, m.loadCmd()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m boardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pending := m.confirmFail
	m.confirmFail = 0

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		m.lastLog = "Refreshing…"
		return m, m.loadCmd()
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.quests)-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Complete):
		q := m.current()
		if q == nil {
			return m, nil
		}
		m.lastLog = fmt.Sprintf("Completing %d…", q.ID)
		return m, m.completeCmd(q.ID)
	case key.Matches(msg, m.keys.Fail):
		q := m.current()
		if q == nil {
			return m, nil
		}
		if pending == q.ID {
			m.lastLog = fmt.Sprintf("Failing %d…", q.ID)
			return m, m.failCmd(q.ID)
		}
		m.confirmFail = q.ID
		m.lastLog = fmt.Sprintf("Fail quest %d? Press f again to confirm.", q.ID)
	}
	return m, nil
}

func (m boardModel) current() *storage.Quest {
	if m.selected < 0 || m.selected >= len(m.quests) {
		return nil
	}
	return &m.quests[m.selected]
}

func (m *boardModel) clampSelection() {
	if m.selected >= len(m.quests) {
		m.selected = len(m.quests) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func completionLog(res *engine.CompleteResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Completed %d: +%d XP, streak %d", res.QuestID, res.XPEarned, res.NewStreak)
	if res.LeveledUp {
		fmt.Fprintf(&b, " | %s %d → %d", ui.BadgeLevelUp, res.OldLevel, res.NewLevel)
	}
	for _, a := range res.NewAchievements {
		fmt.Fprintf(&b, " | %s %s", a.Emoji, a.Name)
	}
	return b.String()
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()

	leftW := 30
	if m.width > 0 {
		if maxLeft := m.width / 2; maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 18 {
			leftW = 18
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	rows := max(len(linesLeft), len(linesRight))

	var body strings.Builder
	for i := 0; i < rows; i++ {
		l, r := "", ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n\n" + body.String() + "\n" + m.lastLog
}

func (m boardModel) renderHeader() string {
	if m.profile == nil {
		return ui.Title.Render("Synthevix Quest: loading…")
	}
	lp := engine.LevelFromXP(m.profile.TotalXP)
	return ui.Title.Render(fmt.Sprintf("Synthevix Quest | %s | Level %d | XP %d ", m.profile.Username, m.profile.Level, m.profile.TotalXP)) +
		ui.XPBar(lp.XPIntoLevel, lp.XPForNext, 24)
}

func (m boardModel) renderSidebar() string {
	if m.profile == nil {
		return "Stats\n\nLoading…"
	}
	p := m.profile
	lines := []string{
		"Stats",
		fmt.Sprintf("%s streak  %d", ui.IconFire, p.CurrentStreak),
		fmt.Sprintf("%s longest %d", ui.IconMedal, p.LongestStreak),
		fmt.Sprintf("%s shields %d", ui.IconShield, p.StreakShields),
		"",
		"Keys",
	}
	for _, b := range m.keys.bindings() {
		h := b.Help()
		lines = append(lines, fmt.Sprintf("- %s: %s", h.Key, h.Desc))
	}
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	out := []string{"Active quests"}
	if len(m.quests) == 0 {
		out = append(out, "(none, add one with `sx add`)")
		return strings.Join(out, "\n")
	}
	for i, q := range m.quests {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		line := fmt.Sprintf("%s#%d %s [%s]", cursor, q.ID, q.Title, q.Difficulty)
		if q.DueDate != nil {
			line += " due " + storage.FormatDay(*q.DueDate)
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
