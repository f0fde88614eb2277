package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	IconQuest   = "⚔️"
	IconSparkle = "✨"
	IconPlus    = "➕"
	IconDone    = "✅"
	IconFailed  = "💀"
	IconArchive = "📦"
	IconTrophy  = "🏆"
	IconLock    = "🔒"
	IconFire    = "🔥"
	IconShield  = "🛡️"
	IconMedal   = "🏅"
	IconBrain   = "🧠"
	IconMood    = "🌈"
	IconForge   = "🚀"
	IconInfo    = "ℹ️"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconScroll  = "📜"
	IconDisk    = "💾"
)

// Palette is one named color scheme.
type Palette struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
}

const DefaultTheme = "cyberpunk"

var palettes = map[string]Palette{
	"cyberpunk": {"Cyberpunk", "#FF00FF", "#FF1493", "#00FFFF", "#39FF14", "#FFD700", "#FF0040", "#EAEAEA", "#888888"},
	"dracula":   {"Dracula", "#BD93F9", "#FF79C6", "#FF79C6", "#50FA7B", "#FFB86C", "#FF5555", "#F8F8F2", "#6272A4"},
	"nord":      {"Nord", "#88C0D0", "#81A1C1", "#BF616A", "#A3BE8C", "#EBCB8B", "#BF616A", "#ECEFF4", "#4C566A"},
	"synthwave": {"Synthwave", "#FF6AD5", "#C774E8", "#AD8EE6", "#2EE7B6", "#FFC857", "#FF4A6E", "#F8F8F2", "#716C89"},
	"monokai":   {"Monokai", "#A6E22E", "#66D9E8", "#FD971F", "#A6E22E", "#FD971F", "#F92672", "#F8F8F2", "#75715E"},
	"solarized": {"Solarized", "#268BD2", "#2AA198", "#2AA198", "#859900", "#B58900", "#DC322F", "#FDF6E3", "#93A1A1"},
}

// ThemeNames lists the built-in palettes alphabetically.
func ThemeNames() []string {
	names := make([]string, 0, len(palettes))
	for n := range palettes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

var (
	active Palette

	Title       lipgloss.Style
	H2          lipgloss.Style
	Muted       lipgloss.Style
	Key         lipgloss.Style
	Good        lipgloss.Style
	Warn        lipgloss.Style
	Bad         lipgloss.Style
	Gold        lipgloss.Style
	Panel       lipgloss.Style
	PanelTitle  lipgloss.Style
	SelectedRow lipgloss.Style

	BadgeLevelUp string
)

func init() {
	apply(palettes[DefaultTheme])
}

// UseTheme switches every style to the named palette. Unknown names leave the
// current palette in place and return an error.
func UseTheme(name string) error {
	p, ok := palettes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(ThemeNames(), ", "))
	}
	apply(p)
	return nil
}

func Active() Palette { return active }

func apply(p Palette) {
	active = p

	Title = lipgloss.NewStyle().Bold(true).Foreground(p.Primary)
	H2 = lipgloss.NewStyle().Bold(true).Foreground(p.Secondary)
	Muted = lipgloss.NewStyle().Foreground(p.Muted)
	Key = lipgloss.NewStyle().Bold(true).Foreground(p.Accent)
	Good = lipgloss.NewStyle().Bold(true).Foreground(p.Success)
	Warn = lipgloss.NewStyle().Bold(true).Foreground(p.Warning)
	Bad = lipgloss.NewStyle().Bold(true).Foreground(p.Error)
	Gold = lipgloss.NewStyle().Bold(true).Foreground(p.Warning)

	Panel = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(p.Primary).Padding(0, 1)
	PanelTitle = lipgloss.NewStyle().Bold(true).Foreground(p.Primary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(p.Text).Background(p.Secondary)

	BadgeLevelUp = Gold.Render("LEVEL UP")
}

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

var difficultyColors = map[string]lipgloss.Color{
	"trivial":   "250",
	"easy":      "42",
	"medium":    "220",
	"hard":      "208",
	"epic":      "201",
	"legendary": "196",
}

// DifficultyText renders a tier name in its fixed color. Tier colors do not follow
// the palette.
func DifficultyText(difficulty string) string {
	c, ok := difficultyColors[difficulty]
	if !ok {
		return difficulty
	}
	st := lipgloss.NewStyle().Foreground(c)
	if difficulty == "legendary" {
		st = st.Bold(true)
	}
	return st.Render(difficulty)
}

func StatusIcon(status string) string {
	switch status {
	case "active":
		return IconQuest
	case "completed":
		return IconDone
	case "failed":
		return IconFailed
	case "archived":
		return IconArchive
	default:
		return "•"
	}
}

func StatusText(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "completed":
		return Good.Render("completed")
	case "active":
		return H2.Render("active")
	case "failed":
		return Bad.Render("failed")
	default:
		return Muted.Render(status)
	}
}

// XPBar renders a plain progress bar with a trailing percentage.
func XPBar(current, target, width int) string {
	pct := 1.0
	if target > 0 {
		pct = float64(current) / float64(target)
		if pct > 1 {
			pct = 1
		}
		if pct < 0 {
			pct = 0
		}
	}
	filled := int(float64(width) * pct)
	return fmt.Sprintf("[%s%s] %d%%", strings.Repeat("█", filled), strings.Repeat("░", width-filled), int(pct*100))
}

var (
	moodLabels = [...]string{"", "Terrible", "Bad", "Meh", "Good", "Great", "Amazing"}
	moodEmojis = [...]string{"", "😭", "😞", "😐", "🙂", "😄", "🤩"}
)

// Mood renders a 1-6 mood score as emoji and label.
func Mood(score int) string {
	if score < 1 || score >= len(moodLabels) {
		return "😐 Meh"
	}
	return moodEmojis[score] + " " + moodLabels[score]
}
