package ui

import "testing"

func TestUseTheme(t *testing.T) {
	t.Cleanup(func() { _ = UseTheme(DefaultTheme) })

	if err := UseTheme("Nord"); err != nil {
		t.Fatalf("use nord: %v", err)
	}
	if Active().Name != "Nord" {
		t.Fatalf("expected Nord, got %s", Active().Name)
	}
	if err := UseTheme("vaporwave"); err == nil {
		t.Fatalf("expected unknown theme error")
	}
	if Active().Name != "Nord" {
		t.Fatalf("failed switch should keep palette, got %s", Active().Name)
	}
	if len(ThemeNames()) != 6 {
		t.Fatalf("expected 6 themes, got %v", ThemeNames())
	}
}

func TestXPBar(t *testing.T) {
	cases := []struct {
		cur, target, width int
		want               string
	}{
		{0, 100, 10, "[░░░░░░░░░░] 0%"},
		{50, 100, 10, "[█████░░░░░] 50%"},
		{150, 100, 4, "[████] 100%"},
		{0, 0, 4, "[████] 100%"},
	}
	for _, c := range cases {
		if got := XPBar(c.cur, c.target, c.width); got != c.want {
			t.Fatalf("XPBar(%d,%d,%d) = %q, want %q", c.cur, c.target, c.width, got, c.want)
		}
	}
}

func TestMoodAndStatusIcon(t *testing.T) {
	if got := Mood(6); got != "🤩 Amazing" {
		t.Fatalf("unexpected mood %q", got)
	}
	if got := Mood(9); got != "😐 Meh" {
		t.Fatalf("unexpected fallback %q", got)
	}
	if StatusIcon("failed") != IconFailed || StatusIcon("??") != "•" {
		t.Fatalf("unexpected status icons")
	}
}
