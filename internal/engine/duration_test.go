package engine

import "testing"

func TestParseDurationDays(t *testing.T) {
	cases := map[string]int{
		"1d":                    1,
		"3d":                    3,
		"2w":                    14,
		"1m":                    30,
		"1y":                    365,
		" 2W ":                  14,
		"100y":                  36500,
		"":                      DefaultHistoryDays,
		"d":                     DefaultHistoryDays,
		"xyz":                   DefaultHistoryDays,
		"3x":                    DefaultHistoryDays,
		"0d":                    DefaultHistoryDays,
		"-2d":                   DefaultHistoryDays,
		"1.5w":                  DefaultHistoryDays,
		"101y":                  DefaultHistoryDays,
		"36501d":                DefaultHistoryDays,
		"25300000000000000y":    DefaultHistoryDays,
		"99999999999999999999d": DefaultHistoryDays,
	}
	for in, want := range cases {
		if got := ParseDurationDays(in); got != want {
			t.Fatalf("ParseDurationDays(%q)=%d, want %d", in, got, want)
		}
	}
}

func TestParseDurationReportsMalformed(t *testing.T) {
	if _, ok := ParseDuration("soon"); ok {
		t.Fatalf("expected malformed")
	}
	if days, ok := ParseDuration("25300000000000000y"); ok {
		t.Fatalf("overflowing span accepted as %d days", days)
	}
	if days, ok := ParseDuration("4w"); !ok || days != 28 {
		t.Fatalf("ParseDuration(4w)=%d,%v", days, ok)
	}
}
