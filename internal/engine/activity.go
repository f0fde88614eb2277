package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"synthevix/internal/storage"
)

// BrainKinds are the entry types the knowledge base accepts.
var BrainKinds = []string{"note", "journal", "snippet", "bookmark"}

const (
	MinMood   = 1
	MaxMood   = 6
	MinEnergy = 1
	MaxEnergy = 10
)

type BrainEntryInput struct {
	Kind    string
	Title   *string
	Content string
}

func (s *Service) AddBrainEntry(ctx context.Context, in BrainEntryInput) (int64, error) {
	kind := strings.ToLower(strings.TrimSpace(in.Kind))
	if kind == "" {
		kind = "note"
	}
	valid := false
	for _, k := range BrainKinds {
		if k == kind {
			valid = true
			break
		}
	}
	if !valid {
		return 0, ValidationError{Field: "kind", Reason: "must be one of " + strings.Join(BrainKinds, ", ")}
	}
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return 0, ValidationError{Field: "content", Reason: "is required"}
	}

	id, err := storage.NewActivityRepo(s.db).InsertBrainEntry(ctx, kind, optionalText(in.Title), content, s.now())
	if err != nil {
		return 0, classify("add brain entry", err)
	}
	s.logger.Info("brain entry added", "entry_id", id, "kind", kind)
	return id, nil
}

type MoodInput struct {
	Mood   int
	Energy *int
	Note   *string
}

// LogMood records a mood entry against the current streak day.
func (s *Service) LogMood(ctx context.Context, in MoodInput) (int64, error) {
	if in.Mood < MinMood || in.Mood > MaxMood {
		return 0, ValidationError{Field: "mood", Reason: fmt.Sprintf("must be between %d and %d", MinMood, MaxMood)}
	}
	if in.Energy != nil && (*in.Energy < MinEnergy || *in.Energy > MaxEnergy) {
		return 0, ValidationError{Field: "energy", Reason: fmt.Sprintf("must be between %d and %d", MinEnergy, MaxEnergy)}
	}

	id, err := storage.NewActivityRepo(s.db).InsertMoodLog(ctx, in.Mood, in.Energy, optionalText(in.Note), s.now(), s.Today())
	if err != nil {
		return 0, classify("log mood", err)
	}
	s.logger.Info("mood logged", "log_id", id, "mood", in.Mood)
	return id, nil
}

// RecordCodingDay adds commits to a coding day. A zero day means today; repeated calls
// for the same day accumulate.
func (s *Service) RecordCodingDay(ctx context.Context, day time.Time, commits int, repos []string) error {
	if commits < 0 {
		return ValidationError{Field: "commits", Reason: "must be >= 0"}
	}
	if day.IsZero() {
		day = s.Today()
	} else {
		y, m, d := day.Date()
		day = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	if day.After(s.Today()) {
		return ValidationError{Field: "day", Reason: "is in the future"}
	}

	var cleaned []string
	for _, r := range repos {
		if r = strings.TrimSpace(r); r != "" {
			cleaned = append(cleaned, r)
		}
	}
	if err := storage.NewActivityRepo(s.db).AddCodingDay(ctx, day, commits, cleaned); err != nil {
		return classify("record coding day", err)
	}
	s.logger.Info("coding day recorded", "day", storage.FormatDay(day), "commits", commits)
	return nil
}
