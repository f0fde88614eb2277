package engine

import (
	"context"
	"database/sql"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"synthevix/internal/storage"
)

// DefaultStreakResetHour is the hour at which a new streak day begins.
const DefaultStreakResetHour = 4

type Service struct {
	db        *sql.DB
	logger    *slog.Logger
	now       func() time.Time
	rng       *rand.Rand
	resetHour int
	username  string
}

type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStreakResetHour sets the hour (0-23) at which a new streak day begins.
func WithStreakResetHour(h int) Option {
	return func(s *Service) {
		if h >= 0 && h <= 23 {
			s.resetHour = h
		}
	}
}

// WithUsername sets the display name Bootstrap writes to the profile.
func WithUsername(name string) Option {
	return func(s *Service) { s.username = strings.TrimSpace(name) }
}

func WithRand(rng *rand.Rand) Option {
	return func(s *Service) { s.rng = rng }
}

func NewService(db *sql.DB, opts ...Option) *Service {
	s := &Service{
		db:        db,
		logger:    slog.Default(),
		now:       time.Now,
		rng:       rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		resetHour: DefaultStreakResetHour,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Bootstrap seeds the achievement table and the profile row. It is safe to call on
// every start.
func (s *Service) Bootstrap(ctx context.Context) error {
	err := storage.InTx(ctx, s.db, func(r storage.Repos) error {
		if err := r.Achievements.Seed(ctx, catalogRows()); err != nil {
			return err
		}
		p, err := r.Profiles.GetOrCreate(ctx)
		if err != nil {
			return err
		}
		if s.username == "" || s.username == p.Username {
			return nil
		}
		p.Username = s.username
		return r.Profiles.Update(ctx, p)
	})
	return classify("bootstrap", err)
}

func (s *Service) DB() *sql.DB { return s.db }

// Today returns the current streak day.
func (s *Service) Today() time.Time {
	return DayOf(s.now(), s.resetHour)
}

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", ValidationError{Field: "title", Reason: "is required"}
	}
	return t, nil
}

func optionalText(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
