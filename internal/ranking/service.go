package ranking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/fruit-link/internal/games/fruitlink/core"
)

// Service validates submissions and keeps a Store trimmed to its maximum size.
type Service struct {
	mu    sync.Mutex // Serializes insert, trim and rank lookup
	store Store
	max   int
	now   func() time.Time
	newID func() string
}

// Option configures a Service.
type Option func(*Service)

// WithMax sets how many entries the leaderboard keeps.
func WithMax(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.max = n
		}
	}
}

// WithClock replaces the time source for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithIDs replaces the entry ID generator.
func WithIDs(newID func() string) Option {
	return func(s *Service) {
		s.newID = newID
	}
}

// NewService creates a Service over store.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		max:   DefaultMax,
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Max returns the leaderboard size.
func (s *Service) Max() int {
	return s.max
}

// Record validates and stores a run. It returns the stored entry and its
// 1-based rank; ok is false when the entry did not make the leaderboard.
func (s *Service) Record(ctx context.Context, nickname string, out core.Outcome) (Entry, int, bool, error) {
	name, err := NormalizeNickname(nickname)
	if err != nil {
		return Entry{}, 0, false, err
	}
	if out.Score < 0 {
		return Entry{}, 0, false, fmt.Errorf("%w: score must not be negative", ErrInvalidEntry)
	}

	e := Entry{
		ID:        s.newID(),
		Nickname:  name,
		Score:     out.Score,
		Level:     out.Level,
		Time:      out.Time,
		CreatedAt: s.now().UTC(),
	}
	if e.Level < 1 {
		e.Level = 1
	}
	if e.Time < 0 {
		e.Time = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Insert(ctx, e); err != nil {
		return Entry{}, 0, false, err
	}
	if err := s.store.Trim(ctx, s.max); err != nil {
		return Entry{}, 0, false, err
	}
	top, err := s.store.Top(ctx, s.max)
	if err != nil {
		return Entry{}, 0, false, err
	}
	for i, t := range top {
		if t.ID == e.ID {
			return e, i + 1, true, nil
		}
	}
	return e, 0, false, nil
}

// Submit implements Submitter.
func (s *Service) Submit(ctx context.Context, nickname string, out core.Outcome) (int, bool, error) {
	_, rank, ok, err := s.Record(ctx, nickname, out)
	return rank, ok, err
}

// Rankings returns the whole leaderboard, best first.
func (s *Service) Rankings(ctx context.Context) ([]Entry, error) {
	return s.store.Top(ctx, s.max)
}

// Reset clears the leaderboard.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Clear(ctx)
}
