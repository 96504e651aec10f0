// Package live drives a FruitLink session in real time. A Runner owns one
// session and serializes player commands and clock ticks on one goroutine.
package live

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/fruit-link/internal/games/fruitlink/core"
)

// ErrStopped is returned by Send after Run has returned.
var ErrStopped = errors.New("live: runner stopped")

// Action names a player command.
type Action string

const (
	ActionSelect  Action = "select"
	ActionHint    Action = "hint"
	ActionShuffle Action = "shuffle"
	ActionPause   Action = "pause"
	ActionResume  Action = "resume"
	ActionNext    Action = "next"
	ActionRetry   Action = "retry"
	ActionQuit    Action = "quit"
	ActionState   Action = "state"
)

// Command is one player request.
type Command struct {
	Action Action `json:"action"`
	Index  int    `json:"index,omitempty"`
}

// Update is published after every command and after every tick that
// produced events.
type Update struct {
	Action Action      // Empty for clock-driven updates
	Result core.Result // nil when the command changed nothing
	Events []core.Event
	State  core.State
	Err    error
}

const (
	defaultTick         = time.Second
	defaultResolveDelay = 500 * time.Millisecond
	updateBuffer        = 16
)

// Runner owns a session. Create with New, start with Run.
type Runner struct {
	session      *core.Session
	tick         time.Duration
	resolveDelay time.Duration

	cmds    chan Command
	updates chan Update
	done    chan struct{}
}

// Option configures a Runner.
type Option func(*Runner)

// WithTick sets how often the session clock is advanced.
func WithTick(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.tick = d
		}
	}
}

// WithResolveDelay sets the pause between a dead-lock and its automatic resolution.
func WithResolveDelay(d time.Duration) Option {
	return func(r *Runner) {
		if d >= 0 {
			r.resolveDelay = d
		}
	}
}

// New creates a runner for s. The runner takes ownership: s must not be
// touched by anything else once Run starts.
func New(s *core.Session, opts ...Option) *Runner {
	r := &Runner{
		session:      s,
		tick:         defaultTick,
		resolveDelay: defaultResolveDelay,
		cmds:         make(chan Command),
		updates:      make(chan Update, updateBuffer),
		done:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Updates returns the output channel. It is closed when Run returns.
func (r *Runner) Updates() <-chan Update {
	return r.updates
}

// Send queues a command for the run loop.
func (r *Runner) Send(ctx context.Context, cmd Command) error {
	select {
	case r.cmds <- cmd:
		return nil
	case <-r.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run processes commands and ticks until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	defer close(r.updates)
	defer close(r.done)

	ticker := time.NewTicker(r.tick)
	defer ticker.Stop()

	var (
		resolve <-chan time.Time
		pending bool // Dead-lock seen while paused
	)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case cmd := <-r.cmds:
			res, err := r.apply(cmd)
			switch cmd.Action {
			case ActionNext, ActionRetry:
				resolve, pending = nil, false
			case ActionResume:
				if pending {
					resolve, pending = time.After(r.resolveDelay), false
				}
			}
			if deadlocked(res) {
				resolve = time.After(r.resolveDelay)
			}
			if !r.publish(ctx, Update{Action: cmd.Action, Result: res, Err: err}) {
				return ctx.Err()
			}

		case <-ticker.C:
			r.session.Advance(r.tick)
			if ev := r.session.Drain(); len(ev) > 0 {
				if !r.publish(ctx, Update{Events: ev}) {
					return ctx.Err()
				}
			}

		case <-resolve:
			resolve = nil
			if r.session.Phase() == core.PhasePaused {
				pending = true
				continue
			}
			if res := r.session.ResolveDeadlock(); res != nil {
				if !r.publish(ctx, Update{Result: res}) {
					return ctx.Err()
				}
			}
		}
	}
}

// apply runs one command against the session.
func (r *Runner) apply(cmd Command) (core.Result, error) {
	s := r.session
	switch cmd.Action {
	case ActionSelect:
		return s.SelectTile(cmd.Index), nil
	case ActionHint:
		return s.UseHint(), nil
	case ActionShuffle:
		return s.UseShuffle(), nil
	case ActionPause:
		s.Pause()
		return nil, nil
	case ActionResume:
		s.Resume()
		return nil, nil
	case ActionNext:
		lvl, err := s.NextLevel()
		if err != nil {
			return nil, err
		}
		return lvl, nil
	case ActionRetry:
		if err := s.Retry(); err != nil {
			return nil, err
		}
		return levelOf(s.State()), nil
	case ActionQuit:
		s.GameOver()
		return core.GameOverResult{Outcome: s.Outcome()}, nil
	case ActionState:
		return nil, nil
	default:
		return nil, fmt.Errorf("live: unknown action %q", cmd.Action)
	}
}

// publish attaches pending events and a state snapshot, then sends u.
func (r *Runner) publish(ctx context.Context, u Update) bool {
	u.Events = append(u.Events, r.session.Drain()...)
	u.State = r.session.State()
	select {
	case r.updates <- u:
		return true
	case <-ctx.Done():
		return false
	}
}

func deadlocked(res core.Result) bool {
	switch v := res.(type) {
	case core.MatchResult:
		return v.NoMoreMoves
	case core.DeadlockResult:
		return true
	}
	return false
}

func levelOf(st core.State) core.LevelResult {
	return core.LevelResult{
		Level:     st.Level,
		Board:     st.Board,
		TimeLimit: st.TimeLimit,
		Hints:     st.Hints,
		Shuffles:  st.Shuffles,
	}
}
