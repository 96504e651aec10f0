package live

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/fruit-link/internal/games/fruitlink/core"
)

func newRunner(t *testing.T, opts ...Option) (*Runner, context.CancelFunc, <-chan error) {
	t.Helper()
	gen := core.NewGenerator(core.DefaultCatalog(), core.DefaultLevelTable(), rand.New(rand.NewSource(1)))
	return startRunner(t, gen, core.DefaultRules(), opts...)
}

// fixedLayout serves the same board for every level. Letters are tile
// kinds; a trailing '.' leaves the rest of the board empty.
type fixedLayout struct {
	cols, rows int
	cells      string
}

func (f fixedLayout) Generate(level int) (core.Layout, error) {
	var tiles []core.Tile
	for i, ch := range f.cells {
		if ch == '.' {
			break
		}
		tiles = append(tiles, core.Tile{Kind: core.TileKind{ID: string(ch), Symbol: ch}, PairID: i})
	}
	return core.Layout{Level: level, Cols: f.cols, Rows: f.rows, TimeLimit: 45, Tiles: tiles}, nil
}

// walledLayout has one linkable pair, A at indices 15 and 16. Once it is
// gone, the Z tiles are boxed in and nothing else repeats.
var walledLayout = fixedLayout{cols: 3, rows: 6, cells: "" +
	"CDE" +
	"FZG" +
	"HIJ" +
	"KLM" +
	"NZO" +
	"AA."}

// stuckLayout has no linkable pair from the start.
var stuckLayout = fixedLayout{cols: 3, rows: 5, cells: "" +
	"CDE" +
	"FZG" +
	"HIJ" +
	"KLM" +
	"NZO"}

func startRunner(t *testing.T, gen core.LayoutSource, rules core.Rules, opts ...Option) (*Runner, context.CancelFunc, <-chan error) {
	t.Helper()
	s := core.NewSession(gen, rules, rand.New(rand.NewSource(2)))
	if err := s.StartGame(1); err != nil {
		t.Fatalf("StartGame() error = %v", err)
	}

	r := New(s, opts...)
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- r.Run(ctx) }()
	t.Cleanup(cancel)
	return r, cancel, errc
}

// waitFor reads updates until match accepts one.
func waitFor(t *testing.T, r *Runner, match func(Update) bool) Update {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case u, ok := <-r.Updates():
			if !ok {
				t.Fatal("updates channel closed")
			}
			if match(u) {
				return u
			}
		case <-timeout:
			t.Fatal("timed out waiting for update")
		}
	}
}

func TestRunnerSelect(t *testing.T) {
	r, _, _ := newRunner(t)
	ctx := context.Background()

	if err := r.Send(ctx, Command{Action: ActionSelect, Index: 0}); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	u := waitFor(t, r, func(u Update) bool { return u.Action == ActionSelect })
	if u.Result != (core.SelectResult{Index: 0}) {
		t.Errorf("Result = %#v, expected SelectResult{0}", u.Result)
	}
	if u.State.Selected != 0 {
		t.Errorf("State.Selected = %d, expected 0", u.State.Selected)
	}
}

func TestRunnerTicks(t *testing.T) {
	r, _, _ := newRunner(t, WithTick(5*time.Millisecond))

	u := waitFor(t, r, func(u Update) bool { return len(u.Events) > 0 })
	tick, ok := u.Events[0].(core.TickEvent)
	if !ok {
		t.Fatalf("first event = %#v, expected TickEvent", u.Events[0])
	}
	if tick.TimeLeft != 44 {
		t.Errorf("TimeLeft = %d, expected 44", tick.TimeLeft)
	}
}

func TestRunnerPauseStopsClock(t *testing.T) {
	r, _, _ := newRunner(t, WithTick(5*time.Millisecond))
	ctx := context.Background()

	if err := r.Send(ctx, Command{Action: ActionPause}); err != nil {
		t.Fatal(err)
	}
	u := waitFor(t, r, func(u Update) bool { return u.Action == ActionPause })
	paused := u.State.TimeLeft

	time.Sleep(50 * time.Millisecond)
	if err := r.Send(ctx, Command{Action: ActionState}); err != nil {
		t.Fatal(err)
	}
	u = waitFor(t, r, func(u Update) bool { return u.Action == ActionState })
	if u.State.TimeLeft != paused {
		t.Errorf("clock moved while paused: %d -> %d", paused, u.State.TimeLeft)
	}
	if u.State.Phase != core.PhasePaused {
		t.Errorf("phase = %v, expected paused", u.State.Phase)
	}
}

func TestRunnerQuit(t *testing.T) {
	r, _, _ := newRunner(t)
	if err := r.Send(context.Background(), Command{Action: ActionQuit}); err != nil {
		t.Fatal(err)
	}

	u := waitFor(t, r, func(u Update) bool { return u.Action == ActionQuit })
	if _, ok := u.Result.(core.GameOverResult); !ok {
		t.Errorf("Result = %#v, expected GameOverResult", u.Result)
	}
	if len(u.Events) != 1 {
		t.Fatalf("expected one event, got %v", u.Events)
	}
	if _, ok := u.Events[0].(core.GameOverEvent); !ok {
		t.Errorf("event = %#v, expected GameOverEvent", u.Events[0])
	}
}

func TestRunnerUnknownAction(t *testing.T) {
	r, _, _ := newRunner(t)
	if err := r.Send(context.Background(), Command{Action: "dance"}); err != nil {
		t.Fatal(err)
	}
	u := waitFor(t, r, func(u Update) bool { return u.Action == "dance" })
	if u.Err == nil {
		t.Error("expected an error for an unknown action")
	}
}

func TestRunnerStop(t *testing.T) {
	r, cancel, errc := newRunner(t)
	cancel()

	select {
	case err := <-errc:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() error = %v, expected context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	if err := r.Send(context.Background(), Command{Action: ActionHint}); !errors.Is(err, ErrStopped) {
		t.Errorf("Send() after stop error = %v, expected ErrStopped", err)
	}
	if _, ok := <-r.Updates(); ok {
		t.Error("updates channel should be closed")
	}
}

func send(t *testing.T, r *Runner, cmd Command) Update {
	t.Helper()
	if err := r.Send(context.Background(), cmd); err != nil {
		t.Fatalf("Send(%s) error = %v", cmd.Action, err)
	}
	return waitFor(t, r, func(u Update) bool { return u.Action == cmd.Action })
}

func resolved(u Update) bool {
	return u.Action == "" && u.Result != nil
}

func TestRunnerShufflesAfterNoMoreMoves(t *testing.T) {
	r, _, _ := startRunner(t, walledLayout, core.DefaultRules(), WithResolveDelay(0))

	send(t, r, Command{Action: ActionSelect, Index: 15})
	u := send(t, r, Command{Action: ActionSelect, Index: 16})
	res, ok := u.Result.(core.MatchResult)
	if !ok || !res.NoMoreMoves {
		t.Fatalf("Result = %#v, expected a match with no more moves", u.Result)
	}

	u = waitFor(t, r, resolved)
	shuffle, ok := u.Result.(core.ShuffleResult)
	if !ok {
		t.Fatalf("Result = %#v, expected ShuffleResult", u.Result)
	}
	if shuffle.ShufflesLeft != 2 || u.State.Shuffles != 2 {
		t.Errorf("shuffles left = %d (state %d), expected 2", shuffle.ShufflesLeft, u.State.Shuffles)
	}
	if u.State.Phase != core.PhasePlaying {
		t.Errorf("phase = %v, expected playing", u.State.Phase)
	}
}

func TestRunnerDeadlockWithoutShufflesEndsGame(t *testing.T) {
	rules := core.DefaultRules()
	rules.ShuffleBase = 0
	rules.MinBudget = 0
	r, _, _ := startRunner(t, stuckLayout, rules, WithResolveDelay(0))

	u := send(t, r, Command{Action: ActionHint})
	if _, ok := u.Result.(core.DeadlockResult); !ok {
		t.Fatalf("Result = %#v, expected DeadlockResult", u.Result)
	}
	if u.State.Shuffles != 0 {
		t.Fatalf("Shuffles = %d, expected 0", u.State.Shuffles)
	}

	u = waitFor(t, r, resolved)
	if _, ok := u.Result.(core.GameOverResult); !ok {
		t.Fatalf("Result = %#v, expected GameOverResult", u.Result)
	}
	if len(u.Events) != 1 {
		t.Fatalf("expected one event, got %v", u.Events)
	}
	if _, ok := u.Events[0].(core.GameOverEvent); !ok {
		t.Errorf("event = %#v, expected GameOverEvent", u.Events[0])
	}
	if !u.State.GameOver {
		t.Error("state not game over")
	}

	// A second game over is never reported
	u = send(t, r, Command{Action: ActionQuit})
	if len(u.Events) != 0 {
		t.Errorf("events after game over = %v", u.Events)
	}
}

func TestRunnerDeadlockWaitsForResume(t *testing.T) {
	r, _, _ := startRunner(t, stuckLayout, core.DefaultRules(), WithResolveDelay(50*time.Millisecond))

	u := send(t, r, Command{Action: ActionHint})
	if _, ok := u.Result.(core.DeadlockResult); !ok {
		t.Fatalf("Result = %#v, expected DeadlockResult", u.Result)
	}
	send(t, r, Command{Action: ActionPause})

	time.Sleep(150 * time.Millisecond)
	u = send(t, r, Command{Action: ActionState})
	if u.State.Phase != core.PhasePaused || u.State.Shuffles != 3 {
		t.Fatalf("resolved while paused: phase %v, %d shuffles", u.State.Phase, u.State.Shuffles)
	}

	send(t, r, Command{Action: ActionResume})
	u = waitFor(t, r, resolved)
	if _, ok := u.Result.(core.ShuffleResult); !ok {
		t.Fatalf("Result = %#v, expected ShuffleResult", u.Result)
	}
	if u.State.Shuffles != 2 {
		t.Errorf("Shuffles = %d, expected 2", u.State.Shuffles)
	}
}

func TestRunnerNextRequiresClear(t *testing.T) {
	r, _, _ := newRunner(t)

	u := send(t, r, Command{Action: ActionNext})
	if !errors.Is(u.Err, core.ErrNotCleared) {
		t.Errorf("Err = %v, expected ErrNotCleared", u.Err)
	}
	if u.State.Level != 1 {
		t.Errorf("Level = %d, expected 1", u.State.Level)
	}
}
