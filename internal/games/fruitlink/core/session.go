package core

import (
	"errors"
	"math/rand"
	"time"
)

// ErrNotCleared is returned by NextLevel unless the current level was just cleared.
var ErrNotCleared = errors.New("core: level not cleared")

// LayoutSource produces the layout of a level. Generator is the standard source.
type LayoutSource interface {
	Generate(level int) (Layout, error)
}

// State is a snapshot of the session. Board is a copy.
type State struct {
	Phase      Phase
	Level      int
	Score      int
	TimeLeft   int
	TimeLimit  int
	Hints      int
	Shuffles   int
	Combo      int
	Matched    int
	TotalPairs int
	Selected   int // -1 when nothing is selected
	Paused     bool
	GameOver   bool
	Board      *Board
}

// Session is the match state machine for one player. It owns no goroutine:
// the driver feeds time through Advance and pulls events with Drain. A
// Session is not safe for concurrent use.
type Session struct {
	gen   LayoutSource
	rules Rules
	rng   *rand.Rand

	board      *Board
	level      int
	score      int
	timeLimit  int
	timeLeft   int
	hints      int
	shuffles   int
	combo      int
	matched    int
	totalPairs int
	selected   int

	started  bool
	paused   bool
	cleared  bool
	gameOver bool

	timerRunning bool
	elapsed      time.Duration // Accumulated toward the next countdown tick
	comboLeft    time.Duration // Time until combo resets; 0 when disarmed

	outbox []Event
}

// NewSession creates an idle session. rng drives hint choice and shuffles.
func NewSession(gen LayoutSource, rules Rules, rng *rand.Rand) *Session {
	return &Session{
		gen:      gen,
		rules:    rules.normalized(),
		rng:      rng,
		selected: -1,
	}
}

// Rules returns the session's rules.
func (s *Session) Rules() Rules {
	return s.rules
}

// StartGame resets score, combo and flags, then loads level.
func (s *Session) StartGame(level int) error {
	layout, err := s.gen.Generate(level)
	if err != nil {
		return err
	}

	s.score = 0
	s.combo = 0
	s.comboLeft = 0
	s.paused = false
	s.gameOver = false
	s.started = true
	s.outbox = nil
	s.apply(layout)
	return nil
}

// Retry starts a new game from level 1.
func (s *Session) Retry() error {
	return s.StartGame(1)
}

// NextLevel loads the following level once the current one is cleared.
// Score and combo carry over.
func (s *Session) NextLevel() (LevelResult, error) {
	if !s.cleared || s.gameOver {
		return LevelResult{}, ErrNotCleared
	}
	layout, err := s.gen.Generate(s.level + 1)
	if err != nil {
		return LevelResult{}, err
	}
	s.paused = false
	s.apply(layout)
	return LevelResult{
		Level:     s.level,
		Board:     s.board.Clone(),
		TimeLimit: s.timeLimit,
		Hints:     s.hints,
		Shuffles:  s.shuffles,
	}, nil
}

// apply installs a generated layout and restarts the countdown.
func (s *Session) apply(l Layout) {
	var version uint64
	if s.board != nil {
		version = s.board.Version + 1
	}
	s.board = NewBoard(l.Cols, l.Rows, l.Tiles)
	s.board.Version = version

	s.level = l.Level
	s.timeLimit = l.TimeLimit
	s.timeLeft = l.TimeLimit
	s.totalPairs = len(l.Tiles) / 2
	s.matched = 0
	s.selected = -1
	s.hints = s.rules.Hints(l.Level)
	s.shuffles = s.rules.Shuffles(l.Level)
	s.cleared = false
	s.StartTimer()
}

// playing reports whether player actions are accepted.
func (s *Session) playing() bool {
	return s.started && !s.paused && !s.gameOver && !s.cleared
}

// SelectTile handles a click on the cell at index.
func (s *Session) SelectTile(index int) Result {
	if !s.playing() || index < 0 || index >= len(s.board.Cells) {
		return nil
	}
	tile, ok := s.board.Cells[index].Tile()
	if !ok {
		return nil
	}

	if s.selected == index {
		s.selected = -1
		return DeselectResult{Index: index}
	}
	if s.selected < 0 {
		s.selected = index
		return SelectResult{Index: index}
	}

	from := s.selected
	first, _ := s.board.Cells[from].Tile()
	if first.Kind.ID != tile.Kind.ID {
		s.selected = index
		return SwitchResult{From: from, To: index}
	}
	path, ok := Path(s.board, PosOf(from, s.board.Cols), PosOf(index, s.board.Cols))
	if !ok {
		s.selected = index
		return SwitchResult{From: from, To: index, Blocked: true}
	}
	return s.match(from, index, path)
}

func (s *Session) match(a, b int, path []Pos) MatchResult {
	s.board.Remove(a, b)
	s.selected = -1
	s.matched++
	s.combo++
	s.comboLeft = s.rules.ComboWindow

	gained := s.rules.MatchScore(s.combo, s.level, s.timeLeft)
	s.score += gained

	res := MatchResult{
		Indices: [2]int{a, b},
		Score:   gained,
		Combo:   s.combo,
		Path:    path,
	}
	if s.matched >= s.totalPairs {
		res.LevelClear = true
		res.TimeBonus = s.rules.ClearBonus(s.timeLeft, s.level)
		s.score += res.TimeBonus
		s.StopTimer()
		s.cleared = true
	} else if !HasMatchablePair(s.board) {
		res.NoMoreMoves = true
	}
	res.TotalScore = s.score
	return res
}

// UseHint spends a hint and points at a random matchable pair. When no pair
// exists the hint is kept and a DeadlockResult is returned.
func (s *Session) UseHint() Result {
	if !s.playing() || s.hints <= 0 {
		return nil
	}
	pairs := FindMatchablePairs(s.board)
	if len(pairs) == 0 {
		return DeadlockResult{}
	}
	s.hints--
	p := pairs[s.rng.Intn(len(pairs))]
	return HintResult{Indices: p.Indices(), HintsLeft: s.hints}
}

// UseShuffle spends a shuffle and rearranges the remaining tiles. The new
// arrangement is not guaranteed to be solvable.
func (s *Session) UseShuffle() Result {
	if !s.playing() || s.shuffles <= 0 {
		return nil
	}
	if s.board.Remaining() < s.rules.MinShuffleTiles {
		return nil
	}
	s.board.Reshuffle(s.rng)
	s.selected = -1
	s.shuffles--
	return ShuffleResult{Board: s.board.Clone(), ShufflesLeft: s.shuffles}
}

// ResolveDeadlock shuffles when no pair can be matched, or ends the game
// when no shuffle is left. It returns nil while a pair is still available.
func (s *Session) ResolveDeadlock() Result {
	if !s.playing() || HasMatchablePair(s.board) {
		return nil
	}
	if r := s.UseShuffle(); r != nil {
		return r
	}
	s.GameOver()
	return GameOverResult{Outcome: s.Outcome()}
}

// Pause freezes the countdown and the combo window.
func (s *Session) Pause() {
	if s.started && !s.gameOver {
		s.paused = true
	}
}

// Resume unfreezes a paused session.
func (s *Session) Resume() {
	s.paused = false
}

// GameOver ends the game. Only the first call has an effect.
func (s *Session) GameOver() {
	if !s.started || s.gameOver {
		return
	}
	s.gameOver = true
	s.paused = false
	s.StopTimer()
	s.outbox = append(s.outbox, GameOverEvent{Outcome: s.Outcome()})
}

// Outcome returns the current score, level and seconds spent on the level.
func (s *Session) Outcome() Outcome {
	return Outcome{
		Score: s.score,
		Level: s.level,
		Time:  s.timeLimit - s.timeLeft,
	}
}

// StartTimer (re)starts the countdown from a whole second.
func (s *Session) StartTimer() {
	s.timerRunning = true
	s.elapsed = 0
}

// StopTimer cancels the countdown.
func (s *Session) StopTimer() {
	s.timerRunning = false
	s.elapsed = 0
}

// Advance moves session time forward by d. Nothing advances while paused or
// after game over.
func (s *Session) Advance(d time.Duration) {
	if !s.started || s.paused || s.gameOver || d <= 0 {
		return
	}

	if s.comboLeft > 0 {
		s.comboLeft -= d
		if s.comboLeft <= 0 {
			s.comboLeft = 0
			s.combo = 0
		}
	}

	if !s.timerRunning {
		return
	}
	s.elapsed += d
	for s.timerRunning && s.elapsed >= s.rules.TickPeriod {
		s.elapsed -= s.rules.TickPeriod
		s.timeLeft--
		if s.timeLeft < 0 {
			s.timeLeft = 0
		}
		s.outbox = append(s.outbox, TickEvent{TimeLeft: s.timeLeft})
		if s.timeLeft == 0 {
			s.GameOver()
		}
	}
}

// Drain returns and clears the queued events.
func (s *Session) Drain() []Event {
	out := s.outbox
	s.outbox = nil
	return out
}

// Phase returns the lifecycle state.
func (s *Session) Phase() Phase {
	switch {
	case !s.started:
		return PhaseIdle
	case s.gameOver:
		return PhaseGameOver
	case s.paused:
		return PhasePaused
	case s.cleared:
		return PhaseCleared
	default:
		return PhasePlaying
	}
}

// State returns a snapshot of the session.
func (s *Session) State() State {
	st := State{
		Phase:      s.Phase(),
		Level:      s.level,
		Score:      s.score,
		TimeLeft:   s.timeLeft,
		TimeLimit:  s.timeLimit,
		Hints:      s.hints,
		Shuffles:   s.shuffles,
		Combo:      s.combo,
		Matched:    s.matched,
		TotalPairs: s.totalPairs,
		Selected:   s.selected,
		Paused:     s.paused,
		GameOver:   s.gameOver,
	}
	if s.board != nil {
		st.Board = s.board.Clone()
	}
	return st
}
