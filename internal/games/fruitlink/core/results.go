package core

// Result describes the effect of a player action. A nil Result means the
// action was ignored and nothing changed.
type Result interface {
	// Action returns the wire name of the result.
	Action() string
	isResult()
}

// SelectResult: a tile became selected with no prior selection.
type SelectResult struct {
	Index int `json:"index"`
}

// DeselectResult: the selected tile was picked again.
type DeselectResult struct {
	Index int `json:"index"`
}

// SwitchResult: the selection moved from one tile to another. Blocked is set
// when both tiles share a kind but no path links them.
type SwitchResult struct {
	From    int  `json:"from"`
	To      int  `json:"to"`
	Blocked bool `json:"blocked,omitempty"`
}

// MatchResult: two tiles were removed.
type MatchResult struct {
	Indices     [2]int `json:"indices"`
	Score       int    `json:"score"` // Points for this match alone
	Combo       int    `json:"combo"`
	TotalScore  int    `json:"totalScore"`
	LevelClear  bool   `json:"levelClear"`
	TimeBonus   int    `json:"timeBonus,omitempty"`
	NoMoreMoves bool   `json:"noMoreMoves"`
	Path        []Pos  `json:"path"`
}

// HintResult points at one matchable pair.
type HintResult struct {
	Indices   [2]int `json:"indices"`
	HintsLeft int    `json:"hintsLeft"`
}

// DeadlockResult: no pair on the board can be matched.
type DeadlockResult struct{}

// ShuffleResult carries the rearranged board.
type ShuffleResult struct {
	Board        *Board `json:"-"`
	ShufflesLeft int    `json:"shufflesLeft"`
}

// GameOverResult is returned when an action ended the game.
type GameOverResult struct {
	Outcome Outcome `json:"outcome"`
}

// LevelResult describes a freshly loaded level.
type LevelResult struct {
	Level     int    `json:"level"`
	Board     *Board `json:"-"`
	TimeLimit int    `json:"timeLimit"`
	Hints     int    `json:"hints"`
	Shuffles  int    `json:"shuffles"`
}

func (SelectResult) Action() string   { return "select" }
func (DeselectResult) Action() string { return "deselect" }
func (SwitchResult) Action() string   { return "switch" }
func (MatchResult) Action() string    { return "match" }
func (HintResult) Action() string     { return "hint" }
func (DeadlockResult) Action() string { return "deadlock" }
func (ShuffleResult) Action() string  { return "shuffle" }
func (GameOverResult) Action() string { return "gameover" }
func (LevelResult) Action() string    { return "level" }

func (SelectResult) isResult()   {}
func (DeselectResult) isResult() {}
func (SwitchResult) isResult()   {}
func (MatchResult) isResult()    {}
func (HintResult) isResult()     {}
func (DeadlockResult) isResult() {}
func (ShuffleResult) isResult()  {}
func (GameOverResult) isResult() {}
func (LevelResult) isResult()    {}

// Event is a notification queued by the session outside any single action.
type Event interface {
	isEvent()
}

// TickEvent is queued once per elapsed countdown second.
type TickEvent struct {
	TimeLeft int `json:"timeLeft"`
}

// GameOverEvent is queued exactly once per game.
type GameOverEvent struct {
	Outcome Outcome `json:"outcome"`
}

func (TickEvent) isEvent()     {}
func (GameOverEvent) isEvent() {}
