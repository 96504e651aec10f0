package fruitlink

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick     uint64
	ID       string
	Phase    string
	Level    int
	Score    int
	TimeLeft int
	Hints    int
	Shuffles int
	Combo    int
	Matched  int
	Cursor   int
	Selected int
	Version  uint64
	Board    string // Kind symbols row by row, '.' for empty cells
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	s := g.state
	snap := Snapshot{
		Tick:     g.tick,
		ID:       g.ID(),
		Phase:    s.Phase.String(),
		Level:    s.Level,
		Score:    s.Score,
		TimeLeft: s.TimeLeft,
		Hints:    s.Hints,
		Shuffles: s.Shuffles,
		Combo:    s.Combo,
		Matched:  s.Matched,
		Cursor:   g.cursor,
		Selected: s.Selected,
	}
	if s.Board != nil {
		snap.Version = s.Board.Version
		snap.Board = s.Board.String()
	}
	return snap
}
