package websocket

import (
	"github.com/vovakirdan/fruit-link/internal/games/fruitlink/core"
	"github.com/vovakirdan/fruit-link/internal/games/fruitlink/live"
)

// Message types sent to the browser.
const (
	TypeResult   = "result"
	TypeTick     = "tick"
	TypeState    = "state"
	TypeGameOver = "gameover"
	TypeError    = "error"
)

// ResultMessage reports the effect of a command.
type ResultMessage struct {
	Type   string      `json:"type"`
	Action live.Action `json:"action,omitempty"`
	Kind   string      `json:"kind"` // Result.Action()
	Result core.Result `json:"result"`
}

// TickMessage reports the countdown.
type TickMessage struct {
	Type     string `json:"type"`
	TimeLeft int    `json:"timeLeft"`
}

// StateMessage carries a full snapshot.
type StateMessage struct {
	Type  string    `json:"type"`
	State StateView `json:"state"`
}

// GameOverMessage ends a game. Rank is null when the run was not ranked.
type GameOverMessage struct {
	Type    string       `json:"type"`
	Outcome core.Outcome `json:"outcome"`
	Rank    *int         `json:"rank"`
}

// ErrorMessage reports a refused command.
type ErrorMessage struct {
	Type    string      `json:"type"`
	Action  live.Action `json:"action,omitempty"`
	Message string      `json:"message"`
}

// TileView is one occupied cell.
type TileView struct {
	Kind   string `json:"kind"`
	Icon   string `json:"icon"`
	PairID int    `json:"pairId"`
}

// BoardView is the board as clients see it. Empty cells are null.
type BoardView struct {
	Cols    int         `json:"cols"`
	Rows    int         `json:"rows"`
	Version uint64      `json:"version"`
	Cells   []*TileView `json:"cells"`
}

// StateView is the JSON form of core.State.
type StateView struct {
	Phase      string     `json:"phase"`
	Level      int        `json:"level"`
	Score      int        `json:"score"`
	TimeLeft   int        `json:"timeLeft"`
	TimeLimit  int        `json:"timeLimit"`
	Hints      int        `json:"hints"`
	Shuffles   int        `json:"shuffles"`
	Combo      int        `json:"combo"`
	Matched    int        `json:"matched"`
	TotalPairs int        `json:"totalPairs"`
	Selected   int        `json:"selected"`
	Board      *BoardView `json:"board"`
}

// NewStateView converts a session snapshot.
func NewStateView(st core.State) StateView {
	v := StateView{
		Phase:      st.Phase.String(),
		Level:      st.Level,
		Score:      st.Score,
		TimeLeft:   st.TimeLeft,
		TimeLimit:  st.TimeLimit,
		Hints:      st.Hints,
		Shuffles:   st.Shuffles,
		Combo:      st.Combo,
		Matched:    st.Matched,
		TotalPairs: st.TotalPairs,
		Selected:   st.Selected,
	}
	if b := st.Board; b != nil {
		bv := &BoardView{Cols: b.Cols, Rows: b.Rows, Version: b.Version, Cells: make([]*TileView, len(b.Cells))}
		for i, c := range b.Cells {
			if t, ok := c.Tile(); ok {
				bv.Cells[i] = &TileView{Kind: t.Kind.ID, Icon: t.Kind.Glyph, PairID: t.PairID}
			}
		}
		v.Board = bv
	}
	return v
}
