package fruitlink

import (
	"fmt"
	"unicode/utf8"

	platformcore "github.com/vovakirdan/fruit-link/internal/core"
	"github.com/vovakirdan/fruit-link/internal/games/fruitlink/core"
)

const (
	cellWidth    = 3 // "[A]": cursor bracket, symbol, cursor bracket
	hudHeight    = 3
	footerHeight = 2

	timeWarn   = 30
	timeDanger = 10
)

// Render draws the game state to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}
	b := g.state.Board
	if b == nil {
		dst.DrawTextCentered(g.screenH/2, "Loading...", platformcore.ColorDefault)
		return
	}

	grid := platformcore.NewGrid(g.screenW, hudHeight, b.Cols, b.Rows, cellWidth)
	g.renderHUD(dst, grid.Frame)
	g.renderBoard(dst, b, grid)
	g.renderFooter(dst, grid.Frame)
	g.renderOverlays(dst, grid.Frame)
}

func (g *Game) renderTooSmall(dst *platformcore.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", platformcore.ColorDefault)
	dst.DrawTextCentered(y+1, "Please resize terminal", platformcore.ColorDefault)
}

// renderHUD draws title, score, level, timer and budgets.
func (g *Game) renderHUD(dst *platformcore.Screen, box platformcore.Rect) {
	s := g.state
	dst.DrawTextCentered(0, g.Title(), platformcore.ColorBrightGreen)

	dst.DrawText(box.X, 1, fmt.Sprintf("Score: %d", s.Score))

	level := fmt.Sprintf("Level %d", s.Level)
	dst.DrawText(box.X+(box.W-len(level))/2, 1, level)

	timeStr := fmt.Sprintf("Time: %ds", s.TimeLeft)
	dst.DrawTextColor(box.Right()-len(timeStr), 1, timeStr, timeColor(s.TimeLeft))

	budgets := fmt.Sprintf("Hints: %d  Shuffles: %d  Pairs: %d/%d", s.Hints, s.Shuffles, s.Matched, s.TotalPairs)
	dst.DrawText(box.X, 2, budgets)

	if g.popupTicks > 0 {
		dst.DrawTextColor(box.Right()-len(g.popup), 2, g.popup, platformcore.ColorBrightYellow)
	}
}

// timeColor grades the countdown.
func timeColor(left int) platformcore.Color {
	switch {
	case left <= timeDanger:
		return platformcore.ColorBrightRed
	case left <= timeWarn:
		return platformcore.ColorYellow
	default:
		return platformcore.ColorGreen
	}
}

// renderBoard draws the frame, the tiles and the flash of the last match path.
func (g *Game) renderBoard(dst *platformcore.Screen, b *core.Board, grid platformcore.Grid) {
	dst.DrawBox(grid.Frame, platformcore.ColorGray)

	if g.flashTicks > 0 {
		g.renderPath(dst, grid)
	}

	for i, cell := range b.Cells {
		p := core.PosOf(i, b.Cols)
		x, y := grid.Origin(p.Row, p.Col)
		if tile, ok := cell.Tile(); ok {
			c := platformcore.Cell{Rune: tile.Kind.Symbol, Color: platformcore.ParseColor(tile.Kind.Color)}
			if i == g.state.Selected {
				c.Attr |= platformcore.AttrReverse
			}
			if g.hintTicks > 0 && (i == g.hint[0] || i == g.hint[1]) {
				c.Attr |= platformcore.AttrBlink | platformcore.AttrBold
			}
			dst.SetCell(x+1, y, c)
		}
		if i == g.cursor && g.state.Phase == core.PhasePlaying {
			dst.SetColor(x, y, '[', platformcore.ColorBrightWhite)
			dst.SetColor(x+2, y, ']', platformcore.ColorBrightWhite)
		}
	}
}

// renderPath draws the link between the last matched pair.
// Path corners may sit in the margin ring.
func (g *Game) renderPath(dst *platformcore.Screen, grid platformcore.Grid) {
	for i := 1; i < len(g.path); i++ {
		a, b := g.path[i-1], g.path[i]
		dr, dc := sign(b.Row-a.Row), sign(b.Col-a.Col)
		for p := a; ; p = core.P(p.Row+dr, p.Col+dc) {
			x, y := grid.Origin(p.Row, p.Col)
			if dr == 0 {
				for k := 0; k < cellWidth; k++ {
					dst.SetColor(x+k, y, '─', platformcore.ColorBrightYellow)
				}
			} else {
				dst.SetColor(x+1, y, '│', platformcore.ColorBrightYellow)
			}
			if p == b {
				break
			}
		}
	}
	for _, p := range g.path {
		x, y := grid.Origin(p.Row, p.Col)
		dst.SetColor(x+1, y, '*', platformcore.ColorBrightYellow)
	}
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}

// renderFooter draws the combo banner, status message and key hints.
func (g *Game) renderFooter(dst *platformcore.Screen, box platformcore.Rect) {
	y := box.Bottom()
	switch {
	case g.bannerTicks > 0:
		dst.DrawTextCentered(y, g.banner, platformcore.ColorBrightMagenta)
	case g.messageTicks > 0:
		dst.DrawTextCentered(y, g.message, platformcore.ColorBrightCyan)
	case g.loadErr != nil:
		dst.DrawTextCentered(y, g.loadErr.Error(), platformcore.ColorRed)
	}
	dst.DrawTextCentered(y+1, g.Controls(), platformcore.ColorGray)
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *platformcore.Screen, box platformcore.Rect) {
	s := g.state
	switch s.Phase {
	case core.PhasePaused:
		g.drawOverlay(dst, box, platformcore.ColorYellow, "PAUSED", "Press P to resume")
	case core.PhaseCleared:
		g.drawOverlay(dst, box, platformcore.ColorBrightGreen,
			fmt.Sprintf("LEVEL %d CLEAR!", s.Level),
			fmt.Sprintf("Time bonus: +%d", g.clearBonus),
			fmt.Sprintf("Score: %d", s.Score),
			"Press N for next level")
	case core.PhaseGameOver:
		g.drawOverlay(dst, box, platformcore.ColorBrightRed,
			"GAME OVER",
			fmt.Sprintf("Score: %d  Level: %d", s.Score, s.Level),
			g.rankLine(),
			"Press R to restart")
	}
}

func (g *Game) rankLine() string {
	switch g.rank {
	case "":
		return "Rank: ..."
	case "-":
		return "Rank: -"
	default:
		return "Rank: #" + g.rank
	}
}

// drawOverlay draws a boxed block of lines centered on the board.
func (g *Game) drawOverlay(dst *platformcore.Screen, area platformcore.Rect, color platformcore.Color, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(line))
	}

	box := area.Centered(maxLen+4, len(lines)+2)
	dst.FillRect(box)
	dst.DrawBox(box, color)

	cx, _ := box.Center()
	for i, line := range lines {
		dst.DrawTextColor(cx-utf8.RuneCountInString(line)/2, box.Y+1+i, line, color)
	}
}
