// Package fruitlink provides the FruitLink connect-two puzzle for the terminal
// platform. It adapts the pure engine in fruitlink/core to the registry.Game
// interface: cursor input, fixed-rate stepping and a cell-based renderer.
package fruitlink

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/fruit-link/internal/config"
	platformcore "github.com/vovakirdan/fruit-link/internal/core"
	"github.com/vovakirdan/fruit-link/internal/games/fruitlink/core"
	"github.com/vovakirdan/fruit-link/internal/registry"
)

const (
	hintDuration    = 3 * time.Second
	resolveDelay    = 500 * time.Millisecond
	flashDuration   = 400 * time.Millisecond
	popupDuration   = 1200 * time.Millisecond
	messageDuration = 1500 * time.Millisecond
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// selectedStartLevel is consumed by the next Reset
var selectedStartLevel int

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset used by the default variant.
// Unknown names fall back to normal.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = config.DifficultyNormal
	}
	difficultyPreset = p
}

// SetStartLevel sets the level of the next game. 0 means level 1.
func SetStartLevel(level int) {
	selectedStartLevel = level
}

// GetStartLevel returns the currently selected start level.
func GetStartLevel() int {
	return selectedStartLevel
}

// variant describes one registered flavour of the game.
type variant struct {
	id     string
	title  string
	preset config.DifficultyPreset // Empty means the package-level preset
}

var variants = []variant{
	{id: "fruitlink", title: "FruitLink"},
	{id: "fruitlink_easy", title: "FruitLink (Easy)", preset: config.DifficultyEasy},
	{id: "fruitlink_hard", title: "FruitLink (Hard)", preset: config.DifficultyHard},
}

func init() {
	for _, v := range variants {
		registry.Register(registry.Variant{
			ID:         v.id,
			Title:      v.title,
			Difficulty: string(v.preset),
			New:        func() registry.Game { return newVariant(v) },
		})
	}
}

// Game implements the FruitLink puzzle.
type Game struct {
	variant variant
	rng     *rand.Rand
	session *core.Session
	state   core.State
	tick    uint64
	played  uint64        // Steps that advanced the session clock
	clock   time.Duration // Session time fed so far
	step    time.Duration // Nominal duration of one Step

	cursor int

	// Transient effects, counted down in ticks
	hint         [2]int
	hintTicks    int
	path         []core.Pos
	flashTicks   int
	popup        string
	popupTicks   int
	banner       string
	bannerTicks  int
	message      string
	messageTicks int
	resolveTicks int // >0 while a dead-lock resolution is pending

	clearBonus int
	rank       string
	loadErr    error
	startLevel int // Consumed by the next Reset; takes precedence over SetStartLevel

	screenW  int
	screenH  int
	tickRate int
	tooSmall bool
}

// New creates the default FruitLink game.
func New() *Game {
	return newVariant(variants[0])
}

func newVariant(v variant) *Game {
	return &Game{variant: v}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.variant.id
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.variant.title
}

// SetRank records the ranking position shown on the game over overlay.
func (g *Game) SetRank(rank string) {
	g.rank = rank
}

// StartAt makes the next Reset begin at level instead of level 1.
func (g *Game) StartAt(level int) {
	g.startLevel = level
}

// preset resolves the difficulty for this variant.
func (g *Game) preset() config.DifficultyPreset {
	if g.variant.preset != "" {
		return g.variant.preset
	}
	if difficultyPreset != "" {
		return difficultyPreset
	}
	return config.DifficultyNormal
}

// Reset initializes or restarts the game.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = platformcore.DefaultTickRate
	}
	g.step = cfg.TickInterval()
	g.tick = 0
	g.played = 0
	g.clock = 0
	g.rank = ""
	g.loadErr = nil
	g.clearEffects()

	g.session = newSession(g.preset(), g.rng)

	level := 1
	switch {
	case g.startLevel > 0:
		level = g.startLevel
		g.startLevel = 0
	case selectedStartLevel > 0:
		level = selectedStartLevel
		selectedStartLevel = 0 // Reset after use
	}
	if err := g.session.StartGame(level); err != nil {
		g.loadErr = err
		if err := g.session.StartGame(1); err != nil {
			g.loadErr = err
		}
	}

	g.cursor = 0
	g.refresh()
}

// newSession builds an engine session from the loaded configuration,
// falling back to built-in defaults when anything fails to load.
func newSession(preset config.DifficultyPreset, rng *rand.Rand) *core.Session {
	cfg, err := config.LoadFruitLink(configPath)
	if err != nil {
		cfg = config.DefaultFruitLinkConfig()
	}

	catalog, err := cfg.NewCatalog()
	if err != nil {
		catalog = core.DefaultCatalog()
	}
	table, err := cfg.NewLevelTable(preset)
	if err != nil {
		table = core.DefaultLevelTable()
	}

	gen := core.NewGenerator(catalog, table, rng)
	return core.NewSession(gen, cfg.Rules(), rng)
}

func (g *Game) clearEffects() {
	g.hint = [2]int{-1, -1}
	g.hintTicks = 0
	g.path = nil
	g.flashTicks = 0
	g.popup = ""
	g.popupTicks = 0
	g.banner = ""
	g.bannerTicks = 0
	g.message = ""
	g.messageTicks = 0
	g.resolveTicks = 0
	g.clearBonus = 0
}

// ticks converts a duration to a number of Steps, at least one.
func (g *Game) ticks(d time.Duration) int {
	n := int(d / g.step)
	if n < 1 {
		n = 1
	}
	return n
}

// refresh takes a new engine snapshot and re-checks the layout.
func (g *Game) refresh() {
	g.state = g.session.State()
	g.checkScreenSize()
	if b := g.state.Board; b != nil && g.cursor >= len(b.Cells) {
		g.cursor = 0
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.tick++

	if g.tooSmall {
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionPause) {
		g.togglePause()
	}

	switch g.session.Phase() {
	case core.PhasePlaying:
		g.handlePlayInput(in)
	case core.PhaseCleared:
		if in.Has(platformcore.ActionNext) {
			g.nextLevel()
		}
	}

	if g.session.Phase() != core.PhasePaused {
		g.advanceClock()
		g.handleEvents(g.session.Drain())
		g.updateEffects()
	}

	g.refresh()
	return platformcore.StepResult{State: g.State()}
}

// advanceClock feeds the session the time of one Step. The running total is
// derived from the step count so no rounding drift builds up.
func (g *Game) advanceClock() {
	g.played++
	now := time.Duration(g.played) * time.Second / time.Duration(g.tickRate)
	g.session.Advance(now - g.clock)
	g.clock = now
}

func (g *Game) togglePause() {
	switch g.session.Phase() {
	case core.PhasePaused:
		g.session.Resume()
	case core.PhasePlaying, core.PhaseCleared:
		g.session.Pause()
	}
}

// handlePlayInput applies cursor movement and actions while playing.
func (g *Game) handlePlayInput(in platformcore.InputFrame) {
	b := g.state.Board
	if b == nil {
		return
	}
	pos := core.PosOf(g.cursor, b.Cols)
	switch {
	case in.Has(platformcore.ActionUp):
		pos.Row--
	case in.Has(platformcore.ActionDown):
		pos.Row++
	case in.Has(platformcore.ActionLeft):
		pos.Col--
	case in.Has(platformcore.ActionRight):
		pos.Col++
	}
	pos.Row = platformcore.Clamp(pos.Row, 0, b.Rows-1)
	pos.Col = platformcore.Clamp(pos.Col, 0, b.Cols-1)
	g.cursor = pos.Index(b.Cols)

	switch {
	case in.Has(platformcore.ActionConfirm):
		g.handleResult(g.session.SelectTile(g.cursor))
	case in.Has(platformcore.ActionHint):
		g.handleResult(g.session.UseHint())
	case in.Has(platformcore.ActionShuffle):
		g.handleResult(g.session.UseShuffle())
	}
}

func (g *Game) nextLevel() {
	res, err := g.session.NextLevel()
	if err != nil {
		g.loadErr = err
		return
	}
	g.clearEffects()
	g.cursor = 0
	g.showMessage(fmt.Sprintf("Level %d", res.Level))
}

// handleResult turns an engine result into on-screen feedback.
func (g *Game) handleResult(r core.Result) {
	switch r := r.(type) {
	case core.MatchResult:
		g.hintTicks = 0
		g.path = r.Path
		g.flashTicks = g.ticks(flashDuration)
		g.popup = fmt.Sprintf("+%d", r.Score)
		g.popupTicks = g.ticks(popupDuration)
		if r.Combo > 1 {
			g.banner = fmt.Sprintf("COMBO x%d!", r.Combo)
			g.bannerTicks = g.ticks(popupDuration)
		}
		if r.LevelClear {
			g.clearBonus = r.TimeBonus
			g.resolveTicks = 0
		}
		if r.NoMoreMoves {
			g.showMessage("No more moves")
			g.resolveTicks = g.ticks(resolveDelay)
		}
	case core.SwitchResult:
		if r.Blocked {
			g.showMessage("No path")
		}
	case core.HintResult:
		g.hint = r.Indices
		g.hintTicks = g.ticks(hintDuration)
	case core.DeadlockResult:
		g.showMessage("No more moves")
		g.resolveTicks = g.ticks(resolveDelay)
	case core.ShuffleResult:
		g.hintTicks = 0
		g.showMessage("Shuffled")
	case core.GameOverResult:
		g.showMessage("No moves left")
	}
}

func (g *Game) handleEvents(events []core.Event) {
	for _, ev := range events {
		if _, ok := ev.(core.GameOverEvent); ok {
			g.resolveTicks = 0
			g.hintTicks = 0
		}
	}
}

func (g *Game) showMessage(msg string) {
	g.message = msg
	g.messageTicks = g.ticks(messageDuration)
}

// updateEffects counts down transient effects and fires a pending
// dead-lock resolution.
func (g *Game) updateEffects() {
	countDown(&g.hintTicks)
	countDown(&g.flashTicks)
	countDown(&g.popupTicks)
	countDown(&g.bannerTicks)
	countDown(&g.messageTicks)

	if g.resolveTicks > 0 {
		g.resolveTicks--
		if g.resolveTicks == 0 {
			g.handleResult(g.session.ResolveDeadlock())
		}
	}
}

func countDown(n *int) {
	if *n > 0 {
		*n--
	}
}

// Resize adapts to a new terminal size without touching the board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough for the board.
func (g *Game) checkScreenSize() {
	cols, rows := 0, 0
	if b := g.state.Board; b != nil {
		cols, rows = b.Cols, b.Rows
	}
	minW := (cols+2)*cellWidth + 2
	minH := rows + 4 + hudHeight + footerHeight
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	if g.session == nil {
		return platformcore.GameState{}
	}
	out := g.session.Outcome()
	return platformcore.GameState{
		Score:    out.Score,
		Level:    out.Level,
		Time:     out.Time,
		GameOver: g.state.GameOver,
		Paused:   g.state.Paused || g.tooSmall,
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | Enter: Select | H: Hint | X: Shuffle | P: Pause | Q: Quit"
}
